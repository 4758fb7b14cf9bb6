// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/op/go-logging"
)

const (
	colorLogFormat = "%{time:2006/01/02 15:04:05} %{color}%{level:-8s} %{module}%{color:reset}: %{message}"
	plainLogFormat = "%{time:2006/01/02 15:04:05} %{level:-8s} %{module}: %{message}"
)

// Config describes where and how much to log.
type Config struct {
	Mode  string // level name: critical, error, warning, notice, info or debug
	Color bool   // colour terminal output, ignored if stderr is not a terminal
	File  string // optional file receiving a copy of all log output
}

// ParseLevel converts a level name into a logging level. The empty name
// selects INFO.
func ParseLevel(mode string) (logging.Level, error) {
	if mode == "" {
		return logging.INFO, nil
	}
	level, err := logging.LogLevel(strings.TrimSpace(mode))
	if err != nil {
		return logging.INFO, fmt.Errorf("unknown log level %q", mode)
	}
	return level, nil
}

// Setup directs all loggers to stderr and, if configured, to a log file. It
// also routes the go-ethereum root logger to stderr. The returned closer
// releases the log file.
func Setup(config Config) (io.Closer, error) {
	color := config.Color && isTerminal(os.Stderr)
	var out io.Writer = os.Stderr
	if color {
		out = colorable.NewColorable(os.Stderr)
	}
	return setup(config, out, color)
}

func setup(config Config, out io.Writer, color bool) (io.Closer, error) {
	level, err := ParseLevel(config.Mode)
	if err != nil {
		return nil, err
	}

	format := plainLogFormat
	if color {
		format = colorLogFormat
	}
	backends := []logging.Backend{
		logging.NewBackendFormatter(logging.NewLogBackend(out, "", 0), logging.MustStringFormatter(format)),
	}

	var closer io.Closer = nopCloser{}
	if config.File != "" {
		file, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closer = file
		fileFormat := logging.MustStringFormatter(plainLogFormat)
		backends = append(backends, logging.NewBackendFormatter(logging.NewLogBackend(file, "", 0), fileFormat))
	}

	leveled := logging.SetBackend(backends...)
	leveled.SetLevel(level, "")

	handler := log.NewTerminalHandlerWithLevel(out, gethLevel(level), color)
	log.SetDefault(log.NewLogger(handler))
	return closer, nil
}

// NewLogger returns the logger of the given module.
func NewLogger(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}

// gethLevel maps a logging level to go-ethereum's level. go-ethereum reports
// routine progress at info level, which is only shown in debug mode.
func gethLevel(level logging.Level) slog.Level {
	switch level {
	case logging.CRITICAL:
		return log.LevelCrit
	case logging.ERROR:
		return log.LevelError
	case logging.DEBUG:
		return log.LevelDebug
	default:
		return log.LevelWarn
	}
}

func isTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
