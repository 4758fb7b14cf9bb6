// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/Fantom-foundation/quickrun/go/logger"
	"github.com/urfave/cli/v2"
)

type gasFlagType struct {
	cli.Uint64Flag
}

var GasFlag = &gasFlagType{
	cli.Uint64Flag{
		Name:  "gas",
		Usage: "gas limit of the contract creation, unbounded if not set",
	},
}

// Fetch returns the gas limit or nil if the flag was not given.
func (f *gasFlagType) Fetch(context *cli.Context) *uint64 {
	if !context.IsSet(f.Name) {
		return nil
	}
	gas := context.Uint64(f.Name)
	return &gas
}

type logLevelFlagType struct {
	cli.StringFlag
}

var LogLevelFlag = &logLevelFlagType{
	cli.StringFlag{
		Name:    "log",
		Aliases: []string{"l"},
		Usage:   "level of the logging (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\")",
		Value:   "info",
	},
}

func (f *logLevelFlagType) Fetch(context *cli.Context) (string, error) {
	mode := context.String(f.Name)
	if _, err := logger.ParseLevel(mode); err != nil {
		return "", err
	}
	return mode, nil
}

type logFileFlagType struct {
	cli.StringFlag
}

var LogFileFlag = &logFileFlagType{
	cli.StringFlag{
		Name:      "log-file",
		Usage:     "append a copy of the log output to the provided filename",
		TakesFile: true,
	},
}

func (f *logFileFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type cpuProfileType struct {
	cli.StringFlag
}

var CpuProfileFlag = &cpuProfileType{
	cli.StringFlag{
		Name:      "cpuprofile",
		Usage:     "store CPU profile in the provided filename",
		TakesFile: true,
	},
}

func (f *cpuProfileType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

// AddCommonFlags adds the flags shared by all tools to the given app and
// wraps its action to honor them.
func AddCommonFlags(app *cli.App) *cli.App {
	app.Flags = append(app.Flags, CpuProfileFlag)

	action := app.Action
	app.Action = func(ctx *cli.Context) (err error) {
		if filename := CpuProfileFlag.Fetch(ctx); filename != "" {
			f, err := os.Create(filename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return action(ctx)
	}
	return app
}
