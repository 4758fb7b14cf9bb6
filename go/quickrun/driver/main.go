// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Fantom-foundation/quickrun/go/logger"
	"github.com/Fantom-foundation/quickrun/go/quickrun"
	cliUtils "github.com/Fantom-foundation/quickrun/go/quickrun/driver/cli"
	"github.com/urfave/cli/v2"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := newApp(stdin, stdout, stderr)
	if err := app.Run(reorderArgs(app.Flags, args)); err != nil {
		fmt.Fprintln(stderr, err)
		return quickrun.ExitCode(err)
	}
	return 0
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:            "quickrun",
		Usage:           "deploy contract bytecode read from stdin on a throw-away chain and print the receipt",
		UsageText:       "echo '{\"bin\":\"6000\"}' | quickrun [options] <data>",
		ArgsUsage:       "<data>",
		Copyright:       "(c) 2024 Fantom Foundation",
		HideHelpCommand: true,
		Reader:          stdin,
		Writer:          stdout,
		ErrWriter:       stderr,
		Flags: []cli.Flag{
			cliUtils.GasFlag,
			cliUtils.LogLevelFlag,
			cliUtils.LogFileFlag,
		},
		OnUsageError: func(ctx *cli.Context, err error, _ bool) error {
			return usageError(ctx, err)
		},
		Action: doRun,
	}
	return cliUtils.AddCommonFlags(app)
}

func doRun(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return usageError(ctx, fmt.Errorf("expected exactly one <data> argument, got %d", ctx.NArg()))
	}
	mode, err := cliUtils.LogLevelFlag.Fetch(ctx)
	if err != nil {
		return usageError(ctx, err)
	}

	closer, err := logger.Setup(logger.Config{
		Mode:  mode,
		Color: true,
		File:  cliUtils.LogFileFlag.Fetch(ctx),
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	args := quickrun.Args{
		Data: ctx.Args().First(),
		Gas:  cliUtils.GasFlag.Fetch(ctx),
	}
	return quickrun.Run(args, ctx.App.Reader, ctx.App.Writer)
}

// usageError prints the usage to the error stream and marks err as a usage
// error.
func usageError(ctx *cli.Context, err error) error {
	cli.HelpPrinter(ctx.App.ErrWriter, cli.AppHelpTemplate, ctx.App)
	return fmt.Errorf("%w: %w", quickrun.ErrUsage, err)
}

// reorderArgs moves all flags, together with their values, in front of the
// positional arguments so flags may be given after <data>. Everything after
// "--" is positional.
func reorderArgs(flags []cli.Flag, args []string) []string {
	if len(args) == 0 {
		return args
	}
	takesValue := map[string]bool{}
	for _, flag := range flags {
		valued := false
		if doc, ok := flag.(cli.DocGenerationFlag); ok {
			valued = doc.TakesValue()
		}
		for _, name := range flag.Names() {
			takesValue[name] = valued
		}
	}

	var options, positionals []string
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		if arg == "--" {
			positionals = append(positionals, rest[i+1:]...)
			break
		}
		if len(arg) < 2 || !strings.HasPrefix(arg, "-") {
			positionals = append(positionals, arg)
			continue
		}
		options = append(options, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if takesValue[name] && i+1 < len(rest) {
			i++
			options = append(options, rest[i])
		}
	}

	res := append([]string{args[0]}, options...)
	if len(positionals) > 0 {
		res = append(res, "--")
		res = append(res, positionals...)
	}
	return res
}
