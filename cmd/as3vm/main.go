// Command as3vm is the CLI front end for the AS3 VM, grounded on the
// teacher's cmd/hey entrypoint (cmd/hey/main.go): one urfave/cli/v3
// root command carrying global flags plus a handful of subcommands,
// each a thin driver over the library packages underneath.
//
// Unlike the teacher, as3vm never parses source text — per spec.md
// §1/§6 this VM begins at the parsed-ABC stage, so every subcommand
// here takes an ABC-JSON document (abcjson.Decoder) rather than a
// source file.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/avm2/avm2/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "as3vm",
		Usage: "An ActionScript 3 / AVM2 virtual machine",
		Commands: []*cli.Command{
			runCommand,
			loadCommand,
			replCommand,
			watchCommand,
			serveMetricsCommand,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "Show version",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("version") {
				fmt.Println(version.Version())
				return nil
			}
			return cli.ShowAppHelp(cmd)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "as3vm: %v\n", err)
		os.Exit(1)
	}
}
