// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// logger environments
const (
	LogNone = "none" // no structured logging
	LogDev  = "dev"  // human readable
	LogProd = "prod" // json
)

// options holds the global flags
type options struct {
	verbose bool        // show messages
	logenv  string      // logger environment
	log     *zap.Logger // structured logger; set before any command runs
}

// newLogger returns a logger for the given environment
func newLogger(env string) (*zap.Logger, error) {
	switch env {
	case LogNone, "":
		return zap.NewNop(), nil
	case LogDev:
		return zap.NewDevelopment()
	case LogProd:
		return zap.NewProduction()
	}
	return nil, chk.Err("log environment must be %q, %q or %q. %q is invalid", LogNone, LogDev, LogProd, env)
}

// newRootCmd returns the root command with all subcommands
func newRootCmd() *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:           "siteresponse",
		Short:         "One-dimensional seismic site response with a finite element soil column",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			io.Verbose = opts.verbose
			opts.log, err = newLogger(opts.logenv)
			return
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "show messages")
	root.PersistentFlags().StringVar(&opts.logenv, "log-env", LogNone, "structured logging: none, dev or prod")
	root.AddCommand(
		runCommand(opts),
		bbpCommand(opts),
		ampCommand(opts),
	)
	return root
}

// execute runs the command line and returns the exit code
func execute(args []string) (code int) {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.Verbose = true
			io.Pfred("ERROR: %v\n", err)
			io.Pfred("> Failed\n")
			code = 2
		}
	}()

	root := newRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		io.Verbose = true
		io.Pfred("ERROR: %v\n", err)
		io.Pfred("> Failed\n")
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:]))
}
