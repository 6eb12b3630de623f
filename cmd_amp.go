// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/siteresp/out"
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ampCommand constructs the 'amp' subcommand: spectral ratios and report of written results
func ampCommand(opts *options) *cobra.Command {
	var enctype string
	var bandwidth float64
	cmd := &cobra.Command{
		Use:   "amp <dir> <key>",
		Short: "Computes surface/base spectral ratios and the report of results written by a run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			dir, key := args[0], args[1]
			res, err := out.ReadResults(dir, key, enctype)
			if err != nil {
				return errors.Wrap(err, "cannot read results")
			}
			for _, d := range res.Sum.Dirs {
				h, err := res.History(d)
				if err != nil {
					return err
				}
				freq, ratio, err := out.Amplification(h.Base("a"), h.Surface("a"), h.Dt(), bandwidth)
				if err != nil {
					return errors.Wrapf(err, "cannot compute spectral ratio of direction %q", d)
				}
				var buf bytes.Buffer
				io.Ff(&buf, "# surface/base spectral ratio of %s, direction %s, b = %g\n", key, d, bandwidth)
				io.Ff(&buf, "#%22s%23s\n", "f", "ratio")
				for i, f := range freq {
					io.Ff(&buf, "%23.15e%23.15e\n", f, ratio[i])
				}
				fn := filepath.Join(dir, io.Sf("%s_%s_amp.dat", key, d))
				err = os.WriteFile(fn, buf.Bytes(), 0644)
				if err != nil {
					return errors.Wrapf(err, "cannot write %q", fn)
				}
				opts.log.Info("spectral ratio written", zap.String("file", fn))
				io.Pfcyan("file <%s> written\n", fn)
			}
			out.ReportBandwidth = bandwidth
			rep, err := out.NewReport(res)
			if err != nil {
				return
			}
			err = rep.WriteYAML(filepath.Join(dir, key+"_report.yaml"))
			if err != nil {
				return
			}
			print_report(rep)
			io.Pfgreen("> Success\n")
			return
		},
	}
	cmd.Flags().StringVar(&enctype, "enc", "", "encoder of results: gob or json (default: found from files)")
	cmd.Flags().Float64Var(&bandwidth, "b", 40, "Konno-Ohmachi bandwidth; 0 means no smoothing")
	return cmd
}
