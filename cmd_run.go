// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/siteresp/fem"
	"github.com/cpmech/siteresp/inp"
	"github.com/cpmech/siteresp/out"
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runFlags holds the flags of the run and bbp commands
type runFlags struct {
	mode   string // overrides Data.Mode
	dirout string // overrides Data.DirOut
	alias  string // word to add to filename key
	bbpout string // surface velocity file
}

// runCommand constructs the 'run' subcommand: analysis of a simulation file
func runCommand(opts *options) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run <sim-file>",
		Short: "Runs the analysis given in a simulation file (.sim json or .yaml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := readSim(args[0], flags, opts)
			if err != nil {
				return err
			}
			var ud []float64
			var uddt float64
			if flags.bbpout != "" && sim.Motions.BBP != "" {
				b, err := inp.ReadBBP(sim.Path(sim.Motions.BBP))
				if err != nil {
					return err
				}
				ud, uddt = b.UD, b.Dt
			}
			return simulate(sim, flags.bbpout, ud, uddt, opts)
		},
	}
	cmd.Flags().StringVar(&flags.mode, "mode", "", "analysis mode: test or total (default: from simulation file)")
	cmd.Flags().StringVar(&flags.dirout, "dirout", "", "output directory (default: from simulation file)")
	cmd.Flags().StringVar(&flags.alias, "alias", "", "word to add to results filename key")
	cmd.Flags().StringVar(&flags.bbpout, "bbp-out", "", "write surface velocities with the Broadband Platform format to this file")
	return cmd
}

// bbpCommand constructs the 'bbp' subcommand: total stress analysis of a site shaken by a
// Broadband Platform velocity record. Surface velocities are written in the same format
func bbpCommand(opts *options) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "bbp <site-file> <velocity.bbp>",
		Short: "Runs the total stress analysis of a site with a BBP velocity record and writes the surface BBP record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := readSim(args[0], flags, opts)
			if err != nil {
				return err
			}
			fn, err := filepath.Abs(args[1])
			if err != nil {
				return errors.Wrapf(err, "invalid BBP file path %q", args[1])
			}
			b, err := inp.ReadBBP(fn)
			if err != nil {
				return err
			}
			sim.Motions = inp.MotionData{BBP: fn, Scale: sim.Motions.Scale}
			if flags.bbpout == "" {
				flags.bbpout = filepath.Join(sim.DirOut, io.FnKey(filepath.Base(fn))+"."+sim.Key+".bbp")
			}
			return simulate(sim, flags.bbpout, b.UD, b.Dt, opts)
		},
	}
	cmd.Flags().StringVar(&flags.mode, "mode", fem.ModeTotal, "analysis mode: test or total")
	cmd.Flags().StringVar(&flags.dirout, "dirout", "", "output directory (default: from site file)")
	cmd.Flags().StringVar(&flags.alias, "alias", "", "word to add to results filename key")
	cmd.Flags().StringVar(&flags.bbpout, "out", "", "surface velocity file (default: <dirout>/<record>.<key>.bbp)")
	return cmd
}

// readSim reads the simulation file and applies the command line overrides
func readSim(fn string, flags runFlags, opts *options) (sim *inp.Simulation, err error) {
	sim, err = inp.ReadSim(fn, flags.alias)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read simulation")
	}
	if flags.mode != "" {
		if flags.mode != fem.ModeTest && flags.mode != fem.ModeTotal {
			return nil, errors.Errorf("mode must be %q or %q. %q is invalid", fem.ModeTest, fem.ModeTotal, flags.mode)
		}
		sim.Data.Mode = flags.mode
	}
	if flags.dirout != "" {
		sim.Data.DirOut = flags.dirout
		sim.DirOut = flags.dirout
	}
	if opts.verbose {
		sim.Data.Verbose = true
	}
	return
}

// simulate runs the analysis, writes the report and, if bbpout is given, the surface velocities
func simulate(sim *inp.Simulation, bbpout string, ud []float64, uddt float64, opts *options) (err error) {

	// input
	lay, err := sim.GetLayering()
	if err != nil {
		return errors.Wrap(err, "invalid site")
	}
	mx, mz, err := sim.GetMotions()
	if err != nil {
		return errors.Wrap(err, "cannot read motions")
	}
	if sim.Data.Verbose {
		io.Pf("\nsimulation key     = %s\n", sim.Key)
		io.Pf("analysis mode      = %s\n", sim.Data.Mode)
		io.Pf("output directory   = %s\n", sim.DirOut)
		io.Pf("number of layers   = %d\n", lay.Nlayers())
		io.Pf("rigid base         = %v\n", lay.Rigid())
		io.Pf("motion time step   = %g\n", mx.Dt())
		io.Pf("number of samples  = %d\n\n", mx.Npts())
	}

	// run
	model := fem.NewSiteResponseModel(sim, lay, mx, mz)
	model.SetLogger(opts.log)
	code := model.Run()
	switch code {
	case fem.Success:
	case fem.NonConvergence:
		io.Pforan("%d steps did not converge; results were written\n", len(model.Warnings()))
	default:
		return errors.Wrapf(model.Err(), "analysis failed with %v", code)
	}

	// report
	res, err := out.FromModel(model)
	if err != nil {
		return
	}
	rep, err := out.NewReport(res)
	if err != nil {
		return
	}
	fn := filepath.Join(model.OutputDir(), sim.Key+"_report.yaml")
	err = rep.WriteYAML(fn)
	if err != nil {
		return
	}
	opts.log.Info("report written", zap.String("file", fn))
	print_report(rep)

	// surface velocities
	if bbpout != "" {
		err = out.WriteSurfaceBBP(res, bbpout, nil, ud, uddt)
		if err != nil {
			return
		}
		opts.log.Info("surface velocities written", zap.String("file", bbpout))
		io.Pfcyan("file <%s> written\n", bbpout)
	}
	if code == fem.NonConvergence {
		return model.Err()
	}
	io.Pfgreen("> Success\n")
	return
}

// print_report prints the main results
func print_report(rep *out.Report) {
	io.Pf("\n%4s%14s%14s%14s%10s%12s%12s\n", "dir", "PGA[m/s²]", "PGV[m/s]", "PGA ratio", "MMI", "γmax", "fpeak[Hz]")
	for _, d := range []string{"x", "z"} {
		r, ok := rep.Directions[d]
		if !ok {
			continue
		}
		io.Pf("%4s%14.5f%14.5f%14.4f%10.2f%12.3e%12.3f\n", d, r.PGA, r.PGV, r.PGARatio, r.MMI, r.MaxStrain, r.PeakFreq)
	}
}
