// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/siteresp/inp"
	"github.com/cpmech/siteresp/out"
	"github.com/stretchr/testify/require"
)

func Test_main01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main01. run command")

	dir := tst.TempDir()
	require.Equal(tst, 0, execute([]string{"run", "testdata/column.sim", "--dirout", dir}))
	require.FileExists(tst, filepath.Join(dir, "column_sum.json"))
	require.FileExists(tst, filepath.Join(dir, "column_z_profile.dat"))

	rep, err := out.ReadReport(filepath.Join(dir, "column_report.yaml"))
	require.NoError(tst, err)
	require.Equal(tst, "Success", rep.Code)
	require.Equal(tst, "test", rep.Mode)
	require.False(tst, rep.Rigid)
	require.Greater(tst, rep.Directions["x"].PGA, 0.0)

	// amplification of written results
	require.Equal(tst, 0, execute([]string{"amp", dir, "column", "--b", "20"}))
	require.FileExists(tst, filepath.Join(dir, "column_x_amp.dat"))
	require.FileExists(tst, filepath.Join(dir, "column_z_amp.dat"))
}

func Test_main02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main02. total stress run with surface BBP output")

	dir := tst.TempDir()
	fn := filepath.Join(dir, "surface.bbp")
	require.Equal(tst, 0, execute([]string{"run", "testdata/column.sim", "--mode", "total", "--dirout", dir, "--alias", "nl", "--bbp-out", fn, "--log-env", "dev"}))

	rep, err := out.ReadReport(filepath.Join(dir, "column-nl_report.yaml"))
	require.NoError(tst, err)
	require.Equal(tst, "total", rep.Mode)

	b, err := inp.ReadBBP(fn)
	require.NoError(tst, err)
	chk.Float64(tst, "dt", 1e-10, b.Dt, 0.01)
	chk.Int(tst, "npts", len(b.NS), 101)
	chk.Array(tst, "U-D", 1e-15, b.UD, make([]float64, 101))
}

func Test_main03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main03. bbp command")

	dir := tst.TempDir()
	require.Equal(tst, 0, execute([]string{"bbp", "testdata/site.yaml", "testdata/small.bbp", "--dirout", dir}))
	require.FileExists(tst, filepath.Join(dir, "site_sum.gob"))

	in, err := inp.ReadBBP("testdata/small.bbp")
	require.NoError(tst, err)
	res, err := inp.ReadBBP(filepath.Join(dir, "small.site.bbp"))
	require.NoError(tst, err)
	chk.Float64(tst, "dt", 1e-10, res.Dt, in.Dt)
	chk.Int(tst, "npts", len(res.NS), len(in.NS))
	chk.Array(tst, "U-D", 1e-6, res.UD, in.UD)

	rep, err := out.ReadReport(filepath.Join(dir, "site_report.yaml"))
	require.NoError(tst, err)
	require.Equal(tst, "total", rep.Mode)
	require.True(tst, rep.Rigid)
}

func Test_main04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main04. errors")

	dir := tst.TempDir()
	require.Equal(tst, 1, execute([]string{"run", "testdata/missing.sim", "--dirout", dir}))
	require.Equal(tst, 1, execute([]string{"run", "testdata/column.sim", "--dirout", dir, "--mode", "effective"}))
	require.Equal(tst, 1, execute([]string{"run", "testdata/column.sim", "--dirout", dir, "--log-env", "cloud"}))
	require.Equal(tst, 1, execute([]string{"run"}))
	require.Equal(tst, 1, execute([]string{"amp", dir, "nothing"}))
	require.NoFileExists(tst, filepath.Join(dir, "column_sum.json"))
}
