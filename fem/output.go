// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// outfile holds the contents of one output file
type outfile struct {
	fn  string
	buf *bytes.Buffer
}

// write writes all results. Contents are prepared before any file is created and
// files already written are removed if a later one fails
func (o *SiteResponseModel) write() (err error) {

	// directory
	if o.dirout == "" {
		return chk.Err("output directory is not set")
	}
	err = os.MkdirAll(o.dirout, 0777)
	if err != nil {
		return chk.Err("cannot create output directory %q:\n%v", o.dirout, err)
	}

	// summary
	key, enc := o.Sim.Key, o.Sim.EncType
	var files []outfile
	var buf bytes.Buffer
	err = o.Summary.Encode(&buf)
	if err != nil {
		return
	}
	files = append(files, outfile{out_sum_path(o.dirout, key, enc), &buf})

	// histories and tables
	for _, d := range o.Domains {
		h := d.Hist
		var bnod bytes.Buffer
		err = h.Encode(GetEncoder(&bnod, enc))
		if err != nil {
			return
		}
		files = append(files,
			outfile{out_nod_path(o.dirout, key, d.Dir, enc), &bnod},
			outfile{out_dat_path(o.dirout, key, d.Dir, "surface"), node_table(h, len(h.Y)-1)},
			outfile{out_dat_path(o.dirout, key, d.Dir, "base"), node_table(h, 0)},
			outfile{out_dat_path(o.dirout, key, d.Dir, "profile"), profile_table(h)},
		)
	}

	// save files
	verbose := o.Sim.Data.Verbose
	defer func() {
		if err != nil {
			for _, fn := range o.Files {
				os.Remove(fn)
			}
			o.Files = nil
		}
	}()
	for _, f := range files {
		err = save_file(f.fn, f.buf, verbose)
		if err != nil {
			return chk.Err("cannot save file %q:\n%v", f.fn, err)
		}
		o.Files = append(o.Files, f.fn)
	}

	// metrics
	fn := out_prom_path(o.dirout, key)
	err = o.Metrics.WriteFile(fn)
	if err != nil {
		return chk.Err("cannot save metrics %q:\n%v", fn, err)
	}
	o.Files = append(o.Files, fn)
	return
}

// node_table writes "t u v a" at node n
func node_table(h *History, n int) *bytes.Buffer {
	var buf bytes.Buffer
	io.Ff(&buf, "# direction %s, node %d, depth %g\n", h.Dir, n, h.Depth[n])
	io.Ff(&buf, "#%22s%23s%23s%23s\n", "t", "u", "v", "a")
	for i, t := range h.T {
		io.Ff(&buf, "%23.15e%23.15e%23.15e%23.15e\n", t, h.U[i][n], h.V[i][n], h.A[i][n])
	}
	return &buf
}

// profile_table writes the peak values along the depth. Strains and stresses are
// from the element above each node (the top element for the surface node)
func profile_table(h *History) *bytes.Buffer {
	var buf bytes.Buffer
	umax, vmax, amax := h.PeakNode("u"), h.PeakNode("v"), h.PeakNode("a")
	ncells := len(h.PeakStrain)
	io.Ff(&buf, "# direction %s\n", h.Dir)
	io.Ff(&buf, "#%22s%23s%23s%23s%23s%23s\n", "depth", "umax", "vmax", "amax", "gammax", "taumax")
	for n := len(h.Y) - 1; n >= 0; n-- {
		var γ, τ float64
		if ncells > 0 {
			e := n
			if e > ncells-1 {
				e = ncells - 1
			}
			γ, τ = h.PeakStrain[e], h.PeakStress[e]
		}
		io.Ff(&buf, "%23.15e%23.15e%23.15e%23.15e%23.15e%23.15e\n", h.Depth[n], umax[n], vmax[n], amax[n], γ, τ)
	}
	return &buf
}
