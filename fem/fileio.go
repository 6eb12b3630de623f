// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// Encode encodes the history
func (o History) Encode(enc Encoder) (err error) {
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode history of %q direction:\n%v", o.Dir, err)
	}
	return
}

// ReadHistory reads the nodal history of one direction
func ReadHistory(dir, fnkey, enctype, direction string) (o *History, err error) {
	fn := out_nod_path(dir, fnkey, direction, enctype)
	fil, err := os.Open(fn)
	if err != nil {
		return nil, chk.Err("cannot open history file %q:\n%v", fn, err)
	}
	defer fil.Close()
	o = new(History)
	err = GetDecoder(fil, enctype).Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode history file %q:\n%v", fn, err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_sum_path(dir, fnkey, enctype string) string {
	return filepath.Join(dir, io.Sf("%s_sum.%s", fnkey, enctype))
}

func out_nod_path(dir, fnkey, direction, enctype string) string {
	return filepath.Join(dir, io.Sf("%s_%s_nod.%s", fnkey, direction, enctype))
}

func out_dat_path(dir, fnkey, direction, kind string) string {
	return filepath.Join(dir, io.Sf("%s_%s_%s.dat", fnkey, direction, kind))
}

func out_prom_path(dir, fnkey string) string {
	return filepath.Join(dir, io.Sf("%s_metrics.prom", fnkey))
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	_, err = fil.Write(buf.Bytes())
	if verbose && err == nil {
		io.Pfcyan("file <%s> written\n", filename)
	}
	return
}
