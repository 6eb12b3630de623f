// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// LayerData holds the input data of one soil layer
type LayerData struct {

	// geometry and elastic properties
	Name  string  `json:"name" yaml:"name"`   // name of layer; e.g. "clay-1"
	Thick float64 `json:"thick" yaml:"thick"` // thickness [m]
	Rho   float64 `json:"rho" yaml:"rho"`     // mass density [kg/m³]
	Vs    float64 `json:"vs" yaml:"vs"`       // shear wave velocity [m/s]; 0 => computed from G
	G     float64 `json:"G" yaml:"G"`         // shear modulus [Pa]; used only if vs is zero
	Vp    float64 `json:"vp" yaml:"vp"`       // compressional wave velocity [m/s]; optional
	Xi    float64 `json:"xi" yaml:"xi"`       // (small strain) damping ratio

	// soil response model
	Model string `json:"model" yaml:"model"` // name of model; e.g. "elast", "eqlin", "mkz", "bsurf"

	// total stress bounding surface model
	Su float64 `json:"su" yaml:"su"` // undrained shear strength [Pa]
	Hg float64 `json:"hg" yaml:"hg"` // hardening parameter h [Pa]
	M  float64 `json:"m" yaml:"m"`   // hardening exponent m
	H0 float64 `json:"h0" yaml:"h0"` // plastic modulus at the bounding surface [Pa]

	// backbone curves and equivalent linear
	Gref float64 `json:"gref" yaml:"gref"` // reference strain γr
	Beta float64 `json:"beta" yaml:"beta"` // MKZ β
	S    float64 `json:"s" yaml:"s"`       // MKZ curvature exponent s
	Xmax float64 `json:"xmax" yaml:"xmax"` // equivalent linear: maximum (hysteretic) damping ratio
	Reff float64 `json:"reff" yaml:"reff"` // equivalent linear: effective strain ratio
}

// RockData holds the properties of the elastic half-space underneath the soil column
type RockData struct {
	Rho float64 `json:"rho" yaml:"rho"` // mass density [kg/m³]
	Vs  float64 `json:"vs" yaml:"vs"`   // shear wave velocity [m/s]
	Xi  float64 `json:"xi" yaml:"xi"`   // damping ratio
}

// InvalidLayerError reports bad geometry or material data in a layer
type InvalidLayerError struct {
	Index  int    // index of layer (bedrock-to-surface); -1 if not known
	Name   string // name of layer
	Reason string // what is wrong
}

func (o *InvalidLayerError) Error() string {
	if o.Index < 0 {
		return io.Sf("invalid layer %q: %s", o.Name, o.Reason)
	}
	return io.Sf("invalid layer %d (%q): %s", o.Index, o.Name, o.Reason)
}

// SoilLayer describes one soil layer. Values are fixed at construction
type SoilLayer struct {
	dat LayerData
}

// NewSoilLayer validates the input data and returns a new layer
func NewSoilLayer(dat LayerData) (*SoilLayer, error) {
	bad := func(format string, prm ...interface{}) (*SoilLayer, error) {
		return nil, &InvalidLayerError{-1, dat.Name, io.Sf(format, prm...)}
	}
	if !(dat.Thick > 0) || math.IsInf(dat.Thick, 0) {
		return bad("thickness must be positive. thick = %g is invalid", dat.Thick)
	}
	if !(dat.Rho > 0) || math.IsInf(dat.Rho, 0) {
		return bad("density must be positive. rho = %g is invalid", dat.Rho)
	}
	if dat.Vs == 0 && dat.G > 0 {
		dat.Vs = math.Sqrt(dat.G / dat.Rho)
	}
	if !(dat.Vs > 0) || math.IsInf(dat.Vs, 0) {
		return bad("shear wave velocity (or shear modulus) must be positive. vs = %g is invalid", dat.Vs)
	}
	if dat.Vp != 0 && dat.Vp < dat.Vs*math.Sqrt2 {
		return bad("vp = %g is smaller than √2·vs = %g", dat.Vp, dat.Vs*math.Sqrt2)
	}
	if dat.Xi < 0 || dat.Xi >= 1 || math.IsNaN(dat.Xi) {
		return bad("damping ratio must be in [0,1). xi = %g is invalid", dat.Xi)
	}
	if dat.Su < 0 || dat.Hg < 0 || dat.M < 0 || dat.H0 < 0 || dat.Gref < 0 {
		return bad("nonlinear parameters cannot be negative")
	}
	dat.G = dat.Rho * dat.Vs * dat.Vs
	return &SoilLayer{dat}, nil
}

// Name returns the name of layer
func (o SoilLayer) Name() string { return o.dat.Name }

// Thick returns the thickness of layer
func (o SoilLayer) Thick() float64 { return o.dat.Thick }

// Rho returns the mass density
func (o SoilLayer) Rho() float64 { return o.dat.Rho }

// Vs returns the shear wave velocity
func (o SoilLayer) Vs() float64 { return o.dat.Vs }

// Vp returns the compressional wave velocity (zero if not given)
func (o SoilLayer) Vp() float64 { return o.dat.Vp }

// Xi returns the small strain damping ratio
func (o SoilLayer) Xi() float64 { return o.dat.Xi }

// Model returns the name of the soil response model given in the input data
func (o SoilLayer) Model() string { return o.dat.Model }

// Data returns a copy of the input data, with G computed from vs
func (o SoilLayer) Data() LayerData { return o.dat }

// ShearModulus returns ρ·vs²
func (o SoilLayer) ShearModulus() float64 { return o.dat.G }

// BulkModulus returns ρ·(vp² - 4/3·vs²); zero if vp is not available
func (o SoilLayer) BulkModulus() float64 {
	if o.dat.Vp == 0 {
		return 0
	}
	return o.dat.Rho * (o.dat.Vp*o.dat.Vp - 4.0*o.dat.Vs*o.dat.Vs/3.0)
}

// NaturalPeriod returns the fundamental period of the layer on a rigid base: 4 H / vs
func (o SoilLayer) NaturalPeriod() float64 {
	return 4.0 * o.dat.Thick / o.dat.Vs
}

// Params returns the parameters for soil response models
func (o SoilLayer) Params() (prms dbf.Params) {
	add := func(name string, value float64, always bool) {
		if value != 0 || always {
			prms = append(prms, &dbf.P{N: name, V: value})
		}
	}
	add("G", o.dat.G, true)
	add("rho", o.dat.Rho, true)
	add("xi", o.dat.Xi, true)
	add("su", o.dat.Su, false)
	add("h", o.dat.Hg, false)
	add("m", o.dat.M, false)
	add("h0", o.dat.H0, false)
	add("gref", o.dat.Gref, false)
	add("beta", o.dat.Beta, false)
	add("s", o.dat.S, false)
	add("xmax", o.dat.Xmax, false)
	add("reff", o.dat.Reff, false)
	return
}

// HalfSpace holds the elastic rock underneath the soil column
type HalfSpace struct {
	Rho float64 // mass density
	Vs  float64 // shear wave velocity
	Xi  float64 // damping ratio
}

// Impedance returns ρ·vs
func (o HalfSpace) Impedance() float64 { return o.Rho * o.Vs }

// SiteLayering holds the stack of soil layers from bedrock to surface
type SiteLayering struct {
	layers []SoilLayer // [nlayers] index 0 sits on the bedrock
	rock   *HalfSpace  // elastic half-space; nil means rigid base
}

// NewSiteLayering validates the layers (given from bedrock to surface) and returns a new layering
//  rock -- elastic half-space; may be nil to indicate a rigid base
func NewSiteLayering(layers []LayerData, rock *RockData) (*SiteLayering, error) {
	if len(layers) < 1 {
		return nil, &InvalidLayerError{-1, "", "at least one layer is required"}
	}
	var o SiteLayering
	o.layers = make([]SoilLayer, len(layers))
	for i, dat := range layers {
		l, err := NewSoilLayer(dat)
		if err != nil {
			e := err.(*InvalidLayerError)
			e.Index = i
			return nil, e
		}
		o.layers[i] = *l
	}
	if rock != nil {
		if !(rock.Rho > 0) || !(rock.Vs > 0) || math.IsInf(rock.Rho*rock.Vs, 0) {
			return nil, &InvalidLayerError{len(layers), "rock", io.Sf("rho = %g and vs = %g must be positive", rock.Rho, rock.Vs)}
		}
		if rock.Xi < 0 || rock.Xi >= 1 {
			return nil, &InvalidLayerError{len(layers), "rock", io.Sf("damping ratio must be in [0,1). xi = %g is invalid", rock.Xi)}
		}
		o.rock = &HalfSpace{rock.Rho, rock.Vs, rock.Xi}
	}
	return &o, nil
}

// Nlayers returns the number of layers
func (o SiteLayering) Nlayers() int { return len(o.layers) }

// Layer returns a copy of layer i (bedrock-to-surface)
func (o SiteLayering) Layer(i int) SoilLayer { return o.layers[i] }

// Rock returns the elastic half-space and true, or false if the base is rigid
func (o SiteLayering) Rock() (HalfSpace, bool) {
	if o.rock == nil {
		return HalfSpace{}, false
	}
	return *o.rock, true
}

// Rigid tells whether the column rests on a rigid base
func (o SiteLayering) Rigid() bool { return o.rock == nil }

// TotalThickness returns the sum of thicknesses
func (o SiteLayering) TotalThickness() (H float64) {
	for _, l := range o.layers {
		H += l.Thick()
	}
	return
}

// MinVs returns the smallest shear wave velocity
func (o SiteLayering) MinVs() (vmin float64) {
	vmin = math.Inf(1)
	for _, l := range o.layers {
		vmin = math.Min(vmin, l.Vs())
	}
	return
}

// TravelTime returns the vertical travel time of shear waves across the column
func (o SiteLayering) TravelTime() (tt float64) {
	for _, l := range o.layers {
		tt += l.Thick() / l.Vs()
	}
	return
}

// AverageVs returns the travel-time average of shear wave velocities
func (o SiteLayering) AverageVs() float64 {
	return o.TotalThickness() / o.TravelTime()
}

// FundamentalFrequency returns the approximate first natural frequency of the column: 1/(4 tt)
func (o SiteLayering) FundamentalFrequency() float64 {
	return 1.0 / (4.0 * o.TravelTime())
}

// Bottom returns the elevation (above the base) of the bottom of layer i
func (o SiteLayering) Bottom(i int) (y float64) {
	for k := 0; k < i; k++ {
		y += o.layers[k].Thick()
	}
	return
}

// Top returns the elevation (above the base) of the top of layer i
func (o SiteLayering) Top(i int) float64 {
	return o.Bottom(i) + o.layers[i].Thick()
}

// LayerAt returns the index of the layer containing the given depth below the surface.
// Points at interfaces belong to the layer above. Returns -1 if the depth is outside the column
func (o SiteLayering) LayerAt(depth float64) int {
	H := o.TotalThickness()
	if depth < 0 || depth > H {
		return -1
	}
	y := H - depth
	for i := len(o.layers) - 1; i >= 0; i-- {
		if y >= o.Bottom(i) {
			return i
		}
	}
	return 0
}
