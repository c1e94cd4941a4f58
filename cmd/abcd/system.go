package main

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	gosymbol "github.com/njchilds90/matrixoptics"
	"github.com/njchilds90/matrixoptics/optics"
)

// System is the YAML description of an optical system.
//
//	symbols:
//	  - name: f
//	    assume: [positive]
//	elements:
//	  - propagate: s0
//	  - lens: f
//	ray:
//	  rho: rho0
//	  theta: theta0
type System struct {
	Symbols  []SymbolDecl `yaml:"symbols"`
	Elements []Element    `yaml:"elements"`
	Ray      *RayInput    `yaml:"ray,omitempty"`
	Beam     *BeamInput   `yaml:"beam,omitempty"`
}

type SymbolDecl struct {
	Name   string   `yaml:"name"`
	Assume []string `yaml:"assume,omitempty"`
}

// Element is one optical element; exactly one field is set.
type Element struct {
	Lens      string `yaml:"lens,omitempty"`
	Propagate string `yaml:"propagate,omitempty"`
}

type RayInput struct {
	Rho   string `yaml:"rho"`
	Theta string `yaml:"theta"`
}

type BeamInput struct {
	Q          string `yaml:"q,omitempty"`
	W          string `yaml:"w,omitempty"`
	R          string `yaml:"R,omitempty"`
	Wavelength string `yaml:"wavelength,omitempty"`
}

var errNoElements = errors.New("system has no elements")

func loadSystem(path string) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read system: %w", err)
	}
	return parseSystem(data)
}

func parseSystem(data []byte) (*System, error) {
	var sys System
	if err := yaml.Unmarshal(data, &sys); err != nil {
		return nil, fmt.Errorf("parse system: %w", err)
	}
	return &sys, nil
}

// scope resolves the names used in a System.
type scope map[string]*gosymbol.Sym

func (s *System) scope() (scope, error) {
	sc := scope{}
	for _, d := range s.Symbols {
		var as []gosymbol.Assumption
		for _, a := range d.Assume {
			switch strings.ToLower(a) {
			case "real":
				as = append(as, gosymbol.Real)
			case "positive":
				as = append(as, gosymbol.Positive)
			default:
				return nil, fmt.Errorf("symbol %q: unknown assumption %q", d.Name, a)
			}
		}
		if _, dup := sc[d.Name]; dup {
			return nil, fmt.Errorf("symbol %q declared twice", d.Name)
		}
		sc[d.Name] = gosymbol.S(d.Name, as...)
	}
	return sc, nil
}

// value resolves a term: a declared symbol, an optional leading minus,
// pi, oo, or an exact number such as 3, 0.5 or 1/2. Undeclared names
// become symbols without assumptions.
func (sc scope) value(term string) (gosymbol.Expr, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("empty value")
	}
	if rest, ok := strings.CutPrefix(term, "-"); ok {
		v, err := sc.value(rest)
		if err != nil {
			return nil, err
		}
		return gosymbol.Neg(v), nil
	}
	switch term {
	case "pi":
		return gosymbol.Pi, nil
	case "oo":
		return gosymbol.Oo, nil
	}
	if sym, ok := sc[term]; ok {
		return sym, nil
	}
	if r, ok := new(big.Rat).SetString(term); ok {
		return gosymbol.NRat(r), nil
	}
	sym := gosymbol.S(term)
	sc[term] = sym
	return sym, nil
}

// matrix composes the system matrix in element order.
func (s *System) matrix(sc scope) (*gosymbol.Matrix, error) {
	if len(s.Elements) == 0 {
		return nil, errNoElements
	}
	ms := make([]*gosymbol.Matrix, 0, len(s.Elements))
	for i, el := range s.Elements {
		switch {
		case el.Lens != "" && el.Propagate == "":
			f, err := sc.value(el.Lens)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			ms = append(ms, optics.Lens(f))
		case el.Propagate != "" && el.Lens == "":
			d, err := sc.value(el.Propagate)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			ms = append(ms, optics.Propagate(d))
		default:
			return nil, fmt.Errorf("element %d: exactly one of lens or propagate is required", i)
		}
	}
	return optics.Compose(ms...)
}

func (s *System) ray(sc scope) (*optics.Ray, error) {
	if s.Ray == nil {
		return nil, errors.New("system has no ray")
	}
	rho, err := sc.value(s.Ray.Rho)
	if err != nil {
		return nil, fmt.Errorf("ray rho: %w", err)
	}
	theta, err := sc.value(s.Ray.Theta)
	if err != nil {
		return nil, fmt.Errorf("ray theta: %w", err)
	}
	return optics.NewRay(rho, theta), nil
}

func (s *System) beam(sc scope) (*optics.GaussianBeam, error) {
	if s.Beam == nil {
		return nil, errors.New("system has no beam")
	}
	var opts []optics.BeamOption
	for _, f := range []struct {
		term string
		opt  func(gosymbol.Expr) optics.BeamOption
	}{
		{s.Beam.Q, optics.WithQ},
		{s.Beam.W, optics.WithRadius},
		{s.Beam.R, optics.WithCurvature},
		{s.Beam.Wavelength, optics.WithWavelength},
	} {
		if f.term == "" {
			continue
		}
		v, err := sc.value(f.term)
		if err != nil {
			return nil, fmt.Errorf("beam: %w", err)
		}
		opts = append(opts, f.opt(v))
	}
	return optics.NewGaussianBeam(opts...)
}
