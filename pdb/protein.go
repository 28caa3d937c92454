package pdb

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/TuftsBCB/pdbres/logging"
)

var ErrChainStructuresUnsupported = errors.New(
	"adding chain structures is not yet supported")

var ErrInvalidCrystal = errors.New("invalid crystal parameters")

// Protein is a minimal record of a PDB entry. Nothing here is validated:
// empty and duplicate identifiers are accepted.
type Protein struct {
	Id   string
	Name string

	// Always empty until chain structures can be built.
	Chains []Chain

	// Unit cell and space group, when known.
	Crystal *Crystal
}

// Chain is a placeholder for a single chain of a protein.
type Chain struct {
	Ident    string
	Sequence string
}

// Crystal holds the unit cell of a crystallographic entry. Edge lengths are
// in angstroms and angles in degrees.
type Crystal struct {
	SpaceGroup         string
	Z                  int
	A, B, C            float64
	Alpha, Beta, Gamma float64
}

// NewProtein returns a protein with no chains.
func NewProtein(id, name string) *Protein {
	return &Protein{
		Id:     id,
		Name:   name,
		Chains: make([]Chain, 0),
	}
}

// AddChainStructures is meant to split proteinString into the given chains.
// How that partitioning works is not defined yet, so it always returns
// ErrChainStructuresUnsupported and leaves p untouched.
func (p *Protein) AddChainStructures(proteinString string, chains []string) error {
	logging.Logger().WithFields(logrus.Fields{
		"protein": p.Id,
		"length":  len(proteinString),
		"chains":  len(chains),
	}).Debug("chain structures requested but not supported")
	return errors.Wrapf(ErrChainStructuresUnsupported, "protein %q", p.Id)
}

// Chain returns the chain with the given identifier, or nil.
func (p *Protein) Chain(ident string) *Chain {
	for i := range p.Chains {
		if p.Chains[i].Ident == ident {
			return &p.Chains[i]
		}
	}
	return nil
}

// IdString is the lower-cased identifier, as used in PDB file names.
func (p *Protein) IdString() string {
	return strings.ToLower(p.Id)
}

// SetCrystal validates c and attaches a copy of it to p.
func (p *Protein) SetCrystal(c Crystal) error {
	if err := c.Validate(); err != nil {
		return errors.Wrapf(err, "protein %q", p.Id)
	}
	p.Crystal = &c
	return nil
}

// Validate requires positive edge lengths, angles strictly between 0 and 180
// degrees and a non-negative Z.
func (c Crystal) Validate() error {
	for _, edge := range []struct {
		name string
		v    float64
	}{{"a", c.A}, {"b", c.B}, {"c", c.C}} {
		if edge.v <= 0 {
			return errors.Wrapf(ErrInvalidCrystal,
				"edge %s = %g must be positive", edge.name, edge.v)
		}
	}
	for _, angle := range []struct {
		name string
		v    float64
	}{{"alpha", c.Alpha}, {"beta", c.Beta}, {"gamma", c.Gamma}} {
		if angle.v <= 0 || angle.v >= 180 {
			return errors.Wrapf(ErrInvalidCrystal,
				"angle %s = %g must be in (0, 180)", angle.name, angle.v)
		}
	}
	if c.Z < 0 {
		return errors.Wrapf(ErrInvalidCrystal, "Z = %d is negative", c.Z)
	}
	return nil
}

func (c Crystal) String() string {
	return fmt.Sprintf("%s %0.3f %0.3f %0.3f %0.2f %0.2f %0.2f Z=%d",
		c.SpaceGroup, c.A, c.B, c.C, c.Alpha, c.Beta, c.Gamma, c.Z)
}
