package pdb

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type EntityType int

const (
	EntityUnknown EntityType = iota
	EntityPolymer
	EntityNonPolymer
	EntityBranched
	EntityWater
)

type PolymerType int

const (
	PolymerUnknown PolymerType = iota
	PeptideL
	PeptideD
	Dna
	Rna
	DnaRnaHybrid
	SaccharideD
	SaccharideL
	Pna
	CyclicPseudoPeptide
	PolymerOther
)

// Entity is the part of an mmCIF entity needed to classify a complex.
type Entity struct {
	Name      string
	Type      EntityType
	Polymer   PolymerType
	Subchains []string
}

// ComplexType describes what kinds of molecules make up an entry.
// The first eight values are a bit set of peptide (1), nucleic acid (2) and
// saccharide (4).
type ComplexType int

const (
	Other ComplexType = iota
	SingleProtein
	NucleicAcid
	ProteinNA
	Saccharide
	ProteinSaccharide
	SaccharideNA
	ProteinSaccharideNA
	Proteinmer
	ComplexProtein
)

const (
	hasPeptide     = 0b001
	hasNucleicAcid = 0b010
	hasSaccharide  = 0b100
)

var complexNames = [...]string{
	"Other", "SingleProtein", "NucleicAcid", "ProteinNA", "Saccharide",
	"ProteinSaccharide", "SaccharideNA", "ProteinSaccharideNA",
	"Proteinmer", "ComplexProtein",
}

func (typ ComplexType) String() string {
	if typ < 0 || int(typ) >= len(complexNames) {
		return fmt.Sprintf("ComplexType(%d)", int(typ))
	}
	return complexNames[typ]
}

// ClassifyComplex determines the complex type from an entry's entities.
// Any entity of unknown type, and any polymer that is not a peptide, nucleic
// acid or saccharide, makes the whole entry Other. An entry made only of
// peptides is ComplexProtein when it has several peptide entities, and
// Proteinmer when its single peptide entity has several subchains.
func ClassifyComplex(entities []Entity) ComplexType {
	flags := 0
	peptides := 0
	var peptide *Entity
	for i := range entities {
		e := &entities[i]
		switch e.Type {
		case EntityUnknown:
			return Other
		case EntityBranched:
			flags |= hasSaccharide
		case EntityPolymer:
			switch e.Polymer {
			case PolymerUnknown, PolymerOther, CyclicPseudoPeptide:
				return Other
			case Dna, Rna, DnaRnaHybrid, Pna:
				flags |= hasNucleicAcid
			case SaccharideD, SaccharideL:
				flags |= hasSaccharide
			default:
				peptides++
				flags |= hasPeptide
				peptide = e
			}
		}
	}

	typ := ComplexType(flags)
	if typ == SingleProtein {
		if peptides > 1 {
			return ComplexProtein
		}
		if len(peptide.Subchains) > 1 {
			return Proteinmer
		}
	}
	return typ
}

// StrandSense is the direction of a beta strand relative to the previous
// strand of its sheet. The first strand of a sheet has NoSense.
type StrandSense int

const (
	Antiparallel StrandSense = -1
	NoSense      StrandSense = 0
	Parallel     StrandSense = 1
)

var ErrInvalidSense = errors.New("invalid strand sense")

// SenseSequence encodes the strands of a sheet as a string of 'P' for
// parallel and 'A' for antiparallel. NoSense strands contribute nothing.
func SenseSequence(senses []StrandSense) (string, error) {
	var b strings.Builder
	for i, s := range senses {
		switch s {
		case Parallel:
			b.WriteByte('P')
		case Antiparallel:
			b.WriteByte('A')
		case NoSense:
		default:
			return "", errors.Wrapf(ErrInvalidSense, "strand %d: %d", i, s)
		}
	}
	return b.String(), nil
}
