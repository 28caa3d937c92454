package pdb

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peptide(subchains ...string) Entity {
	return Entity{Type: EntityPolymer, Polymer: PeptideL, Subchains: subchains}
}

func TestClassifyComplex(t *testing.T) {
	water := Entity{Type: EntityWater}
	ligand := Entity{Type: EntityNonPolymer}
	dna := Entity{Type: EntityPolymer, Polymer: Dna}
	rna := Entity{Type: EntityPolymer, Polymer: Rna}
	sugar := Entity{Type: EntityBranched}
	glucan := Entity{Type: EntityPolymer, Polymer: SaccharideD}

	tests := []struct {
		name     string
		entities []Entity
		want     ComplexType
	}{
		{"empty", nil, Other},
		{"only water", []Entity{water}, Other},
		{"single protein", []Entity{peptide("A"), water, ligand}, SingleProtein},
		{"d peptide", []Entity{{Type: EntityPolymer, Polymer: PeptideD, Subchains: []string{"A"}}}, SingleProtein},
		{"proteinmer", []Entity{peptide("A", "B"), water}, Proteinmer},
		{"complex protein", []Entity{peptide("A"), peptide("B")}, ComplexProtein},
		{"nucleic acid", []Entity{dna, rna}, NucleicAcid},
		{"protein na", []Entity{peptide("A"), dna}, ProteinNA},
		{"protein na many peptides", []Entity{peptide("A"), peptide("B"), dna}, ProteinNA},
		{"saccharide", []Entity{sugar}, Saccharide},
		{"protein saccharide", []Entity{peptide("A"), glucan}, ProteinSaccharide},
		{"saccharide na", []Entity{sugar, rna}, SaccharideNA},
		{"everything", []Entity{peptide("A"), sugar, dna}, ProteinSaccharideNA},
		{"unknown entity", []Entity{peptide("A"), {Type: EntityUnknown}}, Other},
		{"unknown polymer", []Entity{peptide("A"), {Type: EntityPolymer}}, Other},
		{"cyclic", []Entity{{Type: EntityPolymer, Polymer: CyclicPseudoPeptide}}, Other},
		{"other polymer", []Entity{dna, {Type: EntityPolymer, Polymer: PolymerOther}}, Other},
		{"pna", []Entity{{Type: EntityPolymer, Polymer: Pna}}, NucleicAcid},
	}
	for _, tt := range tests {
		if got := ClassifyComplex(tt.entities); got != tt.want {
			t.Fatalf("%s: expected %s but got %s", tt.name, tt.want, got)
		}
	}
}

func TestComplexTypeString(t *testing.T) {
	assert.Equal(t, "Other", Other.String())
	assert.Equal(t, "ProteinSaccharideNA", ProteinSaccharideNA.String())
	assert.Equal(t, "ComplexProtein", ComplexProtein.String())
	assert.Equal(t, "ComplexType(12)", ComplexType(12).String())
	assert.Equal(t, "ComplexType(-1)", ComplexType(-1).String())
}

func TestSenseSequence(t *testing.T) {
	s, err := SenseSequence([]StrandSense{NoSense, Antiparallel, Antiparallel, Parallel})
	require.NoError(t, err)
	assert.Equal(t, "AAP", s)

	s, err = SenseSequence(nil)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	_, err = SenseSequence([]StrandSense{NoSense, 2})
	assert.True(t, errors.Is(err, ErrInvalidSense))
}
