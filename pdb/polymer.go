package pdb

import (
	"github.com/TencentBlueKing/gopkg/collection/set"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/TuftsBCB/pdbres/logging"
)

var (
	ErrInvalidPolymer = errors.New("invalid polymer sequence")
	ErrUnknownChain   = errors.New("unknown chain")
	ErrLabelNotFound  = errors.New("sequence label not found")
)

// Monomer is one row of an mmCIF _pdbx_poly_seq_scheme loop.
type Monomer struct {
	// pdb_strand_id
	Chain string

	// entity_id
	Entity int

	// seq_id, strictly increasing within a chain
	SeqId int

	// mon_id, the three-letter residue code
	MonId string

	// hetero; set when several monomers share one SeqId
	Hetero bool
}

type span struct {
	start, end int
}

// PolymerSequence is the full polymer sequence of an entry, with every chain
// occupying a contiguous span. Only the first monomer of a microheterogeneous
// position is kept.
type PolymerSequence struct {
	monomers  []Monomer
	chains    []string
	spans     map[string]span
	oneLetter string
}

// NewPolymerSequence indexes monomers by chain and converts them to
// one-letter codes with t. A nil table means Standard().
func NewPolymerSequence(t *Table, monomers []Monomer) (*PolymerSequence, error) {
	if t == nil {
		t = Standard()
	}

	kept := make([]Monomer, 0, len(monomers))
	for i := 0; i < len(monomers); i++ {
		m := monomers[i]
		kept = append(kept, m)
		if !m.Hetero {
			continue
		}
		j := i + 1
		for j < len(monomers) &&
			monomers[j].Chain == m.Chain && monomers[j].SeqId == m.SeqId {
			j++
		}
		if dropped := j - i - 1; dropped > 0 {
			logging.Logger().WithFields(logrus.Fields{
				"chain":   m.Chain,
				"seq_id":  m.SeqId,
				"kept":    m.MonId,
				"dropped": dropped,
			}).Debug("collapsed microheterogeneity")
		}
		i = j - 1
	}

	ps := &PolymerSequence{
		monomers: kept,
		spans:    make(map[string]span),
	}
	seen := set.NewStringSet()
	for i, m := range kept {
		if i > 0 && kept[i-1].Chain == m.Chain {
			if m.SeqId <= kept[i-1].SeqId {
				return nil, errors.Wrapf(ErrInvalidPolymer,
					"chain %s: seq id %d follows %d", m.Chain, m.SeqId,
					kept[i-1].SeqId)
			}
			sp := ps.spans[m.Chain]
			sp.end = i
			ps.spans[m.Chain] = sp
			continue
		}
		if seen.Has(m.Chain) {
			return nil, errors.Wrapf(ErrInvalidPolymer,
				"chain %s is not contiguous (reappears at index %d)", m.Chain, i)
		}
		seen.Add(m.Chain)
		ps.chains = append(ps.chains, m.Chain)
		ps.spans[m.Chain] = span{start: i, end: i}
	}

	ps.oneLetter = t.Protein3to1(lo.Map(kept, func(m Monomer, _ int) string {
		return m.MonId
	}))
	return ps, nil
}

// OneLetterCode is the one-letter sequence of every chain, in input order.
func (ps *PolymerSequence) OneLetterCode() string {
	return ps.oneLetter
}

// Len is the number of monomers after collapsing microheterogeneity.
func (ps *PolymerSequence) Len() int {
	return len(ps.monomers)
}

// Monomers returns a copy of the kept monomers.
func (ps *PolymerSequence) Monomers() []Monomer {
	return append([]Monomer(nil), ps.monomers...)
}

// Chains returns chain identifiers in the order they first appear.
func (ps *PolymerSequence) Chains() []string {
	return append([]string(nil), ps.chains...)
}

// ChainSequence returns the one-letter sequence of chain, or "" when the
// chain is not present.
func (ps *PolymerSequence) ChainSequence(chain string) string {
	sp, ok := ps.spans[chain]
	if !ok {
		return ""
	}
	return ps.oneLetter[sp.start : sp.end+1]
}

// ChainSubsequence returns the residues of chain between the monomers
// labelled startId and endId, both inclusive, along with the number of
// residues. When endId comes before startId the subsequence is read
// backwards and the returned length is negative.
func (ps *PolymerSequence) ChainSubsequence(
	chain string,
	startId, endId int,
) (string, int, error) {
	sp, ok := ps.spans[chain]
	if !ok {
		return "", 0, errors.Wrapf(ErrUnknownChain, "%q", chain)
	}
	si, err := ps.search(sp.start, sp.end, startId)
	if err != nil {
		return "", 0, errors.Wrapf(err, "chain %s", chain)
	}
	ei, err := ps.search(sp.start, sp.end, endId)
	if err != nil {
		return "", 0, errors.Wrapf(err, "chain %s", chain)
	}

	if ei >= si {
		return ps.oneLetter[si : ei+1], ei - si + 1, nil
	}
	rev := []byte(ps.oneLetter[ei : si+1])
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return string(rev), -len(rev), nil
}

// search finds the index of label within [left, right]. Labels usually
// increase by one per monomer, so the first guess after the midpoint jumps
// straight to where label would be without gaps.
func (ps *PolymerSequence) search(left, right, label int) (int, error) {
	for left <= right {
		centre := (left + right) / 2
		centreLabel := ps.monomers[centre].SeqId
		if centreLabel == label {
			return centre, nil
		}

		next := min(right, max(left, centre+label-centreLabel))
		if ps.monomers[next].SeqId == label {
			return next, nil
		}

		if label < centreLabel {
			right = centre - 1
		} else {
			left = centre + 1
		}
	}
	return 0, errors.Wrapf(ErrLabelNotFound, "seq id %d", label)
}
