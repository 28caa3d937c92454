package pdb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/TuftsBCB/seq"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/TuftsBCB/pdbres/config"
)

// Residue is a single one-letter residue code.
type Residue = seq.Residue

// Sentinels returned by the lenient conversions when a code has no mapping.
const (
	UnknownOne   Residue = '?'
	UnknownThree         = "???"
)

var (
	ErrUnknownResidue = errors.New("unknown residue code")
	ErrInvalidAbbrev  = errors.New("invalid residue abbreviation")
)

var aminoMap = map[string]seq.Residue{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
}

var nonStandardMap = map[string]seq.Residue{
	"SEC": 'U', "PYL": 'O',
}

// Modified residues only ever map towards their parent's letter.
var modifiedMap = map[string]seq.Residue{
	"MSE": 'M', "CSA": 'C', "LLP": 'K', "CSW": 'C',
	"UNK": 'X',
}

var deoxyMap = map[string]seq.Residue{
	"DA": 'A', "DC": 'C', "DG": 'G', "DT": 'T', "DI": 'I', "DU": 'U',
}

var riboMap = map[string]seq.Residue{
	"A": 'A', "C": 'C', "G": 'G', "U": 'U', "I": 'I', "T": 'T',
}

// Table is an immutable bidirectional mapping between three-letter and
// one-letter residue codes. A Table is safe for concurrent use.
type Table struct {
	threeToOne map[string]Residue
	oneToThree map[Residue]string

	// consulted by the three-to-one direction only
	aliases map[string]Residue

	unknownOne   Residue
	unknownThree string
	foldCase     bool
}

// TableOption customizes a Table under construction.
type TableOption func(*Table) error

// WithNonStandard adds selenocysteine (SEC/U) and pyrrolysine (PYL/O).
func WithNonStandard() TableOption {
	return func(t *Table) error {
		for three, one := range nonStandardMap {
			if err := t.add(three, one); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithModified maps common modified residues, e.g. selenomethionine (MSE),
// to the letter of the residue they derive from. The mapping is one way:
// converting 'M' back still yields "MET".
func WithModified() TableOption {
	return func(t *Table) error {
		for three, one := range modifiedMap {
			if _, ok := t.threeToOne[three]; ok {
				return errors.Wrapf(ErrInvalidAbbrev,
					"modified residue %s is already mapped", three)
			}
			t.aliases[three] = one
		}
		return nil
	}
}

// WithResidue adds a custom pair. Neither code may already be in the table.
func WithResidue(three string, one Residue) TableOption {
	return func(t *Table) error {
		return t.add(three, one)
	}
}

// WithUnknown replaces the '?' and "???" sentinels. Neither sentinel may be
// a code the finished table maps.
func WithUnknown(one Residue, three string) TableOption {
	return func(t *Table) error {
		if len(three) != 3 {
			return errors.Wrapf(ErrInvalidAbbrev,
				"unknown sentinel %q must be three characters", three)
		}
		t.unknownOne, t.unknownThree = one, three
		return nil
	}
}

// WithFoldCase makes lookups case-insensitive by upper-casing input codes.
// Every pair in the table is upper-cased once all options have run, wherever
// this option appears.
func WithFoldCase() TableOption {
	return func(t *Table) error {
		t.foldCase = true
		return nil
	}
}

// NewTable returns a table of the 20 standard amino acids with opts applied
// in order.
func NewTable(opts ...TableOption) (*Table, error) {
	t := &Table{
		threeToOne:   make(map[string]Residue, len(aminoMap)),
		oneToThree:   make(map[Residue]string, len(aminoMap)),
		aliases:      make(map[string]Residue),
		unknownOne:   UnknownOne,
		unknownThree: UnknownThree,
	}
	for three, one := range aminoMap {
		t.threeToOne[three] = one
		t.oneToThree[one] = three
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	if t.foldCase {
		if err := t.fold(); err != nil {
			return nil, err
		}
	}
	if three, ok := t.oneToThree[t.unknownOne]; ok {
		return nil, errors.Wrapf(ErrInvalidAbbrev,
			"unknown sentinel %c is the code of %s", t.unknownOne, three)
	}
	if one, ok := t.threeToOne[t.unknownThree]; ok {
		return nil, errors.Wrapf(ErrInvalidAbbrev,
			"unknown sentinel %s is the code of %c", t.unknownThree, one)
	}
	return t, nil
}

// fold upper-cases every code, failing when two codes collapse into one.
func (t *Table) fold() error {
	threeToOne := make(map[string]Residue, len(t.threeToOne))
	oneToThree := make(map[Residue]string, len(t.oneToThree))
	aliases := make(map[string]Residue, len(t.aliases))
	for three, one := range t.threeToOne {
		three, one = strings.ToUpper(three), upper(one)
		if _, ok := threeToOne[three]; ok {
			return errors.Wrapf(ErrInvalidAbbrev,
				"%s is mapped twice when case is folded", three)
		}
		if _, ok := oneToThree[one]; ok {
			return errors.Wrapf(ErrInvalidAbbrev,
				"%c is mapped twice when case is folded", one)
		}
		threeToOne[three] = one
		oneToThree[one] = three
	}
	for three, one := range t.aliases {
		three = strings.ToUpper(three)
		if _, ok := threeToOne[three]; ok {
			return errors.Wrapf(ErrInvalidAbbrev,
				"modified residue %s is mapped twice when case is folded", three)
		}
		aliases[three] = upper(one)
	}
	t.threeToOne, t.oneToThree, t.aliases = threeToOne, oneToThree, aliases
	return nil
}

// TableFromConfig builds a table from configured residue settings.
func TableFromConfig(cfg config.Residues) (*Table, error) {
	var opts []TableOption
	if cfg.NonStandard {
		opts = append(opts, WithNonStandard())
	}
	if cfg.Modified {
		opts = append(opts, WithModified())
	}
	if cfg.FoldCase {
		opts = append(opts, WithFoldCase())
	}
	if cfg.Unknown != "" || cfg.UnknownThree != "" {
		one, three := string(UnknownOne), UnknownThree
		if cfg.Unknown != "" {
			one = cfg.Unknown
		}
		if cfg.UnknownThree != "" {
			three = cfg.UnknownThree
		}
		if len(one) != 1 {
			return nil, errors.Wrapf(ErrInvalidAbbrev,
				"unknown sentinel %q must be a single character", one)
		}
		opts = append(opts, WithUnknown(Residue(one[0]), three))
	}

	// map iteration order would make collision errors nondeterministic
	extras := lo.Keys(cfg.Extra)
	sort.Strings(extras)
	for _, three := range extras {
		one := cfg.Extra[three]
		if len(one) != 1 {
			return nil, errors.Wrapf(ErrInvalidAbbrev,
				"extra residue %s: %q is not a single character", three, one)
		}
		opts = append(opts, WithResidue(three, Residue(one[0])))
	}
	return NewTable(opts...)
}

func (t *Table) add(three string, one Residue) error {
	if len(three) != 3 {
		return errors.Wrapf(ErrInvalidAbbrev,
			"%q is not a three-letter code", three)
	}
	if prev, ok := t.threeToOne[three]; ok {
		return errors.Wrapf(ErrInvalidAbbrev,
			"%s is already mapped to %c", three, prev)
	}
	if prev, ok := t.aliases[three]; ok {
		return errors.Wrapf(ErrInvalidAbbrev,
			"%s is already a modified residue of %c", three, prev)
	}
	if prev, ok := t.oneToThree[one]; ok {
		return errors.Wrapf(ErrInvalidAbbrev,
			"%c is already mapped to %s", one, prev)
	}
	t.threeToOne[three] = one
	t.oneToThree[one] = three
	return nil
}

var standard = mustTable(NewTable())

func mustTable(t *Table, err error) *Table {
	if err != nil {
		panic(err)
	}
	return t
}

// Standard returns the process-wide table of the 20 standard residues.
func Standard() *Table {
	return standard
}

// Len returns the number of bidirectional pairs in the table.
func (t *Table) Len() int {
	return len(t.threeToOne)
}

// Codes returns the sorted three-letter codes that have an inverse.
func (t *Table) Codes() []string {
	codes := lo.Keys(t.threeToOne)
	sort.Strings(codes)
	return codes
}

func (t *Table) lookup3(code string) (Residue, bool) {
	if t.foldCase {
		code = strings.ToUpper(code)
	}
	if v, ok := t.threeToOne[code]; ok {
		return v, true
	}
	v, ok := t.aliases[code]
	return v, ok
}

func (t *Table) lookup1(code Residue) (string, bool) {
	if t.foldCase {
		code = upper(code)
	}
	v, ok := t.oneToThree[code]
	return v, ok
}

// Amino3to1 returns the one-letter code for a three-letter code, or the
// unknown sentinel when there is no mapping.
func (t *Table) Amino3to1(code string) Residue {
	if v, ok := t.lookup3(code); ok {
		return v
	}
	return t.unknownOne
}

// Amino1to3 returns the three-letter code for a one-letter code, or the
// unknown sentinel when there is no mapping.
func (t *Table) Amino1to3(code Residue) string {
	if v, ok := t.lookup1(code); ok {
		return v
	}
	return t.unknownThree
}

// Protein3to1 converts every code in order. The result always has exactly
// len(codes) characters; unmapped codes appear as the unknown sentinel.
func (t *Table) Protein3to1(codes []string) string {
	var b strings.Builder
	b.Grow(len(codes))
	for _, code := range codes {
		b.WriteByte(byte(t.Amino3to1(code)))
	}
	return b.String()
}

// Lookup3to1 is Amino3to1 with an error instead of a sentinel.
func (t *Table) Lookup3to1(code string) (Residue, error) {
	if v, ok := t.lookup3(code); ok {
		return v, nil
	}
	return 0, errors.Wrapf(ErrUnknownResidue, "%q", code)
}

// Lookup1to3 is Amino1to3 with an error instead of a sentinel.
func (t *Table) Lookup1to3(code Residue) (string, error) {
	if v, ok := t.lookup1(code); ok {
		return v, nil
	}
	return "", errors.Wrapf(ErrUnknownResidue, "%q", rune(code))
}

// StrictProtein3to1 is Protein3to1 except that it stops at the first
// unmapped code and reports its position.
func (t *Table) StrictProtein3to1(codes []string) (string, error) {
	buf := make([]byte, len(codes))
	for i, code := range codes {
		r, err := t.Lookup3to1(code)
		if err != nil {
			return "", errors.Wrapf(err, "residue %d", i)
		}
		buf[i] = byte(r)
	}
	return string(buf), nil
}

// ConvertAmino3to1 converts with the standard table, yielding '?' when
// code is not one of the 20 standard residues.
func ConvertAmino3to1(code string) Residue {
	return standard.Amino3to1(code)
}

// ConvertAmino1to3 converts with the standard table, yielding "???" when
// code is not one of the 20 standard residues.
func ConvertAmino1to3(code Residue) string {
	return standard.Amino1to3(code)
}

// ConvertProtein3to1 converts a sequence of codes with the standard table.
func ConvertProtein3to1(codes []string) string {
	return standard.Protein3to1(codes)
}

type SequenceType int

const (
	SeqProtein SequenceType = iota
	SeqDeoxy
	SeqRibo
)

func (typ SequenceType) String() string {
	switch typ {
	case SeqProtein:
		return "Protein"
	case SeqDeoxy:
		return "Deoxy"
	case SeqRibo:
		return "Ribo"
	}
	panic(fmt.Sprintf("Unknown sequence type: %d", typ))
}

// AbbrevType guesses the kind of residue from the length of its PDB
// abbreviation: three for amino acids, two for deoxyribonucleotides and one
// for ribonucleotides.
func AbbrevType(abbrev string) (SequenceType, error) {
	switch len(abbrev) {
	case 3:
		return SeqProtein, nil
	case 2:
		return SeqDeoxy, nil
	case 1:
		return SeqRibo, nil
	}
	return 0, errors.Wrapf(ErrInvalidAbbrev, "%q (length: %d)",
		abbrev, len(abbrev))
}

// Abbrev converts any residue abbreviation found in a SEQRES record.
// Amino acids go through the table; nucleotides without a mapping become 'X'.
func (t *Table) Abbrev(abbrev string) (Residue, SequenceType, error) {
	typ, err := AbbrevType(abbrev)
	if err != nil {
		return 0, 0, err
	}
	switch typ {
	case SeqProtein:
		return t.Amino3to1(abbrev), typ, nil
	case SeqDeoxy:
		return nucleotide(deoxyMap, abbrev), typ, nil
	default:
		return nucleotide(riboMap, abbrev), typ, nil
	}
}

func nucleotide(m map[string]seq.Residue, abbrev string) Residue {
	if v, ok := m[abbrev]; ok {
		return v
	}
	return 'X'
}

func upper(r Residue) Residue {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
