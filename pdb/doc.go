/*
Package pdb converts residue codes between the three-letter abbreviations used
in PDB and mmCIF records and one-letter codes, and provides a minimal Protein
record that converted sequences are meant to populate.

The lenient conversions (ConvertAmino3to1, ConvertAmino1to3 and
ConvertProtein3to1) never fail. A code without a mapping comes back as '?' or
"???", so a batch of residues always converts to a sequence of the same
length. Callers that would rather see an error can use the Lookup and Strict
methods on Table, which wrap ErrUnknownResidue.

The Standard table holds the 20 standard amino acids. Tables with
non-standard or modified residues, custom sentinels or case folding are built
with NewTable or TableFromConfig. Tables never change after construction and
may be shared between goroutines.

Parsing structure files is not done here. PolymerSequence and ClassifyComplex
work on values the caller has already read from a file.
*/
package pdb
