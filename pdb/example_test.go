package pdb

import (
	"fmt"
)

func ExampleConvertProtein3to1() {
	fmt.Println(ConvertProtein3to1([]string{"ALA", "GLY", "XXX"}))
	fmt.Printf("%c %s\n", ConvertAmino3to1("TRP"), ConvertAmino1to3('K'))
	fmt.Printf("%c %s\n", ConvertAmino3to1("XXX"), ConvertAmino1to3('Z'))

	// Output:
	// AG?
	// W LYS
	// ? ???
}

func ExampleNewTable() {
	tab, err := NewTable(WithFoldCase(), WithNonStandard(), WithModified())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(tab.Protein3to1([]string{"mse", "Sec", "PYL", "gly"}))

	_, err = tab.StrictProtein3to1([]string{"GLY", "HOH"})
	fmt.Println(err)

	// Output:
	// MUOG
	// residue 1: "HOH": unknown residue code
}

func ExamplePolymerSequence_ChainSubsequence() {
	ps, err := NewPolymerSequence(nil, []Monomer{
		{Chain: "B", SeqId: 1, MonId: "ALA"},
		{Chain: "B", SeqId: 2, MonId: "TYR"},
		{Chain: "B", SeqId: 3, MonId: "ILE"},
		{Chain: "B", SeqId: 4, MonId: "GLY"},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ps.ChainSubsequence("B", 2, 4))
	fmt.Println(ps.ChainSubsequence("B", 4, 2))

	// Output:
	// YIG 3 <nil>
	// GIY -3 <nil>
}
