package codon

import (
	"testing"
)

func TestIndexTripletBijection(tst *testing.T) {
	seen := make(map[string]bool, NCodon)
	for i := 0; i < NCodon; i++ {
		triplet := Triplet(byte(i))
		if seen[triplet] {
			tst.Errorf("triplet %q produced twice", triplet)
		}
		seen[triplet] = true
		if back := Index(triplet); back != byte(i) {
			tst.Errorf("Index(Triplet(%d)) = %d", i, back)
		}
	}
}

func TestIndexPacking(tst *testing.T) {
	// big-endian 2-bit codes, A=0 C=1 G=2 T=3
	tests := []struct {
		triplet string
		index   byte
	}{
		{"AAA", 0},
		{"AAC", 1},
		{"AAG", 2},
		{"AAT", 3},
		{"ACA", 4},
		{"CAA", 16},
		{"TTT", 63},
		{"atg", Index("ATG")},
		{"AUG", Index("ATG")},
	}
	for _, test := range tests {
		if got := Index(test.triplet); got != test.index {
			tst.Errorf("Index(%q) = %d, expected %d", test.triplet, got, test.index)
		}
	}
}

func TestIndexSentinels(tst *testing.T) {
	if Index("ATN") != Ambiguous {
		tst.Error("ambiguity code should encode to the Ambiguous sentinel")
	}
	if Index("RAT") != Ambiguous {
		tst.Error("ambiguity code should encode to the Ambiguous sentinel")
	}
	if Index("A-G") != Invalid {
		tst.Error("gap should encode to the Invalid sentinel")
	}
	if Index("A?G") != Invalid {
		tst.Error("unrecognized byte should encode to the Invalid sentinel")
	}
	if Index("AT") != Invalid || Index("ATGG") != Invalid {
		tst.Error("non-triplet input should encode to the Invalid sentinel")
	}
	if Triplet(Ambiguous) != "NNN" {
		tst.Error("Ambiguous should decode to NNN")
	}
	if Triplet(Invalid) != "---" {
		tst.Error("Invalid should decode to ---")
	}
}

func TestTranslateStandard(tst *testing.T) {
	gc, err := GetGeneticCode(1)
	if err != nil {
		tst.Fatal(err)
	}
	tests := []struct {
		triplet string
		aa      byte
	}{
		{"ATG", 'M'},
		{"GCC", 'A'},
		{"TAA", '*'},
		{"TAG", '*'},
		{"TGA", '*'},
		{"TGG", 'W'},
		{"AAA", 'K'},
		{"TTT", 'F'},
		{"CGA", 'R'},
		{"ATN", 'X'},
		{"A-G", 'X'},
	}
	for _, test := range tests {
		if got := gc.TranslateTriplet(test.triplet); got != test.aa {
			tst.Errorf("Translate(%q) = %c, expected %c", test.triplet, got, test.aa)
		}
	}
}

func TestTranslateDeterministic(tst *testing.T) {
	gc, err := GetGeneticCode(1)
	if err != nil {
		tst.Fatal(err)
	}
	for i := 0; i < NCodon; i++ {
		first := gc.Translate(byte(i))
		for rep := 0; rep < 3; rep++ {
			if gc.Translate(byte(i)) != first {
				tst.Fatalf("translation of index %d not stable", i)
			}
		}
	}
}

func TestStartStopCodons(tst *testing.T) {
	gc, _ := GetGeneticCode(1)
	if !gc.IsStartCodon(Index("ATG")) {
		tst.Error("ATG should be a start codon in the standard code")
	}
	for _, stop := range []string{"TAA", "TAG", "TGA"} {
		if !gc.IsStopCodon(Index(stop)) {
			tst.Errorf("%s should be a stop codon in the standard code", stop)
		}
	}
	if gc.NStop() != 3 {
		tst.Errorf("standard code has %d stop codons, expected 3", gc.NStop())
	}
	if gc.IsStopCodon(Ambiguous) || gc.IsStartCodon(Invalid) {
		tst.Error("sentinels are never start or stop codons")
	}
}

func TestVertebrateMitochondrial(tst *testing.T) {
	gc, err := GetGeneticCode(2)
	if err != nil {
		tst.Fatal(err)
	}
	if aa := gc.TranslateTriplet("TGA"); aa != 'W' {
		tst.Errorf("TGA translates to %c in table 2, expected W", aa)
	}
	for _, stop := range []string{"AGA", "AGG", "TAA", "TAG"} {
		if !gc.IsStopCodon(Index(stop)) {
			tst.Errorf("%s should be a stop codon in table 2", stop)
		}
	}
	if !gc.IsStartCodon(Index("ATA")) {
		tst.Error("ATA should be a start codon in table 2")
	}
}

func TestUnsupportedGeneticCode(tst *testing.T) {
	if _, err := GetGeneticCode(99); err == nil {
		tst.Error("expected error for unsupported genetic code id")
	}
}
