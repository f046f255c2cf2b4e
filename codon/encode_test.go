package codon

import (
	"testing"

	"github.com/peterhil/serpent/bio"
)

func nseq(name, data string) bio.Sequence {
	return bio.Sequence{Name: name, Sequence: data, Alphabet: bio.Nucleotide}
}

func TestEncodeScenario(tst *testing.T) {
	gc, _ := GetGeneticCode(1)
	e, err := gc.Encode(nseq("s", "ATGGCCTAA"), 0, Forward)
	if err != nil {
		tst.Fatal(err)
	}
	want := []byte{Index("ATG"), Index("GCC"), Index("TAA")}
	if len(e.Codons) != 3 {
		tst.Fatalf("expected 3 codons, got %d", len(e.Codons))
	}
	for i, c := range want {
		if e.Codons[i] != c {
			tst.Errorf("codon %d is %d, expected %d", i, e.Codons[i], c)
		}
	}
	if !gc.IsStartCodon(e.Codons[0]) {
		tst.Error("first codon should be a start codon")
	}
	if gc.Translate(e.Codons[0]) != 'M' {
		tst.Error("ATG should translate to M")
	}
	if gc.Translate(e.Codons[2]) != '*' {
		tst.Error("TAA should translate to the stop symbol")
	}
	if e.Dropped != 0 {
		tst.Errorf("no symbols should be dropped, got %d", e.Dropped)
	}
}

func TestEncodeAmbiguity(tst *testing.T) {
	gc, _ := GetGeneticCode(1)
	e, err := gc.Encode(nseq("s", "ATNGCC"), 0, Forward)
	if err != nil {
		tst.Fatal(err)
	}
	if e.Codons[0] != Ambiguous {
		tst.Error("ATN should encode to the Ambiguous sentinel")
	}
	if gc.Translate(e.Codons[0]) != 'X' {
		tst.Error("ambiguous codon should translate to X")
	}
	if gc.Translate(e.Codons[1]) != 'A' {
		tst.Error("GCC should still translate to A")
	}
	if e.NAmbiguous() != 1 {
		tst.Errorf("expected 1 ambiguous codon, got %d", e.NAmbiguous())
	}
}

func TestEncodeFrameLengths(tst *testing.T) {
	gc, _ := GetGeneticCode(1)
	data := "ATGGCCTAAC" // 10 symbols
	for frame := 0; frame <= 2; frame++ {
		e, err := gc.Encode(nseq("s", data), frame, Forward)
		if err != nil {
			tst.Fatal(err)
		}
		want := (len(data) - frame) / 3
		if len(e.Codons) != want {
			tst.Errorf("frame %d: %d codons, expected %d", frame, len(e.Codons), want)
		}
		if e.Dropped != len(data)-frame-want*3 {
			tst.Errorf("frame %d: dropped %d, expected %d",
				frame, e.Dropped, len(data)-frame-want*3)
		}
	}
}

func TestEncodeBadFrame(tst *testing.T) {
	gc, _ := GetGeneticCode(1)
	if _, err := gc.Encode(nseq("s", "ATGGCC"), 3, Forward); err == nil {
		tst.Error("expected error for frame offset 3")
	}
}

func TestEncodeEmpty(tst *testing.T) {
	gc, _ := GetGeneticCode(1)
	if _, err := gc.Encode(nseq("s", ""), 0, Forward); err != ErrEmptySequence {
		tst.Error("expected ErrEmptySequence for empty input")
	}
	if _, err := gc.Encode(nseq("s", "AT"), 0, Forward); err != ErrEmptySequence {
		tst.Error("expected ErrEmptySequence when no full codon fits")
	}
	if _, err := gc.Encode(nseq("s", "ATG"), 1, Forward); err != ErrEmptySequence {
		tst.Error("expected ErrEmptySequence when the frame eats the only codon")
	}
}

func TestDecodeEncodeIdentity(tst *testing.T) {
	gc, _ := GetGeneticCode(1)
	for _, data := range []string{"ATGGCCTAA", "ACGTACGTACGT", "TTT"} {
		e, err := gc.Encode(nseq("s", data), 0, Forward)
		if err != nil {
			tst.Fatal(err)
		}
		if got := e.Decode(); got != data {
			tst.Errorf("decode(encode(%q)) = %q", data, got)
		}
	}
}

func TestDecodeLossy(tst *testing.T) {
	gc, _ := GetGeneticCode(1)
	// Ambiguity and truncation make decoding lossy but idempotent.
	e, err := gc.Encode(nseq("s", "ATRGCCTA"), 0, Forward)
	if err != nil {
		tst.Fatal(err)
	}
	first := e.Decode()
	if first != "NNNGCC" {
		tst.Errorf("unexpected lossy decode %q", first)
	}
	e2, err := gc.Encode(nseq("s", first), 0, Forward)
	if err != nil {
		tst.Fatal(err)
	}
	if e2.Decode() != first {
		tst.Error("decoding is not idempotent")
	}
}

func TestEncodeReverseStrand(tst *testing.T) {
	gc, _ := GetGeneticCode(1)
	// reverse-complement of ATGGCC is GGCCAT
	e, err := gc.Encode(nseq("s", "ATGGCC"), 0, Reverse)
	if err != nil {
		tst.Fatal(err)
	}
	if e.Decode() != "GGCCAT" {
		tst.Errorf("reverse strand decodes to %q, expected GGCCAT", e.Decode())
	}
	if e.Strand != Reverse {
		tst.Error("strand not recorded")
	}
}

func TestTranslateUntilStop(tst *testing.T) {
	gc, _ := GetGeneticCode(1)
	e, err := gc.Encode(nseq("s", "ATGGCCTAAGCC"), 0, Forward)
	if err != nil {
		tst.Fatal(err)
	}
	if aa := e.Translate(); aa != "MA*A" {
		tst.Errorf("full translation %q, expected MA*A", aa)
	}
	if aa := e.TranslateUntilStop(); aa != "MA" {
		tst.Errorf("translation until stop %q, expected MA", aa)
	}
}

func TestWordsAndPeptides(tst *testing.T) {
	gc, _ := GetGeneticCode(1)
	e, err := gc.Encode(nseq("s", "ATGGCCTAAGCCTTT"), 0, Forward)
	if err != nil {
		tst.Fatal(err)
	}
	words := e.Words(2)
	if len(words) != 2 || words[0] != "ATGGCC" || words[1] != "TAAGCC" {
		tst.Errorf("unexpected words %v", words)
	}
	peps := e.Peptides(2)
	if len(peps) != 2 || peps[0] != "MA" || peps[1] != "*A" {
		tst.Errorf("unexpected peptides %v", peps)
	}
}
