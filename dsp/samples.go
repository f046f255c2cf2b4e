// Package dsp computes statistical and spectral summaries over
// numerically encoded sequences.
package dsp

import (
	"fmt"

	"github.com/peterhil/serpent/bio"
	"github.com/peterhil/serpent/codon"
)

// Policy decides how ambiguous symbols enter a numeric encoding.
type Policy int

const (
	// PolicyZero contributes zero for ambiguous and invalid symbols.
	// This is the default.
	PolicyZero Policy = iota
	// PolicySkip drops ambiguous and invalid symbols.
	PolicySkip
	// PolicyExpand averages over the candidate values an ambiguity
	// code stands for; invalid symbols are still dropped.
	PolicyExpand
)

func (p Policy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicyExpand:
		return "expand"
	}
	return "zero"
}

// ParsePolicy parses a policy name.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "zero":
		return PolicyZero, nil
	case "skip":
		return PolicySkip, nil
	case "expand":
		return PolicyExpand, nil
	}
	return PolicyZero, fmt.Errorf("unknown ambiguity policy: %s", name)
}

// Samples encodes codon indices as real values 0..63 for the
// analyzer. Under PolicyExpand an ambiguous codon becomes the
// midpoint of the index space, since its candidate set spans it.
func Samples(codons []byte, policy Policy) []float64 {
	xs := make([]float64, 0, len(codons))
	for _, c := range codons {
		if c < codon.NCodon {
			xs = append(xs, float64(c))
			continue
		}
		switch {
		case policy == PolicyZero:
			xs = append(xs, 0)
		case policy == PolicyExpand && c == codon.Ambiguous:
			xs = append(xs, float64(codon.NCodon-1)/2)
		}
	}
	return xs
}

// baseValue is the fixed symbol to value table: A=0, C=1, G=2, T/U=3.
var baseValue = map[byte]float64{'A': 0, 'C': 1, 'G': 2, 'T': 3, 'U': 3}

// BaseSamples encodes single nucleotide symbols as real values 0..3.
// Ambiguity codes follow the policy; under PolicyExpand they become
// the mean of their exact IUPAC base set.
func BaseSamples(seq string, policy Policy) []float64 {
	xs := make([]float64, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if v, ok := baseValue[c]; ok {
			xs = append(xs, v)
			continue
		}
		switch {
		case policy == PolicyZero:
			xs = append(xs, 0)
		case policy == PolicyExpand && bio.Classify(bio.Nucleotide, c) == bio.Ambiguous:
			set := bio.Bases(c)
			mean := 0.0
			for _, b := range set {
				mean += baseValue[b]
			}
			xs = append(xs, mean/float64(len(set)))
		}
	}
	return xs
}
