// Package codon maps nucleotide triplets onto a dense 64-slot index
// space and translates them using the NCBI genetic codes.
package codon

import (
	"github.com/peterhil/serpent/bio"
)

// NCodon is the size of the unambiguous codon index space.
const NCodon = 64

// Sentinel indices outside [0,NCodon). A codon with an ambiguity code
// in any position encodes to Ambiguous; a codon with a gap or a byte
// outside the alphabet encodes to Invalid. Both are first-class
// encoding outcomes, not errors.
const (
	Ambiguous = byte(0xFE)
	Invalid   = byte(0xFF)
)

var (
	// alphabet orders the bases by their 2-bit code.
	alphabet = [...]byte{'A', 'C', 'G', 'T'}
	// baseNum is the reverse nucleotide alphabet (letter to a number).
	baseNum = map[byte]byte{
		'A': 0, 'C': 1, 'G': 2, 'T': 3, 'U': 3,
		'a': 0, 'c': 1, 'g': 2, 't': 3, 'u': 3,
	}
)

// Index packs a nucleotide triplet into a codon index: three 2-bit
// base codes (A=0, C=1, G=2, T/U=3) big-endian into 6 bits. The
// ordering is stable; downstream statistics are indexed by it.
func Index(triplet string) byte {
	if len(triplet) != 3 {
		return Invalid
	}
	var index byte
	for i := 0; i < 3; i++ {
		n, ok := baseNum[triplet[i]]
		if !ok {
			if bio.Classify(bio.Nucleotide, triplet[i]) == bio.Ambiguous {
				return Ambiguous
			}
			return Invalid
		}
		index = index<<2 | n
	}
	return index
}

// Triplet is the inverse of Index for [0,NCodon). The sentinels decode
// to placeholder triplets: Ambiguous to "NNN" (any base) and Invalid
// to "---" (gap), so decoded output keeps its reading frame.
func Triplet(index byte) string {
	if index >= NCodon {
		if index == Ambiguous {
			return "NNN"
		}
		return "---"
	}
	return string([]byte{
		alphabet[index>>4&3],
		alphabet[index>>2&3],
		alphabet[index&3],
	})
}
