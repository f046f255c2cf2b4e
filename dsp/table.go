package dsp

import (
	"math"
	"sort"

	"github.com/peterhil/serpent/bio"
	"github.com/peterhil/serpent/codon"
)

// Table holds occurrence counts and relative frequencies keyed by
// symbol, codon or word. Relative frequencies sum to one.
type Table struct {
	Counts map[string]uint64
	Freq   map[string]float64
	Total  uint64
}

func newTable(counts map[string]uint64) (*Table, error) {
	t := &Table{
		Counts: counts,
		Freq:   make(map[string]float64, len(counts)),
	}
	for _, c := range counts {
		t.Total += c
	}
	if t.Total == 0 {
		return nil, ErrEmptyInput
	}
	for k, c := range counts {
		t.Freq[k] = float64(c) / float64(t.Total)
	}
	return t, nil
}

// CodonTable counts the codons of an encoded sequence, keyed by
// triplet. Sentinel codons count under their placeholder triplets.
func CodonTable(e *codon.Encoded) (*Table, error) {
	counts := make(map[string]uint64, codon.NCodon)
	for _, c := range e.Codons {
		counts[codon.Triplet(c)]++
	}
	return newTable(counts)
}

// SymbolTable counts single symbols of a string.
func SymbolTable(s string) (*Table, error) {
	counts := make(map[string]uint64)
	for i := 0; i < len(s); i++ {
		counts[s[i:i+1]]++
	}
	return newTable(counts)
}

// WordTable counts equal-length words, e.g. peptides.
func WordTable(words []string) (*Table, error) {
	counts := make(map[string]uint64)
	for _, w := range words {
		counts[w]++
	}
	return newTable(counts)
}

// Keys returns the table keys ordered by descending count, ties
// broken lexicographically.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.Counts))
	for k := range t.Counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if t.Counts[keys[i]] != t.Counts[keys[j]] {
			return t.Counts[keys[i]] > t.Counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Entropy returns the Shannon entropy of the table in units of the
// given logarithm base (2 for bits).
func (t *Table) Entropy(base float64) float64 {
	h := 0.0
	for _, f := range t.Freq {
		if f > 0 {
			h -= f * math.Log(f)
		}
	}
	return h / math.Log(base)
}

// GCContent returns the fraction of G and C among the unambiguous
// bases of a nucleotide sequence.
func GCContent(seq string) (float64, error) {
	var gc, acgt int
	for i := 0; i < len(seq); i++ {
		if bio.Classify(bio.Nucleotide, seq[i]) != bio.Base {
			continue
		}
		acgt++
		switch seq[i] {
		case 'G', 'g', 'C', 'c':
			gc++
		}
	}
	if acgt == 0 {
		return 0, ErrEmptyInput
	}
	return float64(gc) / float64(acgt), nil
}
