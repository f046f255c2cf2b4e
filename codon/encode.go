package codon

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/peterhil/serpent/bio"
)

// Strand selects which strand of a nucleotide sequence is encoded.
type Strand int

const (
	// Forward encodes the sequence as given.
	Forward Strand = iota
	// Reverse encodes the reverse-complement of the sequence.
	Reverse
)

func (s Strand) String() string {
	if s == Reverse {
		return "reverse"
	}
	return "forward"
}

// ErrEmptySequence is returned when a sequence has no full codon in
// the requested frame. Statistics over zero codons are undefined, not
// zero, so this is surfaced instead of an empty result.
var ErrEmptySequence = errors.New("no full codon in sequence")

// Encoded is a sequence encoded into codon indices for one
// (frame, strand) pair. Dropped counts the trailing symbols that
// could not fill a codon and were truncated.
type Encoded struct {
	Name    string
	Codons  []byte
	Frame   int
	Strand  Strand
	Dropped int
	GCode   *GeneticCode
}

// Encode partitions a nucleotide sequence into consecutive
// non-overlapping triplets starting at the frame offset (0, 1 or 2)
// and converts each triplet into a codon index. Reverse strand
// selection reverse-complements before windowing. Trailing symbols
// that cannot form a full codon are dropped, not padded; the count is
// kept for auditing.
func (gc *GeneticCode) Encode(seq bio.Sequence, frame int, strand Strand) (*Encoded, error) {
	if frame < 0 || frame > 2 {
		return nil, fmt.Errorf("frame offset must be 0, 1 or 2, got %d", frame)
	}
	data := seq.Sequence
	if strand == Reverse {
		data = bio.ReverseComplement(data)
	}
	n := 0
	if len(data) > frame {
		n = (len(data) - frame) / 3
	}
	if n == 0 {
		return nil, ErrEmptySequence
	}
	e := &Encoded{
		Name:    seq.Name,
		Codons:  make([]byte, 0, n),
		Frame:   frame,
		Strand:  strand,
		Dropped: len(data) - frame - n*3,
		GCode:   gc,
	}
	for i := frame; i+3 <= len(data); i += 3 {
		e.Codons = append(e.Codons, Index(data[i:i+3]))
	}
	return e, nil
}

// Decode maps the codon indices back to a nucleotide string. It is
// the exact inverse of Encode on unambiguous indices; sentinels decode
// to placeholder triplets, so decoding is idempotent but lossy for
// input that contained ambiguity or was truncated.
func (e *Encoded) Decode() string {
	var b bytes.Buffer
	b.Grow(3 * len(e.Codons))
	for _, c := range e.Codons {
		b.WriteString(Triplet(c))
	}
	return b.String()
}

// Translate translates every codon, including stop codons.
func (e *Encoded) Translate() string {
	var b bytes.Buffer
	b.Grow(len(e.Codons))
	for _, c := range e.Codons {
		b.WriteByte(e.GCode.Translate(c))
	}
	return b.String()
}

// TranslateUntilStop translates codons up to but not including the
// first stop codon.
func (e *Encoded) TranslateUntilStop() string {
	var b bytes.Buffer
	for _, c := range e.Codons {
		if e.GCode.IsStopCodon(c) {
			break
		}
		b.WriteByte(e.GCode.Translate(c))
	}
	return b.String()
}

// NAmbiguous counts codons that encoded to a sentinel index.
func (e *Encoded) NAmbiguous() (count int) {
	for _, c := range e.Codons {
		if c >= NCodon {
			count++
		}
	}
	return
}

// Words groups the codons into consecutive runs of n and spells each
// run out as a 3*n letter string, for k-mer indexing. A partial
// trailing run is dropped so all words have equal length.
func (e *Encoded) Words(n int) []string {
	if n < 1 {
		return nil
	}
	words := make([]string, 0, len(e.Codons)/n)
	for i := 0; i+n <= len(e.Codons); i += n {
		var b bytes.Buffer
		for _, c := range e.Codons[i : i+n] {
			b.WriteString(Triplet(c))
		}
		words = append(words, b.String())
	}
	return words
}

// Peptides groups the translation into consecutive length-n amino
// acid words, dropping a partial trailing word.
func (e *Encoded) Peptides(n int) []string {
	if n < 1 {
		return nil
	}
	aa := e.Translate()
	words := make([]string, 0, len(aa)/n)
	for i := 0; i+n <= len(aa); i += n {
		words = append(words, aa[i:i+n])
	}
	return words
}

// String returns the encoded sequence in FASTA-like format with one
// triplet per codon.
func (e *Encoded) String() (s string) {
	var b bytes.Buffer
	for _, c := range e.Codons {
		b.WriteString(Triplet(c) + " ")
	}
	s = ">" + e.Name + "\n" + bio.Wrap(b.String(), 80)
	return
}
