// Package bio provides sequence alphabets and FASTA input.
package bio

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Sequence stores one nucleotide or protein sequence with its name.
// The core treats it as read-only for the duration of an analysis.
type Sequence struct {
	Name     string
	Sequence string
	Alphabet Alphabet
}

// Sequences stores multiple sequences, e.g. the contents of one file.
type Sequences []Sequence

// NInvalid counts symbols outside the sequence alphabet.
func (seq Sequence) NInvalid() (count int) {
	for i := 0; i < len(seq.Sequence); i++ {
		if Classify(seq.Alphabet, seq.Sequence[i]) == Invalid {
			count++
		}
	}
	return
}

// ParseFasta parses FASTA sequences from a reader. Lines are unwrapped,
// spaces removed and symbols uppercased; symbol validation is left to
// the consumers so a single bad byte never drops a whole record.
func ParseFasta(rd io.Reader, alphabet Alphabet) (seqs Sequences, err error) {
	seqs = make(Sequences, 0, 10)
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' || line[0] == ';' {
			seq := Sequence{Name: strings.TrimSpace(line[1:]), Alphabet: alphabet}
			seqs = append(seqs, seq)
		} else {
			if len(seqs) == 0 {
				return nil, errors.New("sequence w/o prefix")
			}
			line = strings.ToUpper(strings.Replace(line, " ", "", -1))
			seqs[len(seqs)-1].Sequence += line
		}
	}
	return seqs, scanner.Err()
}

// AutoAlphabet picks the alphabet from the file extension: .faa is
// amino acid data, everything else nucleotide.
func AutoAlphabet(filename string) Alphabet {
	if strings.HasSuffix(strings.ToLower(filename), ".faa") {
		return AminoAcid
	}
	return Nucleotide
}

// Wrap inputs a string and wraps it so string length is n characters
// or less.
func Wrap(seq string, n int) (s string) {
	for i := 0; i < len(seq); i += n {
		end := i + n
		if end > len(seq) {
			end = len(seq)
		}
		s += seq[i:end] + "\n"
	}
	return
}

// String returns a sequence in FASTA format.
func (seq Sequence) String() (s string) {
	s = ">" + seq.Name + "\n" + Wrap(seq.Sequence, 80)
	return
}

// String returns sequences in FASTA format.
func (seqs Sequences) String() (s string) {
	for _, seq := range seqs {
		s += seq.String()
	}
	return s[:len(s)-1]
}
