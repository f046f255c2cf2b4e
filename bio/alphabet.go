package bio

// Alphabet is the kind of symbols a sequence is made of.
type Alphabet int

const (
	// Nucleotide is the DNA/RNA alphabet with IUPAC ambiguity codes.
	Nucleotide Alphabet = iota
	// AminoAcid is the protein alphabet (20 letters plus stop).
	AminoAcid
	// Raw accepts any byte.
	Raw
)

func (a Alphabet) String() string {
	switch a {
	case Nucleotide:
		return "nucleotide"
	case AminoAcid:
		return "amino acid"
	}
	return "raw"
}

// Class is the classification of a single symbol within an alphabet.
type Class int

const (
	// Invalid is a byte outside the alphabet.
	Invalid Class = iota
	// Base is an unambiguous symbol (a base or an amino acid).
	Base
	// Ambiguous is an IUPAC code standing for a set of symbols.
	Ambiguous
	// Gap is an alignment gap ('-', and 'Z' in nucleotide data).
	Gap
)

func (c Class) String() string {
	switch c {
	case Base:
		return "base"
	case Ambiguous:
		return "ambiguous"
	case Gap:
		return "gap"
	}
	return "invalid"
}

// 4-bit base masks, one bit per unambiguous base.
const (
	maskA = 1 << 0
	maskC = 1 << 1
	maskG = 1 << 2
	maskT = 1 << 3
)

// iupacMask maps nucleotide codes to base masks. Ambiguity codes are
// bitwise ORs of the bases they stand for (e.g. R = A|G).
var iupacMask [256]byte

// aminoClass maps amino acid codes to their classification.
var aminoClass [256]Class

func init() {
	set := func(c byte, bits byte) {
		iupacMask[c] = bits
		iupacMask[c|0x20] = bits
	}
	set('A', maskA)
	set('C', maskC)
	set('G', maskG)
	set('T', maskT)
	set('U', maskT)

	set('R', maskA|maskG)
	set('Y', maskC|maskT)
	set('S', maskC|maskG)
	set('W', maskA|maskT)
	set('K', maskG|maskT)
	set('M', maskA|maskC)
	set('B', maskC|maskG|maskT)
	set('D', maskA|maskG|maskT)
	set('H', maskA|maskC|maskT)
	set('V', maskA|maskC|maskG)
	set('N', maskA|maskC|maskG|maskT)

	for _, c := range []byte("ACDEFGHIKLMNPQRSTVWY*") {
		aminoClass[c] = Base
		aminoClass[c|0x20] = Base
	}
	// B = D|N, Z = E|Q, J = L|I, X = any
	for _, c := range []byte("BZJX") {
		aminoClass[c] = Ambiguous
		aminoClass[c|0x20] = Ambiguous
	}
	aminoClass['-'] = Gap
	aminoClass['*'] = Base
}

// Classify classifies a single symbol within an alphabet.
// Case-insensitive; unrecognized bytes are Invalid, never coerced.
func Classify(a Alphabet, c byte) Class {
	switch a {
	case Nucleotide:
		if c == '-' || c == 'Z' || c == 'z' {
			// 'Z' denotes a gap of indeterminate length, not a base set
			return Gap
		}
		switch m := iupacMask[c]; {
		case m == 0:
			return Invalid
		case m&(m-1) == 0:
			return Base
		default:
			return Ambiguous
		}
	case AminoAcid:
		return aminoClass[c]
	}
	return Base
}

// Bases returns the exact set of unambiguous bases a nucleotide code
// stands for, in ACGT order. A plain base returns itself, 'U' returns
// 'T', and non-nucleotide bytes return nil.
func Bases(c byte) []byte {
	m := iupacMask[c]
	if m == 0 {
		return nil
	}
	set := make([]byte, 0, 4)
	if m&maskA != 0 {
		set = append(set, 'A')
	}
	if m&maskC != 0 {
		set = append(set, 'C')
	}
	if m&maskG != 0 {
		set = append(set, 'G')
	}
	if m&maskT != 0 {
		set = append(set, 'T')
	}
	return set
}

// complement pairs bases and ambiguity codes (R<->Y, B<->V, D<->H).
var complement = map[byte]byte{
	'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C', 'U': 'A',
	'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W',
	'K': 'M', 'M': 'K', 'B': 'V', 'V': 'B',
	'D': 'H', 'H': 'D', 'N': 'N', 'Z': 'Z', '-': '-',
}

// Complement returns the base-pair complement of a nucleotide code.
// Invalid bytes are returned unchanged so they stay visibly invalid.
func Complement(c byte) byte {
	if r, ok := complement[upper(c)]; ok {
		return r
	}
	return c
}

// ReverseComplement returns the reverse-complement of a nucleotide
// sequence string.
func ReverseComplement(seq string) string {
	rc := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		rc[len(seq)-1-i] = Complement(seq[i])
	}
	return string(rc)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return c
}
