package codon

import (
	"fmt"
)

// Amino acid symbols for stop codons and untranslatable codons.
const (
	StopAminoAcid    = byte('*')
	UnknownAminoAcid = byte('X')
)

// ncbiAlphabet orders the bases the way the NCBI translation table
// strings do (gc.prt, https://www.ncbi.nlm.nih.gov/Taxonomy/Utils/wprintgc.cgi).
var ncbiAlphabet = [...]byte{'T', 'C', 'A', 'G'}

// GeneticCode is a translation table between codon indices and amino
// acids, with start and stop codon sets. Tables are constructed once
// and never mutated, so they are safe to share between goroutines.
type GeneticCode struct {
	ID        int
	Name      string
	aminoAcid [NCodon]byte
	start     [NCodon]bool
	stop      [NCodon]bool
	nstop     int
}

// newGeneticCode creates a genetic code from the NCBI ncbieaa
// (translation) and sncbieaa (start codon) strings.
func newGeneticCode(id int, name, ncbieaa, sncbieaa string) *GeneticCode {
	if len(ncbieaa) != NCodon || len(sncbieaa) != NCodon {
		panic(fmt.Sprintf("genetic code %d: table length is not %d", id, NCodon))
	}
	gc := &GeneticCode{ID: id, Name: name}
	for i := 0; i < NCodon; i++ {
		triplet := string([]byte{
			ncbiAlphabet[i/16],
			ncbiAlphabet[i/4%4],
			ncbiAlphabet[i%4],
		})
		ci := Index(triplet)
		gc.aminoAcid[ci] = ncbieaa[i]
		if ncbieaa[i] == StopAminoAcid {
			gc.stop[ci] = true
			gc.nstop++
		}
		gc.start[ci] = sncbieaa[i] == 'M'
	}
	return gc
}

// geneticCodes holds the supported NCBI translation tables by id.
var geneticCodes = map[int]*GeneticCode{
	1: newGeneticCode(1, "Standard",
		"FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"---M---------------M---------------M----------------------------"),
	2: newGeneticCode(2, "Vertebrate Mitochondrial",
		"FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSS**VVVVAAAADDEEGGGG",
		"--------------------------------MMMM---------------M------------"),
}

// GetGeneticCode returns the genetic code for an NCBI table id.
func GetGeneticCode(id int) (*GeneticCode, error) {
	gc, ok := geneticCodes[id]
	if !ok {
		return nil, fmt.Errorf("unsupported genetic code id: %d", id)
	}
	return gc, nil
}

// Translate returns the amino acid symbol for a codon index. Stop
// codons translate to '*'; termination on stop is a policy the caller
// applies explicitly. Sentinel indices translate to 'X', never to a
// best-guess amino acid.
func (gc *GeneticCode) Translate(index byte) byte {
	if index >= NCodon {
		return UnknownAminoAcid
	}
	return gc.aminoAcid[index]
}

// TranslateTriplet translates a nucleotide triplet string.
func (gc *GeneticCode) TranslateTriplet(triplet string) byte {
	return gc.Translate(Index(triplet))
}

// IsStopCodon tests if a codon index is a stop codon in this table.
func (gc *GeneticCode) IsStopCodon(index byte) bool {
	return index < NCodon && gc.stop[index]
}

// IsStartCodon tests if a codon index is a start codon in this table.
func (gc *GeneticCode) IsStartCodon(index byte) bool {
	return index < NCodon && gc.start[index]
}

// NStop returns the number of stop codons in the table.
func (gc *GeneticCode) NStop() int {
	return gc.nstop
}

func (gc *GeneticCode) String() string {
	return fmt.Sprintf("<GeneticCode id=%d (%s), %d stop codons>", gc.ID, gc.Name, gc.nstop)
}
