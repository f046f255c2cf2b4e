// Package kmer indexes fixed-length substrings in a prefix tree with
// occurrence counts and subtree aggregation.
package kmer

import (
	"errors"
	"fmt"
	"sort"
)

// ErrKeyLength is returned when a k-mer of the wrong length is
// inserted or queried. Mixed key lengths would break the subtree sum
// invariant, so this is fatal for the caller, not absorbed.
var ErrKeyLength = errors.New("kmer length does not match the index")

// node is one trie node in the arena. sum counts every inserted k-mer
// passing through the node; count the k-mers ending at it.
type node struct {
	children map[byte]int32
	sum      uint64
	count    uint64
}

// Index is a prefix tree over k-mers of one fixed length. Nodes live
// in an arena and reference each other by index, so there are no
// recursive pointers and no deep destruction. Memory is bounded by
// the number of distinct k-mers observed, not by sequence length.
//
// An Index is not safe for concurrent writers; aggregate across
// goroutines through a single collector.
type Index struct {
	k        int
	nodes    []node
	distinct int
}

// KmerCount is one k-mer with its occurrence count.
type KmerCount struct {
	Kmer  string
	Count uint64
}

// New creates an empty index for k-mers of length k.
func New(k int) *Index {
	if k < 1 {
		panic(fmt.Sprintf("kmer length must be positive, got %d", k))
	}
	return &Index{
		k:     k,
		nodes: make([]node, 1), // node 0 is the root
	}
}

// K returns the fixed k-mer length of the index.
func (ix *Index) K() int {
	return ix.k
}

// Insert increments the count of a k-mer, creating intermediate nodes
// as needed.
func (ix *Index) Insert(kmer string) error {
	if len(kmer) != ix.k {
		return fmt.Errorf("%w: got %d, index holds %d-mers", ErrKeyLength, len(kmer), ix.k)
	}
	cur := int32(0)
	for i := 0; i < len(kmer); i++ {
		ix.nodes[cur].sum++
		next, ok := ix.nodes[cur].children[kmer[i]]
		if !ok {
			ix.nodes = append(ix.nodes, node{})
			next = int32(len(ix.nodes) - 1)
			if ix.nodes[cur].children == nil {
				ix.nodes[cur].children = make(map[byte]int32, 4)
			}
			ix.nodes[cur].children[kmer[i]] = next
		}
		cur = next
	}
	ix.nodes[cur].sum++
	if ix.nodes[cur].count == 0 {
		ix.distinct++
	}
	ix.nodes[cur].count++
	return nil
}

// walk follows a key from the root, returning the node index or -1.
func (ix *Index) walk(key string) int32 {
	cur := int32(0)
	for i := 0; i < len(key); i++ {
		next, ok := ix.nodes[cur].children[key[i]]
		if !ok {
			return -1
		}
		cur = next
	}
	return cur
}

// Count returns the number of times a k-mer has been inserted. A
// never-inserted k-mer counts zero; it is not an error.
func (ix *Index) Count(kmer string) uint64 {
	if len(kmer) != ix.k {
		return 0
	}
	n := ix.walk(kmer)
	if n < 0 {
		return 0
	}
	return ix.nodes[n].count
}

// CountWithPrefix sums the counts of all k-mers sharing a prefix. The
// sums are maintained on the insert path, so the query costs the
// prefix length, not a subtree scan.
func (ix *Index) CountWithPrefix(prefix string) uint64 {
	if len(prefix) > ix.k {
		return 0
	}
	n := ix.walk(prefix)
	if n < 0 {
		return 0
	}
	return ix.nodes[n].sum
}

// Total returns the number of insertions.
func (ix *Index) Total() uint64 {
	return ix.nodes[0].sum
}

// Distinct returns the number of distinct k-mers seen.
func (ix *Index) Distinct() int {
	return ix.distinct
}

// Each calls fn for every distinct k-mer in lexicographic order.
func (ix *Index) Each(fn func(kmer string, count uint64)) {
	key := make([]byte, 0, ix.k)
	ix.each(0, key, fn)
}

func (ix *Index) each(n int32, key []byte, fn func(string, uint64)) {
	nd := &ix.nodes[n]
	if len(key) == ix.k {
		if nd.count > 0 {
			fn(string(key), nd.count)
		}
		return
	}
	symbols := make([]byte, 0, len(nd.children))
	for c := range nd.children {
		symbols = append(symbols, c)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	for _, c := range symbols {
		ix.each(nd.children[c], append(key, c), fn)
	}
}

// MostFrequent returns up to n k-mers ordered by descending count,
// ties broken by lexicographic order of the k-mer.
func (ix *Index) MostFrequent(n int) []KmerCount {
	counts := make([]KmerCount, 0, ix.distinct)
	ix.Each(func(kmer string, count uint64) {
		counts = append(counts, KmerCount{kmer, count})
	})
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Kmer < counts[j].Kmer
	})
	if n > len(counts) {
		n = len(counts)
	}
	return counts[:n]
}
