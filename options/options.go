// Package options implements a byte-trie for selecting which of a
// fixed set of candidate byte strings prefixes a stream, without
// buffering more than the longest matching candidate. The trie is
// flattened into sorted (byte, child) pairs per node rather than a
// map, following the sorted-slice-over-map style common for small
// fixed key sets searched with bytes.Compare.
package options

import (
	"sort"

	"github.com/kopia/okio-sub006/bytestring"
	"github.com/kopia/okio-sub006/internal/ioerr"
)

type edge struct {
	b     byte
	child *node
}

type node struct {
	edges  []edge
	result int // index into Options.values, or -1 if this node is not itself a complete match
}

func (n *node) childFor(b byte) *node {
	i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i].b >= b })
	if i < len(n.edges) && n.edges[i].b == b {
		return n.edges[i].child
	}
	return nil
}

func (n *node) insertChild(b byte) *node {
	i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i].b >= b })
	if i < len(n.edges) && n.edges[i].b == b {
		return n.edges[i].child
	}
	c := &node{result: -1}
	n.edges = append(n.edges, edge{})
	copy(n.edges[i+1:], n.edges[i:])
	n.edges[i] = edge{b: b, child: c}
	return c
}

// Options is an ordered, fixed set of candidate byte strings that
// Select can match a stream prefix against. Values must be
// non-empty and pairwise distinct; a value that is a strict prefix
// of another is permitted; when several values match, the one with
// the lowest index wins, whatever its length.
type Options struct {
	values []bytestring.ByteString
	root   *node
}

// New builds an Options trie over values. Returns ErrInvalidArgument
// if values is empty or contains an empty or duplicate entry.
func New(values ...bytestring.ByteString) (*Options, error) {
	if len(values) == 0 {
		return nil, ioerr.ErrInvalidArgument
	}
	root := &node{result: -1}
	for idx, v := range values {
		if v.Len() == 0 {
			return nil, ioerr.ErrInvalidArgument
		}
		n := root
		for i := 0; i < v.Len(); i++ {
			n = n.insertChild(v.At(i))
		}
		if n.result != -1 {
			return nil, ioerr.ErrInvalidArgument
		}
		n.result = idx
	}
	return &Options{values: values, root: root}, nil
}

// Count returns the number of candidate values.
func (o *Options) Count() int { return len(o.values) }

// Get returns the candidate value at index i.
func (o *Options) Get(i int) bytestring.ByteString { return o.values[i] }

// peeker is the minimal byte-lookahead contract Select needs; *buffer.Buffer
// satisfies it via Get, avoiding an import cycle between options and buffer.
type peeker interface {
	Size() int64
	Get(pos int64) byte
	Skip(n int64)
}

// Select scans src without buffering beyond the longest candidate,
// returning the index of the matching value and consuming exactly
// that many bytes, or -1 with nothing consumed if no candidate
// matches. When one candidate is a prefix of another, the
// lowest-indexed candidate that matches wins, regardless of how much
// longer a later candidate's match would be. Select treats src as
// complete: a partial match left dangling because src simply ran out
// of bytes is resolved immediately rather than treated as ambiguous
// — callers streaming from an upstream that might still produce more
// bytes should use Probe instead.
func Select(src peeker, o *Options) int64 {
	result, consumed, _ := Probe(src, o)
	if result == -1 {
		return -1
	}
	src.Skip(consumed)
	return result
}

// Probe walks the trie against the bytes currently available in src
// without consuming anything, returning the best complete match
// found so far (or -1), how many bytes it would consume, and whether
// the walk was cut short by running out of buffered bytes while the
// current node still had live children — meaning a longer match
// might still be possible if the caller buffers more input before
// deciding. BufferedSource.Select uses this to know when to pull
// another chunk from upstream rather than resolving early.
//
// "Best" means lowest candidate index, not longest match: once a
// terminal node is reached for option i, a deeper terminal is only
// adopted if its option index is lower than i, never merely because
// it was found further along the scan.
func Probe(src peeker, o *Options) (result int64, consumed int64, needMore bool) {
	n := o.root
	var scanned int64
	bestResult := int64(n.result)
	bestScanned := int64(0)

	for scanned < src.Size() {
		next := n.childFor(src.Get(scanned))
		if next == nil {
			return bestResult, bestScanned, false
		}
		n = next
		scanned++
		if n.result != -1 && (bestResult == -1 || int64(n.result) < bestResult) {
			bestResult = int64(n.result)
			bestScanned = scanned
		}
	}

	return bestResult, bestScanned, len(n.edges) > 0
}
