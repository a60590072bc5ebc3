// Package huffman builds prefix codes over a symbol alphabet and
// encodes/decodes streams against them. Frequency accumulation keeps one
// pqheap handle per distinct symbol in an ordered map so a repeated
// symbol's count can be bumped and re-sifted in place; tree construction
// repeatedly extracts the two lightest subtrees and reinserts their
// merge, the classic greedy Huffman build. Codes come from a left=0,
// right=1 DFS of the resulting tree.
package huffman

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"alephw/pkg/bitarray"
	"alephw/pkg/ordered"
	"alephw/pkg/pqheap"
	"alephw/pkg/rtree"
)

var (
	// ErrAlreadyBuilt is returned by SetFreq/Accumulate/SetEndOfStream
	// once BuildTree has run: frequencies are immutable after that point.
	ErrAlreadyBuilt = errors.New("huffman: encoding tree already generated")

	// ErrEndAlreadySet is returned by SetEndOfStream when called twice.
	ErrEndAlreadySet = errors.New("huffman: end-of-stream symbol already set")

	// ErrEndNotSet is returned by BuildTree before SetEndOfStream has
	// designated a symbol. Encode/Decode report ErrNotBuilt in that state,
	// since no tree can be built until the symbol is set.
	ErrEndNotSet = errors.New("huffman: end-of-stream symbol not set")

	// ErrNotBuilt is returned by Encode/Decode/Save* before BuildTree.
	ErrNotBuilt = errors.New("huffman: encoding tree not generated")

	// ErrEmptyAlphabet is returned by BuildTree with no accumulated symbols.
	ErrEmptyAlphabet = errors.New("huffman: no symbols accumulated")

	// ErrMalformed marks a format violation in a loaded tree or stream.
	ErrMalformed = errors.New("huffman: malformed input")
)

func less(a, b string) bool { return a < b }

// Config holds codec-wide tunables. None exist yet; it is kept for
// symmetry with every other subsystem's Config and as a home for future
// options (e.g. a custom tie-breaking rule for equal-frequency merges).
type Config struct{}

// NewWithConfig is equivalent to New; cfg is reserved for future use.
func NewWithConfig(cfg Config) *Codec { return New() }

// node is one vertex of the prefix tree; leaves carry a symbol, internal
// nodes carry only children.
type node struct {
	symbol      string
	leaf        bool
	left, right *node
}

// Codec accumulates symbol frequencies, builds a prefix tree from them,
// and then encodes/decodes streams against that tree.
type Codec struct {
	freq   *ordered.Map[string, *pqheap.Handle[int, *node]]
	heap   *pqheap.Heap[int, *node]
	root   *node
	endSym string
	endSet bool
	built  bool
	codes  map[string]string
}

// New returns an encoder/decoder with no accumulated frequencies.
func New() *Codec {
	return &Codec{
		freq: ordered.NewMap[string, *pqheap.Handle[int, *node]](less, rtree.Config{}),
		heap: pqheap.New[int, *node](func(a, b int) bool { return a < b }),
	}
}

// SetFreq sets symbol's frequency to f, creating the symbol if unseen.
func (c *Codec) SetFreq(symbol string, f int) error {
	if c.built {
		return ErrAlreadyBuilt
	}
	if h, ok := c.freq.Get(symbol); ok {
		h.SetKey(f)
		c.heap.Update(h)
		return nil
	}
	n := &node{symbol: symbol, leaf: true}
	h := c.heap.Insert(f, n)
	c.freq.Put(symbol, h)
	return nil
}

// bump increments symbol's frequency by one, inserting it at frequency 1
// if unseen.
func (c *Codec) bump(symbol string) error {
	if c.built {
		return ErrAlreadyBuilt
	}
	if h, ok := c.freq.Get(symbol); ok {
		h.SetKey(h.Key() + 1)
		c.heap.Update(h)
		return nil
	}
	n := &node{symbol: symbol, leaf: true}
	h := c.heap.Insert(1, n)
	c.freq.Put(symbol, h)
	return nil
}

// AccumulateString increments the frequency of each rune of s, one
// symbol per rune.
func (c *Codec) AccumulateString(s string) error {
	for _, r := range s {
		if err := c.bump(string(r)); err != nil {
			return err
		}
	}
	return nil
}

// AccumulateReader increments the frequency of each rune read from r
// until EOF.
func (c *Codec) AccumulateReader(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		ru, _, err := br.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := c.bump(string(ru)); err != nil {
			return err
		}
	}
}

// SetEndOfStream designates e as the symbol that marks stream
// termination during decode. If e has no frequency yet it is added with
// an implicit frequency of 1. SetEndOfStream may be called only once,
// and only before BuildTree.
func (c *Codec) SetEndOfStream(e string) error {
	if c.built {
		return ErrAlreadyBuilt
	}
	if c.endSet {
		return ErrEndAlreadySet
	}
	if _, ok := c.freq.Get(e); !ok {
		if err := c.SetFreq(e, 1); err != nil {
			return err
		}
	}
	c.endSym = e
	c.endSet = true
	return nil
}

// BuildTree runs the greedy merge (repeatedly combine the two lightest
// subtrees) and derives each symbol's code. SetEndOfStream must have run
// first; further SetFreq/Accumulate/SetEndOfStream calls are then errors.
func (c *Codec) BuildTree() error {
	if c.built {
		return ErrAlreadyBuilt
	}
	if !c.endSet {
		return ErrEndNotSet
	}
	if c.heap.Len() == 0 {
		return ErrEmptyAlphabet
	}

	for c.heap.Len() > 1 {
		lf, ln, _ := c.heap.ExtractMin()
		rf, rn, _ := c.heap.ExtractMin()
		merged := &node{left: ln, right: rn}
		c.heap.Insert(lf+rf, merged)
	}
	_, c.root, _ = c.heap.ExtractMin()

	c.built = true
	c.codes = make(map[string]string, c.freq.Len())
	deriveCodes(c.root, "", c.codes)
	return nil
}

// deriveCodes walks the tree, appending "0" on the left edge and "1" on
// the right, recording each leaf's accumulated bitstring.
func deriveCodes(n *node, prefix string, out map[string]string) {
	if n == nil {
		return
	}
	if n.leaf {
		code := prefix
		if code == "" {
			code = "0"
		}
		out[n.symbol] = code
		return
	}
	deriveCodes(n.left, prefix+"0", out)
	deriveCodes(n.right, prefix+"1", out)
}

// Code returns symbol's derived bitstring ("0"/"1" characters) and
// whether it is part of the built alphabet.
func (c *Codec) Code(symbol string) (string, bool) {
	code, ok := c.codes[symbol]
	return code, ok
}

// EncodeString encodes s symbol-by-symbol (one rune per symbol),
// appending the end-of-stream code at the end.
func (c *Codec) EncodeString(s string) (*bitarray.BitArray, error) {
	return c.Encode(strings.NewReader(s))
}

// Encode reads runes from r until EOF, appending each one's code to the
// output bit array, then appends the end-of-stream symbol's code.
// Length returned is Len() of the bit array.
func (c *Codec) Encode(r io.Reader) (*bitarray.BitArray, error) {
	if !c.built {
		return nil, ErrNotBuilt
	}
	out := bitarray.New()
	br := bufio.NewReader(r)
	for {
		ru, _, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := appendCode(out, c.codes, string(ru)); err != nil {
			return nil, err
		}
	}
	if err := appendCode(out, c.codes, c.endSym); err != nil {
		return nil, err
	}
	return out, nil
}

func appendCode(out *bitarray.BitArray, codes map[string]string, symbol string) error {
	code, ok := codes[symbol]
	if !ok {
		return fmt.Errorf("huffman: symbol %q has no code", symbol)
	}
	for _, ch := range code {
		var bit byte
		if ch == '1' {
			bit = 1
		}
		if err := out.Push(bit); err != nil {
			return err
		}
	}
	return nil
}

// Decode descends the tree one bit at a time, emitting a symbol at each
// leaf (restarting at the root) until the end-of-stream symbol is
// reached. Descending into a nil child is a format violation.
func (c *Codec) Decode(b *bitarray.BitArray) (string, error) {
	if !c.built {
		return "", ErrNotBuilt
	}
	var sb strings.Builder
	if c.root.leaf {
		// A one-symbol alphabet's root is that symbol's own leaf, which
		// can only be the end-of-stream symbol (BuildTree requires one
		// to be set), so the stream holds nothing but end markers.
		return "", nil
	}
	cur := c.root
	for i := uint(0); i < b.Len(); i++ {
		bit, err := b.Read(i)
		if err != nil {
			return "", err
		}
		if bit == 0 {
			cur = cur.left
		} else {
			cur = cur.right
		}
		if cur == nil {
			return "", fmt.Errorf("%w: descended into an empty child", ErrMalformed)
		}
		if cur.leaf {
			if cur.symbol == c.endSym {
				return sb.String(), nil
			}
			sb.WriteString(cur.symbol)
			cur = c.root
		}
	}
	return "", fmt.Errorf("%w: stream ended before end-of-stream symbol", ErrMalformed)
}
