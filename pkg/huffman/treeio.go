package huffman

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"alephw/pkg/bitarray"
)

// bitWord renders the prefix tree's shape as a Lukasiewicz bit word (1
// for an internal node, 0 for a leaf) via pre-order DFS, alongside the
// leaf symbols collected in that same prefix order.
func bitWord(root *node) (*bitarray.BitArray, []string) {
	out := bitarray.New()
	var keys []string
	var walk func(n *node)
	walk = func(n *node) {
		if n.leaf {
			out.Push(0)
			keys = append(keys, n.symbol)
			return
		}
		out.Push(1)
		walk(n.left)
		walk(n.right)
	}
	walk(root)
	return out, keys
}

// rebuildFromBitWord reconstructs a tree from a Lukasiewicz bit word and
// its leaf keys, consuming both in the same pre-order the writer used.
func rebuildFromBitWord(word *bitarray.BitArray, keys []string) (*node, error) {
	var pos, keyIdx uint
	var parse func() (*node, error)
	parse = func() (*node, error) {
		if pos >= word.Len() {
			return nil, fmt.Errorf("%w: bit word ended mid-tree", ErrMalformed)
		}
		bit, _ := word.Read(pos)
		pos++
		if bit == 0 {
			if int(keyIdx) >= len(keys) {
				return nil, fmt.Errorf("%w: ran out of leaf keys", ErrMalformed)
			}
			n := &node{leaf: true, symbol: keys[keyIdx]}
			keyIdx++
			return n, nil
		}
		left, err := parse()
		if err != nil {
			return nil, err
		}
		right, err := parse()
		if err != nil {
			return nil, err
		}
		return &node{left: left, right: right}, nil
	}
	root, err := parse()
	if err != nil {
		return nil, err
	}
	if pos != word.Len() {
		return nil, fmt.Errorf("%w: trailing bits after tree", ErrMalformed)
	}
	if int(keyIdx) != len(keys) {
		return nil, fmt.Errorf("%w: unused leaf keys", ErrMalformed)
	}
	return root, nil
}

// fromTree finishes building a Codec around an already-assembled tree:
// derives codes and marks it built, the way Load/Parse reconstruct a
// decoder-only Codec without ever touching frequencies or the heap.
func fromTree(root *node, endSym string) *Codec {
	c := &Codec{root: root, endSym: endSym, endSet: true, built: true}
	c.codes = make(map[string]string)
	deriveCodes(c.root, "", c.codes)
	return c
}

// SaveTree writes the prefix tree as a bit word (via bitarray's text
// format) followed by a line of whitespace-separated, Go-quoted leaf
// keys in prefix order. A space inside a key is written as the escape
// \x20 so that the keys line splits cleanly on whitespace.
func (c *Codec) SaveTree(w io.Writer) error {
	if !c.built {
		return ErrNotBuilt
	}
	word, keys := bitWord(c.root)
	if err := word.Serialize(w); err != nil {
		return err
	}
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = strings.ReplaceAll(strconv.Quote(k), " ", `\x20`)
	}
	_, err := fmt.Fprintln(w, strings.Join(quoted, " "))
	return err
}

// LoadTree reconstructs a decode-only Codec from the format SaveTree
// produces. The caller supplies endSym since the format itself carries
// no record of it (encoder and decoder must independently agree on it).
func LoadTree(r io.Reader, endSym string) (*Codec, error) {
	br := bufio.NewReader(r)
	// bitarray.Parse wraps its argument in its own bufio.Scanner, which
	// may buffer past the two lines it needs; read every line through
	// this single reader first so none of the keys line is lost to that
	// hidden buffer.
	header, err := br.ReadString('\n')
	if err != nil {
		return nil, err
	}
	bytesLine, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	word, err := bitarray.ParseString(header + bytesLine)
	if err != nil {
		return nil, err
	}
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	var keys []string
	for _, tok := range strings.Fields(line) {
		k, err := strconv.Unquote(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: leaf key %q: %v", ErrMalformed, tok, err)
		}
		keys = append(keys, k)
	}
	root, err := rebuildFromBitWord(word, keys)
	if err != nil {
		return nil, err
	}
	return fromTree(root, endSym), nil
}

// GenerateCArrayPair renders the tree as two C declarations: bitName's
// is the bit word (reusing bitarray's own C-array generator), keyName's
// is a null-terminated array of the leaf keys in prefix order.
func (c *Codec) GenerateCArrayPair(bitName, keyName string) (string, string, error) {
	if !c.built {
		return "", "", ErrNotBuilt
	}
	word, keys := bitWord(c.root)
	bitDecl := word.GenerateCArray(bitName)
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = strconv.Quote(k)
	}
	quoted = append(quoted, "nullptr")
	keyDecl := fmt.Sprintf("const char* %s[] = { %s };", keyName, strings.Join(quoted, ", "))
	return bitDecl, keyDecl, nil
}

// ParseCArrayPair reconstructs a decode-only Codec from the declarations
// GenerateCArrayPair produces. bitCount is the tree's bit-word length
// (the C array alone only carries the rounded-up byte count); endSym is
// supplied by the caller as in LoadTree.
func ParseCArrayPair(bitDecl, keyDecl string, bitCount uint, endSym string) (*Codec, error) {
	word, err := bitarray.ParseCArray(bitDecl, bitCount)
	if err != nil {
		return nil, err
	}
	open := strings.IndexByte(keyDecl, '{')
	close := strings.LastIndexByte(keyDecl, '}')
	if open < 0 || close < 0 || close < open {
		return nil, fmt.Errorf("%w: missing { } braces in key array declaration", ErrMalformed)
	}
	body := strings.TrimSpace(keyDecl[open+1 : close])
	var keys []string
	for _, tok := range splitTopLevelCommas(body) {
		tok = strings.TrimSpace(tok)
		if tok == "nullptr" || tok == "" {
			continue
		}
		k, err := strconv.Unquote(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: leaf key %q: %v", ErrMalformed, tok, err)
		}
		keys = append(keys, k)
	}
	root, err := rebuildFromBitWord(word, keys)
	if err != nil {
		return nil, err
	}
	return fromTree(root, endSym), nil
}

// splitTopLevelCommas splits s on commas that are not inside a quoted
// string, since a key may itself contain a comma.
func splitTopLevelCommas(s string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && inQuote:
			cur.WriteRune(r)
			escaped = true
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == ',' && !inQuote:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
