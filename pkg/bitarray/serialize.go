package bitarray

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrFormat marks a format violation in a serialized bit array.
type ErrFormat struct {
	Reason string
}

func (e *ErrFormat) Error() string { return "bitarray: format violation: " + e.Reason }

// packedBytes renders the logical bits into ByteLen() bytes, bit i of the
// logical array landing at byte i/8, bit position i%8.
func (b *BitArray) packedBytes() []byte {
	out := make([]byte, b.ByteLen())
	for i := uint(0); i < b.n; i++ {
		if b.bs.Test(i) {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}

// Serialize writes the text format: "<byteCount> <bitCount>\n<byte byte ...>\n".
func (b *BitArray) Serialize(w io.Writer) error {
	bs := b.packedBytes()
	if _, err := fmt.Fprintf(w, "%d %d\n", len(bs), b.n); err != nil {
		return err
	}
	parts := make([]string, len(bs))
	for i, by := range bs {
		parts[i] = strconv.Itoa(int(by))
	}
	_, err := fmt.Fprintf(w, "%s\n", strings.Join(parts, " "))
	return err
}

// String returns the text-format serialization.
func (b *BitArray) String() string {
	var sb strings.Builder
	_ = b.Serialize(&sb)
	return sb.String()
}

// Parse reads the text format produced by Serialize/String.
func Parse(r io.Reader) (*BitArray, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !sc.Scan() {
		return nil, &ErrFormat{Reason: "missing header line"}
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 {
		return nil, &ErrFormat{Reason: fmt.Sprintf("expected 2 header fields, got %d", len(header))}
	}
	byteCount, err := strconv.Atoi(header[0])
	if err != nil || byteCount < 0 {
		return nil, &ErrFormat{Reason: "invalid byte count"}
	}
	bitCount, err := strconv.Atoi(header[1])
	if err != nil || bitCount < 0 {
		return nil, &ErrFormat{Reason: "invalid bit count"}
	}
	if (bitCount+7)/8 != byteCount {
		return nil, &ErrFormat{Reason: fmt.Sprintf("byte count %d inconsistent with bit count %d", byteCount, bitCount)}
	}
	b := NewSize(uint(bitCount))
	if byteCount == 0 {
		return b, nil
	}
	if !sc.Scan() {
		return nil, &ErrFormat{Reason: "missing byte line"}
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != byteCount {
		return nil, &ErrFormat{Reason: fmt.Sprintf("expected %d bytes, got %d", byteCount, len(fields))}
	}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 || v > 255 {
			return nil, &ErrFormat{Reason: fmt.Sprintf("byte %d out of [0,255]: %q", i, f)}
		}
		for bit := 0; bit < 8; bit++ {
			idx := uint(i*8 + bit)
			if idx >= uint(bitCount) {
				break
			}
			if v&(1<<bit) != 0 {
				b.bs.Set(idx)
			}
		}
	}
	return b, nil
}

// ParseString is a convenience wrapper around Parse for in-memory text.
func ParseString(s string) (*BitArray, error) {
	return Parse(strings.NewReader(s))
}

// GenerateCArray renders a C array declaration
// "const unsigned char NAME[B] = { b0, b1, ... };" for the packed bytes.
func (b *BitArray) GenerateCArray(name string) string {
	bs := b.packedBytes()
	parts := make([]string, len(bs))
	for i, by := range bs {
		parts[i] = strconv.Itoa(int(by))
	}
	return fmt.Sprintf("const unsigned char %s[%d] = { %s };", name, len(bs), strings.Join(parts, ", "))
}

// ParseCArray reconstructs a bit array from a C array declaration plus an
// explicit bit count (the declaration alone only tells us the byte count).
func ParseCArray(decl string, bitCount uint) (*BitArray, error) {
	open := strings.IndexByte(decl, '{')
	close := strings.LastIndexByte(decl, '}')
	if open < 0 || close < 0 || close < open {
		return nil, &ErrFormat{Reason: "missing { } braces in C array declaration"}
	}
	body := strings.TrimSpace(decl[open+1 : close])
	b := NewSize(bitCount)
	if body == "" {
		return b, nil
	}
	fields := strings.Split(body, ",")
	for i, f := range fields {
		f = strings.TrimSpace(f)
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 || v > 255 {
			return nil, &ErrFormat{Reason: fmt.Sprintf("byte %d out of [0,255]: %q", i, f)}
		}
		for bit := 0; bit < 8; bit++ {
			idx := uint(i*8 + bit)
			if idx >= bitCount {
				break
			}
			if v&(1<<bit) != 0 {
				b.bs.Set(idx)
			}
		}
	}
	return b, nil
}
