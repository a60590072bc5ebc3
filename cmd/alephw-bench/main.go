// cmd/alephw-bench/main.go
//
// alephw-bench - small demonstrator CLI exercising the library's hash
// tables, graph substrate, and Huffman codec from the command line.
//
// Usage:
//
//	alephw-bench hash -n 10000
//	alephw-bench graph -edges edges.txt
//	alephw-bench huffman -text "the quick brown fox"
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"alephw/internal/xhash"
	"alephw/pkg/chainhash"
	"alephw/pkg/graph"
	"alephw/pkg/huffman"
	"alephw/pkg/linhash"
	"alephw/pkg/tarjan"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: alephw-bench <hash|graph|huffman> [flags]")
	}

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "hash":
		err = runHash(args)
	case "graph":
		err = runGraph(args)
	case "huffman":
		err = runHuffman(args)
	default:
		log.Fatalf("unknown subcommand %q", cmd)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func intKeyBytes(k int) []byte { return xhash.Uint64Bytes(uint64(k)) }
func intEq(a, b int) bool      { return a == b }

// runHash inserts n sequential keys into both a chaining and a linear
// hash table and reports their resulting size and load factor.
func runHash(args []string) error {
	fs := flag.NewFlagSet("hash", flag.ExitOnError)
	n := fs.Int("n", 10000, "number of keys to insert")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ch := chainhash.New[int, int](intKeyBytes, intEq, chainhash.Config{})
	lh := linhash.New[int, int](intKeyBytes, intEq, linhash.Config{})
	for i := 0; i < *n; i++ {
		ch.Insert(i, i)
		lh.Insert(i, i)
	}

	fmt.Printf("chainhash: n=%d cap=%d alpha=%.3f\n", ch.Len(), ch.Cap(), ch.Alpha())
	fmt.Printf("linhash:   n=%d buckets=%d doublings=%d alpha=%.3f\n",
		lh.Len(), lh.BucketCount(), lh.Doublings(), lh.Alpha())
	return nil
}

// runGraph reads "src tgt" edge pairs (space- or comma-separated) from a
// file, runs the SCC engine over it, and writes a DOT rendering to
// stdout with a warning comment naming one cycle's nodes if the graph is
// not acyclic.
func runGraph(args []string) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	edgesPath := fs.String("edges", "", "path to an edge-list file (one \"src tgt\" pair per line)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *edgesPath == "" {
		return fmt.Errorf("graph: -edges is required")
	}

	f, err := os.Open(*edgesPath)
	if err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	defer f.Close()

	g := graph.New[string, struct{}](true)
	nodes := map[string]*graph.Node[string, struct{}]{}
	nodeOf := func(label string) *graph.Node[string, struct{}] {
		if n, ok := nodes[label]; ok {
			return n
		}
		n := g.InsertNode(label)
		nodes[label] = n
		return n
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' })
		if len(fields) != 2 {
			continue
		}
		g.InsertArc(nodeOf(fields[0]), nodeOf(fields[1]), struct{}{})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("graph: %w", err)
	}

	res := tarjan.Run[string, struct{}](g, nil)
	for _, c := range res.Components {
		if cycle, err := tarjan.Cycle(c); err == nil {
			var labels []string
			for _, n := range c.Nodes {
				labels = append(labels, n.Info)
			}
			var hops []string
			for _, a := range cycle {
				hops = append(hops, fmt.Sprintf("%s->%s", a.Src.Info, a.Tgt.Info))
			}
			fmt.Fprintf(os.Stdout, "// cycle detected among {%s}: %s\n",
				strings.Join(labels, ", "), strings.Join(hops, " "))
			break
		}
	}

	return g.WriteDOT(os.Stdout, func(n *graph.Node[string, struct{}]) string { return n.Info })
}

// runHuffman accumulates frequencies over -text (or stdin if absent),
// builds the prefix tree, and reports the round-trip encode/decode.
func runHuffman(args []string) error {
	fs := flag.NewFlagSet("huffman", flag.ExitOnError)
	text := fs.String("text", "", "text to encode (reads stdin if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := *text
	if input == "" {
		sc := bufio.NewScanner(os.Stdin)
		var sb strings.Builder
		for sc.Scan() {
			sb.WriteString(sc.Text())
			sb.WriteByte('\n')
		}
		input = sb.String()
	}
	if input == "" {
		return fmt.Errorf("huffman: no input text")
	}

	c := huffman.New()
	if err := c.AccumulateString(input); err != nil {
		return err
	}
	const endSym = "\x00"
	if err := c.SetEndOfStream(endSym); err != nil {
		return err
	}
	if err := c.BuildTree(); err != nil {
		return err
	}

	out, err := c.EncodeString(input)
	if err != nil {
		return err
	}
	decoded, err := c.Decode(out)
	if err != nil {
		return err
	}

	fmt.Printf("input bytes:   %d\n", len(input))
	fmt.Printf("encoded bits:  %s\n", strconv.FormatUint(uint64(out.Len()), 10))
	fmt.Printf("round-trip ok: %v\n", decoded == input)
	return nil
}
