// Command metapair reads a newline-separated list of integer token ids
// from a file, compresses it, and prints a ratio/dictionary-size report,
// in the spirit of onpair's analyze_tokens.go demo.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/seiflotfy/metapair"
)

func main() {
	path := flag.String("tokens", "", "path to a file with one token id per line")
	verify := flag.Bool("verify", false, "round-trip verify the compressed output")
	hierarchical := flag.Bool("hierarchical", false, "enable hierarchical re-compression")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: metapair -tokens <path> [-verify] [-hierarchical]")
		os.Exit(1)
	}

	tokens, err := readTokens(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := []metapair.Option{metapair.WithVerify(*verify)}
	if *hierarchical {
		opts = append(opts, metapair.WithHierarchical(3, 0.02))
	}
	cfg, err := metapair.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := metapair.Compress(tokens, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ratio := float64(result.OriginalLength) / float64(result.CompressedLength)

	fmt.Printf("Input: %d tokens\n", result.OriginalLength)
	fmt.Printf("Dictionary: %d entries\n", len(result.Dictionary))
	fmt.Printf("Body: %d tokens\n", len(result.Body))
	fmt.Printf("Serialized: %d tokens\n", result.CompressedLength)
	fmt.Printf("Passes: %d\n", result.Metrics.Passes)
	fmt.Printf("Ratio: %.2fx\n", ratio)

	if ratio >= 1.0 {
		fmt.Printf("SUCCESS: compressed to %.1f%% of original\n", 100.0/ratio)
	} else {
		fmt.Printf("No net compression: output is %.1f%% of original\n", 100.0/ratio)
	}
}

func readTokens(path string) ([]metapair.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tokens []metapair.Token
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing token %q: %w", line, err)
		}
		tokens = append(tokens, metapair.Token(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
