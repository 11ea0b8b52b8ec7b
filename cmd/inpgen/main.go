// Command inpgen renders a solver input deck from a JSON element list.
//
// Usage:
//
//	inpgen [-o deck.inp] [-strict] [elements.json]
//
// The input is either a JSON array of elements or an object with an
// "elements" array, as returned by GET /api/elements. With no file argument
// the list is read from stdin. Element names must be single deck tokens
// ([A-Za-z0-9_.-]); the deck is not written when any name is rejected.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/hydronet/pkg/inp"
	"github.com/dd0wney/hydronet/pkg/network"
	"github.com/dd0wney/hydronet/pkg/validation"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inpgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", "", "Write the deck to this file instead of stdout")
	strict := fs.Bool("strict", false, "Fail on element types outside the canonical set")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "inpgen: at most one input file")
		return 2
	}

	in := stdin
	if fs.NArg() == 1 && fs.Arg(0) != "-" {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "inpgen: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	elements, err := readElements(in)
	if err != nil {
		fmt.Fprintf(stderr, "inpgen: %v\n", err)
		return 1
	}

	if !checkElements(elements, *strict, stderr) {
		return 1
	}

	if *output == "" {
		if err := inp.Write(stdout, elements); err != nil {
			fmt.Fprintf(stderr, "inpgen: %v\n", err)
			return 1
		}
		return 0
	}

	if err := os.WriteFile(*output, []byte(inp.Encode(elements)), 0o644); err != nil {
		fmt.Fprintf(stderr, "inpgen: %v\n", err)
		return 1
	}
	fmt.Fprintf(stderr, "inpgen: wrote %d elements to %s\n", len(elements), *output)
	return 0
}

// checkElements reports every element that cannot be written as deck records.
// Bad names and negative node references always fail since they would corrupt
// the line structure. Unknown types fail only in strict mode.
func checkElements(elements []*network.Element, strict bool, stderr io.Writer) bool {
	ok := true
	for i, e := range elements {
		if err := validation.ValidateElementName(e.Name); err != nil {
			fmt.Fprintf(stderr, "inpgen: element %d: %v\n", i, err)
			ok = false
		}
		if (e.NodeA != nil && *e.NodeA < 0) || (e.NodeB != nil && *e.NodeB < 0) {
			fmt.Fprintf(stderr, "inpgen: element %d (%q): node references must not be negative\n", i, e.Name)
			ok = false
		}
		if e.Type.Known() {
			continue
		}
		if strict {
			fmt.Fprintf(stderr, "inpgen: element %d (%q) has unknown type %q\n", i, e.Name, e.Type)
			ok = false
			continue
		}
		fmt.Fprintf(stderr, "inpgen: warning: element %q has unknown type %q, no property block written\n", e.Name, e.Type)
	}
	return ok
}

// readElements accepts a bare array or an {"elements": [...]} envelope
func readElements(r io.Reader) ([]*network.Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty input")
	}

	var elements []*network.Element
	if data[0] == '{' {
		var envelope struct {
			Elements []*network.Element `json:"elements"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("invalid element JSON: %w", err)
		}
		elements = envelope.Elements
	} else if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("invalid element JSON: %w", err)
	}

	out := elements[:0]
	for _, e := range elements {
		if e != nil {
			out = append(out, e)
		}
	}
	return out, nil
}
