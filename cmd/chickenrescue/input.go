package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/helixml/chickenrescue/application/service"
)

var errEmptyInput = errors.New("input is empty")

// fileInput is the YAML form of a rescue problem.
type fileInput struct {
	ChickenCount *uint64  `yaml:"chicken_count"`
	RoofLength   uint64   `yaml:"roof_length"`
	Positions    []uint32 `yaml:"positions"`
}

// readInputFile reads a problem from path. Files ending in .yaml or .yml are
// parsed as YAML; anything else, including "-" for stdin, uses the text form.
func readInputFile(path string, stdin io.Reader) (service.SolveParams, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return service.SolveParams{}, fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLInput(r)
	default:
		return parseTextInput(r)
	}
}

func parseYAMLInput(r io.Reader) (service.SolveParams, error) {
	var in fileInput
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return service.SolveParams{}, errEmptyInput
		}
		return service.SolveParams{}, fmt.Errorf("parse yaml input: %w", err)
	}
	return service.SolveParams{
		ChickenCount: in.ChickenCount,
		RoofLength:   in.RoofLength,
		Positions:    in.Positions,
	}, nil
}

// parseTextInput reads "n k" followed by n positions, separated by any
// whitespace.
func parseTextInput(r io.Reader) (service.SolveParams, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 32<<20)
	sc.Split(bufio.ScanWords)

	next := func(what string) (uint64, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("read %s: %w", what, err)
			}
			return 0, fmt.Errorf("read %s: %w", what, io.ErrUnexpectedEOF)
		}
		v, err := strconv.ParseUint(sc.Text(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %s %q: %w", what, sc.Text(), err)
		}
		return v, nil
	}

	if !sc.Scan() {
		return service.SolveParams{}, errEmptyInput
	}
	count, err := strconv.ParseUint(sc.Text(), 10, 64)
	if err != nil {
		return service.SolveParams{}, fmt.Errorf("parse chicken count %q: %w", sc.Text(), err)
	}
	roof, err := next("roof length")
	if err != nil {
		return service.SolveParams{}, err
	}

	var positions []uint32
	for sc.Scan() {
		v, err := strconv.ParseUint(sc.Text(), 10, 32)
		if err != nil {
			return service.SolveParams{}, fmt.Errorf("parse position %d %q: %w", len(positions)+1, sc.Text(), err)
		}
		positions = append(positions, uint32(v))
	}
	if err := sc.Err(); err != nil {
		return service.SolveParams{}, fmt.Errorf("read positions: %w", err)
	}

	return service.SolveParams{
		ChickenCount: &count,
		RoofLength:   roof,
		Positions:    positions,
	}, nil
}

// parsePositionList parses "2,5,10" or "2 5 10".
func parsePositionList(s string) ([]uint32, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]uint32, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse position %d %q: %w", i+1, f, err)
		}
		out = append(out, uint32(v))
	}
	return out, nil
}
