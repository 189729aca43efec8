// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/Fantom-foundation/fuzzy/go/fuzzy"
	"github.com/urfave/cli/v2"
)

func TestPrintSamples_ListsAllSubcasesOfNumericCase(t *testing.T) {
	c, err := fuzzy.Int8().InRange(-5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := &bytes.Buffer{}
	if err := printSamples[int8](out, c, fuzzy.NewRandom(1), 2, "%d"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if want, got := 5, len(lines); want != got {
		t.Fatalf("unexpected number of lines, wanted %d, got %d: %v", want, got, lines)
	}
	for i, prefix := range []string{"negative:", "zero: 0 0", "positive:", "min: -5 -5", "max: 5 5"} {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("unexpected line %d, wanted prefix %q, got %q", i, prefix, lines[i])
		}
	}
}

func TestPrintSamples_QuotesStrings(t *testing.T) {
	c := fuzzy.String().WithLength(3).WithOnlyDigitChars()
	out := &bytes.Buffer{}
	if err := printSamples[string](out, c, fuzzy.NewRandom(1), 2, "%q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pattern := regexp.MustCompile("^[^:]+: \"[0-9]{3}\" \"[0-9]{3}\"\n$")
	if !pattern.MatchString(out.String()) {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestSampleCmd_RejectsInvalidArguments(t *testing.T) {
	tests := map[string][]string{
		"unknown type":      {"--type", "uint8"},
		"bound too large":   {"--type", "int8", "--min", "300"},
		"unknown palette":   {"--type", "string", "--chars", "greek"},
		"empty range":       {"--type", "int16", "--min", "5", "--max", "1"},
		"empty int64 range": {"--type", "int64", "--max", "-9223372036854775808", "--min", "0"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			app := &cli.App{Commands: []*cli.Command{&SampleCmd}}
			err := app.Run(append([]string{"fuzzy", "sample"}, args...))
			if !errors.Is(err, fuzzy.ErrInvalidArgument) {
				t.Errorf("unexpected error, wanted %v, got %v", fuzzy.ErrInvalidArgument, err)
			}
		})
	}
}
