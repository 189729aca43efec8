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
	"fmt"
	"io"
	"os"

	"github.com/Fantom-foundation/fuzzy/go/fuzzy"
	cliUtils "github.com/Fantom-foundation/fuzzy/go/fuzzy/driver/cli"
	"github.com/urfave/cli/v2"
)

var (
	typeFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "value type, one of int8, int16, int32, int64, string",
		Value: "int32",
	}
	minFlag = &cli.Int64Flag{
		Name:  "min",
		Usage: "inclusive lower bound of numeric values",
	}
	maxFlag = &cli.Int64Flag{
		Name:  "max",
		Usage: "inclusive upper bound of numeric values",
	}
	lengthFlag = &cli.IntFlag{
		Name:  "length",
		Usage: "length of generated strings",
	}
	charsFlag = &cli.StringFlag{
		Name:  "chars",
		Usage: "character palette of strings, one of alphabet, digit, alphanumeric, hex",
	}
	nonEmptyFlag = &cli.BoolFlag{
		Name:  "non-empty",
		Usage: "exclude the empty string",
	}
	countFlag = &cli.IntFlag{
		Name:  "count",
		Usage: "number of values generated per subcase",
		Value: 3,
	}
)

var SampleCmd = cli.Command{
	Action:    doSample,
	Name:      "sample",
	Usage:     "Lists the subcases of a case together with sample values",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		typeFlag,
		minFlag,
		maxFlag,
		lengthFlag,
		charsFlag,
		nonEmptyFlag,
		countFlag,
		cliUtils.SeedFlag,
	},
}

func doSample(context *cli.Context) error {
	rnd := fuzzy.NewRandom(cliUtils.SeedFlag.Fetch(context))
	count := context.Int(countFlag.Name)
	out := os.Stdout

	switch context.String(typeFlag.Name) {
	case "int8":
		return sampleNumeric(out, context, fuzzy.Int8(), rnd, count)
	case "int16":
		return sampleNumeric(out, context, fuzzy.Int16(), rnd, count)
	case "int32":
		return sampleNumeric(out, context, fuzzy.Int32(), rnd, count)
	case "int64":
		return sampleNumeric(out, context, fuzzy.Int64(), rnd, count)
	case "string":
		c, err := stringCaseFrom(context)
		if err != nil {
			return err
		}
		return printSamples(out, c, rnd, count, "%q")
	}
	return fmt.Errorf("%w, unknown type %q", fuzzy.ErrInvalidArgument, context.String(typeFlag.Name))
}

func sampleNumeric[T fuzzy.Width](out io.Writer, context *cli.Context, c *fuzzy.NumericCase[T], rnd fuzzy.Random, count int) error {
	bound := func(flag *cli.Int64Flag) (T, error) {
		value := context.Int64(flag.Name)
		res := c.Narrow(value)
		if int64(res) != value {
			return res, fmt.Errorf("%w, --%s %d exceeds the range of %d-byte values", fuzzy.ErrInvalidArgument, flag.Name, value, c.Bytes())
		}
		return res, nil
	}
	lower, err := bound(minFlag)
	if err != nil {
		return err
	}
	upper, err := bound(maxFlag)
	if err != nil {
		return err
	}

	hasMin, hasMax := context.IsSet(minFlag.Name), context.IsSet(maxFlag.Name)
	switch {
	case hasMin && hasMax:
		c, err = c.InRange(lower, upper)
		if err != nil {
			return err
		}
	case hasMin:
		c = c.GreaterThanOrEqualTo(lower)
	case hasMax:
		c = c.LessThanOrEqualTo(upper)
	}
	return printSamples[T](out, c, rnd, count, "%d")
}

func stringCaseFrom(context *cli.Context) (*fuzzy.StringCase, error) {
	c := fuzzy.String()
	if context.IsSet(lengthFlag.Name) {
		c = c.WithLength(context.Int(lengthFlag.Name))
	}
	switch palette := context.String(charsFlag.Name); palette {
	case "":
	case "alphabet":
		c = c.WithOnlyAlphabetChars()
	case "digit":
		c = c.WithOnlyDigitChars()
	case "alphanumeric":
		c = c.WithOnlyAlphanumericChars()
	case "hex":
		c = c.WithOnlyHexChars()
	default:
		return nil, fmt.Errorf("%w, unknown palette %q", fuzzy.ErrInvalidArgument, palette)
	}
	if context.Bool(nonEmptyFlag.Name) {
		c = c.NonEmpty()
	}
	return c, nil
}

// printSamples prints one line per subcase of the given case listing count
// values generated by it.
func printSamples[T any](out io.Writer, c fuzzy.Case[T], rnd fuzzy.Random, count int, format string) error {
	subcases, err := c.Subcases()
	if err != nil {
		return err
	}
	for _, subcase := range subcases {
		fmt.Fprintf(out, "%s:", subcase.Name())
		for i := 0; i < count; i++ {
			value, err := subcase.Generate(rnd)
			if err != nil {
				return fmt.Errorf("subcase %s: %w", subcase.Name(), err)
			}
			fmt.Fprintf(out, " "+format, value)
		}
		fmt.Fprintln(out)
	}
	return nil
}
