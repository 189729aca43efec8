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
	"strconv"

	"github.com/Fantom-foundation/fuzzy/go/fuzzy"
	cliUtils "github.com/Fantom-foundation/fuzzy/go/fuzzy/driver/cli"
	"github.com/Fantom-foundation/fuzzy/go/fuzzy/pairwise"
	"github.com/urfave/cli/v2"
)

var PlanCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doPlan,
	Name:      "plan",
	Usage:     "Prints the schedule of a session over independent dimensions",
	ArgsUsage: "<number of subcases per dimension>...",
	Flags: []cli.Flag{
		cliUtils.ModeFlag,
		cliUtils.SeedFlag,
	},
})

func doPlan(context *cli.Context) error {
	mode, err := cliUtils.ModeFlag.Fetch(context)
	if err != nil {
		return err
	}
	counts := make([]int, 0, context.Args().Len())
	for _, arg := range context.Args().Slice() {
		count, err := strconv.Atoi(arg)
		if err != nil || count <= 0 {
			return fmt.Errorf("%w, invalid number of subcases %q", fuzzy.ErrInvalidArgument, arg)
		}
		counts = append(counts, count)
	}
	if len(counts) == 0 {
		return fmt.Errorf("%w, no dimensions given", fuzzy.ErrInvalidArgument)
	}

	log, err := newLogger(cliUtils.VerboseFlag.Fetch(context))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	return printPlan(os.Stdout, mode, cliUtils.SeedFlag.Fetch(context), counts, fuzzy.WithLogger(log))
}

// printPlan runs a session over independent dimensions with the given numbers
// of subcases and prints the subcase chosen for every dimension per trial.
func printPlan(out io.Writer, mode fuzzy.Mode, seed uint64, counts []int, opts ...fuzzy.Option) error {
	levels := make([][]string, len(counts))
	for i, count := range counts {
		levels[i] = make([]string, count)
		for j := range levels[i] {
			levels[i][j] = strconv.Itoa(j)
		}
	}

	summary, err := fuzzy.Run(mode, seed, func(ctx *fuzzy.Context) error {
		fmt.Fprintf(out, "%4d:", ctx.Trial())
		for _, count := range counts {
			values := make([]int, count)
			for i := range values {
				values[i] = i
			}
			generator, err := fuzzy.Of(ctx, fuzzy.AnyOf(values...))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, " %d", generator.Get())
		}
		fmt.Fprintln(out)
		return nil
	}, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %d trials for %d combinations, fingerprint %s\n",
		mode, summary.Trials, pairwise.Product(levels), summary.Fingerprint)
	return nil
}
