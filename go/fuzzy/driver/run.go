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
	"time"

	cliUtils "github.com/Fantom-foundation/fuzzy/go/fuzzy/driver/cli"
	"github.com/Fantom-foundation/fuzzy/go/fuzzy/scenarios"
	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var RunCmd = cliUtils.AddCommonFlags(cli.Command{
	Action: doRun,
	Name:   "run",
	Usage:  "Run the self-checking scenario catalog",
	Flags: []cli.Flag{
		cliUtils.FilterFlag,
		cliUtils.JobsFlag,
		cliUtils.SeedFlag,
		cliUtils.MaxErrorsFlag,
	},
})

func doRun(context *cli.Context) error {
	filter, err := cliUtils.FilterFlag.Fetch(context)
	if err != nil {
		return err
	}
	jobCount := cliUtils.JobsFlag.Fetch(context)
	seed := cliUtils.SeedFlag.Fetch(context)
	maxErrors := cliUtils.MaxErrorsFlag.Fetch(context)

	log, err := newLogger(cliUtils.VerboseFlag.Fetch(context))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	selected := scenarios.Filter(scenarios.Catalog(), filter)
	if len(selected) == 0 {
		return fmt.Errorf("no scenario matches %v", filter)
	}

	issuesCollector := cliUtils.IssuesCollector{}
	opRun := func(result scenarios.Result) scenarios.ConsumerResult {
		if result.Err != nil {
			issuesCollector.AddIssue(result.Scenario.Name, seed, result.Err)
			fmt.Printf("FAIL %s: %v\n", result.Scenario.Name, result.Err)
		} else {
			fmt.Printf("OK   %s (%d trials, %d dimensions, %s)\n",
				result.Scenario.Name, result.Summary.Trials,
				result.Summary.Dimensions, result.Summary.Fingerprint[:16],
			)
		}
		if issuesCollector.NumIssues() >= maxErrors {
			return scenarios.ConsumeAbort
		}
		return scenarios.ConsumeContinue
	}

	fmt.Printf("Running %d scenarios with seed %d using %d jobs ...\n", len(selected), seed, jobCount)
	log.Info("run started", zap.Int("scenarios", len(selected)), zap.Uint64("seed", seed))
	err = scenarios.ForEachScenario(selected, opRun, printProgress, jobCount, seed, log)
	if err != nil {
		return fmt.Errorf("error running scenarios: %w", err)
	}

	numIssues := issuesCollector.NumIssues()
	if numIssues == 0 {
		fmt.Printf("All scenarios passed successfully!\n")
		return nil
	}
	if _, err := issuesCollector.ExportIssues(); err != nil {
		return err
	}
	return fmt.Errorf("failed to pass %d scenarios", numIssues)
}

func printProgress(relativeTime time.Duration, rate float64, current int64) {
	fmt.Printf(
		"[t=%4d:%02d] - Processing ~%s trials per second, total %d\n",
		int(relativeTime.Seconds())/60, int(relativeTime.Seconds())%60,
		unitconv.FormatPrefix(rate, unitconv.SI, 0), current,
	)
}
