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
	"sort"
	"strings"
	"sync"

	cliUtils "github.com/Fantom-foundation/fuzzy/go/fuzzy/driver/cli"
	"github.com/Fantom-foundation/fuzzy/go/fuzzy/scenarios"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
)

var StatsCmd = cliUtils.AddCommonFlags(cli.Command{
	Action: doStats,
	Name:   "stats",
	Usage:  "Computes statistics on the size of scenario schedules",
	Flags: []cli.Flag{
		cliUtils.FilterFlag,
		cliUtils.JobsFlag,
		cliUtils.SeedFlag,
	},
})

func doStats(context *cli.Context) error {

	filter, err := cliUtils.FilterFlag.Fetch(context)
	if err != nil {
		return err
	}

	jobCount := cliUtils.JobsFlag.Fetch(context)
	seed := cliUtils.SeedFlag.Fetch(context)

	log, err := newLogger(cliUtils.VerboseFlag.Fetch(context))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	selected := scenarios.Filter(scenarios.Catalog(), filter)
	statsCollector := newStatsCollector(selected)

	opStats := func(result scenarios.Result) scenarios.ConsumerResult {
		if result.Err != nil {
			fmt.Printf("FAIL %s: %v\n", result.Scenario.Name, result.Err)
		}
		statsCollector.registerResult(result)
		return scenarios.ConsumeContinue
	}

	fmt.Printf("Evaluating scenarios with seed %d using %d jobs ...\n", seed, jobCount)
	err = scenarios.ForEachScenario(selected, opStats, printProgress, jobCount, seed, log)
	if err != nil {
		return fmt.Errorf("error evaluating scenarios: %w", err)
	}

	// Summarize the result.
	fmt.Printf("%v", statsCollector.getStatistics())
	return nil
}

type statsCollector struct {
	statistics scenarioStatistics
	mu         sync.Mutex
}

func newStatsCollector(selected []scenarios.Scenario) *statsCollector {
	stats := scenarioStatistics{make(map[string]scenarioInfo)}
	for _, scenario := range selected {
		stats.data[scenario.Name] = scenarioInfo{} // initialize all scenarios with 0
	}
	return &statsCollector{statistics: stats}
}

func (c *statsCollector) registerResult(result scenarios.Result) {
	c.mu.Lock()
	c.statistics.register(result.Scenario.Name, result.Summary.Trials, result.Summary.Dimensions)
	c.mu.Unlock()
}

func (c *statsCollector) getStatistics() *scenarioStatistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statistics.clone()
}

type scenarioStatistics struct {
	data map[string]scenarioInfo
}

func (s *scenarioStatistics) register(scenario string, trials, dimensions int) {
	if s.data == nil {
		s.data = make(map[string]scenarioInfo)
	}
	stats := s.data[scenario]
	stats.numTrials += uint64(trials)
	stats.numDimensions = max(stats.numDimensions, dimensions)
	s.data[scenario] = stats
}

func (s *scenarioStatistics) getNumTrialsFor(scenario string) uint64 {
	return s.data[scenario].numTrials
}

func (s *scenarioStatistics) clone() *scenarioStatistics {
	return &scenarioStatistics{maps.Clone(s.data)}
}

func (s *scenarioStatistics) String() string {
	builder := strings.Builder{}

	names := maps.Keys(s.data)
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	builder.WriteString("scenario,num_trials,num_dimensions\n")
	for _, name := range names {
		info := s.data[name]
		builder.WriteString(fmt.Sprintf("%s,%d,%d\n", name, info.numTrials, info.numDimensions))
	}
	return builder.String()
}

type scenarioInfo struct {
	numTrials     uint64
	numDimensions int
}
