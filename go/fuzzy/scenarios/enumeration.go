// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package scenarios

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Fantom-foundation/fuzzy/go/common"
	"github.com/Fantom-foundation/fuzzy/go/fuzzy"
	"go.uber.org/zap"
)

// ConsumerResult is the verdict of a result consumer on whether the
// execution of scenarios should continue.
type ConsumerResult bool

const (
	ConsumeContinue ConsumerResult = true
	ConsumeAbort    ConsumerResult = false
)

// Result is the outcome of running all trials of a scenario.
type Result struct {
	Scenario Scenario
	Summary  fuzzy.Summary
	Err      error
}

const errAborted = common.ConstErr("aborted")

// progressInterval is the period in which progress is reported.
var progressInterval = 5 * time.Second

// ForEachScenario runs the given scenarios on numJobs parallel workers and
// forwards the result of each scenario to the given consumer. Every scenario
// runs in its own session seeded with the given seed, so results are
// reproducible independently of the order of execution. Once the consumer
// aborts, pending scenarios are skipped.
func ForEachScenario(
	scenarios []Scenario,
	onResult func(Result) ConsumerResult,
	printProgress func(relativeTime time.Duration, rate float64, current int64),
	numJobs int,
	seed uint64,
	log *zap.Logger,
) error {
	// Scenarios are distributed in a three-step process:
	//   - this goroutine writes the scenarios to be run into a channel
	//   - a team of goroutines fetches scenarios from the first channel, runs
	//     all of their trials and forwards the results into a second channel
	//   - a single goroutine consumes the results, so consumers need no
	//     synchronization of their own.
	// Additionally, a goroutine periodically reporting progress information is
	// started. Consuming goroutines are started before producing goroutines.
	if numJobs <= 0 {
		return fmt.Errorf("%w, number of jobs must be positive, got %d", fuzzy.ErrInvalidArgument, numJobs)
	}
	if log == nil {
		log = zap.NewNop()
	}

	var trialCounter atomic.Int64
	var abort atomic.Bool

	done := make(chan bool)
	printerDone := make(chan bool)
	go func() {
		defer close(printerDone)
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		startTime := time.Now()
		lastTime := startTime
		lastTrialCounter := int64(0)

		checkTimingAndPrint := func(now time.Time) {
			cur := trialCounter.Load()

			diffCounter := cur - lastTrialCounter
			diffTime := now.Sub(lastTime)

			lastTime = now
			lastTrialCounter = cur

			rate := 0.0
			if diffTime > 0 {
				rate = float64(diffCounter) / diffTime.Seconds()
			}
			if printProgress != nil {
				printProgress(now.Sub(startTime), rate, cur)
			}
		}

		for {
			select {
			case <-done:
				checkTimingAndPrint(time.Now())
				return
			case now := <-ticker.C:
				checkTimingAndPrint(now)
			}
		}
	}()

	// Consume results.
	resultChannel := make(chan Result, 10*numJobs)
	consumerDone := make(chan bool)
	go func() {
		defer close(consumerDone)
		for result := range resultChannel {
			if abort.Load() {
				continue // < drain the channel
			}
			if onResult(result) == ConsumeAbort {
				abort.Store(true)
			}
		}
	}()

	// Run scenarios in parallel.
	scenarioChannel := make(chan Scenario, 10*numJobs)
	var workers sync.WaitGroup
	workers.Add(numJobs)
	for i := 0; i < numJobs; i++ {
		go func() {
			defer workers.Done()
			for scenario := range scenarioChannel {
				if abort.Load() {
					continue // < keep consuming scenarios
				}
				body := func(ctx *fuzzy.Context) error {
					if abort.Load() {
						return errAborted
					}
					trialCounter.Add(1)
					return scenario.Body(ctx)
				}
				summary, err := fuzzy.Run(scenario.Mode, seed, body, fuzzy.WithLogger(log.With(zap.String("scenario", scenario.Name))))
				if abort.Load() {
					continue
				}
				resultChannel <- Result{Scenario: scenario, Summary: summary, Err: err}
			}
		}()
	}

	// Feed the workers with scenarios.
	for _, scenario := range scenarios {
		scenarioChannel <- scenario
	}
	close(scenarioChannel)
	workers.Wait()

	close(resultChannel)
	<-consumerDone

	// Wait for the printer to be finished.
	close(done)   // < signals progress printer to stop
	<-printerDone // < blocks until channel is closed by progress printer

	return nil
}
