// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package pairwise

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func levels(counts ...int) [][]string {
	res := make([][]string, len(counts))
	for i, count := range counts {
		for j := 0; j < count; j++ {
			res[i] = append(res[i], fmt.Sprintf("f%d-l%d", i, j))
		}
	}
	return res
}

func TestPlan_ProducesExpectedSchedule(t *testing.T) {
	want := [][]int{
		{0, 0, 0}, {0, 1, 1}, {0, 2, 2},
		{1, 0, 1}, {1, 1, 0}, {1, 2, 2},
		{2, 0, 2}, {2, 1, 0}, {2, 2, 1},
		{0, 1, 2}, {1, 2, 0},
	}
	if diff := cmp.Diff(want, Plan(levels(3, 3, 3), Pairs)); diff != "" {
		t.Errorf("unexpected schedule (-want +got):\n%s", diff)
	}
}

func TestPlan_CoversAllPairs(t *testing.T) {
	tests := [][]int{
		{2},
		{2, 2},
		{3, 3, 3},
		{2, 3, 4},
		{4, 4, 4, 4},
		{5, 1, 3, 2, 2},
	}
	for _, counts := range tests {
		t.Run(fmt.Sprint(counts), func(t *testing.T) {
			schedule := Plan(levels(counts...), Pairs)
			for i := range counts {
				for j := i + 1; j < len(counts); j++ {
					for a := 0; a < counts[i]; a++ {
						for b := 0; b < counts[j]; b++ {
							if !containsPair(schedule, i, a, j, b) {
								t.Errorf("pair %d:%d x %d:%d not covered", i, a, j, b)
							}
						}
					}
				}
			}
			if len(counts) > 2 && len(schedule) >= Product(levels(counts...)) {
				t.Errorf("schedule of %d trials is not smaller than the full product", len(schedule))
			}
		})
	}
}

func containsPair(schedule [][]int, i, a, j, b int) bool {
	for _, row := range schedule {
		if row[i] == a && row[j] == b {
			return true
		}
	}
	return false
}

func TestPlan_SinglesCoverEveryLevelOnce(t *testing.T) {
	schedule := Plan(levels(3, 2, 4), Singles)
	if want, got := 4, len(schedule); want != got {
		t.Fatalf("unexpected number of trials, wanted %d, got %d", want, got)
	}
	for i, count := range []int{3, 2, 4} {
		seen := map[int]bool{}
		for _, row := range schedule {
			seen[row[i]] = true
		}
		if len(seen) != count {
			t.Errorf("factor %d covers %d of %d levels", i, len(seen), count)
		}
	}
}

func TestPlan_FactorsWithoutLevelsHaveNoPlan(t *testing.T) {
	if got := Plan([][]string{{"a"}, {}}, Pairs); got != nil {
		t.Errorf("unexpected schedule, got %v", got)
	}
	if want, got := [][]int{{}}, Plan(nil, Pairs); !cmp.Equal(want, got) {
		t.Errorf("unexpected schedule, wanted %v, got %v", want, got)
	}
}

func TestTracker_DependentFactorsUseWitnesses(t *testing.T) {
	tracker := NewTracker(Pairs)
	available := func(producer int) []string {
		if producer == 0 {
			return []string{"low", "high"}
		}
		return []string{"high", "top"}
	}

	type trial struct{ a, b, c string }
	var trials []trial
	for {
		a := []string{"a0", "a1"}[tracker.Choose(0, nil, []string{"a0", "a1"})]
		names := available(tracker.factors[0].chosen)
		b := names[tracker.Choose(1, []int{0}, names)]
		c := []string{"c0", "c1"}[tracker.Choose(2, nil, []string{"c0", "c1"})]
		trials = append(trials, trial{a, b, c})
		tracker.Commit()
		if !tracker.Advance() {
			break
		}
	}

	// every level of b has to be combined with every level of c
	for _, b := range []string{"low", "high", "top"} {
		for _, c := range []string{"c0", "c1"} {
			found := false
			for _, cur := range trials {
				found = found || cur.b == b && cur.c == c
			}
			if !found {
				t.Errorf("pair %s/%s not covered in %v", b, c, trials)
			}
		}
	}
	// "top" is only available with a1, so pairing it with a0 is infeasible
	for _, cur := range trials {
		if cur.a == "a0" && cur.b == "top" || cur.a == "a1" && cur.b == "low" {
			t.Errorf("impossible combination scheduled: %v", cur)
		}
	}
	if tracker.Dropped() == 0 {
		t.Errorf("infeasible combinations should have been dropped")
	}
	if tracker.Trials() != len(trials) {
		t.Errorf("unexpected number of trials, wanted %d, got %d", len(trials), tracker.Trials())
	}
}

func TestTracker_DescribeUsesLevelNames(t *testing.T) {
	tracker := NewTracker(Pairs)
	tracker.Choose(0, nil, []string{"x", "y"})
	tracker.Choose(1, nil, []string{"z"})
	tracker.Commit()

	if want, got := "0:y x 1:z", tracker.Describe(Requirement{0, 1, 1, 0}); want != got {
		t.Errorf("unexpected description, wanted %s, got %s", want, got)
	}
	if want, got := "1:z", tracker.Describe(single(1, 0)); want != got {
		t.Errorf("unexpected description, wanted %s, got %s", want, got)
	}
	if want, got := []string{"x", "y"}, tracker.Levels(0); !cmp.Equal(want, got) {
		t.Errorf("unexpected levels, wanted %v, got %v", want, got)
	}
	if got := tracker.Levels(5); got != nil {
		t.Errorf("unexpected levels of unknown factor, got %v", got)
	}
}

func TestTracker_FactorsMustBeReportedInOrder(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("skipping a factor should panic")
		}
	}()
	NewTracker(Pairs).Choose(1, nil, []string{"a"})
}

func TestMode_String(t *testing.T) {
	tests := map[Mode]string{
		Pairs:   "pairs",
		Singles: "singles",
		Mode(7): "Mode(7)",
	}
	for mode, want := range tests {
		if got := mode.String(); want != got {
			t.Errorf("unexpected print, wanted %s, got %s", want, got)
		}
	}
}
