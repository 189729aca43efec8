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

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/maps"
)

// Mode selects the requirements a Tracker aims to cover.
type Mode int

const (
	// Pairs requires every combination of two levels of any two factors to
	// be part of some trial, and every single level as well.
	Pairs Mode = iota
	// Singles requires every level of every factor to be part of some trial.
	Singles
)

func (m Mode) String() string {
	switch m {
	case Pairs:
		return "pairs"
	case Singles:
		return "singles"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// maxWitnesses limits the number of ancestor assignments recorded per level.
const maxWitnesses = 8

// Requirement is a combination of levels that has to occur in some trial.
// Singles have no second factor; Factor2 is -1 for those.
type Requirement struct {
	Factor1, Level1 int
	Factor2, Level2 int
}

func (r Requirement) IsSingle() bool {
	return r.Factor2 < 0
}

// Tracker incrementally builds a covering schedule for a sequence of
// factors. Factors and their levels are learned while trials are executed:
// a trial reports, factor by factor, the levels available to it through
// Choose, and the Tracker selects one of them. Factors may depend on earlier
// factors, in which case their available levels may vary between trials.
//
// Every trial has a target, the first requirement neither covered nor found
// infeasible so far. The target's levels are enforced, all other choices are
// made greedily to cover as many open requirements as possible. A target
// that could not be realized is dropped. Thus every trial covers or drops at
// least one requirement and the schedule is finite.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	mode    Mode
	factors []*factor
	covered mapset.Set[Requirement]
	dropped mapset.Set[Requirement]
	target  *Requirement
	plan    map[int]int // < factor -> level enforced in the current trial
	trials  int
}

type factor struct {
	levels    []string
	index     map[string]int
	usage     []int
	ancestors []int
	witnesses map[int][]map[int]int // < level -> observed ancestor levels
	available []int
	chosen    int
}

func NewTracker(mode Mode) *Tracker {
	return &Tracker{
		mode:    mode,
		covered: mapset.NewThreadUnsafeSet[Requirement](),
		dropped: mapset.NewThreadUnsafeSet[Requirement](),
		plan:    map[int]int{},
	}
}

// Choose selects one of the given level names for the factor at position pos
// in the current trial and returns its index in names. Factors have to be
// reported in increasing position order, starting at 0, and every position
// has to be reported in every trial. Ancestors are the positions of the
// earlier factors the available levels depend on. names must not be empty.
func (t *Tracker) Choose(pos int, ancestors []int, names []string) int {
	if len(names) == 0 {
		panic("pairwise: factor without levels")
	}
	f := t.factor(pos, ancestors)

	f.available = f.available[:0]
	for _, name := range names {
		f.available = append(f.available, f.level(name))
	}

	chosen := -1
	if level, found := t.plan[pos]; found {
		for i, cur := range f.available {
			if cur == level {
				chosen = i
				break
			}
		}
	}
	if chosen < 0 {
		chosen = t.greedy(pos, f)
	}
	f.chosen = f.available[chosen]
	f.usage[f.chosen]++
	return chosen
}

func (t *Tracker) factor(pos int, ancestors []int) *factor {
	if pos < len(t.factors) {
		return t.factors[pos]
	}
	if pos != len(t.factors) {
		panic(fmt.Sprintf("pairwise: factor %d reported before factor %d", pos, len(t.factors)))
	}
	f := &factor{
		index:     map[string]int{},
		ancestors: append([]int(nil), ancestors...),
		witnesses: map[int][]map[int]int{},
		chosen:    -1,
	}
	t.factors = append(t.factors, f)
	return f
}

func (f *factor) level(name string) int {
	if level, found := f.index[name]; found {
		return level
	}
	level := len(f.levels)
	f.levels = append(f.levels, name)
	f.index[name] = level
	f.usage = append(f.usage, 0)
	return level
}

// greedy picks the available level completing the most open pairs with the
// factors chosen so far. Ties are broken by preferring an uncovered single,
// then the least used level, then the first one.
func (t *Tracker) greedy(pos int, f *factor) int {
	best := 0
	bestPairs, bestSingle, bestUsage := -1, false, 0
	for i, level := range f.available {
		pairs := 0
		if t.mode == Pairs {
			for j := 0; j < pos; j++ {
				if t.isOpen(Requirement{j, t.factors[j].chosen, pos, level}) {
					pairs++
				}
			}
		}
		single := t.isOpen(single(pos, level))
		usage := f.usage[level]

		better := pairs > bestPairs ||
			(pairs == bestPairs && single && !bestSingle) ||
			(pairs == bestPairs && single == bestSingle && usage < bestUsage)
		if better {
			best, bestPairs, bestSingle, bestUsage = i, pairs, single, usage
		}
	}
	return best
}

func single(pos, level int) Requirement {
	return Requirement{Factor1: pos, Level1: level, Factor2: -1, Level2: -1}
}

func (t *Tracker) isOpen(r Requirement) bool {
	return !t.covered.Contains(r) && !t.dropped.Contains(r)
}

// Commit concludes the current trial. It marks all combinations of chosen
// levels as covered and reports whether the trial's target had to be
// dropped as infeasible.
func (t *Tracker) Commit() (dropped bool) {
	for i, f := range t.factors {
		if f.chosen < 0 {
			continue
		}
		t.covered.Add(single(i, f.chosen))
		if t.mode == Pairs {
			for j := 0; j < i; j++ {
				if other := t.factors[j].chosen; other >= 0 {
					t.covered.Add(Requirement{j, other, i, f.chosen})
				}
			}
		}
		f.witness(t.factors)
	}

	if t.target != nil && !t.covered.Contains(*t.target) {
		t.dropped.Add(*t.target)
		dropped = true
	}

	for _, f := range t.factors {
		f.chosen = -1
	}
	t.trials++
	return dropped
}

// witness records the levels of the ancestors under which the chosen level
// was available.
func (f *factor) witness(factors []*factor) {
	if len(f.ancestors) == 0 {
		return
	}
	assignment := map[int]int{}
	for _, ancestor := range f.ancestors {
		if level := factors[ancestor].chosen; level >= 0 {
			assignment[ancestor] = level
		}
	}
	known := f.witnesses[f.chosen]
	if len(known) >= maxWitnesses {
		return
	}
	for _, cur := range known {
		if maps.Equal(cur, assignment) {
			return
		}
	}
	f.witnesses[f.chosen] = append(known, assignment)
}

// Advance selects the target of the next trial. It returns false if every
// requirement known so far is either covered or dropped.
func (t *Tracker) Advance() bool {
	t.target = nil
	clear(t.plan)

	next, found := t.nextOpen()
	if !found {
		return false
	}
	t.target = &next
	t.plan[next.Factor1] = next.Level1
	if !next.IsSingle() {
		t.plan[next.Factor2] = next.Level2
	}

	t.enforceWitness(next.Factor1, next.Level1)
	if !next.IsSingle() {
		t.enforceWitness(next.Factor2, next.Level2)
	}
	return true
}

// nextOpen finds the first open requirement, pairs before singles, both in
// factor and level order.
func (t *Tracker) nextOpen() (Requirement, bool) {
	if t.mode == Pairs {
		for i, first := range t.factors {
			for j := i + 1; j < len(t.factors); j++ {
				for l1 := range first.levels {
					for l2 := range t.factors[j].levels {
						if r := (Requirement{i, l1, j, l2}); t.isOpen(r) {
							return r, true
						}
					}
				}
			}
		}
	}
	for i, f := range t.factors {
		for l := range f.levels {
			if r := single(i, l); t.isOpen(r) {
				return r, true
			}
		}
	}
	return Requirement{}, false
}

// enforceWitness extends the plan by the first recorded ancestor assignment
// under which the given level was available and that agrees with the plan.
func (t *Tracker) enforceWitness(pos, level int) {
	for _, assignment := range t.factors[pos].witnesses[level] {
		consistent := true
		for ancestor, ancestorLevel := range assignment {
			if planned, found := t.plan[ancestor]; found && planned != ancestorLevel {
				consistent = false
				break
			}
		}
		if consistent {
			for ancestor, ancestorLevel := range assignment {
				t.plan[ancestor] = ancestorLevel
			}
			return
		}
	}
}

// Target returns the requirement the current trial aims to cover, if any.
func (t *Tracker) Target() (Requirement, bool) {
	if t.target == nil {
		return Requirement{}, false
	}
	return *t.target, true
}

// Describe renders a requirement using level names.
func (t *Tracker) Describe(r Requirement) string {
	name := func(f, l int) string {
		if f < 0 || f >= len(t.factors) || l < 0 || l >= len(t.factors[f].levels) {
			return fmt.Sprintf("%d:?", f)
		}
		return fmt.Sprintf("%d:%s", f, t.factors[f].levels[l])
	}
	if r.IsSingle() {
		return name(r.Factor1, r.Level1)
	}
	return name(r.Factor1, r.Level1) + " x " + name(r.Factor2, r.Level2)
}

func (t *Tracker) Trials() int  { return t.trials }
func (t *Tracker) Covered() int { return t.covered.Cardinality() }
func (t *Tracker) Dropped() int { return t.dropped.Cardinality() }

// Levels returns the names of the levels learned for the given factor.
func (t *Tracker) Levels(pos int) []string {
	if pos < 0 || pos >= len(t.factors) {
		return nil
	}
	return append([]string(nil), t.factors[pos].levels...)
}
