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
	"regexp"

	"github.com/Fantom-foundation/fuzzy/go/common"
	"github.com/Fantom-foundation/fuzzy/go/fuzzy"
)

// ErrInvariantViolated is reported by scenarios observing a value that
// contradicts the configuration of its case.
const ErrInvariantViolated = common.ConstErr("invariant violated")

// Scenario is a named, self-checking scenario body. The body declares its
// dimensions through fuzzy.Of and verifies the values it obtains.
type Scenario struct {
	Name string
	Mode fuzzy.Mode
	Body func(ctx *fuzzy.Context) error
}

// Run executes all trials of the scenario with the given seed.
func (s Scenario) Run(seed uint64, opts ...fuzzy.Option) (fuzzy.Summary, error) {
	return fuzzy.Run(s.Mode, seed, s.Body, opts...)
}

func (s Scenario) String() string {
	return fmt.Sprintf("%s (%v)", s.Name, s.Mode)
}

// Filter returns the scenarios whose name matches the given expression. A nil
// expression matches every scenario.
func Filter(scenarios []Scenario, filter *regexp.Regexp) []Scenario {
	if filter == nil {
		return scenarios
	}
	res := make([]Scenario, 0, len(scenarios))
	for _, scenario := range scenarios {
		if filter.MatchString(scenario.Name) {
			res = append(res, scenario)
		}
	}
	return res
}

func check(condition bool, format string, args ...any) error {
	if condition {
		return nil
	}
	return fmt.Errorf("%w, %s", ErrInvariantViolated, fmt.Sprintf(format, args...))
}
