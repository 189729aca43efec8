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

// Plan computes a schedule for independent factors with the given level
// names. Each row of the result is a trial listing the chosen level index of
// every factor. Plan returns nil if a factor has no levels.
func Plan(levels [][]string, mode Mode) [][]int {
	for _, cur := range levels {
		if len(cur) == 0 {
			return nil
		}
	}
	tracker := NewTracker(mode)
	res := [][]int{}
	for {
		row := make([]int, len(levels))
		for i, names := range levels {
			row[i] = tracker.Choose(i, nil, names)
		}
		res = append(res, row)
		tracker.Commit()
		if !tracker.Advance() {
			return res
		}
	}
}

// Product is the number of trials covering all combinations of levels.
func Product(levels [][]string) int {
	res := 1
	for _, cur := range levels {
		res *= len(cur)
	}
	return res
}
