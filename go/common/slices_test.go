// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"slices"
	"testing"
)

func TestSlices_CycleSlice(t *testing.T) {
	base := []int{1, 2, 3}
	tests := map[string]struct {
		source []int
		length int
		want   []int
	}{
		"longer":   {source: base, length: 7, want: []int{1, 2, 3, 1, 2, 3, 1}},
		"shorter":  {source: base, length: 2, want: []int{1, 2}},
		"equal":    {source: base, length: len(base), want: base},
		"zero":     {source: base, length: 0, want: []int{}},
		"negative": {source: base, length: -4, want: []int{}},
		"empty":    {source: nil, length: 4, want: []int{}},
	}

	for name, test := range tests {
		if got := CycleSlice(test.source, test.length); !slices.Equal(test.want, got) {
			t.Errorf("cycling for %v failed, wanted %v, but got %v", name, test.want, got)
		}
	}
}
