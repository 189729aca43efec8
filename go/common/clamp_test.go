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
	"math"
	"testing"
)

func TestClamp_RestrictsToInterval(t *testing.T) {
	tests := map[string]struct {
		value, want int
	}{
		"below":      {-5000, 0},
		"lower edge": {0, 0},
		"inside":     {17, 17},
		"upper edge": {1024, 1024},
		"above":      {5000, 1024},
		"max int":    {math.MaxInt, 1024},
		"min int":    {math.MinInt, 0},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Clamp(test.value, 0, 1024); got != test.want {
				t.Errorf("unexpected result, wanted %d, got %d", test.want, got)
			}
		})
	}
}

func TestClamp_WorksForUnsignedTypes(t *testing.T) {
	if got, want := Clamp[uint8](200, 10, 100), uint8(100); got != want {
		t.Errorf("unexpected result, wanted %d, got %d", want, got)
	}
}
