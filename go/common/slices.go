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

// CycleSlice returns a slice of the given size filled by repeating the
// elements of source in order. An empty source produces an empty result.
func CycleSlice[T any](source []T, size int) []T {
	if len(source) == 0 || size <= 0 {
		return []T{}
	}
	res := make([]T, size)
	for i := range res {
		res[i] = source[i%len(source)]
	}
	return res
}
