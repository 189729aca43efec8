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
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// ToCharSet materializes the set of single characters (runes) contained in
// the given source string. Each character is represented as a string.
func ToCharSet(source string) mapset.Set[string] {
	res := mapset.NewThreadUnsafeSet[string]()
	for _, r := range source {
		res.Add(string(r))
	}
	return res
}

// Union computes the union of two character sets. Neither input is modified.
func Union(a, b mapset.Set[string]) mapset.Set[string] {
	if a == nil && b == nil {
		return mapset.NewThreadUnsafeSet[string]()
	}
	if a == nil {
		return b.Clone()
	}
	if b == nil {
		return a.Clone()
	}
	return a.Union(b)
}

// SortedChars lists the members of a character set in ascending order. The
// order is needed to draw characters reproducibly from a seeded source.
func SortedChars(chars mapset.Set[string]) []string {
	if chars == nil {
		return nil
	}
	res := chars.ToSlice()
	sort.Strings(res)
	return res
}
