// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package fuzzy

import "fmt"

// Subcase is a single category of values of a Case, e.g. "negative" for an
// integer case. A subcase is identified by its name, which is unique within
// the set produced by a Case, and produces values by drawing from the given
// Random source only. Subcases are immutable.
type Subcase[T any] struct {
	name     string
	generate func(Random) (T, error)
	fixed    bool // < set if the subcase always produces value
	value    T
}

// NewSubcase creates a subcase with the given category name producing values
// with the given generator function.
func NewSubcase[T any](name string, generate func(Random) T) Subcase[T] {
	return Subcase[T]{
		name: name,
		generate: func(rnd Random) (T, error) {
			return generate(rnd), nil
		},
	}
}

// constant creates a subcase always producing the same value.
func constant[T any](name string, value T) Subcase[T] {
	res := NewSubcase(name, func(Random) T { return value })
	res.fixed = true
	res.value = value
	return res
}

func (s Subcase[T]) Name() string {
	return s.name
}

// Generate produces a value of this subcase's category.
func (s Subcase[T]) Generate(rnd Random) (T, error) {
	if s.generate == nil {
		var zero T
		return zero, fmt.Errorf("%w, subcase %q has no generator", ErrInvalidArgument, s.name)
	}
	return s.generate(rnd)
}

func (s Subcase[T]) String() string {
	return s.name
}

// subcaseSet collects subcases while enforcing unique category names.
type subcaseSet[T any] struct {
	subcases []Subcase[T]
	names    map[string]struct{}
}

func (s *subcaseSet[T]) add(subcase Subcase[T]) {
	if s.names == nil {
		s.names = map[string]struct{}{}
	}
	if _, found := s.names[subcase.name]; found {
		panic(fmt.Sprintf("duplicate subcase %q", subcase.name))
	}
	s.names[subcase.name] = struct{}{}
	s.subcases = append(s.subcases, subcase)
}

func (s *subcaseSet[T]) list() []Subcase[T] {
	return s.subcases
}
