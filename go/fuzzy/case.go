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

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// MaxExclusionAttempts is the number of draws a subcase of an excluding case
// gets to produce a value that is not excluded.
const MaxExclusionAttempts = 100

// DimensionID identifies a dimension registered in a Context session. IDs are
// assigned in the order in which a scenario declares its generators.
type DimensionID int

// Case is a value space described by a set of subcases, one per category of
// values worth testing.
//
// Subcases must be pure with respect to the configuration of the case:
// calling it twice yields equivalent sets. The returned set is never empty.
// Dependencies lists the dimensions whose runtime values are read while
// computing the subcases or their values.
type Case[T any] interface {
	Subcases() ([]Subcase[T], error)
	Dependencies() []DimensionID
}

// Value is a configuration parameter of a case that is either a literal or
// the runtime value of another dimension. It is also a Case with a single
// subcase producing the value.
type Value[T any] interface {
	Case[T]
	Resolve() (T, error)
	private() // < restricts implementations to this package
}

// Literal wraps a constant value.
func Literal[T any](value T) Value[T] {
	return literal[T]{value: value}
}

// Nil is the absent value of type T. Configuration methods treat it through
// their documented fallbacks, e.g. an absent length is a length of zero.
func Nil[T any]() Value[T] {
	return literal[T]{absent: true}
}

type literal[T any] struct {
	value  T
	absent bool
}

func (l literal[T]) Subcases() ([]Subcase[T], error) {
	name := "literal"
	if l.absent {
		name = "nil"
	}
	return []Subcase[T]{constant(name, l.value)}, nil
}

func (literal[T]) Dependencies() []DimensionID {
	return nil
}

func (l literal[T]) Resolve() (T, error) {
	return l.value, nil
}

func (l literal[T]) String() string {
	if l.absent {
		return "nil"
	}
	return fmt.Sprintf("%v", l.value)
}

func (literal[T]) private() {}

// AnyOf creates a case picking one of a fixed set of values. Every value forms
// its own subcase.
func AnyOf[T any](values ...T) Case[T] {
	return choiceCase[T]{values: slices.Clone(values)}
}

type choiceCase[T any] struct {
	values []T
}

func (c choiceCase[T]) Subcases() ([]Subcase[T], error) {
	if len(c.values) == 0 {
		return nil, fmt.Errorf("%w, no values to choose from", ErrInvalidArgument)
	}
	set := subcaseSet[T]{}
	for i, value := range c.values {
		set.add(constant(fmt.Sprintf("%d:%v", i, value), value))
	}
	return set.list(), nil
}

func (choiceCase[T]) Dependencies() []DimensionID {
	return nil
}

// OneOf creates a case whose subcases are the union of the subcases of the
// given cases.
func OneOf[T any](cases ...Case[T]) Case[T] {
	return unionCase[T]{cases: slices.Clone(cases)}
}

type unionCase[T any] struct {
	cases []Case[T]
}

func (c unionCase[T]) Subcases() ([]Subcase[T], error) {
	if len(c.cases) == 0 {
		return nil, fmt.Errorf("%w, no cases to choose from", ErrInvalidArgument)
	}
	set := subcaseSet[T]{}
	for i, cur := range c.cases {
		subcases, err := cur.Subcases()
		if err != nil {
			return nil, err
		}
		for _, subcase := range subcases {
			subcase.name = fmt.Sprintf("%d/%s", i, subcase.name)
			set.add(subcase)
		}
	}
	return set.list(), nil
}

func (c unionCase[T]) Dependencies() []DimensionID {
	var res []DimensionID
	for _, cur := range c.cases {
		res = mergeDependencies(res, cur.Dependencies())
	}
	return res
}

// Excluding restricts the given case to never produce any of the given values.
// See MaxExclusionAttempts for the retry budget of each subcase.
func Excluding[T comparable](c Case[T], values ...T) Case[T] {
	return excludingCase[T]{base: c, excluded: slices.Clone(values)}
}

type excludingCase[T comparable] struct {
	base     Case[T]
	excluded []T
}

func (c excludingCase[T]) Subcases() ([]Subcase[T], error) {
	subcases, err := c.base.Subcases()
	if err != nil {
		return nil, err
	}
	return excludeFrom(subcases, c.excluded), nil
}

func (c excludingCase[T]) Dependencies() []DimensionID {
	return c.base.Dependencies()
}

// excludeFrom removes subcases that always produce an excluded value and
// wraps the others into a bounded retry loop skipping excluded values. If
// every subcase is removed, the wrapped subcases are returned nonetheless so
// that generating values fails with ErrGenerationExhausted.
func excludeFrom[T comparable](subcases []Subcase[T], excluded []T) []Subcase[T] {
	if len(excluded) == 0 {
		return subcases
	}
	forbidden := mapset.NewThreadUnsafeSet(excluded...)
	res := make([]Subcase[T], 0, len(subcases))
	for _, subcase := range subcases {
		if subcase.fixed && forbidden.Contains(subcase.value) {
			continue
		}
		res = append(res, retrying(subcase, forbidden))
	}
	if len(res) > 0 {
		return res
	}
	for _, subcase := range subcases {
		res = append(res, retrying(subcase, forbidden))
	}
	return res
}

func retrying[T comparable](subcase Subcase[T], forbidden mapset.Set[T]) Subcase[T] {
	return Subcase[T]{
		name: subcase.name,
		generate: func(rnd Random) (T, error) {
			for i := 0; i < MaxExclusionAttempts; i++ {
				value, err := subcase.Generate(rnd)
				if err != nil {
					return value, err
				}
				if !forbidden.Contains(value) {
					return value, nil
				}
			}
			var zero T
			return zero, fmt.Errorf(
				"%w, subcase %q produced only excluded values in %d attempts",
				ErrGenerationExhausted, subcase.name, MaxExclusionAttempts,
			)
		},
	}
}

// GenerateAllOnce draws one value from every subcase of the given case and
// returns the set of distinct values. It is meant for inspecting the coverage
// of a case, not for running trials.
func GenerateAllOnce[T comparable](c Case[T], rnd Random) (mapset.Set[T], error) {
	subcases, err := c.Subcases()
	if err != nil {
		return nil, err
	}
	res := mapset.NewThreadUnsafeSet[T]()
	for _, subcase := range subcases {
		value, err := subcase.Generate(rnd)
		if err != nil {
			return nil, err
		}
		res.Add(value)
	}
	return res, nil
}

// mergeDependencies returns the sorted union of the given dependency lists.
func mergeDependencies(lists ...[]DimensionID) []DimensionID {
	var res []DimensionID
	for _, list := range lists {
		for _, id := range list {
			if !slices.Contains(res, id) {
				res = append(res, id)
			}
		}
	}
	slices.Sort(res)
	return res
}

// dependenciesOf collects the dependencies of optional configuration values.
func dependenciesOf[T any](values ...Case[T]) []DimensionID {
	var res []DimensionID
	for _, value := range values {
		if value != nil {
			res = mergeDependencies(res, value.Dependencies())
		}
	}
	return res
}
