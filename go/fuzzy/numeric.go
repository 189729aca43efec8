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
)

// NumericCase is the value space of a signed integer width. Without further
// configuration it produces a negative, a zero and a positive subcase. Bounds
// narrow the space and shift its subcases towards the boundaries.
//
// NumericCase values are immutable; every configuration method returns a new
// case and leaves the receiver untouched.
type NumericCase[T Width] struct {
	arith     Arithmetic[T]
	lower     Value[T] // < nil if unbounded
	upper     Value[T] // < nil if unbounded
	proximity *proximity[T]
	excluded  []T
}

type proximity[T Width] struct {
	radius      T
	base        Value[T]
	includeBase bool
}

// Int8 creates a default case of 8-bit integers.
func Int8() *NumericCase[int8] { return newNumericCase[int8]() }

// Int16 creates a default case of 16-bit integers.
func Int16() *NumericCase[int16] { return newNumericCase[int16]() }

// Int32 creates a default case of 32-bit integers.
func Int32() *NumericCase[int32] { return newNumericCase[int32]() }

// Int64 creates a default case of 64-bit integers.
func Int64() *NumericCase[int64] { return newNumericCase[int64]() }

func newNumericCase[T Width]() *NumericCase[T] {
	return &NumericCase[T]{arith: arithmeticFor[T]()}
}

// NewCase returns a fresh, unconfigured case of the same width.
func (c *NumericCase[T]) NewCase() *NumericCase[T] {
	return &NumericCase[T]{arith: c.arith}
}

func (c *NumericCase[T]) clone() *NumericCase[T] {
	res := *c
	res.excluded = slices.Clone(c.excluded)
	return &res
}

// LessThanOrEqualTo bounds the case from above by a literal.
func (c *NumericCase[T]) LessThanOrEqualTo(bound T) *NumericCase[T] {
	return c.LessThanOrEqualToValueOf(Literal(bound))
}

// LessThanOrEqualToValueOf bounds the case from above. If the bound is the
// value of another dimension, the subcases are the value right below the
// bound and a value further below.
func (c *NumericCase[T]) LessThanOrEqualToValueOf(bound Value[T]) *NumericCase[T] {
	res := c.clone()
	res.upper = bound
	res.proximity = nil
	return res
}

// GreaterThanOrEqualTo bounds the case from below by a literal.
func (c *NumericCase[T]) GreaterThanOrEqualTo(bound T) *NumericCase[T] {
	return c.GreaterThanOrEqualToValueOf(Literal(bound))
}

// GreaterThanOrEqualToValueOf bounds the case from below. If the bound is the
// value of another dimension, the subcases are the value right above the
// bound and a value further above.
func (c *NumericCase[T]) GreaterThanOrEqualToValueOf(bound Value[T]) *NumericCase[T] {
	res := c.clone()
	res.lower = bound
	res.proximity = nil
	return res
}

// InRange restricts the case to [min,max]. It fails with ErrInvalidArgument
// unless min < max.
func (c *NumericCase[T]) InRange(min, max T) (*NumericCase[T], error) {
	if !c.arith.Less(min, max) {
		return nil, fmt.Errorf("%w, empty range [%d,%d]", ErrInvalidArgument, min, max)
	}
	return c.InRangeOf(Literal(min), Literal(max)), nil
}

// InRangeOf restricts the case to [min,max] where either bound may be the
// value of another dimension. The bounds are validated when the subcases are
// computed.
func (c *NumericCase[T]) InRangeOf(min, max Value[T]) *NumericCase[T] {
	res := c.clone()
	res.lower = min
	res.upper = max
	res.proximity = nil
	return res
}

// Within starts the configuration of a case around a base value. It fails
// with ErrInvalidArgument unless radius > 0.
func (c *NumericCase[T]) Within(radius T) (*Proximity[T], error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w, radius must be positive, got %d", ErrInvalidArgument, radius)
	}
	return &Proximity[T]{owner: c, radius: radius}, nil
}

// Proximity is an intermediate step of configuring a case within a radius
// around a base value.
type Proximity[T Width] struct {
	owner  *NumericCase[T]
	radius T
}

// Of produces the offsets -radius, -1, +1 and +radius, a random offset on
// either side in between (unless radius is 1), and the base itself.
func (p *Proximity[T]) Of(base Value[T]) *NumericCase[T] {
	return p.build(base, true)
}

// ButExcludingValueOf is like Of but omits the base itself.
func (p *Proximity[T]) ButExcludingValueOf(base Value[T]) *NumericCase[T] {
	return p.build(base, false)
}

func (p *Proximity[T]) build(base Value[T], includeBase bool) *NumericCase[T] {
	res := p.owner.clone()
	res.lower = nil
	res.upper = nil
	res.proximity = &proximity[T]{radius: p.radius, base: base, includeBase: includeBase}
	return res
}

// Excluding returns a case never producing any of the given values.
func (c *NumericCase[T]) Excluding(values ...T) *NumericCase[T] {
	res := c.clone()
	res.excluded = append(res.excluded, values...)
	return res
}

// Dependencies lists the dimensions the bounds of this case refer to.
func (c *NumericCase[T]) Dependencies() []DimensionID {
	var base Value[T]
	if c.proximity != nil {
		base = c.proximity.base
	}
	return dependenciesOf[T](c.lower, c.upper, base)
}

// Subcases resolves the configured bounds and computes the subcases.
func (c *NumericCase[T]) Subcases() ([]Subcase[T], error) {
	subcases, err := c.boundedSubcases()
	if err != nil {
		return nil, err
	}
	return excludeFrom(subcases, c.excluded), nil
}

func (c *NumericCase[T]) boundedSubcases() ([]Subcase[T], error) {
	switch {
	case c.proximity != nil:
		base, err := c.proximity.base.Resolve()
		if err != nil {
			return nil, err
		}
		return c.proximitySubcases(base, c.proximity.radius, c.proximity.includeBase), nil

	case c.lower != nil && c.upper != nil:
		min, err := c.lower.Resolve()
		if err != nil {
			return nil, err
		}
		max, err := c.upper.Resolve()
		if err != nil {
			return nil, err
		}
		if !c.arith.Less(min, max) {
			return nil, fmt.Errorf("%w, empty range [%d,%d]", ErrInvalidArgument, min, max)
		}
		return c.rangeSubcases(min, max), nil

	case c.upper != nil:
		bound, err := c.upper.Resolve()
		if err != nil {
			return nil, err
		}
		if isDependent(c.upper) {
			return c.belowSubcases(bound), nil
		}
		return c.atMostSubcases(bound), nil

	case c.lower != nil:
		bound, err := c.lower.Resolve()
		if err != nil {
			return nil, err
		}
		if isDependent(c.lower) {
			return c.aboveSubcases(bound), nil
		}
		return c.atLeastSubcases(bound), nil
	}
	return c.defaultSubcases(), nil
}

func isDependent[T any](value Value[T]) bool {
	return len(value.Dependencies()) > 0
}

func (c *NumericCase[T]) between(name string, lo, hi T) Subcase[T] {
	arith := c.arith
	return NewSubcase(name, func(rnd Random) T {
		return arith.RandomBetween(rnd, lo, hi)
	})
}

func (c *NumericCase[T]) offset(name string, base, lo, hi T) Subcase[T] {
	arith := c.arith
	return NewSubcase(name, func(rnd Random) T {
		return arith.Add(base, arith.RandomBetween(rnd, lo, hi))
	})
}

func (c *NumericCase[T]) defaultSubcases() []Subcase[T] {
	arith := c.arith
	return []Subcase[T]{
		NewSubcase("negative", func(rnd Random) T {
			res := arith.Random(rnd)
			if res > 0 {
				res = arith.Negate(res)
			}
			return res
		}),
		constant("zero", T(0)),
		NewSubcase("positive", func(rnd Random) T {
			res := arith.Random(rnd)
			if res < 0 {
				res = arith.Negate(res)
			}
			return res
		}),
	}
}

// atMostSubcases covers (-∞,bound] for a literal bound.
func (c *NumericCase[T]) atMostSubcases(bound T) []Subcase[T] {
	min := c.arith.Min()
	switch {
	case bound < 0:
		return []Subcase[T]{
			c.between("negative", min, bound),
			constant("bound", bound),
		}
	case bound == 0:
		return []Subcase[T]{
			c.between("negative", min, -1),
			constant("zero", T(0)),
		}
	}
	interior := bound
	if bound > 1 {
		interior = bound - 1
	}
	return []Subcase[T]{
		c.between("negative", min, -1),
		constant("zero", T(0)),
		c.between("positive", 1, interior),
		constant("bound", bound),
	}
}

// atLeastSubcases covers [bound,+∞) for a literal bound.
func (c *NumericCase[T]) atLeastSubcases(bound T) []Subcase[T] {
	max := c.arith.Max()
	switch {
	case bound > 0:
		return []Subcase[T]{
			c.between("positive", bound, max),
			constant("bound", bound),
		}
	case bound == 0:
		return []Subcase[T]{
			constant("zero", T(0)),
			c.between("positive", 1, max),
		}
	}
	interior := bound
	if bound < -1 {
		interior = bound + 1
	}
	return []Subcase[T]{
		c.between("positive", 1, max),
		constant("zero", T(0)),
		c.between("negative", interior, -1),
		constant("bound", bound),
	}
}

// belowSubcases covers the values right below a bound taken from another
// dimension: the adjacent value and some value beyond it.
func (c *NumericCase[T]) belowSubcases(bound T) []Subcase[T] {
	adjacent := c.arith.Add(bound, -1)
	if adjacent == c.arith.Min() {
		return []Subcase[T]{
			constant("adjacent", adjacent),
			constant("beyond", adjacent),
		}
	}
	return []Subcase[T]{
		constant("adjacent", adjacent),
		c.between("beyond", c.arith.Min(), adjacent-1),
	}
}

// aboveSubcases mirrors belowSubcases.
func (c *NumericCase[T]) aboveSubcases(bound T) []Subcase[T] {
	adjacent := c.arith.Add(bound, 1)
	if adjacent == c.arith.Max() {
		return []Subcase[T]{
			constant("adjacent", adjacent),
			constant("beyond", adjacent),
		}
	}
	return []Subcase[T]{
		constant("adjacent", adjacent),
		c.between("beyond", adjacent+1, c.arith.Max()),
	}
}

// rangeSubcases covers [min,max] with min < max.
func (c *NumericCase[T]) rangeSubcases(min, max T) []Subcase[T] {
	if min < 0 && 0 < max {
		return []Subcase[T]{
			c.between("negative", min, -1),
			constant("zero", T(0)),
			c.between("positive", 1, max),
			constant("min", min),
			constant("max", max),
		}
	}
	return []Subcase[T]{
		constant("min", min),
		c.between("interior", min, max),
		constant("max", max),
	}
}

// proximitySubcases covers the offsets in [-radius,radius] around base.
// Offsets beyond the width's bounds saturate.
func (c *NumericCase[T]) proximitySubcases(base, radius T, includeBase bool) []Subcase[T] {
	arith := c.arith
	res := []Subcase[T]{constant("base-radius", arith.Add(base, arith.Negate(radius)))}
	if radius > 1 {
		res = append(res,
			c.offset("below-base", base, arith.Negate(radius-1), -1),
			constant("base-1", arith.Add(base, -1)),
		)
	}
	if includeBase {
		res = append(res, constant("base", base))
	}
	if radius > 1 {
		res = append(res,
			constant("base+1", arith.Add(base, 1)),
			c.offset("above-base", base, 1, radius-1),
		)
	}
	return append(res, constant("base+radius", arith.Add(base, radius)))
}

////////////////////////////////////////////////////////////
// Arithmetic capabilities

// Arithmetic returns the capability table of this case's width.
func (c *NumericCase[T]) Arithmetic() Arithmetic[T] { return c.arith }

func (c *NumericCase[T]) Min() T               { return c.arith.Min() }
func (c *NumericCase[T]) Max() T               { return c.arith.Max() }
func (c *NumericCase[T]) Bytes() int           { return c.arith.Bytes() }
func (c *NumericCase[T]) Add(a, b T) T         { return c.arith.Add(a, b) }
func (c *NumericCase[T]) Negate(a T) T         { return c.arith.Negate(a) }
func (c *NumericCase[T]) Abs(a T) T            { return c.arith.Abs(a) }
func (c *NumericCase[T]) Narrow(value int64) T { return c.arith.Narrow(value) }
func (c *NumericCase[T]) Less(a, b T) bool     { return c.arith.Less(a, b) }
func (c *NumericCase[T]) Random(rnd Random) T  { return c.arith.Random(rnd) }
func (c *NumericCase[T]) RandomAtMost(rnd Random, bound T) T {
	return c.arith.RandomAtMost(rnd, bound)
}
