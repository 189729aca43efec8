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
	"math"
)

// Width is the closed set of signed integer types supported by NumericCase.
type Width interface {
	int8 | int16 | int32 | int64
}

// Arithmetic is the capability table of one integer width. All operations stay
// inside the width's representable range: results that can not be
// represented saturate at the nearest bound instead of wrapping around.
type Arithmetic[T Width] interface {
	Min() T
	Max() T
	Bytes() int

	Add(a, b T) T
	// Negate returns -a; the negation of Min is Max.
	Negate(a T) T
	// Abs returns |a|; the absolute value of Min is Max.
	Abs(a T) T
	// Narrow converts a literal into T, clamping it into [Min,Max].
	Narrow(value int64) T
	Less(a, b T) bool

	// Random returns a uniformly distributed non-zero value.
	Random(rnd Random) T
	// RandomAtMost returns a uniformly distributed value in [Min,bound].
	RandomAtMost(rnd Random, bound T) T
	// RandomBetween returns a uniformly distributed value in [lo,hi]. If hi < lo,
	// lo is returned.
	RandomBetween(rnd Random, lo, hi T) T
}

// arithmeticFor selects the capability table of T.
func arithmeticFor[T Width]() Arithmetic[T] {
	var res any
	switch any(T(0)).(type) {
	case int8:
		res = narrowArithmetic[int8]{min: math.MinInt8, max: math.MaxInt8, bytes: 1}
	case int16:
		res = narrowArithmetic[int16]{min: math.MinInt16, max: math.MaxInt16, bytes: 2}
	case int32:
		res = narrowArithmetic[int32]{min: math.MinInt32, max: math.MaxInt32, bytes: 4}
	case int64:
		res = wideArithmetic{}
	default:
		panic(fmt.Sprintf("unsupported width %T", T(0)))
	}
	return res.(Arithmetic[T])
}

////////////////////////////////////////////////////////////
// 8, 16 and 32 bit

// narrowArithmetic covers widths of at most 32 bits. Every span between two
// values of such a width fits into 32 bits, so a single bounded draw suffices
// and intermediate results can be computed exactly in int64.
type narrowArithmetic[T int8 | int16 | int32] struct {
	min, max T
	bytes    int
}

func (a narrowArithmetic[T]) Min() T     { return a.min }
func (a narrowArithmetic[T]) Max() T     { return a.max }
func (a narrowArithmetic[T]) Bytes() int { return a.bytes }

func (a narrowArithmetic[T]) Add(x, y T) T {
	return a.Narrow(int64(x) + int64(y))
}

func (a narrowArithmetic[T]) Negate(x T) T {
	if x == a.min {
		return a.max
	}
	return -x
}

func (a narrowArithmetic[T]) Abs(x T) T {
	if x < 0 {
		return a.Negate(x)
	}
	return x
}

func (a narrowArithmetic[T]) Narrow(value int64) T {
	if value < int64(a.min) {
		return a.min
	}
	if value > int64(a.max) {
		return a.max
	}
	return T(value)
}

func (narrowArithmetic[T]) Less(x, y T) bool {
	return x < y
}

func (a narrowArithmetic[T]) Random(rnd Random) T {
	// Draw from [1,2^bits-1] and reinterpret the low bits as a signed value;
	// since the low bits are never all zero, the result is never zero.
	bits := uint(8 * a.bytes)
	return T(rnd.Uint64n(1<<bits-1) + 1)
}

func (a narrowArithmetic[T]) RandomAtMost(rnd Random, bound T) T {
	return a.RandomBetween(rnd, a.min, bound)
}

func (narrowArithmetic[T]) RandomBetween(rnd Random, lo, hi T) T {
	if hi < lo {
		return lo
	}
	span := uint64(int64(hi) - int64(lo))
	return T(int64(lo) + int64(rnd.Uint64n(span+1)))
}

////////////////////////////////////////////////////////////
// 64 bit

// wideArithmetic is the int64 table. Spans may exceed 63 bits, so offsets are
// computed in uint64 and bounded draws beyond 32 bits use a two-phase draw.
type wideArithmetic struct{}

func (wideArithmetic) Min() int64 { return math.MinInt64 }
func (wideArithmetic) Max() int64 { return math.MaxInt64 }
func (wideArithmetic) Bytes() int { return 8 }

func (wideArithmetic) Add(x, y int64) int64 {
	sum := x + y
	if y > 0 && sum < x {
		return math.MaxInt64
	}
	if y < 0 && sum > x {
		return math.MinInt64
	}
	return sum
}

func (wideArithmetic) Negate(x int64) int64 {
	if x == math.MinInt64 {
		return math.MaxInt64
	}
	return -x
}

func (a wideArithmetic) Abs(x int64) int64 {
	if x < 0 {
		return a.Negate(x)
	}
	return x
}

func (wideArithmetic) Narrow(value int64) int64 {
	return value
}

func (wideArithmetic) Less(x, y int64) bool {
	return x < y
}

func (wideArithmetic) Random(rnd Random) int64 {
	return int64(rnd.Uint64n(math.MaxUint64) + 1)
}

func (a wideArithmetic) RandomAtMost(rnd Random, bound int64) int64 {
	return a.RandomBetween(rnd, math.MinInt64, bound)
}

func (wideArithmetic) RandomBetween(rnd Random, lo, hi int64) int64 {
	if hi < lo {
		return lo
	}
	span := uint64(hi) - uint64(lo)
	if span == math.MaxUint64 {
		return int64(rnd.Uint64())
	}
	if span <= math.MaxUint32 {
		return int64(uint64(lo) + rnd.Uint64n(span+1))
	}

	// Draw the high and the low 32 bits of the offset independently and reject
	// combinations beyond the span. Each round is accepted with a probability
	// of at least 1/2.
	highSpan := span >> 32
	lowSpan := span & math.MaxUint32
	for {
		high := rnd.Uint64n(highSpan + 1)
		low := rnd.Uint64n(1 << 32)
		if high == highSpan && low > lowSpan {
			continue
		}
		return int64(uint64(lo) + (high<<32 | low))
	}
}
