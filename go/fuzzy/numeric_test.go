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
	"errors"
	"fmt"
	"math"
	"slices"
	"testing"
)

// sample draws one value from every subcase of the given case.
func sample[T any](t *testing.T, c Case[T], rnd Random) map[string]T {
	t.Helper()
	subcases, err := c.Subcases()
	if err != nil {
		t.Fatalf("failed to compute subcases: %v", err)
	}
	res := map[string]T{}
	for _, subcase := range subcases {
		value, err := subcase.Generate(rnd)
		if err != nil {
			t.Fatalf("failed to generate value of subcase %q: %v", subcase.Name(), err)
		}
		res[subcase.Name()] = value
	}
	return res
}

func subcaseNames[T any](t *testing.T, c Case[T]) []string {
	t.Helper()
	subcases, err := c.Subcases()
	if err != nil {
		t.Fatalf("failed to compute subcases: %v", err)
	}
	res := make([]string, 0, len(subcases))
	for _, subcase := range subcases {
		res = append(res, subcase.Name())
	}
	return res
}

func TestNumericCase_DefaultCaseProducesNegativeZeroAndPositive(t *testing.T) {
	t.Run("int8", func(t *testing.T) { checkDefaultCase(t, Int8()) })
	t.Run("int16", func(t *testing.T) { checkDefaultCase(t, Int16()) })
	t.Run("int32", func(t *testing.T) { checkDefaultCase(t, Int32()) })
	t.Run("int64", func(t *testing.T) { checkDefaultCase(t, Int64()) })
}

func checkDefaultCase[T Width](t *testing.T, c *NumericCase[T]) {
	rnd := NewRandom(12345)
	for i := 0; i < 100; i++ {
		values := sample[T](t, c, rnd)
		if len(values) != 3 {
			t.Fatalf("unexpected number of subcases, wanted 3, got %d", len(values))
		}
		if got := values["negative"]; got >= 0 {
			t.Errorf("negative subcase produced %d", got)
		}
		if got := values["zero"]; got != 0 {
			t.Errorf("zero subcase produced %d", got)
		}
		if got := values["positive"]; got <= 0 {
			t.Errorf("positive subcase produced %d", got)
		}
	}
}

func TestNumericCase_LiteralBoundsProduceDocumentedSubcases(t *testing.T) {
	tests := []struct {
		name  string
		c     *NumericCase[int32]
		want  []string
		check func(int32) bool
	}{
		{"<= 10", Int32().LessThanOrEqualTo(10), []string{"negative", "zero", "positive", "bound"}, func(v int32) bool { return v <= 10 }},
		{"<= 0", Int32().LessThanOrEqualTo(0), []string{"negative", "zero"}, func(v int32) bool { return v <= 0 }},
		{"<= -1e9", Int32().LessThanOrEqualTo(-1e9), []string{"negative", "bound"}, func(v int32) bool { return v <= -1e9 }},
		{">= 1e9", Int32().GreaterThanOrEqualTo(1e9), []string{"positive", "bound"}, func(v int32) bool { return v >= 1e9 }},
		{">= 0", Int32().GreaterThanOrEqualTo(0), []string{"zero", "positive"}, func(v int32) bool { return v >= 0 }},
		{">= -10", Int32().GreaterThanOrEqualTo(-10), []string{"positive", "zero", "negative", "bound"}, func(v int32) bool { return v >= -10 }},
		{"<= 1", Int32().LessThanOrEqualTo(1), []string{"negative", "zero", "positive", "bound"}, func(v int32) bool { return v <= 1 }},
		{">= -1", Int32().GreaterThanOrEqualTo(-1), []string{"positive", "zero", "negative", "bound"}, func(v int32) bool { return v >= -1 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if want, got := test.want, subcaseNames[int32](t, test.c); !slices.Equal(want, got) {
				t.Fatalf("unexpected subcases, wanted %v, got %v", want, got)
			}
			rnd := NewRandom(1)
			for i := 0; i < 100; i++ {
				for name, value := range sample[int32](t, test.c, rnd) {
					if !test.check(value) {
						t.Errorf("subcase %s produced %d violating the bound", name, value)
					}
				}
			}
		})
	}
}

func TestNumericCase_BoundsAreRespectedForAllWidths(t *testing.T) {
	t.Run("int8", func(t *testing.T) { checkBounds(t, Int8(), []int8{-128, -3, 0, 3, 127}) })
	t.Run("int16", func(t *testing.T) { checkBounds(t, Int16(), []int16{-1234, -1, 0, 1, 1234}) })
	t.Run("int32", func(t *testing.T) { checkBounds(t, Int32(), []int32{math.MinInt32, -7, 0, 7, math.MaxInt32}) })
	t.Run("int64", func(t *testing.T) {
		checkBounds(t, Int64(), []int64{math.MinInt64, math.MinInt32 - 1, math.MinInt32, 0, math.MaxInt32, math.MaxInt32 + 1, math.MaxInt64})
	})
}

func checkBounds[T Width](t *testing.T, c *NumericCase[T], bounds []T) {
	rnd := NewRandom(7)
	for _, bound := range bounds {
		upper := c.LessThanOrEqualTo(bound)
		lower := c.GreaterThanOrEqualTo(bound)
		for i := 0; i < 50; i++ {
			for name, value := range sample[T](t, upper, rnd) {
				if value > bound {
					t.Errorf("subcase %s of <= %d produced %d", name, bound, value)
				}
			}
			for name, value := range sample[T](t, lower, rnd) {
				if value < bound {
					t.Errorf("subcase %s of >= %d produced %d", name, bound, value)
				}
			}
		}
	}
}

func TestNumericCase_InRangeStraddlingZeroProducesFiveSubcases(t *testing.T) {
	c, err := Int32().InRange(-10, 10)
	if err != nil {
		t.Fatalf("failed to create range: %v", err)
	}
	want := []string{"negative", "zero", "positive", "min", "max"}
	if got := subcaseNames[int32](t, c); !slices.Equal(want, got) {
		t.Fatalf("unexpected subcases, wanted %v, got %v", want, got)
	}
	values := sample[int32](t, c, NewRandom(3))
	if values["min"] != -10 || values["max"] != 10 || values["zero"] != 0 {
		t.Errorf("unexpected literal subcases, got %v", values)
	}
	if v := values["negative"]; v < -10 || v >= 0 {
		t.Errorf("negative subcase produced %d", v)
	}
	if v := values["positive"]; v <= 0 || v > 10 {
		t.Errorf("positive subcase produced %d", v)
	}
}

func TestNumericCase_InRangeOnOneSideOfZeroProducesThreeSubcases(t *testing.T) {
	tests := []struct{ min, max int32 }{
		{1000, 1010},
		{-1010, -1000},
		{0, 5},
		{-5, 0},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("[%d,%d]", test.min, test.max), func(t *testing.T) {
			c, err := Int32().InRange(test.min, test.max)
			if err != nil {
				t.Fatalf("failed to create range: %v", err)
			}
			values := sample[int32](t, c, NewRandom(5))
			if len(values) != 3 {
				t.Fatalf("unexpected number of subcases, wanted 3, got %d", len(values))
			}
			if values["min"] != test.min || values["max"] != test.max {
				t.Errorf("unexpected bounds, wanted %d and %d, got %v", test.min, test.max, values)
			}
			if v := values["interior"]; v < test.min || v > test.max {
				t.Errorf("interior value %d out of range", v)
			}
		})
	}
}

func TestNumericCase_InRangeRejectsEmptyRanges(t *testing.T) {
	for _, bounds := range [][2]int32{{5, 5}, {5, -5}} {
		if _, err := Int32().InRange(bounds[0], bounds[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("range [%d,%d] should be rejected, got %v", bounds[0], bounds[1], err)
		}
	}
}

func TestNumericCase_InRangeOfValidatesResolvedBounds(t *testing.T) {
	c := Int16().InRangeOf(Literal[int16](5), Literal[int16](1))
	if _, err := c.Subcases(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty range should be rejected, got %v", err)
	}
}

func TestNumericCase_WithinRejectsNonPositiveRadius(t *testing.T) {
	for _, radius := range []int64{0, -1, math.MinInt64} {
		if _, err := Int64().Within(radius); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("radius %d should be rejected, got %v", radius, err)
		}
	}
}

func TestNumericCase_WithinProducesOffsetsAroundBase(t *testing.T) {
	tests := []struct {
		radius      int32
		includeBase bool
		want        []string
	}{
		{100, true, []string{"base-radius", "below-base", "base-1", "base", "base+1", "above-base", "base+radius"}},
		{100, false, []string{"base-radius", "below-base", "base-1", "base+1", "above-base", "base+radius"}},
		{1, true, []string{"base-radius", "base", "base+radius"}},
		{1, false, []string{"base-radius", "base+radius"}},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d/%t", test.radius, test.includeBase), func(t *testing.T) {
			proximity, err := Int32().Within(test.radius)
			if err != nil {
				t.Fatalf("failed to configure radius: %v", err)
			}
			c := proximity.ButExcludingValueOf(Literal[int32](10))
			if test.includeBase {
				c = proximity.Of(Literal[int32](10))
			}
			if got := subcaseNames[int32](t, c); !slices.Equal(test.want, got) {
				t.Fatalf("unexpected subcases, wanted %v, got %v", test.want, got)
			}
			values := sample[int32](t, c, NewRandom(9))
			if want, got := 10-test.radius, values["base-radius"]; want != got {
				t.Errorf("unexpected lower extreme, wanted %d, got %d", want, got)
			}
			if want, got := 10+test.radius, values["base+radius"]; want != got {
				t.Errorf("unexpected upper extreme, wanted %d, got %d", want, got)
			}
			if v, found := values["below-base"]; found && (v < 10-test.radius+1 || v > 9) {
				t.Errorf("value below base out of range: %d", v)
			}
			if v, found := values["above-base"]; found && (v < 11 || v > 10+test.radius-1) {
				t.Errorf("value above base out of range: %d", v)
			}
		})
	}
}

func TestNumericCase_WithinSaturatesAtWidthBounds(t *testing.T) {
	proximity, err := Int8().Within(100)
	if err != nil {
		t.Fatalf("failed to configure radius: %v", err)
	}
	values := sample[int8](t, proximity.Of(Literal[int8](100)), NewRandom(1))
	if want, got := int8(math.MaxInt8), values["base+radius"]; want != got {
		t.Errorf("unexpected upper extreme, wanted %d, got %d", want, got)
	}
	if want, got := int8(0), values["base-radius"]; want != got {
		t.Errorf("unexpected lower extreme, wanted %d, got %d", want, got)
	}
}

func TestNumericCase_ExcludedValuesAreNeverProduced(t *testing.T) {
	tests := []struct {
		name     string
		min, max int32
		excluded int32
	}{
		{"boundary", 0, 10, 0},
		{"interior", 0, 10, 5},
		{"negative", -10, -1, -5},
		{"narrow", 1, 2, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := Int32().InRange(test.min, test.max)
			if err != nil {
				t.Fatalf("failed to create range: %v", err)
			}
			c = c.Excluding(test.excluded)
			rnd := NewRandom(11)
			subcases, err := c.Subcases()
			if err != nil {
				t.Fatalf("failed to compute subcases: %v", err)
			}
			for _, subcase := range subcases {
				for i := 0; i < 20; i++ {
					value, err := subcase.Generate(rnd)
					if err != nil {
						t.Fatalf("failed to generate value of subcase %s: %v", subcase.Name(), err)
					}
					if value == test.excluded {
						t.Errorf("subcase %s produced excluded value %d", subcase.Name(), value)
					}
				}
			}
		})
	}
}

func TestNumericCase_ExcludedLiteralSubcasesAreRemoved(t *testing.T) {
	c, err := Int32().InRange(0, 10)
	if err != nil {
		t.Fatalf("failed to create range: %v", err)
	}
	want := []string{"interior", "max"}
	if got := subcaseNames[int32](t, c.Excluding(0)); !slices.Equal(want, got) {
		t.Errorf("unexpected subcases, wanted %v, got %v", want, got)
	}
}

func TestNumericCase_ExcludingAllValuesOfARangeFails(t *testing.T) {
	c, err := Int16().InRange(1, 2)
	if err != nil {
		t.Fatalf("failed to create range: %v", err)
	}
	subcases, err := c.Excluding(1, 2).Subcases()
	if err != nil {
		t.Fatalf("failed to compute subcases: %v", err)
	}
	for _, subcase := range subcases {
		if _, err := subcase.Generate(NewRandom(0)); !errors.Is(err, ErrGenerationExhausted) {
			t.Errorf("subcase %s should be exhausted, got %v", subcase.Name(), err)
		}
	}
}

func TestNumericCase_64BitValuesCoverMoreThan32BitRange(t *testing.T) {
	cases := map[string]Case[int64]{
		"default": Int64(),
		"<= max":  Int64().LessThanOrEqualTo(math.MaxInt64),
		">= min":  Int64().GreaterThanOrEqualTo(math.MinInt64),
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			rnd := NewRandom(21)
			above, below := false, false
			for i := 0; i < 200; i++ {
				for _, value := range sample(t, c, rnd) {
					above = above || value > math.MaxInt32
					below = below || value < math.MinInt32
				}
			}
			if !above || !below {
				t.Errorf("expected values beyond the 32-bit range, above: %t, below: %t", above, below)
			}
		})
	}
}

func TestNumericCase_ConfigurationDoesNotModifyReceiver(t *testing.T) {
	base := Int16()
	bounded := base.LessThanOrEqualTo(5)
	excluding := bounded.Excluding(3)
	fresh := excluding.NewCase()

	if got := subcaseNames[int16](t, base); len(got) != 3 {
		t.Errorf("base case was modified, got subcases %v", got)
	}
	if got := subcaseNames[int16](t, bounded); len(got) != 4 {
		t.Errorf("bounded case was modified, got subcases %v", got)
	}
	if len(bounded.excluded) != 0 {
		t.Errorf("excluded values leaked into the bounded case")
	}
	if fresh == excluding || len(fresh.excluded) != 0 || fresh.upper != nil {
		t.Errorf("new case is not a fresh configuration")
	}
}

func TestNumericCase_CapabilitiesDelegateToArithmetic(t *testing.T) {
	c := Int8()
	if want, got := int8(5), c.Add(3, 2); want != got {
		t.Errorf("unexpected sum, wanted %d, got %d", want, got)
	}
	if want, got := int8(-12), c.Negate(12); want != got {
		t.Errorf("unexpected negation, wanted %d, got %d", want, got)
	}
	if want, got := int8(12), c.Abs(-12); want != got {
		t.Errorf("unexpected absolute value, wanted %d, got %d", want, got)
	}
	if want, got := int8(12), c.Narrow(12); want != got {
		t.Errorf("unexpected narrowing, wanted %d, got %d", want, got)
	}
	if !c.Less(12, 123) || c.Less(123, 12) {
		t.Errorf("unexpected ordering")
	}
	if got := c.RandomAtMost(NewRandom(1), 5); got > 5 {
		t.Errorf("random value %d exceeds bound 5", got)
	}
	if got := Int64().RandomAtMost(NewRandom(1), 1<<48); got > 1<<48 {
		t.Errorf("random value %d exceeds bound %d", got, int64(1<<48))
	}
	if got := Int64().RandomAtMost(NewRandom(1), math.MaxInt32); got > math.MaxInt32 {
		t.Errorf("random value %d exceeds bound %d", got, math.MaxInt32)
	}
	if c.Bytes() != 1 || c.Min() != math.MinInt8 || c.Max() != math.MaxInt8 {
		t.Errorf("unexpected width metadata")
	}
}

func TestNumericCase_DependentBoundsRequireResolvedProducer(t *testing.T) {
	ctx := NewContext()
	if err := ctx.Init(PairwisePermutationsOfSubcases, 0); err != nil {
		t.Fatalf("failed to init session: %v", err)
	}
	defer ctx.CleanUp()

	base, err := Of(ctx, Int32())
	if err != nil {
		t.Fatalf("failed to declare dimension: %v", err)
	}
	if got := Int32().GreaterThanOrEqualToValueOf(base).Dependencies(); !slices.Equal(got, []DimensionID{base.ID()}) {
		t.Errorf("unexpected dependencies, got %v", got)
	}
	if got := Int32().Dependencies(); len(got) != 0 {
		t.Errorf("unexpected dependencies of default case, got %v", got)
	}
}
