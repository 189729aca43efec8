// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package scenarios

import (
	"math"
	"unicode/utf8"

	"github.com/Fantom-foundation/fuzzy/go/common"
	"github.com/Fantom-foundation/fuzzy/go/fuzzy"
)

// Catalog lists all scenarios shipped with the driver.
func Catalog() []Scenario {
	return []Scenario{
		{"numeric/default/int8", fuzzy.PairwisePermutationsOfSubcases, signs(fuzzy.Int8())},
		{"numeric/default/int16", fuzzy.PairwisePermutationsOfSubcases, signs(fuzzy.Int16())},
		{"numeric/default/int32", fuzzy.PairwisePermutationsOfSubcases, signs(fuzzy.Int32())},
		{"numeric/default/int64", fuzzy.PairwisePermutationsOfSubcases, signs(fuzzy.Int64())},
		{"numeric/literal-bounds", fuzzy.PairwisePermutationsOfSubcases, literalBounds},
		{"numeric/dependent-bounds", fuzzy.PairwisePermutationsOfSubcases, dependentBounds},
		{"numeric/dependent-range", fuzzy.PairwisePermutationsOfSubcases, dependentRange},
		{"numeric/within", fuzzy.PairwisePermutationsOfSubcases, within},
		{"numeric/wide-bounds", fuzzy.EachSubcaseAtLeastOnce, wideBounds},
		{"numeric/excluding", fuzzy.PairwisePermutationsOfSubcases, excluding},
		{"string/default", fuzzy.PairwisePermutationsOfSubcases, defaultStrings},
		{"string/dependent-length", fuzzy.PairwisePermutationsOfSubcases, dependentLength},
		{"string/source-strings", fuzzy.EachSubcaseAtLeastOnce, sourceStrings},
		{"string/palettes", fuzzy.PairwisePermutationsOfSubcases, palettes},
		{"mixed/pairwise", fuzzy.PairwisePermutationsOfSubcases, mixed},
	}
}

func signs[T fuzzy.Width](c *fuzzy.NumericCase[T]) func(*fuzzy.Context) error {
	return func(ctx *fuzzy.Context) error {
		value, err := fuzzy.Of[T](ctx, c)
		if err != nil {
			return err
		}
		switch v := value.Get(); value.Subcase() {
		case "negative":
			return check(v < 0, "negative subcase produced %d", v)
		case "zero":
			return check(v == 0, "zero subcase produced %d", v)
		case "positive":
			return check(v > 0, "positive subcase produced %d", v)
		}
		return check(false, "unexpected subcase %q", value.Subcase())
	}
}

func literalBounds(ctx *fuzzy.Context) error {
	upper, err := fuzzy.Of[int16](ctx, fuzzy.Int16().LessThanOrEqualTo(-300))
	if err != nil {
		return err
	}
	lower, err := fuzzy.Of[int16](ctx, fuzzy.Int16().GreaterThanOrEqualTo(300))
	if err != nil {
		return err
	}
	if err := check(upper.Get() <= -300, "value %d exceeds bound -300", upper.Get()); err != nil {
		return err
	}
	return check(lower.Get() >= 300, "value %d is below bound 300", lower.Get())
}

func dependentBounds(ctx *fuzzy.Context) error {
	base, err := fuzzy.Of(ctx, fuzzy.AnyOf[int32](math.MinInt32+1, -10, 0, 10, math.MaxInt32-1))
	if err != nil {
		return err
	}
	greater, err := fuzzy.Of[int32](ctx, fuzzy.Int32().GreaterThanOrEqualToValueOf(base))
	if err != nil {
		return err
	}
	lesser, err := fuzzy.Of[int32](ctx, fuzzy.Int32().LessThanOrEqualToValueOf(base))
	if err != nil {
		return err
	}
	if err := check(greater.Get() > base.Get(), "%d is not above %d", greater.Get(), base.Get()); err != nil {
		return err
	}
	return check(lesser.Get() < base.Get(), "%d is not below %d", lesser.Get(), base.Get())
}

func dependentRange(ctx *fuzzy.Context) error {
	lower, err := fuzzy.Of(ctx, fuzzy.AnyOf[int64](-100, 0, 5))
	if err != nil {
		return err
	}
	upper, err := fuzzy.Of(ctx, fuzzy.AnyOf[int64](10, 1000))
	if err != nil {
		return err
	}
	value, err := fuzzy.Of[int64](ctx, fuzzy.Int64().InRangeOf(lower, upper))
	if err != nil {
		return err
	}
	v := value.Get()
	return check(lower.Get() <= v && v <= upper.Get(), "%d not in [%d,%d]", v, lower.Get(), upper.Get())
}

func within(ctx *fuzzy.Context) error {
	base, err := fuzzy.Of(ctx, fuzzy.AnyOf[int8](-120, 0, 120))
	if err != nil {
		return err
	}
	radius, err := fuzzy.Of(ctx, fuzzy.AnyOf[int8](1, 20))
	if err != nil {
		return err
	}
	proximity, err := fuzzy.Int8().Within(radius.Get())
	if err != nil {
		return err
	}
	value, err := fuzzy.Of[int8](ctx, proximity.ButExcludingValueOf(base))
	if err != nil {
		return err
	}
	distance := int(value.Get()) - int(base.Get())
	if err := check(value.Get() != base.Get(), "base %d was produced", base.Get()); err != nil {
		return err
	}
	// offsets beyond the width saturate at its bounds
	saturated := value.Get() == math.MinInt8 || value.Get() == math.MaxInt8
	return check(saturated || -int(radius.Get()) <= distance && distance <= int(radius.Get()),
		"%d is not within %d of %d", value.Get(), radius.Get(), base.Get())
}

func wideBounds(ctx *fuzzy.Context) error {
	bound, err := fuzzy.Of(ctx, fuzzy.AnyOf[int64](math.MinInt32-1, math.MinInt32, math.MaxInt32, math.MaxInt32+1))
	if err != nil {
		return err
	}
	lower, err := fuzzy.Of[int64](ctx, fuzzy.Int64().GreaterThanOrEqualTo(bound.Get()))
	if err != nil {
		return err
	}
	upper, err := fuzzy.Of[int64](ctx, fuzzy.Int64().LessThanOrEqualTo(bound.Get()))
	if err != nil {
		return err
	}
	if err := check(lower.Get() >= bound.Get(), "%d is below %d", lower.Get(), bound.Get()); err != nil {
		return err
	}
	return check(upper.Get() <= bound.Get(), "%d is above %d", upper.Get(), bound.Get())
}

func excluding(ctx *fuzzy.Context) error {
	excluded, err := fuzzy.Of(ctx, fuzzy.AnyOf[int32](-5, 0, 1, 5))
	if err != nil {
		return err
	}
	c, err := fuzzy.Int32().InRange(-5, 5)
	if err != nil {
		return err
	}
	value, err := fuzzy.Of[int32](ctx, c.Excluding(excluded.Get()))
	if err != nil {
		return err
	}
	return check(value.Get() != excluded.Get(), "excluded value %d was produced", value.Get())
}

func defaultStrings(ctx *fuzzy.Context) error {
	value, err := fuzzy.Of[string](ctx, fuzzy.String())
	if err != nil {
		return err
	}
	s := value.Get()
	if err := check(utf8.ValidString(s), "invalid string %q", s); err != nil {
		return err
	}
	length := utf8.RuneCountInString(s)
	if value.Subcase() == "empty" {
		return check(length == 0, "empty subcase produced %q", s)
	}
	return check(0 < length && length <= fuzzy.MaxLength, "unexpected length %d", length)
}

func dependentLength(ctx *fuzzy.Context) error {
	length, err := fuzzy.Of(ctx, fuzzy.AnyOf(-5, 0, 1, 17, fuzzy.MaxLength, 5000))
	if err != nil {
		return err
	}
	value, err := fuzzy.Of[string](ctx, fuzzy.String().WithLengthOf(length))
	if err != nil {
		return err
	}
	want := common.Clamp(length.Get(), 0, fuzzy.MaxLength)
	got := utf8.RuneCountInString(value.Get())
	return check(want == got, "unexpected length, wanted %d, got %d", want, got)
}

func sourceStrings(ctx *fuzzy.Context) error {
	pool, err := fuzzy.Of(ctx, fuzzy.OneOf(
		fuzzy.Nil[[]string](),
		fuzzy.Literal([]string{}),
		fuzzy.Literal([]string{""}),
		fuzzy.Literal([]string{"HELLO"}),
	))
	if err != nil {
		return err
	}
	value, err := fuzzy.Of[string](ctx, fuzzy.String().WithSourceStringsOf(pool).WithLength(5))
	if err != nil {
		return err
	}
	want := "XXXXX"
	if len(pool.Get()) == 1 && pool.Get()[0] != "" {
		want = "HELLO"
	}
	return check(value.Get() == want, "unexpected string, wanted %q, got %q", want, value.Get())
}

func palettes(ctx *fuzzy.Context) error {
	chars, err := fuzzy.Of(ctx, fuzzy.AnyOf(fuzzy.AlphabetChars, fuzzy.DigitChars, fuzzy.HexChars, ""))
	if err != nil {
		return err
	}
	value, err := fuzzy.Of[string](ctx, fuzzy.String().WithSourceCharsOf(chars).WithLength(32))
	if err != nil {
		return err
	}
	palette := common.ToCharSet(chars.Get())
	if palette.Cardinality() == 0 {
		palette = common.ToCharSet(fuzzy.DefaultFillChar)
	}
	for _, r := range value.Get() {
		if err := check(palette.Contains(string(r)), "character %q not in palette %q", r, chars.Get()); err != nil {
			return err
		}
	}
	return nil
}

func mixed(ctx *fuzzy.Context) error {
	count, err := fuzzy.Of[int16](ctx, fuzzy.Int16())
	if err != nil {
		return err
	}
	name, err := fuzzy.Of[string](ctx, fuzzy.String().NonEmpty())
	if err != nil {
		return err
	}
	if _, err := fuzzy.Of(ctx, fuzzy.AnyOf(true, false)); err != nil {
		return err
	}
	limit, err := fuzzy.Of[int16](ctx, fuzzy.Int16().LessThanOrEqualToValueOf(count))
	if err != nil {
		return err
	}
	if err := check(name.Get() != "", "non-empty case produced the empty string"); err != nil {
		return err
	}
	// the value below the minimum saturates at the minimum
	if count.Get() > math.MinInt16 {
		return check(limit.Get() < count.Get(), "%d is not below %d", limit.Get(), count.Get())
	}
	return check(limit.Get() == count.Get(), "%d differs from %d", limit.Get(), count.Get())
}
