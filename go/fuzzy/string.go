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
	"strings"
	"unicode/utf8"

	"github.com/Fantom-foundation/fuzzy/go/common"
)

// StringCase is the value space of strings. Without further configuration it
// produces one subcase per character category: empty, whitespace, unicode,
// emoji, injection and standard strings of random length.
//
// The length of strings is counted in characters, not bytes. StringCase
// values are immutable.
type StringCase struct {
	length   Case[int]      // < nil for a random length
	chars    Case[string]   // < nil for the default categories
	pool     Case[[]string] // < nil unless composed of whole strings
	nonEmpty bool
	excluded []string
}

// String creates a default string case.
func String() *StringCase {
	return &StringCase{}
}

func (c *StringCase) clone() *StringCase {
	res := *c
	res.excluded = slices.Clone(c.excluded)
	return &res
}

// WithLength fixes the length of all produced strings. Negative lengths are
// treated as 0, lengths beyond MaxLength as MaxLength.
func (c *StringCase) WithLength(length int) *StringCase {
	return c.WithLengthOf(Literal(length))
}

// WithLengthOf takes the length of produced strings from the given case,
// which may be the value of another dimension. Every subcase of the length
// case multiplies the subcases of this case. An absent length is 0.
func (c *StringCase) WithLengthOf(length Case[int]) *StringCase {
	res := c.clone()
	res.length = length
	return res
}

// WithSourceStrings composes strings out of whole strings of the given pool.
func (c *StringCase) WithSourceStrings(pool ...string) *StringCase {
	return c.WithSourceStringsOf(Literal(slices.Clone(pool)))
}

// WithSourceStringsOf composes strings out of whole strings of a pool taken
// from the given case. Strings are concatenated and truncated to the
// configured length; without a length a single pool entry is produced. Pools
// without any non-empty entry fall back to DefaultFillChar.
func (c *StringCase) WithSourceStringsOf(pool Case[[]string]) *StringCase {
	res := c.clone()
	res.pool = pool
	res.chars = nil
	return res
}

// WithSourceChars composes strings out of the characters of the given string.
func (c *StringCase) WithSourceChars(chars string) *StringCase {
	return c.WithSourceCharsOf(Literal(chars))
}

// WithSourceCharsOf composes strings out of the characters of a palette taken
// from the given case. Each subcase of the palette case forms its own subcase.
// Empty palettes fall back to DefaultFillChar.
func (c *StringCase) WithSourceCharsOf(chars Case[string]) *StringCase {
	res := c.clone()
	res.chars = chars
	res.pool = nil
	return res
}

func (c *StringCase) WithOnlyAlphabetChars() *StringCase {
	return c.WithSourceChars(AlphabetChars)
}

func (c *StringCase) WithOnlyDigitChars() *StringCase {
	return c.WithSourceChars(DigitChars)
}

func (c *StringCase) WithOnlyAlphanumericChars() *StringCase {
	return c.WithSourceChars(alphanumericChars)
}

func (c *StringCase) WithOnlyHexChars() *StringCase {
	return c.WithSourceChars(HexChars)
}

// NonEmpty removes the empty subcase. It has no effect on configured lengths.
func (c *StringCase) NonEmpty() *StringCase {
	res := c.clone()
	res.nonEmpty = true
	return res
}

// Excluding returns a case never producing any of the given strings.
func (c *StringCase) Excluding(values ...string) *StringCase {
	res := c.clone()
	res.excluded = append(res.excluded, values...)
	return res
}

func (c *StringCase) Dependencies() []DimensionID {
	var res []DimensionID
	if c.length != nil {
		res = mergeDependencies(res, c.length.Dependencies())
	}
	if c.chars != nil {
		res = mergeDependencies(res, c.chars.Dependencies())
	}
	if c.pool != nil {
		res = mergeDependencies(res, c.pool.Dependencies())
	}
	return res
}

// lengthVariant produces the length of a string. A negative length requests
// the natural length of the content.
type lengthVariant struct {
	name     string
	generate func(Random) (int, error)
}

// contentVariant produces a string of the given length.
type contentVariant struct {
	name     string
	generate func(rnd Random, length int) (string, error)
}

const naturalLength = -1

func (c *StringCase) Subcases() ([]Subcase[string], error) {
	lengths, err := c.lengthVariants()
	if err != nil {
		return nil, err
	}
	contents, err := c.contentVariants()
	if err != nil {
		return nil, err
	}

	set := subcaseSet[string]{}
	if c.length == nil && c.pool == nil && c.chars == nil && !c.nonEmpty {
		set.add(constant("empty", ""))
	}
	for _, length := range lengths {
		for _, content := range contents {
			name := content.name
			if len(lengths) > 1 {
				name = length.name + "/" + name
			}
			set.add(Subcase[string]{
				name: name,
				generate: func(rnd Random) (string, error) {
					n, err := length.generate(rnd)
					if err != nil {
						return "", err
					}
					return content.generate(rnd, n)
				},
			})
		}
	}
	if len(set.list()) == 0 {
		return nil, fmt.Errorf("%w, string case without subcases", ErrInvalidArgument)
	}
	return excludeFrom(set.list(), c.excluded), nil
}

func (c *StringCase) lengthVariants() ([]lengthVariant, error) {
	if c.length == nil {
		if c.pool != nil {
			return []lengthVariant{{name: "natural", generate: func(Random) (int, error) {
				return naturalLength, nil
			}}}, nil
		}
		return []lengthVariant{{name: "random", generate: func(rnd Random) (int, error) {
			return 1 + rnd.Intn(MaxLength), nil
		}}}, nil
	}

	subcases, err := c.length.Subcases()
	if err != nil {
		return nil, err
	}
	res := make([]lengthVariant, 0, len(subcases))
	for _, subcase := range subcases {
		res = append(res, lengthVariant{
			name: "len=" + subcase.Name(),
			generate: func(rnd Random) (int, error) {
				length, err := subcase.Generate(rnd)
				if err != nil {
					return 0, err
				}
				return common.Clamp(length, 0, MaxLength), nil
			},
		})
	}
	return res, nil
}

func (c *StringCase) contentVariants() ([]contentVariant, error) {
	switch {
	case c.pool != nil:
		return variantsOf(c.pool, "pool", func(pool []string) func(Random, int) string {
			return poolComposer(pool)
		})
	case c.chars != nil:
		return variantsOf(c.chars, "chars", func(chars string) func(Random, int) string {
			return newPalette(chars).compose
		})
	}
	return []contentVariant{
		{name: "whitespace", generate: infallible(whitespacePalette.compose)},
		{name: "unicode", generate: infallible(unicodePalette.compose)},
		{name: "emoji", generate: infallible(emojiPalette.compose)},
		{name: "injection", generate: infallible(func(_ Random, length int) string {
			return repeatPattern(InjectionPattern, length)
		})},
		{name: "standard", generate: infallible(standardPalette.compose)},
	}, nil
}

// variantsOf creates one content variant per subcase of a configuration case.
// The configuration value is drawn from the subcase when a string is
// generated and turned into a composer by the given function.
func variantsOf[S any](
	source Case[S],
	name string,
	composer func(S) func(Random, int) string,
) ([]contentVariant, error) {
	subcases, err := source.Subcases()
	if err != nil {
		return nil, err
	}
	res := make([]contentVariant, 0, len(subcases))
	for _, subcase := range subcases {
		variantName := name
		if len(subcases) > 1 {
			variantName = name + "/" + subcase.Name()
		}
		res = append(res, contentVariant{
			name: variantName,
			generate: func(rnd Random, length int) (string, error) {
				value, err := subcase.Generate(rnd)
				if err != nil {
					return "", err
				}
				return composer(value)(rnd, length), nil
			},
		})
	}
	return res, nil
}

func infallible(compose func(Random, int) string) func(Random, int) (string, error) {
	return func(rnd Random, length int) (string, error) {
		return compose(rnd, length), nil
	}
}

// poolComposer concatenates randomly chosen non-empty pool entries and
// truncates the result to the requested length.
func poolComposer(pool []string) func(Random, int) string {
	entries := make([]string, 0, len(pool))
	for _, entry := range pool {
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return func(rnd Random, length int) string {
		if len(entries) == 0 {
			if length == naturalLength {
				return DefaultFillChar
			}
			return fill(length)
		}
		if length == naturalLength {
			return entries[rnd.Intn(len(entries))]
		}
		var builder strings.Builder
		for count := 0; count < length; {
			entry := entries[rnd.Intn(len(entries))]
			builder.WriteString(entry)
			count += utf8.RuneCountInString(entry)
		}
		return truncate(builder.String(), length)
	}
}

// truncate cuts s after length characters.
func truncate(s string, length int) string {
	count := 0
	for i := range s {
		if count == length {
			return s[:i]
		}
		count++
	}
	return s
}
