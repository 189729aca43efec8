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
	"strings"

	"github.com/Fantom-foundation/fuzzy/go/common"
)

const (
	// MaxLength is the maximum length of a generated string, in characters.
	MaxLength = 1024

	// DefaultFillChar is repeated whenever a source pool or palette can not
	// provide any content.
	DefaultFillChar = "X"

	AlphabetChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DigitChars    = "0123456789"
	HexChars      = "0123456789abcdefABCDEF"

	// StandardChars is the printable ASCII range without whitespace.
	StandardChars = AlphabetChars + DigitChars + "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	WhitespaceChars = " \t\n\r\v\f"

	// UnicodeChars contains characters of the basic multilingual plane outside
	// of ASCII only.
	UnicodeChars = "äöüÄÖÜßéèêëñçøåæœ€£¥©®µ¿¡ΩπΣλЖЯжя中文日本語한국어"

	// EmojiChars contains characters outside of the basic multilingual plane
	// only, each of them a single code point.
	EmojiChars = "😀😂😍😎🤔🙈🚀🔥🎉💩👻🦄🌍🍕"

	// InjectionPattern is repeated to fill injection strings.
	InjectionPattern = "'; DROP TABLE users; --"
)

// palette is a list of single characters a string is composed of.
type palette []string

func newPalette(chars string) palette {
	res := common.SortedChars(common.ToCharSet(chars))
	if len(res) == 0 {
		return palette{DefaultFillChar}
	}
	return res
}

// compose draws length characters from the palette.
func (p palette) compose(rnd Random, length int) string {
	var builder strings.Builder
	for i := 0; i < length; i++ {
		builder.WriteString(p[rnd.Intn(len(p))])
	}
	return builder.String()
}

var (
	whitespacePalette = newPalette(WhitespaceChars)
	unicodePalette    = newPalette(UnicodeChars)
	emojiPalette      = newPalette(EmojiChars)
	standardPalette   = newPalette(StandardChars)

	alphanumericChars = strings.Join(common.SortedChars(common.Union(
		common.ToCharSet(AlphabetChars),
		common.ToCharSet(DigitChars),
	)), "")
)

// repeatPattern fills length characters by cycling through pattern.
func repeatPattern(pattern string, length int) string {
	return string(common.CycleSlice([]rune(pattern), length))
}

// fill repeats DefaultFillChar length times.
func fill(length int) string {
	if length <= 0 {
		return ""
	}
	return strings.Repeat(DefaultFillChar, length)
}
