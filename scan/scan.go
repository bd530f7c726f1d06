// Package scan provides small, reusable rune grammars built on the parse
// combinators: number and word tokens, quoted regions, delimiter groups, and
// comma-separated records. They serve both as library building blocks and as
// the grammars behind the streamparse CLI.
package scan

import (
	"slices"
	"unicode"

	"github.com/dhamidi/streamparse/parse"
)

// Digit matches a single decimal digit.
func Digit() parse.Parser[rune, rune] {
	return parse.Satisfy(unicode.IsDigit)
}

// Digits matches a run of decimal digits.
func Digits() parse.Parser[rune, string] {
	return parse.Map(parse.OneOrMore(Digit()), func(ds []rune) string { return string(ds) })
}

// Number matches an optionally signed decimal number with an optional
// fractional part: 42, -17, 3.14, +0.5.
func Number() parse.Parser[rune, string] {
	digits := parse.OneOrMore(Digit())
	sign := parse.Maybe(parse.OneOf('+', '-'))
	intPart := parse.Combine(sign, digits, func(s, d []rune) []rune {
		return append(slices.Clone(s), d...)
	})
	fracPart := parse.Combine(parse.Literal('.'), digits, func(dot rune, d []rune) []rune {
		return append([]rune{dot}, d...)
	})
	return parse.Combine(intPart, fracPart.WithDefault(nil), func(i, f []rune) string {
		return string(append(slices.Clone(i), f...))
	})
}

// Word matches a run of letters.
func Word() parse.Parser[rune, string] {
	return parse.Map(parse.OneOrMore(parse.Satisfy(unicode.IsLetter)), func(ls []rune) string { return string(ls) })
}

// Quoted matches a region delimited by quote on both sides, yielding the
// text in between. The closing quote is the first quote after the opener;
// there is no escaping.
func Quoted(quote rune) parse.Parser[rune, string] {
	return parse.Map(parse.Enclosed(parse.Literal(quote), parse.Literal(quote)), func(body []rune) string {
		return string(body)
	})
}

// Groups matches a nested group delimited by open and close, yielding one
// result per nesting level (innermost first): for "(a(b)c)" both "b" and
// "a(b)c".
func Groups(open, close rune) parse.Parser[rune, string] {
	return parse.Map(parse.AmbiguousGroup(parse.Literal(open), parse.Literal(close)), func(body []rune) string {
		return string(body)
	})
}

// CSVField matches a possibly empty run of characters up to the next comma
// or line break.
func CSVField() parse.Parser[rune, string] {
	notSep := parse.Satisfy(func(r rune) bool {
		return r != ',' && r != '\n' && r != '\r'
	})
	return parse.Map(parse.ZeroOrMore(notSep), func(rs []rune) string { return string(rs) })
}

// CSVRecord matches one comma-separated record.
func CSVRecord() parse.Parser[rune, []string] {
	return parse.RepeatSep(CSVField(), parse.Literal(','), parse.Quantity{Min: 1, Max: -1})
}
