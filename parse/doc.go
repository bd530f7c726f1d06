// Package parse is a combinator library over stream cursors: grammars are
// built by composing small parsers and run against sequences that may still
// be producing elements.
//
// # Parsers
//
// A Parser matches input beginning at a reader's current position and emits
// one Result per way the input can match there. Emitting nothing is the
// ordinary "did not match" outcome and is what alternation and backtracking
// are built on. Emitting more than once expresses an ambiguous grammar.
// Parsers never move the reader they are handed; exploration happens on
// branches they create internally, so alternatives can be retried at the
// same position without any rewinding.
//
// The building blocks:
//
//   - Next, Satisfy, Literal, OneOf match a single element
//   - Map, Combine, Bind, Then, ThenSkip project and sequence
//   - Or, Maybe, WithDefault, Not, End express alternation and optionality
//   - Repeat, Exactly, AtLeast, Between, ZeroOrMore, OneOrMore quantify
//   - Group, Enclosed, AmbiguousGroup match delimited regions
//   - Required escalates a non-match to a terminal parse error
//
// # Lookahead
//
// A non-greedy quantifier does not know whether to stop until the rest of
// the grammar has had a chance to match. It emits a lookahead Result, a
// speculative match carrying a one-shot commit. Combine resolves it: commit
// true as soon as the continuation produces a result, commit false when the
// continuation comes up empty, which sends the quantifier off to try one
// more repetition. Grammar authors composing with the provided combinators
// never see this protocol; it only matters when writing a Parser by hand.
//
// # Running
//
// Each and All scan a source from index 0, yielding the first match at each
// position and advancing past it. A position where the grammar matched
// nothing, or matched the empty sequence, advances by one element so the
// scan always makes progress. The consuming loop sees matches in order
// followed by either completion or a single terminal error: the source's
// own failure, or a *Error produced by Required carrying the index where
// the grammar gave out.
package parse
