// scanner.go - Command line categorizer.
// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package scanner categorizes raw command-line arguments into tokens.

The [*Scanner.Scan] method breaks command-line arguments into [Token]
values using [flagscanner] for the low-level prefix and separator
recognition, then splits inline `name=value` forms, allowing the
option resolver to implement matching logic on top of the stream.

# Token Types

[*Scanner.Scan] produces these token types:

 1. [OptionToken]: arguments starting with a configured prefix
    (e.g., -v, --verbose, --output=FILE)

 2. [SeparatorToken]: the configured separator (e.g., --); every
    subsequent argument is categorized as an [ArgumentToken]

 3. [ArgumentToken]: everything else (bare words)

A lone `-` is an [ArgumentToken]: by convention it names the standard
input and never introduces an option. Deciding whether `-5` is an
option or a negative number requires knowing the registered options,
so the scanner always emits it as an [OptionToken] and leaves the
decision to the resolver.

# Inline values

An [OptionToken] carries both the raw body of the argument and the
result of splitting it at the first `=`. The resolver needs the raw
body when matching prefix options (where `=` is ordinary value text)
and the split form when matching standard options.
*/
package scanner

import (
	"github.com/bassosimone/flagscanner"
)

// Scanner categorizes command line arguments.
//
// The zero value recognizes no prefixes and no separator, meaning
// that every argument is categorized as an [ArgumentToken].
type Scanner struct {
	// Prefixes contains the prefixes delimiting options.
	//
	// Overlapping prefixes (e.g., "-" and "--") are matched
	// longest first.
	Prefixes []string

	// Separator is the separator between options and arguments.
	//
	// If empty, we don't recognize any separator.
	Separator string
}

// Token is a token categorized by [*Scanner.Scan].
type Token interface {
	// Index returns the position in the original arguments.
	Index() int

	// String returns the string representation of the token.
	String() string
}

// OptionToken is a [Token] containing an option.
type OptionToken struct {
	// Idx is the position in the original command line arguments.
	Idx int

	// Prefix is the scanned prefix (e.g., "-" or "--").
	Prefix string

	// Raw is the full argument body after the prefix, with any
	// inline `=value` still attached.
	Raw string

	// Name is the body before the first `=`, or the whole body
	// when there is no `=`.
	Name string

	// Value is the body after the first `=`.
	Value string

	// HasValue is true when the body contains a `=`.
	HasValue bool
}

var _ Token = OptionToken{}

// Index implements [Token].
func (tk OptionToken) Index() int {
	return tk.Idx
}

// String implements [Token].
func (tk OptionToken) String() string {
	return tk.Prefix + tk.Raw
}

// ArgumentToken is a [Token] containing a bare word.
type ArgumentToken struct {
	// Idx is the position in the original command line arguments.
	Idx int

	// Value is the argument value.
	Value string
}

var _ Token = ArgumentToken{}

// Index implements [Token].
func (tk ArgumentToken) Index() int {
	return tk.Idx
}

// String implements [Token].
func (tk ArgumentToken) String() string {
	return tk.Value
}

// SeparatorToken is a [Token] containing the separator between
// options and arguments.
type SeparatorToken struct {
	// Idx is the position in the original command line arguments.
	Idx int

	// Separator is the scanned separator.
	Separator string
}

var _ Token = SeparatorToken{}

// Index implements [Token].
func (tk SeparatorToken) Index() int {
	return tk.Idx
}

// String implements [Token].
func (tk SeparatorToken) String() string {
	return tk.Separator
}

// Scan categorizes the command line arguments and returns a list of [Token].
//
// The args MUST NOT include the program name as the first argument.
//
// This method does not mutate [*Scanner] and is safe to call concurrently.
func (sx *Scanner) Scan(args []string) []Token {
	// Delegate prefix and separator recognition to flagscanner, which
	// sorts overlapping prefixes longest first and treats everything
	// after the separator as positional.
	fsx := &flagscanner.Scanner{
		Prefixes:  sx.Prefixes,
		Separator: sx.Separator,
	}

	// Map the low-level tokens to categorized tokens, splitting
	// the inline `name=value` form for options.
	tokens := make([]Token, 0, len(args))
	for _, tok := range fsx.Scan(args) {
		switch tok := tok.(type) {

		case flagscanner.OptionToken:
			tokens = append(tokens, splitInlineValue(tok))

		case flagscanner.OptionsArgumentsSeparatorToken:
			tokens = append(tokens, SeparatorToken{
				Idx:       tok.Idx,
				Separator: tok.Separator,
			})

		case flagscanner.PositionalArgumentToken:
			tokens = append(tokens, ArgumentToken{
				Idx:   tok.Idx,
				Value: tok.Value,
			})
		}
	}
	return tokens
}

func splitInlineValue(tok flagscanner.OptionToken) OptionToken {
	otok := OptionToken{
		Idx:      tok.Idx,
		Prefix:   tok.Prefix,
		Raw:      tok.Name,
		Name:     tok.Name,
		Value:    "",
		HasValue: false,
	}
	for idx := 0; idx < len(tok.Name); idx++ {
		if tok.Name[idx] == '=' {
			otok.Name = tok.Name[:idx]
			otok.Value = tok.Name[idx+1:]
			otok.HasValue = true
			break
		}
	}
	return otok
}
