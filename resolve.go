// resolve.go - token resolution against the registered options.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import (
	"github.com/jm-research/commandline/pkg/scanner"
)

// resolutionKind is the outcome kind of resolving an option token.
type resolutionKind int

const (
	// matchUnknown means no registered option matched.
	matchUnknown = resolutionKind(iota)

	// matchOption means a single option matched, exactly or by
	// prefix.
	matchOption

	// matchGroup means the token is a group of single-character
	// options.
	matchGroup
)

// optionMatch is one matched option together with the value carried
// by the token itself, if any.
type optionMatch struct {
	// option is the matched option.
	option *Option

	// name is the name under which the option matched.
	name string

	// value is the inline or suffix value.
	value string

	// hasValue is true when the token itself carried a value.
	hasValue bool
}

// resolution is the outcome of resolving an option token.
type resolution struct {
	// kind discriminates the outcome.
	kind resolutionKind

	// matches contains a single entry for [matchOption] and one
	// entry per grouped character for [matchGroup].
	matches []optionMatch
}

// resolveToken resolves an option token against the active
// subcommand scope. The tie-breaks are: an exact name match wins
// over any prefix match; among prefix candidates the longest
// registered name wins; grouping is attempted only when no exact or
// prefix match applies.
//
// When doubleDashOnly is true, multi-character names match only
// under the `--` prefix and a single `-` always introduces short or
// grouped options.
func (ex *engine) resolveToken(
	active *SubCommand, tok scanner.OptionToken, doubleDashOnly bool) (resolution, error) {
	// Attempt an exact match on the name split at `=`.
	allowLong := tok.Prefix == "--" || !doubleDashOnly
	if tok.Name != "" && (allowLong || len(tok.Name) == 1) {
		if o := ex.lookup(active, tok.Name); o != nil {
			// An always-prefix option carries its value in the
			// suffix and rejects the inline `=value` form.
			if o.Formatting == AlwaysPrefix && tok.HasValue {
				return resolution{}, ErrUnexpectedValue{Option: o, Value: tok.Value}
			}
			match := optionMatch{
				option:   o,
				name:     tok.Name,
				value:    tok.Value,
				hasValue: tok.HasValue,
			}
			return resolution{kind: matchOption, matches: []optionMatch{match}}, nil
		}
	}

	// Attempt prefix and grouping resolution on the raw body, with
	// the `=` still attached, since for prefix options the `=` is
	// ordinary value text. Longer names win.
	maxLen := len(tok.Raw)
	if doubleDashOnly && tok.Prefix == "-" {
		maxLen = 1
	}
	for l := maxLen; l >= 1; l-- {
		o := ex.lookup(active, tok.Raw[:l])
		if o == nil {
			continue
		}
		switch {
		case o.Formatting == Prefix || o.Formatting == AlwaysPrefix:
			match := optionMatch{
				option:   o,
				name:     tok.Raw[:l],
				value:    tok.Raw[l:],
				hasValue: l < len(tok.Raw),
			}
			return resolution{kind: matchOption, matches: []optionMatch{match}}, nil

		case o.wantsGrouping() && l == 1:
			return ex.resolveGroup(active, tok.Raw)
		}
	}

	return resolution{kind: matchUnknown}, nil
}

// resolveGroup resolves a token whose body is a run of
// single-character grouping options. Every character must map to a
// distinct registered grouping option; when a grouped option
// requires a value, the remainder of the body supplies it and the
// group ends there.
func (ex *engine) resolveGroup(active *SubCommand, raw string) (resolution, error) {
	var matches []optionMatch
	rest := raw
	for len(rest) > 0 {
		name := string(rest[0])
		o := ex.lookup(active, name)
		if o == nil || !o.wantsGrouping() {
			return resolution{}, ErrUnknownOption{Prefix: "-", Name: name}
		}
		rest = rest[1:]
		if o.effectiveValueExpected() == ValueRequired && len(rest) > 0 {
			matches = append(matches, optionMatch{option: o, name: name, value: rest, hasValue: true})
			rest = ""
			continue
		}
		matches = append(matches, optionMatch{option: o, name: name})
	}
	return resolution{kind: matchGroup, matches: matches}, nil
}
