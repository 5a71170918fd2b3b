// option.go - the type-erased option record.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import "fmt"

// Option is the type-erased record describing a declared option. The
// typed constructors ([NewOpt], [NewList], [NewBits], [NewAlias])
// embed an Option and attach a [Value] to it; the registry and the
// parse engine only ever see the Option.
type Option struct {
	// Name is the option name without prefix. Empty for positional,
	// sink, and consume-after options.
	Name string

	// HelpText is the description shown in help output.
	HelpText string

	// ValueName is the placeholder for the option value in help
	// output (e.g., "filename").
	ValueName string

	// Occurrences controls how many times the option may appear.
	Occurrences NumOccurrences

	// Expects controls whether the option takes a value. When
	// [ValueUnspecified], the parser default applies.
	Expects ValueExpected

	// Hidden controls help visibility.
	Hidden OptionHidden

	// Formatting controls how the option is matched.
	Formatting Formatting

	// Misc is the set of miscellaneous behavior bits.
	Misc Misc

	// AdditionalValues is the count of extra consecutive tokens
	// consumed per occurrence of a multi-valued option.
	AdditionalValues int

	// Categories contains the help categories the option belongs
	// to. Registration assigns the general category when empty.
	Categories []*Category

	// Subs contains the subcommands the option belongs to.
	// Registration assigns the top-level subcommand when empty.
	Subs []*SubCommand

	// value is the attached typed storage.
	value Value

	// forwardTo redirects occurrences to another option. Only
	// aliases set this field.
	forwardTo *Option

	// numOccurrences counts occurrences seen during the current parse.
	numOccurrences int

	// position is the argument index of the most recent occurrence.
	position int

	// fullyInitialized becomes true once the option is registered.
	fullyInitialized bool
}

// OccurrencesSeen returns how many times the option occurred during
// the most recent parse.
func (o *Option) OccurrencesSeen() int {
	return o.numOccurrences
}

// LastPosition returns the argument index of the most recent
// occurrence, or zero when the option never occurred.
func (o *Option) LastPosition() int {
	return o.position
}

// WasSpecified returns true when the option occurred at least once
// during the most recent parse.
func (o *Option) WasSpecified() bool {
	return o.numOccurrences > 0
}

// effectiveValueExpected resolves [ValueUnspecified] against the
// parser default advertised by the attached storage.
func (o *Option) effectiveValueExpected() ValueExpected {
	if o.Expects != ValueUnspecified {
		return o.Expects
	}
	if o.forwardTo != nil {
		return o.forwardTo.effectiveValueExpected()
	}
	return o.value.DefaultValueExpected()
}

// accepts probes whether the attached parser would accept the value.
func (o *Option) accepts(value string) bool {
	return o.value.Accepts(value)
}

// addOccurrence records one occurrence of the option and forwards
// the value to the attached storage. It enforces cardinality before
// dispatching: a second occurrence of an [Optional] or [Required]
// option is an error unless the option carries [DefaultOption] or
// multiArg signals additional-value continuation rather than a new
// occurrence.
func (o *Option) addOccurrence(pos int, name, value string, multiArg bool) error {
	// Aliases forward occurrences verbatim to their target.
	if o.forwardTo != nil {
		return o.forwardTo.addOccurrence(pos, name, value, multiArg)
	}

	if !multiArg {
		switch o.Occurrences {
		case Optional, Required:
			if o.numOccurrences > 0 && (o.Misc&DefaultOption) == 0 {
				return ErrDuplicateOccurrence{Option: o}
			}
		}
		o.numOccurrences++
	}
	o.position = pos
	return o.value.Set(o, name, value)
}

// setDefault restores the attached storage to its declared initial
// value and clears the occurrence state.
func (o *Option) setDefault() {
	if o.forwardTo == nil {
		o.value.Reset()
	}
	o.numOccurrences = 0
	o.position = 0
}

// isPositional returns true for options matched by position.
func (o *Option) isPositional() bool {
	return o.Formatting == Positional
}

// isSink returns true for options receiving unrecognized tokens.
func (o *Option) isSink() bool {
	return (o.Misc & Sink) != 0
}

// isConsumeAfter returns true for the consume-after option.
func (o *Option) isConsumeAfter() bool {
	return o.Occurrences == ConsumeAfter
}

// eatsArgs returns true for positional options that greedily swallow
// tokens that look like options.
func (o *Option) eatsArgs() bool {
	return (o.Misc & PositionalEatsArgs) != 0
}

// wantsGrouping returns true for single-character options that may
// appear in a group of short flags.
func (o *Option) wantsGrouping() bool {
	return (o.Misc & Grouping) != 0
}

// minOccurrences returns the minimum number of occurrences demanded
// by the cardinality flag.
func (o *Option) minOccurrences() int {
	switch o.Occurrences {
	case Required, OneOrMore:
		return 1
	default:
		return 0
	}
}

// repeats returns true when the option may occur more than once.
func (o *Option) repeats() bool {
	switch o.Occurrences {
	case ZeroOrMore, OneOrMore, ConsumeAfter:
		return true
	default:
		return false
	}
}

// extraNames returns the additional lookup names contributed by the
// attached storage. An un-named enumeration option is matched through
// the literals of its value mapping rather than through a name.
func (o *Option) extraNames() []string {
	if o.Name != "" || o.Formatting == Positional {
		return nil
	}
	type literalNamer interface {
		literalNames() []string
	}
	if ln, ok := o.value.(literalNamer); ok {
		return ln.literalNames()
	}
	return nil
}

// displayName renders the option name for diagnostics.
func (o *Option) displayName() string {
	switch {
	case o.Name != "":
		if len(o.Name) == 1 {
			return "-" + o.Name
		}
		return "--" + o.Name
	case o.ValueName != "":
		return fmt.Sprintf("<%s>", o.ValueName)
	default:
		return "<argument>"
	}
}
