// flags.go - option flag enumerations.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

// NumOccurrences controls how many times an option may appear on the
// command line. The constants double as declaration modifiers.
type NumOccurrences int

// These constants define the allowed [NumOccurrences] values.
const (
	// Optional allows zero or one occurrences. This is the default
	// for scalar options.
	Optional = NumOccurrences(iota)

	// ZeroOrMore allows any number of occurrences. This is the
	// default for list and bits options.
	ZeroOrMore

	// Required demands exactly one occurrence.
	Required

	// OneOrMore demands at least one occurrence.
	OneOrMore

	// ConsumeAfter marks the option receiving every remaining
	// token once the required positional arguments are satisfied.
	ConsumeAfter
)

// ValueExpected controls whether an option takes a value. The
// constants double as declaration modifiers.
type ValueExpected int

// These constants define the allowed [ValueExpected] values.
const (
	// ValueUnspecified defers to the default advertised by the
	// option's value parser.
	ValueUnspecified = ValueExpected(iota)

	// ValueOptional accepts a value when one is attached.
	ValueOptional

	// ValueRequired demands a value for each occurrence.
	ValueRequired

	// ValueDisallowed forbids attaching a value.
	ValueDisallowed
)

// OptionHidden controls whether the option appears in the help
// output. The constants double as declaration modifiers.
type OptionHidden int

// These constants define the allowed [OptionHidden] values.
const (
	// NotHidden shows the option in help output.
	NotHidden = OptionHidden(iota)

	// Hidden omits the option unless hidden help is requested.
	Hidden

	// ReallyHidden omits the option from every help listing.
	ReallyHidden
)

// Formatting controls how an option is matched against command line
// tokens. The constants double as declaration modifiers.
type Formatting int

// These constants define the allowed [Formatting] values.
const (
	// NormalFormatting matches the option by its exact name.
	NormalFormatting = Formatting(iota)

	// Positional matches the option by argument position rather
	// than by name. Positional options have an empty name.
	Positional

	// Prefix matches when the option name is a prefix of the
	// token, with the remaining suffix supplying the value
	// (e.g., `-Lpath` matches option `L` with value `path`).
	Prefix

	// AlwaysPrefix is like [Prefix] but additionally rejects the
	// `name=value` inline form for the option.
	AlwaysPrefix
)

// Misc is a bit set of miscellaneous option behaviors. The constants
// double as declaration modifiers and OR together.
type Misc int

// These constants define the allowed [Misc] bits.
const (
	// CommaSeparated splits each value at commas and dispatches
	// one occurrence per piece.
	CommaSeparated = Misc(1 << iota)

	// PositionalEatsArgs lets a positional option greedily swallow
	// tokens that look like options.
	PositionalEatsArgs

	// Sink routes otherwise-unrecognized tokens to the option.
	Sink

	// Grouping allows the single-character option to be written
	// in a group of short flags (e.g., `-lah`).
	Grouping

	// DefaultOption exempts the option from the duplicate
	// occurrence check, allowing later occurrences to override
	// earlier ones.
	DefaultOption
)
