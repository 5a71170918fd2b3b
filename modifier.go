// modifier.go - declaration modifiers.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

// Mod is a declaration modifier mutating an [*Option]. The typed
// constructors accept modifiers as a trailing variadic list; the
// enumeration constants ([Required], [Hidden], [Positional],
// [CommaSeparated], ...) are accepted directly alongside [Mod]
// values and the typed modifiers ([Init], [Location], [Values],
// [AliasFor]).
type Mod func(*Option)

// Desc sets the option help text.
func Desc(text string) Mod {
	return func(o *Option) {
		o.HelpText = text
	}
}

// ValueDesc sets the placeholder name for the option value in help
// output.
func ValueDesc(text string) Mod {
	return func(o *Option) {
		o.ValueName = text
	}
}

// Cat adds the option to the given category.
func Cat(cat *Category) Mod {
	return func(o *Option) {
		o.Categories = append(o.Categories, cat)
	}
}

// Sub registers the option within the given subcommand instead of
// [TopLevelSubCommand]. Pass [AllSubCommands] to make the option
// visible in every subcommand.
func Sub(sub *SubCommand) Mod {
	return func(o *Option) {
		o.Subs = append(o.Subs, sub)
	}
}

// MultiArg makes each occurrence of the option consume n additional
// consecutive tokens.
func MultiArg(n int) Mod {
	configCheck(n >= 0, "MultiArg requires a non-negative count")
	return func(o *Option) {
		o.AdditionalValues = n
	}
}

// InitialValue carries the declared initial value of an option. Use
// [Init] to construct it.
type InitialValue[T any] struct {
	// Value is the initial value.
	Value T
}

// Init declares the initial value of an option: the storage starts
// from it and [ResetAllOptionOccurrences] restores it.
func Init[T any](value T) InitialValue[T] {
	return InitialValue[T]{Value: value}
}

// ExternalLocation carries an external storage location. Use
// [Location] to construct it.
type ExternalLocation[T any] struct {
	// Pointer is the external storage location.
	Pointer *T
}

// Location binds the option storage to an external variable instead
// of the storage embedded in the option. At most one location may be
// bound per option.
func Location[T any](pointer *T) ExternalLocation[T] {
	configCheck(pointer != nil, "Location requires a non-nil pointer")
	return ExternalLocation[T]{Pointer: pointer}
}

// EnumValue is one literal of an enumeration option: the raw name
// accepted on the command line, the value it maps to, and the help
// text describing it.
type EnumValue[T any] struct {
	// Name is the literal matched on the command line.
	Name string

	// Value is the mapped value.
	Value T

	// Help describes the literal in help output.
	Help string
}

// EnumValues carries the value mapping of an enumeration option.
// Use [Values] to construct it.
type EnumValues[T any] struct {
	// Values contains the literals in declaration order.
	Values []EnumValue[T]
}

// Values declares the value mapping of an enumeration option created
// with [NewEnum], [NewEnumList], or [NewBits].
func Values[T any](values ...EnumValue[T]) EnumValues[T] {
	return EnumValues[T]{Values: values}
}

// modsSeen records which modifier families were applied, letting the
// typed constructors pick different defaults for fields the caller
// left untouched.
type modsSeen struct {
	occurrences bool
}

// applyMods applies the given modifiers to the option. The typed
// callback claims modifiers the shared code does not understand
// (e.g., [InitialValue]); anything left unclaimed is a programmer
// mistake and panics with a [ConfigError].
func applyMods(o *Option, mods []any, typed func(m any) bool) modsSeen {
	var seen modsSeen
	for _, m := range mods {
		switch v := m.(type) {
		case Mod:
			v(o)
		case NumOccurrences:
			o.Occurrences = v
			seen.occurrences = true
		case ValueExpected:
			o.Expects = v
		case OptionHidden:
			o.Hidden = v
		case Formatting:
			o.Formatting = v
		case Misc:
			o.Misc |= v
		case *Category:
			o.Categories = append(o.Categories, v)
		case *SubCommand:
			o.Subs = append(o.Subs, v)
		default:
			if typed == nil || !typed(m) {
				configCheck(false, "unsupported modifier of type %T", m)
			}
		}
	}
	return seen
}
