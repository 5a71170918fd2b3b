// opt.go - scalar option storage.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import "fmt"

// Opt is a scalar option: each occurrence overwrites the stored
// value. Construct with [NewOpt] or one of the typed convenience
// constructors ([Bool], [Int], [String], ...).
type Opt[T any] struct {
	// Option is the embedded option record.
	Option

	// parser converts raw values.
	parser Parser[T]

	// initial is the declared initial value.
	initial T

	// location optionally points at external storage.
	location *T

	// stored holds the value when no location is bound.
	stored T
}

// NewOpt creates a scalar option, attaches the given parser, applies
// the modifiers, and registers the option with the process-global
// registry.
func NewOpt[T any](parser Parser[T], name string, mods ...any) *Opt[T] {
	configCheck(parser != nil, "option %q requires a parser", name)
	ox := &Opt[T]{parser: parser}
	ox.Name = name
	applyMods(&ox.Option, mods, func(m any) bool {
		switch v := m.(type) {
		case InitialValue[T]:
			ox.initial = v.Value
			return true
		case ExternalLocation[T]:
			configCheck(ox.location == nil, "option %q cannot bind two external locations", name)
			ox.location = v.Pointer
			return true
		case EnumValues[T]:
			ep, ok := parser.(*EnumParser[T])
			configCheck(ok, "option %q: Values requires an enumeration parser", name)
			ep.add(v.Values...)
			return true
		default:
			return false
		}
	})
	if ox.ValueName == "" {
		ox.ValueName = parser.ValueName()
	}
	ox.Option.value = ox
	ox.Reset()
	registerOption(&ox.Option)
	return ox
}

// Get returns the current value.
func (ox *Opt[T]) Get() T {
	if ox.location != nil {
		return *ox.location
	}
	return ox.stored
}

func (ox *Opt[T]) assign(value T) {
	if ox.location != nil {
		*ox.location = value
		return
	}
	ox.stored = value
}

// Set implements [Value].
func (ox *Opt[T]) Set(opt *Option, name, value string) error {
	parsed, err := ox.parser.Parse(opt, name, value)
	if err != nil {
		return ErrParseFailure{Option: opt, Value: value, Err: err}
	}
	ox.assign(parsed)
	return nil
}

// Accepts implements [Value].
func (ox *Opt[T]) Accepts(value string) bool {
	_, err := ox.parser.Parse(&ox.Option, ox.Name, value)
	return err == nil
}

// Reset implements [Value].
func (ox *Opt[T]) Reset() {
	ox.assign(ox.initial)
}

// DefaultValueExpected implements [Value].
func (ox *Opt[T]) DefaultValueExpected() ValueExpected {
	return ox.parser.ValueExpected()
}

// String implements [Value].
func (ox *Opt[T]) String() string {
	return fmt.Sprint(ox.Get())
}

// literalNames exposes the enumeration literals for un-named
// enumeration options matched through their value mapping.
func (ox *Opt[T]) literalNames() []string {
	if ep, ok := ox.parser.(*EnumParser[T]); ok {
		return ep.literalNames()
	}
	return nil
}

// --- convenience constructors ---

// Bool creates a boolean option using [BoolParser].
func Bool(name string, mods ...any) *Opt[bool] {
	return NewOpt[bool](BoolParser{}, name, mods...)
}

// BoolOrDefaultOpt creates a tri-state boolean option using
// [BoolOrDefaultParser].
func BoolOrDefaultOpt(name string, mods ...any) *Opt[BoolOrDefault] {
	return NewOpt[BoolOrDefault](BoolOrDefaultParser{}, name, mods...)
}

// Int creates an int option using [IntParser].
func Int(name string, mods ...any) *Opt[int] {
	return NewOpt[int](IntParser{}, name, mods...)
}

// Int64 creates an int64 option using [Int64Parser].
func Int64(name string, mods ...any) *Opt[int64] {
	return NewOpt[int64](Int64Parser{}, name, mods...)
}

// Uint creates a uint option using [UintParser].
func Uint(name string, mods ...any) *Opt[uint] {
	return NewOpt[uint](UintParser{}, name, mods...)
}

// Uint64 creates a uint64 option using [Uint64Parser].
func Uint64(name string, mods ...any) *Opt[uint64] {
	return NewOpt[uint64](Uint64Parser{}, name, mods...)
}

// Float64 creates a float64 option using [Float64Parser].
func Float64(name string, mods ...any) *Opt[float64] {
	return NewOpt[float64](Float64Parser{}, name, mods...)
}

// String creates a string option using [StringParser].
func String(name string, mods ...any) *Opt[string] {
	return NewOpt[string](StringParser{}, name, mods...)
}

// Char creates a single-character option using [CharParser].
func Char(name string, mods ...any) *Opt[byte] {
	return NewOpt[byte](CharParser{}, name, mods...)
}

// NewEnum creates an enumeration option whose value mapping is
// declared with [Values].
func NewEnum[T any](name string, mods ...any) *Opt[T] {
	return NewOpt[T](&EnumParser[T]{}, name, mods...)
}

// NewCustom registers an option backed by an external storage
// adapter implementing [Value] and returns the option record.
func NewCustom(value Value, name string, mods ...any) *Option {
	configCheck(value != nil, "option %q requires storage", name)
	o := &Option{Name: name}
	applyMods(o, mods, nil)
	o.value = value
	value.Reset()
	registerOption(o)
	return o
}
