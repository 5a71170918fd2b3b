// list.go - list option storage.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import (
	"fmt"
	"strings"
)

// List is a list option: each occurrence appends to the stored
// slice. Lists default to [ZeroOrMore] occurrences. Construct with
// [NewList] or one of the typed convenience constructors.
type List[T any] struct {
	// Option is the embedded option record.
	Option

	// parser converts raw values.
	parser Parser[T]

	// location optionally points at external storage.
	location *[]T

	// stored holds the values when no location is bound.
	stored []T
}

// NewList creates a list option, attaches the given parser, applies
// the modifiers, and registers the option with the process-global
// registry.
func NewList[T any](parser Parser[T], name string, mods ...any) *List[T] {
	configCheck(parser != nil, "option %q requires a parser", name)
	lx := &List[T]{parser: parser}
	lx.Name = name
	seen := applyMods(&lx.Option, mods, func(m any) bool {
		switch v := m.(type) {
		case ExternalLocation[[]T]:
			configCheck(lx.location == nil, "option %q cannot bind two external locations", name)
			lx.location = v.Pointer
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
	if !seen.occurrences {
		lx.Occurrences = ZeroOrMore
	}
	if lx.ValueName == "" {
		lx.ValueName = parser.ValueName()
	}
	lx.Option.value = lx
	registerOption(&lx.Option)
	return lx
}

// Get returns the accumulated values.
func (lx *List[T]) Get() []T {
	if lx.location != nil {
		return *lx.location
	}
	return lx.stored
}

func (lx *List[T]) push(value T) {
	if lx.location != nil {
		*lx.location = append(*lx.location, value)
		return
	}
	lx.stored = append(lx.stored, value)
}

// Set implements [Value].
func (lx *List[T]) Set(opt *Option, name, value string) error {
	parsed, err := lx.parser.Parse(opt, name, value)
	if err != nil {
		return ErrParseFailure{Option: opt, Value: value, Err: err}
	}
	lx.push(parsed)
	return nil
}

// Accepts implements [Value].
func (lx *List[T]) Accepts(value string) bool {
	_, err := lx.parser.Parse(&lx.Option, lx.Name, value)
	return err == nil
}

// Reset implements [Value].
func (lx *List[T]) Reset() {
	if lx.location != nil {
		*lx.location = nil
		return
	}
	lx.stored = nil
}

// DefaultValueExpected implements [Value].
func (lx *List[T]) DefaultValueExpected() ValueExpected {
	return lx.parser.ValueExpected()
}

// String implements [Value].
func (lx *List[T]) String() string {
	var sb strings.Builder
	for idx, value := range lx.Get() {
		if idx > 0 {
			sb.WriteString(",")
		}
		fmt.Fprint(&sb, value)
	}
	return sb.String()
}

// literalNames exposes the enumeration literals for un-named
// enumeration options matched through their value mapping.
func (lx *List[T]) literalNames() []string {
	if ep, ok := lx.parser.(*EnumParser[T]); ok {
		return ep.literalNames()
	}
	return nil
}

// --- convenience constructors ---

// StringList creates a list of strings using [StringParser].
func StringList(name string, mods ...any) *List[string] {
	return NewList[string](StringParser{}, name, mods...)
}

// IntList creates a list of ints using [IntParser].
func IntList(name string, mods ...any) *List[int] {
	return NewList[int](IntParser{}, name, mods...)
}

// NewEnumList creates a list option whose value mapping is declared
// with [Values].
func NewEnumList[T any](name string, mods ...any) *List[T] {
	return NewList[T](&EnumParser[T]{}, name, mods...)
}
