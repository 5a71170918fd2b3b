// parser.go - per-type value parsers.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser converts the raw occurrence value of an option into a typed
// value. Each parser also advertises the value expectation and the
// placeholder used when the option does not override them.
type Parser[T any] interface {
	// Parse converts the raw value. The name is the name under
	// which the option was matched on the command line.
	Parse(opt *Option, name, value string) (T, error)

	// ValueExpected returns the default value expectation.
	ValueExpected() ValueExpected

	// ValueName returns the default value placeholder for help.
	ValueName() string
}

// --- bool ---

// BoolParser is the [Parser] for boolean options. It accepts the
// empty string, "true", "false", "1", "0", "yes", and "no", all
// case-insensitive; the empty string means true so that a bare flag
// enables the option.
type BoolParser struct{}

var _ Parser[bool] = BoolParser{}

// Parse implements [Parser].
func (BoolParser) Parse(opt *Option, name, value string) (bool, error) {
	return parseBoolText(value)
}

// ValueExpected implements [Parser].
func (BoolParser) ValueExpected() ValueExpected {
	return ValueOptional
}

// ValueName implements [Parser].
func (BoolParser) ValueName() string {
	return ""
}

func parseBoolText(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "", "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected a boolean value, got %q", value)
	}
}

// --- tri-state bool ---

// BoolOrDefault is a tri-state boolean distinguishing "not set" from
// an explicit true or false.
type BoolOrDefault int

// These constants define the allowed [BoolOrDefault] values.
const (
	// BoolUnset means the option did not occur.
	BoolUnset = BoolOrDefault(iota)

	// BoolFalse means the option was explicitly disabled.
	BoolFalse

	// BoolTrue means the option was explicitly enabled.
	BoolTrue
)

// BoolOrDefaultParser is the [Parser] for tri-state boolean options.
// It accepts the same spellings as [BoolParser].
type BoolOrDefaultParser struct{}

var _ Parser[BoolOrDefault] = BoolOrDefaultParser{}

// Parse implements [Parser].
func (BoolOrDefaultParser) Parse(opt *Option, name, value string) (BoolOrDefault, error) {
	enabled, err := parseBoolText(value)
	if err != nil {
		return BoolUnset, err
	}
	if enabled {
		return BoolTrue, nil
	}
	return BoolFalse, nil
}

// ValueExpected implements [Parser].
func (BoolOrDefaultParser) ValueExpected() ValueExpected {
	return ValueOptional
}

// ValueName implements [Parser].
func (BoolOrDefaultParser) ValueName() string {
	return ""
}

// --- integers ---

// IntParser is the [Parser] for int options. It accepts decimal,
// octal (0 prefix), and hexadecimal (0x prefix) spellings.
type IntParser struct{}

var _ Parser[int] = IntParser{}

// Parse implements [Parser].
func (IntParser) Parse(opt *Option, name, value string) (int, error) {
	parsed, err := strconv.ParseInt(value, 0, strconv.IntSize)
	return int(parsed), err
}

// ValueExpected implements [Parser].
func (IntParser) ValueExpected() ValueExpected {
	return ValueRequired
}

// ValueName implements [Parser].
func (IntParser) ValueName() string {
	return "int"
}

// Int64Parser is the [Parser] for int64 options.
type Int64Parser struct{}

var _ Parser[int64] = Int64Parser{}

// Parse implements [Parser].
func (Int64Parser) Parse(opt *Option, name, value string) (int64, error) {
	return strconv.ParseInt(value, 0, 64)
}

// ValueExpected implements [Parser].
func (Int64Parser) ValueExpected() ValueExpected {
	return ValueRequired
}

// ValueName implements [Parser].
func (Int64Parser) ValueName() string {
	return "long"
}

// UintParser is the [Parser] for uint options.
type UintParser struct{}

var _ Parser[uint] = UintParser{}

// Parse implements [Parser].
func (UintParser) Parse(opt *Option, name, value string) (uint, error) {
	parsed, err := strconv.ParseUint(value, 0, strconv.IntSize)
	return uint(parsed), err
}

// ValueExpected implements [Parser].
func (UintParser) ValueExpected() ValueExpected {
	return ValueRequired
}

// ValueName implements [Parser].
func (UintParser) ValueName() string {
	return "uint"
}

// Uint64Parser is the [Parser] for uint64 options.
type Uint64Parser struct{}

var _ Parser[uint64] = Uint64Parser{}

// Parse implements [Parser].
func (Uint64Parser) Parse(opt *Option, name, value string) (uint64, error) {
	return strconv.ParseUint(value, 0, 64)
}

// ValueExpected implements [Parser].
func (Uint64Parser) ValueExpected() ValueExpected {
	return ValueRequired
}

// ValueName implements [Parser].
func (Uint64Parser) ValueName() string {
	return "ulong"
}

// --- floating point ---

// Float64Parser is the [Parser] for float64 options.
type Float64Parser struct{}

var _ Parser[float64] = Float64Parser{}

// Parse implements [Parser].
func (Float64Parser) Parse(opt *Option, name, value string) (float64, error) {
	return strconv.ParseFloat(value, 64)
}

// ValueExpected implements [Parser].
func (Float64Parser) ValueExpected() ValueExpected {
	return ValueRequired
}

// ValueName implements [Parser].
func (Float64Parser) ValueName() string {
	return "number"
}

// --- string ---

// StringParser is the identity [Parser] for string options.
type StringParser struct{}

var _ Parser[string] = StringParser{}

// Parse implements [Parser].
func (StringParser) Parse(opt *Option, name, value string) (string, error) {
	return value, nil
}

// ValueExpected implements [Parser].
func (StringParser) ValueExpected() ValueExpected {
	return ValueRequired
}

// ValueName implements [Parser].
func (StringParser) ValueName() string {
	return "string"
}

// --- char ---

// CharParser is the [Parser] for single-character options: it
// stores the first byte of the raw value.
type CharParser struct{}

var _ Parser[byte] = CharParser{}

// Parse implements [Parser].
func (CharParser) Parse(opt *Option, name, value string) (byte, error) {
	if len(value) <= 0 {
		return 0, fmt.Errorf("expected a character, got an empty value")
	}
	return value[0], nil
}

// ValueExpected implements [Parser].
func (CharParser) ValueExpected() ValueExpected {
	return ValueRequired
}

// ValueName implements [Parser].
func (CharParser) ValueName() string {
	return "char"
}

// --- enumerations ---

// EnumParser is the generic [Parser] matching a registered list of
// literals declared with [Values]. A named enumeration option
// matches its value against the literals (`--opt=literal`); an
// un-named one is matched directly through the literals, which act
// as option names.
type EnumParser[T any] struct {
	// values contains the literals in declaration order.
	values []EnumValue[T]
}

var _ Parser[int] = &EnumParser[int]{}

// add appends literals to the mapping.
func (px *EnumParser[T]) add(values ...EnumValue[T]) {
	px.values = append(px.values, values...)
}

// Parse implements [Parser].
func (px *EnumParser[T]) Parse(opt *Option, name, value string) (T, error) {
	// For an un-named option the literal arrives as the matched
	// name; otherwise it arrives as the option value.
	key := value
	if opt.Name == "" && !opt.isPositional() {
		key = name
	}
	for _, v := range px.values {
		if v.Name == key {
			return v.Value, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown value %q", key)
}

// ValueExpected implements [Parser].
func (px *EnumParser[T]) ValueExpected() ValueExpected {
	return ValueRequired
}

// ValueName implements [Parser].
func (px *EnumParser[T]) ValueName() string {
	return "value"
}

// literalNames returns the literals, used as lookup names when the
// option itself has no name.
func (px *EnumParser[T]) literalNames() []string {
	names := make([]string, 0, len(px.values))
	for _, v := range px.values {
		names = append(names, v.Name)
	}
	return names
}
