// bits.go - bit set option storage.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import (
	"fmt"
	"strconv"
	"strings"
)

// EnumInteger constrains the enumeration types usable with [Bits].
type EnumInteger interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Bits is a bit set option: each occurrence ORs the bit indexed by
// the parsed enumeration value into an accumulated mask. Bit sets
// default to [ZeroOrMore] occurrences. Construct with [NewBits] and
// declare the mapping with [Values].
type Bits[T EnumInteger] struct {
	// Option is the embedded option record.
	Option

	// parser maps literals to enumeration values.
	parser *EnumParser[T]

	// location optionally points at external storage.
	location *uint64

	// stored holds the mask when no location is bound.
	stored uint64
}

// NewBits creates a bit set option, applies the modifiers, and
// registers the option with the process-global registry.
func NewBits[T EnumInteger](name string, mods ...any) *Bits[T] {
	bx := &Bits[T]{parser: &EnumParser[T]{}}
	bx.Name = name
	seen := applyMods(&bx.Option, mods, func(m any) bool {
		switch v := m.(type) {
		case ExternalLocation[uint64]:
			configCheck(bx.location == nil, "option %q cannot bind two external locations", name)
			bx.location = v.Pointer
			return true
		case EnumValues[T]:
			bx.parser.add(v.Values...)
			return true
		default:
			return false
		}
	})
	if !seen.occurrences {
		bx.Occurrences = ZeroOrMore
	}
	if bx.ValueName == "" {
		bx.ValueName = bx.parser.ValueName()
	}
	bx.Option.value = bx
	registerOption(&bx.Option)
	return bx
}

// Mask returns the accumulated bit mask.
func (bx *Bits[T]) Mask() uint64 {
	if bx.location != nil {
		return *bx.location
	}
	return bx.stored
}

// IsSet returns true when the bit for the given enumeration value
// is set in the mask.
func (bx *Bits[T]) IsSet(value T) bool {
	return bx.Mask()&(uint64(1)<<uint64(value)) != 0
}

func (bx *Bits[T]) orIn(mask uint64) {
	if bx.location != nil {
		*bx.location |= mask
		return
	}
	bx.stored |= mask
}

// Set implements [Value].
func (bx *Bits[T]) Set(opt *Option, name, value string) error {
	parsed, err := bx.parser.Parse(opt, name, value)
	if err != nil {
		return ErrParseFailure{Option: opt, Value: value, Err: err}
	}
	if uint64(parsed) >= 64 {
		return ErrParseFailure{
			Option: opt,
			Value:  value,
			Err:    fmt.Errorf("bit index %d out of range", parsed),
		}
	}
	bx.orIn(uint64(1) << uint64(parsed))
	return nil
}

// Accepts implements [Value].
func (bx *Bits[T]) Accepts(value string) bool {
	_, err := bx.parser.Parse(&bx.Option, bx.Name, value)
	return err == nil
}

// Reset implements [Value].
func (bx *Bits[T]) Reset() {
	if bx.location != nil {
		*bx.location = 0
		return
	}
	bx.stored = 0
}

// DefaultValueExpected implements [Value].
func (bx *Bits[T]) DefaultValueExpected() ValueExpected {
	return bx.parser.ValueExpected()
}

// String implements [Value].
func (bx *Bits[T]) String() string {
	var sb strings.Builder
	mask := bx.Mask()
	for _, ev := range bx.parser.values {
		if mask&(uint64(1)<<uint64(ev.Value)) != 0 {
			if sb.Len() > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(ev.Name)
		}
	}
	if sb.Len() <= 0 {
		return strconv.FormatUint(mask, 10)
	}
	return sb.String()
}

// literalNames exposes the enumeration literals for un-named bit
// set options matched through their value mapping.
func (bx *Bits[T]) literalNames() []string {
	return bx.parser.literalNames()
}
