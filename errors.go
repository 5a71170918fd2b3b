// errors.go - parse and configuration errors.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import (
	"errors"
	"fmt"

	"github.com/kballard/go-shellquote"
)

// ErrMissingProgramName is returned when the argument vector passed
// to [ParseCommandLineOptions] is empty.
var ErrMissingProgramName = errors.New("missing program name")

// ErrHelp is the sentinel returned when the user requested help.
var ErrHelp = errors.New("help requested")

// ErrVersion is the sentinel returned when the user requested the
// program version.
var ErrVersion = errors.New("version requested")

// ErrUnknownOption indicates that a token matched no registered
// option and no sink exists.
type ErrUnknownOption struct {
	// Prefix is the prefix of the unknown option.
	Prefix string

	// Name is the name of the unknown option.
	Name string
}

var _ error = ErrUnknownOption{}

// Error returns a string representation of this error.
func (err ErrUnknownOption) Error() string {
	return fmt.Sprintf("unknown option: %s%s", err.Prefix, err.Name)
}

// ErrMissingValue indicates that an option requiring a value did
// not receive one.
type ErrMissingValue struct {
	// Option is the offending option.
	Option *Option
}

var _ error = ErrMissingValue{}

// Error returns a string representation of this error.
func (err ErrMissingValue) Error() string {
	return fmt.Sprintf("%s: requires a value", err.Option.displayName())
}

// ErrUnexpectedValue indicates that an inline value was attached to
// an option that disallows values.
type ErrUnexpectedValue struct {
	// Option is the offending option.
	Option *Option

	// Value is the rejected value.
	Value string
}

var _ error = ErrUnexpectedValue{}

// Error returns a string representation of this error.
func (err ErrUnexpectedValue) Error() string {
	return fmt.Sprintf("%s: does not allow a value, but %q was given", err.Option.displayName(), err.Value)
}

// ErrDuplicateOccurrence indicates that an option appeared more
// often than its cardinality allows.
type ErrDuplicateOccurrence struct {
	// Option is the offending option.
	Option *Option
}

var _ error = ErrDuplicateOccurrence{}

// Error returns a string representation of this error.
func (err ErrDuplicateOccurrence) Error() string {
	return fmt.Sprintf("%s: may only occur zero or one times", err.Option.displayName())
}

// ErrParseFailure indicates that a value parser rejected the raw
// string supplied for an option.
type ErrParseFailure struct {
	// Option is the offending option.
	Option *Option

	// Value is the rejected raw value.
	Value string

	// Err is the underlying parser error.
	Err error
}

var _ error = ErrParseFailure{}

// Error returns a string representation of this error.
func (err ErrParseFailure) Error() string {
	return fmt.Sprintf("%s: invalid value %q: %s", err.Option.displayName(), err.Value, err.Err.Error())
}

// Unwrap returns the underlying parser error.
func (err ErrParseFailure) Unwrap() error {
	return err.Err
}

// ErrMissingRequired indicates that a required option or positional
// argument did not occur.
type ErrMissingRequired struct {
	// Option is the unsatisfied option.
	Option *Option
}

var _ error = ErrMissingRequired{}

// Error returns a string representation of this error.
func (err ErrMissingRequired) Error() string {
	return fmt.Sprintf("%s: must be specified at least once", err.Option.displayName())
}

// ErrTooManyPositionalArguments indicates that positional values
// were left over after every positional option was satisfied.
type ErrTooManyPositionalArguments struct {
	// Values contains the unconsumed positional values.
	Values []string
}

var _ error = ErrTooManyPositionalArguments{}

// Error returns a string representation of this error.
func (err ErrTooManyPositionalArguments) Error() string {
	return fmt.Sprintf("too many positional arguments: %s", shellquote.Join(err.Values...))
}

// ErrConsumeAfterWithoutPositional indicates that a consume-after
// option was registered in a subcommand without required positional
// arguments, which makes it unable to ever trigger.
type ErrConsumeAfterWithoutPositional struct {
	// Option is the consume-after option.
	Option *Option
}

var _ error = ErrConsumeAfterWithoutPositional{}

// Error returns a string representation of this error.
func (err ErrConsumeAfterWithoutPositional) Error() string {
	return "consume-after option requires at least one required positional argument"
}

// ErrEnvironment indicates that the environment variable named with
// [WithEnvVar] could not be tokenized.
type ErrEnvironment struct {
	// Name is the environment variable name.
	Name string

	// Err is the underlying tokenization error.
	Err error
}

var _ error = ErrEnvironment{}

// Error returns a string representation of this error.
func (err ErrEnvironment) Error() string {
	return fmt.Sprintf("cannot tokenize environment variable %s: %s", err.Name, err.Err.Error())
}

// Unwrap returns the underlying tokenization error.
func (err ErrEnvironment) Unwrap() error {
	return err.Err
}

// ConfigError describes a programmer mistake surfaced during option
// registration, such as a duplicate option name or a grouping option
// with a multi-character name. Registration panics with a value of
// this type because such mistakes cannot be handled at runtime.
type ConfigError struct {
	// Message describes the mistake.
	Message string
}

var _ error = ConfigError{}

// Error returns a string representation of this error.
func (err ConfigError) Error() string {
	return fmt.Sprintf("commandline: %s", err.Message)
}

// configCheck panics with a [ConfigError] when cond is false.
func configCheck(cond bool, format string, v ...any) {
	if !cond {
		panic(ConfigError{Message: fmt.Sprintf(format, v...)})
	}
}
