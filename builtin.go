// builtin.go - auto-registered builtin options.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import "strconv"

// builtinOptions holds the options the engine registers on its own
// into the top-level scope before the first parse.
type builtinOptions struct {
	help            *Option
	helpHidden      *Option
	helpList        *Option
	helpListHidden  *Option
	version         *Option
	printOptions    *Option
	printAllOptions *Option
}

// ensureBuiltins registers the builtin options once per engine
// lifetime. Running it before the first parse rather than at
// bootstrap lets applications claim names like "version" for
// themselves by registering first.
func (ex *engine) ensureBuiltins() {
	if ex.builtins != nil {
		return
	}
	b := &builtinOptions{}

	mk := func(name string, value Value, expects ValueExpected, hidden OptionHidden, help string) *Option {
		o := &Option{
			Name:     name,
			HelpText: help,
			Expects:  expects,
			Hidden:   hidden,
			value:    value,
		}
		// A name the application registered first stays with the
		// application and the builtin is left unregistered.
		if ex.lookup(ex.topLevel, name) == nil {
			ex.registerOption(o)
		}
		return o
	}

	b.help = mk("help", &helpRequest{ex: ex, categorized: true},
		ValueOptional, NotHidden,
		"display available options (--help=<category> restricts the output)")
	aliasH := &Option{
		Name:        "h",
		HelpText:    "alias for --help",
		Hidden:      Hidden,
		Occurrences: ZeroOrMore,
		forwardTo:   b.help,
		value:       aliasValue{target: b.help},
	}
	if b.help.fullyInitialized && ex.lookup(ex.topLevel, "h") == nil {
		ex.registerOption(aliasH)
	}

	b.helpHidden = mk("help-hidden", &helpRequest{ex: ex, includeHidden: true, categorized: true},
		ValueOptional, Hidden,
		"display all options, including the hidden ones")
	b.helpList = mk("help-list", &helpRequest{ex: ex},
		ValueOptional, Hidden,
		"display the options as an uncategorized list")
	b.helpListHidden = mk("help-list-hidden", &helpRequest{ex: ex, includeHidden: true},
		ValueOptional, Hidden,
		"display all options as an uncategorized list, including the hidden ones")
	b.version = mk("version", &versionRequest{ex: ex},
		ValueDisallowed, NotHidden,
		"display the version of this program")
	b.printOptions = mk("print-options", &builtinFlag{},
		ValueDisallowed, Hidden,
		"print the values of the options given on the command line")
	b.printAllOptions = mk("print-all-options", &builtinFlag{},
		ValueDisallowed, Hidden,
		"print the values of all options")

	ex.builtins = b
}

// maybePrintOptionValues honors the print-options builtins after a
// successful parse.
func (ex *engine) maybePrintOptionValues() {
	b := ex.builtins
	if b == nil {
		return
	}
	switch {
	case b.printAllOptions.WasSpecified():
		ex.printOptionValues(ex.curStdout, true)
	case b.printOptions.WasSpecified():
		ex.printOptionValues(ex.curStdout, false)
	}
}

// helpRequest is the storage behind the help builtins: it prints
// the help screen as soon as the option occurs and aborts the parse
// with [ErrHelp].
type helpRequest struct {
	ex            *engine
	includeHidden bool
	categorized   bool
}

var _ Value = &helpRequest{}

// Set implements [Value].
func (hr *helpRequest) Set(opt *Option, name, value string) error {
	hr.ex.printHelp(hr.ex.curStdout, hr.includeHidden, hr.categorized, value)
	return ErrHelp
}

// Accepts implements [Value]. The category restriction is accepted
// only in the inline `--help=<category>` form, so the next token is
// never consumed.
func (hr *helpRequest) Accepts(value string) bool {
	return false
}

// Reset implements [Value].
func (hr *helpRequest) Reset() {
	// stateless
}

// DefaultValueExpected implements [Value].
func (hr *helpRequest) DefaultValueExpected() ValueExpected {
	return ValueOptional
}

// String implements [Value].
func (hr *helpRequest) String() string {
	return ""
}

// versionRequest is the storage behind the -version builtin: it
// prints the version as soon as the option occurs and aborts the
// parse with [ErrVersion].
type versionRequest struct {
	ex *engine
}

var _ Value = &versionRequest{}

// Set implements [Value].
func (vr *versionRequest) Set(opt *Option, name, value string) error {
	vr.ex.printVersion(vr.ex.curStdout)
	return ErrVersion
}

// Accepts implements [Value].
func (vr *versionRequest) Accepts(value string) bool {
	return false
}

// Reset implements [Value].
func (vr *versionRequest) Reset() {
	// stateless
}

// DefaultValueExpected implements [Value].
func (vr *versionRequest) DefaultValueExpected() ValueExpected {
	return ValueDisallowed
}

// String implements [Value].
func (vr *versionRequest) String() string {
	return ""
}

// builtinFlag is a minimal boolean storage for builtins consulted
// after the parse completes.
type builtinFlag struct {
	set bool
}

var _ Value = &builtinFlag{}

// Set implements [Value].
func (bf *builtinFlag) Set(opt *Option, name, value string) error {
	bf.set = true
	return nil
}

// Accepts implements [Value].
func (bf *builtinFlag) Accepts(value string) bool {
	return false
}

// Reset implements [Value].
func (bf *builtinFlag) Reset() {
	bf.set = false
}

// DefaultValueExpected implements [Value].
func (bf *builtinFlag) DefaultValueExpected() ValueExpected {
	return ValueDisallowed
}

// String implements [Value].
func (bf *builtinFlag) String() string {
	return strconv.FormatBool(bf.set)
}
