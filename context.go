// context.go - process-global registries.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
)

// engine holds the process-global state: the distinguished
// subcommand scopes, the named subcommands, the categories, the
// builtin options, and the observable outcome of the most recent
// parse. A single lazily-constructed instance backs the whole
// package API.
type engine struct {
	// topLevel is the scope used when no subcommand is named.
	topLevel *SubCommand

	// all is the sentinel scope whose options are visible in the
	// name lookup of every subcommand.
	all *SubCommand

	// subs maps names to registered subcommands.
	subs map[string]*SubCommand

	// subsOrder preserves subcommand registration order.
	subsOrder []*SubCommand

	// categories contains the registered help categories.
	categories []*Category

	// generalCategory is the default category.
	generalCategory *Category

	// builtins is lazily populated before the first parse.
	builtins *builtinOptions

	// versionPrinter renders the -version output.
	versionPrinter func(w io.Writer)

	// progName is the program name of the current parse.
	progName string

	// overview is the overview text of the current parse.
	overview string

	// activeSub is the subcommand selected by the current parse.
	activeSub *SubCommand

	// curStdout is where builtins print during the current parse.
	curStdout io.Writer

	// exit terminates the process in terminating mode.
	exit func(code int)

	// lookupEnv reads environment variables.
	lookupEnv func(key string) (string, bool)
}

// The default engine is constructed lazily under a process-wide
// mutex so that concurrent first registrations observe a single
// fully-constructed instance. After bootstrap the API is
// single-actor: registration happens during program initialization
// and parsing happens once from main.
var (
	engineMu     sync.Mutex
	globalEngine *engine
)

func defaultContext() *engine {
	engineMu.Lock()
	defer engineMu.Unlock()
	if globalEngine == nil {
		globalEngine = newEngine()
	}
	return globalEngine
}

func newEngine() *engine {
	ex := &engine{
		topLevel:  newSubCommand("", "top-level scope"),
		all:       newSubCommand("*", "all subcommands"),
		subs:      map[string]*SubCommand{},
		exit:      os.Exit,
		lookupEnv: os.LookupEnv,
		curStdout: os.Stdout,
	}
	ex.generalCategory = &Category{Name: "General", Description: "General options"}
	ex.categories = []*Category{ex.generalCategory}
	return ex
}

// --- registration ---

// registerOption registers the option with the default engine.
func registerOption(o *Option) {
	defaultContext().registerOption(o)
}

func (ex *engine) registerOption(o *Option) {
	configCheck(!o.fullyInitialized, "option %q registered twice", o.Name)
	configCheck(o.value != nil, "option %q has no storage", o.Name)
	configCheck(!strings.Contains(o.Name, "="), "option name %q cannot contain %q", o.Name, "=")
	if o.wantsGrouping() {
		configCheck(len(o.Name) == 1, "grouping option %q must have a single-character name", o.Name)
	}
	if o.isPositional() {
		configCheck(o.Name == "", "positional options must not have a name, got %q", o.Name)
	}
	if o.isSink() {
		configCheck(o.Name == "", "sink options must not have a name, got %q", o.Name)
	}
	if o.eatsArgs() {
		configCheck(o.isPositional(), "PositionalEatsArgs requires a positional option")
		configCheck(o.Occurrences == ZeroOrMore || o.Occurrences == OneOrMore,
			"PositionalEatsArgs requires ZeroOrMore or OneOrMore occurrences")
	}
	if o.Name == "" {
		configCheck(o.isPositional() || o.isSink() || o.isConsumeAfter() || len(o.extraNames()) > 0,
			"options matched by name must have a name")
	}

	// An un-named enumeration receptacle is matched entirely through
	// its literals: there is no separate value to consume.
	if o.Name == "" && len(o.extraNames()) > 0 && o.Expects == ValueUnspecified {
		o.Expects = ValueDisallowed
	}

	if len(o.Categories) <= 0 {
		o.Categories = []*Category{ex.generalCategory}
	}
	if len(o.Subs) <= 0 {
		o.Subs = []*SubCommand{ex.topLevel}
	}
	for _, sub := range o.Subs {
		sub.add(o)
	}
	o.fullyInitialized = true
}

// ErrNotLastRegistered is returned by [Unregister] when the option
// is not the most recently registered one in its subcommands.
var ErrNotLastRegistered = errors.New("option is not the most recently registered one")

// Unregister removes the option from the registry. Options may only
// be removed in strict reverse registration order; this is a testing
// affordance, not a runtime reconfiguration mechanism.
func Unregister(o *Option) error {
	defaultContext()
	for _, sub := range o.Subs {
		if len(sub.registered) <= 0 || sub.registered[len(sub.registered)-1] != o {
			return ErrNotLastRegistered
		}
	}
	for _, sub := range o.Subs {
		sub.removeLast(o)
	}
	o.fullyInitialized = false
	return nil
}

// --- lookup ---

// lookup finds the named option in the given scope, falling back to
// the sentinel all-subcommands scope.
func (ex *engine) lookup(sub *SubCommand, name string) *Option {
	if o := sub.byName[name]; o != nil {
		return o
	}
	if sub != ex.all {
		if o := ex.all.byName[name]; o != nil {
			return o
		}
	}
	return nil
}

// positionalsFor returns the positional options visible in the scope
// in declaration order, scope-specific options first.
func (ex *engine) positionalsFor(sub *SubCommand) []*Option {
	out := append([]*Option{}, sub.positionals...)
	if sub != ex.all {
		out = append(out, ex.all.positionals...)
	}
	return out
}

// sinksFor returns the sink options visible in the scope.
func (ex *engine) sinksFor(sub *SubCommand) []*Option {
	out := append([]*Option{}, sub.sinks...)
	if sub != ex.all {
		out = append(out, ex.all.sinks...)
	}
	return out
}

// consumeAfterFor returns the consume-after option visible in the
// scope, or nil.
func (ex *engine) consumeAfterFor(sub *SubCommand) *Option {
	if sub.consumeAfter != nil {
		return sub.consumeAfter
	}
	if sub != ex.all {
		return ex.all.consumeAfter
	}
	return nil
}

// scopes returns every subcommand scope including the distinguished
// top-level and all-subcommands instances.
func (ex *engine) scopes() []*SubCommand {
	out := []*SubCommand{ex.topLevel, ex.all}
	out = append(out, ex.subsOrder...)
	return out
}

// --- reset ---

// ResetAllOptionOccurrences returns every registered option to its
// declared default and clears its occurrence state, leaving the
// registration itself intact. The parse entry point calls this
// before walking the arguments so that repeated parses start clean.
func ResetAllOptionOccurrences() {
	defaultContext().resetOccurrences()
}

func (ex *engine) resetOccurrences() {
	for _, sub := range ex.scopes() {
		for _, o := range sub.registered {
			o.setDefault()
		}
		sub.active = false
	}
	ex.activeSub = nil
}

// ResetCommandLineParser discards the process-global registries and
// the default category and subcommand singletons. Subsequent
// registrations and parses start from an empty world. Options
// registered before the reset become orphans: re-declare them to use
// them again. This is a testing affordance.
func ResetCommandLineParser() {
	engineMu.Lock()
	defer engineMu.Unlock()
	globalEngine = nil
}

// SetVersionPrinter installs the function rendering the output of
// the -version builtin option.
func SetVersionPrinter(printer func(w io.Writer)) {
	defaultContext().versionPrinter = printer
}
