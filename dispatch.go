// dispatch.go - the parse entry point and dispatch loop.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bassosimone/runtimex"
	"github.com/jm-research/commandline/pkg/scanner"
	"github.com/kballard/go-shellquote"
)

// writer used for tracing the dispatch loop while debugging
var dispatchDebugWriter io.Writer = io.Discard

// parseConfig collects the behavior knobs of a single parse.
type parseConfig struct {
	// overview is the program overview shown by --help.
	overview string

	// errWriter receives diagnostics; when nil the parse prints
	// to the standard error and terminates the process.
	errWriter io.Writer

	// outWriter overrides where the builtins print.
	outWriter io.Writer

	// envVar names an environment variable whose content is
	// tokenized and prepended to the arguments.
	envVar string

	// expander is the optional response-file pre-pass.
	expander func(args []string) ([]string, error)

	// doubleDashOnly rejects single-dash long options.
	doubleDashOnly bool
}

// ParseOption configures [ParseCommandLineOptions].
type ParseOption func(cfg *parseConfig)

// WithOverview sets the program overview shown by --help.
func WithOverview(text string) ParseOption {
	return func(cfg *parseConfig) {
		cfg.overview = text
	}
}

// WithErrorWriter routes diagnostics to the given writer and makes
// [ParseCommandLineOptions] return the error instead of terminating
// the process.
func WithErrorWriter(w io.Writer) ParseOption {
	return func(cfg *parseConfig) {
		cfg.errWriter = w
	}
}

// WithOutput routes the output of the help, version, and
// print-options builtins to the given writer instead of the
// standard output.
func WithOutput(w io.Writer) ParseOption {
	return func(cfg *parseConfig) {
		cfg.outWriter = w
	}
}

// WithEnvVar names an environment variable whose content is
// tokenized with shell quoting rules and prepended to the argument
// vector, so that explicit arguments take precedence for options
// where the later occurrence wins.
func WithEnvVar(name string) ParseOption {
	return func(cfg *parseConfig) {
		cfg.envVar = name
	}
}

// WithExpander installs a response-file expansion pre-pass: the
// parse engine only ever sees the expansion's output.
func WithExpander(expander func(args []string) ([]string, error)) ParseOption {
	return func(cfg *parseConfig) {
		cfg.expander = expander
	}
}

// WithLongOptionsUseDoubleDash controls whether long option names
// require the `--` prefix. When enabled, a single `-` always
// introduces short or grouped options.
func WithLongOptionsUseDoubleDash(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.doubleDashOnly = enabled
	}
}

// ParseCommandLineOptions parses the given argument vector against
// every registered option. The argv MUST include the program name
// as the first entry.
//
// On failure the default behavior is to print a diagnostic to the
// standard error and terminate the process with exit code 1; the
// help and version builtins print and terminate with exit code 0.
// Use [WithErrorWriter] to receive diagnostics on a writer and get
// the error returned instead.
func ParseCommandLineOptions(argv []string, opts ...ParseOption) error {
	ex := defaultContext()
	ex.ensureBuiltins()
	cfg := &parseConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return ex.finish(cfg, ex.parse(argv, cfg))
}

// finish implements the configured error handling policy.
func (ex *engine) finish(cfg *parseConfig, err error) error {
	terminating := cfg.errWriter == nil
	progName := ex.progName
	if progName == "" {
		progName = "commandline"
	}

	switch {
	case err == nil:
		ex.maybePrintOptionValues()
		return nil

	case errors.Is(err, ErrHelp) || errors.Is(err, ErrVersion):
		// the builtin already printed its output
		if terminating {
			ex.exit(0)
		}
		return err

	default:
		w := cfg.errWriter
		if w == nil {
			w = os.Stderr
		}
		for _, e := range flattenErrors(err) {
			fmt.Fprintf(w, "%s: %s\n", progName, e.Error())
		}
		fmt.Fprintf(w, "Try '%s --help' for more information.\n", progName)
		if terminating {
			ex.exit(1)
		}
		return err
	}
}

// flattenErrors unpacks a joined validation error into its parts.
func flattenErrors(err error) []error {
	if mu, ok := err.(interface{ Unwrap() []error }); ok {
		return mu.Unwrap()
	}
	return []error{err}
}

// parse runs a complete parse of the given argument vector.
func (ex *engine) parse(argv []string, cfg *parseConfig) error {
	if len(argv) < 1 {
		return ErrMissingProgramName
	}
	ex.progName = filepath.Base(argv[0])
	ex.overview = cfg.overview
	ex.curStdout = os.Stdout
	if cfg.outWriter != nil {
		ex.curStdout = cfg.outWriter
	}
	args := argv[1:]

	// Run the response-file expansion pre-pass, if any.
	if cfg.expander != nil {
		expanded, err := cfg.expander(args)
		if err != nil {
			return err
		}
		args = expanded
	}

	// Prepend the environment variable content, if any, so that
	// explicit arguments win for last-occurrence options.
	if cfg.envVar != "" {
		if text, found := ex.lookupEnv(cfg.envVar); found && text != "" {
			extra, err := shellquote.Split(text)
			if err != nil {
				return ErrEnvironment{Name: cfg.envVar, Err: err}
			}
			merged := make([]string, 0, len(extra)+len(args))
			merged = append(merged, extra...)
			merged = append(merged, args...)
			args = merged
		}
	}

	// Start every parse from the declared defaults.
	ex.resetOccurrences()

	// Select the active subcommand: when the first argument names
	// a registered subcommand, consume it and switch scope.
	active := ex.topLevel
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		if sub := ex.subs[args[0]]; sub != nil {
			active = sub
			args = args[1:]
		}
	}
	active.active = true
	ex.activeSub = active

	dx := &dispatcher{
		ex:           ex,
		cfg:          cfg,
		active:       active,
		positionals:  ex.positionalsFor(active),
		sinks:        ex.sinksFor(active),
		consumeAfter: ex.consumeAfterFor(active),
	}
	for _, p := range dx.positionals {
		dx.requiredSlots += p.minOccurrences()
	}

	// A consume-after option only ever triggers after a required
	// positional, so demand one.
	if dx.consumeAfter != nil && dx.requiredSlots <= 0 {
		return ErrConsumeAfterWithoutPositional{Option: dx.consumeAfter}
	}

	// Categorize the arguments and walk the token stream.
	sx := &scanner.Scanner{Prefixes: []string{"-", "--"}, Separator: "--"}
	dx.stream = scanner.NewStream(sx.Scan(args))
	if err := dx.walk(); err != nil {
		return err
	}
	runtimex.Assert(dx.stream.Empty())

	// Hand the buffered values to the positional options, then
	// check the post-parse constraints.
	if err := dx.distributePositionals(); err != nil {
		return err
	}
	if errs := ex.validate(active); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// positionalValue is a buffered positional value and its position.
type positionalValue struct {
	value string
	pos   int
}

// dispatcher drives the walk over the token stream for one parse.
type dispatcher struct {
	// ex is the owning engine.
	ex *engine

	// cfg is the parse configuration.
	cfg *parseConfig

	// active is the selected subcommand scope.
	active *SubCommand

	// stream is the token stream being consumed.
	stream *scanner.Stream

	// positionals, sinks, and consumeAfter are the effective
	// views of the active scope.
	positionals  []*Option
	sinks        []*Option
	consumeAfter *Option

	// requiredSlots is the total minimum demand of positionals.
	requiredSlots int

	// buffered holds positional values awaiting distribution.
	buffered []positionalValue

	// activePositional is the eats-args positional currently
	// swallowing every token.
	activePositional *Option

	// inConsumeAfter records that the one-way switch to the
	// consume-after option happened.
	inConsumeAfter bool
}

// walk consumes the whole token stream, dispatching options as they
// resolve and buffering positional values.
func (dx *dispatcher) walk() error {
	for {
		tok, ok := dx.stream.PopFront()
		if !ok {
			break
		}
		pos := tok.Index() + 1
		fmt.Fprintf(dispatchDebugWriter, "processing token: %+v\n", tok)

		// The separator switches the remainder to raw positional
		// mode and is itself never dispatched.
		if _, isSep := tok.(scanner.SeparatorToken); isSep {
			continue
		}

		// Once consume-after is entered, every remaining token is
		// routed verbatim; the switch is one-way.
		if dx.inConsumeAfter {
			if err := dx.consumeAfter.addOccurrence(pos, "", tok.String(), false); err != nil {
				return err
			}
			continue
		}

		switch tok := tok.(type) {
		case scanner.ArgumentToken:
			if err := dx.handlePositionalValue(tok.Value, pos); err != nil {
				return err
			}
		case scanner.OptionToken:
			if err := dx.handleOptionToken(tok, pos); err != nil {
				return err
			}
		}
	}
	return nil
}

// handleOptionToken resolves and dispatches one option token.
func (dx *dispatcher) handleOptionToken(tok scanner.OptionToken, pos int) error {
	res, err := dx.ex.resolveToken(dx.active, tok, dx.cfg.doubleDashOnly)
	if err != nil {
		return err
	}

	if res.kind == matchUnknown {
		// A token like `-5` is a negative number, not an option.
		if looksLikeNumber(tok.String()) {
			return dx.handlePositionalValue(tok.String(), pos)
		}
		if dx.activePositional != nil {
			return dx.activePositional.addOccurrence(pos, "", tok.String(), false)
		}
		if next := dx.nextPositional(); next != nil && next.eatsArgs() {
			dx.activePositional = next
			return next.addOccurrence(pos, "", tok.String(), false)
		}
		if len(dx.sinks) > 0 {
			for _, sink := range dx.sinks {
				if err := sink.addOccurrence(pos, "", tok.String(), false); err != nil {
					return err
				}
			}
			return nil
		}
		return ErrUnknownOption{Prefix: tok.Prefix, Name: tok.Name}
	}

	for idx, m := range res.matches {
		// Within a group, only the final member may pull its value
		// from the stream.
		last := idx == len(res.matches)-1
		if err := dx.provideOption(m.option, m.name, m.value, m.hasValue, pos, last); err != nil {
			return err
		}
	}
	return nil
}

// provideOption determines the value for a matched option according
// to its effective value expectation, then dispatches the
// occurrence, honoring comma separation and additional values. The
// last flag allows taking the value from the next stream token.
func (dx *dispatcher) provideOption(o *Option, name, value string, hasValue bool, pos int, last bool) error {
	switch o.effectiveValueExpected() {
	case ValueRequired:
		if !hasValue {
			// A prefix option carries its value in the suffix and
			// never consumes the next token.
			if o.Formatting == Prefix || o.Formatting == AlwaysPrefix || !last {
				return ErrMissingValue{Option: o}
			}
			tok, ok := dx.stream.PopFront()
			if !ok {
				return ErrMissingValue{Option: o}
			}
			value, hasValue = tok.String(), true
		}

	case ValueDisallowed:
		if hasValue {
			return ErrUnexpectedValue{Option: o, Value: value}
		}

	default: // ValueOptional and unresolved ValueUnspecified
		if !hasValue && last {
			value, hasValue = dx.maybeConsumeOptionalValue(o)
		}
	}

	pieces := []string{value}
	if (o.Misc&CommaSeparated) != 0 && hasValue {
		pieces = strings.Split(value, ",")
	}
	for _, piece := range pieces {
		if err := o.addOccurrence(pos, name, piece, false); err != nil {
			return err
		}
	}

	for i := 0; i < o.AdditionalValues; i++ {
		tok, ok := dx.stream.PopFront()
		if !ok {
			return ErrMissingValue{Option: o}
		}
		if err := o.addOccurrence(pos, name, tok.String(), true); err != nil {
			return err
		}
	}
	return nil
}

// maybeConsumeOptionalValue decides whether the next token supplies
// the value of an option with an optional value expectation: it
// does when the option's parser accepts it and it does not itself
// resolve as a registered option.
func (dx *dispatcher) maybeConsumeOptionalValue(o *Option) (string, bool) {
	tok, ok := dx.stream.Front()
	if !ok {
		return "", false
	}
	switch tok := tok.(type) {
	case scanner.ArgumentToken:
		if o.accepts(tok.Value) {
			dx.stream.PopFront()
			return tok.Value, true
		}
	case scanner.OptionToken:
		res, err := dx.ex.resolveToken(dx.active, tok, dx.cfg.doubleDashOnly)
		if err == nil && res.kind == matchUnknown && o.accepts(tok.String()) {
			dx.stream.PopFront()
			return tok.String(), true
		}
	}
	return "", false
}

// handlePositionalValue routes one positional value: to the active
// eats-args positional, or into the buffer awaiting distribution.
// Buffering the last required value performs the one-way switch to
// the consume-after option.
func (dx *dispatcher) handlePositionalValue(value string, pos int) error {
	if dx.activePositional != nil {
		return dx.activePositional.addOccurrence(pos, "", value, false)
	}
	if next := dx.nextPositional(); next != nil && next.eatsArgs() {
		dx.activePositional = next
		return next.addOccurrence(pos, "", value, false)
	}
	dx.buffered = append(dx.buffered, positionalValue{value: value, pos: pos})
	if dx.consumeAfter != nil && len(dx.buffered) >= dx.requiredSlots {
		dx.inConsumeAfter = true
	}
	return nil
}

// nextPositional computes which positional option would receive the
// next buffered value, assuming every earlier positional takes
// exactly one value and the first repeating positional takes
// everything from its turn on.
func (dx *dispatcher) nextPositional() *Option {
	k := len(dx.buffered)
	for _, p := range dx.positionals {
		if p.repeats() {
			return p
		}
		if k <= 0 {
			return p
		}
		k--
	}
	return nil
}

// distributePositionals assigns the buffered values to positional
// options in declaration order: each positional first receives its
// minimum demand, then repeating positionals absorb whatever is not
// needed by later required ones, and single optional positionals
// take one spare value.
func (dx *dispatcher) distributePositionals() error {
	vals := dx.buffered
	valNo := 0

	// spare computes how many values remain beyond the minimum
	// demand of the positionals after index i.
	spare := func(i int) int {
		demand := 0
		for _, p := range dx.positionals[i+1:] {
			if p != dx.activePositional {
				demand += p.minOccurrences()
			}
		}
		return len(vals) - valNo - demand
	}

	feed := func(p *Option) error {
		v := vals[valNo]
		valNo++
		return p.addOccurrence(v.pos, "", v.value, false)
	}

	for i, p := range dx.positionals {
		// An activated eats-args positional already received its
		// values directly during the walk.
		if p == dx.activePositional {
			continue
		}

		needed := p.minOccurrences()
		for needed > 0 && valNo < len(vals) {
			if err := feed(p); err != nil {
				return err
			}
			needed--
		}
		if needed > 0 {
			continue // the validator reports the shortfall
		}

		switch {
		case p.repeats():
			for spare(i) > 0 {
				if err := feed(p); err != nil {
					return err
				}
			}
		case p.minOccurrences() <= 0:
			if spare(i) > 0 {
				if err := feed(p); err != nil {
					return err
				}
			}
		}
	}

	// Whatever is left over either goes to the sinks or is an error.
	if valNo < len(vals) {
		rest := vals[valNo:]
		if len(dx.sinks) > 0 {
			for _, v := range rest {
				for _, sink := range dx.sinks {
					if err := sink.addOccurrence(v.pos, "", v.value, false); err != nil {
						return err
					}
				}
			}
			return nil
		}
		values := make([]string, 0, len(rest))
		for _, v := range rest {
			values = append(values, v.value)
		}
		return ErrTooManyPositionalArguments{Values: values}
	}
	return nil
}

// looksLikeNumber reports whether the token spells a number, which
// makes a `-`-prefixed token a positional value rather than an
// unknown option.
func looksLikeNumber(s string) bool {
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseInt(s, 0, 64); err == nil {
		return true
	}
	return false
}
