// help.go - help and option-value printers.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"

	"github.com/bassosimone/textwrap"
)

// printHelp renders the help screen for the active scope.
//
// When categorized is true, options are grouped under their category
// headers sorted by name; otherwise they form a single flat list.
// Options hidden with [Hidden] appear only when includeHidden is
// true; options hidden with [ReallyHidden] never appear. A nonempty
// categoryFilter restricts the output to one category.
func (ex *engine) printHelp(w io.Writer, includeHidden, categorized bool, categoryFilter string) {
	active := ex.activeSub
	if active == nil {
		active = ex.topLevel
	}

	// Synopsis line.
	fmt.Fprintf(w, "Usage: %s", ex.progName)
	if active == ex.topLevel && len(ex.subsOrder) > 0 {
		fmt.Fprintf(w, " [subcommand]")
	}
	fmt.Fprintf(w, " [options]")
	for _, p := range ex.positionalsFor(active) {
		placeholder := p.ValueName
		if placeholder == "" {
			placeholder = "arg"
		}
		if p.repeats() {
			fmt.Fprintf(w, " <%s>...", placeholder)
		} else {
			fmt.Fprintf(w, " <%s>", placeholder)
		}
	}
	if ca := ex.consumeAfterFor(active); ca != nil {
		placeholder := ca.ValueName
		if placeholder == "" {
			placeholder = "args"
		}
		fmt.Fprintf(w, " <%s>...", placeholder)
	}
	fmt.Fprintf(w, "\n\n")

	// Overview.
	if ex.overview != "" {
		fmt.Fprintf(w, "%s\n\n", textwrap.Do(ex.overview, 72, ""))
	}

	// Subcommands.
	if active == ex.topLevel && len(ex.subsOrder) > 0 {
		fmt.Fprintf(w, "Subcommands:\n")
		for _, sub := range ex.subsOrder {
			fmt.Fprintf(w, "  %s\n", sub.Name)
			if sub.Description != "" {
				fmt.Fprintf(w, "%s\n", textwrap.Do(sub.Description, 72, "    "))
			}
			fmt.Fprintf(w, "\n")
		}
	}

	// Collect the visible options in registration order.
	options := ex.visibleOptions(active, includeHidden, categoryFilter)
	if len(options) <= 0 {
		return
	}

	if !categorized {
		fmt.Fprintf(w, "Options:\n")
		for _, o := range options {
			ex.printOneOption(w, o)
		}
		return
	}

	// Group options under their categories, sorted by name. An
	// option carrying several categories appears in each.
	grouped := map[string][]*Option{}
	for _, o := range options {
		for _, cat := range o.Categories {
			grouped[cat.Name] = append(grouped[cat.Name], o)
		}
	}
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s:\n", name)
		for _, o := range grouped[name] {
			ex.printOneOption(w, o)
		}
	}
}

// visibleOptions gathers the named options shown by help, active
// scope first and all-subcommands scope afterwards, preserving
// registration order within each.
func (ex *engine) visibleOptions(active *SubCommand, includeHidden bool, categoryFilter string) []*Option {
	keep := func(o *Option) bool {
		if o.Name == "" && len(o.extraNames()) <= 0 {
			return false
		}
		switch o.Hidden {
		case NotHidden:
			// always visible
		case Hidden:
			if !includeHidden {
				return false
			}
		default:
			return false
		}
		if categoryFilter != "" {
			for _, cat := range o.Categories {
				if cat.Name == categoryFilter {
					return true
				}
			}
			return false
		}
		return true
	}

	var out []*Option
	seen := map[*Option]bool{}
	gather := func(sub *SubCommand) {
		for _, o := range sub.registered {
			if !seen[o] && keep(o) {
				seen[o] = true
				out = append(out, o)
			}
		}
	}
	gather(active)
	if active != ex.all {
		gather(ex.all)
	}
	return out
}

// printOneOption renders one option row followed by its wrapped
// help text.
func (ex *engine) printOneOption(w io.Writer, o *Option) {
	var sb strings.Builder
	switch {
	case o.Name != "":
		sb.WriteString("  ")
		sb.WriteString(o.displayName())
		placeholder := o.ValueName
		switch o.effectiveValueExpected() {
		case ValueRequired:
			if placeholder == "" {
				placeholder = "value"
			}
			if o.Formatting == Prefix || o.Formatting == AlwaysPrefix {
				fmt.Fprintf(&sb, "<%s>", placeholder)
			} else {
				fmt.Fprintf(&sb, " <%s>", placeholder)
			}
		case ValueOptional:
			if placeholder != "" {
				fmt.Fprintf(&sb, "[=<%s>]", placeholder)
			}
		}
	default:
		// an un-named enumeration receptacle: list its literals
		sb.WriteString("  --{")
		sb.WriteString(strings.Join(o.extraNames(), "|"))
		sb.WriteString("}")
	}
	fmt.Fprintf(w, "%s\n", sb.String())
	if o.HelpText != "" {
		fmt.Fprintf(w, "%s\n", textwrap.Do(o.HelpText, 72, "    "))
	}
	fmt.Fprintf(w, "\n")
}

// printVersion renders the output of the -version builtin through
// the installed printer, if any.
func (ex *engine) printVersion(w io.Writer) {
	if ex.versionPrinter != nil {
		ex.versionPrinter(w)
		return
	}
	fmt.Fprintf(w, "%s (built with %s)\n", ex.progName, runtime.Version())
}

// printOptionValues renders the current option values: every option
// when all is true, otherwise only the options that occurred during
// the parse. Values are not compared with the declared defaults: an
// option given its default value on the command line is printed.
func (ex *engine) printOptionValues(w io.Writer, all bool) {
	active := ex.activeSub
	if active == nil {
		active = ex.topLevel
	}
	seen := map[*Option]bool{}
	dump := func(sub *SubCommand) {
		for _, o := range sub.registered {
			if seen[o] || o.forwardTo != nil {
				continue
			}
			seen[o] = true
			if !all && o.numOccurrences <= 0 {
				continue
			}
			fmt.Fprintf(w, "  %s = %s\n", o.displayName(), o.value.String())
		}
	}
	fmt.Fprintf(w, "Options:\n")
	dump(active)
	if active != ex.all {
		dump(ex.all)
	}
}
