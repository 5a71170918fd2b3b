// subcommand.go - named option scopes.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

// SubCommand is a named scope holding its own view of the option
// registry. When the first command line argument names a registered
// subcommand, the parse happens within that scope; otherwise it
// happens within [TopLevelSubCommand].
type SubCommand struct {
	// Name is the subcommand name matched against the first
	// command line argument.
	Name string

	// Description is shown in help output.
	Description string

	// byName maps option names to options registered in this scope.
	byName map[string]*Option

	// positionals contains positional options in declaration order.
	positionals []*Option

	// sinks contains the sink options.
	sinks []*Option

	// consumeAfter is the at-most-one consume-after option.
	consumeAfter *Option

	// registered contains every option in registration order.
	registered []*Option

	// active records whether the most recent parse selected this
	// subcommand.
	active bool
}

// newSubCommand creates an unregistered [*SubCommand].
func newSubCommand(name, description string) *SubCommand {
	return &SubCommand{
		Name:        name,
		Description: description,
		byName:      map[string]*Option{},
	}
}

// NewSubCommand creates a [*SubCommand] and registers it with the
// process-global registry. The name must be unique and not empty.
func NewSubCommand(name, description string) *SubCommand {
	configCheck(name != "", "subcommand name must not be empty")
	ctx := defaultContext()
	configCheck(ctx.subs[name] == nil, "subcommand %q already defined", name)
	sub := newSubCommand(name, description)
	ctx.subs[name] = sub
	ctx.subsOrder = append(ctx.subsOrder, sub)
	return sub
}

// TopLevelSubCommand returns the distinguished scope used when the
// command line does not begin with a subcommand name.
func TopLevelSubCommand() *SubCommand {
	return defaultContext().topLevel
}

// AllSubCommands returns the distinguished sentinel scope: an option
// registered with it is visible in the name lookup of every
// subcommand.
func AllSubCommands() *SubCommand {
	return defaultContext().all
}

// Selected returns true when the most recent parse selected this
// subcommand.
func (sc *SubCommand) Selected() bool {
	return sc.active
}

// add inserts the option into the appropriate registry structures.
func (sc *SubCommand) add(o *Option) {
	switch {
	case o.isConsumeAfter():
		configCheck(sc.consumeAfter == nil, "cannot register two consume-after options in the same subcommand")
		sc.consumeAfter = o

	case o.isPositional():
		sc.positionals = append(sc.positionals, o)

	case o.isSink():
		sc.sinks = append(sc.sinks, o)

	default:
		for _, name := range optionNames(o) {
			configCheck(sc.byName[name] == nil, "option %q already defined", name)
			sc.byName[name] = o
		}
	}
	sc.registered = append(sc.registered, o)
}

// removeLast undoes the registration of the most recently registered
// option. Returns false when o is not the most recent one.
func (sc *SubCommand) removeLast(o *Option) bool {
	if len(sc.registered) <= 0 || sc.registered[len(sc.registered)-1] != o {
		return false
	}
	sc.registered = sc.registered[:len(sc.registered)-1]
	switch {
	case o.isConsumeAfter():
		sc.consumeAfter = nil
	case o.isPositional():
		sc.positionals = sc.positionals[:len(sc.positionals)-1]
	case o.isSink():
		sc.sinks = sc.sinks[:len(sc.sinks)-1]
	default:
		for _, name := range optionNames(o) {
			delete(sc.byName, name)
		}
	}
	return true
}

// optionNames returns every name under which the option is matched.
func optionNames(o *Option) []string {
	var names []string
	if o.Name != "" {
		names = append(names, o.Name)
	}
	names = append(names, o.extraNames()...)
	return names
}
