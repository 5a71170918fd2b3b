// alias.go - alias options forwarding to a target.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

// Alias is a thin forwarder: every occurrence matched under the
// alias name is dispatched to the target option, so storage effects
// and occurrence counts accrue on the target. Aliases are hidden by
// default and copy their categories and subcommand membership from
// the target unless overridden by modifiers.
type Alias struct {
	// Option is the embedded option record.
	Option

	// target is the option occurrences are forwarded to.
	target *Option
}

// AliasTarget carries the target of an alias. Use [AliasFor] to
// construct it.
type AliasTarget struct {
	// Target is the option the alias forwards to.
	Target *Option
}

// AliasFor declares the target of an alias created with [NewAlias].
func AliasFor(target *Option) AliasTarget {
	configCheck(target != nil, "AliasFor requires a non-nil target")
	return AliasTarget{Target: target}
}

// NewAlias creates an alias option, applies the modifiers, and
// registers the alias with the process-global registry. The
// modifiers MUST include [AliasFor] and the target MUST already be
// registered.
func NewAlias(name string, mods ...any) *Alias {
	configCheck(name != "", "alias name must not be empty")
	ax := &Alias{}
	ax.Name = name
	ax.Hidden = Hidden
	applyMods(&ax.Option, mods, func(m any) bool {
		if v, ok := m.(AliasTarget); ok {
			ax.target = v.Target
			return true
		}
		return false
	})
	configCheck(ax.target != nil, "alias %q requires an AliasFor target", name)
	configCheck(ax.target.fullyInitialized, "alias %q target must be registered before the alias", name)

	// Aliases never enforce cardinality locally: the target does.
	ax.Occurrences = ZeroOrMore
	ax.forwardTo = ax.target
	if len(ax.Categories) <= 0 {
		ax.Categories = append([]*Category{}, ax.target.Categories...)
	}
	if len(ax.Subs) <= 0 {
		ax.Subs = append([]*SubCommand{}, ax.target.Subs...)
	}
	ax.Option.value = aliasValue{target: ax.target}
	registerOption(&ax.Option)
	return ax
}

// aliasValue delegates the [Value] contract to the alias target. The
// Set method is unreachable because occurrence forwarding happens at
// the option level, but it delegates too for good measure.
type aliasValue struct {
	target *Option
}

var _ Value = aliasValue{}

// Set implements [Value].
func (av aliasValue) Set(opt *Option, name, value string) error {
	return av.target.value.Set(av.target, name, value)
}

// Accepts implements [Value].
func (av aliasValue) Accepts(value string) bool {
	return av.target.value.Accepts(value)
}

// Reset implements [Value].
func (av aliasValue) Reset() {
	// the target resets itself
}

// DefaultValueExpected implements [Value].
func (av aliasValue) DefaultValueExpected() ValueExpected {
	return av.target.effectiveValueExpected()
}

// String implements [Value].
func (av aliasValue) String() string {
	return av.target.value.String()
}
