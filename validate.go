// validate.go - post-parse constraint checks.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

// validate runs after the token stream is exhausted and checks the
// occurrence constraints of every option visible in the active
// scope, named and positional alike. It collects every violation so
// that the user learns about all of them at once.
func (ex *engine) validate(active *SubCommand) []error {
	var errs []error
	seen := map[*Option]bool{}

	check := func(o *Option) {
		if seen[o] {
			return
		}
		seen[o] = true

		// Aliases validate through their target.
		if o.forwardTo != nil {
			return
		}

		switch o.Occurrences {
		case Required, OneOrMore:
			if o.numOccurrences <= 0 {
				errs = append(errs, ErrMissingRequired{Option: o})
			}
		}
	}

	for _, o := range active.registered {
		check(o)
	}
	if active != ex.all {
		for _, o := range ex.all.registered {
			check(o)
		}
	}
	return errs
}
