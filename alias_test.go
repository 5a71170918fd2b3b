// alias_test.go - alias forwarding tests.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAliasTransparency(t *testing.T) {
	t.Run("storage effects and counts accrue on the target", func(t *testing.T) {
		resetParser(t)
		includes := StringList("include-dir")
		NewAlias("I", AliasFor(&includes.Option))

		if err := parseQuiet("prog", "-I", "a", "--include-dir", "b"); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"a", "b"}, includes.Get()); diff != "" {
			t.Fatal(diff)
		}
		if includes.OccurrencesSeen() != 2 {
			t.Fatal("expected 2 occurrences on the target, got", includes.OccurrencesSeen())
		}
	})

	t.Run("cardinality is enforced by the target", func(t *testing.T) {
		resetParser(t)
		output := String("output")
		NewAlias("o", AliasFor(&output.Option))

		err := parseQuiet("prog", "-o", "a", "--output", "b")
		var dup ErrDuplicateOccurrence
		if !errors.As(err, &dup) {
			t.Fatalf("cannot convert error to ErrDuplicateOccurrence: %v", err)
		}
		if dup.Option != &output.Option {
			t.Fatal("expected the duplicate to be reported on the target")
		}
	})

	t.Run("the alias inherits the target value expectation", func(t *testing.T) {
		resetParser(t)
		output := String("output")
		NewAlias("o", AliasFor(&output.Option))

		if err := parseQuiet("prog", "-o=value"); err != nil {
			t.Fatal(err)
		}
		if output.Get() != "value" {
			t.Fatal("expected value, got", output.Get())
		}
	})

	t.Run("aliases are hidden by default", func(t *testing.T) {
		resetParser(t)
		output := String("output")
		alias := NewAlias("o", AliasFor(&output.Option))

		if alias.Hidden != Hidden {
			t.Fatal("expected the alias to be hidden")
		}
	})
}
