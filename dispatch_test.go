// dispatch_test.go - dispatch loop tests.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// resetParser gives each test an empty registry world.
func resetParser(t *testing.T) {
	t.Helper()
	ResetCommandLineParser()
	t.Cleanup(ResetCommandLineParser)
}

// parseQuiet parses discarding diagnostics.
func parseQuiet(argv ...string) error {
	return ParseCommandLineOptions(argv, WithErrorWriter(io.Discard), WithOutput(io.Discard))
}

func TestParseScalarAndBool(t *testing.T) {
	t.Run("required int and optional bool are assigned", func(t *testing.T) {
		resetParser(t)
		n := Int("n", Required, Desc("the count"))
		v := Bool("v", Desc("enable verbosity"))

		if err := parseQuiet("prog", "-n", "7", "-v"); err != nil {
			t.Fatal(err)
		}
		if n.Get() != 7 {
			t.Fatal("expected 7, got", n.Get())
		}
		if v.Get() != true {
			t.Fatal("expected true, got", v.Get())
		}
	})

	t.Run("missing required option is reported", func(t *testing.T) {
		resetParser(t)
		n := Int("n", Required)
		v := Bool("v")

		err := parseQuiet("prog", "-v=false")
		var missing ErrMissingRequired
		if !errors.As(err, &missing) {
			t.Fatalf("cannot convert error to ErrMissingRequired: %v", err)
		}
		if missing.Option != &n.Option {
			t.Fatal("the missing option is not -n")
		}
		if v.Get() != false {
			t.Fatal("expected false, got", v.Get())
		}
	})

	t.Run("the value may follow inline after an equals sign", func(t *testing.T) {
		resetParser(t)
		n := Int("n", Required)

		if err := parseQuiet("prog", "-n=42"); err != nil {
			t.Fatal(err)
		}
		if n.Get() != 42 {
			t.Fatal("expected 42, got", n.Get())
		}
	})

	t.Run("a negative number can be the value of an option", func(t *testing.T) {
		resetParser(t)
		n := Int("n", Required)

		if err := parseQuiet("prog", "-n", "-5"); err != nil {
			t.Fatal(err)
		}
		if n.Get() != -5 {
			t.Fatal("expected -5, got", n.Get())
		}
	})

	t.Run("a parser failure carries the option and the raw value", func(t *testing.T) {
		resetParser(t)
		Int("n", Required)

		err := parseQuiet("prog", "-n", "antani")
		var failure ErrParseFailure
		if !errors.As(err, &failure) {
			t.Fatalf("cannot convert error to ErrParseFailure: %v", err)
		}
		if failure.Value != "antani" {
			t.Fatal("expected antani, got", failure.Value)
		}
	})
}

func TestParseCommaSeparatedList(t *testing.T) {
	resetParser(t)
	includes := StringList("I", CommaSeparated)

	if err := parseQuiet("prog", "-I", "a,b", "-I", "c"); err != nil {
		t.Fatal(err)
	}
	expect := []string{"a", "b", "c"}
	if diff := cmp.Diff(expect, includes.Get()); diff != "" {
		t.Fatal(diff)
	}
}

func TestParsePositionalAndConsumeAfter(t *testing.T) {
	cases := []struct {
		name string
		argv []string
	}{
		{
			name: "with the options-arguments separator",
			argv: []string{"prog", "a.out", "--", "-x", "-y"},
		},
		{
			name: "without the separator",
			argv: []string{"prog", "a.out", "-x", "-y"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resetParser(t)
			file := String("", Positional, Required, ValueDesc("file"))
			rest := StringList("", ConsumeAfter, ValueDesc("args"))

			if err := parseQuiet(tc.argv...); err != nil {
				t.Fatal(err)
			}
			if file.Get() != "a.out" {
				t.Fatal("expected a.out, got", file.Get())
			}
			if diff := cmp.Diff([]string{"-x", "-y"}, rest.Get()); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestParseConsumeAfterRequiresPositional(t *testing.T) {
	resetParser(t)
	StringList("", ConsumeAfter)

	err := parseQuiet("prog", "whatever")
	var bad ErrConsumeAfterWithoutPositional
	if !errors.As(err, &bad) {
		t.Fatalf("cannot convert error to ErrConsumeAfterWithoutPositional: %v", err)
	}
}

func TestParseGroupedShortOptions(t *testing.T) {
	t.Run("grouping equals separate flags", func(t *testing.T) {
		for _, argv := range [][]string{
			{"prog", "-lax"},
			{"prog", "-l", "-a", "-x"},
		} {
			resetParser(t)
			long := Bool("l", Grouping)
			all := Bool("a", Grouping)
			extra := Bool("x", Grouping)

			if err := parseQuiet(argv...); err != nil {
				t.Fatal(err)
			}
			if !long.Get() || !all.Get() || !extra.Get() {
				t.Fatal("expected all three flags to be true")
			}
		}
	})

	t.Run("an unknown character in the group is an error", func(t *testing.T) {
		resetParser(t)
		Bool("l", Grouping)

		err := parseQuiet("prog", "-lz")
		var unknown ErrUnknownOption
		if !errors.As(err, &unknown) {
			t.Fatalf("cannot convert error to ErrUnknownOption: %v", err)
		}
		if unknown.Name != "z" {
			t.Fatal("expected z, got", unknown.Name)
		}
	})

	t.Run("the final group member may take the rest as its value", func(t *testing.T) {
		resetParser(t)
		verbose := Bool("v", Grouping)
		outfile := String("f", Grouping)

		if err := parseQuiet("prog", "-vfFILE"); err != nil {
			t.Fatal(err)
		}
		if !verbose.Get() {
			t.Fatal("expected true, got", verbose.Get())
		}
		if outfile.Get() != "FILE" {
			t.Fatal("expected FILE, got", outfile.Get())
		}
	})

	t.Run("the final group member may take the next token as its value", func(t *testing.T) {
		resetParser(t)
		verbose := Bool("v", Grouping)
		outfile := String("f", Grouping)

		if err := parseQuiet("prog", "-vf", "FILE"); err != nil {
			t.Fatal(err)
		}
		if !verbose.Get() {
			t.Fatal("expected true, got", verbose.Get())
		}
		if outfile.Get() != "FILE" {
			t.Fatal("expected FILE, got", outfile.Get())
		}
	})
}

func TestParsePrefixOptions(t *testing.T) {
	t.Run("the suffix supplies the value", func(t *testing.T) {
		resetParser(t)
		libPath := StringList("L", Prefix)

		if err := parseQuiet("prog", "-L/usr/lib"); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"/usr/lib"}, libPath.Get()); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("the inline form also works for plain prefix options", func(t *testing.T) {
		resetParser(t)
		libPath := StringList("L", Prefix)

		if err := parseQuiet("prog", "-L=/usr/lib"); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"/usr/lib"}, libPath.Get()); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("always-prefix rejects the inline form", func(t *testing.T) {
		resetParser(t)
		StringList("L", AlwaysPrefix)

		err := parseQuiet("prog", "-L=/usr/lib")
		var unexpected ErrUnexpectedValue
		if !errors.As(err, &unexpected) {
			t.Fatalf("cannot convert error to ErrUnexpectedValue: %v", err)
		}
	})

	t.Run("the longest registered prefix wins", func(t *testing.T) {
		resetParser(t)
		short := StringList("L", Prefix)
		long := StringList("Lpath", Prefix)

		if err := parseQuiet("prog", "-Lpath/to/x"); err != nil {
			t.Fatal(err)
		}
		if len(short.Get()) != 0 {
			t.Fatal("expected -L to stay empty, got", short.Get())
		}
		if diff := cmp.Diff([]string{"/to/x"}, long.Get()); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("a bare prefix option with a required value is an error", func(t *testing.T) {
		resetParser(t)
		StringList("L", Prefix)

		err := parseQuiet("prog", "-L")
		var missing ErrMissingValue
		if !errors.As(err, &missing) {
			t.Fatalf("cannot convert error to ErrMissingValue: %v", err)
		}
	})
}

func TestParseSubCommands(t *testing.T) {
	t.Run("each subcommand sees only its own options", func(t *testing.T) {
		resetParser(t)
		build := NewSubCommand("build", "build the project")
		test := NewSubCommand("test", "run the tests")
		buildVerbose := Bool("v", Sub(build))
		testVerbose := Bool("v", Sub(test))

		if err := parseQuiet("prog", "build", "-v"); err != nil {
			t.Fatal(err)
		}
		if !build.Selected() || test.Selected() {
			t.Fatal("expected the build subcommand to be selected")
		}
		if !buildVerbose.Get() {
			t.Fatal("expected true, got", buildVerbose.Get())
		}
		if testVerbose.Get() {
			t.Fatal("expected false, got", testVerbose.Get())
		}
	})

	t.Run("a subcommand option is unknown at top level", func(t *testing.T) {
		resetParser(t)
		build := NewSubCommand("build", "build the project")
		Bool("v", Sub(build))

		err := parseQuiet("prog", "-v")
		var unknown ErrUnknownOption
		if !errors.As(err, &unknown) {
			t.Fatalf("cannot convert error to ErrUnknownOption: %v", err)
		}
	})

	t.Run("all-subcommands options are visible everywhere", func(t *testing.T) {
		resetParser(t)
		build := NewSubCommand("build", "build the project")
		_ = build
		quiet := Bool("q", Sub(AllSubCommands()))

		if err := parseQuiet("prog", "build", "-q"); err != nil {
			t.Fatal(err)
		}
		if !quiet.Get() {
			t.Fatal("expected true, got", quiet.Get())
		}

		if err := parseQuiet("prog", "-q"); err != nil {
			t.Fatal(err)
		}
		if !quiet.Get() {
			t.Fatal("expected true, got", quiet.Get())
		}
	})
}

func TestParseSink(t *testing.T) {
	resetParser(t)
	leftover := StringList("", Sink)
	verbose := Bool("v")

	if err := parseQuiet("prog", "-unknown", "-v", "stray"); err != nil {
		t.Fatal(err)
	}
	if !verbose.Get() {
		t.Fatal("expected true, got", verbose.Get())
	}
	if diff := cmp.Diff([]string{"-unknown", "stray"}, leftover.Get()); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseMultiArg(t *testing.T) {
	resetParser(t)
	pairs := StringList("D", MultiArg(1))

	if err := parseQuiet("prog", "-D", "key", "value"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"key", "value"}, pairs.Get()); diff != "" {
		t.Fatal(diff)
	}
	if pairs.OccurrencesSeen() != 1 {
		t.Fatal("expected 1 occurrence, got", pairs.OccurrencesSeen())
	}

	t.Run("a missing additional value is an error", func(t *testing.T) {
		err := parseQuiet("prog", "-D", "key")
		var missing ErrMissingValue
		if !errors.As(err, &missing) {
			t.Fatalf("cannot convert error to ErrMissingValue: %v", err)
		}
	})
}

func TestParseDuplicateOccurrence(t *testing.T) {
	t.Run("a second occurrence of an optional option is an error", func(t *testing.T) {
		resetParser(t)
		String("o")

		err := parseQuiet("prog", "-o", "a", "-o", "b")
		var dup ErrDuplicateOccurrence
		if !errors.As(err, &dup) {
			t.Fatalf("cannot convert error to ErrDuplicateOccurrence: %v", err)
		}
	})

	t.Run("default-option allows later occurrences to override", func(t *testing.T) {
		resetParser(t)
		color := String("color", DefaultOption)

		if err := parseQuiet("prog", "-color", "red", "-color", "blue", "-color", "green"); err != nil {
			t.Fatal(err)
		}
		if color.Get() != "green" {
			t.Fatal("expected green, got", color.Get())
		}
	})
}

func TestParsePositionalOrdering(t *testing.T) {
	resetParser(t)
	first := String("", Positional, Required, ValueDesc("first"))
	rest := StringList("", Positional, ValueDesc("rest"))

	if err := parseQuiet("prog", "a", "b", "c"); err != nil {
		t.Fatal(err)
	}
	if first.Get() != "a" {
		t.Fatal("expected a, got", first.Get())
	}
	if diff := cmp.Diff([]string{"b", "c"}, rest.Get()); diff != "" {
		t.Fatal(diff)
	}
	if first.LastPosition() > rest.LastPosition() {
		t.Fatal("expected the first positional to match before the second")
	}

	t.Run("leftover positional values are an error", func(t *testing.T) {
		resetParser(t)
		String("", Positional, ValueDesc("only"))

		err := parseQuiet("prog", "a", "b")
		var toomany ErrTooManyPositionalArguments
		if !errors.As(err, &toomany) {
			t.Fatalf("cannot convert error to ErrTooManyPositionalArguments: %v", err)
		}
		if diff := cmp.Diff([]string{"b"}, toomany.Values); diff != "" {
			t.Fatal(diff)
		}
	})
}

func TestParsePositionalEatsArgs(t *testing.T) {
	resetParser(t)
	script := String("", Positional, Required, ValueDesc("script"))
	scriptArgs := StringList("", Positional, PositionalEatsArgs, ValueDesc("args"))

	if err := parseQuiet("prog", "run.sh", "-foo", "bar"); err != nil {
		t.Fatal(err)
	}
	if script.Get() != "run.sh" {
		t.Fatal("expected run.sh, got", script.Get())
	}
	if diff := cmp.Diff([]string{"-foo", "bar"}, scriptArgs.Get()); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseDoubleDashMode(t *testing.T) {
	t.Run("single-dash long options are rejected", func(t *testing.T) {
		resetParser(t)
		Bool("color")

		err := ParseCommandLineOptions([]string{"prog", "-color"},
			WithErrorWriter(io.Discard), WithLongOptionsUseDoubleDash(true))
		var unknown ErrUnknownOption
		if !errors.As(err, &unknown) {
			t.Fatalf("cannot convert error to ErrUnknownOption: %v", err)
		}
	})

	t.Run("double-dash long options still work", func(t *testing.T) {
		resetParser(t)
		color := Bool("color")

		err := ParseCommandLineOptions([]string{"prog", "--color"},
			WithErrorWriter(io.Discard), WithLongOptionsUseDoubleDash(true))
		if err != nil {
			t.Fatal(err)
		}
		if !color.Get() {
			t.Fatal("expected true, got", color.Get())
		}
	})
}

func TestParseEnvironmentVariable(t *testing.T) {
	resetParser(t)
	color := String("color", DefaultOption)
	includes := StringList("I")

	t.Setenv("PROG_FLAGS", "-color red -I one")
	err := ParseCommandLineOptions([]string{"prog", "-color", "blue", "-I", "two"},
		WithErrorWriter(io.Discard), WithEnvVar("PROG_FLAGS"))
	if err != nil {
		t.Fatal(err)
	}

	// explicit arguments come later and therefore win
	if color.Get() != "blue" {
		t.Fatal("expected blue, got", color.Get())
	}
	if diff := cmp.Diff([]string{"one", "two"}, includes.Get()); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseExpander(t *testing.T) {
	resetParser(t)
	verbose := Bool("v")

	expander := func(args []string) ([]string, error) {
		var out []string
		for _, arg := range args {
			if arg == "@flags" {
				out = append(out, "-v")
				continue
			}
			out = append(out, arg)
		}
		return out, nil
	}

	err := ParseCommandLineOptions([]string{"prog", "@flags"},
		WithErrorWriter(io.Discard), WithExpander(expander))
	if err != nil {
		t.Fatal(err)
	}
	if !verbose.Get() {
		t.Fatal("expected true, got", verbose.Get())
	}
}

func TestParseReparseIdempotence(t *testing.T) {
	resetParser(t)
	n := Int("n", Required)
	includes := StringList("I")

	argv := []string{"prog", "-n", "3", "-I", "x", "-I", "y"}
	if err := parseQuiet(argv...); err != nil {
		t.Fatal(err)
	}
	firstN, firstI := n.Get(), append([]string{}, includes.Get()...)

	ResetAllOptionOccurrences()
	if n.Get() != 0 || len(includes.Get()) != 0 || n.OccurrencesSeen() != 0 {
		t.Fatal("expected the reset to restore the defaults")
	}

	if err := parseQuiet(argv...); err != nil {
		t.Fatal(err)
	}
	if n.Get() != firstN {
		t.Fatal("expected", firstN, "got", n.Get())
	}
	if diff := cmp.Diff(firstI, includes.Get()); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseUnknownOptionDiagnostic(t *testing.T) {
	resetParser(t)
	Bool("v")

	var sb strings.Builder
	err := ParseCommandLineOptions([]string{"prog", "--nope"}, WithErrorWriter(&sb))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(sb.String(), "prog: unknown option: --nope") {
		t.Fatalf("unexpected diagnostic: %q", sb.String())
	}
	if !strings.Contains(sb.String(), "Try 'prog --help'") {
		t.Fatalf("expected a help hint, got: %q", sb.String())
	}
}

func TestParseMissingProgramName(t *testing.T) {
	resetParser(t)
	err := ParseCommandLineOptions([]string{}, WithErrorWriter(io.Discard))
	if !errors.Is(err, ErrMissingProgramName) {
		t.Fatal("expected ErrMissingProgramName, got", err)
	}
}

func TestParseUnnamedEnumReceptacle(t *testing.T) {
	resetParser(t)
	level := NewEnum[int]("",
		Desc("optimization level"),
		Values(
			EnumValue[int]{Name: "O0", Value: 0, Help: "no optimization"},
			EnumValue[int]{Name: "O1", Value: 1, Help: "some optimization"},
			EnumValue[int]{Name: "O2", Value: 2, Help: "more optimization"},
		))

	if err := parseQuiet("prog", "-O2"); err != nil {
		t.Fatal(err)
	}
	if level.Get() != 2 {
		t.Fatal("expected 2, got", level.Get())
	}
}
