// parser_test.go - value parser tests.
// SPDX-License-Identifier: GPL-3.0-or-later

package commandline

import (
	"fmt"
	"testing"
)

func TestBoolParser(t *testing.T) {
	type testcase struct {
		input     string
		expect    bool
		expectErr bool
	}
	cases := []testcase{
		{input: "", expect: true},
		{input: "true", expect: true},
		{input: "TRUE", expect: true},
		{input: "1", expect: true},
		{input: "yes", expect: true},
		{input: "YES", expect: true},
		{input: "false", expect: false},
		{input: "FALSE", expect: false},
		{input: "0", expect: false},
		{input: "no", expect: false},
		{input: "antani", expectErr: true},
		{input: "2", expectErr: true},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("input=%q", tc.input), func(t *testing.T) {
			got, err := BoolParser{}.Parse(&Option{Name: "v"}, "v", tc.input)
			switch {
			case tc.expectErr && err == nil:
				t.Fatal("expected an error")
			case !tc.expectErr && err != nil:
				t.Fatal(err)
			case !tc.expectErr && got != tc.expect:
				t.Fatal("expected", tc.expect, "got", got)
			}
		})
	}
}

func TestBoolOrDefaultParser(t *testing.T) {
	type testcase struct {
		input     string
		expect    BoolOrDefault
		expectErr bool
	}
	cases := []testcase{
		{input: "", expect: BoolTrue},
		{input: "true", expect: BoolTrue},
		{input: "no", expect: BoolFalse},
		{input: "antani", expectErr: true},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("input=%q", tc.input), func(t *testing.T) {
			got, err := BoolOrDefaultParser{}.Parse(&Option{Name: "x"}, "x", tc.input)
			switch {
			case tc.expectErr && err == nil:
				t.Fatal("expected an error")
			case !tc.expectErr && err != nil:
				t.Fatal(err)
			case !tc.expectErr && got != tc.expect:
				t.Fatal("expected", tc.expect, "got", got)
			}
		})
	}
}

func TestIntParserBases(t *testing.T) {
	type testcase struct {
		input  string
		expect int
	}
	cases := []testcase{
		{input: "10", expect: 10},
		{input: "-7", expect: -7},
		{input: "0x10", expect: 16},
		{input: "010", expect: 8},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := IntParser{}.Parse(&Option{Name: "n"}, "n", tc.input)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.expect {
				t.Fatal("expected", tc.expect, "got", got)
			}
		})
	}

	t.Run("rejects non-numeric input", func(t *testing.T) {
		if _, err := (IntParser{}).Parse(&Option{Name: "n"}, "n", "antani"); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestCharParser(t *testing.T) {
	got, err := CharParser{}.Parse(&Option{Name: "c"}, "c", "xyz")
	if err != nil {
		t.Fatal(err)
	}
	if got != 'x' {
		t.Fatal("expected x, got", got)
	}

	if _, err := (CharParser{}).Parse(&Option{Name: "c"}, "c", ""); err == nil {
		t.Fatal("expected an error")
	}
}

func TestEnumParser(t *testing.T) {
	px := &EnumParser[int]{}
	px.add(
		EnumValue[int]{Name: "slow", Value: 1},
		EnumValue[int]{Name: "fast", Value: 2},
	)

	t.Run("a named option matches by value", func(t *testing.T) {
		got, err := px.Parse(&Option{Name: "speed"}, "speed", "fast")
		if err != nil {
			t.Fatal(err)
		}
		if got != 2 {
			t.Fatal("expected 2, got", got)
		}
	})

	t.Run("an un-named option matches by name", func(t *testing.T) {
		got, err := px.Parse(&Option{}, "slow", "")
		if err != nil {
			t.Fatal(err)
		}
		if got != 1 {
			t.Fatal("expected 1, got", got)
		}
	})

	t.Run("an unknown literal is an error", func(t *testing.T) {
		if _, err := px.Parse(&Option{Name: "speed"}, "speed", "warp"); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestBitsOption(t *testing.T) {
	resetParser(t)
	bits := NewBits[int]("debug-only",
		Values(
			EnumValue[int]{Name: "lexer", Value: 0},
			EnumValue[int]{Name: "parser", Value: 1},
			EnumValue[int]{Name: "codegen", Value: 2},
		))

	if err := parseQuiet("prog", "-debug-only", "lexer", "-debug-only", "codegen"); err != nil {
		t.Fatal(err)
	}
	if !bits.IsSet(0) || bits.IsSet(1) || !bits.IsSet(2) {
		t.Fatalf("unexpected mask: %b", bits.Mask())
	}
	if bits.Mask() != 0b101 {
		t.Fatalf("expected 0b101, got %b", bits.Mask())
	}
}

func TestBoolOrDefaultOption(t *testing.T) {
	resetParser(t)
	strict := BoolOrDefaultOpt("strict")

	if err := parseQuiet("prog"); err != nil {
		t.Fatal(err)
	}
	if strict.Get() != BoolUnset {
		t.Fatal("expected BoolUnset, got", strict.Get())
	}

	if err := parseQuiet("prog", "-strict=false"); err != nil {
		t.Fatal(err)
	}
	if strict.Get() != BoolFalse {
		t.Fatal("expected BoolFalse, got", strict.Get())
	}
}
