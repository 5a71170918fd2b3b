// main.go - miniature toolchain driver built on the commandline package.
// SPDX-License-Identifier: GPL-3.0-or-later

// Command minitc is a miniature toolchain driver demonstrating how
// to declare options at program scope and parse them with a single
// call to [commandline.ParseCommandLineOptions].
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jm-research/commandline"
)

// optLevel is the optimization level selected with --opt-level.
type optLevel int

const (
	optNone = optLevel(iota)
	optDefault
	optAggressive
)

var (
	verbose = commandline.Bool("v",
		commandline.Desc("enable verbose output"),
		commandline.Grouping)

	compileOnly = commandline.Bool("c",
		commandline.Desc("compile without linking"),
		commandline.Grouping)

	debugInfo = commandline.Bool("g",
		commandline.Desc("emit debug information"),
		commandline.Grouping)

	output = commandline.String("o",
		commandline.Desc("write the output to the given file"),
		commandline.Init("a.out"),
		commandline.ValueDesc("file"))

	includes = commandline.StringList("I",
		commandline.Desc("add directories to the include search path"),
		commandline.CommaSeparated,
		commandline.ValueDesc("dir"))

	libPaths = commandline.StringList("L",
		commandline.Desc("add a directory to the library search path"),
		commandline.Prefix,
		commandline.ValueDesc("dir"))

	level = commandline.NewEnum[optLevel]("opt-level",
		commandline.Desc("select the optimization level"),
		commandline.Init(optNone),
		commandline.Values(
			commandline.EnumValue[optLevel]{Name: "none", Value: optNone, Help: "disable optimizations"},
			commandline.EnumValue[optLevel]{Name: "default", Value: optDefault, Help: "enable standard optimizations"},
			commandline.EnumValue[optLevel]{Name: "aggressive", Value: optAggressive, Help: "optimize as much as possible"},
		))

	inputs = commandline.StringList("",
		commandline.Positional,
		commandline.OneOrMore,
		commandline.Desc("input files"),
		commandline.ValueDesc("inputs"))
)

func main() {
	commandline.ParseCommandLineOptions(os.Args,
		commandline.WithOverview("minitc is a miniature toolchain driver "+
			"showing declarative command line processing"),
		commandline.WithEnvVar("MINITC_FLAGS"))

	if verbose.Get() {
		fmt.Fprintf(os.Stderr, "minitc: inputs: %s\n", strings.Join(inputs.Get(), " "))
		fmt.Fprintf(os.Stderr, "minitc: include path: %s\n", strings.Join(includes.Get(), ":"))
		fmt.Fprintf(os.Stderr, "minitc: library path: %s\n", strings.Join(libPaths.Get(), ":"))
	}

	mode := "link"
	if compileOnly.Get() {
		mode = "compile"
	}
	fmt.Printf("%s %s -> %s (opt-level=%d, debug=%v)\n",
		mode, strings.Join(inputs.Get(), " "), output.Get(), level.Get(), debugInfo.Get())
}
