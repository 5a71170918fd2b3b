// doc.go - package documentation.
// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package commandline implements declarative processing of command line
options. Applications declare typed option variables at program scope;
each declaration registers itself with a process-global registry. A
single call to [ParseCommandLineOptions] then consumes the argument
vector, matches tokens against the registered options, parses values
into their storage, and enforces cardinality, positional ordering,
grouping, and subcommand scoping rules.

To use this package proceed as follows:

 1. Declare options as package-scope variables using constructors
    such as [Bool], [Int], [String], [NewOpt], [NewList], [NewBits],
    and [NewAlias], shaping each with modifiers ([Desc], [Init],
    [Required], [Positional], [CommaSeparated], ...).

 2. Call [ParseCommandLineOptions] from main with os.Args.

 3. Read the parsed values through each declared variable.

For example:

	var (
		verbose = commandline.Bool("v", commandline.Desc("enable verbose output"))
		output  = commandline.String("o", commandline.Desc("output file"), commandline.Init("a.out"))
		inputs  = commandline.StringList("", commandline.Positional, commandline.Desc("input files"), commandline.OneOrMore)
	)

	func main() {
		commandline.ParseCommandLineOptions(os.Args)
		// use verbose.Get(), output.Get(), inputs.Get()
	}

# Options

Each option is described by an [*Option] record holding its name, help
text, cardinality ([NumOccurrences]), value expectation
([ValueExpected]), visibility ([OptionHidden]), formatting
([Formatting]), and miscellaneous behavior ([Misc]). Typed wrappers
([Opt], [List], [Bits], [Alias]) attach parsing and storage to the
record.

# Subcommands

A [*SubCommand] scopes options to a named mode selected by the first
argument. [TopLevelSubCommand] is used when no subcommand is named;
registering an option with [AllSubCommands] makes it visible in every
subcommand.

# Error handling

By default parse errors print a diagnostic to the standard error and
terminate the process. Use [WithErrorWriter] to receive the diagnostic
on a writer of choice and get the error returned instead.
*/
package commandline
