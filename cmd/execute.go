package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"wabbit/common"
	"wabbit/programs"
	"wabbit/report"

	"github.com/ComedicChimera/olive"
)

// Execute is the main entry point for the `wabbit` CLI utility
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("wabbit", "wabbit checks, lowers and runs Wabbit programs", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, logLevelNames)

	runCmd := cli.AddSubcommand("run", "run a program on the register machine", true)
	runCmd.AddPrimaryArg("program", "the name of the program to run", true)

	irCmd := cli.AddSubcommand("ir", "print the IR of a program", true)
	irCmd.AddPrimaryArg("program", "the name of the program to lower", true)

	llvmCmd := cli.AddSubcommand("llvm", "export a program as LLVM IR", true)
	llvmCmd.AddPrimaryArg("program", "the name of the program to export", true)
	llvmCmd.AddStringArg("output", "o", "the path to write the LLVM IR to", false)

	checkCmd := cli.AddSubcommand("check", "check a program and report errors", true)
	checkCmd.AddPrimaryArg("program", "the name of the program to check", true)

	astCmd := cli.AddSubcommand("ast", "print the source and syntax tree of a program", true)
	astCmd.AddPrimaryArg("program", "the name of the program to print", true)

	cli.AddSubcommand("list", "list the available programs", false)
	cli.AddSubcommand("version", "print the Wabbit version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal("%s", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		report.ReportFatal("error getting working directory: %s", err)
	}

	config, err := LoadConfig(workDir)
	if err != nil {
		report.ReportFatal("%s", err)
	}

	// the command line log level overrides the configured one
	if loglevel, ok := result.Arguments["loglevel"]; ok {
		config.Report.LogLevel = loglevel.(string)
	}

	report.InitReporter(config.logLevel())

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "run":
		os.Exit(execRunCommand(subResult, config))
	case "ir", "llvm", "check", "ast":
		if !execPipelineCommand(subcmdName, subResult, config) {
			os.Exit(1)
		}
	case "list":
		execListCommand()
	case "version":
		report.ReportInfo("Wabbit Version", common.WabbitVersion)
	}
}

// lookupProgram looks up the program named by the primary argument.
func lookupProgram(result *olive.ArgParseResult) *programs.Program {
	name, _ := result.PrimaryArg()

	prog, ok := programs.Lookup(name)
	if !ok {
		report.ReportFatal("unknown program: `%s` (use `wabbit list` to see all programs)", name)
	}

	return prog
}

// execRunCommand executes the run subcommand and returns the exit status.
func execRunCommand(result *olive.ArgParseResult, config *Config) int {
	c := NewCompiler(lookupProgram(result), config, os.Stdout)

	status, ok := c.Run()
	report.ReportFinished()

	if !ok {
		return 1
	}

	return status
}

// execPipelineCommand executes one of the subcommands which stop before
// execution.
func execPipelineCommand(subcmdName string, result *olive.ArgParseResult, config *Config) bool {
	c := NewCompiler(lookupProgram(result), config, os.Stdout)

	var ok bool
	switch subcmdName {
	case "ir":
		ok = c.DumpIR()
	case "llvm":
		outPath := ""
		if outArg, hasOut := result.Arguments["output"]; hasOut {
			outPath = outArg.(string)
		}

		ok = c.EmitLLVM(outPath)
	case "check":
		_, ok = c.Analyze()
		report.ReportFinished()
	case "ast":
		c.DumpAST()
		ok = true
	}

	return ok
}

// execListCommand prints every available program.
func execListCommand() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	for _, prog := range programs.All() {
		status := "runs"
		if !prog.Valid() {
			status = "rejected"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\n", prog.Name, status, prog.Summary)
	}

	w.Flush()
}
