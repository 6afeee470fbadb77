package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/khmm12/snmp-probe/internal/usecase"
)

type CLI struct {
	Probe Probe `embed:""`
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	return kong.New(cli, append([]kong.Option{
		kong.Name("snmp-probe"),
		kong.Description("Checks whether a host answers SNMP (v1, falling back to v2c) and prints status and response time metrics."),
	}, options...)...)
}

// execute parses args and runs the probe. Parse and validation errors end in
// exit code 1 like any other unexpected error, never in kong's usage code.
func execute(args []string, stdout, stderr io.Writer) int {
	var cli CLI

	parser, err := newParser(&cli, kong.Writers(stdout, stdout))
	if err != nil {
		return fail(stdout, err)
	}

	if _, err := parser.Parse(args); err != nil {
		return fail(stdout, err)
	}

	return run(&cli, stdout, stderr)
}

// run returns the process exit code. Metric lines and error messages go to
// stdout, logs go to stderr.
func run(cli *CLI, stdout, stderr io.Writer) int {
	cmd, err := usecase.ParseCheckSNMPCommand(positionalArgs(cli.Probe.Args))
	if err != nil {
		return fail(stdout, err)
	}

	if err := probe(cli, cmd, stdout, stderr); err != nil {
		return fail(stdout, err)
	}

	return 0
}

// positionalArgs drops the "--" separator that kong keeps in front of
// passthrough arguments, needed when HOST itself starts with a dash.
func positionalArgs(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		return args[1:]
	}

	return args
}

func fail(stdout io.Writer, err error) int {
	_, _ = fmt.Fprintln(stdout, err.Error())

	var invalid *usecase.InvalidArgumentsError
	if errors.As(err, &invalid) {
		return invalid.ExitCode()
	}

	return 1
}
