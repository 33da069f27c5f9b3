package main

import (
	"fmt"
	"io"
	"os"
)

// Supported subcommands:
// - crypt:  hash a password with the configured (or flagged) parameters
// - check:  verify a password against a stored hash
// - info:   print the parameters embedded in a hash
// - rehash: report whether a hash is outdated for the current parameters

const (
	exitOK       = 0
	exitMismatch = 1
	exitError    = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitError
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printUsage(stderr)
		return exitError
	}

	env := &cmdEnv{stdin: stdin, stdout: stdout, stderr: stderr}
	code, err := cmd(env, args[1:])
	if err != nil {
		if env.logger != nil {
			env.logger.Error("command failed", "command", args[0], "error", err)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitError
	}
	return code
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: fshp <command> [flags]

Commands:
  crypt   Hash a password read from the terminal or stdin
  check   Verify a password against -hash (exit 0 match, 1 mismatch)
  info    Print the parameters embedded in -hash as JSON
  rehash  Report whether -hash uses other parameters than configured

Common flags:
  -config PATH   YAML config (default $FSHP_CONFIG or ./fshp.yaml)

Environment:
  FSHP_HASH_VARIANT, FSHP_HASH_ROUNDS, FSHP_HASH_SALTLEN,
  FSHP_LOG_LEVEL, FSHP_LOG_PRETTY`)
}
