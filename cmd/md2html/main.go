package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if wantsVerbose(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(context.Background(), os.Args, DefaultEnv(), newConverterPool))
}

// runMain dispatches the subcommand and returns the process exit code.
// A first argument that looks like a markdown file runs convert.
func runMain(ctx context.Context, args []string, env *Environment, newPool poolFactory) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if looksLikeMarkdown(cmd) {
		cmd, rest = "convert", args[1:]
	}

	switch cmd {
	case "convert":
		ctx, stop := notifyContext(ctx)
		defer stop()

		if err := runConvertCmd(ctx, rest, env, newPool); err != nil {
			fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
			return exitCodeFor(err)
		}
		return ExitSuccess
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2html %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// looksLikeMarkdown reports whether arg names a markdown file rather than a command.
func looksLikeMarkdown(arg string) bool {
	return fileutil.IsMarkdown(arg)
}

// wantsVerbose scans raw arguments for -v or --verbose before flag parsing.
func wantsVerbose(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" || a == "--verbose=true" {
			return true
		}
	}
	return false
}
