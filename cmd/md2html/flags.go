package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds conversion behavior flags.
type renderFlags struct {
	engine     string
	extensions []string
	safe       bool
	safeSet    bool // --safe given explicitly, possibly as --safe=false
	pdf        bool
	pdfSet     bool
	timeout    string
}

// filterFlags holds doublestar include/exclude patterns for directory input.
type filterFlags struct {
	include []string
	exclude []string
}

// logFlags holds diagnostic logging flags.
type logFlags struct {
	level  string
	format string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	render  renderFlags
	filter  filterFlags
	log     logFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug diagnostics")
}

// addRenderFlags adds conversion flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.engine, "engine", "", "renderer: native, goldmark")
	fs.StringArrayVarP(&f.extensions, "ext", "e", nil, "enable a named extension (repeatable)")
	fs.BoolVar(&f.safe, "safe", false, "neutralize javascript:, vbscript: and data: URLs")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF next to each HTML file")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g., 30s, 2m)")
}

// addFilterFlags adds file selection flags to a FlagSet.
func addFilterFlags(fs *flag.FlagSet, f *filterFlags) {
	fs.StringArrayVar(&f.include, "include", nil, "only convert files matching glob (repeatable)")
	fs.StringArrayVar(&f.exclude, "exclude", nil, "skip files matching glob (repeatable)")
}

// addLogFlags adds logging flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "diagnostic level: debug, info, warn, error, critical")
	fs.StringVar(&f.format, "log-format", "", "diagnostic format: text, json")
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage and parse errors are written to usageOut.
func parseConvertFlags(args []string, usageOut io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addFilterFlags(fs, &f.filter)
	addLogFlags(fs, &f.log)

	fs.Usage = func() { printConvertUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.render.safeSet = fs.Changed("safe")
	f.render.pdfSet = fs.Changed("pdf")
	return f, fs.Args(), nil
}
