package cli

import (
	"flag"
	"fmt"
	"io"
)

// Output formats for the compare command
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatXLSX  = "xlsx"
	FormatPDF   = "pdf"
)

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port    int // 0 = use config
	Verbose bool
}

// ParseServeFlags parses the serve subcommand's arguments.
func ParseServeFlags(args []string, output io.Writer) (*ServeFlags, error) {
	flags := &ServeFlags{}
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&flags.Port, "port", 0, "Port to listen on (default from config)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

// CompareFlags holds the CLI flags for the offline compare command.
type CompareFlags struct {
	File    string
	Format  string
	Out     string
	Title   string
	Verbose bool
}

// ParseCompareFlags parses the compare subcommand's arguments.
// Binary formats need -out.
func ParseCompareFlags(args []string, output io.Writer) (*CompareFlags, error) {
	flags := &CompareFlags{}
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&flags.File, "file", "", "JSON file with supplier proposals (required)")
	fs.StringVar(&flags.Format, "format", FormatTable, "Output format: table, json, xlsx, pdf")
	fs.StringVar(&flags.Out, "out", "", "Output file (default stdout; required for xlsx and pdf)")
	fs.StringVar(&flags.Title, "title", "Best combination", "Report title for xlsx and pdf")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if flags.File == "" {
		return nil, fmt.Errorf("-file is required")
	}
	switch flags.Format {
	case FormatTable, FormatJSON:
	case FormatXLSX, FormatPDF:
		if flags.Out == "" {
			return nil, fmt.Errorf("-out is required for %s output", flags.Format)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", flags.Format)
	}
	return flags, nil
}
