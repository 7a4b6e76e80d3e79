package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/eshaffer321/quote-optimizer/internal/cli"
	"github.com/eshaffer321/quote-optimizer/internal/infrastructure/config"
	"github.com/eshaffer321/quote-optimizer/internal/infrastructure/logging"
)

func main() {
	var configFile string

	// Global flags
	flag.StringVar(&configFile, "config", "", "Configuration file path")
	flag.Usage = printUsage
	flag.Parse()

	// Get subcommand
	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	subcommand := args[0]
	subArgs := args[1:]

	cfg := loadConfig(configFile)
	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "cli")

	var err error
	switch subcommand {
	case "serve":
		var flags *cli.ServeFlags
		if flags, err = cli.ParseServeFlags(subArgs, os.Stderr); err == nil {
			err = cli.RunServe(cfg, flags)
		}
	case "compare":
		var flags *cli.CompareFlags
		if flags, err = cli.ParseCompareFlags(subArgs, os.Stderr); err == nil {
			err = cli.RunCompare(cfg, flags, os.Stdout)
		}
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Printf("Unknown subcommand: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Error("command failed", "command", subcommand, slog.Any("error", err))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Quote Optimizer")
	fmt.Println("===============")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  quote-optimizer [-config file] <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve                     Run the HTTP API")
	fmt.Println("      -port int             Port to listen on (default from config)")
	fmt.Println("      -verbose              Debug logging")
	fmt.Println("  compare                   Compute the best combination from a JSON file")
	fmt.Println("      -file string          Proposals file (required)")
	fmt.Println("      -format string        table, json, xlsx or pdf (default table)")
	fmt.Println("      -out string           Output file (required for xlsx and pdf)")
	fmt.Println("      -title string         Report title")
	fmt.Println()
	fmt.Println("Global Options:")
	fmt.Println("  -config string            Configuration file path")
}

// loadConfig uses the named file, then config.yaml/config.yml in the working
// directory, then environment variables.
func loadConfig(configFile string) *config.Config {
	if configFile == "" {
		for _, candidate := range []string{"config.yaml", "config.yml"} {
			if _, err := os.Stat(candidate); err == nil {
				configFile = candidate
				break
			}
		}
	}

	if configFile == "" {
		return config.LoadFromEnv()
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config %s: %v\n", configFile, err)
		os.Exit(1)
	}
	return cfg
}
