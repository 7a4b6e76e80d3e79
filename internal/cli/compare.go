package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/eshaffer321/quote-optimizer/internal/application/service"
	"github.com/eshaffer321/quote-optimizer/internal/domain/combination"
	"github.com/eshaffer321/quote-optimizer/internal/export"
	"github.com/eshaffer321/quote-optimizer/internal/infrastructure/config"
	"github.com/eshaffer321/quote-optimizer/internal/infrastructure/logging"
)

// RunCompare computes the best combination for proposals read from a file
// and writes it in the requested format. Table and JSON go to stdout unless
// -out is set.
func RunCompare(cfg *config.Config, flags *CompareFlags, stdout io.Writer) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerTo(os.Stderr, loggingCfg)

	proposals, err := LoadProposals(flags.File)
	if err != nil {
		return err
	}
	logger.Debug("loaded proposals", "file", flags.File, "count", len(proposals))

	comparisons := service.NewComparisonService(nil, cfg.Calculator.TotalTolerance, logger)
	result, validations, err := comparisons.CompareProposals(proposals)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch flags.Format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(result)
	case FormatXLSX:
		err = export.WriteXLSX(&buf, flags.Title, result)
	case FormatPDF:
		err = export.WritePDF(&buf, flags.Title, result)
	default:
		PrintComparison(&buf, result, validations)
	}
	if err != nil {
		return err
	}

	if flags.Out == "" {
		_, err = stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(flags.Out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", flags.Out, err)
	}
	fmt.Fprintf(stdout, "Wrote %s (%d bytes)\n", flags.Out, buf.Len())
	return nil
}

// LoadProposals reads proposals from a JSON file holding either an array of
// proposals or an object with a "proposals" array.
func LoadProposals(path string) ([]combination.Proposal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var proposals []combination.Proposal
		if err := json.Unmarshal(data, &proposals); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return proposals, nil
	}

	var wrapper struct {
		Proposals []combination.Proposal `json:"proposals"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return wrapper.Proposals, nil
}
