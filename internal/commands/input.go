package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/noel97chan-creator/IFRS16calculator/internal/validators"
)

// leaseFile is the YAML shape accepted by --input.
type leaseFile struct {
	Payment           *float64 `yaml:"payment"`
	TermPeriods       *int     `yaml:"term_periods"`
	AnnualRatePercent *float64 `yaml:"annual_rate_percent"`
	Timing            string   `yaml:"timing"`
}

// leaseFlags holds the raw lease parameters shared by schedule and compare.
type leaseFlags struct {
	raw       validators.RawInput
	inputPath string
}

func (f *leaseFlags) register(cmd *cobra.Command, withTiming bool) {
	cmd.Flags().StringVar(&f.raw.Payment, "payment", "", "periodic lease payment")
	cmd.Flags().StringVar(&f.raw.TermPeriods, "term", "", "lease term in months")
	cmd.Flags().StringVar(&f.raw.AnnualRatePercent, "rate", "", "annual discount rate, percent")
	if withTiming {
		cmd.Flags().StringVar(&f.raw.Timing, "timing", "end", "payment timing: end (arrears) or start (due)")
	}
	cmd.Flags().StringVar(&f.inputPath, "input", "", "YAML file with lease parameters; flags override its values")
}

// resolve merges the YAML file (if any) under explicitly set flags.
func (f *leaseFlags) resolve(cmd *cobra.Command) (validators.RawInput, error) {
	raw := f.raw
	if f.inputPath == "" {
		return raw, nil
	}

	data, err := os.ReadFile(f.inputPath)
	if err != nil {
		return raw, fmt.Errorf("reading %s: %w", f.inputPath, err)
	}
	var lf leaseFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return raw, fmt.Errorf("parsing %s: %w", f.inputPath, err)
	}

	flags := cmd.Flags()
	if lf.Payment != nil && !flags.Changed("payment") {
		raw.Payment = strconv.FormatFloat(*lf.Payment, 'f', -1, 64)
	}
	if lf.TermPeriods != nil && !flags.Changed("term") {
		raw.TermPeriods = strconv.Itoa(*lf.TermPeriods)
	}
	if lf.AnnualRatePercent != nil && !flags.Changed("rate") {
		raw.AnnualRatePercent = strconv.FormatFloat(*lf.AnnualRatePercent, 'f', -1, 64)
	}
	if lf.Timing != "" && !flags.Changed("timing") {
		raw.Timing = lf.Timing
	}
	return raw, nil
}
