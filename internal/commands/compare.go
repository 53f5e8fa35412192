package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/noel97chan-creator/IFRS16calculator/internal/calculations"
	"github.com/noel97chan-creator/IFRS16calculator/internal/config"
	"github.com/noel97chan-creator/IFRS16calculator/internal/export"
	"github.com/noel97chan-creator/IFRS16calculator/internal/validators"
)

func newCompareCommand() *cobra.Command {
	var lease leaseFlags
	var format string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare payments at the end and at the start of each period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := lease.resolve(cmd)
			if err != nil {
				return err
			}
			// момент платежа не важен, считаются оба варианта
			raw.Timing = string(calculations.Arrears)

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			input, err := validators.ParseInput(cfg, raw)
			if err != nil {
				return err
			}

			comparison := calculations.CompareTimings(input.Payment, input.TermPeriods, input.AnnualRatePercent)
			return writeComparison(cmd.OutOrStdout(), format, comparison)
		},
	}

	lease.register(cmd, false)
	cmd.Flags().StringVar(&format, "format", string(export.FormatTable), "output format: table or json")

	return cmd
}

func writeComparison(w io.Writer, format string, c calculations.TimingComparison) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case export.FormatTable:
		return export.WriteComparisonTable(w, c)
	case export.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
	return fmt.Errorf("format %q is not supported for comparison", format)
}
