package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/noel97chan-creator/IFRS16calculator/internal/calculations"
	"github.com/noel97chan-creator/IFRS16calculator/internal/config"
	"github.com/noel97chan-creator/IFRS16calculator/internal/export"
	"github.com/noel97chan-creator/IFRS16calculator/internal/validators"
)

func newScheduleCommand() *cobra.Command {
	var lease leaseFlags
	var format, out string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute the lease liability and amortization schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := lease.resolve(cmd)
			if err != nil {
				return err
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			input, err := validators.ParseInput(cfg, raw)
			if err != nil {
				return err
			}

			schedule := calculations.ComputeSchedule(input)
			return writeOutput(cmd.OutOrStdout(), out, func(w io.Writer) error {
				return export.Write(w, f, schedule)
			})
		},
	}

	lease.register(cmd, true)
	cmd.Flags().StringVar(&format, "format", string(export.FormatTable), "output format: table, csv, pdf or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")

	return cmd
}

// writeOutput пишет в файл path либо, если он не задан, в stdout
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	fmt.Fprintf(stdout, "Schedule written to %s\n", path)
	return nil
}
