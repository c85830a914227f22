package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/cutline/internal/arrangement"
	"github.com/papapumpkin/cutline/internal/config"
	"github.com/papapumpkin/cutline/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [arrangement.toml]",
	Short: "Check the configuration and an arrangement file",
	Long: `Validate the loaded configuration and, when given, an arrangement file:
duplicate clip ids, unknown track kinds, negative start or duration, and an
out-of-range zoom are all reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	printer := ui.NewWriter(cmd.ErrOrStderr())

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		printer.Error(err.Error())
		return err
	}
	printer.Info("config ok")

	if len(args) == 0 {
		return nil
	}
	a, err := arrangement.Load(args[0])
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	errs := arrangement.Validate(a)
	printer.ArrangementValidateResult(a, errs)
	if len(errs) > 0 {
		return fmt.Errorf("validation failed with %d error(s)", len(errs))
	}
	return nil
}
