package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelforge/panelcut/internal/engine"
	"github.com/panelforge/panelcut/internal/model"
)

// newCheckCmd creates the check command. It packs the job and then
// independently validates the groove marking on every placed panel,
// failing the run if any marking would land on the wrong dimension.
func newCheckCmd() *cobra.Command {
	var configPath, profile string

	cmd := &cobra.Command{
		Use:   "check [job file]",
		Short: "Validate groove markings on an optimized layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], configPath, profile)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "application config file (default ~/.panelcut/config.json)")
	cmd.Flags().StringVar(&profile, "profile", "", "sheet profile name overriding the job's sheet settings")

	return cmd
}

func runCheck(cmd *cobra.Command, jobPath, configPath, profile string) error {
	logger := loggerFromContext(cmd.Context())

	input, err := loadJobInput(logger, jobPath, configPath, profile)
	if err != nil {
		return err
	}

	eng := engine.New(input.Config)
	groups, err := eng.Run(input.Parts)
	if err != nil {
		return err
	}

	checked := 0
	var violations []string
	for _, g := range groups {
		for _, sheet := range g.Sheets {
			for _, pl := range sheet.Placements {
				if !pl.Part.Gaddi {
					continue
				}
				checked++
				v := model.ValidateGaddiRule(pl)
				if !v.IsValid {
					violations = append(violations, fmt.Sprintf(
						"%s (%s) on sheet %s: %s", pl.Part.Label, pl.Part.Role, sheet.ID, v.Reason))
				}
			}
		}
	}

	out := cmd.OutOrStdout()
	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintf(out, "FAIL %s\n", v)
		}
		return fmt.Errorf("%d of %d groove markings invalid", len(violations), checked)
	}

	fmt.Fprintf(out, "OK: %d groove markings checked across %d material groups\n", checked, len(groups))
	return nil
}
