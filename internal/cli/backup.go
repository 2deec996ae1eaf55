package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelforge/panelcut/internal/project"
)

// backupOpts holds the state-file overrides shared by the backup
// subcommands. Empty paths resolve to the defaults under ~/.panelcut.
type backupOpts struct {
	configPath   string
	profilesPath string
	offcutsPath  string
}

func (o backupOpts) resolve() (config, profiles, offcuts string, err error) {
	config = o.configPath
	if config == "" {
		config = project.DefaultConfigPath()
	}
	profiles = o.profilesPath
	if profiles == "" {
		if profiles, err = project.DefaultProfilesPath(); err != nil {
			return "", "", "", err
		}
	}
	offcuts = o.offcutsPath
	if offcuts == "" {
		if offcuts, err = project.DefaultOffcutPath(); err != nil {
			return "", "", "", err
		}
	}
	return config, profiles, offcuts, nil
}

// newBackupCmd creates the backup command family: a single-file export of
// the workshop state and the matching restore.
func newBackupCmd() *cobra.Command {
	var opts backupOpts

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore workshop state",
		Long:  `Backup bundles the application config, custom sheet profiles and the offcut inventory into one JSON file, and restores all three from such a file.`,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "application config file (default ~/.panelcut/config.json)")
	cmd.PersistentFlags().StringVar(&opts.profilesPath, "profiles-file", "", "custom profiles file (default ~/.panelcut/profiles.json)")
	cmd.PersistentFlags().StringVar(&opts.offcutsPath, "offcuts-file", "", "offcut inventory file (default ~/.panelcut/offcuts.json)")

	cmd.AddCommand(&cobra.Command{
		Use:   "export [file]",
		Short: "Write all workshop state to a single backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupExport(cmd, args[0], opts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import [file]",
		Short: "Restore workshop state from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupImport(cmd, args[0], opts)
		},
	})
	return cmd
}

func runBackupExport(cmd *cobra.Command, backupPath string, opts backupOpts) error {
	logger := loggerFromContext(cmd.Context())

	configPath, profilesPath, offcutsPath, err := opts.resolve()
	if err != nil {
		return err
	}
	config, err := project.LoadAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	profiles, err := project.LoadCustomProfiles(profilesPath)
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	offcuts, err := project.LoadOffcuts(offcutsPath)
	if err != nil {
		return fmt.Errorf("load offcuts: %w", err)
	}

	if err := project.ExportAllData(backupPath, config, profiles, offcuts); err != nil {
		return err
	}
	logger.Info("wrote backup", "path", backupPath,
		"profiles", len(profiles), "offcuts", len(offcuts.Offcuts))
	return nil
}

func runBackupImport(cmd *cobra.Command, backupPath string, opts backupOpts) error {
	logger := loggerFromContext(cmd.Context())

	configPath, profilesPath, offcutsPath, err := opts.resolve()
	if err != nil {
		return err
	}
	backup, err := project.ImportAllData(backupPath)
	if err != nil {
		return err
	}

	if err := project.SaveAppConfig(configPath, backup.Config); err != nil {
		return fmt.Errorf("restore config: %w", err)
	}
	if err := project.SaveCustomProfiles(profilesPath, backup.Profiles); err != nil {
		return fmt.Errorf("restore profiles: %w", err)
	}
	if err := project.SaveOffcuts(offcutsPath, backup.Offcuts); err != nil {
		return fmt.Errorf("restore offcuts: %w", err)
	}
	logger.Info("restored workshop state", "from", backupPath,
		"profiles", len(backup.Profiles), "offcuts", len(backup.Offcuts.Offcuts))
	return nil
}
