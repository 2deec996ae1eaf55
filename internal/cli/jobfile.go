package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/panelforge/panelcut/internal/importer"
	"github.com/panelforge/panelcut/internal/model"
	"github.com/panelforge/panelcut/internal/project"
)

// jobInput is the resolved input for a command: the flat, prepared part
// list and the effective cut configuration. ConfigPath is the resolved
// application config location so a command can write the config back.
type jobInput struct {
	Parts      []model.Part
	Config     model.CutConfig
	App        project.AppConfig
	ConfigPath string
}

// loadJobInput resolves a job from the given path. TOML files are parsed
// as full job descriptions; CSV and XLSX files are imported as flat part
// lists with grain preferences taken from the application config. An
// explicit profile name overrides the sheet configuration.
func loadJobInput(logger *log.Logger, path, configPath, profileName string) (jobInput, error) {
	if configPath == "" {
		configPath = project.DefaultConfigPath()
	}
	app, err := project.LoadAppConfig(configPath)
	if err != nil {
		return jobInput{}, fmt.Errorf("load config: %w", err)
	}

	cfg := app.CutConfig()
	var parts []model.Part

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		job, err := project.LoadJob(path)
		if err != nil {
			return jobInput{}, err
		}
		cfg = job.CutConfig(cfg)
		// Job grain locks extend the configured preferences.
		grain := make(map[string]bool, len(app.GrainPreferences)+len(job.Grain))
		for k, v := range app.GrainPreferences {
			grain[k] = v
		}
		for k, v := range job.Grain {
			grain[k] = v
		}
		job.Grain = grain
		parts, err = job.Parts()
		if err != nil {
			return jobInput{}, err
		}

	case ".csv", ".xlsx":
		var result importer.ImportResult
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			result = importer.ImportCSV(path)
		} else {
			result = importer.ImportExcel(path)
		}
		for _, w := range result.Warnings {
			logger.Warn(w)
		}
		if len(result.Errors) > 0 {
			return jobInput{}, fmt.Errorf("import %s: %s", filepath.Base(path), strings.Join(result.Errors, "; "))
		}
		parts = model.PrepareParts(result.Parts, app.GrainPreferences)

	default:
		return jobInput{}, fmt.Errorf("unsupported job file type %q (want .toml, .csv or .xlsx)", filepath.Ext(path))
	}

	if profileName != "" {
		profilesPath, err := project.DefaultProfilesPath()
		var custom []project.SheetProfile
		if err == nil {
			custom, _ = project.LoadCustomProfiles(profilesPath)
		}
		profile, ok := project.FindProfile(profileName, custom)
		if !ok {
			return jobInput{}, fmt.Errorf("unknown sheet profile %q", profileName)
		}
		cfg = profile.CutConfig()
	}

	if len(parts) == 0 {
		return jobInput{}, fmt.Errorf("job %s contains no panels", filepath.Base(path))
	}

	logger.Debugf("loaded %d panels, sheet %.0fx%.0f kerf %.1f",
		len(parts), cfg.SheetWidth, cfg.SheetHeight, cfg.Kerf)

	return jobInput{Parts: parts, Config: cfg, App: app, ConfigPath: configPath}, nil
}
