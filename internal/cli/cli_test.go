package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/panelforge/panelcut/internal/model"
	"github.com/panelforge/panelcut/internal/project"
)

const testJobTOML = `
[sheet]
width = 1210
height = 2420
kerf = 3.2

[grain]
SF101 = true

[[cabinet]]
name = "Kitchen Base 1"
height = 900
width = 600
depth = 560
brand = "Century"
body_laminate = "SF101+OST102"
back_laminate = "OST102+OST102"
shutter_laminate = "SF101+OST102"
shelf_count = 1
shutter_count = 2
gaddi = true
`

// execCommand runs a freshly built command with a quiet logger on the
// context and captures stdout.
func execCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	ctx := withLogger(context.Background(), newLogger(&bytes.Buffer{}, charmlog.ErrorLevel))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func writeTestJob(t *testing.T, content string) (jobPath, configPath string) {
	t.Helper()
	dir := t.TempDir()
	jobPath = filepath.Join(dir, "job.toml")
	if err := os.WriteFile(jobPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	// An absent config file falls back to defaults without touching the
	// user's home directory.
	configPath = filepath.Join(dir, "config.json")
	return jobPath, configPath
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2024-01-01" {
		t.Errorf("date = %q, want %q", date, "2024-01-01")
	}
}

func TestOptimizeCommand(t *testing.T) {
	jobPath, configPath := writeTestJob(t, testJobTOML)

	out, err := execCommand(t, newOptimizeCmd(), jobPath, "--config", configPath)
	if err != nil {
		t.Fatalf("optimize failed: %v\n%s", err, out)
	}

	if !strings.Contains(out, "Century") || !strings.Contains(out, "SF101+OST102") {
		t.Errorf("summary missing material row:\n%s", out)
	}
	if !strings.Contains(out, "EFFICIENCY") {
		t.Errorf("summary missing header:\n%s", out)
	}
}

func TestOptimizeCommand_Exports(t *testing.T) {
	jobPath, configPath := writeTestJob(t, testJobTOML)
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "diagrams.pdf")
	xlsxPath := filepath.Join(dir, "cutlist.xlsx")

	out, err := execCommand(t, newOptimizeCmd(), jobPath,
		"--config", configPath, "--pdf", pdfPath, "--xlsx", xlsxPath)
	if err != nil {
		t.Fatalf("optimize failed: %v\n%s", err, out)
	}

	for _, p := range []string{pdfPath, xlsxPath} {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("export %s was not created: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("export %s is empty", p)
		}
	}
}

func TestOptimizeCommand_RemembersRecentJob(t *testing.T) {
	jobPath, configPath := writeTestJob(t, testJobTOML)

	out, err := execCommand(t, newOptimizeCmd(), jobPath, "--config", configPath)
	if err != nil {
		t.Fatalf("optimize failed: %v\n%s", err, out)
	}

	app, err := project.LoadAppConfig(configPath)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if len(app.RecentJobs) == 0 || app.RecentJobs[0] != jobPath {
		t.Errorf("job not on recent list: %v", app.RecentJobs)
	}
}

func TestOptimizeCommand_OffcutSuggestions(t *testing.T) {
	jobPath, configPath := writeTestJob(t, testJobTOML)
	offcutsPath := filepath.Join(filepath.Dir(configPath), "offcuts.json")

	// A stored remnant of the cabinet's body material, large enough to
	// hold any of its panels.
	inv := project.OffcutInventory{Offcuts: []project.StoredOffcut{{
		Offcut:   model.Offcut{ID: "remnant-1", Width: 1200, Height: 2000},
		Brand:    "Century",
		Laminate: "SF101+OST102",
	}}}
	if err := project.SaveOffcuts(offcutsPath, inv); err != nil {
		t.Fatal(err)
	}

	out, err := execCommand(t, newOptimizeCmd(), jobPath,
		"--config", configPath, "--offcuts-file", offcutsPath)
	if err != nil {
		t.Fatalf("optimize failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "fits stored offcut 1200x2000") {
		t.Errorf("expected offcut suggestion:\n%s", out)
	}
}

func TestOptimizeCommand_SaveOffcuts(t *testing.T) {
	jobPath, configPath := writeTestJob(t, testJobTOML)
	offcutsPath := filepath.Join(filepath.Dir(configPath), "offcuts.json")

	out, err := execCommand(t, newOptimizeCmd(), jobPath,
		"--config", configPath, "--offcuts-file", offcutsPath, "--save-offcuts")
	if err != nil {
		t.Fatalf("optimize failed: %v\n%s", err, out)
	}

	inv, err := project.LoadOffcuts(offcutsPath)
	if err != nil {
		t.Fatalf("reload offcut store: %v", err)
	}
	if len(inv.Offcuts) == 0 {
		t.Error("expected recorded offcuts after --save-offcuts")
	}
}

func TestOptimizeCommand_MissingJob(t *testing.T) {
	_, configPath := writeTestJob(t, testJobTOML)
	_, err := execCommand(t, newOptimizeCmd(), filepath.Join(t.TempDir(), "missing.toml"), "--config", configPath)
	if err == nil {
		t.Fatal("expected error for missing job file")
	}
}

func TestOptimizeCommand_UnknownProfile(t *testing.T) {
	jobPath, configPath := writeTestJob(t, testJobTOML)
	_, err := execCommand(t, newOptimizeCmd(), jobPath, "--config", configPath, "--profile", "no-such-profile")
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestEstimateCommand(t *testing.T) {
	jobPath, configPath := writeTestJob(t, testJobTOML)

	out, err := execCommand(t, newEstimateCmd(), jobPath, "--config", configPath, "--price", "2500")
	if err != nil {
		t.Fatalf("estimate failed: %v\n%s", err, out)
	}

	if !strings.Contains(out, "SHEETS (BUY)") {
		t.Errorf("estimate table missing:\n%s", out)
	}
	if !strings.Contains(out, "Edge banding:") {
		t.Errorf("edge banding summary missing:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	jobPath, configPath := writeTestJob(t, testJobTOML)

	out, err := execCommand(t, newCheckCmd(), jobPath, "--config", configPath)
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "OK:") {
		t.Errorf("expected passing check output:\n%s", out)
	}
}

func TestLoadJobInput_CSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "parts.csv")
	csv := "Label,Width,Height,Qty,Role,Brand,Laminate\nShelf,600,300,2,SHELF,Century,SF101\n"
	if err := os.WriteFile(csvPath, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := newLogger(&bytes.Buffer{}, charmlog.ErrorLevel)
	input, err := loadJobInput(logger, csvPath, filepath.Join(dir, "config.json"), "")
	if err != nil {
		t.Fatalf("loadJobInput failed: %v", err)
	}
	if len(input.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(input.Parts))
	}
	if input.Config.SheetWidth != model.DefaultCutConfig().SheetWidth {
		t.Errorf("expected default sheet width, got %f", input.Config.SheetWidth)
	}
}

func TestLoadJobInput_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parts.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := newLogger(&bytes.Buffer{}, charmlog.ErrorLevel)
	if _, err := loadJobInput(logger, path, filepath.Join(dir, "config.json"), ""); err == nil {
		t.Fatal("expected error for unsupported file type")
	}
}

func TestLoadJobInput_BuiltInProfile(t *testing.T) {
	jobPath, configPath := writeTestJob(t, testJobTOML)

	logger := newLogger(&bytes.Buffer{}, charmlog.ErrorLevel)
	input, err := loadJobInput(logger, jobPath, configPath, "8x3 ft")
	if err != nil {
		t.Fatalf("loadJobInput failed: %v", err)
	}
	if input.Config.SheetWidth != 910 {
		t.Errorf("profile override not applied: %+v", input.Config)
	}
}

func TestTemplateCommands(t *testing.T) {
	jobPath, _ := writeTestJob(t, testJobTOML)
	dir := t.TempDir()
	storePath := filepath.Join(dir, "templates.json")

	out, err := execCommand(t, newTemplateCmd(), "save", "base-unit", jobPath,
		"--templates-file", storePath)
	if err != nil {
		t.Fatalf("template save failed: %v\n%s", err, out)
	}

	out, err = execCommand(t, newTemplateCmd(), "list", "--templates-file", storePath)
	if err != nil {
		t.Fatalf("template list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "base-unit") {
		t.Errorf("saved template missing from list:\n%s", out)
	}

	newJobPath := filepath.Join(dir, "pantry.toml")
	out, err = execCommand(t, newTemplateCmd(), "use", "base-unit", "Pantry Base 1",
		"--templates-file", storePath, "--out", newJobPath)
	if err != nil {
		t.Fatalf("template use failed: %v\n%s", err, out)
	}

	job, err := project.LoadJob(newJobPath)
	if err != nil {
		t.Fatalf("load stamped job: %v", err)
	}
	if len(job.Cabinets) != 1 || job.Cabinets[0].Name != "Pantry Base 1" {
		t.Fatalf("stamped cabinet missing: %+v", job.Cabinets)
	}
	if job.Cabinets[0].Height != 900 || job.Cabinets[0].Brand != "Century" {
		t.Errorf("template dimensions lost: %+v", job.Cabinets[0])
	}
}

func TestTemplateUse_UnknownTemplate(t *testing.T) {
	dir := t.TempDir()
	_, err := execCommand(t, newTemplateCmd(), "use", "no-such", "Cabinet",
		"--templates-file", filepath.Join(dir, "templates.json"),
		"--out", filepath.Join(dir, "job.toml"))
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestBackupRoundTrip(t *testing.T) {
	src := t.TempDir()
	configPath := filepath.Join(src, "config.json")
	profilesPath := filepath.Join(src, "profiles.json")
	offcutsPath := filepath.Join(src, "offcuts.json")

	app := project.DefaultAppConfig()
	app.PricePerSheet = 3100
	if err := project.SaveAppConfig(configPath, app); err != nil {
		t.Fatal(err)
	}
	profiles := []project.SheetProfile{{Name: "door blank", Width: 600, Height: 2100, Kerf: 3.2}}
	if err := project.SaveCustomProfiles(profilesPath, profiles); err != nil {
		t.Fatal(err)
	}
	inv := project.OffcutInventory{Offcuts: []project.StoredOffcut{{
		Offcut: model.Offcut{ID: "remnant-1", Width: 400, Height: 600},
		Brand:  "Century", Laminate: "SF101+OST102",
	}}}
	if err := project.SaveOffcuts(offcutsPath, inv); err != nil {
		t.Fatal(err)
	}

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	out, err := execCommand(t, newBackupCmd(), "export", backupPath,
		"--config", configPath, "--profiles-file", profilesPath, "--offcuts-file", offcutsPath)
	if err != nil {
		t.Fatalf("backup export failed: %v\n%s", err, out)
	}

	dst := t.TempDir()
	dstConfig := filepath.Join(dst, "config.json")
	dstProfiles := filepath.Join(dst, "profiles.json")
	dstOffcuts := filepath.Join(dst, "offcuts.json")
	out, err = execCommand(t, newBackupCmd(), "import", backupPath,
		"--config", dstConfig, "--profiles-file", dstProfiles, "--offcuts-file", dstOffcuts)
	if err != nil {
		t.Fatalf("backup import failed: %v\n%s", err, out)
	}

	restored, err := project.LoadAppConfig(dstConfig)
	if err != nil {
		t.Fatal(err)
	}
	if restored.PricePerSheet != 3100 {
		t.Errorf("config not restored: %+v", restored)
	}
	restoredProfiles, err := project.LoadCustomProfiles(dstProfiles)
	if err != nil {
		t.Fatal(err)
	}
	if len(restoredProfiles) != 1 || restoredProfiles[0].Name != "door blank" {
		t.Errorf("profiles not restored: %+v", restoredProfiles)
	}
	restoredInv, err := project.LoadOffcuts(dstOffcuts)
	if err != nil {
		t.Fatal(err)
	}
	if len(restoredInv.Offcuts) != 1 || restoredInv.Offcuts[0].ID != "remnant-1" {
		t.Errorf("offcuts not restored: %+v", restoredInv.Offcuts)
	}
}

func TestBackupImport_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := execCommand(t, newBackupCmd(), "import", filepath.Join(dir, "missing.json"),
		"--config", filepath.Join(dir, "config.json"),
		"--profiles-file", filepath.Join(dir, "profiles.json"),
		"--offcuts-file", filepath.Join(dir, "offcuts.json"))
	if err == nil {
		t.Fatal("expected error for missing backup file")
	}
}
