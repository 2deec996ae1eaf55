package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/panelforge/panelcut/internal/engine"
	"github.com/panelforge/panelcut/internal/export"
	"github.com/panelforge/panelcut/internal/model"
	"github.com/panelforge/panelcut/internal/project"
)

// optimizeOpts holds the command-line flags for the optimize command.
type optimizeOpts struct {
	configPath  string // application config file override
	profile     string // sheet profile name
	pdfPath     string // cutting diagram output
	xlsxPath    string // cut-list workbook output
	labelsPath  string // QR label sheet output
	dxfDir      string // per-sheet DXF output directory
	offcutsPath string // offcut inventory file override
	saveOffcuts bool   // record usable remnants in the offcut store
}

// newOptimizeCmd creates the optimize command. It packs a job's panels
// onto stock sheets and optionally exports shop-floor documents.
func newOptimizeCmd() *cobra.Command {
	var opts optimizeOpts

	cmd := &cobra.Command{
		Use:   "optimize [job file]",
		Short: "Pack a job's panels onto stock sheets",
		Long:  `Optimize expands the job into a flat panel list, groups it by brand and laminate, packs each group onto stock sheets, and prints a per-material summary. Cutting diagrams, labels, cut lists and DXF layouts can be exported in the same run.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "application config file (default ~/.panelcut/config.json)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "sheet profile name overriding the job's sheet settings")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "write cutting diagrams to this PDF file")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "write the cut-list workbook to this file")
	cmd.Flags().StringVar(&opts.labelsPath, "labels", "", "write QR part labels to this PDF file")
	cmd.Flags().StringVar(&opts.dxfDir, "dxf-dir", "", "write one DXF layout per sheet into this directory")
	cmd.Flags().StringVar(&opts.offcutsPath, "offcuts-file", "", "offcut inventory file (default ~/.panelcut/offcuts.json)")
	cmd.Flags().BoolVar(&opts.saveOffcuts, "save-offcuts", false, "record usable remnants in the offcut inventory")

	return cmd
}

func runOptimize(cmd *cobra.Command, jobPath string, opts *optimizeOpts) error {
	logger := loggerFromContext(cmd.Context())

	input, err := loadJobInput(logger, jobPath, opts.configPath, opts.profile)
	if err != nil {
		return err
	}

	// The job opened, so it goes on the recent list.
	input.App.RememberJob(jobPath)
	if err := project.SaveAppConfig(input.ConfigPath, input.App); err != nil {
		logger.Warn("cannot update recent job list", "err", err)
	}

	offcutPath := opts.offcutsPath
	if offcutPath == "" {
		offcutPath, err = project.DefaultOffcutPath()
		if err != nil {
			return fmt.Errorf("resolve offcut store: %w", err)
		}
	}

	prog := newProgress(logger)
	worker := engine.NewWorker()
	worker.Start()
	defer worker.Stop()
	runner := engine.NewRunner(worker)

	resp := <-runner.RunAsync(cmd.Context(), engine.Request{
		Token:  runner.NextToken(),
		Parts:  input.Parts,
		Config: input.Config,
	})
	groups := resp.Groups
	if resp.Err != nil {
		if len(groups) == 0 {
			return resp.Err
		}
		// A partial result is still worth printing; the error names the
		// groups that could not be packed.
		logger.Error(resp.Err.Error())
	}
	prog.done(fmt.Sprintf("Packed %d panels into %d material groups", len(input.Parts), len(groups)))

	printGroupSummary(cmd.OutOrStdout(), groups)
	printOffcuts(cmd.OutOrStdout(), groups, input.Config.Kerf)
	printOffcutSuggestions(cmd.OutOrStdout(), logger, offcutPath, input.Parts)

	if opts.saveOffcuts {
		if err := recordOffcuts(logger, offcutPath, groups, input.Config.Kerf); err != nil {
			return err
		}
	}

	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, groups, input.Config); err != nil {
			return fmt.Errorf("export PDF: %w", err)
		}
		logger.Info("wrote cutting diagrams", "path", opts.pdfPath)
	}
	if opts.xlsxPath != "" {
		if err := export.ExportExcel(opts.xlsxPath, groups, input.Config); err != nil {
			return fmt.Errorf("export cut list: %w", err)
		}
		logger.Info("wrote cut-list workbook", "path", opts.xlsxPath)
	}
	if opts.labelsPath != "" {
		if err := export.ExportLabels(opts.labelsPath, groups); err != nil {
			return fmt.Errorf("export labels: %w", err)
		}
		logger.Info("wrote part labels", "path", opts.labelsPath)
	}
	if opts.dxfDir != "" {
		paths, err := export.ExportDXF(opts.dxfDir, groups, input.Config)
		if err != nil {
			return fmt.Errorf("export DXF: %w", err)
		}
		logger.Info("wrote sheet layouts", "count", len(paths), "dir", opts.dxfDir)
	}

	if resp.Err != nil {
		return resp.Err
	}
	return nil
}

// printGroupSummary writes the per-material packing table.
func printGroupSummary(w io.Writer, groups []model.GroupResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BRAND\tLAMINATE\tSHEETS\tPANELS\tEFFICIENCY")
	for _, g := range groups {
		panels := 0
		for _, s := range g.Sheets {
			panels += len(s.Placements)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.1f%%\n",
			g.Brand, g.Laminate, g.SheetCount(), panels, g.Efficiency())
	}
	tw.Flush()
}

// printOffcuts reports the usable remnants left over per material group.
func printOffcuts(w io.Writer, groups []model.GroupResult, kerf float64) {
	total := 0
	var area float64
	for _, g := range groups {
		for _, oc := range model.DetectGroupOffcuts(g, kerf) {
			total++
			area += oc.Area()
		}
	}
	if total == 0 {
		return
	}
	fmt.Fprintf(w, "\nUsable offcuts: %d pieces, %.2f sq m\n", total, area/1e6)
}

// printOffcutSuggestions lists the panels of this run that would fit a
// remnant already in the inventory, so the operator can cut those from
// stock on hand instead of a fresh sheet.
func printOffcutSuggestions(w io.Writer, logger *log.Logger, path string, parts []model.Part) {
	inv, err := project.LoadOffcuts(path)
	if err != nil {
		logger.Warn("cannot read offcut store", "err", err)
		return
	}

	var lines []string
	for _, p := range parts {
		matches := inv.FindUsable(p.Brand, p.Laminate, p.Width, p.Height)
		if len(matches) == 0 {
			continue
		}
		oc := matches[0]
		lines = append(lines, fmt.Sprintf("  %s (%.0fx%.0f) fits stored offcut %.0fx%.0f [%s %s]",
			p.Label, p.Width, p.Height, oc.Width, oc.Height, oc.Brand, oc.Laminate))
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, "\nPanels that fit stored offcuts:")
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

// recordOffcuts appends the run's usable remnants to the offcut inventory.
func recordOffcuts(logger *log.Logger, path string, groups []model.GroupResult, kerf float64) error {
	inv, err := project.LoadOffcuts(path)
	if err != nil {
		return fmt.Errorf("load offcut store: %w", err)
	}

	added := 0
	for _, g := range groups {
		added += inv.RecordGroupOffcuts(g, kerf)
	}
	if added == 0 {
		return nil
	}
	if err := project.SaveOffcuts(path, inv); err != nil {
		return fmt.Errorf("save offcut store: %w", err)
	}
	logger.Info("recorded offcuts", "count", added, "path", path)
	return nil
}
