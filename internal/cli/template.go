package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/panelforge/panelcut/internal/project"
)

// newTemplateCmd creates the template command family. Templates are saved
// cabinet presets that can be stamped into job files by name.
func newTemplateCmd() *cobra.Command {
	var storePath string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable cabinet templates",
		Long:  `Template saves a cabinet from an existing job file as a named preset, lists the saved presets, and stamps a preset into a job file under a new cabinet name.`,
	}
	cmd.PersistentFlags().StringVar(&storePath, "templates-file", "", "template store file (default ~/.panelcut/templates.json)")

	cmd.AddCommand(newTemplateListCmd(&storePath))
	cmd.AddCommand(newTemplateSaveCmd(&storePath))
	cmd.AddCommand(newTemplateUseCmd(&storePath))
	return cmd
}

func templateStorePath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return project.DefaultTemplatePath()
}

func newTemplateListCmd(storePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved cabinet templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := templateStorePath(*storePath)
			if err != nil {
				return err
			}
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			if len(store.Templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates saved.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tHEIGHT\tWIDTH\tDEPTH\tSHELVES\tSHUTTERS")
			for _, tpl := range store.Templates {
				c := tpl.Cabinet
				fmt.Fprintf(tw, "%s\t%.0f\t%.0f\t%.0f\t%d\t%d\n",
					tpl.Name, c.Height, c.Width, c.Depth, c.ShelfCount, c.ShutterCount)
			}
			return tw.Flush()
		},
	}
}

func newTemplateSaveCmd(storePath *string) *cobra.Command {
	var cabinetName string

	cmd := &cobra.Command{
		Use:   "save [name] [job file]",
		Short: "Save a cabinet from a job file as a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			name, jobPath := args[0], args[1]

			job, err := project.LoadJob(jobPath)
			if err != nil {
				return err
			}
			if len(job.Cabinets) == 0 {
				return fmt.Errorf("job %s contains no cabinets", jobPath)
			}

			cabinet := job.Cabinets[0]
			if cabinetName != "" {
				found := false
				for _, c := range job.Cabinets {
					if c.Name == cabinetName {
						cabinet = c
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("job %s has no cabinet named %q", jobPath, cabinetName)
				}
			}

			path, err := templateStorePath(*storePath)
			if err != nil {
				return err
			}
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			store.Add(project.CabinetTemplate{Name: name, Cabinet: cabinet})
			if err := project.SaveTemplates(path, store); err != nil {
				return err
			}
			logger.Info("saved template", "name", name, "cabinet", cabinet.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&cabinetName, "cabinet", "", "cabinet name to save (default first cabinet in the job)")
	return cmd
}

func newTemplateUseCmd(storePath *string) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "use [template] [cabinet name]",
		Short: "Stamp a template into a job file as a new cabinet",
		Long:  `Use adds a cabinet built from the named template to the job file given with --out. An existing job file gains the cabinet; a missing one is created around it.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			tplName, cabinetName := args[0], args[1]

			path, err := templateStorePath(*storePath)
			if err != nil {
				return err
			}
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			tpl, ok := store.Find(tplName)
			if !ok {
				return fmt.Errorf("unknown template %q", tplName)
			}

			var job project.Job
			if _, err := os.Stat(outPath); err == nil {
				job, err = project.LoadJob(outPath)
				if err != nil {
					return err
				}
			}
			job.Cabinets = append(job.Cabinets, tpl.Apply(cabinetName))
			if err := project.SaveJob(outPath, job); err != nil {
				return err
			}
			logger.Info("added cabinet", "template", tplName, "cabinet", cabinetName, "job", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "job file to add the cabinet to")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
