package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/panelforge/panelcut/internal/model"
)

// estimateOpts holds the command-line flags for the estimate command.
type estimateOpts struct {
	configPath    string
	profile       string
	wastePercent  float64
	pricePerSheet float64
}

// newEstimateCmd creates the estimate command. It calculates how many raw
// sheets to buy per material plus the edge banding requirement, without
// running the packer.
func newEstimateCmd() *cobra.Command {
	opts := estimateOpts{wastePercent: -1}

	cmd := &cobra.Command{
		Use:   "estimate [job file]",
		Short: "Estimate sheet purchases and edge banding for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "application config file (default ~/.panelcut/config.json)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "sheet profile name overriding the job's sheet settings")
	cmd.Flags().Float64Var(&opts.wastePercent, "waste", -1, "waste percentage (default from config)")
	cmd.Flags().Float64Var(&opts.pricePerSheet, "price", 0, "price per sheet for cost estimation")

	return cmd
}

func runEstimate(cmd *cobra.Command, jobPath string, opts *estimateOpts) error {
	logger := loggerFromContext(cmd.Context())

	input, err := loadJobInput(logger, jobPath, opts.configPath, opts.profile)
	if err != nil {
		return err
	}

	waste := opts.wastePercent
	if waste < 0 {
		waste = input.App.WastePercent
	}
	price := opts.pricePerSheet
	if price == 0 {
		price = input.App.PricePerSheet
	}

	printPurchaseEstimates(cmd.OutOrStdout(), input.Parts, input.Config, waste, price)

	banding := model.CalculateEdgeBanding(input.Parts, input.App.EdgeBandWastePercent)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nEdge banding: %.2f m across %d edges on %d panels (%.2f m with %.0f%% waste)\n",
		banding.TotalLinearM, banding.EdgeCount, banding.PartCount,
		banding.TotalWithWasteM, banding.WastePercent)

	return nil
}

// printPurchaseEstimates writes one estimate row per material group.
func printPurchaseEstimates(w io.Writer, parts []model.Part, cfg model.CutConfig, waste, price float64) {
	type key struct{ brand, laminate string }
	buckets := map[key][]model.Part{}
	for _, p := range parts {
		k := key{p.Brand, p.Laminate}
		buckets[k] = append(buckets[k], p)
	}

	keys := make([]key, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].brand != keys[j].brand {
			return keys[i].brand < keys[j].brand
		}
		return keys[i].laminate < keys[j].laminate
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BRAND\tLAMINATE\tPANELS\tSHEETS (MIN)\tSHEETS (BUY)\tCOST")
	for _, k := range keys {
		est := model.CalculatePurchaseEstimate(buckets[k], cfg, waste, price)
		cost := "-"
		if est.EstimatedCost > 0 {
			cost = fmt.Sprintf("%.2f", est.EstimatedCost)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			k.brand, k.laminate, len(buckets[k]), est.SheetsNeededMin, est.SheetsWithWaste, cost)
	}
	tw.Flush()
}
