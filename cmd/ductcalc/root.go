package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"Ductwork/internal/calc/duct"
	"Ductwork/internal/config"

	"github.com/spf13/cobra"
)

const tabPadding = 2

type rootOptions struct {
	tables   string
	json     bool
	material string
	shape    string
}

func (o *rootOptions) engine() (*duct.Calculator, error) {
	if o.tables == "" {
		return duct.Default(), nil
	}
	return config.LoadTables(o.tables)
}

// NewRootCmd creates the ductcalc command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ductcalc",
		Short: "Size HVAC ducts by the equal-friction method",
		Example: `  # Round duct for 400 CFM at 0.1 in.wc/100ft
  ductcalc size --airflow 400 --friction 0.1

  # Airflow a 12x8 duct carries
  ductcalc airflow --shape rectangular --width 12 --height 8

  # Friction rate of an 8 in flex duct
  ductcalc friction --material flexible --diameter 8 --json`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.tables, "tables", "", "ini file with size and material tables")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	cmd.PersistentFlags().StringVar(&opts.material, "material", duct.DefaultMaterialID, "duct material id")
	cmd.PersistentFlags().StringVar(&opts.shape, "shape", string(duct.ShapeRound), "round or rectangular")

	cmd.AddCommand(
		newSizeCmd(opts),
		newAirflowCmd(opts),
		newFrictionCmd(opts),
		newMaterialsCmd(opts),
		newChartCmd(opts),
		newTokenCmd(),
	)
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, res duct.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintf(tw, "Material\t%s (roughness %g)\n", res.Material, res.Roughness)
	switch res.Mode {
	case duct.ModeDuctSize:
		fmt.Fprintf(tw, "Round diameter\t%g in (ideal %.2f in)\n", res.RoundDiameterIn, res.IdealDiameterIn)
		if res.RectEquivalent != nil {
			fmt.Fprintf(tw, "Rectangular equivalent\t%d x %d in\n", res.RectEquivalent.Width, res.RectEquivalent.Height)
		}
	case duct.ModeAirflow:
		fmt.Fprintf(tw, "Airflow\t%.0f CFM\n", res.AirflowCFM)
	case duct.ModeFriction:
		fmt.Fprintf(tw, "Friction rate\t%.4f in.wc/100ft (%s)\n", res.FrictionRate, res.FrictionRating.Advice(res.Mode))
	}
	fmt.Fprintf(tw, "Velocity\t%.0f FPM (%s)\n", res.VelocityFPM, res.VelocityRating.Advice(res.Mode))
	fmt.Fprintf(tw, "Equivalent length\t%g ft\n", res.EquivalentLengthFt)
	fmt.Fprintf(tw, "Total pressure drop\t%.3f in.wc\n", res.TotalPressureDropInWc)
	for _, warn := range res.Warnings {
		fmt.Fprintf(tw, "Warning\t%s\n", warn)
	}
	if res.Notes != "" {
		fmt.Fprintf(tw, "Notes\t%s\n", res.Notes)
	}
	return tw.Flush()
}
