package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"Ductwork/internal/auth"
	"Ductwork/internal/calc/duct"
	"Ductwork/internal/config"

	"github.com/spf13/cobra"
)

// calcFlags holds the per-run inputs; unset flags keep the form defaults.
type calcFlags struct {
	airflow  float64
	friction float64
	velocity float64
	diameter float64
	width    float64
	height   float64
	length   float64
	fittings int
}

func (f *calcFlags) register(cmd *cobra.Command, mode duct.Mode) {
	d := duct.WithDefaults(duct.Input{})
	fs := cmd.Flags()
	if mode != duct.ModeAirflow {
		fs.Float64Var(&f.airflow, "airflow", d.AirflowCFM, "airflow in CFM")
	}
	if mode != duct.ModeFriction {
		fs.Float64Var(&f.friction, "friction", d.FrictionRate, "design friction rate in in.wc/100ft")
		fs.Float64Var(&f.velocity, "velocity", d.VelocityLimitFPM, "velocity limit in FPM")
	} else {
		fs.Float64Var(&f.velocity, "velocity", 0, "velocity limit for the rating in FPM (default 1200)")
	}
	if mode != duct.ModeDuctSize {
		fs.Float64Var(&f.diameter, "diameter", d.RoundDiameterIn, "round duct diameter in inches")
		fs.Float64Var(&f.width, "width", d.RectWidthIn, "rectangular duct width in inches")
		fs.Float64Var(&f.height, "height", d.RectHeightIn, "rectangular duct height in inches")
	}
	fs.Float64Var(&f.length, "length", d.DuctLengthFt, "straight duct length in ft")
	fs.IntVar(&f.fittings, "fittings", d.Fittings, "number of fittings")
}

func (f *calcFlags) input(opts *rootOptions, mode duct.Mode) duct.Input {
	return duct.Input{
		Mode:             mode,
		Shape:            duct.Shape(opts.shape),
		Material:         opts.material,
		AirflowCFM:       f.airflow,
		FrictionRate:     f.friction,
		VelocityLimitFPM: f.velocity,
		RoundDiameterIn:  f.diameter,
		RectWidthIn:      f.width,
		RectHeightIn:     f.height,
		DuctLengthFt:     f.length,
		Fittings:         f.fittings,
	}
}

func newCalcCmd(opts *rootOptions, mode duct.Mode, use, short string) *cobra.Command {
	flags := &calcFlags{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			res, err := engine.Calculate(flags.input(opts, mode))
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), res)
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
	flags.register(cmd, mode)
	return cmd
}

func newSizeCmd(opts *rootOptions) *cobra.Command {
	return newCalcCmd(opts, duct.ModeDuctSize, "size", "Find the standard duct size for an airflow")
}

func newAirflowCmd(opts *rootOptions) *cobra.Command {
	return newCalcCmd(opts, duct.ModeAirflow, "airflow", "Find the airflow a duct carries at a friction rate")
}

func newFrictionCmd(opts *rootOptions) *cobra.Command {
	return newCalcCmd(opts, duct.ModeFriction, "friction", "Find the friction rate of an airflow through a duct")
}

func newMaterialsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "List duct materials and their roughness factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), engine.Materials)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(w, "ID\tName\tRoughness")
			fmt.Fprintln(w, "--\t----\t---------")
			for _, m := range engine.Materials {
				fmt.Fprintf(w, "%s\t%s\t%g\n", m.ID, m.Name, m.Roughness)
			}
			return w.Flush()
		},
	}
}

func newChartCmd(opts *rootOptions) *cobra.Command {
	var rates []float64
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the airflow each chart diameter carries per friction rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			m, ok := duct.FindMaterial(engine.Materials, opts.material)
			if !ok {
				return fmt.Errorf("unknown material %q", opts.material)
			}
			series, err := duct.FrictionChart(duct.ChartDiameters, rates, m.Roughness)
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), series)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprint(w, "Diameter (in)")
			for _, s := range series {
				fmt.Fprintf(w, "\t%s", s.Label)
			}
			fmt.Fprintln(w)
			for i, d := range duct.ChartDiameters {
				fmt.Fprintf(w, "%d", d)
				for _, s := range series {
					fmt.Fprintf(w, "\t%.0f CFM", s.Points[i].AirflowCFM)
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Float64SliceVar(&rates, "rate", duct.ChartFrictionRates, "friction rates in in.wc/100ft")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a premium API token signed with TOKEN_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.TokenKey == "" {
				return errors.New("TOKEN_KEY is not set")
			}
			gate := &auth.TokenGate{Key: []byte(cfg.TokenKey)}
			token, err := gate.Issue(subject, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject (client name)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
