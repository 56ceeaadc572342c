package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"renewcalc/internal/charts"
	"renewcalc/internal/config"
	"renewcalc/internal/logger"
	"renewcalc/internal/models"
	"renewcalc/internal/reports"
	"renewcalc/internal/server"
	"renewcalc/internal/storage"
	"renewcalc/internal/units"
)

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			srv, err := server.NewServerFromConfig(ctx, cfg)
			if err != nil {
				return err
			}
			defer srv.Close()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP server port (overrides PORT)")
	return cmd
}

func scaleCmd() *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "scale <value...>",
		Short: "Scale base-unit values (MWh, MW) into their best-fit unit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := units.ParseFamily(family)
			if err != nil {
				return err
			}
			values, err := parseValues(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(values) == 1 {
				fmt.Fprintln(out, units.ScaleValue(values[0], f).String())
				return nil
			}
			scaled := units.ScaleSeries(values, f)
			fmt.Fprintf(out, "unit: %s\n", scaled.Unit)
			for _, text := range scaled.Texts() {
				fmt.Fprintln(out, text)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&family, "family", "f", string(units.Energy), "unit family: energy or power")
	return cmd
}

func currencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currency <value>",
		Short: "Format a dollar amount with thousands separators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "$ "+units.FormatCurrency(v))
			return nil
		},
	}
}

func chartCmd() *cobra.Command {
	var format, outDir string

	cmd := &cobra.Command{
		Use:   "chart <scenario.yaml>",
		Short: "Build the charts of a scenario as JSON specs, HTML snippets or PNG images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := presentScenario(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view.Charts)
			}

			renderer, err := charts.RendererFor(charts.Format(format))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			for _, spec := range view.Charts {
				path := filepath.Join(outDir, charts.ChartID(spec.Options.Title)+"."+format)
				err := renderToFile(renderer, spec, path)
				if errors.Is(err, charts.ErrNoData) {
					continue
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json, html or png")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory for html and png files")
	return cmd
}

func reportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "report <scenario.yaml>",
		Short: "Generate a full feasibility report into a local directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			scenario, err := models.LoadScenario(args[0])
			if err != nil {
				return err
			}
			catalog, err := models.LoadTurbineCatalog(cfg.TurbineCatalog)
			if err != nil {
				return err
			}

			store, err := storage.NewLocalStorageClient(outDir)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := reports.NewReportService(reports.NewGeneratorFromConfig(cfg, catalog), store)
			report, err := svc.GenerateReport(ctx, scenario)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(outDir, report.IndexPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "./reports", "reports directory")
	return cmd
}

func turbinesCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "turbines",
		Short: "List the turbine catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := models.LoadTurbineCatalog(catalogPath)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MODEL\tRATED OUTPUT\tROTOR DIAMETER")
			for _, t := range catalog.Turbines {
				fmt.Fprintf(tw, "%s\t%s\t%.0f m\n", t.Model, units.ScaleValue(t.RatedOutput/1000, units.Power), t.RotorDiameter)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", os.Getenv("TURBINE_CATALOG"), "YAML turbine catalog")
	return cmd
}

func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := logger.Configure(logger.GetGlobalLogger(), cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}

// presentScenario resolves a scenario file (simulating when it carries no
// result) and builds its results view
func presentScenario(ctx context.Context, path string) (reports.ResultsView, error) {
	scenario, err := models.LoadScenario(path)
	if err != nil {
		return reports.ResultsView{}, err
	}

	generator := reports.NewReportGenerator(reports.WithTurbineCatalog(models.DefaultTurbineCatalog()))
	if !scenario.HasResult() {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return reports.ResultsView{}, err
		}
		catalog, err := models.LoadTurbineCatalog(cfg.TurbineCatalog)
		if err != nil {
			return reports.ResultsView{}, err
		}
		generator = reports.NewGeneratorFromConfig(cfg, catalog)
	}

	resolved, err := generator.Resolve(ctx, scenario)
	if err != nil {
		return reports.ResultsView{}, err
	}
	return reports.NewPresenter().Present(resolved)
}

func parseValues(args []string) ([]float64, error) {
	values := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", a, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func renderToFile(renderer charts.Renderer, spec charts.ChartSpec, path string) error {
	var buf bytes.Buffer
	if err := renderer.Render(spec, &buf); err != nil {
		return fmt.Errorf("failed to render %q: %w", spec.Options.Title, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
