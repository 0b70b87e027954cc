package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"expensetracker/internal/charts"
	"expensetracker/internal/cli"
	"expensetracker/internal/config"
	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	"expensetracker/internal/log"
	"expensetracker/internal/render"
	"expensetracker/internal/services"
	"expensetracker/internal/storage"
)

// app holds everything a subcommand needs once setup has run.
type app struct {
	cfg      *config.Config
	settings *config.Settings
	logger   *log.Logger
	svc      *services.LedgerService
	out      *render.Renderer
}

func main() {
	a := &app{}
	root := &cobra.Command{
		Use:           "expensetracker",
		Short:         "Record personal expenses, view statistics and charts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.AddCommand(
		a.addCmd(),
		a.listCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.summaryCmd(),
		a.chartCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.interactiveCmd(),
	)

	// Post-run hooks are skipped on a failing command, so the store is
	// released here instead.
	err := a.close(root.ExecuteContext(context.Background()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// close releases the store once the command has finished. The
// command's own error wins when both fail.
func (a *app) close(runErr error) error {
	if a.svc == nil {
		return runErr
	}
	if err := a.svc.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// setup wires config, settings, logging, the store and the service,
// then loads the ledger. A corrupt store is reported and the session
// continues with an empty ledger.
func (a *app) setup(cmd *cobra.Command) error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cli.SetupLogger(cfg)

	settings, err := config.LoadSettings(cfg.SettingsFile)
	if err != nil {
		return err
	}
	a.settings = settings
	a.out = render.New(settings.Currency)

	store, err := cli.OpenStore(cfg, a.logger)
	if err != nil {
		return err
	}
	a.svc = services.NewLedgerService(store, a.logger)

	if err := a.svc.Load(cmd.Context()); err != nil {
		if errors.Is(err, storage.ErrCorruptStore) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\nStarting with an empty ledger; the file is left untouched until the next save.\n", err)
			return nil
		}
		return err
	}
	return nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("category", ledger.CategoryAll, "category to keep, or All")
	cmd.Flags().String("from", "", "inclusive lower date bound (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "inclusive upper date bound (YYYY-MM-DD)")
}

func criteriaFromFlags(cmd *cobra.Command) ledger.Criteria {
	category, _ := cmd.Flags().GetString("category")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	return ledger.Criteria{Category: category, From: from, To: to}
}

func (a *app) addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := core.RecordInput{}
			in.Description, _ = cmd.Flags().GetString("description")
			in.Amount, _ = cmd.Flags().GetString("amount")
			in.Category, _ = cmd.Flags().GetString("category")
			in.Date, _ = cmd.Flags().GetString("date")
			if !a.settings.HasCategory(in.Category) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Note: %q is not in the configured category set\n", in.Category)
			}
			rec, err := a.svc.Add(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added expense #%d\n", rec.ID)
			return nil
		},
	}
	cmd.Flags().StringP("description", "d", "", "what the money went to")
	cmd.Flags().StringP("amount", "a", "", "amount, e.g. 4.50")
	cmd.Flags().StringP("category", "c", "Other", "expense category")
	cmd.Flags().String("date", time.Now().Format(core.DateLayout), "expense date (YYYY-MM-DD)")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the (optionally filtered) expense table",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := a.svc.View(criteriaFromFlags(cmd))
			a.out.Table(cmd.OutOrStdout(), view)
			a.out.Summary(cmd.OutOrStdout(), a.svc.Summarize(view))
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Overwrite the fields of an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			current, err := a.svc.Get(id)
			if err != nil {
				return err
			}
			// Flags left unset keep the current value.
			in := core.RecordInput{
				Description: current.Description,
				Amount:      current.Amount.String(),
				Category:    current.Category,
				Date:        current.Date.String(),
			}
			if cmd.Flags().Changed("description") {
				in.Description, _ = cmd.Flags().GetString("description")
			}
			if cmd.Flags().Changed("amount") {
				in.Amount, _ = cmd.Flags().GetString("amount")
			}
			if cmd.Flags().Changed("category") {
				in.Category, _ = cmd.Flags().GetString("category")
			}
			if cmd.Flags().Changed("date") {
				in.Date, _ = cmd.Flags().GetString("date")
			}
			rec, err := a.svc.Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated expense #%d\n", rec.ID)
			return nil
		},
	}
	cmd.Flags().StringP("description", "d", "", "what the money went to")
	cmd.Flags().StringP("amount", "a", "", "amount, e.g. 4.50")
	cmd.Flags().StringP("category", "c", "", "expense category")
	cmd.Flags().String("date", "", "expense date (YYYY-MM-DD)")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			if err := a.svc.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense #%d\n", id)
			return nil
		},
	}
}

func (a *app) summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show statistics and the category breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := a.svc.View(criteriaFromFlags(cmd))
			a.out.Summary(cmd.OutOrStdout(), a.svc.Summarize(view))
			a.out.CategoryTotals(cmd.OutOrStdout(), a.svc.CategoryTotals(view))
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func (a *app) chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the category and monthly-trend charts as PNG files",
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir, _ := cmd.Flags().GetString("out")
			view := a.svc.View(criteriaFromFlags(cmd))
			return a.renderCharts(cmd, view, outDir)
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().String("out", "charts", "directory for the PNG files")
	return cmd
}

// renderCharts writes every chart that has data to draw, naming the
// ones it skipped.
func (a *app) renderCharts(cmd *cobra.Command, view []core.Record, outDir string) error {
	if len(view) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No expenses to chart.")
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}

	gen := charts.NewGenerator()
	totals := a.svc.CategoryTotals(view)

	files := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{"category_pie.png", func() ([]byte, error) { return gen.CategoryPie(totals) }},
		{"category_bar.png", func() ([]byte, error) { return gen.CategoryBar(totals) }},
		{"daily_scatter.png", func() ([]byte, error) { return gen.DailyScatter(view) }},
		{"monthly_trend.png", func() ([]byte, error) { return gen.MonthlyTrend(view) }},
	}
	logger := a.logger.WithComponent(log.ComponentCharts)
	for _, f := range files {
		data, err := f.render()
		if err != nil {
			return err
		}
		if data == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s: not enough data\n", f.name)
			continue
		}
		path := filepath.Join(outDir, f.name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("chart written", log.FieldPath, path, log.FieldCount, len(view))
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export the ledger (.csv tabular, .xlsx spreadsheet, otherwise JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Export(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Replace the ledger with the file's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.svc.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses from %s\n", n, args[0])
			return nil
		},
	}
}
