package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/andpap18/thikishop-payroll/config"
	"github.com/andpap18/thikishop-payroll/cost"
	"github.com/andpap18/thikishop-payroll/domain"
	"github.com/andpap18/thikishop-payroll/employee"
	"github.com/andpap18/thikishop-payroll/processor"
	"github.com/andpap18/thikishop-payroll/report"
	"github.com/andpap18/thikishop-payroll/schedule"
	"github.com/andpap18/thikishop-payroll/server"
)

func payrollCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "payroll [schedule.xlsx...]",
		Short: "Build the monthly payroll workbook",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, cfg, err := newProcessor(cmd)
			if err != nil {
				return err
			}
			sources, err := processor.ReadSources(args)
			if err != nil {
				return err
			}

			m := cfg.Payroll.DefaultMonth
			res, err := proc.Payroll(sources, m)
			if err != nil {
				return err
			}

			data, err := report.RenderPayroll(res)
			if err != nil {
				return fmt.Errorf("render payroll: %w", err)
			}

			if output == "" {
				output = report.PayrollFilename(m)
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("save: %w", err)
			}

			slog.Info("payroll written",
				slog.String("output", output),
				slog.Int("files", len(res.Files)),
				slog.Int("employees", res.Monthly.Len()))
			fmt.Println("done:", output)
			return nil
		},
	}

	monthFlag(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output workbook (default named after the month)")
	return cmd
}

func workDaysCmd() *cobra.Command {
	var (
		asJSON   bool
		template string
	)

	cmd := &cobra.Command{
		Use:   "workdays [schedule.xlsx...]",
		Short: "Count days worked per employee in the target month",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, cfg, err := newProcessor(cmd)
			if err != nil {
				return err
			}
			sources, err := processor.ReadSources(args)
			if err != nil {
				return err
			}

			res := proc.WorkDays(sources, cfg.Payroll.DefaultMonth)

			if template != "" {
				var buf bytes.Buffer
				if err := cost.WriteMonthlyCosts(&buf, res.Monthly.Names()); err != nil {
					return err
				}
				if err := os.WriteFile(template, buf.Bytes(), 0644); err != nil {
					return fmt.Errorf("save %s: %w", template, err)
				}
			}

			if asJSON {
				out, err := json.MarshalIndent(struct {
					Month     int                     `json:"month"`
					Employees map[string]int          `json:"employees"`
					Skipped   []processor.SkippedFile `json:"skipped,omitempty"`
				}{res.Month, res.Monthly.DaysWorked(), res.Skipped}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			for _, s := range res.Monthly.List() {
				fmt.Printf("%-30s %3d\n", s.Name, s.DaysWorked)
			}
			for _, s := range res.Skipped {
				fmt.Printf("skipped %s: %s\n", s.Name, s.Err)
			}
			return nil
		},
	}

	monthFlag(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().StringVar(&template, "template", "", "also write a cost table template (CSV) listing every employee")
	return cmd
}

func costCmd() *cobra.Command {
	var (
		costsPath string
		output    string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "cost [schedule.xlsx...]",
		Short: "Spread monthly employee costs over the shops worked",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, cfg, err := newProcessor(cmd)
			if err != nil {
				return err
			}
			sources, err := processor.ReadSources(args)
			if err != nil {
				return err
			}

			f, err := os.Open(costsPath)
			if err != nil {
				return fmt.Errorf("open %s: %w", costsPath, err)
			}
			monthly, err := cost.ReadMonthlyCosts(f)
			f.Close()
			if err != nil {
				return err
			}

			m := cfg.Payroll.DefaultMonth
			res, err := proc.CostAnalysis(sources, monthly, m)
			if err != nil {
				return err
			}

			data, err := report.RenderCost(res)
			if err != nil {
				return fmt.Errorf("render cost: %w", err)
			}
			if output == "" {
				output = report.CostFilename(m)
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("save: %w", err)
			}

			if asJSON {
				out, err := json.MarshalIndent(struct {
					Locations  []cost.LocationTotal `json:"locations"`
					Total      decimal.Decimal      `json:"total"`
					Warnings   []cost.Warning       `json:"warnings,omitempty"`
					Detections []cost.Allocation    `json:"detections,omitempty"`
					Output     string               `json:"output"`
				}{res.Ledger.Totals(), res.Ledger.Total(), res.Warnings, res.Detections(), output}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			for _, t := range res.Ledger.Totals() {
				fmt.Printf("%-12s %12s\n", t.Location, t.Cost.StringFixed(2))
			}
			fmt.Printf("%-12s %12s\n", "ΣΥΝΟΛΟ", res.Ledger.Total().StringFixed(2))
			for _, a := range res.Detections() {
				fmt.Printf("sunday: %s %s %s -> %s (%s)\n",
					a.File, a.Employee, a.Amount.StringFixed(2), a.Location, a.Method)
			}
			for _, w := range res.Warnings {
				fmt.Println("warning:", w)
			}
			fmt.Println("done:", output)
			return nil
		},
	}

	monthFlag(cmd)
	cmd.Flags().StringVar(&costsPath, "costs", "costs.csv", "CSV cost table with columns employee,monthly_cost")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output workbook (default named after the month)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the location totals as JSON")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP upload service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}

			logger.Info("listening", slog.Int("port", cfg.Server.Port))
			return srv.Run(cfg.Server.Port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default from config)")
	return cmd
}

func sampleCmd() *cobra.Command {
	var (
		employees int
		weeks     int
		start     string
		dir       string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write fake weekly schedules for trying the reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, _, err := setup(); err != nil {
				return err
			}

			monday, err := time.Parse(time.DateOnly, start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}

			schema := domain.DefaultSchema()
			roster := domain.GenerateRoster(employees, schema)
			names := make([]string, len(roster))
			for i, r := range roster {
				names[i] = domain.CleanName(r.Name)
			}

			for w := range weeks {
				weekStart := monday.AddDate(0, 0, 7*w)
				for i := range roster {
					roster[i].Codes = domain.GenerateWeek(schema)
				}

				path := filepath.Join(dir, schedule.Filename(weekStart))
				if err := employee.WriteToFile(roster, employee.DefaultLayout(weekStart), path); err != nil {
					return err
				}
				fmt.Println("wrote", path)
			}

			costs, err := os.Create(filepath.Join(dir, "costs.csv"))
			if err != nil {
				return err
			}
			defer costs.Close()
			return cost.WriteMonthlyCosts(costs, names)
		},
	}

	cmd.Flags().IntVarP(&employees, "employees", "n", 12, "number of employees")
	cmd.Flags().IntVar(&weeks, "weeks", 4, "number of weekly files")
	cmd.Flags().StringVar(&start, "start", time.Now().Format(time.DateOnly), "Monday of the first week (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dir, "dir", "samples", "output directory")
	return cmd
}

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
			}
			if err := config.Save(config.Default(), configPath); err != nil {
				return err
			}
			fmt.Println("done:", configPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
