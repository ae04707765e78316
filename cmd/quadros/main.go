// Package main provides the CLI entry point for quadros-go.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/secretaria-digital/quadros-go/pkg/quadros"
	"github.com/secretaria-digital/quadros-go/pkg/quadros/directory"
	"github.com/secretaria-digital/quadros-go/pkg/quadros/models"
	"github.com/secretaria-digital/quadros-go/pkg/quadros/parser"
	"github.com/secretaria-digital/quadros-go/pkg/quadros/schedule"
)

var (
	rosterPath   string
	templatePath string
	outputPath   string
	windowStart  string
	windowEnd    string
	responsible  string
	schoolName   string
	principal    string
	schoolCode   string
	categoryPath string
	ejaPath      string
	noAudit      bool
	verbose      bool

	holidaysPath string
	todayStr     string

	directoryPath string
	searchLimit   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quadros",
		Short: "Fill school-secretariat report templates from roster workbooks",
		Long: `quadros-go reconciles uploaded student-roster workbooks against
fixed-layout report templates: it resolves drifting sheet and column names,
extracts event codes and dates from observation text, classifies records into
a series × reason matrix, and fills the template preserving merged cells.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&noAudit, "no-audit", false, "Skip the hidden audit sheet in the output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&categoryPath, "categories", "", "YAML file overriding the reason→category table")

	rootCmd.AddCommand(
		newQuadroCmd("transferencias", "Fill the transfer report from TE/MC/MCC events",
			true, (*quadros.Pipeline).TransferReport),
		newQuadroCmd("quantitativo", "Fill the monthly quantitative series × reason matrix",
			true, (*quadros.Pipeline).QuantitativeMonthly),
		newQuadroCmd("inclusao", "Fill the inclusion roster report",
			false, (*quadros.Pipeline).InclusionRoster),
		newQuadroCmd("atendimento", "Fill the monthly attendance report from the totals sheet",
			false, (*quadros.Pipeline).MonthlyAttendance),
		newQuantInclusaoCmd(),
		newDeadlinesCmd(),
		newSchoolsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newQuadroCmd builds one report subcommand around a pipeline operation.
// Operations that classify events require the validity window flags.
func newQuadroCmd(name, short string, needsWindow bool, run func(*quadros.Pipeline, quadros.ReportMeta) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuadro(needsWindow, run)
		},
	}
	cmd.Flags().StringVar(&rosterPath, "roster", "", "Roster workbook (.xlsx or .xls)")
	cmd.Flags().StringVar(&templatePath, "template", "", "Template workbook (.xlsx)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	cmd.Flags().StringVar(&responsible, "responsavel", "", "Name of the responsible operator")
	cmd.Flags().StringVar(&schoolName, "escola", "", "School name for template headers")
	cmd.Flags().StringVar(&principal, "diretor", "", "Principal name for template headers")
	cmd.Flags().StringVar(&schoolCode, "codigo", "", "School code for template headers")
	if needsWindow {
		cmd.Flags().StringVar(&windowStart, "inicio", "", "Validity window start (YYYY-MM-DD)")
		cmd.Flags().StringVar(&windowEnd, "fim", "", "Validity window end (YYYY-MM-DD)")
		_ = cmd.MarkFlagRequired("inicio")
		_ = cmd.MarkFlagRequired("fim")
	}
	_ = cmd.MarkFlagRequired("roster")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// newQuantInclusaoCmd is the inclusion count subcommand; it additionally
// accepts the optional EJA roster workbook that fills the EJA block.
func newQuantInclusaoCmd() *cobra.Command {
	cmd := newQuadroCmd("quantinclusao", "Fill the per-class inclusion count report",
		false, (*quadros.Pipeline).InclusionCounts)
	cmd.Flags().StringVar(&ejaPath, "eja", "", "EJA roster workbook (.xlsx or .xls)")
	return cmd
}

func runQuadro(needsWindow bool, run func(*quadros.Pipeline, quadros.ReportMeta) error) error {
	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := quadros.DefaultOptions()
	opts.Audit = !noAudit
	opts.Logger = logger
	if categoryPath != "" {
		table, err := parser.LoadCategoryTable(categoryPath)
		if err != nil {
			return err
		}
		opts.Categories = table
	}

	var window models.Window
	if needsWindow {
		window, err = parseWindow(windowStart, windowEnd)
		if err != nil {
			return err
		}
	}

	roster, err := quadros.OpenRoster(rosterPath)
	if err != nil {
		return err
	}
	defer roster.Close()

	template, err := quadros.OpenTemplate(templatePath)
	if err != nil {
		return err
	}
	defer template.Close()

	p := &quadros.Pipeline{
		Roster:   roster,
		Template: template,
		Window:   window,
		Opts:     opts,
	}
	if ejaPath != "" {
		eja, err := quadros.OpenRoster(ejaPath)
		if err != nil {
			return err
		}
		defer eja.Close()
		p.EJA = eja
	}
	meta := quadros.ReportMeta{
		Responsible: responsible,
		SchoolName:  schoolName,
		Principal:   principal,
		SchoolCode:  schoolCode,
	}
	if err := run(p, meta); err != nil {
		return err
	}

	if err := template.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save output: %w", err)
	}
	logger.Info("report written", zap.String("path", outputPath))
	return nil
}

func newDeadlinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prazos",
		Short: "Show secretariat deadline alerts for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := schedule.LoadCached(holidaysPath)
			if err != nil {
				return err
			}
			today := time.Now()
			if todayStr != "" {
				today, err = time.Parse("2006-01-02", todayStr)
				if err != nil {
					return fmt.Errorf("invalid --hoje date: %w", err)
				}
			}
			alerts, err := schedule.Alerts(cal, defaultRules(), today)
			if err != nil {
				return err
			}
			if len(alerts) == 0 {
				fmt.Println("No deadline alerts for today.")
				return nil
			}
			for _, a := range alerts {
				fmt.Printf("%s: due %s (%d days)\n", a.Rule, a.DueDate.Format("02/01/2006"), a.DaysUntil)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&holidaysPath, "feriados", "feriados.json", "Holiday calendar JSON file")
	cmd.Flags().StringVar(&todayStr, "hoje", "", "Override today's date (YYYY-MM-DD)")
	return cmd
}

// defaultRules are the recurring secretariat deadlines.
func defaultRules() []schedule.Rule {
	return []schedule.Rule{
		{Name: "Quadro de Atendimento Mensal", Type: schedule.RuleMonthEnd},
		{Name: "Quadro Quantitativo Mensal", Type: schedule.RuleFixedDay, Day: 5},
		{Name: "Conferência da Lista Piloto", Type: schedule.RuleWeekly, Weekday: time.Friday},
	}
}

func newSchoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escolas [query]",
		Short: "Search the school directory CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := directory.LoadCached(directoryPath)
			if err != nil {
				return err
			}
			results := dir.Search(args[0], searchLimit)
			if len(results) == 0 {
				fmt.Println("No schools matched.")
				return nil
			}
			for _, s := range results {
				fmt.Println(s.Label())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&directoryPath, "csv", "uploads/escolas.csv", "School directory CSV path")
	cmd.Flags().IntVar(&searchLimit, "limit", 50, "Maximum results")
	return cmd
}

func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	return cfg.Build()
}

func parseWindow(start, end string) (models.Window, error) {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return models.Window{}, fmt.Errorf("invalid window start: %w", err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return models.Window{}, fmt.Errorf("invalid window end: %w", err)
	}
	if e.Before(s) {
		return models.Window{}, fmt.Errorf("window end %s precedes start %s", end, start)
	}
	return models.Window{Start: s, End: e}, nil
}
