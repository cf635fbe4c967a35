package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"debt-planner/domain"
	"debt-planner/report"
	"debt-planner/service"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// debtsFile is the YAML input of the simulate command.
type debtsFile struct {
	MonthlyBudget float64             `yaml:"monthly_budget"`
	Strategy      string              `yaml:"strategy"`
	Debts         []domain.DebtRecord `yaml:"debts"`
}

type simulateOptions struct {
	file     string
	budget   float64
	strategy string
	compare  bool
	explain  bool
	schedule bool
	pdfPath  string
}

func newSimulateCmd(a *app) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a payoff plan from a YAML file of debts",
		Long: `Reads debts from a YAML file and prints the month-by-month payoff plan.

Example file:
  monthly_budget: 1000
  strategy: avalanche
  debts:
    - id: card
      name: Credit card
      balance: 5000
      interest_rate: 19.99
      minimum_payment: 100

--budget and --strategy override the values in the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML file with debts (required)")
	cmd.Flags().Float64VarP(&opts.budget, "budget", "b", 0, "Monthly budget for all debts")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "avalanche, snowball or hybrid")
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "Compare every strategy")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "Ask the configured advisor for an explanation")
	cmd.Flags().BoolVar(&opts.schedule, "schedule", false, "Print the month-by-month schedule")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "Write the plan as a PDF to this path")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func loadDebtsFile(path string) (debtsFile, error) {
	var f debtsFile
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("failed to read debts file: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("failed to parse debts file: %w", err)
	}
	return f, nil
}

func runSimulate(cmd *cobra.Command, a *app, opts *simulateOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	f, err := loadDebtsFile(opts.file)
	if err != nil {
		return err
	}
	if opts.budget != 0 {
		f.MonthlyBudget = opts.budget
	}
	if opts.strategy != "" {
		f.Strategy = opts.strategy
	}

	var completer service.Completer
	if opts.explain {
		if completer, err = newCompleter(ctx, a.cfg.Advisor); err != nil {
			return err
		}
		if completer == nil {
			log.Warn("No advisor configured, explanations use the built-in text")
		}
	}

	plans := service.NewPlanService(nil, nil, nil, service.NewAdvisorService(completer), service.PlanSettings{
		HybridWeights: a.cfg.Planner.HybridWeights,
		MaxDebts:      a.cfg.Planner.MaxDebts,
		MaxMonths:     a.cfg.Planner.MaxMonths,
		Epsilon:       a.cfg.Planner.Epsilon,
	})
	input := domain.PlanInput{
		Debts:         f.Debts,
		MonthlyBudget: f.MonthlyBudget,
		Strategy:      domain.Strategy(f.Strategy),
		Explain:       opts.explain,
	}

	if opts.compare {
		cmp, err := plans.Compare(ctx, input)
		if err != nil {
			return err
		}
		printComparison(out, cmp)
		if opts.pdfPath != "" {
			return writePDF(opts.pdfPath, cmp.Best, f.Debts)
		}
		return nil
	}

	plan, err := plans.Simulate(ctx, input)
	if err != nil {
		return err
	}
	printPlan(out, plan, f.Debts, opts.schedule)
	if opts.pdfPath != "" {
		return writePDF(opts.pdfPath, plan, f.Debts)
	}
	return nil
}

func printPlan(out io.Writer, plan domain.PayoffPlan, debts []domain.DebtRecord, schedule bool) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Strategy:\t%s\n", plan.Strategy)
	fmt.Fprintf(tw, "Monthly budget:\t%s\n", report.FormatMoney(plan.MonthlyPayment))
	if plan.Capped {
		fmt.Fprintf(tw, "Months to payoff:\tnever (stopped after %d months)\n", plan.MonthsToPayoff)
	} else {
		fmt.Fprintf(tw, "Months to payoff:\t%d\n", plan.MonthsToPayoff)
		fmt.Fprintf(tw, "Debt-free date:\t%s\n", plan.PayoffDate.Format("January 2006"))
	}
	fmt.Fprintf(tw, "Total interest:\t%s\n", report.FormatMoney(plan.TotalInterest))
	fmt.Fprintln(tw)

	names := make(map[string]string, len(debts))
	for _, d := range debts {
		names[d.ID] = d.Name
	}
	fmt.Fprintln(tw, "#\tDEBT\tPAID OFF")
	for i, id := range plan.Order {
		paid := "-"
		if m := plan.PayoffMonth(id); m > 0 {
			paid = fmt.Sprintf("month %d", m)
		}
		name := names[id]
		if name == "" {
			name = id
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, name, paid)
	}

	if schedule {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "MONTH\tINTEREST\tPRINCIPAL\tREMAINING")
		for _, e := range plan.Schedule {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Month,
				report.FormatMoney(e.InterestPaid), report.FormatMoney(e.PrincipalPaid), report.FormatMoney(e.RemainingBalance))
		}
	}
	_ = tw.Flush()

	for _, issue := range plan.Issues {
		fmt.Fprintf(out, "note: %s %s\n", issue.Code, issue.Field)
	}
	if plan.Explanation != "" {
		fmt.Fprintf(out, "\n%s\n", plan.Explanation)
	}
}

func printComparison(out io.Writer, cmp domain.Comparison) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tMONTHS\tINTEREST\tDEBT-FREE")
	for _, s := range cmp.Summaries {
		months := fmt.Sprintf("%d", s.MonthsToPayoff)
		date := s.PayoffDate.Format("Jan 2006")
		if s.Capped {
			months, date = "never", "-"
		}
		marker := ""
		if s.Strategy == cmp.Best.Strategy {
			marker = " *"
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\n", s.Strategy, marker, months, report.FormatMoney(s.TotalInterest), date)
	}
	_ = tw.Flush()

	fmt.Fprintf(out, "\nBest: %s, saves %s and %d months versus snowball\n",
		cmp.Best.Strategy, report.FormatMoney(cmp.InterestSaved), cmp.MonthsSaved)
	if cmp.Explanation != "" {
		fmt.Fprintf(out, "\n%s\n", cmp.Explanation)
	}
}

func writePDF(path string, plan domain.PayoffPlan, debts []domain.DebtRecord) (err error) {
	if path == "" {
		return errors.New("pdf path is empty")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create pdf: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close pdf: %w", cerr)
		}
	}()

	if err := report.WritePlanPDF(f, plan, debts, report.Options{GeneratedAt: time.Now()}); err != nil {
		return err
	}
	log.WithField("path", path).Info("Wrote plan PDF")
	return nil
}
