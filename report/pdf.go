package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"debt-planner/domain"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// Options control the rendered report. Zero values pick sensible defaults.
type Options struct {
	Title       string
	GeneratedAt time.Time
	// MaxScheduleRows truncates the month-by-month table; 0 means 120.
	MaxScheduleRows int
}

type planReport struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	plan  domain.PayoffPlan
	debts map[string]domain.DebtRecord
	opts  Options
}

// WritePlanPDF renders a payoff plan as an A4 PDF.
func WritePlanPDF(w io.Writer, plan domain.PayoffPlan, debts []domain.DebtRecord, opts Options) error {
	if opts.Title == "" {
		opts.Title = "Debt Payoff Plan"
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}
	if opts.MaxScheduleRows <= 0 {
		opts.MaxScheduleRows = 120
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	r := &planReport{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		plan:  plan,
		debts: make(map[string]domain.DebtRecord, len(debts)),
		opts:  opts,
	}
	for _, d := range debts {
		r.debts[d.ID] = d
	}

	r.pdf.SetTitle(opts.Title, false)
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetFooterFunc(r.footer)
	r.pdf.AliasNbPages("")

	r.addSummaryPage()
	r.addSchedule()

	if err := r.pdf.Error(); err != nil {
		return fmt.Errorf("render plan pdf: %w", err)
	}
	return r.pdf.Output(w)
}

func (r *planReport) addSummaryPage() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, r.text(r.opts.Title), "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.CellFormat(contentWidth, 6, "Generated: "+r.opts.GeneratedAt.Format("2 January 2006"), "", 1, "C", false, 0, "")
	r.pdf.Ln(8)

	r.sectionHeading("Summary")
	payoff := r.plan.PayoffDate.Format("January 2006")
	months := fmt.Sprintf("%d", r.plan.MonthsToPayoff)
	if r.plan.Capped {
		payoff = "Not within 100 years"
		months = "Never"
	}
	rows := [][2]string{
		{"Strategy", strategyLabel(r.plan.Strategy)},
		{"Monthly budget", FormatMoney(r.plan.MonthlyPayment)},
		{"Months to payoff", months},
		{"Debt-free date", payoff},
		{"Total interest", FormatMoney(r.plan.TotalInterest)},
	}
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	for i, row := range rows {
		fill := i%2 == 0
		r.pdf.SetFont("Arial", "B", 11)
		r.pdf.SetTextColor(50, 50, 50)
		r.pdf.CellFormat(contentWidth*0.45, 8, row[0], "1", 0, "L", fill, 0, "")
		r.pdf.SetFont("Arial", "", 11)
		r.pdf.CellFormat(contentWidth*0.55, 8, row[1], "1", 1, "R", fill, 0, "")
	}
	r.pdf.Ln(8)

	r.sectionHeading("Payoff order")
	widths := []float64{10, 62, 32, 22, 30, 24}
	r.tableHeader(widths, []string{"#", "Debt", "Balance", "APR", "Minimum", "Paid off"})
	r.pdf.SetFont("Arial", "", 10)
	for i, id := range r.plan.Order {
		d := r.debts[id]
		name := d.Name
		if name == "" {
			name = id
		}
		paid := "-"
		if m := r.plan.PayoffMonth(id); m > 0 {
			paid = fmt.Sprintf("Month %d", m)
		}
		cells := []string{
			fmt.Sprintf("%d", i+1), r.text(truncate(name, 34)), FormatMoney(d.Balance),
			fmt.Sprintf("%.2f%%", d.InterestRate), FormatMoney(d.MinimumPayment), paid,
		}
		for j, c := range cells {
			align := "R"
			if j == 1 {
				align = "L"
			}
			r.pdf.CellFormat(widths[j], 7, c, "1", 0, align, false, 0, "")
		}
		r.pdf.Ln(-1)
	}

	if r.plan.Explanation != "" {
		r.pdf.Ln(8)
		r.sectionHeading("Advisor notes")
		r.pdf.SetFont("Arial", "", 10)
		r.pdf.SetTextColor(50, 50, 50)
		r.pdf.MultiCell(contentWidth, 5, r.text(r.plan.Explanation), "", "L", false)
	}

	if len(r.plan.Issues) > 0 {
		r.pdf.Ln(6)
		r.pdf.SetFont("Arial", "I", 9)
		r.pdf.SetTextColor(150, 60, 60)
		codes := make([]string, len(r.plan.Issues))
		for i, issue := range r.plan.Issues {
			codes[i] = string(issue.Code)
		}
		r.pdf.MultiCell(contentWidth, 4.5, "Input adjustments: "+strings.Join(codes, ", "), "", "L", false)
	}
}

func (r *planReport) addSchedule() {
	if len(r.plan.Schedule) == 0 {
		return
	}
	r.pdf.AddPage()
	r.sectionHeading("Month by month")

	widths := []float64{20, 50, 40, 70}
	header := []string{"Month", "Interest", "Principal", "Remaining balance"}
	r.tableHeader(widths, header)

	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	_, pageHeight := r.pdf.GetPageSize()
	for i, entry := range r.plan.Schedule {
		if i >= r.opts.MaxScheduleRows {
			r.pdf.SetFont("Arial", "I", 9)
			r.pdf.CellFormat(contentWidth, 6,
				fmt.Sprintf("... %d more months not shown", len(r.plan.Schedule)-i), "", 1, "C", false, 0, "")
			break
		}
		if r.pdf.GetY() > pageHeight-marginBottom-8 {
			r.pdf.AddPage()
			r.tableHeader(widths, header)
			r.pdf.SetFont("Arial", "", 9)
			r.pdf.SetTextColor(50, 50, 50)
		}
		cells := []string{
			fmt.Sprintf("%d", entry.Month),
			FormatMoney(entry.InterestPaid),
			FormatMoney(entry.PrincipalPaid),
			FormatMoney(entry.RemainingBalance),
		}
		for j, c := range cells {
			r.pdf.CellFormat(widths[j], 6, c, "1", 0, "R", i%2 == 1, 0, "")
		}
		r.pdf.Ln(-1)
	}
}

func (r *planReport) sectionHeading(text string) {
	r.pdf.SetFont("Arial", "B", 13)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, text, "", 1, "L", false, 0, "")
	r.pdf.Ln(1)
}

func (r *planReport) tableHeader(widths []float64, labels []string) {
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	for i, l := range labels {
		r.pdf.CellFormat(widths[i], 7, l, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *planReport) footer() {
	r.pdf.SetY(-15)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(150, 150, 150)
	r.pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", r.pdf.PageNo()), "", 0, "C", false, 0, "")
}

// text maps s onto the cp1252 encoding of the core fonts.
func (r *planReport) text(s string) string {
	return r.tr(latin1(s))
}

// FormatMoney renders an amount as $1,234.56.
func FormatMoney(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")

	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + "$" + b.String() + "." + frac
}

func strategyLabel(s domain.Strategy) string {
	switch s {
	case domain.Snowball:
		return "Snowball (smallest balance first)"
	case domain.Hybrid:
		return "Hybrid (rate and size blend)"
	default:
		return "Avalanche (highest rate first)"
	}
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "."
}

// latin1 folds typographic punctuation and drops what cp1252 cannot hold.
func latin1(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '’' || r == '‘':
			return '\''
		case r == '“' || r == '”':
			return '"'
		case r == '–' || r == '—':
			return '-'
		case r > 0xff:
			return -1
		}
		return r
	}, s)
}
