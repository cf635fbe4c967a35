package domain

type DTIStatus string

const (
	DTIHealthy    DTIStatus = "healthy"
	DTIManageable DTIStatus = "manageable"
	DTIFair       DTIStatus = "fair"
	DTIAtRisk     DTIStatus = "at-risk"
	// DTIUndefined is reported when income is zero and no ratio exists.
	DTIUndefined DTIStatus = "undefined"
)

// DTIThresholds are inclusive upper bounds, in percent, for each tier.
// Anything above Fair is at-risk.
type DTIThresholds struct {
	Healthy    float64 `json:"healthy" yaml:"healthy"`
	Manageable float64 `json:"manageable" yaml:"manageable"`
	Fair       float64 `json:"fair" yaml:"fair"`
}

var DefaultDTIThresholds = DTIThresholds{Healthy: 20, Manageable: 30, Fair: 40}

type DTIResult struct {
	Ratio           float64           `json:"ratio"`
	Status          DTIStatus         `json:"status"`
	Message         string            `json:"message"`
	Recommendations []string          `json:"recommendations"`
	Issues          []ValidationIssue `json:"issues,omitempty"`
}

type HealthInput struct {
	MonthlyIncome       float64 `json:"monthlyIncome"`
	MonthlyExpenses     float64 `json:"monthlyExpenses"`
	MonthlyDebtPayments float64 `json:"monthlyDebtPayments"`
	TotalDebt           float64 `json:"totalDebt"`
}

type HealthSnapshot struct {
	DisposableIncome   float64           `json:"disposableIncome"`
	DTI                DTIResult         `json:"dti"`
	SimplePayoffMonths int               `json:"simplePayoffMonths"`
	Issues             []ValidationIssue `json:"issues,omitempty"`
}
