package dashboard

// StatusCount is one bucket of a grouped count.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int64  `db:"count" json:"count"`
}

// FinancialSummary aggregates budgets and actuals across active
// projects. Only present for callers with financial visibility.
type FinancialSummary struct {
	TotalBudget     int64 `db:"total_budget" json:"total_budget"`
	TotalActualCost int64 `db:"total_actual_cost" json:"total_actual_cost"`
}

// Summary is the dashboard payload. Financials is nil when redacted,
// so the JSON key disappears rather than showing zeros.
type Summary struct {
	ProjectsByStatus     []StatusCount     `json:"projects_by_status"`
	TasksByStatus        []StatusCount     `json:"tasks_by_status"`
	PendingDrawings      int64             `json:"pending_drawings"`
	PendingMaterialSpecs int64             `json:"pending_material_specs"`
	Financials           *FinancialSummary `json:"financials,omitempty"`
}
