package entities

import "time"

// QuoteStatus represents the lifecycle of a quote (orçamento) and the job
// (obra) it becomes once approved.
//
// Domain notes:
//   - PENDENTE is the initial status of every new quote.
//   - APROVADO triggers installment generation when a payment schedule is given.
//   - CONCLUIDO and REJEITADO are terminal; a concluded job rejects all
//     further mutation.

type QuoteStatus string

const (
	QuoteStatusPendente     QuoteStatus = "PENDENTE"
	QuoteStatusAprovado     QuoteStatus = "APROVADO"
	QuoteStatusRejeitado    QuoteStatus = "REJEITADO"
	QuoteStatusEmPreparacao QuoteStatus = "EM_PREPARACAO"
	QuoteStatusConcluido    QuoteStatus = "CONCLUIDO"
)

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step. Terminal states allow nothing.
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	switch s {
	case QuoteStatusPendente:
		return next == QuoteStatusAprovado || next == QuoteStatusRejeitado
	case QuoteStatusAprovado:
		return next == QuoteStatusEmPreparacao || next == QuoteStatusConcluido
	case QuoteStatusEmPreparacao:
		return next == QuoteStatusConcluido
	default:
		return false
	}
}

// IsTerminal reports whether no further status change is allowed.
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusConcluido || s == QuoteStatusRejeitado
}

// PricingMode selects how labor is priced: per-day rates ("metro") or a single
// fixed contract price ("empreita").

type PricingMode string

const (
	PricingModeMetro    PricingMode = "metro"
	PricingModeEmpreita PricingMode = "empreita"
)

// Material is a single material line owned by exactly one quote.
// LineTotal is always Quantity × UnitPrice.
type Material struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand,omitempty"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Helper is an assistant-labor entry billed as dailyRate × days.
type Helper struct {
	Name      string  `json:"name"`
	DailyRate float64 `json:"daily_rate"`
	Days      int     `json:"days"`
}

// Quote is the painting quote/job persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - Materials and Helpers are nested typed lists on the item.
//
// Monetary representation:
//   - MaterialsValue is the price charged for materials.
//   - MaterialsCost is the internal cost estimate (70% of MaterialsValue),
//     used only for profit reporting.
//   - TotalValue = MaterialsValue + LaborValue + ProfitMargin.
type Quote struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`

	SiteAddress    string  `json:"site_address"`
	SiteDetails    string  `json:"site_details,omitempty"`
	ServiceType    string  `json:"service_type"`
	Specifications string  `json:"specifications,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	Area           float64 `json:"area,omitempty"`
	DurationDays   int     `json:"duration_days,omitempty"`

	PricingMode      PricingMode `json:"pricing_mode"`
	FixedPrice       float64     `json:"fixed_price,omitempty"`
	PrimaryName      string      `json:"primary_name,omitempty"`
	PrimaryDailyRate float64     `json:"primary_daily_rate,omitempty"`
	PrimaryDays      int         `json:"primary_days,omitempty"`
	Helpers          []Helper    `json:"helpers,omitempty"`
	Materials        []Material  `json:"materials"`

	ProfitMargin   float64 `json:"profit_margin"`
	MaterialsValue float64 `json:"materials_value"`
	MaterialsCost  float64 `json:"materials_cost"`
	LaborValue     float64 `json:"labor_value"`
	TotalValue     float64 `json:"total_value"`

	Status      QuoteStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// IsCompleted reports whether the quote reached CONCLUIDO and is therefore
// immutable.
func (q Quote) IsCompleted() bool {
	return q.Status == QuoteStatusConcluido
}

// InProgress reports whether the job counts as "in progress" for financial
// reporting (approved or in preparation, not yet concluded).
func (q Quote) InProgress() bool {
	return q.Status == QuoteStatusAprovado || q.Status == QuoteStatusEmPreparacao
}
