package response

import (
	"time"

	"pintura_xpto/internal/domain/entities"
)

type MaterialResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand,omitempty"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type HelperResponse struct {
	Name      string  `json:"name"`
	DailyRate float64 `json:"daily_rate"`
	Days      int     `json:"days"`
}

type QuoteResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`

	SiteAddress    string  `json:"site_address"`
	SiteDetails    string  `json:"site_details,omitempty"`
	ServiceType    string  `json:"service_type,omitempty"`
	Specifications string  `json:"specifications,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	Area           float64 `json:"area,omitempty"`
	DurationDays   int     `json:"duration_days,omitempty"`

	PricingMode      string             `json:"pricing_mode"`
	FixedPrice       float64            `json:"fixed_price,omitempty"`
	PrimaryName      string             `json:"primary_name,omitempty"`
	PrimaryDailyRate float64            `json:"primary_daily_rate,omitempty"`
	PrimaryDays      int                `json:"primary_days,omitempty"`
	Helpers          []HelperResponse   `json:"helpers,omitempty"`
	Materials        []MaterialResponse `json:"materials"`

	ProfitMargin   float64 `json:"profit_margin"`
	MaterialsValue float64 `json:"materials_value"`
	MaterialsCost  float64 `json:"materials_cost"`
	LaborValue     float64 `json:"labor_value"`
	TotalValue     float64 `json:"total_value"`

	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	res := QuoteResponse{
		ID:               q.ID,
		ClientID:         q.ClientID,
		SiteAddress:      q.SiteAddress,
		SiteDetails:      q.SiteDetails,
		ServiceType:      q.ServiceType,
		Specifications:   q.Specifications,
		Notes:            q.Notes,
		Area:             q.Area,
		DurationDays:     q.DurationDays,
		PricingMode:      string(q.PricingMode),
		FixedPrice:       q.FixedPrice,
		PrimaryName:      q.PrimaryName,
		PrimaryDailyRate: q.PrimaryDailyRate,
		PrimaryDays:      q.PrimaryDays,
		ProfitMargin:     q.ProfitMargin,
		MaterialsValue:   q.MaterialsValue,
		MaterialsCost:    q.MaterialsCost,
		LaborValue:       q.LaborValue,
		TotalValue:       q.TotalValue,
		Status:           string(q.Status),
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
		StartDate:        q.StartDate,
		EndDate:          q.EndDate,
		CompletedAt:      q.CompletedAt,
	}

	res.Materials = make([]MaterialResponse, 0, len(q.Materials))
	for _, m := range q.Materials {
		res.Materials = append(res.Materials, MaterialResponse{
			ID:        m.ID,
			Name:      m.Name,
			Brand:     m.Brand,
			Quantity:  m.Quantity,
			Unit:      m.Unit,
			UnitPrice: m.UnitPrice,
			LineTotal: m.LineTotal,
		})
	}
	for _, h := range q.Helpers {
		res.Helpers = append(res.Helpers, HelperResponse{Name: h.Name, DailyRate: h.DailyRate, Days: h.Days})
	}
	return res
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}
