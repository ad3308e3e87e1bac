package request

import (
	"errors"
	"strings"
	"time"

	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase"
)

var ErrInvalidDate = errors.New("invalid date format")

// Dates arrive either as plain days ("2006-01-02") or full RFC3339 timestamps.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, ErrInvalidDate
}

type ClientRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Type         string `json:"type"`
	CPF          string `json:"cpf"`
	CNPJ         string `json:"cnpj"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	CEP          string `json:"cep"`
}

type MaterialRequest struct {
	Name      string  `json:"name" binding:"required"`
	Brand     string  `json:"brand"`
	Quantity  float64 `json:"quantity" binding:"required"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price" binding:"required"`
}

type HelperRequest struct {
	Name      string  `json:"name"`
	DailyRate float64 `json:"daily_rate"`
	Days      int     `json:"days"`
}

// QuoteCreateRequest is the quote submission payload. The client block is
// matched by phone (find-or-create).
type QuoteCreateRequest struct {
	Client           ClientRequest     `json:"client" binding:"required"`
	SiteAddress      string            `json:"site_address" binding:"required"`
	SiteDetails      string            `json:"site_details"`
	ServiceType      string            `json:"service_type"`
	Specifications   string            `json:"specifications"`
	Notes            string            `json:"notes"`
	Area             float64           `json:"area"`
	DurationDays     int               `json:"duration_days"`
	PricingMode      string            `json:"pricing_mode" binding:"required"`
	FixedPrice       float64           `json:"fixed_price"`
	PrimaryName      string            `json:"primary_name"`
	PrimaryDailyRate float64           `json:"primary_daily_rate"`
	PrimaryDays      int               `json:"primary_days"`
	Helpers          []HelperRequest   `json:"helpers"`
	Materials        []MaterialRequest `json:"materials"`
	ProfitMargin     float64           `json:"profit_margin"`
	StartDate        string            `json:"start_date"`
	EndDate          string            `json:"end_date"`
}

func (r QuoteCreateRequest) ToCommand() (usecase.CreateQuoteCommand, error) {
	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return usecase.CreateQuoteCommand{}, err
	}
	endDate, err := parseDate(r.EndDate)
	if err != nil {
		return usecase.CreateQuoteCommand{}, err
	}

	clientType := entities.ClientType(strings.TrimSpace(r.Client.Type))
	if clientType == "" {
		clientType = entities.ClientTypeFisica
	}

	cmd := usecase.CreateQuoteCommand{
		Client: usecase.ClientCommand{
			Name:         r.Client.Name,
			Phone:        r.Client.Phone,
			Type:         clientType,
			CPF:          r.Client.CPF,
			CNPJ:         r.Client.CNPJ,
			Email:        r.Client.Email,
			Address:      r.Client.Address,
			Number:       r.Client.Number,
			Complement:   r.Client.Complement,
			Neighborhood: r.Client.Neighborhood,
			CEP:          r.Client.CEP,
		},
		SiteAddress:      r.SiteAddress,
		SiteDetails:      r.SiteDetails,
		ServiceType:      r.ServiceType,
		Specifications:   r.Specifications,
		Notes:            r.Notes,
		Area:             r.Area,
		DurationDays:     r.DurationDays,
		PricingMode:      entities.PricingMode(strings.TrimSpace(r.PricingMode)),
		FixedPrice:       r.FixedPrice,
		PrimaryName:      r.PrimaryName,
		PrimaryDailyRate: r.PrimaryDailyRate,
		PrimaryDays:      r.PrimaryDays,
		ProfitMargin:     r.ProfitMargin,
		StartDate:        startDate,
		EndDate:          endDate,
	}

	for _, h := range r.Helpers {
		cmd.Helpers = append(cmd.Helpers, entities.Helper{Name: h.Name, DailyRate: h.DailyRate, Days: h.Days})
	}
	for _, m := range r.Materials {
		cmd.Materials = append(cmd.Materials, m.ToCommand())
	}
	return cmd, nil
}

func (r MaterialRequest) ToCommand() usecase.MaterialCommand {
	return usecase.MaterialCommand{
		Name:      r.Name,
		Brand:     r.Brand,
		Quantity:  r.Quantity,
		Unit:      r.Unit,
		UnitPrice: r.UnitPrice,
	}
}

// QuoteUpdateRequest edits an existing quote. Absent fields stay unchanged.
type QuoteUpdateRequest struct {
	SiteAddress *string `json:"site_address"`
	SiteDetails *string `json:"site_details"`
	Notes       *string `json:"notes"`
	ClientName  *string `json:"client_name"`
	ClientPhone *string `json:"client_phone"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

func (r QuoteUpdateRequest) ToCommand() (usecase.UpdateQuoteCommand, error) {
	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return usecase.UpdateQuoteCommand{}, err
	}
	endDate, err := parseDate(r.EndDate)
	if err != nil {
		return usecase.UpdateQuoteCommand{}, err
	}
	return usecase.UpdateQuoteCommand{
		SiteAddress: r.SiteAddress,
		SiteDetails: r.SiteDetails,
		Notes:       r.Notes,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		StartDate:   startDate,
		EndDate:     endDate,
	}, nil
}

// QuoteApproveRequest optionally carries the installment schedule materialized
// on approval. An empty body approves without generating installments.
type QuoteApproveRequest struct {
	Method       string `json:"method"`
	FirstDueDate string `json:"first_due_date"`
	Installments int    `json:"installments"`
}

func (r QuoteApproveRequest) ToCommand() (*usecase.PaymentScheduleCommand, error) {
	if strings.TrimSpace(r.Method) == "" && strings.TrimSpace(r.FirstDueDate) == "" && r.Installments == 0 {
		return nil, nil
	}

	firstDueDate, err := parseDate(r.FirstDueDate)
	if err != nil {
		return nil, err
	}
	cmd := usecase.PaymentScheduleCommand{
		Method:       entities.PaymentMethod(strings.TrimSpace(r.Method)),
		Installments: r.Installments,
	}
	if firstDueDate != nil {
		cmd.FirstDueDate = *firstDueDate
	}
	return &cmd, nil
}
