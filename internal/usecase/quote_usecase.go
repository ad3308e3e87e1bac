package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/domain/pricing"
	"pintura_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrInvalidQuoteID    = errors.New("invalid quote id")
	ErrQuoteCompleted    = errors.New("cannot modify a completed job")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrMissingClientName     = errors.New("client name is required")
	ErrMissingClientPhone    = errors.New("client phone is required")
	ErrInvalidClientType     = errors.New("client type must be fisica or juridica")
	ErrInvalidClientDocument = errors.New("client document must match the client type")
	ErrMissingSiteAddress    = errors.New("site address is required")
	ErrInvalidPricingMode    = errors.New("pricing mode must be metro or empreita")
	ErrInvalidFixedPrice     = errors.New("fixed price must be positive in empreita mode")

	ErrMissingMaterialName     = errors.New("material name is required")
	ErrInvalidMaterialQuantity = errors.New("material quantity must be positive")
	ErrInvalidMaterialPrice    = errors.New("material unit price must be positive")

	ErrInvalidInstallmentCount = errors.New("installment count must be at least 1")
	ErrInvalidFirstDueDate     = errors.New("first due date is required")
)

// ClientCommand is the client block of a quote submission. When no client
// matches the phone, a new one is created from these fields.
type ClientCommand struct {
	Name         string
	Phone        string
	Type         entities.ClientType
	CPF          string
	CNPJ         string
	Email        string
	Address      string
	Number       string
	Complement   string
	Neighborhood string
	CEP          string
}

// MaterialCommand is one material line of a quote submission.
type MaterialCommand struct {
	Name      string
	Brand     string
	Quantity  float64
	Unit      string
	UnitPrice float64
}

// CreateQuoteCommand is the validated input for a new quote.
type CreateQuoteCommand struct {
	Client           ClientCommand
	SiteAddress      string
	SiteDetails      string
	ServiceType      string
	Specifications   string
	Notes            string
	Area             float64
	DurationDays     int
	PricingMode      entities.PricingMode
	FixedPrice       float64
	PrimaryName      string
	PrimaryDailyRate float64
	PrimaryDays      int
	Helpers          []entities.Helper
	Materials        []MaterialCommand
	ProfitMargin     float64
	StartDate        *time.Time
	EndDate          *time.Time
}

// UpdateQuoteCommand carries the editable fields of an existing quote.
// Nil means "leave unchanged".
type UpdateQuoteCommand struct {
	SiteAddress *string
	SiteDetails *string
	Notes       *string
	ClientName  *string
	ClientPhone *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// PaymentScheduleCommand optionally accompanies an approval and materializes
// the installment records.
type PaymentScheduleCommand struct {
	Method       entities.PaymentMethod
	FirstDueDate time.Time
	Installments int
}

// IQuoteUseCase exposes the quote pricing and lifecycle operations.

type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, cmd CreateQuoteCommand) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context) ([]entities.Quote, error)
	Update(ctx context.Context, id string, cmd UpdateQuoteCommand) (entities.Quote, error)
	Approve(ctx context.Context, id string, schedule *PaymentScheduleCommand) (entities.Quote, error)
	Reject(ctx context.Context, id string) (entities.Quote, error)
	BeginPreparation(ctx context.Context, id string) (entities.Quote, error)
	Complete(ctx context.Context, id string) (entities.Quote, error)
	AddMaterial(ctx context.Context, id string, cmd MaterialCommand) (entities.Quote, error)
	Delete(ctx context.Context, id string) error
}

type QuoteUseCase struct {
	quotes   interfaces.IQuoteRepository
	clients  interfaces.IClientRepository
	payments interfaces.IPaymentRepository
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(quotes interfaces.IQuoteRepository, clients interfaces.IClientRepository, payments interfaces.IPaymentRepository) *QuoteUseCase {
	return &QuoteUseCase{quotes: quotes, clients: clients, payments: payments}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, cmd CreateQuoteCommand) (entities.Quote, error) {
	if err := validateQuoteCommand(cmd); err != nil {
		return entities.Quote{}, err
	}

	client, err := u.findOrCreateClient(ctx, cmd.Client)
	if err != nil {
		return entities.Quote{}, err
	}

	now := time.Now().UTC()
	q := entities.Quote{
		ID:               uuid.NewString(),
		ClientID:         client.ID,
		SiteAddress:      strings.TrimSpace(cmd.SiteAddress),
		SiteDetails:      strings.TrimSpace(cmd.SiteDetails),
		ServiceType:      strings.TrimSpace(cmd.ServiceType),
		Specifications:   strings.TrimSpace(cmd.Specifications),
		Notes:            strings.TrimSpace(cmd.Notes),
		Area:             cmd.Area,
		DurationDays:     cmd.DurationDays,
		PricingMode:      cmd.PricingMode,
		FixedPrice:       cmd.FixedPrice,
		PrimaryName:      strings.TrimSpace(cmd.PrimaryName),
		PrimaryDailyRate: cmd.PrimaryDailyRate,
		PrimaryDays:      cmd.PrimaryDays,
		Helpers:          cmd.Helpers,
		ProfitMargin:     cmd.ProfitMargin,
		Status:           entities.QuoteStatusPendente,
		CreatedAt:        now,
		UpdatedAt:        now,
		StartDate:        cmd.StartDate,
		EndDate:          cmd.EndDate,
	}

	q.Materials = make([]entities.Material, 0, len(cmd.Materials))
	for _, m := range cmd.Materials {
		q.Materials = append(q.Materials, entities.Material{
			ID:        uuid.NewString(),
			Name:      strings.TrimSpace(m.Name),
			Brand:     strings.TrimSpace(m.Brand),
			Quantity:  m.Quantity,
			Unit:      strings.TrimSpace(m.Unit),
			UnitPrice: m.UnitPrice,
			LineTotal: pricing.LineTotal(m.Quantity, m.UnitPrice),
		})
	}

	b := pricing.Calculate(q)
	q.MaterialsValue = b.MaterialsValue
	q.MaterialsCost = b.MaterialsCost
	q.LaborValue = b.LaborValue
	q.TotalValue = b.Total

	created, err := u.quotes.Create(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	slog.Info("quote created", "quote_id", created.ID, "client_id", client.ID, "total", created.TotalValue)
	return created, nil
}

func (u *QuoteUseCase) findOrCreateClient(ctx context.Context, cmd ClientCommand) (entities.Client, error) {
	phone := strings.TrimSpace(cmd.Phone)

	existing, err := u.clients.FindByPhone(ctx, phone)
	if err != nil {
		return entities.Client{}, err
	}
	if existing.ID != "" {
		return existing, nil
	}

	// Only the document matching the client type is stored.
	cpf, cnpj := strings.TrimSpace(cmd.CPF), strings.TrimSpace(cmd.CNPJ)
	if cmd.Type == entities.ClientTypeFisica {
		cnpj = ""
	} else {
		cpf = ""
	}

	now := time.Now().UTC()
	return u.clients.Create(ctx, entities.Client{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(cmd.Name),
		Phone:        phone,
		Type:         cmd.Type,
		CPF:          cpf,
		CNPJ:         cnpj,
		Email:        strings.TrimSpace(cmd.Email),
		Address:      strings.TrimSpace(cmd.Address),
		Number:       strings.TrimSpace(cmd.Number),
		Complement:   strings.TrimSpace(cmd.Complement),
		Neighborhood: strings.TrimSpace(cmd.Neighborhood),
		CEP:          strings.TrimSpace(cmd.CEP),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) List(ctx context.Context) ([]entities.Quote, error) {
	quotes, err := u.quotes.List(ctx, entities.ReportFilter{})
	if err != nil {
		return nil, err
	}
	// DynamoDB scans return no order; newest quotes come first.
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
	return quotes, nil
}

func (u *QuoteUseCase) Update(ctx context.Context, id string, cmd UpdateQuoteCommand) (entities.Quote, error) {
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.IsCompleted() {
		return entities.Quote{}, ErrQuoteCompleted
	}

	updated, err := u.quotes.UpdateDetails(ctx, q.ID, interfaces.QuoteDetailsUpdate{
		SiteAddress: cmd.SiteAddress,
		SiteDetails: cmd.SiteDetails,
		Notes:       cmd.Notes,
		StartDate:   cmd.StartDate,
		EndDate:     cmd.EndDate,
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	if cmd.ClientName != nil || cmd.ClientPhone != nil {
		if _, err := u.clients.Update(ctx, q.ClientID, interfaces.ClientUpdate{
			Name:  cmd.ClientName,
			Phone: cmd.ClientPhone,
		}); err != nil {
			return entities.Quote{}, err
		}
	}
	return updated, nil
}

func (u *QuoteUseCase) Approve(ctx context.Context, id string, schedule *PaymentScheduleCommand) (entities.Quote, error) {
	if schedule != nil {
		if !entities.ValidPaymentMethod(schedule.Method) {
			return entities.Quote{}, ErrInvalidPaymentMethod
		}
		if schedule.Installments < 0 {
			return entities.Quote{}, ErrInvalidInstallmentCount
		}
		if schedule.FirstDueDate.IsZero() {
			return entities.Quote{}, ErrInvalidFirstDueDate
		}
	}

	now := time.Now().UTC()
	q, err := u.transition(ctx, id, entities.QuoteStatusAprovado, interfaces.QuoteStatusUpdate{
		Status:    entities.QuoteStatusAprovado,
		StartDate: &now,
	})
	if err != nil {
		return entities.Quote{}, err
	}

	if schedule != nil {
		if err := u.generateInstallments(ctx, q, *schedule); err != nil {
			return entities.Quote{}, err
		}
	}
	return q, nil
}

// generateInstallments materializes N installment records with equal amounts
// (last one absorbs the cent-rounding remainder) due one month apart.
func (u *QuoteUseCase) generateInstallments(ctx context.Context, q entities.Quote, schedule PaymentScheduleCommand) error {
	count := schedule.Installments
	if count < 1 {
		count = 1
	}
	amounts := pricing.SplitInstallments(q.TotalValue, count)

	now := time.Now().UTC()
	for i, amount := range amounts {
		p := entities.Payment{
			ID:                uuid.NewString(),
			QuoteID:           q.ID,
			Amount:            amount,
			Method:            schedule.Method,
			Status:            entities.PaymentStatusPendente,
			DueDate:           schedule.FirstDueDate.AddDate(0, i, 0),
			InstallmentNumber: i + 1,
			InstallmentTotal:  count,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if _, err := u.payments.Create(ctx, p); err != nil {
			return err
		}
	}
	slog.Info("installments generated", "quote_id", q.ID, "count", count, "total", q.TotalValue)
	return nil
}

func (u *QuoteUseCase) Reject(ctx context.Context, id string) (entities.Quote, error) {
	return u.transition(ctx, id, entities.QuoteStatusRejeitado, interfaces.QuoteStatusUpdate{
		Status: entities.QuoteStatusRejeitado,
	})
}

func (u *QuoteUseCase) BeginPreparation(ctx context.Context, id string) (entities.Quote, error) {
	return u.transition(ctx, id, entities.QuoteStatusEmPreparacao, interfaces.QuoteStatusUpdate{
		Status: entities.QuoteStatusEmPreparacao,
	})
}

func (u *QuoteUseCase) Complete(ctx context.Context, id string) (entities.Quote, error) {
	now := time.Now().UTC()
	q, err := u.transition(ctx, id, entities.QuoteStatusConcluido, interfaces.QuoteStatusUpdate{
		Status:      entities.QuoteStatusConcluido,
		CompletedAt: &now,
	})
	if err != nil {
		return entities.Quote{}, err
	}

	// Conclusion guarantees at least one payment record for the job.
	existing, err := u.payments.ListByQuoteID(ctx, q.ID)
	if err != nil {
		return entities.Quote{}, err
	}
	if len(existing) == 0 {
		if _, err := u.payments.Create(ctx, entities.Payment{
			ID:                uuid.NewString(),
			QuoteID:           q.ID,
			Amount:            q.TotalValue,
			Method:            entities.PaymentMethodPix,
			Status:            entities.PaymentStatusPendente,
			DueDate:           now,
			InstallmentNumber: 1,
			InstallmentTotal:  1,
			CreatedAt:         now,
			UpdatedAt:         now,
		}); err != nil {
			return entities.Quote{}, err
		}
		slog.Info("final payment record created", "quote_id", q.ID, "amount", q.TotalValue)
	}
	return q, nil
}

// transition loads the quote, enforces the lifecycle rules and applies upd.
// Completed quotes always fail with ErrQuoteCompleted; any other illegal step
// fails with ErrInvalidTransition.
func (u *QuoteUseCase) transition(ctx context.Context, id string, next entities.QuoteStatus, upd interfaces.QuoteStatusUpdate) (entities.Quote, error) {
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.IsCompleted() {
		return entities.Quote{}, ErrQuoteCompleted
	}
	if !q.Status.CanTransitionTo(next) {
		return entities.Quote{}, ErrInvalidTransition
	}

	updated, err := u.quotes.UpdateStatus(ctx, q.ID, upd)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	slog.Info("quote status changed", "quote_id", q.ID, "from", q.Status, "to", next)
	return updated, nil
}

func (u *QuoteUseCase) AddMaterial(ctx context.Context, id string, cmd MaterialCommand) (entities.Quote, error) {
	if err := validateMaterialCommand(cmd); err != nil {
		return entities.Quote{}, err
	}

	q, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.IsCompleted() {
		return entities.Quote{}, ErrQuoteCompleted
	}

	m := entities.Material{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(cmd.Name),
		Brand:     strings.TrimSpace(cmd.Brand),
		Quantity:  cmd.Quantity,
		Unit:      strings.TrimSpace(cmd.Unit),
		UnitPrice: cmd.UnitPrice,
		LineTotal: pricing.LineTotal(cmd.Quantity, cmd.UnitPrice),
	}

	// Recompute from scratch over the new line set; no hidden accumulation.
	q.Materials = append(q.Materials, m)
	b := pricing.Calculate(q)

	updated, err := u.quotes.AppendMaterial(ctx, q.ID, m, interfaces.QuoteTotalsUpdate{
		MaterialsValue: b.MaterialsValue,
		MaterialsCost:  b.MaterialsCost,
		TotalValue:     b.Total,
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return updated, nil
}

func (u *QuoteUseCase) Delete(ctx context.Context, id string) error {
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Installments are owned by the quote; the delete cascades to them.
	if err := u.payments.DeleteByQuoteID(ctx, q.ID); err != nil {
		return err
	}
	return u.quotes.Delete(ctx, q.ID)
}

func validateQuoteCommand(cmd CreateQuoteCommand) error {
	if strings.TrimSpace(cmd.Client.Name) == "" {
		return ErrMissingClientName
	}
	if strings.TrimSpace(cmd.Client.Phone) == "" {
		return ErrMissingClientPhone
	}
	switch cmd.Client.Type {
	case entities.ClientTypeFisica:
		if strings.TrimSpace(cmd.Client.CNPJ) != "" && strings.TrimSpace(cmd.Client.CPF) == "" {
			return ErrInvalidClientDocument
		}
	case entities.ClientTypeJuridica:
		if strings.TrimSpace(cmd.Client.CPF) != "" && strings.TrimSpace(cmd.Client.CNPJ) == "" {
			return ErrInvalidClientDocument
		}
	default:
		return ErrInvalidClientType
	}
	if strings.TrimSpace(cmd.SiteAddress) == "" {
		return ErrMissingSiteAddress
	}
	switch cmd.PricingMode {
	case entities.PricingModeMetro:
	case entities.PricingModeEmpreita:
		if cmd.FixedPrice <= 0 {
			return ErrInvalidFixedPrice
		}
	default:
		return ErrInvalidPricingMode
	}
	for _, m := range cmd.Materials {
		if err := validateMaterialCommand(m); err != nil {
			return err
		}
	}
	return nil
}

func validateMaterialCommand(m MaterialCommand) error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrMissingMaterialName
	}
	if m.Quantity <= 0 {
		return ErrInvalidMaterialQuantity
	}
	if m.UnitPrice <= 0 {
		return ErrInvalidMaterialPrice
	}
	return nil
}
