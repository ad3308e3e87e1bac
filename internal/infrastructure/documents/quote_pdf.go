package documents

import (
	"context"
	"fmt"
	"strings"

	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase/interfaces"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// QuotePDFRenderer builds the printable quote document handed to the client.
// It renders the monetary values already stored on the quote and never
// recomputes them.
type QuotePDFRenderer struct{}

var _ interfaces.IQuoteDocumentRenderer = (*QuotePDFRenderer)(nil)

func NewQuotePDFRenderer() *QuotePDFRenderer {
	return &QuotePDFRenderer{}
}

func (r *QuotePDFRenderer) Render(_ context.Context, q entities.Quote, c entities.Client) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, q)
	addClientBlock(m, q, c)
	addSiteBlock(m, q)
	addMaterialsTable(m, q)
	addHelpersBlock(m, q)
	addTotalsBlock(m, q)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, q entities.Quote) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New("Pintura XPTO", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("ORÇAMENTO", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Emitido em %s", q.CreatedAt.Format("02/01/2006")), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Nº %s", q.ID), props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

func addClientBlock(m core.Maroto, q entities.Quote, c entities.Client) {
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("CLIENTE", labelStyle())),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(c.Name, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
			col.New(6).Add(text.New(clientDocument(c), valueStyle())),
		),
	)

	contact := c.Phone
	if c.Email != "" {
		contact = fmt.Sprintf("%s | %s", c.Phone, c.Email)
	}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New(contact, valueStyle())),
		),
	)

	if addr := clientAddress(c); addr != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New(addr, valueStyle())),
			),
		)
	}

	m.AddRows(row.New(3))
}

func addSiteBlock(m core.Maroto, q entities.Quote) {
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("OBRA", labelStyle())),
		),
		row.New(6).Add(
			col.New(12).Add(text.New(q.SiteAddress, valueStyle())),
		),
	)

	details := []string{}
	if q.ServiceType != "" {
		details = append(details, fmt.Sprintf("Serviço: %s", q.ServiceType))
	}
	if q.Area > 0 {
		details = append(details, fmt.Sprintf("Área: %.2f m²", q.Area))
	}
	if q.DurationDays > 0 {
		details = append(details, fmt.Sprintf("Duração: %d dias", q.DurationDays))
	}
	if len(details) > 0 {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New(strings.Join(details, " | "), valueStyle())),
			),
		)
	}

	if q.Specifications != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New(q.Specifications, valueStyle())),
			),
		)
	}

	m.AddRows(row.New(3))
}

func addMaterialsTable(m core.Maroto, q entities.Quote) {
	if len(q.Materials) == 0 {
		return
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("MATERIAIS", labelStyle())),
		),
		row.New(6).Add(
			col.New(5).Add(text.New("Descrição", headerCellStyle(align.Left))),
			col.New(2).Add(text.New("Qtde", headerCellStyle(align.Right))),
			col.New(2).Add(text.New("Preço unit.", headerCellStyle(align.Right))),
			col.New(3).Add(text.New("Total", headerCellStyle(align.Right))),
		),
	)

	for _, mat := range q.Materials {
		name := mat.Name
		if mat.Brand != "" {
			name = fmt.Sprintf("%s (%s)", mat.Name, mat.Brand)
		}
		qty := fmt.Sprintf("%.2f", mat.Quantity)
		if mat.Unit != "" {
			qty = fmt.Sprintf("%.2f %s", mat.Quantity, mat.Unit)
		}
		m.AddRows(
			row.New(6).Add(
				col.New(5).Add(text.New(name, cellStyle(align.Left))),
				col.New(2).Add(text.New(qty, cellStyle(align.Right))),
				col.New(2).Add(text.New(formatBRL(mat.UnitPrice), cellStyle(align.Right))),
				col.New(3).Add(text.New(formatBRL(mat.LineTotal), cellStyle(align.Right))),
			),
		)
	}

	m.AddRows(row.New(3))
}

func addHelpersBlock(m core.Maroto, q entities.Quote) {
	if q.PrimaryName == "" && len(q.Helpers) == 0 {
		return
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("MÃO DE OBRA", labelStyle())),
		),
	)

	if q.PrimaryName != "" {
		m.AddRows(laborRow(q.PrimaryName, q.PrimaryDailyRate, q.PrimaryDays))
	}
	for _, h := range q.Helpers {
		m.AddRows(laborRow(h.Name, h.DailyRate, h.Days))
	}

	m.AddRows(row.New(3))
}

func laborRow(name string, dailyRate float64, days int) core.Row {
	return row.New(6).Add(
		col.New(5).Add(text.New(name, cellStyle(align.Left))),
		col.New(2).Add(text.New(fmt.Sprintf("%d dias", days), cellStyle(align.Right))),
		col.New(2).Add(text.New(formatBRL(dailyRate), cellStyle(align.Right))),
		col.New(3).Add(text.New(formatBRL(dailyRate*float64(days)), cellStyle(align.Right))),
	)
}

func addTotalsBlock(m core.Maroto, q entities.Quote) {
	m.AddRows(
		totalRow("Materiais", q.MaterialsValue, false),
		totalRow("Mão de obra", q.LaborValue, false),
		totalRow("Margem", q.ProfitMargin, false),
		totalRow("TOTAL", q.TotalValue, true),
	)
}

func totalRow(label string, value float64, bold bool) core.Row {
	style := fontstyle.Normal
	size := 9.0
	if bold {
		style = fontstyle.Bold
		size = 11
	}
	return row.New(7).Add(
		col.New(9).Add(text.New(label, props.Text{
			Size:  size,
			Style: style,
			Align: align.Right,
		})),
		col.New(3).Add(text.New(formatBRL(value), props.Text{
			Size:  size,
			Style: style,
			Align: align.Right,
		})),
	)
}

func labelStyle() props.Text {
	return props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
}

func valueStyle() props.Text {
	return props.Text{
		Size:  8,
		Align: align.Left,
	}
}

func headerCellStyle(a align.Type) props.Text {
	return props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: a,
	}
}

func cellStyle(a align.Type) props.Text {
	return props.Text{
		Size:  8,
		Align: a,
	}
}

func clientDocument(c entities.Client) string {
	if c.Type == entities.ClientTypeJuridica && c.CNPJ != "" {
		return fmt.Sprintf("CNPJ %s", c.CNPJ)
	}
	if c.CPF != "" {
		return fmt.Sprintf("CPF %s", c.CPF)
	}
	return ""
}

func clientAddress(c entities.Client) string {
	if c.Address == "" {
		return ""
	}
	parts := []string{c.Address}
	if c.Number != "" {
		parts[0] = fmt.Sprintf("%s, %s", c.Address, c.Number)
	}
	if c.Complement != "" {
		parts = append(parts, c.Complement)
	}
	if c.Neighborhood != "" {
		parts = append(parts, c.Neighborhood)
	}
	if c.CEP != "" {
		parts = append(parts, fmt.Sprintf("CEP %s", c.CEP))
	}
	return strings.Join(parts, " - ")
}

// formatBRL renders a monetary value in Brazilian convention
// (thousands separated by dots, comma before cents).
func formatBRL(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s[:len(s)-3]
	cents := s[len(s)-2:]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := fmt.Sprintf("R$ %s,%s", b.String(), cents)
	if neg {
		out = fmt.Sprintf("R$ -%s,%s", b.String(), cents)
	}
	return out
}
