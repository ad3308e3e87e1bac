package handlers

import (
	"net/http"
	"strings"
	"time"

	response "pintura_xpto/internal/adapter/http/dto/response"
	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase"
	"pintura_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidReportFilter = pkg.NewDomainErrorSimple("INVALID_REPORT_FILTER", "Invalid report filter", http.StatusBadRequest)

// FinanceHandler handles the financial report endpoint.

type FinanceHandler struct {
	usecase usecase.IFinanceUseCase
}

func NewFinanceHandler(uc usecase.IFinanceUseCase) *FinanceHandler {
	return &FinanceHandler{usecase: uc}
}

// FinancialReport aggregates revenue, profit, pending/overdue totals and the
// trailing 12-month series. Accepts ?start_date=&end_date=&client_id=.
func (h *FinanceHandler) FinancialReport(c *gin.Context) {
	filter := entities.ReportFilter{
		ClientID: strings.TrimSpace(c.Query("client_id")),
	}

	if v := strings.TrimSpace(c.Query("start_date")); v != "" {
		t, err := parseReportDate(v)
		if err != nil {
			c.JSON(errInvalidReportFilter.HTTPStatus, errInvalidReportFilter.ToHTTPError())
			return
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(c.Query("end_date")); v != "" {
		t, err := parseReportDate(v)
		if err != nil {
			c.JSON(errInvalidReportFilter.HTTPStatus, errInvalidReportFilter.ToHTTPError())
			return
		}
		// End of the given day, so the range is inclusive.
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &t
	}

	report, err := h.usecase.Report(c.Request.Context(), filter)
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromFinancialReport(report))
}

func parseReportDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
