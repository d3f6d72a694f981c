package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	portssvc "github.com/SscSPs/revenue_split_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_split_app/internal/dto"
	"github.com/SscSPs/revenue_split_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.CurrencyConverterSvcFacade
}

func newExchangeRateHandler(rs portssvc.CurrencyConverterSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rs portssvc.CurrencyConverterSvcFacade) {
	h := newExchangeRateHandler(rs)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.getRateTable)
		rates.POST("/refresh", h.refreshRates)
		rates.GET("/:from/:to", h.getExchangeRate)
	}
}

func (h *exchangeRateHandler) tableResponse() dto.ExchangeRateTableResponse {
	return dto.ExchangeRateTableResponse{
		Base:   domain.BaseCurrency,
		Rates:  h.rateService.Rates(),
		Status: h.rateService.Status(),
	}
}

// getRateTable returns the whole table and where it came from.
func (h *exchangeRateHandler) getRateTable(c *gin.Context) {
	h.rateService.EnsureRates(c.Request.Context())
	c.JSON(http.StatusOK, h.tableResponse())
}

// getExchangeRate returns the multiplier between two supported currencies.
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	from := strings.ToUpper(c.Param("from"))
	to := strings.ToUpper(c.Param("to"))
	for _, code := range []string{from, to} {
		if !domain.IsSupportedCurrency(code) {
			respondError(c, apperrors.NewValidationError("unsupported currency: "+code), "Unsupported currency")
			return
		}
	}

	h.rateService.EnsureRates(c.Request.Context())
	rate := h.rateService.GetExchangeRate(from, to)
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(from, to, rate, h.rateService.Status()))
}

// refreshRates bypasses the freshness window. A failed fetch still responds
// 200 with the fallback table; the status carries the error.
func (h *exchangeRateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	status, err := h.rateService.ForceRefresh(c.Request.Context())
	if err != nil {
		logger.Warn("Forced exchange rate refresh failed",
			slog.String("user_id", userID),
			slog.String("source", string(status.Source)),
			slog.String("error", err.Error()))
	} else {
		logger.Info("Exchange rates refreshed on request", slog.String("user_id", userID))
	}
	c.JSON(http.StatusOK, h.tableResponse())
}
