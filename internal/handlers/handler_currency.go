package handlers

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	portssvc "github.com/SscSPs/revenue_split_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_split_app/internal/dto"
	"github.com/SscSPs/revenue_split_app/internal/middleware"
	"github.com/SscSPs/revenue_split_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService   portssvc.CurrencyConverterSvcFacade
	preferenceService portssvc.PreferenceSvc
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencyConverterSvcFacade, ps portssvc.PreferenceSvc) *currencyHandler {
	return &currencyHandler{
		currencyService:   cs,
		preferenceService: ps,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, cs portssvc.CurrencyConverterSvcFacade, ps portssvc.PreferenceSvc) {
	h := newCurrencyHandler(cs, ps)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/convert", h.convertCurrency)
		currencies.GET("/format", h.formatCurrency)
	}
}

// listCurrencies returns every supported currency with its current rate from GBP.
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	h.currencyService.EnsureRates(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(domain.SupportedCurrencies, h.currencyService.Rates()))
}

// convertCurrency converts ?amount from ?from into ?to.
func (h *currencyHandler) convertCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertCurrencyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err, "ConvertCurrency query")
		return
	}
	if math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0) {
		respondError(c, apperrors.NewValidationError("amount must be a finite number"), "Invalid amount")
		return
	}
	for _, code := range []string{req.From, req.To} {
		if !domain.IsSupportedCurrency(code) {
			respondError(c, apperrors.NewValidationError("unsupported currency: "+code), "Unsupported currency")
			return
		}
	}

	h.currencyService.EnsureRates(c.Request.Context())
	rate := h.currencyService.GetExchangeRate(req.From, req.To)
	converted := *req.Amount * rate
	if math.IsInf(converted, 0) || math.IsNaN(converted) {
		respondError(c, apperrors.NewValidationError("converted amount is out of range"), "Invalid amount")
		return
	}
	logger.Debug("Converted amount", slog.String("from", req.From), slog.String("to", req.To), slog.Float64("rate", rate))

	c.JSON(http.StatusOK, dto.ConvertCurrencyResponse{
		Amount:          *req.Amount,
		From:            req.From,
		To:              req.To,
		Rate:            rate,
		ConvertedAmount: converted,
	})
}

// formatCurrency renders a GBP amount in ?currency, or the caller's selected currency.
func (h *currencyHandler) formatCurrency(c *gin.Context) {
	req := dto.FormatCurrencyRequest{FormatOptions: utils.DefaultFormatOptions()}
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err, "FormatCurrency query")
		return
	}

	code := req.Currency
	if code == "" {
		if userID, ok := middleware.GetUserIDFromContext(c); ok {
			code = h.preferenceService.SelectedCurrency(c.Request.Context(), userID)
		} else {
			code = domain.BaseCurrency
		}
	}
	currency, _ := domain.LookupCurrency(code)

	h.currencyService.EnsureRates(c.Request.Context())
	c.JSON(http.StatusOK, dto.FormatCurrencyResponse{
		Currency:  currency.Code,
		Formatted: h.currencyService.FormatNullable(req.Amount, currency.Code, req.FormatOptions),
	})
}
