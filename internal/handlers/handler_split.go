package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	portssvc "github.com/SscSPs/revenue_split_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_split_app/internal/dto"
	"github.com/SscSPs/revenue_split_app/internal/middleware"
	"github.com/SscSPs/revenue_split_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// splitHandler handles split configuration and calculation requests.
type splitHandler struct {
	splitService      portssvc.SplitSvcFacade
	currencyService   portssvc.CurrencyConverterSvcFacade
	preferenceService portssvc.PreferenceSvc
}

func newSplitHandler(ss portssvc.SplitSvcFacade, cs portssvc.CurrencyConverterSvcFacade, ps portssvc.PreferenceSvc) *splitHandler {
	return &splitHandler{
		splitService:      ss,
		currencyService:   cs,
		preferenceService: ps,
	}
}

// registerSplitRoutes registers routes related to revenue splits.
func registerSplitRoutes(rg *gin.RouterGroup, ss portssvc.SplitSvcFacade, cs portssvc.CurrencyConverterSvcFacade, ps portssvc.PreferenceSvc) {
	h := newSplitHandler(ss, cs, ps)

	cfg := rg.Group("/split-configuration")
	{
		cfg.GET("", h.getConfiguration)
		cfg.PUT("", h.updateConfiguration)
		cfg.GET("/overrides", h.listOverrides)
		cfg.PUT("/overrides/:labelAdminID", h.setOverride)
		cfg.DELETE("/overrides/:labelAdminID", h.removeOverride)
	}

	rg.POST("/splits/calculate", h.calculate)
}

func (h *splitHandler) getConfiguration(c *gin.Context) {
	cfg, err := h.splitService.GetSplitConfiguration(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve split configuration")
		return
	}
	c.JSON(http.StatusOK, dto.ToSplitConfigurationResponse(cfg))
}

func (h *splitHandler) updateConfiguration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateSplitConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "JSON for UpdateSplitConfiguration")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	logger.Info("Received request to update split configuration", slog.String("user_id", userID))
	cfg, err := h.splitService.UpdateSplitConfiguration(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update split configuration")
		return
	}
	c.JSON(http.StatusOK, dto.ToSplitConfigurationResponse(cfg))
}

func (h *splitHandler) listOverrides(c *gin.Context) {
	overrides, err := h.splitService.ListLabelAdminOverrides(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list label admin overrides")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLabelAdminOverrideResponse(overrides))
}

func (h *splitHandler) setOverride(c *gin.Context) {
	var req dto.SetLabelAdminOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "JSON for SetLabelAdminOverride")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	override, err := h.splitService.SetLabelAdminOverride(c.Request.Context(), c.Param("labelAdminID"), *req.Percentage, userID)
	if err != nil {
		respondError(c, err, "Failed to set label admin override")
		return
	}
	c.JSON(http.StatusOK, dto.ToLabelAdminOverrideResponse(override))
}

func (h *splitHandler) removeOverride(c *gin.Context) {
	if err := h.splitService.RemoveLabelAdminOverride(c.Request.Context(), c.Param("labelAdminID")); err != nil {
		respondError(c, err, "Failed to remove label admin override")
		return
	}
	c.Status(http.StatusNoContent)
}

// calculate runs the waterfall and formats each line in the display currency:
// the request's displayCurrency, else the caller's selected currency.
func (h *splitHandler) calculate(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CalculateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "JSON for CalculateSplit")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var (
		result *domain.SplitResult
		err    error
	)
	switch {
	case req.Configuration != nil:
		result, err = h.splitService.CalculateSplitWith(ctx, *req.GrossAmount, req.Configuration.ToDomain(), req.OverridePercentage)
	case req.OverridePercentage != nil:
		var cfg *domain.SplitConfiguration
		if cfg, err = h.splitService.GetSplitConfiguration(ctx); err == nil {
			result, err = h.splitService.CalculateSplitWith(ctx, *req.GrossAmount, *cfg, req.OverridePercentage)
		}
	default:
		result, err = h.splitService.CalculateSplit(ctx, *req.GrossAmount, req.LabelAdminID)
	}
	if err != nil {
		respondError(c, err, "Failed to calculate split")
		return
	}

	display := req.DisplayCurrency
	if display == "" {
		display = h.preferenceService.SelectedCurrency(ctx, userID)
	}
	if !domain.IsSupportedCurrency(display) {
		respondError(c, apperrors.NewValidationError("unsupported currency: "+display), "Unsupported display currency")
		return
	}

	h.currencyService.EnsureRates(ctx)
	opts := utils.FormatOptions{ShowSymbol: true, Decimals: 2, Compact: req.Compact}
	format := func(amount float64) string {
		return h.currencyService.FormatCurrency(amount, display, opts)
	}

	tiers := []struct {
		name       domain.TierName
		percentage float64
		amount     float64
	}{
		{domain.DistributionPartner, result.DistributionPartnerPercentage, result.DistributionPartnerAmount},
		{domain.CompanyAdmin, result.CompanyAdminPercentage, result.CompanyAdminAmount},
		{domain.LabelAdmin, result.LabelAdminPercentage, result.LabelAdminAmount},
		{domain.Artist, result.ArtistPercentage, result.ArtistAmount},
	}
	lines := make([]dto.SplitLineResponse, len(tiers))
	for i, t := range tiers {
		lines[i] = dto.SplitLineResponse{Tier: t.name, Percentage: t.percentage, Amount: t.amount, Display: format(t.amount)}
	}

	c.JSON(http.StatusOK, dto.CalculateSplitResponse{
		SplitResult:      *result,
		DisplayCurrency:  display,
		GrossDisplay:     format(result.GrossAmount),
		FinalPoolDisplay: format(result.FinalPool),
		Lines:            lines,
	})
}
