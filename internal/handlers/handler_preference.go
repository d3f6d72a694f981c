package handlers

import (
	"net/http"

	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	portssvc "github.com/SscSPs/revenue_split_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_split_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type preferenceHandler struct {
	preferenceService portssvc.PreferenceSvc
}

func registerPreferenceRoutes(rg *gin.RouterGroup, ps portssvc.PreferenceSvc) {
	h := &preferenceHandler{preferenceService: ps}

	prefs := rg.Group("/preferences")
	{
		prefs.GET("/currency", h.getCurrency)
		prefs.PUT("/currency", h.setCurrency)
	}
}

func preferenceResponse(code string) dto.CurrencyPreferenceResponse {
	currency, _ := domain.LookupCurrency(code)
	return dto.CurrencyPreferenceResponse{Currency: currency.Code, Details: currency}
}

func (h *preferenceHandler) getCurrency(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, preferenceResponse(h.preferenceService.SelectedCurrency(c.Request.Context(), userID)))
}

func (h *preferenceHandler) setCurrency(c *gin.Context) {
	var req dto.CurrencyPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "JSON for SetCurrencyPreference")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.preferenceService.SetSelectedCurrency(c.Request.Context(), userID, req.Currency); err != nil {
		respondError(c, err, "Failed to set currency preference")
		return
	}
	c.JSON(http.StatusOK, preferenceResponse(req.Currency))
}
