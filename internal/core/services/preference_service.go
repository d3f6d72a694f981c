package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_split_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/revenue_split_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_split_app/internal/events"
)

const selectedCurrencyKeyPrefix = "selectedCurrency:"

type preferenceService struct {
	BaseService
	store  portsrepo.LocalStore
	broker *events.Broker
}

var _ portssvc.PreferenceSvc = (*preferenceService)(nil)

// NewPreferenceService creates the display-currency preference service.
// broker may be nil.
func NewPreferenceService(store portsrepo.LocalStore, broker *events.Broker) portssvc.PreferenceSvc {
	return &preferenceService{store: store, broker: broker}
}

func selectedCurrencyKey(subject string) string {
	return selectedCurrencyKeyPrefix + subject
}

// SelectedCurrency returns the stored choice, or the base currency when none
// is stored or the stored value is no longer supported.
func (s *preferenceService) SelectedCurrency(ctx context.Context, subject string) string {
	if s.store == nil {
		return domain.BaseCurrency
	}
	raw, err := s.store.Get(ctx, selectedCurrencyKey(subject))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Failed to read currency preference", slog.String("subject", subject), slog.String("error", err.Error()))
		}
		return domain.BaseCurrency
	}
	code := strings.TrimSpace(string(raw))
	if !domain.IsSupportedCurrency(code) {
		return domain.BaseCurrency
	}
	return code
}

// SetSelectedCurrency stores the choice and notifies subscribers. A storage
// failure is logged; the notification still goes out.
func (s *preferenceService) SetSelectedCurrency(ctx context.Context, subject, currencyCode string) error {
	if !domain.IsSupportedCurrency(currencyCode) {
		return apperrors.NewValidationError("unsupported currency: " + currencyCode)
	}

	if s.store != nil {
		if err := s.store.Put(ctx, selectedCurrencyKey(subject), []byte(currencyCode)); err != nil {
			s.LogError(ctx, err, "Failed to persist currency preference", slog.String("subject", subject))
		}
	}

	if s.broker != nil {
		s.broker.Publish(events.Event{
			Type:     events.CurrencyChanged,
			Subject:  subject,
			Currency: currencyCode,
		})
	}
	s.LogInfo(ctx, "Display currency selected", slog.String("subject", subject), slog.String("currency", currencyCode))
	return nil
}
