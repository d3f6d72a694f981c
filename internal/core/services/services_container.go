package services

import (
	portsrepo "github.com/SscSPs/revenue_split_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/revenue_split_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_split_app/internal/events"
	"github.com/SscSPs/revenue_split_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, broker *events.Broker) *portssvc.ServiceContainer {
	if broker == nil {
		broker = events.NewBroker(nil)
	}

	return &portssvc.ServiceContainer{
		Split: NewSplitService(repos.SplitConfigRepo),
		Currency: NewCurrencyConverter(
			repos.RateSource,
			repos.LocalStore,
			WithFreshnessWindow(cfg.RateFreshnessWindow),
			WithStalenessCeiling(cfg.RateStalenessCeiling),
			WithFetchTimeout(cfg.RateFetchTimeout),
			WithEventBroker(broker),
		),
		Preference: NewPreferenceService(repos.LocalStore, broker),
		Events:     broker,
	}
}
