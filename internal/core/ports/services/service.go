package services

import "github.com/SscSPs/revenue_split_app/internal/events"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Split      SplitSvcFacade
	Currency   CurrencyConverterSvcFacade
	Preference PreferenceSvc
	Events     *events.Broker
}
