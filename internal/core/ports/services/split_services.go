package services

import (
	"context"

	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	"github.com/SscSPs/revenue_split_app/internal/dto"
)

// SplitConfigReaderSvc defines read operations for split configuration
type SplitConfigReaderSvc interface {
	// GetSplitConfiguration returns the saved configuration or the defaults.
	GetSplitConfiguration(ctx context.Context) (*domain.SplitConfiguration, error)

	// ListLabelAdminOverrides returns every per-label-admin override.
	ListLabelAdminOverrides(ctx context.Context) ([]domain.LabelAdminOverride, error)
}

// SplitConfigWriterSvc defines write operations for split configuration
type SplitConfigWriterSvc interface {
	UpdateSplitConfiguration(ctx context.Context, req dto.UpdateSplitConfigurationRequest, userID string) (*domain.SplitConfiguration, error)
	SetLabelAdminOverride(ctx context.Context, labelAdminID string, percentage float64, userID string) (*domain.LabelAdminOverride, error)
	RemoveLabelAdminOverride(ctx context.Context, labelAdminID string) error
}

// SplitCalculatorSvc runs the revenue waterfall
type SplitCalculatorSvc interface {
	// CalculateSplit uses the saved configuration and the label admin's override, if any.
	CalculateSplit(ctx context.Context, grossAmount float64, labelAdminID string) (*domain.SplitResult, error)

	// CalculateSplitWith uses a caller-supplied configuration and nothing stored.
	CalculateSplitWith(ctx context.Context, grossAmount float64, cfg domain.SplitConfiguration, override *float64) (*domain.SplitResult, error)
}

// SplitSvcFacade combines all split-related service interfaces
type SplitSvcFacade interface {
	SplitConfigReaderSvc
	SplitConfigWriterSvc
	SplitCalculatorSvc
}
