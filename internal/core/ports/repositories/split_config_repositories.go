package repositories

import (
	"context"

	"github.com/SscSPs/revenue_split_app/internal/core/domain"
)

// SplitConfigReader defines read operations for split configuration.
type SplitConfigReader interface {
	// FindSplitConfiguration returns the saved global configuration, or apperrors.ErrNotFound.
	FindSplitConfiguration(ctx context.Context) (*domain.SplitConfiguration, error)
	// FindLabelAdminOverride returns the override for one label admin, or apperrors.ErrNotFound.
	FindLabelAdminOverride(ctx context.Context, labelAdminID string) (*domain.LabelAdminOverride, error)
	// ListLabelAdminOverrides returns every override ordered by label admin ID.
	ListLabelAdminOverrides(ctx context.Context) ([]domain.LabelAdminOverride, error)
}

// SplitConfigWriter defines write operations for split configuration.
type SplitConfigWriter interface {
	SaveSplitConfiguration(ctx context.Context, cfg domain.SplitConfiguration) error
	SaveLabelAdminOverride(ctx context.Context, override domain.LabelAdminOverride) error
	// DeleteLabelAdminOverride returns apperrors.ErrNotFound if nothing was removed.
	DeleteLabelAdminOverride(ctx context.Context, labelAdminID string) error
}

// SplitConfigRepositoryFacade combines all split configuration repository interfaces.
type SplitConfigRepositoryFacade interface {
	SplitConfigReader
	SplitConfigWriter
}
