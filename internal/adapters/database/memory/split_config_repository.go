package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_split_app/internal/core/ports/repositories"
)

// SplitConfigRepository keeps split configuration in process memory.
// It is used when no database is configured.
type SplitConfigRepository struct {
	mu        sync.RWMutex
	config    *domain.SplitConfiguration
	overrides map[string]domain.LabelAdminOverride
}

var _ portsrepo.SplitConfigRepositoryFacade = (*SplitConfigRepository)(nil)

// NewSplitConfigRepository creates an empty repository.
func NewSplitConfigRepository() *SplitConfigRepository {
	return &SplitConfigRepository{overrides: make(map[string]domain.LabelAdminOverride)}
}

func (r *SplitConfigRepository) FindSplitConfiguration(_ context.Context) (*domain.SplitConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.config == nil {
		return nil, apperrors.NewNotFoundError("split configuration not found")
	}
	cfg := *r.config
	return &cfg, nil
}

func (r *SplitConfigRepository) SaveSplitConfiguration(_ context.Context, cfg domain.SplitConfiguration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.config != nil {
		cfg.CreatedAt = r.config.CreatedAt
		cfg.CreatedBy = r.config.CreatedBy
	}
	r.config = &cfg
	return nil
}

func (r *SplitConfigRepository) FindLabelAdminOverride(_ context.Context, labelAdminID string) (*domain.LabelAdminOverride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.overrides[labelAdminID]
	if !ok {
		return nil, apperrors.NewNotFoundError("no split override for label admin " + labelAdminID)
	}
	return &o, nil
}

func (r *SplitConfigRepository) ListLabelAdminOverrides(_ context.Context) ([]domain.LabelAdminOverride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.LabelAdminOverride, 0, len(r.overrides))
	for _, o := range r.overrides {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LabelAdminID < out[j].LabelAdminID })
	return out, nil
}

func (r *SplitConfigRepository) SaveLabelAdminOverride(_ context.Context, override domain.LabelAdminOverride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.overrides[override.LabelAdminID]; ok {
		override.CreatedAt = existing.CreatedAt
		override.CreatedBy = existing.CreatedBy
	}
	r.overrides[override.LabelAdminID] = override
	return nil
}

func (r *SplitConfigRepository) DeleteLabelAdminOverride(_ context.Context, labelAdminID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.overrides[labelAdminID]; !ok {
		return apperrors.NewNotFoundError("no split override for label admin " + labelAdminID)
	}
	delete(r.overrides, labelAdminID)
	return nil
}
