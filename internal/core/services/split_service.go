package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_split_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/revenue_split_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_split_app/internal/dto"
	"github.com/SscSPs/revenue_split_app/internal/utils/splitting"
)

type splitService struct {
	BaseService
	repo portsrepo.SplitConfigRepositoryFacade
	now  func() time.Time
}

var _ portssvc.SplitSvcFacade = (*splitService)(nil)

// NewSplitService creates the split configuration and calculation service.
func NewSplitService(repo portsrepo.SplitConfigRepositoryFacade) portssvc.SplitSvcFacade {
	return &splitService{repo: repo, now: time.Now}
}

func (s *splitService) GetSplitConfiguration(ctx context.Context) (*domain.SplitConfiguration, error) {
	cfg, err := s.repo.FindSplitConfiguration(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := domain.DefaultSplitConfiguration()
			return &defaults, nil
		}
		s.LogError(ctx, err, "Failed to load split configuration")
		return nil, fmt.Errorf("failed to load split configuration: %w", err)
	}
	return cfg, nil
}

func (s *splitService) ListLabelAdminOverrides(ctx context.Context) ([]domain.LabelAdminOverride, error) {
	overrides, err := s.repo.ListLabelAdminOverrides(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list label admin overrides")
		return nil, fmt.Errorf("failed to list label admin overrides: %w", err)
	}
	return overrides, nil
}

// UpdateSplitConfiguration applies the provided fields on top of the current
// configuration. Giving both labelAdmin and artist requires them to total 100.
func (s *splitService) UpdateSplitConfiguration(ctx context.Context, req dto.UpdateSplitConfigurationRequest, userID string) (*domain.SplitConfiguration, error) {
	cfg, err := s.GetSplitConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	if req.DistributionPartnerPercentage != nil {
		cfg.SetDistributionPartnerPercentage(*req.DistributionPartnerPercentage)
	}
	if req.CompanyAdminPercentage != nil {
		cfg.SetCompanyAdminPercentage(*req.CompanyAdminPercentage)
	}
	switch {
	case req.LabelAdminPercentage != nil && req.ArtistPercentage != nil:
		total := *req.LabelAdminPercentage + *req.ArtistPercentage
		if math.Abs(total-domain.MaxRemainderPercentage) > 0.01 {
			return nil, fmt.Errorf("%w: label admin and artist percentages must total 100, got %.2f", apperrors.ErrValidation, total)
		}
		cfg.SetLabelAdminPercentage(*req.LabelAdminPercentage)
	case req.LabelAdminPercentage != nil:
		cfg.SetLabelAdminPercentage(*req.LabelAdminPercentage)
	case req.ArtistPercentage != nil:
		cfg.SetArtistPercentage(*req.ArtistPercentage)
	}

	if err := splitting.ValidateSplitConfiguration(*cfg); err != nil {
		return nil, err
	}

	now := s.now()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
		cfg.CreatedBy = userID
	}
	cfg.LastUpdatedAt = now
	cfg.LastUpdatedBy = userID

	if err := s.repo.SaveSplitConfiguration(ctx, *cfg); err != nil {
		s.LogError(ctx, err, "Failed to save split configuration", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save split configuration: %w", err)
	}

	s.LogInfo(ctx, "Split configuration updated",
		slog.String("user_id", userID),
		slog.Float64("distribution_partner", cfg.DistributionPartnerPercentage),
		slog.Float64("company_admin", cfg.CompanyAdminPercentage),
		slog.Float64("label_admin", cfg.LabelAdminPercentage),
		slog.Float64("artist", cfg.ArtistPercentage))
	return cfg, nil
}

func (s *splitService) SetLabelAdminOverride(ctx context.Context, labelAdminID string, percentage float64, userID string) (*domain.LabelAdminOverride, error) {
	labelAdminID = strings.TrimSpace(labelAdminID)
	if labelAdminID == "" {
		return nil, apperrors.NewValidationError("label admin ID is required")
	}
	if err := splitting.ValidateOverridePercentage(percentage); err != nil {
		return nil, err
	}

	now := s.now()
	override := domain.LabelAdminOverride{
		LabelAdminID: labelAdminID,
		Percentage:   percentage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.repo.SaveLabelAdminOverride(ctx, override); err != nil {
		s.LogError(ctx, err, "Failed to save label admin override", slog.String("label_admin_id", labelAdminID))
		return nil, fmt.Errorf("failed to save label admin override: %w", err)
	}

	s.LogInfo(ctx, "Label admin override set",
		slog.String("label_admin_id", labelAdminID),
		slog.Float64("percentage", percentage),
		slog.String("user_id", userID))
	return &override, nil
}

func (s *splitService) RemoveLabelAdminOverride(ctx context.Context, labelAdminID string) error {
	if err := s.repo.DeleteLabelAdminOverride(ctx, labelAdminID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete label admin override", slog.String("label_admin_id", labelAdminID))
		return fmt.Errorf("failed to delete label admin override: %w", err)
	}
	s.LogInfo(ctx, "Label admin override removed", slog.String("label_admin_id", labelAdminID))
	return nil
}

// CalculateSplit uses the stored configuration. When labelAdminID has an
// override it replaces the label admin share.
func (s *splitService) CalculateSplit(ctx context.Context, grossAmount float64, labelAdminID string) (*domain.SplitResult, error) {
	if err := splitting.ValidateGrossAmount(grossAmount); err != nil {
		return nil, err
	}
	cfg, err := s.GetSplitConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	var overridePercentage *float64
	if labelAdminID != "" {
		override, err := s.repo.FindLabelAdminOverride(ctx, labelAdminID)
		switch {
		case err == nil:
			overridePercentage = &override.Percentage
		case errors.Is(err, apperrors.ErrNotFound):
		default:
			s.LogError(ctx, err, "Failed to load label admin override", slog.String("label_admin_id", labelAdminID))
			return nil, fmt.Errorf("failed to load label admin override: %w", err)
		}
	}

	result := splitting.ComputeSplit(grossAmount, *cfg, overridePercentage)
	return &result, nil
}

func (s *splitService) CalculateSplitWith(_ context.Context, grossAmount float64, cfg domain.SplitConfiguration, override *float64) (*domain.SplitResult, error) {
	if err := splitting.ValidateGrossAmount(grossAmount); err != nil {
		return nil, err
	}
	if err := splitting.ValidateSplitConfiguration(cfg); err != nil {
		return nil, err
	}
	if override != nil {
		if err := splitting.ValidateOverridePercentage(*override); err != nil {
			return nil, err
		}
	}
	result := splitting.ComputeSplit(grossAmount, cfg, override)
	return &result, nil
}
