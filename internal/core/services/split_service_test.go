package services_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	portssvc "github.com/SscSPs/revenue_split_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_split_app/internal/core/services"
	"github.com/SscSPs/revenue_split_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func ptr(v float64) *float64 { return &v }

// --- Test Suite ---
type SplitServiceTestSuite struct {
	suite.Suite
	repo *MockSplitConfigRepository
	svc  portssvc.SplitSvcFacade
	ctx  context.Context
}

func (s *SplitServiceTestSuite) SetupTest() {
	s.repo = new(MockSplitConfigRepository)
	s.svc = services.NewSplitService(s.repo)
	s.ctx = context.Background()
}

func TestSplitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SplitServiceTestSuite))
}

func (s *SplitServiceTestSuite) TestGetSplitConfiguration_DefaultsWhenNotSaved() {
	s.repo.On("FindSplitConfiguration", s.ctx).Return(nil, apperrors.NewNotFoundError("split configuration not found"))

	cfg, err := s.svc.GetSplitConfiguration(s.ctx)

	s.Require().NoError(err)
	s.Equal(domain.DefaultSplitConfiguration(), *cfg)
}

func (s *SplitServiceTestSuite) TestGetSplitConfiguration_RepoError() {
	s.repo.On("FindSplitConfiguration", s.ctx).Return(nil, errors.New("db down"))

	_, err := s.svc.GetSplitConfiguration(s.ctx)

	s.Error(err)
	s.NotErrorIs(err, apperrors.ErrNotFound)
}

func (s *SplitServiceTestSuite) TestUpdateSplitConfiguration_LabelAdminMovesArtist() {
	s.repo.On("FindSplitConfiguration", s.ctx).Return(nil, apperrors.ErrNotFound)
	s.repo.On("SaveSplitConfiguration", s.ctx, mock.MatchedBy(func(cfg domain.SplitConfiguration) bool {
		return cfg.LabelAdminPercentage == 40 && cfg.ArtistPercentage == 60 &&
			cfg.DistributionPartnerPercentage == 20 && cfg.LastUpdatedBy == "admin-1" &&
			cfg.CreatedBy == "admin-1" && !cfg.LastUpdatedAt.IsZero()
	})).Return(nil).Once()

	cfg, err := s.svc.UpdateSplitConfiguration(s.ctx, dto.UpdateSplitConfigurationRequest{
		DistributionPartnerPercentage: ptr(20),
		LabelAdminPercentage:          ptr(40),
	}, "admin-1")

	s.Require().NoError(err)
	s.Equal(10.0, cfg.CompanyAdminPercentage)
	s.Equal(60.0, cfg.ArtistPercentage)
	s.repo.AssertExpectations(s.T())
}

func (s *SplitServiceTestSuite) TestUpdateSplitConfiguration_ArtistMovesLabelAdmin() {
	s.repo.On("FindSplitConfiguration", s.ctx).Return(nil, apperrors.ErrNotFound)
	s.repo.On("SaveSplitConfiguration", s.ctx, mock.Anything).Return(nil)

	cfg, err := s.svc.UpdateSplitConfiguration(s.ctx, dto.UpdateSplitConfigurationRequest{ArtistPercentage: ptr(80)}, "admin-1")

	s.Require().NoError(err)
	s.Equal(20.0, cfg.LabelAdminPercentage)
}

func (s *SplitServiceTestSuite) TestUpdateSplitConfiguration_ClampsDeductionTiers() {
	s.repo.On("FindSplitConfiguration", s.ctx).Return(nil, apperrors.ErrNotFound)
	s.repo.On("SaveSplitConfiguration", s.ctx, mock.Anything).Return(nil)

	cfg, err := s.svc.UpdateSplitConfiguration(s.ctx, dto.UpdateSplitConfigurationRequest{
		CompanyAdminPercentage: ptr(75),
	}, "admin-1")

	s.Require().NoError(err)
	s.Equal(domain.MaxDeductionPercentage, cfg.CompanyAdminPercentage)
}

func (s *SplitServiceTestSuite) TestUpdateSplitConfiguration_RemainderMustTotal100() {
	s.repo.On("FindSplitConfiguration", s.ctx).Return(nil, apperrors.ErrNotFound)

	_, err := s.svc.UpdateSplitConfiguration(s.ctx, dto.UpdateSplitConfigurationRequest{
		LabelAdminPercentage: ptr(30),
		ArtistPercentage:     ptr(60),
	}, "admin-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.repo.AssertNotCalled(s.T(), "SaveSplitConfiguration", mock.Anything, mock.Anything)
}

func (s *SplitServiceTestSuite) TestUpdateSplitConfiguration_RejectsNaN() {
	s.repo.On("FindSplitConfiguration", s.ctx).Return(nil, apperrors.ErrNotFound)

	_, err := s.svc.UpdateSplitConfiguration(s.ctx, dto.UpdateSplitConfigurationRequest{
		DistributionPartnerPercentage: ptr(math.NaN()),
	}, "admin-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SplitServiceTestSuite) TestSetLabelAdminOverride() {
	s.repo.On("SaveLabelAdminOverride", s.ctx, mock.MatchedBy(func(o domain.LabelAdminOverride) bool {
		return o.LabelAdminID == "la-7" && o.Percentage == 40 && o.CreatedBy == "admin-1"
	})).Return(nil).Once()

	override, err := s.svc.SetLabelAdminOverride(s.ctx, " la-7 ", 40, "admin-1")

	s.Require().NoError(err)
	s.Equal(60.0, override.ArtistPercentage())
	s.repo.AssertExpectations(s.T())
}

func (s *SplitServiceTestSuite) TestSetLabelAdminOverride_Invalid() {
	_, err := s.svc.SetLabelAdminOverride(s.ctx, "la-7", 120, "admin-1")
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.SetLabelAdminOverride(s.ctx, "  ", 20, "admin-1")
	s.ErrorIs(err, apperrors.ErrValidation)

	s.repo.AssertNotCalled(s.T(), "SaveLabelAdminOverride", mock.Anything, mock.Anything)
}

func (s *SplitServiceTestSuite) TestRemoveLabelAdminOverride_NotFound() {
	s.repo.On("DeleteLabelAdminOverride", s.ctx, "la-9").Return(apperrors.NewNotFoundError("no split override"))

	err := s.svc.RemoveLabelAdminOverride(s.ctx, "la-9")

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SplitServiceTestSuite) TestCalculateSplit_DefaultConfiguration() {
	s.repo.On("FindSplitConfiguration", s.ctx).Return(nil, apperrors.ErrNotFound)

	result, err := s.svc.CalculateSplit(s.ctx, 100000, "")

	s.Require().NoError(err)
	s.InDelta(15000, result.DistributionPartnerAmount, 1e-9)
	s.InDelta(85000, result.RemainderAfterDistributionPartner, 1e-9)
	s.InDelta(8500, result.CompanyAdminAmount, 1e-9)
	s.InDelta(76500, result.FinalPool, 1e-9)
	s.InDelta(19125, result.LabelAdminAmount, 1e-9)
	s.InDelta(57375, result.ArtistAmount, 1e-9)
	s.False(result.OverrideApplied)
	s.repo.AssertNotCalled(s.T(), "FindLabelAdminOverride", mock.Anything, mock.Anything)
}

func (s *SplitServiceTestSuite) TestCalculateSplit_WithOverride() {
	saved := domain.DefaultSplitConfiguration()
	s.repo.On("FindSplitConfiguration", s.ctx).Return(&saved, nil)
	s.repo.On("FindLabelAdminOverride", s.ctx, "la-7").Return(&domain.LabelAdminOverride{LabelAdminID: "la-7", Percentage: 40}, nil)

	result, err := s.svc.CalculateSplit(s.ctx, 100000, "la-7")

	s.Require().NoError(err)
	s.True(result.OverrideApplied)
	s.InDelta(30600, result.LabelAdminAmount, 1e-9)
	s.InDelta(45900, result.ArtistAmount, 1e-9)
	s.Equal(60.0, result.ArtistPercentage)
}

func (s *SplitServiceTestSuite) TestCalculateSplit_UnknownLabelAdminUsesDefault() {
	s.repo.On("FindSplitConfiguration", s.ctx).Return(nil, apperrors.ErrNotFound)
	s.repo.On("FindLabelAdminOverride", s.ctx, "la-1").Return(nil, apperrors.ErrNotFound)

	result, err := s.svc.CalculateSplit(s.ctx, 100000, "la-1")

	s.Require().NoError(err)
	s.False(result.OverrideApplied)
	s.InDelta(19125, result.LabelAdminAmount, 1e-9)
}

func (s *SplitServiceTestSuite) TestCalculateSplit_RejectsNonFiniteGross() {
	_, err := s.svc.CalculateSplit(s.ctx, math.Inf(1), "")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SplitServiceTestSuite) TestCalculateSplitWith() {
	cfg := domain.SplitConfiguration{
		DistributionPartnerPercentage: 20,
		CompanyAdminPercentage:        0,
		LabelAdminPercentage:          50,
		ArtistPercentage:              50,
	}

	result, err := s.svc.CalculateSplitWith(s.ctx, 1000, cfg, nil)
	s.Require().NoError(err)
	s.InDelta(800, result.FinalPool, 1e-9)
	s.InDelta(400, result.ArtistAmount, 1e-9)

	cfg.ArtistPercentage = 70
	_, err = s.svc.CalculateSplitWith(s.ctx, 1000, cfg, nil)
	s.ErrorIs(err, apperrors.ErrValidation)

	cfg.ArtistPercentage = 50
	_, err = s.svc.CalculateSplitWith(s.ctx, 1000, cfg, ptr(-5))
	s.ErrorIs(err, apperrors.ErrValidation)
}
