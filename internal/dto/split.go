package dto

import (
	"time"

	"github.com/SscSPs/revenue_split_app/internal/core/domain"
)

// UpdateSplitConfigurationRequest defines the fields an admin may change.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Setting one of labelAdmin/artist moves the other to its complement.
type UpdateSplitConfigurationRequest struct {
	DistributionPartnerPercentage *float64 `json:"distributionPartnerPercentage" binding:"omitempty,min=0,max=50"`
	CompanyAdminPercentage        *float64 `json:"companyAdminPercentage" binding:"omitempty,min=0,max=50"`
	LabelAdminPercentage          *float64 `json:"labelAdminPercentage" binding:"omitempty,min=0,max=100"`
	ArtistPercentage              *float64 `json:"artistPercentage" binding:"omitempty,min=0,max=100"`
}

// SplitConfigurationResponse defines the data returned for the split configuration.
type SplitConfigurationResponse struct {
	DistributionPartnerPercentage float64            `json:"distributionPartnerPercentage"`
	CompanyAdminPercentage        float64            `json:"companyAdminPercentage"`
	LabelAdminPercentage          float64            `json:"labelAdminPercentage"`
	ArtistPercentage              float64            `json:"artistPercentage"`
	Tiers                         []domain.SplitTier `json:"tiers"`
	LastUpdatedAt                 time.Time          `json:"lastUpdatedAt,omitzero"`
	LastUpdatedBy                 string             `json:"lastUpdatedBy,omitempty"`
}

// ToSplitConfigurationResponse converts a domain.SplitConfiguration to its response DTO
func ToSplitConfigurationResponse(cfg *domain.SplitConfiguration) SplitConfigurationResponse {
	return SplitConfigurationResponse{
		DistributionPartnerPercentage: cfg.DistributionPartnerPercentage,
		CompanyAdminPercentage:        cfg.CompanyAdminPercentage,
		LabelAdminPercentage:          cfg.LabelAdminPercentage,
		ArtistPercentage:              cfg.ArtistPercentage,
		Tiers:                         cfg.Tiers(),
		LastUpdatedAt:                 cfg.LastUpdatedAt,
		LastUpdatedBy:                 cfg.LastUpdatedBy,
	}
}

// SetLabelAdminOverrideRequest sets a per-label-admin share of the final pool.
type SetLabelAdminOverrideRequest struct {
	Percentage *float64 `json:"percentage" binding:"required,min=0,max=100"`
}

// LabelAdminOverrideResponse defines the data returned for an override.
type LabelAdminOverrideResponse struct {
	LabelAdminID     string    `json:"labelAdminID"`
	Percentage       float64   `json:"percentage"`
	ArtistPercentage float64   `json:"artistPercentage"`
	LastUpdatedAt    time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy    string    `json:"lastUpdatedBy"`
}

// ToLabelAdminOverrideResponse converts a domain.LabelAdminOverride to its response DTO
func ToLabelAdminOverrideResponse(o *domain.LabelAdminOverride) LabelAdminOverrideResponse {
	return LabelAdminOverrideResponse{
		LabelAdminID:     o.LabelAdminID,
		Percentage:       o.Percentage,
		ArtistPercentage: o.ArtistPercentage(),
		LastUpdatedAt:    o.LastUpdatedAt,
		LastUpdatedBy:    o.LastUpdatedBy,
	}
}

// ToListLabelAdminOverrideResponse converts a slice of overrides to response DTOs
func ToListLabelAdminOverrideResponse(overrides []domain.LabelAdminOverride) []LabelAdminOverrideResponse {
	res := make([]LabelAdminOverrideResponse, len(overrides))
	for i := range overrides {
		res[i] = ToLabelAdminOverrideResponse(&overrides[i])
	}
	return res
}

// SplitConfigurationInput is an ad-hoc configuration for what-if calculations.
type SplitConfigurationInput struct {
	DistributionPartnerPercentage float64 `json:"distributionPartnerPercentage" binding:"min=0,max=50"`
	CompanyAdminPercentage        float64 `json:"companyAdminPercentage" binding:"min=0,max=50"`
	LabelAdminPercentage          float64 `json:"labelAdminPercentage" binding:"min=0,max=100"`
	ArtistPercentage              float64 `json:"artistPercentage" binding:"min=0,max=100"`
}

// ToDomain converts the input into a split configuration.
func (in SplitConfigurationInput) ToDomain() domain.SplitConfiguration {
	return domain.SplitConfiguration{
		DistributionPartnerPercentage: in.DistributionPartnerPercentage,
		CompanyAdminPercentage:        in.CompanyAdminPercentage,
		LabelAdminPercentage:          in.LabelAdminPercentage,
		ArtistPercentage:              in.ArtistPercentage,
	}
}

// CalculateSplitRequest asks for the waterfall of one gross amount (in GBP).
// Configuration and OverridePercentage, when given, replace the stored values;
// otherwise the stored configuration and the label admin's override are used.
type CalculateSplitRequest struct {
	GrossAmount        *float64                 `json:"grossAmount" binding:"required"`
	LabelAdminID       string                   `json:"labelAdminID"`
	Configuration      *SplitConfigurationInput `json:"configuration"`
	OverridePercentage *float64                 `json:"overridePercentage" binding:"omitempty,min=0,max=100"`
	DisplayCurrency    string                   `json:"displayCurrency" binding:"omitempty,currencycode"`
	Compact            bool                     `json:"compact"`
}

// SplitLineResponse is one row of the waterfall with its display string.
type SplitLineResponse struct {
	Tier       domain.TierName `json:"tier"`
	Percentage float64         `json:"percentage"`
	Amount     float64         `json:"amount"`
	Display    string          `json:"display"`
}

// CalculateSplitResponse returns the raw waterfall and a formatted breakdown.
type CalculateSplitResponse struct {
	domain.SplitResult
	DisplayCurrency  string              `json:"displayCurrency"`
	GrossDisplay     string              `json:"grossDisplay"`
	FinalPoolDisplay string              `json:"finalPoolDisplay"`
	Lines            []SplitLineResponse `json:"lines"`
}
