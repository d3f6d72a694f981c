package splitting

import (
	"fmt"
	"math"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/SscSPs/revenue_split_app/internal/core/domain"
)

// percentageTolerance is how far label admin + artist may drift from 100.
const percentageTolerance = 0.01

// ComputeSplit runs the fixed deduction waterfall over grossAmount.
// Each deduction tier takes its percentage of what the previous tiers left;
// the final pool is then shared between label admin and artist.
// override, when non-nil, replaces cfg.LabelAdminPercentage.
// No validation or rounding happens here: NaN in, NaN out.
func ComputeSplit(grossAmount float64, cfg domain.SplitConfiguration, override *float64) domain.SplitResult {
	labelPercentage := cfg.LabelAdminPercentage
	if override != nil {
		labelPercentage = *override
	}
	artistPercentage := domain.MaxRemainderPercentage - labelPercentage

	// Step 1: distribution partner comes off the top
	distributionAmount := grossAmount * (cfg.DistributionPartnerPercentage / 100)
	afterDistribution := grossAmount - distributionAmount

	// Step 2: company admin takes from what is left
	companyAmount := afterDistribution * (cfg.CompanyAdminPercentage / 100)
	afterCompany := afterDistribution - companyAmount

	// Step 3-5: the remainder is shared between label admin and artist
	finalPool := afterCompany

	return domain.SplitResult{
		GrossAmount:                       grossAmount,
		DistributionPartnerAmount:         distributionAmount,
		RemainderAfterDistributionPartner: afterDistribution,
		CompanyAdminAmount:                companyAmount,
		FinalPool:                         finalPool,
		LabelAdminAmount:                  finalPool * (labelPercentage / 100),
		ArtistAmount:                      finalPool * (artistPercentage / 100),
		DistributionPartnerPercentage:     cfg.DistributionPartnerPercentage,
		CompanyAdminPercentage:            cfg.CompanyAdminPercentage,
		LabelAdminPercentage:              labelPercentage,
		ArtistPercentage:                  artistPercentage,
		OverrideApplied:                   override != nil,
	}
}

// ValidateSplitConfiguration rejects configurations the admin surface would never produce.
func ValidateSplitConfiguration(cfg domain.SplitConfiguration) error {
	if err := validatePercentage("distribution partner", cfg.DistributionPartnerPercentage, domain.MaxDeductionPercentage); err != nil {
		return err
	}
	if err := validatePercentage("company admin", cfg.CompanyAdminPercentage, domain.MaxDeductionPercentage); err != nil {
		return err
	}
	if err := validatePercentage("label admin", cfg.LabelAdminPercentage, domain.MaxRemainderPercentage); err != nil {
		return err
	}
	if err := validatePercentage("artist", cfg.ArtistPercentage, domain.MaxRemainderPercentage); err != nil {
		return err
	}

	total := cfg.LabelAdminPercentage + cfg.ArtistPercentage
	if math.Abs(total-domain.MaxRemainderPercentage) > percentageTolerance {
		return fmt.Errorf("%w: label admin and artist percentages must total 100, got %.2f", apperrors.ErrValidation, total)
	}
	return nil
}

// ValidateOverridePercentage checks a per-label-admin override.
func ValidateOverridePercentage(p float64) error {
	return validatePercentage("label admin override", p, domain.MaxRemainderPercentage)
}

// ValidateGrossAmount requires a finite number; zero and negatives are allowed.
func ValidateGrossAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: gross amount must be a finite number", apperrors.ErrValidation)
	}
	return nil
}

func validatePercentage(name string, p, max float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Errorf("%w: %s percentage must be a finite number", apperrors.ErrValidation, name)
	}
	if p < 0 || p > max {
		return fmt.Errorf("%w: %s percentage must be between 0 and %.0f, got %v", apperrors.ErrValidation, name, max, p)
	}
	return nil
}
