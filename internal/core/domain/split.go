package domain

// TierName identifies one stakeholder in the revenue deduction chain.
type TierName string

const (
	DistributionPartner TierName = "distribution_partner"
	CompanyAdmin        TierName = "company_admin"
	LabelAdmin          TierName = "label_admin"
	Artist              TierName = "artist"
)

const (
	// MaxDeductionPercentage bounds the upstream tiers that are deducted from gross.
	MaxDeductionPercentage = 50.0
	// MaxRemainderPercentage bounds the two tiers sharing the final pool.
	MaxRemainderPercentage = 100.0
)

// SplitTier is one named step of the deduction chain.
type SplitTier struct {
	Name       TierName `json:"name"`
	Percentage float64  `json:"percentage"`
	Order      int      `json:"order"`
}

// SplitConfiguration holds the global split percentages.
// Deduction tiers are each a percentage of what is left after the tiers
// before them; label admin and artist always sum to 100.
type SplitConfiguration struct {
	DistributionPartnerPercentage float64 `json:"distributionPartnerPercentage"`
	CompanyAdminPercentage        float64 `json:"companyAdminPercentage"`
	LabelAdminPercentage          float64 `json:"labelAdminPercentage"`
	ArtistPercentage              float64 `json:"artistPercentage"`
	AuditFields
}

// DefaultSplitConfiguration returns the split used until an admin saves one.
func DefaultSplitConfiguration() SplitConfiguration {
	return SplitConfiguration{
		DistributionPartnerPercentage: 15,
		CompanyAdminPercentage:        10,
		LabelAdminPercentage:          25,
		ArtistPercentage:              75,
	}
}

// Tiers returns the configuration as the ordered deduction chain.
func (c SplitConfiguration) Tiers() []SplitTier {
	return []SplitTier{
		{Name: DistributionPartner, Percentage: c.DistributionPartnerPercentage, Order: 1},
		{Name: CompanyAdmin, Percentage: c.CompanyAdminPercentage, Order: 2},
		{Name: LabelAdmin, Percentage: c.LabelAdminPercentage, Order: 3},
		{Name: Artist, Percentage: c.ArtistPercentage, Order: 4},
	}
}

// SetDistributionPartnerPercentage clamps p to [0, MaxDeductionPercentage].
func (c *SplitConfiguration) SetDistributionPartnerPercentage(p float64) {
	c.DistributionPartnerPercentage = clamp(p, 0, MaxDeductionPercentage)
}

// SetCompanyAdminPercentage clamps p to [0, MaxDeductionPercentage].
func (c *SplitConfiguration) SetCompanyAdminPercentage(p float64) {
	c.CompanyAdminPercentage = clamp(p, 0, MaxDeductionPercentage)
}

// SetLabelAdminPercentage clamps p to [0, 100] and moves the artist share to the complement.
func (c *SplitConfiguration) SetLabelAdminPercentage(p float64) {
	c.LabelAdminPercentage = clamp(p, 0, MaxRemainderPercentage)
	c.ArtistPercentage = MaxRemainderPercentage - c.LabelAdminPercentage
}

// SetArtistPercentage clamps p to [0, 100] and moves the label admin share to the complement.
func (c *SplitConfiguration) SetArtistPercentage(p float64) {
	c.ArtistPercentage = clamp(p, 0, MaxRemainderPercentage)
	c.LabelAdminPercentage = MaxRemainderPercentage - c.ArtistPercentage
}

// LabelAdminOverride replaces the default label admin share for one label admin.
type LabelAdminOverride struct {
	LabelAdminID string  `json:"labelAdminID"`
	Percentage   float64 `json:"percentage"`
	AuditFields
}

// ArtistPercentage is always the complement of the override.
func (o LabelAdminOverride) ArtistPercentage() float64 {
	return MaxRemainderPercentage - o.Percentage
}

// SplitResult is the full waterfall for one gross amount.
type SplitResult struct {
	GrossAmount                       float64 `json:"grossAmount"`
	DistributionPartnerAmount         float64 `json:"distributionPartnerAmount"`
	RemainderAfterDistributionPartner float64 `json:"remainderAfterDistributionPartner"`
	CompanyAdminAmount                float64 `json:"companyAdminAmount"`
	FinalPool                         float64 `json:"finalPool"`
	LabelAdminAmount                  float64 `json:"labelAdminAmount"`
	ArtistAmount                      float64 `json:"artistAmount"`

	DistributionPartnerPercentage float64 `json:"distributionPartnerPercentage"`
	CompanyAdminPercentage        float64 `json:"companyAdminPercentage"`
	LabelAdminPercentage          float64 `json:"labelAdminPercentage"`
	ArtistPercentage              float64 `json:"artistPercentage"`
	OverrideApplied               bool    `json:"overrideApplied"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
