package domain_test

import (
	"testing"

	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSplitConfiguration_LabelAdminComplement(t *testing.T) {
	for p := 0.0; p <= 100; p += 5 {
		cfg := domain.DefaultSplitConfiguration()
		cfg.SetLabelAdminPercentage(p)
		assert.Equal(t, p, cfg.LabelAdminPercentage)
		assert.Equal(t, 100-p, cfg.ArtistPercentage)
	}
}

func TestSplitConfiguration_Clamping(t *testing.T) {
	tests := []struct {
		name   string
		apply  func(*domain.SplitConfiguration)
		verify func(*testing.T, domain.SplitConfiguration)
	}{
		{
			name:  "label admin above 100",
			apply: func(c *domain.SplitConfiguration) { c.SetLabelAdminPercentage(130) },
			verify: func(t *testing.T, c domain.SplitConfiguration) {
				assert.Equal(t, 100.0, c.LabelAdminPercentage)
				assert.Equal(t, 0.0, c.ArtistPercentage)
			},
		},
		{
			name:  "artist below 0",
			apply: func(c *domain.SplitConfiguration) { c.SetArtistPercentage(-10) },
			verify: func(t *testing.T, c domain.SplitConfiguration) {
				assert.Equal(t, 0.0, c.ArtistPercentage)
				assert.Equal(t, 100.0, c.LabelAdminPercentage)
			},
		},
		{
			name:  "distribution partner capped at 50",
			apply: func(c *domain.SplitConfiguration) { c.SetDistributionPartnerPercentage(75) },
			verify: func(t *testing.T, c domain.SplitConfiguration) {
				assert.Equal(t, 50.0, c.DistributionPartnerPercentage)
			},
		},
		{
			name:  "company admin floored at 0",
			apply: func(c *domain.SplitConfiguration) { c.SetCompanyAdminPercentage(-3) },
			verify: func(t *testing.T, c domain.SplitConfiguration) {
				assert.Equal(t, 0.0, c.CompanyAdminPercentage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultSplitConfiguration()
			tt.apply(&cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestSplitConfiguration_TiersOrdered(t *testing.T) {
	tiers := domain.DefaultSplitConfiguration().Tiers()
	assert.Len(t, tiers, 4)
	assert.Equal(t, domain.DistributionPartner, tiers[0].Name)
	assert.Equal(t, domain.CompanyAdmin, tiers[1].Name)
	assert.Equal(t, domain.LabelAdmin, tiers[2].Name)
	assert.Equal(t, domain.Artist, tiers[3].Name)
	for i, tier := range tiers {
		assert.Equal(t, i+1, tier.Order)
	}
}

func TestLabelAdminOverride_ArtistPercentage(t *testing.T) {
	assert.Equal(t, 65.0, domain.LabelAdminOverride{LabelAdminID: "la-1", Percentage: 35}.ArtistPercentage())
}
