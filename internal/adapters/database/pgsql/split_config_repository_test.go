package pgsql_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/revenue_split_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	"github.com/SscSPs/revenue_split_app/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real database when PGSQL_TEST_URL is set.
func TestSplitConfigRepository_Postgres(t *testing.T) {
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}
	ctx := context.Background()

	migrations, err := filepath.Abs("../../../../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(url, "file://"+migrations))

	pool, err := database.NewPgxPool(ctx, url, true)
	require.NoError(t, err)
	defer database.ClosePgxPool(pool)
	_, err = pool.Exec(ctx, `TRUNCATE split_configuration, label_admin_split_overrides`)
	require.NoError(t, err)

	repo := pgsql.NewSplitConfigRepository(pool)

	_, err = repo.FindSplitConfiguration(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	now := time.Now().UTC().Truncate(time.Millisecond)
	cfg := domain.DefaultSplitConfiguration()
	cfg.SetArtistPercentage(70)
	cfg.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: "admin-1", LastUpdatedAt: now, LastUpdatedBy: "admin-1"}
	require.NoError(t, repo.SaveSplitConfiguration(ctx, cfg))

	got, err := repo.FindSplitConfiguration(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30.0, got.LabelAdminPercentage)
	assert.Equal(t, "admin-1", got.LastUpdatedBy)

	override := domain.LabelAdminOverride{LabelAdminID: "la-1", Percentage: 35, AuditFields: cfg.AuditFields}
	require.NoError(t, repo.SaveLabelAdminOverride(ctx, override))
	override.Percentage = 45
	require.NoError(t, repo.SaveLabelAdminOverride(ctx, override))

	found, err := repo.FindLabelAdminOverride(ctx, "la-1")
	require.NoError(t, err)
	assert.Equal(t, 45.0, found.Percentage)

	list, err := repo.ListLabelAdminOverrides(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.DeleteLabelAdminOverride(ctx, "la-1"))
	assert.ErrorIs(t, repo.DeleteLabelAdminOverride(ctx, "la-1"), apperrors.ErrNotFound)
}
