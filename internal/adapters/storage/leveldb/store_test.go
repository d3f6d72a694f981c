package leveldb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/SscSPs/revenue_split_app/internal/adapters/storage/leveldb"
	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGetAndReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store")

	store, err := leveldb.Open(path)
	require.NoError(t, err)

	_, err = store.Get(ctx, "exchangeRates")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, store.Put(ctx, "exchangeRates", []byte(`{"rates":{"USD":1.3}}`)))
	require.NoError(t, store.Close())

	reopened, err := leveldb.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "exchangeRates")
	require.NoError(t, err)
	assert.JSONEq(t, `{"rates":{"USD":1.3}}`, string(got))
}
