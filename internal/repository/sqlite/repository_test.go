package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/kitchen/internal/repository/slots"
)

func TestRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kitchen.db")

	repo, err := NewRepository(path, nil)
	require.NoError(t, err)

	_, err = repo.Load(ctx, slots.Inventory)
	assert.ErrorIs(t, err, slots.ErrNotFound)

	require.NoError(t, repo.Save(ctx, slots.Inventory, []byte(`[{"id":"1","name":"Eggs"}]`)))
	require.NoError(t, repo.Save(ctx, slots.Inventory, []byte(`[{"id":"2","name":"Milk"}]`)))
	require.NoError(t, repo.Save(ctx, slots.Profile, []byte(`{"name":"Chef"}`)))

	got, err := repo.Load(ctx, slots.Inventory)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"2","name":"Milk"}]`, string(got))
	require.NoError(t, repo.Close(ctx))

	reopened, err := NewRepository(path, nil)
	require.NoError(t, err)
	defer reopened.Close(ctx)

	got, err = reopened.Load(ctx, slots.Profile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Chef"}`, string(got))
}
