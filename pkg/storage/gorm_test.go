package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdziat/cloud-schedule/pkg/core"
)

func newTestStorage(t *testing.T) *GormStorage {
	t.Helper()
	store := NewGormStorage(openTestDB(t))
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestGormStorage_SaveAndGet(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	changed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := &core.PropertyRecord{Name: "sprinkler", LocalChangedAt: &changed}
	rec.SetLocal(core.Descriptor{From: 1, To: 2, Length: 3, Mask: 0xFFFFFFFF})
	rec.SetCloud(core.Descriptor{From: 5, To: 6, Length: 7, Mask: 0x80000000})

	require.NoError(t, store.Save(ctx, rec))
	assert.NotEmpty(t, rec.ID)

	got, err := store.Get(ctx, "sprinkler")
	require.NoError(t, err)

	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Local(), got.Local())
	assert.Equal(t, rec.Cloud(), got.Cloud())
	require.NotNil(t, got.LocalChangedAt)
	assert.True(t, changed.Equal(*got.LocalChangedAt))
}

func TestGormStorage_SaveOverwritesByName(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first := &core.PropertyRecord{Name: "lamp"}
	first.SetLocal(core.Descriptor{From: 10})
	require.NoError(t, store.Save(ctx, first))

	second := &core.PropertyRecord{Name: "lamp"}
	second.SetLocal(core.Descriptor{From: 20})
	require.NoError(t, store.Save(ctx, second))

	assert.Equal(t, first.ID, second.ID, "overwrite keeps the stored ID")

	recs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, uint32(20), recs[0].LocalFrom)
}

func TestGormStorage_SaveRejectsInvalidName(t *testing.T) {
	store := newTestStorage(t)

	err := store.Save(context.Background(), &core.PropertyRecord{Name: "1bad name"})

	assert.ErrorIs(t, err, core.ErrInvalidPropertyName)
}

func TestGormStorage_GetMissing(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, core.ErrPropertyNotFound)
}

func TestGormStorage_ListOrderedByName(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	for _, name := range []string{"valve", "heater", "lamp"} {
		require.NoError(t, store.Save(ctx, &core.PropertyRecord{Name: name}))
	}

	recs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "heater", recs[0].Name)
	assert.Equal(t, "lamp", recs[1].Name)
	assert.Equal(t, "valve", recs[2].Name)
}

func TestGormStorage_Delete(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &core.PropertyRecord{Name: "lamp"}))
	require.NoError(t, store.Delete(ctx, "lamp"))

	_, err := store.Get(ctx, "lamp")
	assert.ErrorIs(t, err, core.ErrPropertyNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "lamp"), core.ErrPropertyNotFound)
}
