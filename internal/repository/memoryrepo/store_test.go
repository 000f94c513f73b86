package memoryrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferrastock/internal/domain"
	"ferrastock/internal/repository/memoryrepo"
)

func TestRunInTx_FnErrorDiscardsWrites(t *testing.T) {
	store := memoryrepo.New()
	item := store.SeedItem(domain.Item{Name: "Alicate", Code: "AL-1", Quantity: 3, MinStock: 1})
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.RunInTx(ctx, func(items domain.ItemStockStore, ledger domain.MovementLedger) error {
		snap, err := items.GetForUpdate(ctx, item.ID)
		require.NoError(t, err)
		require.NoError(t, items.SetQuantity(ctx, item.ID, 9, snap.Version))
		_, err = ledger.Append(ctx, domain.Movement{ItemID: item.ID, Direction: domain.DirectionInbound, Amount: 6})
		require.NoError(t, err)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	got, _ := store.Item(item.ID)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, 0, store.MovementCount(item.ID))
}

func TestRunInTx_CommitBumpsVersionAndReleasesLock(t *testing.T) {
	store := memoryrepo.New()
	item := store.SeedItem(domain.Item{Name: "Serrote", Code: "SR-1", Quantity: 3, MinStock: 1})
	ctx := context.Background()

	write := func(qty int) error {
		return store.RunInTx(ctx, func(items domain.ItemStockStore, _ domain.MovementLedger) error {
			snap, err := items.GetForUpdate(ctx, item.ID)
			if err != nil {
				return err
			}
			return items.SetQuantity(ctx, item.ID, qty, snap.Version)
		})
	}

	require.NoError(t, write(5))
	require.NoError(t, write(8))

	got, _ := store.Item(item.ID)
	assert.Equal(t, 8, got.Quantity)
	assert.Equal(t, 3, got.Version)
}

func TestSetQuantity_RequiresLock(t *testing.T) {
	store := memoryrepo.New()
	item := store.SeedItem(domain.Item{Name: "Trena", Code: "TR-1", Quantity: 3})
	ctx := context.Background()

	err := store.RunInTx(ctx, func(items domain.ItemStockStore, _ domain.MovementLedger) error {
		return items.SetQuantity(ctx, item.ID, 1, item.Version)
	})

	assert.ErrorIs(t, err, memoryrepo.ErrLockNotHeld)
}

func TestSetQuantity_StaleVersion(t *testing.T) {
	store := memoryrepo.New()
	item := store.SeedItem(domain.Item{Name: "Nível", Code: "NV-1", Quantity: 3})
	ctx := context.Background()

	err := store.RunInTx(ctx, func(items domain.ItemStockStore, _ domain.MovementLedger) error {
		if _, err := items.GetForUpdate(ctx, item.ID); err != nil {
			return err
		}
		return items.SetQuantity(ctx, item.ID, 1, item.Version+1)
	})

	assert.Error(t, err)
}

func TestListMovements_Pagination(t *testing.T) {
	store := memoryrepo.New()
	item := store.SeedItem(domain.Item{Name: "Martelo", Code: "MT-1"})
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		amount := i
		require.NoError(t, store.RunInTx(ctx, func(_ domain.ItemStockStore, ledger domain.MovementLedger) error {
			_, err := ledger.Append(ctx, domain.Movement{ItemID: item.ID, Direction: domain.DirectionInbound, Amount: amount})
			return err
		}))
	}

	page, err := store.ListMovements(ctx, domain.MovementFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 4, page[0].Amount)
	assert.Equal(t, 3, page[1].Amount)
	assert.Equal(t, "MT-1", page[0].ItemCode)

	empty, err := store.ListMovements(ctx, domain.MovementFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
