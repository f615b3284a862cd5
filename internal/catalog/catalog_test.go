package catalog

import (
	"fmt"
	"testing"

	"github.com/ksred/barter-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	// Named shared-cache DSN so every pooled connection sees the same
	// in-memory database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&types.Item{}))
	return NewService(db)
}

func TestRegisterItem(t *testing.T) {
	service := setupTestService(t)

	item, err := service.RegisterItem(&types.Item{
		Name:    "Silver Locket",
		Kind:    "collectible",
		Rarity:  4,
		OwnerID: 1,
	})
	require.NoError(t, err)
	require.NotZero(t, item.ID)

	stored, err := service.LookupItem(item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Silver Locket", stored.Name)
	assert.Equal(t, 4, stored.Rarity)
	assert.Equal(t, uint(1), stored.OwnerID)
}

func TestRegisterItemValidation(t *testing.T) {
	service := setupTestService(t)

	cases := []struct {
		name string
		item types.Item
	}{
		{"missing name", types.Item{Rarity: 3, OwnerID: 1}},
		{"rarity below scale", types.Item{Name: "Pebble", Rarity: 0, OwnerID: 1}},
		{"rarity above scale", types.Item{Name: "Crown", Rarity: 6, OwnerID: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := tc.item
			_, err := service.RegisterItem(&item)
			require.Error(t, err)
		})
	}
}

func TestLookupItemMissing(t *testing.T) {
	service := setupTestService(t)

	item, err := service.LookupItem(42)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestItemsByOwner(t *testing.T) {
	service := setupTestService(t)

	for _, item := range []*types.Item{
		{Name: "Oak Figurine", Rarity: 2, OwnerID: 1},
		{Name: "Brass Compass", Rarity: 3, OwnerID: 1},
		{Name: "Meteorite Shard", Rarity: 5, OwnerID: 2},
	} {
		_, err := service.RegisterItem(item)
		require.NoError(t, err)
	}

	mine, err := service.ItemsByOwner(1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := service.ItemsByOwner(2)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, "Meteorite Shard", theirs[0].Name)
}
