package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterStoreIDStoreAdminPinnedToBinding(t *testing.T) {
	scope := &AdminScope{UserID: 5, IsStoreAdmin: true, StoreID: 3}

	// a caller-supplied store id never overrides the binding
	requested := uint(9)
	got := scope.FilterStoreID(&requested)
	require.NotNil(t, got)
	assert.Equal(t, uint(3), *got)

	got = scope.FilterStoreID(nil)
	require.NotNil(t, got)
	assert.Equal(t, uint(3), *got)
}

func TestFilterStoreIDSuperAdmin(t *testing.T) {
	scope := &AdminScope{UserID: 1, IsSuperAdmin: true}

	// no filter means all stores
	assert.Nil(t, scope.FilterStoreID(nil))

	requested := uint(4)
	got := scope.FilterStoreID(&requested)
	require.NotNil(t, got)
	assert.Equal(t, uint(4), *got)
}

func TestFilterStoreIDBothRolesSuperWins(t *testing.T) {
	scope := &AdminScope{UserID: 2, IsSuperAdmin: true, IsStoreAdmin: true, StoreID: 3}

	requested := uint(8)
	got := scope.FilterStoreID(&requested)
	require.NotNil(t, got)
	assert.Equal(t, uint(8), *got)
}

func TestCanActOnStore(t *testing.T) {
	storeAdmin := &AdminScope{UserID: 5, IsStoreAdmin: true, StoreID: 3}
	assert.True(t, storeAdmin.CanActOnStore(3))
	assert.False(t, storeAdmin.CanActOnStore(4))

	superAdmin := &AdminScope{UserID: 1, IsSuperAdmin: true}
	assert.True(t, superAdmin.CanActOnStore(3))
	assert.True(t, superAdmin.CanActOnStore(4))

	nobody := &AdminScope{UserID: 9}
	assert.False(t, nobody.CanActOnStore(3))
}
