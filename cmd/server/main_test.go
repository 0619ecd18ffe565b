package main

import (
	"context"
	"testing"

	"gamerate/backend/internal/config"
	"gamerate/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStoreMemory(t *testing.T) {
	st, closeStore, err := openStore(&config.Config{DatabaseDriver: config.DriverMemory})
	require.NoError(t, err)
	defer closeStore()

	assert.IsType(t, &store.MemoryStore{}, st)
}

func TestOpenStoreSQLite(t *testing.T) {
	st, closeStore, err := openStore(&config.Config{DatabaseDriver: config.DriverSQLite, DatabaseURL: ":memory:"})
	require.NoError(t, err)
	defer closeStore()

	require.IsType(t, &store.GormStore{}, st)
	id, err := st.InsertGame(context.Background(), store.DemoGame)
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)
}

func TestOpenStoreBadDriver(t *testing.T) {
	_, _, err := openStore(&config.Config{DatabaseDriver: "oracle", DatabaseURL: "x"})
	assert.Error(t, err)
}
