// Package storetest opens a migrated in-memory SQLite store for tests.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luvi2001/yfcapp/internal/config"
	"github.com/luvi2001/yfcapp/internal/store"
)

func New(t testing.TB) *store.Store {
	t.Helper()
	cfg := config.Default()
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = ":memory:"

	db, err := cfg.OpenGormDB()
	require.NoError(t, err)
	st := store.New(db)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}
