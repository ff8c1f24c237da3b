package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookshelf/catalog"
	"github.com/AntonStoeckl/bookshelf/config"
)

func Test_FromEnv_Defaults(t *testing.T) {
	t.Setenv(config.EnvAdapter, "")
	t.Setenv(config.EnvDSN, "")
	t.Setenv(config.EnvReplicaDSN, "")
	t.Setenv(config.EnvAddr, "")

	settings, err := config.FromEnv()

	require.NoError(t, err)
	assert.Equal(t, config.Settings{
		Adapter: config.AdapterPGXPool,
		DSN:     config.PostgresDefaultDSN(),
		Addr:    ":8080",
	}, settings)
}

func Test_FromEnv_Overrides(t *testing.T) {
	t.Setenv(config.EnvAdapter, config.AdapterSQLX)
	t.Setenv(config.EnvDSN, "postgres://other")
	t.Setenv(config.EnvReplicaDSN, "postgres://replica")
	t.Setenv(config.EnvAddr, ":9090")

	settings, err := config.FromEnv()

	require.NoError(t, err)
	assert.Equal(t, config.Settings{
		Adapter:    config.AdapterSQLX,
		DSN:        "postgres://other",
		ReplicaDSN: "postgres://replica",
		Addr:       ":9090",
	}, settings)
}

func Test_WithDefaults_SQLite_DSN(t *testing.T) {
	settings, err := config.Settings{Adapter: config.AdapterSQLite}.WithDefaults()

	require.NoError(t, err)
	assert.Equal(t, config.SQLiteDefaultDSN(), settings.DSN)
}

func Test_WithDefaults_Rejects_Unknown_Adapter(t *testing.T) {
	_, err := config.Settings{Adapter: "mysql"}.WithDefaults()

	assert.ErrorIs(t, err, config.ErrUnsupportedAdapter)
}

func Test_PostgresPGXPoolConfig(t *testing.T) {
	dbConfig, err := config.PostgresPGXPoolConfig(config.PostgresDefaultDSN())

	require.NoError(t, err)
	assert.Equal(t, int32(20), dbConfig.MaxConns)
	assert.Equal(t, 5*time.Second, dbConfig.ConnConfig.ConnectTimeout)
	assert.Equal(t, "bookshelf", dbConfig.ConnConfig.Database)

	_, err = config.PostgresPGXPoolConfig("postgres://%zz")
	assert.Error(t, err)
}

func Test_OpenStore_With_SQLite(t *testing.T) {
	ctx := context.Background()

	store, closeStore, err := config.OpenStore(ctx, config.Settings{Adapter: config.AdapterSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(closeStore)

	require.NoError(t, store.Migrate(ctx))

	category, err := store.Categories().Add(ctx, "Poetry")
	require.NoError(t, err)

	found, err := store.Categories().FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.Category{ID: category.ID, Name: "Poetry"}, found)
}

func Test_OpenStore_Rejects_Unknown_Adapter(t *testing.T) {
	_, _, err := config.OpenStore(context.Background(), config.Settings{Adapter: "mysql"})

	assert.ErrorIs(t, err, config.ErrUnsupportedAdapter)
}
