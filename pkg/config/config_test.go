package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taff-facture/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "taff-facture", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, config.StoreMemory, cfg.Store.Driver)
	assert.Equal(t, config.ExportRaster, cfg.Export.Mode)
	assert.Equal(t, 3.0, cfg.Export.Scale)
	assert.Equal(t, 30*time.Second, cfg.Export.Timeout)
	assert.Equal(t, "fr-FR", cfg.Display.Locale)
	assert.Equal(t, "€", cfg.Display.Currency)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("EXPORT_MODE", "VECTOR")
	t.Setenv("EXPORT_SCALE", "2.5")
	t.Setenv("EXPORT_TIMEOUT_SECONDS", "5")
	t.Setenv("STORE_DRIVER", "postgres")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.ExportVector, cfg.Export.Mode)
	assert.Equal(t, 2.5, cfg.Export.Scale)
	assert.Equal(t, 5*time.Second, cfg.Export.Timeout)
	assert.Equal(t, config.StorePostgres, cfg.Store.Driver)
}

func TestLoad_ModoDesconocido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EXPORT_MODE", "html2canvas")

	_, err := config.Load()
	assert.ErrorContains(t, err, "EXPORT_MODE")
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "facturas", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/facturas?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
