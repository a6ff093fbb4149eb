package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		// t.Setenv sets the environment variable for the duration of the test
		// and automatically restores it afterwards.
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_PATH", "/tmp/laundry.db")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
		t.Setenv("LOG_FILE", "/tmp/laundry.log")
		t.Setenv("SEED_DATA", "false")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, DriverPostgres, cfg.DBDriver)
		assert.Equal(t, "/tmp/laundry.db", cfg.DBPath)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
		assert.Equal(t, "/tmp/laundry.log", cfg.LogFile)
		assert.False(t, cfg.SeedData)
	})

	t.Run("Defaults", func(t *testing.T) {
		for _, k := range []string{"APP_PORT", "APP_ENV", "DB_DRIVER", "DB_PATH", "JWT_SECRET", "CORS_ORIGINS", "SEED_DATA"} {
			t.Setenv(k, "")
		}

		cfg := LoadConfig()

		assert.Equal(t, "3002", cfg.AppPort)
		assert.Equal(t, DriverSQLite, cfg.DBDriver)
		assert.Equal(t, "laundry.db", cfg.DBPath)
		assert.NotEmpty(t, cfg.JWTSecret)
		assert.Len(t, cfg.CORSOrigins, 2)
		assert.True(t, cfg.SeedData)
		assert.False(t, cfg.IsProduction())
	})
}
