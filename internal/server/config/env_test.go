package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Run("overlays set variables", func(t *testing.T) {
		t.Setenv("KOTOBA_ADDRESS", ":9999")
		t.Setenv("KOTOBA_DATABASE_DSN", "postgres://env/db")
		t.Setenv("KOTOBA_IDLE_TIMEOUT", "90s")

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, ":9999", cfg.BindAddr)
		assert.Equal(t, "postgres://env/db", cfg.DatabaseDSN)
		assert.Equal(t, 90*time.Second, cfg.IdleTimeout)
	})

	t.Run("unset variables leave values alone", func(t *testing.T) {
		t.Setenv("KOTOBA_ADDRESS", "")
		t.Setenv("KOTOBA_DATABASE_DSN", "")
		t.Setenv("KOTOBA_IDLE_TIMEOUT", "")

		cfg := &Config{BindAddr: ":7878", DatabaseDSN: "dsn", IdleTimeout: time.Minute}
		parseEnv(cfg)

		assert.Equal(t, ":7878", cfg.BindAddr)
		assert.Equal(t, "dsn", cfg.DatabaseDSN)
		assert.Equal(t, time.Minute, cfg.IdleTimeout)
	})

	t.Run("bad duration is ignored", func(t *testing.T) {
		t.Setenv("KOTOBA_IDLE_TIMEOUT", "not-a-duration")

		cfg := &Config{IdleTimeout: time.Minute}
		parseEnv(cfg)

		assert.Equal(t, time.Minute, cfg.IdleTimeout)
	})
}
