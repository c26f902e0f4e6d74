package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, int64(5242880), cfg.Storage.MaxFileSize)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, 10*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, 0.3, cfg.Analysis.JobMatchThreshold)
	assert.Equal(t, 15, cfg.Analysis.MaxSuggestions)
	assert.False(t, cfg.Index.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("S3_BUCKET", "resumes")
	t.Setenv("JOB_MATCH_THRESHOLD", "0.5")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("WORKER_POLL_INTERVAL", "not-a-duration")
	t.Setenv("WORKER_CONCURRENCY", "x")

	cfg := Load()

	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "resumes", cfg.Storage.S3.Bucket)
	assert.Equal(t, 0.5, cfg.Analysis.JobMatchThreshold)
	assert.True(t, cfg.Server.LogJSON)
	assert.Equal(t, 10*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Load()

	cfg.Storage.Driver = "ftp"
	assert.Error(t, cfg.Validate())

	cfg.Storage.Driver = "s3"
	cfg.Storage.S3.Bucket = ""
	assert.Error(t, cfg.Validate())

	cfg.Storage.Driver = "local"
	cfg.Index.Enabled = true
	cfg.Index.GeminiAPIKey = ""
	assert.Error(t, cfg.Validate())
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "cv"}}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=cv sslmode=disable", cfg.GetDatabaseDSN())
}
