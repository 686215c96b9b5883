package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     4000,
			User:     "root",
			Database: "appdb",
		},
		Schema: SchemaConfig{
			Path:       "schema.prisma",
			OutputPath: "schema.remapped.prisma",
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestValidateOK(t *testing.T) {
	result := validConfig().Validate()
	assert.False(t, result.HasErrors())
	assert.Empty(t, result.Warnings)
}

func TestValidateMissingSchemaPath(t *testing.T) {
	cfg := validConfig()
	cfg.Schema.Path = ""

	result := cfg.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.Error(), "schema.path")
}

func TestValidateOutputMustDiffer(t *testing.T) {
	cfg := validConfig()
	cfg.Schema.OutputPath = cfg.Schema.Path

	result := cfg.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.Error(), "schema.output_path")
}

func TestValidateBadTLSMode(t *testing.T) {
	cfg := validConfig()
	cfg.Database.TLS.Mode = "mystery"

	result := cfg.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.Error(), "database.tls.mode")
}

func TestValidateBadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"

	result := cfg.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.Error(), "logging.level")
}

func TestDSNFromDiscreteFields(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.example.com",
		Port:     3306,
		User:     "app",
		Password: "secret",
		Database: "appdb",
	}

	assert.Equal(t,
		"app:secret@tcp(db.example.com:3306)/appdb?parseTime=true&loc=UTC",
		d.DSN(),
	)
}

func TestDSNFromConnectionString(t *testing.T) {
	d := DatabaseConfig{
		ConnectionString: "app:secret@tcp(db.example.com:3306)/appdb",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "loc=UTC")
}

func TestDSNTLSParam(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.example.com",
		Port:     3306,
		User:     "app",
		Database: "appdb",
		TLS:      DatabaseTLSConfig{Mode: "skip-verify"},
	}

	assert.Contains(t, d.DSN(), "tls=skip-verify")
}

func TestResolveEffectiveDatabaseName(t *testing.T) {
	tests := []struct {
		name      string
		database  string
		dsn       string
		expected  string
		expectErr bool
	}{
		{
			name:     "discrete name only",
			database: "appdb",
			expected: "appdb",
		},
		{
			name:     "dsn name only",
			dsn:      "app:secret@tcp(localhost:3306)/dsndb",
			expected: "dsndb",
		},
		{
			name:     "matching discrete and dsn",
			database: "appdb",
			dsn:      "app:secret@tcp(localhost:3306)/appdb",
			expected: "appdb",
		},
		{
			name:      "conflicting discrete and dsn",
			database:  "appdb",
			dsn:       "app:secret@tcp(localhost:3306)/otherdb",
			expectErr: true,
		},
		{
			name:      "nothing configured",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := resolveEffectiveDatabaseName(tt.database, tt.dsn)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestDefaultTimeouts(t *testing.T) {
	assert.Equal(t, 30*time.Second, defaultConnectionTimeout)
	assert.Equal(t, 2*time.Second, defaultRetryInterval)
}
