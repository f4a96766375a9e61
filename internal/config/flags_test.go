package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{
			name:     "empty address",
			addr:     NetAddress{},
			expected: "",
		},
		{
			name:     "localhost with port",
			addr:     NetAddress{Host: "localhost", Port: 8080},
			expected: "localhost:8080",
		},
		{
			name:     "IP address with port",
			addr:     NetAddress{Host: "127.0.0.1", Port: 9090},
			expected: "127.0.0.1:9090",
		},
		{
			name:     "only host no port",
			addr:     NetAddress{Host: "localhost", Port: 0},
			expected: "localhost:0",
		},
		{
			name:     "only port no host",
			addr:     NetAddress{Host: "", Port: 8080},
			expected: ":8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.addr.String()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		errorMsg     string
		expectedAddr NetAddress
	}{
		{
			name:         "valid localhost",
			input:        "localhost:8080",
			expectError:  false,
			expectedAddr: NetAddress{Host: "localhost", Port: 8080},
		},
		{
			name:         "valid IPv4",
			input:        "127.0.0.1:9090",
			expectError:  false,
			expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090},
		},
		{
			name:        "missing colon",
			input:       "localhost8080",
			expectError: true,
			errorMsg:    "need address in a form `host:port`",
		},
		{
			name:        "multiple colons without brackets",
			input:       "host:port:extra",
			expectError: true,
			errorMsg:    "need address in a form `host:port`",
		},
		{
			name:        "non-numeric port",
			input:       "localhost:abc",
			expectError: true,
			errorMsg:    "invalid syntax",
		},
		{
			name:        "negative port",
			input:       "localhost:-1",
			expectError: true,
			errorMsg:    "port number is a positive integer",
		},
		{
			name:        "zero port",
			input:       "localhost:0",
			expectError: true,
			errorMsg:    "port number is a positive integer",
		},
		{
			name:        "invalid IP address",
			input:       "invalid.host:8080",
			expectError: true,
			errorMsg:    "incorrect IP-address provided",
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
			errorMsg:    "need address in a form `host:port`",
		},
		{
			name:        "only colon",
			input:       ":",
			expectError: true,
			errorMsg:    "invalid syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedAddr.Host, addr.Host)
				assert.Equal(t, tt.expectedAddr.Port, addr.Port)
			}
		})
	}
}

// TestParseFlags tests the ParseFlags function
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "no flags",
			args: nil,
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, &StructuredConfig{}, cfg)
			},
		},
		{
			name: "server and sql storage",
			args: []string{"-a", "localhost:8081", "-storage", "sql", "-driver", "sqlite3", "-d", "file:forms.db"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
				assert.Equal(t, StorageBackendSQL, cfg.Storage.Backend)
				assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
				assert.Equal(t, "file:forms.db", cfg.Storage.DB.DSN)
			},
		},
		{
			name: "directories and limits",
			args: []string{"-f", "/srv/data", "-u", "/srv/uploads", "-request-timeout", "1m", "-max-upload-size", "1024"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/srv/data", cfg.Storage.Files.DataDir)
				assert.Equal(t, "/srv/uploads", cfg.Storage.Uploads.Dir)
				assert.Equal(t, time.Minute, cfg.Server.RequestTimeout)
				assert.Equal(t, int64(1024), cfg.App.MaxUploadSize)
			},
		},
		{
			name: "notifier and config alias",
			args: []string{"-redis-addr", "localhost:6379", "-webhook-url", "http://hooks", "-config", "/etc/forms.json"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "localhost:6379", cfg.Notifier.RedisAddr)
				assert.Equal(t, "http://hooks", cfg.Notifier.WebhookURL)
				assert.Equal(t, "/etc/forms.json", cfg.JSONFilePath)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFlags(tt.args)
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

// TestParseFlags_InvalidAddress tests ParseFlags with invalid addresses
func TestParseFlags_InvalidAddress(t *testing.T) {
	for _, addr := range []string{"localhost", "bad.host:80", "localhost:0"} {
		t.Run(addr, func(t *testing.T) {
			cfg, err := ParseFlags([]string{"-a", addr})
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

// TestParseFlags_UnknownFlag verifies unknown flags are reported, not fatal.
func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := ParseFlags([]string{"-listen-backlog", "128"})
	assert.Error(t, err)
}
