package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 5000}, expected: "localhost:5000"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		want        NetAddress
	}{
		{name: "localhost", input: "localhost:5000", want: NetAddress{Host: "localhost", Port: 5000}},
		{name: "ipv4", input: "192.168.1.10:80", want: NetAddress{Host: "192.168.1.10", Port: 80}},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "hostname that is not an IP", input: "garage.local:5000", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-mode", "remote",
		"-a", "127.0.0.1:5000",
		"-request-timeout", "2s",
		"-page-size", "5",
		"-d", ":memory:",
		"-persist-timeout", "1s",
		"-config", "garage.yml",
	})
	require.NoError(t, err)

	assert.Equal(t, "remote", cfg.App.Mode)
	assert.Equal(t, "127.0.0.1:5000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 2*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 5, cfg.Adapter.PageSize)
	assert.Equal(t, ":memory:", cfg.Storage.DB.DSN)
	assert.Equal(t, time.Second, cfg.Workers.PersistTimeout)
	assert.Equal(t, "garage.yml", cfg.ConfigFilePath)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_BadAddress(t *testing.T) {
	_, err := ParseFlags([]string{"-a", "nope"})
	assert.Error(t, err)
}
