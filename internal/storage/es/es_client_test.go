package es

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ClientConfig
		wantErr string
	}{
		{name: "no addresses", cfg: ClientConfig{IndexName: "runs"}, wantErr: "no addresses"},
		{name: "no index", cfg: ClientConfig{Addresses: []string{"http://localhost:9200"}}, wantErr: "no index name"},
		{name: "valid", cfg: ClientConfig{Addresses: []string{"http://localhost:9200"}, IndexName: "runs"}},
		{name: "with credentials", cfg: ClientConfig{Addresses: []string{"http://localhost:9200"}, IndexName: "runs", Username: "u", Password: "p"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newClient(tt.cfg)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}
