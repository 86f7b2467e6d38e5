package transitdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bebraradar/bebraradar/internal/appconf"
)

func TestNewClient_TestEnvRequiresInMemory(t *testing.T) {
	client, err := NewClient(Config{DBPath: "/tmp/transitdb_test.sqlite", Env: appconf.Test})
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "in-memory")
}

func TestNewClient_ValidConfig(t *testing.T) {
	client, err := NewClient(Config{DBPath: ":memory:", Env: appconf.Test})
	require.NoError(t, err)
	require.NotNil(t, client)
	defer func() { _ = client.Close() }()

	assert.NotNil(t, client.DB)
	assert.NotNil(t, client.Queries)
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(Config{DBPath: ":memory:", Env: appconf.Test})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}
