package cli

import (
	"context"
	"testing"

	"finpal-server/src/config"
	"finpal-server/src/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := NewRootCommand()

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())

	migrate, _, err := root.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.Equal(t, "migrate", migrate.Name())

	assert.NotNil(t, root.RunE)
}

func TestOpenMemoryStore(t *testing.T) {
	st, closeStore, err := openStore(context.Background(), config.Config{Store: config.StoreMemory})
	require.NoError(t, err)
	defer closeStore()

	_, ok := st.(*store.Memory)
	assert.True(t, ok)
	assert.NoError(t, st.Ping(context.Background()))
}
