package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	for _, p := range []string{"/", "/healthz", "/readyz", "/profiles", "/profiles/{id}", "/profiles/by-user/{userId}"} {
		assert.NotNil(t, d.Paths.Find(p), p)
	}

	item := d.Paths.Find("/profiles/{id}")
	require.NotNil(t, item)
	assert.NotNil(t, item.Get)
	assert.NotNil(t, item.Patch)
	assert.NotNil(t, item.Delete)
	assert.Nil(t, item.Put)

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, d, again)
}

func TestRaw(t *testing.T) {
	assert.Contains(t, string(Raw()), "openapi: 3.0.3")
}
