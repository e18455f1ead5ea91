package etag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestOf(t *testing.T) {
	a, err := Of(doc{ID: "1", Name: "a"})
	require.NoError(t, err)
	b, err := Of(doc{ID: "1", Name: "a"})
	require.NoError(t, err)
	c, err := Of(doc{ID: "1", Name: "b"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, len(a) > 2 && a[0] == '"' && a[len(a)-1] == '"')

	_, err = Of(make(chan int))
	assert.Error(t, err)
}

func TestMatches(t *testing.T) {
	tag := `"abc"`
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`"abc"`, true},
		{`W/"abc"`, true},
		{`"x", "abc"`, true},
		{`"x"`, false},
		{"*", true},
		{`abc`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Matches(tt.header, tag), tt.header)
	}
	assert.False(t, Matches("*", ""))
}
