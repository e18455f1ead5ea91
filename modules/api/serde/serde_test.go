package serde

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func body(s string) io.ReadCloser { return io.NopCloser(strings.NewReader(s)) }

func TestParseJsonBody(t *testing.T) {
	var p payload
	require.NoError(t, ParseJsonBody(body(`{"name":"a"}`), &p))
	assert.Equal(t, "a", p.Name)

	assert.ErrorIs(t, ParseJsonBody(body(""), &p), ErrEmptyBody)
	assert.Error(t, ParseJsonBody(body(`{"nope":1}`), &p))
	assert.Error(t, ParseJsonBody(body(`{"name":"a"} {}`), &p))
	assert.Error(t, ParseJsonBody(body(`{"name":1}`), &p))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, 201, map[string]string{"k": "v"})
	assert.Equal(t, 201, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"k":"v"}`, rec.Body.String())
	assert.Equal(t, 3, *Ptr(3))
}
