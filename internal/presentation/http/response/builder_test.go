package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/club-invaders/fanclub/pkg/errorbank"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBuildSuccess(t *testing.T) {
	c, rec := newTestContext()

	err := New(c).WithData(map[string]string{"name": "Invaders Jersey"}).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Invaders Jersey", body.Data["name"])
}

func TestBuildSuccessWithMeta(t *testing.T) {
	c, rec := newTestContext()

	err := New(c).WithData([]string{}).WithMeta("fallback", true).Build()
	require.NoError(t, err)

	var body struct {
		Success bool           `json:"success"`
		Meta    map[string]any `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, true, body.Meta["fallback"])
}

func TestBuildError(t *testing.T) {
	c, rec := newTestContext()

	err := New(c).WithError(errorbank.NotFound("merch item not found", errorbank.WithDetail("id", 42))).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Kind    string         `json:"kind"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "not_found", body.Error.Kind)
	assert.Equal(t, "merch item not found", body.Error.Message)
	assert.EqualValues(t, 42, body.Error.Details["id"])
}

func TestBuildErrorWrapsUnknown(t *testing.T) {
	c, rec := newTestContext()

	err := New(c).WithError(assert.AnError).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal", body.Error.Kind)
	// The raw cause never leaks into the response body.
	assert.Equal(t, "internal error", body.Error.Message)
}

func TestWithStatusOverride(t *testing.T) {
	c, rec := newTestContext()

	err := New(c).WithStatus(http.StatusCreated).WithData("ok").Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
