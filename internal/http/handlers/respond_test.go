package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/stretchr/testify/assert"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestRespondErrorUsesStandardEnvelope(t *testing.T) {
	c, rec := newTestContext()

	respondError(c, domain.NewAppError(domain.ErrCodeProfileNotFound, "Profile not found", 404, nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error   *domain.AppError `json:"error"`
		Success bool             `json:"success"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotNil(t, body.Error)
	assert.Equal(t, domain.ErrCodeProfileNotFound, body.Error.Code)
	assert.Equal(t, "Profile not found", body.Error.Message)
}

func TestRespondErrorWrapsUnknownErrors(t *testing.T) {
	c, rec := newTestContext()

	respondError(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Error   *domain.AppError `json:"error"`
		Success bool             `json:"success"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotNil(t, body.Error)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
}
