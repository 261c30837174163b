package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(handler gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var env Response
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func Test_Error_WritesEnvelope(t *testing.T) {
	// act
	w, env := record(func(c *gin.Context) {
		Error(c, http.StatusConflict, "ALREADY_RETURNED", "Loan already returned", map[string]string{"loan_id": "x"})
	})

	// assert
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ALREADY_RETURNED", env.Error.Code)
	assert.Equal(t, "Loan already returned", env.Error.Message)
	assert.Equal(t, map[string]interface{}{"loan_id": "x"}, env.Error.Details)
}

func Test_Success_OmitsError(t *testing.T) {
	// act
	w, env := record(func(c *gin.Context) {
		Success(c, http.StatusCreated, "Created", gin.H{"id": 1})
	})

	// assert
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Created", env.Message)
	assert.Nil(t, env.Error)
	assert.NotContains(t, w.Body.String(), `"error"`)
}

func Test_Helpers_UseStableCodes(t *testing.T) {
	tests := []struct {
		name    string
		handler gin.HandlerFunc
		status  int
		code    string
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "bad", nil) }, http.StatusBadRequest, "BAD_REQUEST"},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "no") }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "no") }, http.StatusForbidden, "FORBIDDEN"},
		{"not found", func(c *gin.Context) { NotFound(c, "gone") }, http.StatusNotFound, "NOT_FOUND"},
		{"internal", func(c *gin.Context) { InternalServerError(c, "boom") }, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := record(tt.handler)

			assert.Equal(t, tt.status, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}
