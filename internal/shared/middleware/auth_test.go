package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/shared"
	"library-backend/internal/shared/principal"
	"library-backend/pkg/jwt"
)

func newTestRouter(m *jwt.Manager, seen *principal.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	handler := func(c *gin.Context) {
		if p, ok := principal.FromContext(c.Request.Context()); ok {
			*seen = p
		}
		c.Status(http.StatusNoContent)
	}
	r.GET("/me", AuthMiddleware(m), handler)
	r.GET("/admin", AuthMiddleware(m), LibrarianMiddleware(), handler)
	return r
}

func request(r *gin.Engine, path, auth string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func Test_AuthMiddleware_SetsPrincipalOnRequestContext(t *testing.T) {
	// arrange
	m := jwt.NewManager("mw-secret", time.Hour)
	id := uuid.New()
	token, _, err := m.GenerateAccessToken(id.String(), "jdupont", "member")
	require.NoError(t, err)
	var seen principal.Principal

	// act
	code := request(newTestRouter(m, &seen), "/me", "Bearer "+token)

	// assert
	assert.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, id, seen.MemberID)
	assert.Equal(t, "jdupont", seen.Username)
	assert.Equal(t, shared.RoleMember, seen.Role)
}

func Test_AuthMiddleware_RejectsBadHeaders(t *testing.T) {
	m := jwt.NewManager("mw-secret", time.Hour)
	foreign, _, _ := jwt.NewManager("other", time.Hour).GenerateAccessToken(uuid.NewString(), "x", "member")
	badRole, _, _ := m.GenerateAccessToken(uuid.NewString(), "x", "admin")
	badID, _, _ := m.GenerateAccessToken("42", "x", "member")

	cases := map[string]string{
		"missing":        "",
		"wrong scheme":   "Basic abc",
		"no token":       "Bearer",
		"foreign secret": "Bearer " + foreign,
		"unknown role":   "Bearer " + badRole,
		"non-uuid id":    "Bearer " + badID,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			var seen principal.Principal
			assert.Equal(t, http.StatusUnauthorized, request(newTestRouter(m, &seen), "/me", header))
		})
	}
}

func Test_LibrarianMiddleware(t *testing.T) {
	m := jwt.NewManager("mw-secret", time.Hour)
	memberToken, _, err := m.GenerateAccessToken(uuid.NewString(), "member", "member")
	require.NoError(t, err)
	librarianToken, _, err := m.GenerateAccessToken(uuid.NewString(), "biblio", "librarian")
	require.NoError(t, err)
	var seen principal.Principal
	r := newTestRouter(m, &seen)

	assert.Equal(t, http.StatusForbidden, request(r, "/admin", "Bearer "+memberToken))
	assert.Equal(t, http.StatusNoContent, request(r, "/admin", "Bearer "+librarianToken))
}
