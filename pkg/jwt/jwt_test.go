package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GenerateAndValidateAccessToken(t *testing.T) {
	// arrange
	m := NewManager("secret", 30*time.Minute)
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m.currentTime = func() time.Time { return fixed }

	// act
	token, expiresAt, err := m.GenerateAccessToken("6f1c2b9e-3d4a-4c55-8e7f-0a1b2c3d4e5f", "jdupont", "librarian")
	require.NoError(t, err)
	claims, err := m.ValidateAccessToken(token)

	// assert
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(30*time.Minute), expiresAt)
	assert.Equal(t, "6f1c2b9e-3d4a-4c55-8e7f-0a1b2c3d4e5f", claims.MemberID)
	assert.Equal(t, "jdupont", claims.Username)
	assert.Equal(t, "librarian", claims.Role)
	assert.Equal(t, "library-backend", claims.Issuer)
}

func Test_ValidateToken_RejectsExpired(t *testing.T) {
	// arrange
	m := NewManager("secret", time.Minute)
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m.currentTime = func() time.Time { return issued }
	token, _, err := m.GenerateAccessToken("id", "u", "member")
	require.NoError(t, err)

	// act
	m.currentTime = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.ValidateAccessToken(token)

	// assert
	assert.Error(t, err)
}

func Test_ValidateToken_RejectsForeignSignature(t *testing.T) {
	// arrange
	token, _, err := NewManager("one", time.Hour).GenerateAccessToken("id", "u", "member")
	require.NoError(t, err)

	// act
	_, err = NewManager("two", time.Hour).ValidateAccessToken(token)

	// assert
	assert.Error(t, err)
}

func Test_ValidateToken_RejectsGarbage(t *testing.T) {
	_, err := NewManager("secret", time.Hour).ValidateAccessToken("not.a.jwt")

	assert.Error(t, err)
}
