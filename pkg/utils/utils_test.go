package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedIdentifiers(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^FAB-[0-9A-F]{8}$`), GenerateRegistrationNumber())
	assert.Regexp(t, regexp.MustCompile(`^EMP-[0-9A-F]{8}$`), GenerateEmployeeID())
	assert.NotEqual(t, GenerateRegistrationNumber(), GenerateRegistrationNumber())
}

func TestRandomPassword(t *testing.T) {
	pw, err := RandomPassword(8)
	require.NoError(t, err)
	assert.Len(t, pw, 8)
	for _, r := range pw {
		assert.Contains(t, passwordAlphabet, string(r))
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pw")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pw", hash))
	assert.False(t, CheckPasswordHash("other", hash))
}

func TestParseOptionalUUID(t *testing.T) {
	id, err := ParseOptionalUUID("")
	require.NoError(t, err)
	assert.Nil(t, id)

	_, err = ParseOptionalUUID("not-a-uuid")
	assert.Error(t, err)

	want := uuid.New()
	got, err := ParseOptionalUUID(" " + want.String() + " ")
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	id := Identity{UserID: uuid.New(), Username: "rep@example.com", IsMarketingRep: true}

	access, err := m.GenerateAccessToken(id)
	require.NoError(t, err)
	claims, err := m.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, id.UserID, claims.UserID)
	assert.True(t, claims.IsMarketingRep)
	assert.False(t, claims.IsAdmin)

	refresh, err := m.GenerateRefreshToken(id.UserID)
	require.NoError(t, err)
	userID, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, id.UserID, userID)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err, "refresh token must not authenticate requests")
	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err, "access token must not refresh")
}
