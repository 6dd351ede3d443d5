package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasherWithCost(4)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.False(t, strings.Contains(hash, "secret1"))

	assert.True(t, hasher.Verify("secret1", hash))
	assert.False(t, hasher.Verify("secret2", hash))
	assert.False(t, hasher.Verify("secret1", "not-a-bcrypt-hash"))
}

func TestPasswordHasher_SaltsEachHash(t *testing.T) {
	hasher := NewPasswordHasherWithCost(4)

	first, err := hasher.Hash("secret1")
	require.NoError(t, err)
	second, err := hasher.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", 24*time.Hour, "test")

	token, err := svc.Issue("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestTokenService_ExpiresAfterTTL(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("test-secret", 24*time.Hour, "test")
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(23 * time.Hour) }
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(25 * time.Hour) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	issuer := NewTokenService("other-secret", time.Hour, "test")
	verifier := NewTokenService("test-secret", time.Hour, "test")

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsMalformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "test")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestTokenService_RejectsUnsignedToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "test")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGrants(t *testing.T) {
	tests := []struct {
		role       string
		capability string
		want       bool
	}{
		{RoleAdmin, CapUsersRead, true},
		{RoleAdmin, CapTasksManage, true},
		{RoleManager, CapTasksManage, true},
		{RoleManager, CapUsersRead, false},
		{RoleUser, CapUsersRead, false},
		{RoleUser, CapTasksManage, false},
		{"", CapUsersRead, false},
		{"superuser", CapUsersRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.capability, func(t *testing.T) {
			assert.Equal(t, tt.want, Grants(tt.role, tt.capability))
		})
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("root"))
}
