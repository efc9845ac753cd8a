package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func TestIssueParse_RoundTrip(t *testing.T) {
	t.Parallel()

	subject := uuid.NewString()
	token, err := Issue(testSecret, subject, "alice", "operator", UserTypeStaff)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, subject, claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, UserTypeStaff, claims.UserType)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(TTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := Issue(testSecret, uuid.NewString(), "alice", "", UserTypeUser)
	require.NoError(t, err)

	_, err = Parse(token, []byte("another-secret"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now().Add(-2 * TTL)
	claims := Claims{
		Username: "alice",
		UserType: UserTypeUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = Parse(token, testSecret)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParse_RejectsUnexpectedAlg(t *testing.T) {
	t.Parallel()

	claims := Claims{
		UserType: UserTypeUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
		},
	}
	// "none" signed tokens must never verify.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Parse(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParse_RejectsEmptySubject(t *testing.T) {
	t.Parallel()

	token, err := Issue(testSecret, "", "alice", "", UserTypeUser)
	require.NoError(t, err)

	_, err = Parse(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParse_Garbage(t *testing.T) {
	t.Parallel()

	_, err := Parse("not-a-jwt", testSecret)
	assert.ErrorIs(t, err, ErrInvalid)
}
