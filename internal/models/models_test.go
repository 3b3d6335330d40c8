package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func TestTokenPair_WireFormat(t *testing.T) {
	t.Parallel()

	raw := `{"accessToken":"new","refreshToken":"new-r","tokenType":"Bearer","expiresIn":3600}`

	var p TokenPair
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.Equal(t, TokenPair{AccessToken: "new", RefreshToken: "new-r", TokenType: "Bearer", ExpiresIn: 3600}, p)
}

func TestTokenPair_Claims_JWT(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Second)
	tok := signed(t, jwt.RegisteredClaims{
		Subject:   "admin-1",
		Issuer:    "platform",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})

	c, err := TokenPair{AccessToken: tok}.Claims()
	require.NoError(t, err)
	require.Equal(t, "admin-1", c.Subject)
	require.Equal(t, "platform", c.Issuer)
	require.True(t, c.IssuedAt.Equal(now))
	require.True(t, c.ExpiresAt.Equal(now.Add(time.Hour)))
}

// Истёкший токен всё равно разбирается: проверка срока — забота бэкенда.
func TestTokenPair_Claims_ExpiredTokenStillParsed(t *testing.T) {
	t.Parallel()

	tok := signed(t, jwt.RegisteredClaims{
		Subject:   "admin-2",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	c, err := TokenPair{AccessToken: tok}.Claims()
	require.NoError(t, err)
	require.Equal(t, "admin-2", c.Subject)
}

func TestTokenPair_Claims_Opaque(t *testing.T) {
	t.Parallel()

	_, err := TokenPair{AccessToken: "not-a-jwt"}.Claims()
	require.ErrorIs(t, err, ErrOpaqueToken)

	_, err = TokenPair{}.Claims()
	require.ErrorIs(t, err, ErrOpaqueToken)
}

func TestListQuery_Values(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		in   ListQuery
		want string
	}{
		{"defaults", ListQuery{}, "page=0&size=20"},
		{"negative_page", ListQuery{Page: -3, Size: 5}, "page=0&size=5"},
		{"size_capped", ListQuery{Page: 2, Size: 1000}, "page=2&size=100"},
		{"filters", ListQuery{Page: 1, Size: 10, Status: "PENDING", Search: "jazz night"}, "page=1&search=jazz+night&size=10&status=PENDING"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.in.Values().Encode())
		})
	}
}

func TestParticipantStatus_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, ParticipantActive.Valid())
	require.True(t, ParticipantBlocked.Valid())
	require.False(t, ParticipantStatus("DELETED").Valid())
	require.False(t, ParticipantStatus("").Valid())
}
