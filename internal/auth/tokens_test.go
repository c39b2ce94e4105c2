package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *Tokens, at time.Time) {
	t.now = func() time.Time { return at }
}

func TestNewTokensRequiresSecret(t *testing.T) {
	_, err := NewTokens("", time.Minute)
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestIssueAndVerify(t *testing.T) {
	tokens, err := NewTokens("k1", 30*time.Minute)
	require.NoError(t, err)

	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fixedClock(tokens, issued)

	tok, err := tokens.Issue("03ac674216f3e15c")
	require.NoError(t, err)
	assert.Equal(t, issued.Add(30*time.Minute), tok.ExpiresAt)

	sub, err := tokens.Verify(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "03ac674216f3e15c", sub)
}

func TestVerifyExpiry(t *testing.T) {
	tokens, err := NewTokens("k1", time.Minute)
	require.NoError(t, err)

	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fixedClock(tokens, issued)
	tok, err := tokens.Issue("user")
	require.NoError(t, err)

	fixedClock(tokens, issued.Add(59*time.Second))
	_, err = tokens.Verify(tok.Value)
	require.NoError(t, err)

	fixedClock(tokens, issued.Add(time.Minute))
	_, err = tokens.Verify(tok.Value)
	require.ErrorIs(t, err, ErrExpiredToken)

	fixedClock(tokens, issued.Add(time.Hour))
	_, err = tokens.Verify(tok.Value)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	k1, err := NewTokens("k1", time.Minute)
	require.NoError(t, err)
	k2, err := NewTokens("k2", time.Minute)
	require.NoError(t, err)

	tok, err := k1.Issue("user")
	require.NoError(t, err)

	_, err = k2.Verify(tok.Value)
	require.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerifyRejectsMalformedTokens(t *testing.T) {
	tokens, err := NewTokens("k1", time.Minute)
	require.NoError(t, err)

	valid, err := tokens.Issue("user")
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user"}).SignedString([]byte("k1"))
	require.NoError(t, err)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("k1"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("k1"))
	require.NoError(t, err)

	cases := map[string]string{
		"garbage":     "not.a.token",
		"empty":       "",
		"truncated":   valid.Value[:len(valid.Value)-1],
		"missing exp": noExp,
		"missing sub": noSub,
		"wrong algo":  hs512,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Verify(tok)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}
