package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	service := NewService("test-secret")
	service.RegisterCredentials("trainer-red-key", "trainer-red-secret", 1)
	return service
}

func TestGenerateToken(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateToken(Credentials{
		APIKey:    "trainer-red-key",
		APISecret: "trainer-red-secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), token.Expiration, time.Minute)
}

func TestGenerateTokenInvalidCredentials(t *testing.T) {
	service := newTestService()

	cases := []struct {
		name  string
		creds Credentials
	}{
		{"unknown key", Credentials{APIKey: "nobody", APISecret: "trainer-red-secret"}},
		{"wrong secret", Credentials{APIKey: "trainer-red-key", APISecret: "wrong"}},
		{"empty", Credentials{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.GenerateToken(tc.creds)
			require.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestValidateToken(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateToken(Credentials{
		APIKey:    "trainer-red-key",
		APISecret: "trainer-red-secret",
	})
	require.NoError(t, err)

	claims, err := service.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.ParticipantID)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	service := newTestService()
	token, err := service.GenerateToken(Credentials{
		APIKey:    "trainer-red-key",
		APISecret: "trainer-red-secret",
	})
	require.NoError(t, err)

	other := NewService("different-secret")
	_, err = other.ValidateToken(token.Token)
	require.Error(t, err)
}

func TestGetParticipantID(t *testing.T) {
	assert.Equal(t, uint(7), GetParticipantID(jwt.MapClaims{"participant_id": float64(7)}))
	assert.Equal(t, uint(0), GetParticipantID(jwt.MapClaims{}))
	assert.Equal(t, uint(0), GetParticipantID(jwt.MapClaims{"participant_id": "seven"}))
	assert.Equal(t, uint(0), GetParticipantID(nil))
}
