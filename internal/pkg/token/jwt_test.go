package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferrastock/internal/domain"
	"ferrastock/internal/pkg/token"
)

func TestGenerateAndResolveIdentity(t *testing.T) {
	svc := token.NewService("segredo-de-teste", time.Hour)

	tok, err := svc.GenerateToken("user-1", string(domain.RoleAdmin))
	require.NoError(t, err)

	identity, err := svc.ResolveIdentity(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, domain.RoleAdmin, identity.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tok, err := token.NewService("segredo-a", time.Hour).GenerateToken("user-1", "usuario")
	require.NoError(t, err)

	_, err = token.NewService("segredo-b", time.Hour).ValidateToken(tok)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := token.NewService("segredo", -time.Minute)
	tok, err := svc.GenerateToken("user-1", "usuario")
	require.NoError(t, err)

	_, err = svc.ValidateToken(tok)
	assert.Error(t, err)
}

func TestResolveIdentity_Garbage(t *testing.T) {
	_, err := token.NewService("segredo", time.Hour).ResolveIdentity(context.Background(), "nao-e-um-jwt")
	assert.Error(t, err)
}
