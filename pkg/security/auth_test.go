package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/opcua-core/pkg/security"
	"github.com/cuemby/opcua-core/pkg/types"
)

func TestAuthenticateAnonymous(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		a := security.NewAuthenticator(security.Config{})
		err := a.AuthenticateAnonymous()
		require.Error(t, err)
		kind, _ := types.KindOf(err)
		assert.Equal(t, types.KindAuthFailure, kind)
	})

	t.Run("enabled", func(t *testing.T) {
		a := security.NewAuthenticator(security.Config{LoginEnableAnonymous: true})
		require.NoError(t, a.AuthenticateAnonymous())
	})
}

func TestAuthenticateUsernamePassword(t *testing.T) {
	a := security.NewAuthenticator(security.Config{
		LoginEnableUsernamePassword: true,
		LoginUsernames:              []string{"alice", "bob"},
		LoginPasswords:              []string{"s3cret", "hunter2"},
	})

	require.NoError(t, a.AuthenticateUsernamePassword("bob", "hunter2"))

	err := a.AuthenticateUsernamePassword("bob", "wrong")
	require.Error(t, err)
	kind, _ := types.KindOf(err)
	assert.Equal(t, types.KindAuthFailure, kind)

	err = a.AuthenticateUsernamePassword("nobody", "anything")
	require.Error(t, err)
}

func TestAuthenticateUsernamePasswordDisabled(t *testing.T) {
	a := security.NewAuthenticator(security.Config{})
	err := a.AuthenticateUsernamePassword("alice", "s3cret")
	require.Error(t, err)
}
