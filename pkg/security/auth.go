package security

import (
	"crypto/subtle"

	"github.com/cuemby/opcua-core/pkg/types"
)

// Config is the login portion of the server's configuration. It is
// deliberately separate from server.Config: the main loop never consults
// it, only the session-establishment path does.
type Config struct {
	LoginEnableAnonymous        bool
	LoginEnableUsernamePassword bool

	// LoginUsernames/LoginPasswords are parallel arrays of accepted
	// credential pairs. A count field is unnecessary in Go since
	// len(LoginUsernames) already carries it.
	LoginUsernames []string
	LoginPasswords []string
}

// Authenticator validates session-establishment credentials against a
// Config. It holds no mutable state beyond the config it was built from.
type Authenticator struct {
	cfg Config
}

// NewAuthenticator returns an Authenticator enforcing cfg.
func NewAuthenticator(cfg Config) *Authenticator {
	return &Authenticator{cfg: cfg}
}

// AuthenticateAnonymous reports whether an anonymous session may be
// established.
func (a *Authenticator) AuthenticateAnonymous() error {
	if !a.cfg.LoginEnableAnonymous {
		return types.NewError(types.KindAuthFailure, "authenticate.anonymousDisabled")
	}
	return nil
}

// AuthenticateUsernamePassword validates username/password against the
// configured credential pairs. Comparison is constant-time per password to
// avoid leaking a match through response timing; this does not extend to
// hiding which username exists, since credentials are held as plaintext
// configuration rather than hashed records.
func (a *Authenticator) AuthenticateUsernamePassword(username, password string) error {
	if !a.cfg.LoginEnableUsernamePassword {
		return types.NewError(types.KindAuthFailure, "authenticate.usernamePasswordDisabled")
	}
	for i, candidate := range a.cfg.LoginUsernames {
		if candidate != username {
			continue
		}
		if i >= len(a.cfg.LoginPasswords) {
			break
		}
		if subtle.ConstantTimeCompare([]byte(a.cfg.LoginPasswords[i]), []byte(password)) == 1 {
			return nil
		}
		return types.NewError(types.KindAuthFailure, "authenticate.credentialMismatch")
	}
	return types.NewError(types.KindAuthFailure, "authenticate.unknownUsername")
}
