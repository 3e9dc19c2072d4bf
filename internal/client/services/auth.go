// Package services contains application services for the kotoba CLI.
// This file defines the authentication service: account registration and
// the two-round-trip login handshake.
package services

import (
	"context"

	"github.com/dkurose/kotoba/internal/client/client"
	"github.com/dkurose/kotoba/internal/common"
	"github.com/dkurose/kotoba/internal/cryptox"
	"github.com/dkurose/kotoba/internal/protocol"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: derive a fresh salt and key from the password and create
//     the account on the server.
//   - Login: fetch the account salt, re-derive the key, and submit it for
//     validation; a successful call binds the connection's session.
//   - Close: release the underlying connection.
//
// The plaintext password never leaves the process; only the derived key
// crosses the wire.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client client.Client) AuthService {
	return &authService{client: client}
}

// Register generates a random salt, derives the account key from the
// provided password, and sends both to the server.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	salt := cryptox.GenerateSalt()
	key := cryptox.DeriveKey(password, salt)
	defer common.WipeByteArray(key)

	req := protocol.NewUser{Username: username, Hash: key, Salt: salt}
	return a.client.Do(ctx, protocol.CmdCreateUser, &req, nil)
}

// Login performs the two-step handshake: fetch the stored salt for the
// account, derive the key candidate, and submit it for validation.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	var keys protocol.AccountKeysResponse
	req := protocol.AccountKeysRequest{Username: username}
	if err := a.client.Do(ctx, protocol.CmdGetAccountKeys, &req, &keys); err != nil {
		return err
	}

	key := cryptox.DeriveKey(password, keys.Salt)
	defer common.WipeByteArray(key)

	validation := protocol.KeyValidation{Username: username, Hash: key}
	return a.client.Do(ctx, protocol.CmdValidateKey, &validation, nil)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
