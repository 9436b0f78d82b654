// Package auth models the optional authentication of a launch.
// The login protocol itself lives elsewhere, the launcher only consumes a [Provider].
package auth

import (
	"context"
	"encoding/hex"

	"github.com/Tnze/go-mc/offline"
)

// Credentials are the values a successful login yields
type Credentials struct {
	Username    string
	UUID        string
	AccessToken string
	// UserType is legacy, mojang or msa
	UserType string
}

// Provider logs a user in
type Provider interface {
	Login(ctx context.Context) (*Credentials, error)
}

// ProviderFunc adapts a function to a Provider
type ProviderFunc func(ctx context.Context) (*Credentials, error)

// Login calls f
func (f ProviderFunc) Login(ctx context.Context) (*Credentials, error) {
	return f(ctx)
}

// Capability is either present (wrapping a Provider) or absent.
// The zero value is absent.
type Capability struct {
	provider Provider
}

// None returns an absent capability. Launches without one use empty auth values.
func None() Capability {
	return Capability{}
}

// With returns a present capability backed by p
func With(p Provider) Capability {
	return Capability{provider: p}
}

// Provider returns the provider and true if the capability is present
func (c Capability) Provider() (Provider, bool) {
	return c.provider, c.provider != nil
}

// Present returns true if a provider is set
func (c Capability) Present() bool {
	return c.provider != nil
}

// offlineProvider never talks to any server
type offlineProvider struct {
	username string
}

// Offline returns a provider for offline play. It yields the name based
// offline uuid that servers in offline mode also use.
func Offline(username string) Provider {
	return &offlineProvider{username: username}
}

func (o *offlineProvider) Login(ctx context.Context) (*Credentials, error) {
	id := offline.NameToUUID(o.username)
	return &Credentials{
		Username:    o.username,
		UUID:        hex.EncodeToString(id[:]),
		AccessToken: "0",
		UserType:    "legacy",
	}, nil
}
