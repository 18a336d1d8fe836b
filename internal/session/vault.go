package session

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/yukikurage/taskboard-client/internal/constants"
	"github.com/yukikurage/taskboard-client/internal/storage"
)

// Vault is the only component that reads or writes the durable token
// slots. Writes are serialized; the last write wins.
type Vault struct {
	mu       sync.RWMutex
	store    storage.Storage
	logger   log.FieldLogger
	onRevoke []func()
}

func NewVault(store storage.Storage, logger log.FieldLogger) *Vault {
	return &Vault{store: store, logger: logger}
}

// AccessToken returns the stored bearer token, or "" when there is none or
// storage cannot be read.
func (v *Vault) AccessToken(ctx context.Context) string {
	return v.read(ctx, constants.StorageKeyAccessToken)
}

func (v *Vault) RefreshToken(ctx context.Context) string {
	return v.read(ctx, constants.StorageKeyRefreshToken)
}

func (v *Vault) read(ctx context.Context, key string) string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	value, ok, err := v.store.Get(ctx, key)
	if err != nil {
		v.logger.WithError(err).WithField("key", key).Error("Failed to read token")
		return ""
	}
	if !ok {
		return ""
	}
	return value
}

// Save stores a new access token. An empty refresh token leaves the
// refresh slot untouched.
func (v *Vault) Save(ctx context.Context, access, refresh string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.store.Set(ctx, constants.StorageKeyAccessToken, access); err != nil {
		return err
	}
	if refresh != "" {
		return v.store.Set(ctx, constants.StorageKeyRefreshToken, refresh)
	}
	return nil
}

// Clear removes both token slots.
func (v *Vault) Clear(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Delete(ctx, constants.StorageKeyAccessToken, constants.StorageKeyRefreshToken)
}

// Revoke drops the access token after the server rejected it and tells
// every listener. It implements transport.TokenSource.
func (v *Vault) Revoke(ctx context.Context) {
	v.mu.Lock()
	if err := v.store.Delete(ctx, constants.StorageKeyAccessToken); err != nil {
		v.logger.WithError(err).Error("Failed to remove revoked token")
	}
	listeners := append([]func(){}, v.onRevoke...)
	v.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// OnRevoke registers fn to run after every Revoke.
func (v *Vault) OnRevoke(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onRevoke = append(v.onRevoke, fn)
}
