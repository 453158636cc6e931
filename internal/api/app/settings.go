package app

import (
	"context"
	"database/sql"
	"errors"

	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

type SettingsAPI struct {
	repo ports.SettingsRepository
}

func NewSettingsAPI(repo ports.SettingsRepository) *SettingsAPI { return &SettingsAPI{repo: repo} }

// Get returns the stored value or "" when the key was never set.
func (a *SettingsAPI) Get(key string) (string, error) {
	ctx := context.Background()
	v, err := a.repo.Get(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

func (a *SettingsAPI) Set(key, value string) (bool, error) {
	ctx := context.Background()
	return true, a.repo.Set(ctx, key, value)
}
