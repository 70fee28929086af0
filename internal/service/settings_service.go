package service

import (
	"context"
	"strconv"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/pkg/apperrors"
)

const assistantEnabledKey = "helpdesk:settings:assistant_enabled"

// SettingsStore abstracts the shared settings record. Get reports ok=false
// when no value is stored under the key.
type SettingsStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// SettingsService exposes feature toggles as an explicit shared settings
// record rather than process-global state, so the value is observable and
// consistent across instances.
type SettingsService struct {
	store    SettingsStore
	defaults config.SettingsConfig
}

// NewSettingsService constructs the service.
func NewSettingsService(store SettingsStore, defaults config.SettingsConfig) *SettingsService {
	return &SettingsService{store: store, defaults: defaults}
}

// AssistantEnabled reports whether the conversational assistant is enabled,
// falling back to the configured default when no value is stored.
func (s *SettingsService) AssistantEnabled(ctx context.Context) (bool, error) {
	raw, ok, err := s.store.Get(ctx, assistantEnabledKey)
	if err != nil {
		return false, apperrors.NewUnavailable(err)
	}
	if !ok {
		return s.defaults.AssistantEnabledDefault, nil
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return s.defaults.AssistantEnabledDefault, nil
	}
	return enabled, nil
}

// SetAssistantEnabled stores the toggle.
func (s *SettingsService) SetAssistantEnabled(ctx context.Context, enabled bool) error {
	if err := s.store.Set(ctx, assistantEnabledKey, strconv.FormatBool(enabled)); err != nil {
		return apperrors.NewUnavailable(err)
	}
	return nil
}
