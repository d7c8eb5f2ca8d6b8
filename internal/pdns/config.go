package pdns

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

// Config is a handle on one server configuration setting.
// PowerDNS does not allow settings to be deleted through the API.
type Config struct {
	resource
	name string
}

// Name returns the setting name.
func (c *Config) Name() string {
	return c.name
}

// Get fetches the setting.
func (c *Config) Get(ctx context.Context) (*domain.ConfigSetting, error) {
	var out domain.ConfigSetting
	if err := c.get(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to get config %s: %w", c.name, err)
	}
	return &out, nil
}

// Change sets the setting to value.
func (c *Config) Change(ctx context.Context, value string) error {
	body := domain.ConfigSetting{Type: "ConfigSetting", Name: c.name, Value: value}
	if err := c.change(ctx, body, nil); err != nil {
		return fmt.Errorf("failed to change config %s: %w", c.name, err)
	}
	return nil
}
