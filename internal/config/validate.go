package config

import (
	"errors"
	"fmt"
	"strings"

	"rsvpsend/internal/message"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProvider(); err != nil {
		return err
	}
	if err := c.validateMessage(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	if err := c.validateDispatch(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateProvider() error {
	host := strings.TrimSpace(c.Provider.Host)
	if host == "" {
		return errors.New("provider.host must be set")
	}
	if strings.ContainsAny(host, "/?# ") {
		return fmt.Errorf("provider.host must be a bare host name, got %q", host)
	}
	return nil
}

func (c *Config) validateMessage() error {
	if _, err := message.ParseTemplate(c.Message.Template); err != nil {
		return fmt.Errorf("message.template: %w", err)
	}
	return nil
}

func (c *Config) validateSession() error {
	switch c.Session.Mode {
	case SessionAssisted, SessionPreview:
		return nil
	default:
		return fmt.Errorf("session.mode must be %q or %q, got %q", SessionAssisted, SessionPreview, c.Session.Mode)
	}
}

func (c *Config) validateDispatch() error {
	if c.Dispatch.ReadyTimeout <= 0 {
		return errors.New("dispatch.ready_timeout must be positive (seconds)")
	}
	if c.Dispatch.SettleDelay < 0 {
		return errors.New("dispatch.settle_delay must be >= 0")
	}
	if c.Dispatch.InterItemDelay < 0 {
		return errors.New("dispatch.inter_item_delay must be >= 0")
	}
	if c.Dispatch.MaxPerHour < 0 {
		return errors.New("dispatch.max_per_hour must be >= 0")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}
