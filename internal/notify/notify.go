// Package notify sends a short message to shoutrrr services (Discord,
// Slack, Gotify, generic webhooks...) after pdnsctl changes a server.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/containrrr/shoutrrr"
	"github.com/containrrr/shoutrrr/pkg/router"
	"github.com/qdm12/gosettings"
)

// Erroer receives send failures.
type Erroer interface {
	Error(message string)
}

// Settings configures a Client.
type Settings struct {
	// Addresses are shoutrrr service URLs. None disables notifications.
	Addresses []string
	// Title is added as the title parameter of addresses lacking one.
	Title  string
	Logger Erroer
}

func (s *Settings) setDefaults() {
	s.Title = gosettings.DefaultComparable(s.Title, "pdnsctl")
	if s.Logger == nil {
		s.Logger = noopLogger{}
	}
}

type Client struct {
	serviceRouter *router.ServiceRouter
	serviceNames  []string
	logger        Erroer
}

// New validates the addresses and builds the client. A client without
// addresses is valid and never sends anything.
func New(settings Settings) (*Client, error) {
	settings.setDefaults()

	addresses := make([]string, 0, len(settings.Addresses))
	serviceNames := make([]string, 0, len(settings.Addresses))
	for _, address := range settings.Addresses {
		address = strings.TrimSpace(address)
		if address == "" {
			continue
		}
		withTitle, err := addDefaultTitle(address, settings.Title)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, withTitle)
		serviceNames = append(serviceNames, strings.Split(address, ":")[0])
	}

	client := &Client{serviceNames: serviceNames, logger: settings.Logger}
	if len(addresses) == 0 {
		return client, nil
	}

	serviceRouter, err := shoutrrr.CreateSender(addresses...)
	if err != nil {
		return nil, fmt.Errorf("creating service router: %w", err)
	}
	client.serviceRouter = serviceRouter
	return client, nil
}

// Enabled reports whether at least one address is configured.
func (c *Client) Enabled() bool {
	return c.serviceRouter != nil
}

// Notify sends message to every service. Failures are logged, never returned.
func (c *Client) Notify(message string) {
	if c.serviceRouter == nil {
		return
	}
	errs := c.serviceRouter.Send(message, nil)
	for i, err := range errs {
		if err != nil {
			c.logger.Error(c.serviceNames[i] + ": " + err.Error())
		}
	}
}

func addDefaultTitle(address, defaultTitle string) (string, error) {
	u, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("parsing notification address: %w", err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("notification address %q has no service scheme", address)
	}

	urlValues := u.Query()
	if urlValues.Has("title") {
		return address, nil
	}

	urlValues.Set("title", defaultTitle)
	u.RawQuery = urlValues.Encode()
	return u.String(), nil
}

type noopLogger struct{}

func (noopLogger) Error(string) {}
