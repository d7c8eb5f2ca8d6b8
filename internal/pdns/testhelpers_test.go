package pdns

import (
	"net/url"
	"strconv"
	"testing"
)

// settingsFor splits an httptest URL into Settings.
func settingsFor(t *testing.T, rawURL string) Settings {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse %q: %v", rawURL, err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse port of %q: %v", rawURL, err)
	}
	return Settings{Host: u.Hostname(), Port: ptrTo(uint16(port)), APIKey: "k"}
}
