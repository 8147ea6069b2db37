// Package notify pushes the outcome of a run to shoutrrr destinations.
package notify

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/containrrr/shoutrrr"

	"github.com/wesmun/dbtools/internal/util"
)

var discordWebhookRegex = regexp.MustCompile(`^https://discord(?:app)?\.com/api/webhooks/(\d+)/([a-zA-Z0-9_-]+)`)

// Notifier sends a message to every configured URL.
type Notifier struct {
	urls []string
	send func(url, message string) error
}

// New returns a Notifier for urls. With no urls Send is a no-op.
func New(urls []string) *Notifier {
	normalized := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			normalized = append(normalized, normalizeURL(u))
		}
	}
	return &Notifier{urls: normalized, send: shoutrrr.Send}
}

// Enabled reports whether any destination is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && len(n.urls) > 0
}

// Send delivers message to every destination and joins the failures.
func (n *Notifier) Send(message string) error {
	if !n.Enabled() {
		return nil
	}
	var errs []error
	for i, url := range n.urls {
		if err := n.send(url, message); err != nil {
			errs = append(errs, fmt.Errorf("notify destination %d: %s", i+1, util.SanitizeForLog(err.Error())))
		}
	}
	return errors.Join(errs...)
}

// Outcome formats the message for a finished run.
func Outcome(command string, err error) string {
	if err != nil {
		return fmt.Sprintf("WESMUN %s failed: %s", command, err)
	}
	return fmt.Sprintf("WESMUN %s completed successfully", command)
}

// normalizeURL turns a plain Discord webhook into shoutrrr's discord:// form.
func normalizeURL(rawURL string) string {
	matches := discordWebhookRegex.FindStringSubmatch(rawURL)
	if len(matches) == 3 {
		return fmt.Sprintf("discord://%s@%s", matches[2], matches[1])
	}
	return rawURL
}
