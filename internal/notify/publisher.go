//go:generate go run go.uber.org/mock/mockgen -package notify -destination mock_test.go github.com/tffedibot/fedibot/internal/notify Publisher,Recorder

package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Publisher posts a status to the social feed. spoiler, when non-empty, is
// shown as a content warning in front of the status.
type Publisher interface {
	Publish(ctx context.Context, status, spoiler string) error
}

// LogPublisher logs statuses instead of posting them.
type LogPublisher struct {
	Log *logrus.Entry
}

// Publish implements Publisher.
func (p LogPublisher) Publish(_ context.Context, status, spoiler string) error {
	log := p.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	log.WithFields(logrus.Fields{
		"status":  status,
		"spoiler": spoiler,
	}).Info("would publish status")

	return nil
}

// FediPublisher posts unlisted statuses through the Mastodon client API.
type FediPublisher struct {
	baseURL string
	token   string
	client  *http.Client
	log     *logrus.Entry
}

// NewFediPublisher returns a publisher for the instance at baseURL. A nil
// client uses http.DefaultClient.
func NewFediPublisher(baseURL, token string, client *http.Client, log *logrus.Entry) *FediPublisher {
	if client == nil {
		client = http.DefaultClient
	}

	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &FediPublisher{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
		log:     log,
	}
}

// Publish implements Publisher.
func (p *FediPublisher) Publish(ctx context.Context, status, spoiler string) error {
	form := url.Values{}
	form.Set("status", status)
	form.Set("visibility", "unlisted")

	if spoiler != "" {
		form.Set("spoiler_text", spoiler)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/v1/statuses", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building status request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting status: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading status response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := gjson.GetBytes(body, "error").String()
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}

		return fmt.Errorf("%w: %d %s", ErrPublishRejected, resp.StatusCode, reason)
	}

	p.log.WithFields(logrus.Fields{
		"id":  gjson.GetBytes(body, "id").String(),
		"url": gjson.GetBytes(body, "url").String(),
	}).Info("published status")

	return nil
}
