package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bigredconnect/sessiond/internal/config"
)

// OneSignalNotifier deregisters a rider's push identity through the
// OneSignal REST API. It is only ever invoked best-effort from the logout
// sequencer.
type OneSignalNotifier struct {
	httpClient *http.Client
	appID      string
	apiKey     string
	baseURL    string
}

var _ NotificationProvider = (*OneSignalNotifier)(nil)

func NewOneSignalNotifier(cfg config.NotifyConfig) *OneSignalNotifier {
	return &OneSignalNotifier{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		appID:      cfg.AppID,
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
	}
}

// Logout deletes the OneSignal user aliased to the rider id.
func (n *OneSignalNotifier) Logout(ctx context.Context, externalID string) error {
	endpoint := fmt.Sprintf("%s/apps/%s/users/by/external_id/%s",
		n.baseURL, url.PathEscape(n.appID), url.PathEscape(externalID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build onesignal request: %w", err)
	}
	req.Header.Set("Authorization", "Key "+n.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("onesignal logout request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	// 404 means the identity is already gone, which is the goal state.
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("onesignal logout returned status %d", resp.StatusCode)
	}
	return nil
}

// NoopNotifier is wired when no OneSignal credentials are configured.
type NoopNotifier struct{}

var _ NotificationProvider = (*NoopNotifier)(nil)

func (NoopNotifier) Logout(ctx context.Context, externalID string) error {
	return nil
}

// defaultNotifyTimeout guards against a zero-valued config slipping into
// the HTTP client.
const defaultNotifyTimeout = 10 * time.Second

// NewNotifier picks the real provider when credentials exist, the no-op
// otherwise.
func NewNotifier(cfg config.NotifyConfig) NotificationProvider {
	if cfg.AppID == "" || cfg.APIKey == "" {
		return NoopNotifier{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultNotifyTimeout
	}
	return NewOneSignalNotifier(cfg)
}
