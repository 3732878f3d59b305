package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"leadrelay/pkg/models"
	"leadrelay/pkg/retry"
)

// Client defines the interface for posting lead notifications to Slack
type Client interface {
	NotifyLead(ctx context.Context, lead *models.LeadData) error
}

type clientImpl struct {
	webhookURL string
	httpClient *http.Client
}

// NewClient creates a new Slack incoming-webhook client
func NewClient(webhookURL string) Client {
	return &clientImpl{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NotifyLead posts a short lead summary to the configured channel. The
// post is retried briefly; a final failure is the caller's to log, not
// to propagate.
func (c *clientImpl) NotifyLead(ctx context.Context, lead *models.LeadData) error {
	payload := map[string]string{
		"text": formatLead(lead),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	return retry.Brief(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(body))
		if err != nil {
			return fmt.Errorf("error creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("error posting to Slack: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("error from Slack webhook: %s", string(respBody))
		}
		return nil
	})
}

func formatLead(lead *models.LeadData) string {
	var b strings.Builder
	b.WriteString(":telephone_receiver: New lead captured")

	name := lead.FullName
	if name == "" {
		name = strings.TrimSpace(lead.FirstName + " " + lead.LastName)
	}
	if name != "" {
		b.WriteString("\n*Name:* " + name)
	}
	if lead.Phone != "" {
		b.WriteString("\n*Phone:* " + lead.Phone)
	}
	if lead.RequestType != "" {
		b.WriteString("\n*Request:* " + lead.RequestType)
	}
	if lead.City != "" {
		b.WriteString("\n*City:* " + lead.City)
	}
	if lead.ConsentToCallNow {
		b.WriteString("\n*Wants a call now*")
	} else if lead.PreferredCallbackTime != "" {
		b.WriteString("\n*Callback:* " + lead.PreferredCallbackTime)
	}
	if lead.Notes != "" {
		b.WriteString("\n*Notes:* " + lead.Notes)
	}

	return b.String()
}
