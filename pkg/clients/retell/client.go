package retell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.retellai.com"

// Client defines the interface for interacting with the Retell voice API
type Client interface {
	// CreateCall places an outbound phone call handled by the configured
	// agent, seeded with the given dynamic variables. Returns the call id.
	CreateCall(ctx context.Context, fromNumber, toNumber string, vars any) (string, error)

	// ImportNumber binds an externally-owned phone number to the agent.
	ImportNumber(ctx context.Context, number, terminationURI string) error

	// ListNumbers returns the numbers currently bound to the account.
	ListNumbers(ctx context.Context) ([]PhoneNumber, error)
}

// PhoneNumber is one entry from the provider's number inventory.
type PhoneNumber struct {
	PhoneNumber    string `json:"phone_number"`
	Nickname       string `json:"nickname"`
	InboundAgentID string `json:"inbound_agent_id"`
}

type clientImpl struct {
	apiKey     string
	agentID    string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Retell client
func NewClient(apiKey, agentID string) Client {
	return &clientImpl{
		apiKey:     apiKey,
		agentID:    agentID,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *clientImpl) CreateCall(ctx context.Context, fromNumber, toNumber string, vars any) (string, error) {
	payload := map[string]any{
		"from_number":                  fromNumber,
		"to_number":                    toNumber,
		"override_agent_id":            c.agentID,
		"retell_llm_dynamic_variables": vars,
	}

	body, err := c.post(ctx, "/v2/create-phone-call", payload)
	if err != nil {
		return "", err
	}

	var response struct {
		CallID string `json:"call_id"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}

	return response.CallID, nil
}

func (c *clientImpl) ImportNumber(ctx context.Context, number, terminationURI string) error {
	payload := map[string]any{
		"phone_number":     number,
		"termination_uri":  terminationURI,
		"inbound_agent_id": c.agentID,
	}

	_, err := c.post(ctx, "/import-phone-number", payload)
	return err
}

func (c *clientImpl) ListNumbers(ctx context.Context) ([]PhoneNumber, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/list-phone-numbers", nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error listing numbers: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from Retell API: %s", string(body))
	}

	var numbers []PhoneNumber
	if err := json.Unmarshal(body, &numbers); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	return numbers, nil
}

func (c *clientImpl) post(ctx context.Context, path string, payload any) ([]byte, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Authorization", "Bearer "+c.apiKey)
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling Retell API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("error from Retell API: %s", string(body))
	}

	return body, nil
}
