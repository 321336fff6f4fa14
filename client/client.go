// client/client.go
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"redline/internal/diff"
	"redline/internal/review"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Second * 30,
		},
	}
}

// CreateReview uploads both document versions and opens a review session.
func (c *Client) CreateReview(original, revised string) (*review.Session, error) {
	data, err := json.Marshal(map[string]string{
		"original": original,
		"revised":  revised,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(
		fmt.Sprintf("%s/api/reviews", c.baseURL),
		"application/json",
		bytes.NewBuffer(data),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var session review.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (c *Client) GetReview(id string) (*review.Session, error) {
	resp, err := c.httpClient.Get(fmt.Sprintf("%s/api/reviews/%s", c.baseURL, id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var session review.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (c *Client) GetDiff(id string) (*diff.Result, error) {
	resp, err := c.httpClient.Get(fmt.Sprintf("%s/api/reviews/%s/diff", c.baseURL, id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result diff.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Decide records a reviewer decision for one change in a session.
func (c *Client) Decide(id, changeID, state string) (*review.Session, error) {
	data, err := json.Marshal(map[string]string{
		"change_id": changeID,
		"state":     state,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(
		fmt.Sprintf("%s/api/reviews/%s/decisions", c.baseURL, id),
		"application/json",
		bytes.NewBuffer(data),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var session review.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}

	return &session, nil
}

// Result fetches the reconciled document for the session's current decisions.
func (c *Client) Result(id string) (string, error) {
	resp, err := c.httpClient.Get(fmt.Sprintf("%s/api/reviews/%s/result", c.baseURL, id))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	return out["document"], nil
}
