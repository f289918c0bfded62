// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// providerTimeout bounds one completion request.
const providerTimeout = 60 * time.Second

// maxReplyBytes bounds a provider reply. Longer bodies are an error.
const maxReplyBytes = 1 << 20

// apiError is a non-2xx provider reply. Detail is the provider's own
// message when it could be extracted, otherwise the raw body.
type apiError struct {
	Provider string
	Status   int
	Detail   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, e.Detail)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: providerTimeout}
}

// postJSON sends body as JSON to url and decodes a 2xx reply into out.
// For other statuses, detail turns the raw reply into the apiError text.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, body, out any, detail func([]byte) string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s marshal: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s http: %w", provider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes+1))
	if err != nil {
		return fmt.Errorf("%s read body: %w", provider, err)
	}
	if len(raw) > maxReplyBytes {
		return fmt.Errorf("%s: reply exceeds %d bytes", provider, maxReplyBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(raw)
		if detail != nil {
			if d := detail(raw); d != "" {
				msg = d
			}
		}
		return &apiError{Provider: provider, Status: resp.StatusCode, Detail: msg}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s unmarshal: %w", provider, err)
	}
	return nil
}
