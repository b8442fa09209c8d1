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

// huggingFaceProvider implements the Provider interface using the Hugging
// Face Inference API. Authentication is a bearer token; the response
// envelope is either an array of objects or a single object, depending on
// the model endpoint, so both shapes are accepted.
type huggingFaceProvider struct {
	config Config
	apiKey string
	client *http.Client
}

// newHuggingFace creates a new Hugging Face inference provider.
func newHuggingFace(cfg Config, apiKey string) *huggingFaceProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-inference.huggingface.co"
	}
	if cfg.Model == "" {
		cfg.Model = "codellama/CodeLlama-7b-Instruct-hf"
	}
	return &huggingFaceProvider{
		config: cfg,
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *huggingFaceProvider) Name() string { return "huggingface" }

// Generate sends an instruction-tagged prompt to the inference endpoint
// and returns the generated text.
func (p *huggingFaceProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body := hfRequest{
		Inputs: fmt.Sprintf("<s>[INST] %s\n\nGenerate the website now: [/INST]",
			instructionalPrompt(prompt)),
		Parameters: hfParameters{
			MaxNewTokens:   4000,
			Temperature:    0.3,
			TopP:           0.9,
			DoSample:       true,
			ReturnFullText: false,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("huggingface marshal: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s", p.config.BaseURL, p.config.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("huggingface request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("huggingface read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("huggingface API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return extractHFText(respBody)
}

// extractHFText pulls the generated text out of either envelope shape:
// an array of {generated_text} objects or a single such object.
func extractHFText(respBody []byte) (string, error) {
	var arr []hfGenerated
	if err := json.Unmarshal(respBody, &arr); err == nil {
		if len(arr) > 0 && arr[0].GeneratedText != "" {
			return arr[0].GeneratedText, nil
		}
		return "", fmt.Errorf("huggingface: no generated text in response")
	}

	var single hfGenerated
	if err := json.Unmarshal(respBody, &single); err != nil {
		return "", fmt.Errorf("huggingface unmarshal: %w", err)
	}
	if single.GeneratedText == "" {
		return "", fmt.Errorf("huggingface: no generated text in response")
	}
	return single.GeneratedText, nil
}

// --- Hugging Face Inference API types ---

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfGenerated struct {
	GeneratedText string `json:"generated_text"`
}
