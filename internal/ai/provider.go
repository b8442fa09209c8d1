// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for the remote generation
// providers (Gemini, Hugging Face, OpenAI). Each provider handles its own
// HTTP communication and response envelope; the Registry builds a provider
// from a per-client credential at call time, since credentials live in user
// settings rather than service configuration.
package ai

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Provider defines the interface all generation providers implement.
// Generate sends the user prompt (wrapped in the provider's instructional
// payload) and returns the raw completion text. Parsing the completion into
// a generation result is a separate concern (see parse.go).
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Config holds the non-secret settings for a single provider: model name
// and API base URL. The credential is supplied per call by the registry.
type Config struct {
	Model   string
	BaseURL string
}

// factory builds a provider from its config and an API key.
type factory func(cfg Config, apiKey string) Provider

// Registry knows how to construct every supported remote provider. Safe
// for concurrent use; the defaults map is read-only after construction.
type Registry struct {
	mu        sync.RWMutex
	defaults  map[string]Config
	factories map[string]factory
}

// NewRegistry creates a registry with the given per-provider defaults
// (model names and base URLs, typically from service config). Unknown keys
// in defaults are ignored.
func NewRegistry(defaults map[string]Config) *Registry {
	return &Registry{
		defaults: defaults,
		factories: map[string]factory{
			"gemini":      func(cfg Config, key string) Provider { return newGemini(cfg, key) },
			"huggingface": func(cfg Config, key string) Provider { return newHuggingFace(cfg, key) },
			"openai":      func(cfg Config, key string) Provider { return newOpenAI(cfg, key) },
		},
	}
}

// Provider builds the named provider with the supplied API key. Returns an
// error for unknown provider names; an empty key is the caller's problem
// (the orchestrator checks credentials before ever reaching here).
func (r *Registry) Provider(name, apiKey string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("ai: unknown provider %q", name)
	}
	return f(r.defaults[name], apiKey), nil
}

// Register adds or replaces a provider factory. This allows injecting
// custom providers at runtime (e.g. for testing).
func (r *Registry) Register(name string, f func(cfg Config, apiKey string) Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Known reports whether name is a supported remote provider.
func (r *Registry) Known(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[name]
	return ok
}

// Available returns the names of all supported remote providers, sorted
// alphabetically so callers expose a stable list.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
