// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator decides how a prompt gets turned into a website:
// locally via the template catalog, or remotely via a configured provider.
// Remote failures are absorbed here and converted into a local result, so
// callers only ever see two errors: empty prompt and missing credential.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"websmith/internal/ai"
	"websmith/internal/cache"
	"websmith/internal/catalog"
	"websmith/internal/models"
)

// ErrEmptyPrompt is returned when the prompt is empty after trimming.
// It is checked before any other work, local or remote.
var ErrEmptyPrompt = errors.New("generator: prompt is empty")

// MissingCredentialError is returned when the selected remote provider has
// no stored credential. No network call is attempted in that case.
type MissingCredentialError struct {
	Provider string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("generator: no credential stored for provider %q", e.Provider)
}

// Orchestrator owns the generation policy: provider selection, the remote
// call, completion parsing, and the silent local fallback.
type Orchestrator struct {
	registry *ai.Registry
	cache    *cache.GenerationCache // may be nil; caching is best-effort
}

// New creates an orchestrator. genCache may be nil to disable caching.
func New(registry *ai.Registry, genCache *cache.GenerationCache) *Orchestrator {
	return &Orchestrator{registry: registry, cache: genCache}
}

// Generate produces a normalized generation result for the prompt using
// the client's settings.
//
// The local path (provider "local", or any unrecognized provider name)
// never fails and never touches the network. The remote path makes exactly
// one HTTP request; any failure there — bad status, malformed envelope,
// transport error — is logged and silently replaced by the local result.
func (o *Orchestrator) Generate(ctx context.Context, prompt string, settings *models.Settings) (models.Generation, error) {
	if strings.TrimSpace(prompt) == "" {
		return models.Generation{}, ErrEmptyPrompt
	}

	provider := settings.SelectedProvider
	if provider == "" || provider == models.ProviderLocal || !o.registry.Known(provider) {
		return catalog.Generate(prompt), nil
	}

	key := settings.Credential(provider)
	if key == "" {
		return models.Generation{}, &MissingCredentialError{Provider: provider}
	}

	if o.cache != nil {
		if gen, ok := o.cache.Get(ctx, provider, prompt); ok {
			return gen, nil
		}
	}

	p, err := o.registry.Provider(provider, key)
	if err != nil {
		// Known() passed above, so this is unreachable in practice.
		slog.Error("provider construction failed", "provider", provider, "error", err)
		return catalog.Generate(prompt), nil
	}

	completion, err := p.Generate(ctx, prompt)
	if err != nil {
		slog.Warn("remote generation failed, falling back to local templates",
			"provider", provider,
			"error", err,
		)
		return catalog.Generate(prompt), nil
	}

	gen := ai.Parse(completion)
	if o.cache != nil {
		o.cache.Set(ctx, provider, prompt, gen)
	}
	return gen, nil
}
