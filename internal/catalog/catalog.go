// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the built-in site templates and the keyword
// classifier that routes a free-text prompt to one of them. Templates are
// static assets embedded at compile time; the catalog never changes after
// process start.
package catalog

import (
	"embed"
	"fmt"
)

//go:embed templates
var templateFS embed.FS

// TemplateID names one catalog entry. The set is closed: every classifier
// result and every catalog lookup uses one of the constants below.
type TemplateID string

const (
	TemplatePortfolio   TemplateID = "portfolio"
	TemplateEcommerce   TemplateID = "ecommerce"
	TemplatePhotography TemplateID = "photography"
	TemplateBlog        TemplateID = "blog"
	TemplateTeam        TemplateID = "team"
	TemplateAgency      TemplateID = "agency"
	TemplateStreaming   TemplateID = "streaming"
)

// DefaultTemplate is returned by the classifier when no keyword rule
// matches, including for the empty prompt.
const DefaultTemplate = TemplatePortfolio

// Template is one immutable catalog entry: the three source buffers plus a
// human-readable label used when building the result description.
type Template struct {
	ID     TemplateID
	Label  string
	HTML   string
	CSS    string
	JS     string
}

// labels maps each template to the wording used in generated descriptions.
var labels = map[TemplateID]string{
	TemplatePortfolio:   "modern portfolio",
	TemplateEcommerce:   "modern e-commerce",
	TemplatePhotography: "photography portfolio",
	TemplateBlog:        "personal blog",
	TemplateTeam:        "team",
	TemplateAgency:      "creative agency",
	TemplateStreaming:   "streaming media",
}

var entries map[TemplateID]*Template

func init() {
	entries = make(map[TemplateID]*Template, len(labels))
	for id, label := range labels {
		entries[id] = &Template{
			ID:    id,
			Label: label,
			HTML:  mustAsset(id, "index.html"),
			CSS:   mustAsset(id, "styles.css"),
			JS:    mustAsset(id, "script.js"),
		}
	}
}

// mustAsset reads one embedded template file. A missing asset is a build
// defect, so it panics at init rather than surfacing at request time.
func mustAsset(id TemplateID, name string) string {
	data, err := templateFS.ReadFile(fmt.Sprintf("templates/%s/%s", id, name))
	if err != nil {
		panic(fmt.Sprintf("catalog: missing asset %s/%s: %v", id, name, err))
	}
	return string(data)
}

// Get returns the catalog entry for id, falling back to the default
// template for unknown ids so lookups are total like the classifier.
func Get(id TemplateID) *Template {
	if t, ok := entries[id]; ok {
		return t
	}
	return entries[DefaultTemplate]
}

// IDs returns every template id in the catalog, in rule order followed by
// the default.
func IDs() []TemplateID {
	ids := make([]TemplateID, 0, len(rules)+1)
	for _, r := range rules {
		ids = append(ids, r.id)
	}
	return append(ids, DefaultTemplate)
}
