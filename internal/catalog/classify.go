// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"fmt"
	"strings"

	"websmith/internal/models"
)

// rule pairs a keyword set with the template it selects. Rules are checked
// in order and the first substring match wins, so earlier rules override
// later ones when a prompt contains keywords from both (a prompt with
// "shop" and "show" is e-commerce, not streaming).
type rule struct {
	id       TemplateID
	keywords []string
}

var rules = []rule{
	{TemplateEcommerce, []string{"e-commerce", "shop", "store", "product", "pricing", "cart", "ecommerce"}},
	{TemplatePhotography, []string{"photography", "gallery", "photo", "image"}},
	{TemplateBlog, []string{"blog", "article", "post", "content"}},
	{TemplateTeam, []string{"team", "member", "employee", "staff"}},
	{TemplateAgency, []string{"agency", "creative", "service", "business"}},
	{TemplateStreaming, []string{"netflix", "streaming", "movie", "video", "tv", "show", "film", "series"}},
}

// Classify maps a free-text prompt to exactly one template id. It is a
// total function: any input, including the empty string, yields a valid id.
func Classify(prompt string) TemplateID {
	lower := strings.ToLower(prompt)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.id
			}
		}
	}
	return DefaultTemplate
}

// Generate runs the full local path: classify the prompt, look up the
// template, and build a fully populated generation result. The description
// embeds the literal prompt so the user can see what the output answered.
func Generate(prompt string) models.Generation {
	t := Get(Classify(prompt))
	return models.Generation{
		HTML: t.HTML,
		CSS:  t.CSS,
		JS:   t.JS,
		Description: fmt.Sprintf(
			"Generated %s website based on your prompt: %q", t.Label, prompt),
	}
}
