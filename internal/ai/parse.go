// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"websmith/internal/models"
)

// fallbackDescription is used when the completion carried usable code but
// no parseable description field.
const fallbackDescription = "Website generated successfully"

// completionShape is the JSON object remote models are instructed to return.
type completionShape struct {
	HTML        string `json:"html"`
	CSS         string `json:"css"`
	JavaScript  string `json:"javascript"`
	Description string `json:"description"`
}

// Parse turns a raw model completion into a normalized generation result.
// It first attempts a strict parse of the expected JSON object; if that
// fails it falls back to scanning fenced code blocks. Parse never fails:
// the worst case is a result with all three code fields empty.
func Parse(completion string) models.Generation {
	var shape completionShape
	if err := json.Unmarshal([]byte(completion), &shape); err == nil {
		desc := shape.Description
		if desc == "" {
			desc = fallbackDescription
		}
		return models.Generation{
			HTML:        shape.HTML,
			CSS:         shape.CSS,
			JS:          shape.JavaScript,
			Description: desc,
		}
	}
	return ExtractFences(completion)
}

// ExtractFences is the secondary parser: it walks the completion as
// Markdown and collects fenced code blocks labeled html, css, and
// javascript. Absent blocks yield empty fields; when a label appears more
// than once the first block wins.
func ExtractFences(completion string) models.Generation {
	source := []byte(completion)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	blocks := map[string]string{}
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lang := strings.ToLower(string(fence.Language(source)))
		if _, seen := blocks[lang]; seen {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		for i := 0; i < fence.Lines().Len(); i++ {
			line := fence.Lines().At(i)
			buf.Write(line.Value(source))
		}
		blocks[lang] = strings.TrimSuffix(buf.String(), "\n")
		return ast.WalkContinue, nil
	})

	return models.Generation{
		HTML:        blocks["html"],
		CSS:         blocks["css"],
		JS:          blocks["javascript"],
		Description: fallbackDescription,
	}
}
