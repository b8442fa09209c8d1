// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package export packages a workspace for the outside world: a ZIP
// archive with the merged document, the three raw sources, and a readme.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"websmith/internal/assemble"
	"websmith/internal/workspace"
)

// ArchiveName is the filename offered for the ZIP download.
const ArchiveName = "generated-website.zip"

// Archive builds the export ZIP for a workspace state: index.html (the
// merged document), styles.css and script.js (the raw buffers), and a
// generated README.md.
func Archive(st workspace.State) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct {
		name    string
		content string
	}{
		{"index.html", assemble.Document(st.HTML, st.CSS, st.JS)},
		{"styles.css", st.CSS},
		{"script.js", st.JS},
		{"README.md", Readme(time.Now())},
	}

	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("export archive %s: %w", f.name, err)
		}
		if _, err := w.Write([]byte(f.content)); err != nil {
			return nil, fmt.Errorf("export archive %s: %w", f.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export archive close: %w", err)
	}
	return buf.Bytes(), nil
}

// Readme returns the archive's README content with the generation date.
func Readme(now time.Time) string {
	return fmt.Sprintf(`# Generated Website

This website was generated using websmith.

## Files:
- index.html - Complete HTML file with embedded CSS and JavaScript
- styles.css - CSS styles
- script.js - JavaScript code

## How to use:
1. Open index.html in your web browser
2. Or upload the files to your web hosting service

## Features:
- Responsive design
- Modern CSS
- Interactive JavaScript (if included)

Generated on: %s
`, now.Format("2006-01-02"))
}
