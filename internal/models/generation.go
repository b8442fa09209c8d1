// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the shared data types used across the websmith
// service: generation results, workspace state, settings, and snapshots.
package models

// Field identifies one of the three editable source buffers.
type Field string

const (
	FieldHTML Field = "html"
	FieldCSS  Field = "css"
	FieldJS   Field = "javascript"
)

// Valid reports whether f names one of the three source buffers.
func (f Field) Valid() bool {
	return f == FieldHTML || f == FieldCSS || f == FieldJS
}

// Generation is the normalized output of any generation path, remote or
// local. All fields are always populated; missing upstream values become
// empty strings so downstream consumers never see partial data.
type Generation struct {
	HTML        string `json:"html"`
	CSS         string `json:"css"`
	JS          string `json:"javascript"`
	Description string `json:"description"`
}

// Empty reports whether all three code buffers are blank.
func (g Generation) Empty() bool {
	return g.HTML == "" && g.CSS == "" && g.JS == ""
}
