// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package assemble merges the three source buffers into one self-contained
// HTML document: styles in the head, markup as the body, script before the
// closing body tag. The function is pure and performs no escaping — the
// preview sandbox, not the assembler, is the trust boundary for whatever
// the buffers contain.
package assemble

import "fmt"

const documentSkeleton = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Generated Website</title>
    <style>
%s
    </style>
</head>
<body>
%s
    <script>
%s
    </script>
</body>
</html>`

// Document returns the merged document for the given buffers. Identical
// inputs always yield byte-identical output.
func Document(html, css, js string) string {
	return fmt.Sprintf(documentSkeleton, css, html, js)
}
