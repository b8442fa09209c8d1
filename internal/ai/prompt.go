// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import "fmt"

// instructions is the shared guideline block every remote provider embeds
// around the user prompt. It requests the fixed JSON response shape that
// Parse understands.
const instructions = `You are an expert web developer. Generate a complete website based on the user's prompt.
Return the response in the following JSON format:
{
  "html": "The HTML code",
  "css": "The CSS code",
  "javascript": "The JavaScript code",
  "description": "Brief description of what was generated"
}

Guidelines:
- Create modern, responsive websites
- Use semantic HTML5
- Write clean, well-commented CSS
- Include JavaScript for interactivity when needed
- Make sure the website is mobile-friendly
- Use modern CSS features like Flexbox/Grid
- Include proper accessibility features
- Create visually appealing designs`

// instructionalPrompt interpolates the user prompt into the shared
// guideline block.
func instructionalPrompt(prompt string) string {
	return fmt.Sprintf("%s\n\nUser prompt: %s", instructions, prompt)
}
