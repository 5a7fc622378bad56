package utils

import (
	"regexp"
	"strings"
)

// HTML tags models sometimes smuggle into the XML article despite the prompt.
// The tags are removed, the text inside them is kept.
var htmlTags = []string{
	"p", "div", "span", "br", "strong", "em", "b", "i", "u", "s",
	"ul", "ol", "li", "dl", "dt", "dd",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"table", "tr", "td", "th", "thead", "tbody", "tfoot",
	"a", "button", "form", "input", "label",
	"header", "footer", "nav", "main", "aside",
	"blockquote", "pre", "code", "hr", "img", "figure", "figcaption",
}

var htmlTagPattern = regexp.MustCompile(`(?i)</?(?:` + strings.Join(htmlTags, "|") + `)(?:\s[^<>]*)?/?>`)

// CleanXMLResponse strips markdown code fences and stray HTML tags from model
// output, preserving the XML article structure and its text content.
func CleanXMLResponse(xmlContent string) string {
	cleaned := strings.TrimSpace(xmlContent)

	if strings.HasPrefix(cleaned, "```xml") {
		cleaned = cleaned[len("```xml"):]
	}
	if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-len("```")]
	}

	cleaned = htmlTagPattern.ReplaceAllString(cleaned, "")

	return strings.TrimSpace(cleaned)
}
