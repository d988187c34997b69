// Package render turns specification records into markdown documents,
// the index page, and the sidebar navigation artifact.
package render

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	htmlTagRe        = regexp.MustCompile(`<[a-zA-Z][^>]*>`)
	excessiveLinesRe = regexp.MustCompile(`\n{3,}`)
)

var descriptionConverter = newDescriptionConverter()

func newDescriptionConverter() *md.Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return converter
}

// DescriptionMarkdown normalizes a metadata description for rendering.
// Registry descriptions published through the web UI can carry HTML
// fragments; those are converted to markdown. Plain text passes through.
func DescriptionMarkdown(s string) string {
	if !looksLikeHTML(s) {
		return strings.TrimSpace(s)
	}
	converted, err := descriptionConverter.ConvertString(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	converted = excessiveLinesRe.ReplaceAllString(converted, "\n\n")
	return strings.TrimSpace(converted)
}

// looksLikeHTML reports whether the string contains at least one real
// element node, not just angle brackets in prose.
func looksLikeHTML(s string) bool {
	if !htmlTagRe.MatchString(s) {
		return false
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return false
	}
	for _, n := range nodes {
		if containsElement(n) {
			return true
		}
	}
	return false
}

func containsElement(n *html.Node) bool {
	if n.Type == html.ElementNode {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if containsElement(c) {
			return true
		}
	}
	return false
}
