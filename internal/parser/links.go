package parser

import (
	"regexp"
	"slices"
)

var linkPattern = regexp.MustCompile(`https?://\S+`)

// extractLinks scans content for URLs and appends any not already present,
// preserving first-seen order. It is re-run over the full accumulated
// content whenever a continuation line arrives so links split across lines
// are still caught.
func extractLinks(content string, existing []string) []string {
	links := existing
	for _, link := range linkPattern.FindAllString(content, -1) {
		if !slices.Contains(links, link) {
			links = append(links, link)
		}
	}
	return links
}
