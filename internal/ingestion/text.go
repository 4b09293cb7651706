// Package ingestion turns resume files into clean plain text for scoring.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	blankLineRun  = regexp.MustCompile(`\n\n\n+`)
	// a word split across lines by PDF layout: "engi-\nneering"
	hyphenBreak = regexp.MustCompile(`(\p{L})-\n[ \t]*(\p{Ll})`)
)

// pdfArtifacts maps characters left by PDF text layers to plain text.
var pdfArtifacts = strings.NewReplacer(
	"\x00", "",
	"\f", "\n",
	"\u00a0", " ", // no-break space
	"\u00ad", "",  // soft hyphen
	"\ufb00", "ff",
	"\ufb01", "fi",
	"\ufb02", "fl",
	"\ufb03", "ffi",
	"\ufb04", "ffl",
)

// bulletGlyphs are list markers rewritten to "- ".
var bulletGlyphs = []string{"\u2022", "\u00b7", "\u25aa", "\u25cf", "\u25e6", "\u2023", "\u2219", "\u27a2", "\u25ba"}

// CleanText normalizes extracted resume text while preserving its structure:
// headings, bullets and paragraph breaks survive, layout noise does not.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = pdfArtifacts.Replace(content)
	content = hyphenBreak.ReplaceAllString(content, "${1}${2}")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line and collapses inner whitespace, keeping leading indentation.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}
	indent := strings.Repeat(" ", len(line)-len(trimmed))

	// Markdown headings are kept flush left
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	if marker, rest, ok := splitBullet(trimmed); ok {
		return indent + marker + whitespaceRun.ReplaceAllString(rest, " ")
	}
	return indent + whitespaceRun.ReplaceAllString(trimmed, " ")
}

// splitBullet recognizes a list item and returns its normalized marker and text.
// Markdown markers are kept; glyph bullets become "- ".
func splitBullet(trimmed string) (marker, rest string, ok bool) {
	for _, md := range []string{"- ", "* "} {
		if strings.HasPrefix(trimmed, md) {
			return md, strings.TrimSpace(trimmed[len(md):]), true
		}
	}
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(trimmed, glyph) {
			rest = strings.TrimSpace(trimmed[len(glyph):])
			if rest == "" {
				return "", "", false
			}
			return "- ", rest, true
		}
	}
	return "", "", false
}
