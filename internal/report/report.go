// Package report renders analysis results for people: a plain text feedback report
// and keyword highlighting.
package report

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/keywords"
)

const defaultFileName = "analysis.txt"

// Highlight wraps whole-word, case-insensitive occurrences of words in <mark> tags.
func Highlight(text string, words []string) string {
	return HighlightFunc(text, words, func(word string) string {
		return "<mark>" + word + "</mark>"
	})
}

// HighlightFunc replaces whole-word, case-insensitive occurrences of words with
// mark(word). The matched word keeps its original case. Word boundaries follow the
// keyword tokenizer, so accented and non-Latin words are matched too.
func HighlightFunc(text string, words []string, mark func(string) string) string {
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word))
		text = replaceWholeWords(text, re, mark)
	}
	return text
}

// replaceWholeWords applies mark to the matches of re that are not glued to other
// word runes. RE2's \b only knows ASCII word characters.
func replaceWholeWords(text string, re *regexp.Regexp, mark func(string) string) string {
	var b strings.Builder
	last := 0

	for _, loc := range re.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if !isWholeWord(text, start, end) {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(mark(text[start:end]))
		last = end
	}

	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

func isWholeWord(text string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); keywords.IsWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); keywords.IsWordRune(r) {
			return false
		}
	}
	return true
}

// Render returns the feedback report as plain text.
func Render(result *analyzer.Result) string {
	if result == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Resume Analysis\n")
	b.WriteString("===============\n\n")

	if result.Source != "" {
		fmt.Fprintf(&b, "Resume: %s\n", result.Source)
	}
	if result.Model != "" {
		fmt.Fprintf(&b, "Model: %s\n", result.Model)
	}
	if result.Source != "" || result.Model != "" {
		b.WriteString("\n")
	}

	if result.Score != nil {
		fmt.Fprintf(&b, "Resume Score: %d/100\n\n", *result.Score)
		b.WriteString("Keyword Match\n")
		fmt.Fprintf(&b, "Present: %s\n", joinOrNone(result.PresentKeywords))
		fmt.Fprintf(&b, "Missing: %s\n\n", joinOrNone(result.MissingKeywords))
	}

	b.WriteString("Evaluation\n")
	b.WriteString("----------\n")
	b.WriteString(strings.TrimSpace(result.Evaluation))
	b.WriteString("\n")

	return b.String()
}

// FileName derives the report file name from the uploaded resume name.
func FileName(source string) string {
	base := filepath.Base(strings.TrimSpace(source))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return defaultFileName
	}
	return base + "_analysis.txt"
}

func joinOrNone(words []string) string {
	if len(words) == 0 {
		return "None"
	}
	return strings.Join(words, ", ")
}
