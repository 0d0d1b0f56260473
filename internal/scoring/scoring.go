// Package scoring compares the keyword sets of a resume and a job description.
package scoring

import "github.com/spigell/resume-analyzer/internal/keywords"

// KeywordLimit is the number of keywords taken from each text before comparing them.
const KeywordLimit = 20

// Result is a keyword overlap score. Present and Missing follow the order of the
// job description keywords.
type Result struct {
	Score   int      `json:"score"`
	Present []string `json:"present_keywords"`
	Missing []string `json:"missing_keywords"`
}

// Score returns the share of job description keywords found among the resume keywords,
// as a percentage rounded down. It returns nil when no job description is supplied.
// A job description made only of whitespace is supplied but has no keywords, so it scores 0.
func Score(resumeText, jobDescription string) *Result {
	if jobDescription == "" {
		return nil
	}

	jobKeywords := keywords.Extract(jobDescription, KeywordLimit)
	if len(jobKeywords) == 0 {
		return &Result{Score: 0, Present: []string{}, Missing: []string{}}
	}

	resumeKeywords := make(map[string]struct{}, KeywordLimit)
	for _, word := range keywords.Extract(resumeText, KeywordLimit) {
		resumeKeywords[word] = struct{}{}
	}

	result := &Result{
		Present: make([]string, 0, len(jobKeywords)),
		Missing: make([]string, 0, len(jobKeywords)),
	}
	for _, word := range jobKeywords {
		if _, ok := resumeKeywords[word]; ok {
			result.Present = append(result.Present, word)
			continue
		}
		result.Missing = append(result.Missing, word)
	}

	result.Score = 100 * len(result.Present) / len(jobKeywords)
	return result
}
