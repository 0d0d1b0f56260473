package report

import (
	"strings"
	"testing"

	"github.com/spigell/resume-analyzer/internal/analyzer"
)

func TestHighlight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		keywords []string
		expect   string
	}{
		{
			name:     "case insensitive whole words",
			text:     "Python and python3 and PYTHON.",
			keywords: []string{"python"},
			expect:   "<mark>Python</mark> and python3 and <mark>PYTHON</mark>.",
		},
		{
			name:     "regex characters are escaped",
			text:     "Uses c.sh and cash",
			keywords: []string{"c.sh"},
			expect:   "Uses <mark>c.sh</mark> and cash",
		},
		{
			name:     "several keywords",
			text:     "SQL and Docker",
			keywords: []string{"sql", "docker", " "},
			expect:   "<mark>SQL</mark> and <mark>Docker</mark>",
		},
		{
			name:     "accented words",
			text:     "Développeur backend, résumé and résumés",
			keywords: []string{"développeur", "résumé"},
			expect:   "<mark>Développeur</mark> backend, <mark>résumé</mark> and résumés",
		},
		{
			name:     "accented neighbours are not boundaries",
			text:     "égo ego",
			keywords: []string{"go"},
			expect:   "égo ego",
		},
		{
			name:     "cyrillic words",
			text:     "Опыт: Разработчик Go",
			keywords: []string{"разработчик"},
			expect:   "Опыт: <mark>Разработчик</mark> Go",
		},
		{
			name:     "keyword at both ends",
			text:     "sql and sql",
			keywords: []string{"sql"},
			expect:   "<mark>sql</mark> and <mark>sql</mark>",
		},
		{
			name:   "no keywords",
			text:   "unchanged",
			expect: "unchanged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Highlight(tt.text, tt.keywords); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestRender(t *testing.T) {
	score := 66
	withScore := Render(&analyzer.Result{
		Source:          "jane.pdf",
		Model:           "gemini-test",
		Score:           &score,
		PresentKeywords: []string{"python", "sql"},
		MissingKeywords: nil,
		Evaluation:      "  Good fit.  ",
	})

	for _, want := range []string{"Resume: jane.pdf", "Model: gemini-test", "Resume Score: 66/100", "Present: python, sql", "Missing: None", "Good fit.\n"} {
		if !strings.Contains(withScore, want) {
			t.Fatalf("expected %q in report:\n%s", want, withScore)
		}
	}

	withoutScore := Render(&analyzer.Result{Evaluation: "Fine."})
	if strings.Contains(withoutScore, "Resume Score") || strings.Contains(withoutScore, "Keyword Match") {
		t.Fatalf("did not expect score section:\n%s", withoutScore)
	}

	if Render(nil) != "" {
		t.Fatalf("expected empty report for nil result")
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Jane_Roe.pdf":       "Jane_Roe_analysis.txt",
		"/uploads/cv.v2.PDF": "cv.v2_analysis.txt",
		"":                   "analysis.txt",
		"  ":                 "analysis.txt",
		"resume":             "resume_analysis.txt",
	}

	for in, expect := range tests {
		if got := FileName(in); got != expect {
			t.Fatalf("FileName(%q): expected %q, got %q", in, expect, got)
		}
	}
}

func TestHighlightFunc(t *testing.T) {
	t.Parallel()

	got := HighlightFunc("Go, Kubernetes and kubernetes", []string{"kubernetes"}, strings.ToUpper)
	if expect := "Go, KUBERNETES and KUBERNETES"; got != expect {
		t.Fatalf("expected %q, got %q", expect, got)
	}
}
