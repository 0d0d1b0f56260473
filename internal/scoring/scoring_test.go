package scoring

import (
	"reflect"
	"slices"
	"testing"
)

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		resume  string
		job     string
		score   int
		present []string
		missing []string
	}{
		{
			name:    "partial overlap rounds down",
			resume:  "Python Java SQL",
			job:     "Python SQL Rust",
			score:   66,
			present: []string{"python", "sql"},
			missing: []string{"rust"},
		},
		{
			name:    "two letter words are not keywords",
			resume:  "Python Java SQL",
			job:     "Python SQL Go",
			score:   100,
			present: []string{"python", "sql"},
			missing: []string{},
		},
		{
			name:    "full overlap",
			resume:  "Kubernetes Terraform Golang",
			job:     "golang kubernetes",
			score:   100,
			present: []string{"golang", "kubernetes"},
			missing: []string{},
		},
		{
			name:    "no overlap",
			resume:  "Accounting Excel",
			job:     "Rust Embedded",
			score:   0,
			present: []string{},
			missing: []string{"rust", "embedded"},
		},
		{
			name:    "exact half",
			resume:  "docker",
			job:     "docker helm",
			score:   50,
			present: []string{"docker"},
			missing: []string{"helm"},
		},
		{
			name:    "job description without keywords",
			resume:  "Python Java SQL",
			job:     "a an the",
			score:   0,
			present: []string{},
			missing: []string{},
		},
		{
			name:    "empty resume",
			resume:  "",
			job:     "python",
			score:   0,
			present: []string{},
			missing: []string{"python"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Score(tt.resume, tt.job)
			if got == nil {
				t.Fatalf("expected a score")
			}
			if got.Score != tt.score {
				t.Fatalf("expected score %d, got %d", tt.score, got.Score)
			}
			if !slices.Equal(got.Present, tt.present) {
				t.Fatalf("expected present %v, got %v", tt.present, got.Present)
			}
			if !slices.Equal(got.Missing, tt.missing) {
				t.Fatalf("expected missing %v, got %v", tt.missing, got.Missing)
			}
		})
	}
}

func TestScoreWithoutJobDescription(t *testing.T) {
	t.Parallel()

	if got := Score("Python Java SQL", ""); got != nil {
		t.Fatalf("expected no score, got %+v", got)
	}
}

func TestScoreWhitespaceJobDescription(t *testing.T) {
	t.Parallel()

	for _, job := range []string{"   ", "\n\t", "   \n\t"} {
		got := Score("Python Java SQL", job)
		if got == nil {
			t.Fatalf("expected a zero score for %q, got no score", job)
		}
		if got.Score != 0 || len(got.Present) != 0 || len(got.Missing) != 0 {
			t.Fatalf("expected empty zero score for %q, got %+v", job, got)
		}
		if got.Present == nil || got.Missing == nil {
			t.Fatalf("expected non-nil keyword lists for %q", job)
		}
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	t.Parallel()

	resume := "Go developer. Go, Kubernetes, gRPC, PostgreSQL, Kafka, Terraform, AWS, observability."
	job := "We need Go and Kubernetes experience; Kafka and PostgreSQL are a plus. Terraform, GCP."

	first := Score(resume, job)
	second := Score(resume, job)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestScorePresentAndMissingPartitionJobKeywords(t *testing.T) {
	t.Parallel()

	got := Score("python sql docker", "python docker helm terraform")
	if len(got.Present)+len(got.Missing) != 4 {
		t.Fatalf("expected present and missing to cover all job keywords, got %+v", got)
	}
	for _, word := range got.Present {
		if slices.Contains(got.Missing, word) {
			t.Fatalf("keyword %q is both present and missing", word)
		}
	}
}
