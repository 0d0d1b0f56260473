package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RESUME_ANALYZER_TEST_KEY", " from-env ")
	t.Setenv("RESUME_ANALYZER_EMPTY_KEY", "")

	tests := []struct {
		name    string
		src     Source
		expect  string
		wantErr string
	}{
		{
			name:   "file wins",
			src:    Source{Name: "gemini api key", File: keyFile, Value: "inline", Env: []string{"RESUME_ANALYZER_TEST_KEY"}},
			expect: "from-file",
		},
		{
			name:   "inline value",
			src:    Source{Value: " inline ", Env: []string{"RESUME_ANALYZER_TEST_KEY"}},
			expect: "inline",
		},
		{
			name:   "first non-empty env",
			src:    Source{Env: []string{"RESUME_ANALYZER_EMPTY_KEY", "RESUME_ANALYZER_TEST_KEY"}},
			expect: "from-env",
		},
		{
			name:    "empty file",
			src:     Source{Name: "gemini api key", File: emptyFile},
			wantErr: "is empty",
		},
		{
			name:    "missing file",
			src:     Source{File: filepath.Join(dir, "missing")},
			wantErr: "reading secret",
		},
		{
			name:    "nothing configured",
			src:     Source{Name: "gemini api key", Env: []string{"RESUME_ANALYZER_EMPTY_KEY"}},
			wantErr: "gemini api key is not configured (checked RESUME_ANALYZER_EMPTY_KEY)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
