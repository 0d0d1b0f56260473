package ai

import (
	"context"
)

// Evaluation is the narrative feedback returned by a language model.
type Evaluation struct {
	Text  string
	Model string
}

// Evaluator asks a language model to review a resume, optionally against a job description.
type Evaluator interface {
	Evaluate(ctx context.Context, resumeText, jobDescription string) (*Evaluation, error)
}
