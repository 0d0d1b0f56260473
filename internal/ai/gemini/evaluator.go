package gemini

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/apperrors"
	"github.com/spigell/resume-analyzer/internal/utils"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Config holds the evaluation client settings.
type Config struct {
	// Model is reported with every evaluation.
	Model string
	// Timeout bounds the single call to the generator. Zero means defaultTimeout.
	Timeout      time.Duration
	MaxLogLength int
}

type Evaluator struct {
	generator contentGenerator
	model     string
	timeout   time.Duration
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultTimeout      = 60 * time.Second
)

const jobDescriptionTemplate = `

Compare the resume against this job description:
{{JOB_DESCRIPTION}}

Be specific and concise. Use short, actionable feedback wherever possible.`

func NewEvaluator(generator contentGenerator, cfg Config, logger *zap.Logger) *Evaluator {
	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = defaultMaxLogLength
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Evaluator{
		generator: generator,
		model:     strings.TrimSpace(cfg.Model),
		timeout:   cfg.Timeout,
		logger:    logger,
		maxLogLen: cfg.MaxLogLength,
	}
}

// Evaluate requests a narrative review of the resume. Empty resume text is rejected
// with an InputError before anything is sent; generator failures are UpstreamErrors.
func (e *Evaluator) Evaluate(ctx context.Context, resumeText, jobDescription string) (*ai.Evaluation, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, apperrors.Input("resume text is required for analysis")
	}

	prompt := buildPrompt(resumeText, jobDescription)

	e.logger.Debug("gemini generate content request",
		zap.Bool("with_job_description", jobDescription != ""),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, apperrors.Upstream("analysis failed", err)
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, apperrors.Upstream("analysis failed", ErrEmptyResponse)
	}

	e.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", utils.TruncateForLog(text, e.maxLogLen)),
	)

	return &ai.Evaluation{Text: text, Model: e.model}, nil
}

// Model returns the model name reported with evaluations.
func (e *Evaluator) Model() string {
	return e.model
}

func buildPrompt(resumeText, jobDescription string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Review the following resume.\n\nResume:\n{{RESUME_TEXT}}"
	}

	prompt := strings.ReplaceAll(strings.TrimSpace(template), "{{RESUME_TEXT}}", strings.TrimSpace(resumeText))
	if jobDescription != "" {
		prompt += strings.ReplaceAll(jobDescriptionTemplate, "{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription))
	}

	return prompt
}
