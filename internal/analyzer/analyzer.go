// Package analyzer runs the resume pipeline: text extraction, keyword scoring and
// the language model evaluation.
package analyzer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/apperrors"
	"github.com/spigell/resume-analyzer/internal/extractor"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/scoring"
)

const defaultMaxUploadSize = 10 << 20

var pdfMagic = []byte("%PDF-")

type textExtractor interface {
	ExtractWithMethod(ctx context.Context, path string) (string, extractor.Method)
}

// Result is the composed outcome of one analysis. Score is nil when no job
// description was supplied.
type Result struct {
	Source           string           `json:"source,omitempty"`
	Score            *int             `json:"score"`
	PresentKeywords  []string         `json:"present_keywords"`
	MissingKeywords  []string         `json:"missing_keywords"`
	Evaluation       string           `json:"evaluation"`
	Model            string           `json:"model,omitempty"`
	ExtractionMethod extractor.Method `json:"extraction_method"`
}

// Config tunes upload staging.
type Config struct {
	// TempDir is where uploads are staged. Empty means os.TempDir().
	TempDir string
	// MaxUploadSize caps staged uploads in bytes. Zero means 10 MiB.
	MaxUploadSize int64
}

type Analyzer struct {
	extractor textExtractor
	evaluator ai.Evaluator
	config    Config
	logger    *zap.Logger
}

func New(ex textExtractor, evaluator ai.Evaluator, cfg Config, log *zap.Logger) *Analyzer {
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = defaultMaxUploadSize
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Analyzer{
		extractor: ex,
		evaluator: evaluator,
		config:    cfg,
		logger:    log,
	}
}

// Analyze extracts the resume at path and, when text was found, scores it against
// the job description while the evaluator reviews it. Files that are not PDF documents
// are rejected with an InputError before extraction. Evaluation failures are returned
// as is and no partial result is produced.
func (a *Analyzer) Analyze(ctx context.Context, path, jobDescription string) (*Result, error) {
	log := a.logger.With(zap.String("path", path))

	if err := checkPDFFile(path); err != nil {
		log.Warn("resume rejected", zap.Error(err))
		return nil, err
	}

	return a.analyze(ctx, log, path, jobDescription)
}

// AnalyzeUpload validates and stages an uploaded resume in a temporary file, analyzes
// it and removes the file before returning.
func (a *Analyzer) AnalyzeUpload(ctx context.Context, filename string, body io.Reader, jobDescription string) (*Result, error) {
	log := logger.WithAnalysis(a.logger, uuid.NewString(), filename)

	reader := bufio.NewReader(body)
	if err := checkPDF(filename, reader); err != nil {
		log.Warn("upload rejected", zap.Error(err))
		return nil, err
	}

	path, err := a.stage(reader)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn("removing staged upload", zap.String("path", path), zap.Error(err))
		}
	}()

	result, err := a.analyze(ctx, log, path, jobDescription)
	if err != nil {
		return nil, err
	}

	result.Source = filename
	return result, nil
}

func (a *Analyzer) analyze(ctx context.Context, log *zap.Logger, path, jobDescription string) (*Result, error) {
	text, method := a.extractor.ExtractWithMethod(ctx, path)
	if text == "" {
		log.Warn("no text extracted from resume")
		return nil, apperrors.Extraction("could not extract text from the PDF")
	}

	log.Info("resume text extracted",
		zap.String("method", string(method)),
		zap.Int("length", len(text)),
	)

	var (
		score      *scoring.Result
		evaluation *ai.Evaluation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		score = scoring.Score(text, jobDescription)
		return nil
	})
	g.Go(func() error {
		var err error
		evaluation, err = a.evaluator.Evaluate(gctx, text, jobDescription)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Warn("resume evaluation failed", zap.Error(err))
		return nil, err
	}

	result := &Result{
		PresentKeywords:  []string{},
		MissingKeywords:  []string{},
		Evaluation:       evaluation.Text,
		Model:            evaluation.Model,
		ExtractionMethod: method,
	}

	if score != nil {
		value := score.Score
		result.Score = &value
		result.PresentKeywords = score.Present
		result.MissingKeywords = score.Missing

		log.Info("resume scored",
			zap.Int("score", value),
			zap.Strings("present", score.Present),
			zap.Strings("missing", score.Missing),
		)
	}

	return result, nil
}

// checkPDF rejects input whose name lacks the .pdf extension or whose content does
// not start with the PDF header. It only peeks, so r still yields the whole body.
func checkPDF(name string, r *bufio.Reader) error {
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return apperrors.Input("only PDF files are supported")
	}

	header, err := r.Peek(len(pdfMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading resume: %w", err)
	}
	if !bytes.Equal(header, pdfMagic) {
		return apperrors.Input("file is not a PDF document")
	}

	return nil
}

func checkPDFFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.Input(fmt.Sprintf("cannot open resume: %v", err))
	}
	defer f.Close()

	return checkPDF(path, bufio.NewReader(f))
}

// stage copies body into a new file under the temp dir. The file is removed again
// when anything goes wrong.
func (a *Analyzer) stage(body io.Reader) (path string, err error) {
	dir := a.config.TempDir
	if dir == "" {
		dir = os.TempDir()
	}

	path = filepath.Join(dir, fmt.Sprintf("resume-%s.pdf", uuid.NewString()))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("creating staged upload: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing staged upload: %w", closeErr)
		}
		if err != nil {
			os.Remove(path)
			path = ""
		}
	}()

	written, err := io.Copy(file, io.LimitReader(body, a.config.MaxUploadSize+1))
	if err != nil {
		return path, fmt.Errorf("writing staged upload: %w", err)
	}
	if written > a.config.MaxUploadSize {
		return path, apperrors.Input(fmt.Sprintf("file too large, max size is %d bytes", a.config.MaxUploadSize))
	}

	return path, nil
}
