package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/apperrors"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/report"
)

const (
	PromptSaveReport = "Save report"
	PromptHighlight  = "Show highlighted evaluation"
	PromptExit       = "Exit"

	outputText = "text"
	outputJSON = "json"

	stdinPath = "-"
	stdinName = "stdin.pdf"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSaveReport, PromptHighlight, PromptExit},
}

var markKeyword = promptui.Styler(promptui.FGYellow, promptui.FGBold)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume.pdf|->",
	Short: "Analyze a PDF resume, optionally against a job description. Use - to read the PDF from stdin",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("job-description", "D", "", "job description text to score the resume against")
	analyzeCmd.Flags().String("job-description-file", "", "file with the job description")
	analyzeCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	analyzeCmd.Flags().String("report", "", "write the feedback report to this file")
	analyzeCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for the job description or next actions")
}

// analyze is the command for analyzing a single resume from disk.
func analyze(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-analyzer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redact(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	if path == stdinPath && !autoApprove {
		// stdin carries the PDF, so there is nothing to prompt with
		logger.Debug("disabling prompts", zap.String("reason", "resume is read from stdin"))
		autoApprove = true
	}

	jobDescription, err := resolveJobDescription(cmd, autoApprove)
	if err != nil {
		if errors.Is(err, errExit) {
			return
		}
		logger.Fatal("reading the job description", zap.Error(err))
	}

	a, err := newAnalyzer(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the analyzer",
			zap.Error(err),
			zap.String("hint", "set GOOGLE_API_KEY or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	result, err := runAnalysis(ctx, a, path, jobDescription)
	if err != nil {
		kind, _ := apperrors.KindOf(err)
		logger.Fatal("analysis failed",
			zap.String("kind", string(kind)),
			zap.String("reason", apperrors.Message(err)),
			zap.Error(err),
		)
	}

	format, _ := cmd.Flags().GetString("output")
	if err := printResult(cmd.OutOrStdout(), result, format); err != nil {
		logger.Fatal("printing the result", zap.Error(err))
	}

	if target, _ := cmd.Flags().GetString("report"); target != "" {
		if err := saveReport(target, result); err != nil {
			logger.Fatal("saving the report", zap.Error(err))
		}
		logger.Info("report saved", zap.String("filename", target))
	}

	if autoApprove {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(cmd.OutOrStdout(), action, logger, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// runAnalysis analyzes the file at path, or stages the PDF read from stdin when path is "-".
func runAnalysis(ctx context.Context, a *analyzer.Analyzer, path, jobDescription string) (*analyzer.Result, error) {
	if path == stdinPath {
		return a.AnalyzeUpload(ctx, stdinName, os.Stdin, jobDescription)
	}

	result, err := a.Analyze(ctx, path, jobDescription)
	if err != nil {
		return nil, err
	}

	result.Source = filepath.Base(path)
	return result, nil
}

func handleAction(out io.Writer, action string, logger *zap.Logger, result *analyzer.Result) error {
	switch action {
	case PromptSaveReport:
		filename := report.FileName(result.Source)
		if err := saveReport(filename, result); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		logger.Info("report saved", zap.String("filename", filename))
		return nil
	case PromptHighlight:
		highlighted := report.HighlightFunc(result.Evaluation, result.PresentKeywords, func(word string) string {
			return markKeyword(word)
		})
		_, err := fmt.Fprintln(out, highlighted)
		return err
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// resolveJobDescription reads the job description from flags, then from a file,
// then asks for it interactively unless auto approve is set.
func resolveJobDescription(cmd *cobra.Command, autoApprove bool) (string, error) {
	if text, _ := cmd.Flags().GetString("job-description"); strings.TrimSpace(text) != "" {
		return text, nil
	}

	if file, _ := cmd.Flags().GetString("job-description-file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading job description file: %w", err)
		}
		return string(data), nil
	}

	if autoApprove {
		return "", nil
	}

	jdPrompt := promptui.Prompt{
		Label: "Job description (leave empty to skip)",
	}

	text, err := jdPrompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return "", errExit
		}
		return "", err
	}

	return text, nil
}

func printResult(out io.Writer, result *analyzer.Result, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", outputText:
		_, err := io.WriteString(out, report.Render(result))
		return err
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func saveReport(path string, result *analyzer.Result) error {
	return os.WriteFile(path, []byte(report.Render(result)), 0o644)
}

// redact returns a copy of the config that is safe to log.
func redact(config *Config) *Config {
	if config == nil || config.AI == nil || config.AI.Gemini == nil {
		return config
	}

	redacted := *config
	ai := *config.AI
	gemini := *config.AI.Gemini
	if gemini.APIKey != "" {
		gemini.APIKey = "<redacted>"
	}
	ai.Gemini = &gemini
	redacted.AI = &ai

	return &redacted
}
