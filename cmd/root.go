package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-analyzer"
)

type Config struct {
	AI       *AIConfig       `mapstructure:"ai"`
	OCR      *OCRConfig      `mapstructure:"ocr"`
	Analyzer *AnalyzerConfig `mapstructure:"analyzer"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

type OCRConfig struct {
	// Rasterizer is one of pdfcpu, pdftoppm or none.
	Rasterizer string `mapstructure:"rasterizer"`
	// Recognizer is one of tesseract, gemini or none.
	Recognizer    string `mapstructure:"recognizer"`
	TesseractPath string `mapstructure:"tesseract-path"`
	PdftoppmPath  string `mapstructure:"pdftoppm-path"`
	Language      string `mapstructure:"language"`
	DPI           int    `mapstructure:"dpi"`
}

// AnalyzerConfig applies to resumes read from stdin, which are staged in a temporary file.
type AnalyzerConfig struct {
	TempDir       string `mapstructure:"temp-dir"`
	MaxUploadSize int64  `mapstructure:"max-upload-size"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-analyzer extracts text from a PDF resume, scores it against a job description and asks Gemini for a review",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-analyzer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.timeout", "60s")
	viper.SetDefault("ai.gemini.max-log-length", 200)

	viper.SetDefault("ocr.rasterizer", "pdfcpu")
	viper.SetDefault("ocr.recognizer", "tesseract")
	viper.SetDefault("ocr.language", "eng")
	viper.SetDefault("ocr.dpi", 200)

	viper.SetDefault("analyzer.max-upload-size", 10<<20)
}

func initConfig() {
	// Variables such as GOOGLE_API_KEY may live in a local .env file. It is optional.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional unless it was requested explicitly.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.AllSettings())
}

func decodeConfig(settings map[string]any) (*Config, error) {
	var config *Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.OCR == nil {
		config.OCR = &OCRConfig{}
	}
	if config.Analyzer == nil {
		config.Analyzer = &AnalyzerConfig{}
	}

	return config, nil
}
