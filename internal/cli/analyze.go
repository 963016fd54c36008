package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"hireup/internal/analysis"
	"hireup/internal/common"
	"hireup/internal/config"
	"hireup/internal/extract"
	"hireup/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file>",
	Short: "Score a resume against the ATS checklist",
	Long: `Analyze a resume file (PDF, DOCX, TXT or Markdown) the same way the
upload endpoint does. The report covers:
- Detected skills and the job match when a job description is given
- Action verb strength and quantified achievements
- Buzzwords and missing resume sections
- The 10-point ATS checklist, score and prioritized suggestions`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if analyzeJobFile != "" && analyzeJobText != "" {
			return fmt.Errorf("use either --job or --job-text, not both")
		}
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var (
	analyzeConfig  common.CommandConfig
	analyzeJobFile string
	analyzeJobText string
)

func init() {
	registerFormatFlags(analyzeCmd, &analyzeConfig)
	analyzeCmd.Flags().StringVar(&analyzeJobFile, "job", "", "Job description file to match against")
	analyzeCmd.Flags().StringVar(&analyzeJobText, "job-text", "", "Job description text to match against")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	analyzer, err := newAnalyzer(cfg.Analysis)
	if err != nil {
		return err
	}
	extractor := extract.NewExtractor(true)
	if cfg.Analysis.MinTextLength > 0 {
		extractor.MinTextLength = cfg.Analysis.MinTextLength
	}
	fp := common.NewFileProcessor(logger)

	analyzeOperation := func(ctx context.Context) (types.AnalysisData, error) {
		data, err := fp.ReadBytes(args[0], cfg.App.MaxFileSize)
		if err != nil {
			return types.AnalysisData{}, err
		}
		name := filepath.Base(args[0])
		doc, err := extractor.Extract(name, data)
		if err != nil {
			return types.AnalysisData{}, err
		}

		jobDescription := analyzeJobText
		if analyzeJobFile != "" {
			if jobDescription, err = fp.ReadFile(analyzeJobFile); err != nil {
				return types.AnalysisData{}, err
			}
		}

		logger.Info("Starting resume analysis",
			"file", name,
			"kind", doc.Kind,
			"job_chars", len(jobDescription),
			"output_format", analyzeConfig.OutputFormat)

		report := analyzer.Analyze(doc.Text, jobDescription)
		return types.NewAnalysisData(name, doc.Size, report), nil
	}

	err = common.RunCommand(cmd.Context(), logger, analyzeConfig, cfg.App.SupportedFormats,
		cmd.OutOrStdout(), "analyze", analyzeOperation)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("Resume analysis completed successfully")
	return nil
}

// newAnalyzer builds an analyzer from the configured lexicon file, or the
// built-in lexicon when none is set.
func newAnalyzer(cfg config.AnalysisConfig) (*analysis.Analyzer, error) {
	if cfg.LexiconFile == "" {
		return analysis.NewAnalyzer(nil), nil
	}
	lexicon, err := analysis.LoadLexiconFile(cfg.LexiconFile)
	if err != nil {
		return nil, err
	}
	return analysis.NewAnalyzer(lexicon), nil
}
