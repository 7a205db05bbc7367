package main

import (
	"fmt"
	"os"
	"strings"

	"utmequiz/internal/app"
	"utmequiz/internal/archive"
	"utmequiz/internal/render"
	"utmequiz/internal/validation"

	"github.com/spf13/cobra"
)

var genOpts struct {
	template         string
	outputDir        string
	questtDir        string
	period           int
	dayRange         string
	generatedDate    string
	validationStatus string
	mode             string
	prevQuestions    string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate quiz pages and stream listing pages",
	Long: `Modes:
  individual  one quiz-<subject>.html per valid question file (15 minutes)
  clusters    one quiz-<cluster>.html per cluster with any valid subject (60 minutes)
  pages       stream listing pages linking the quizzes generated in this run
  all         all of the above (default)

Fails when nothing was generated.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genOpts.template, "template", "", "quiz page template (default: QUIZ_TEMPLATE or built-in)")
	f.StringVar(&genOpts.outputDir, "output-dir", "", "where pages are written (default: OUTPUT_DIR)")
	f.StringVar(&genOpts.questtDir, "questt-dir", "", "directory holding the .txt question files (default: QUESTT_DIR)")
	f.IntVar(&genOpts.period, "period", 1, "period number")
	f.StringVar(&genOpts.dayRange, "day-range", "", "day range shown on the pages, e.g. 5-6")
	f.StringVar(&genOpts.generatedDate, "generated-date", "", "generation date shown on the pages")
	f.StringVar(&genOpts.validationStatus, "validation-status", "UNKNOWN", "validation status shown on the pages")
	f.StringVar(&genOpts.mode, "mode", string(render.ModeAll), "individual, clusters, pages or all")
	f.StringVar(&genOpts.prevQuestions, "prev-questions", "", "JSON file with the previous period's questions")
	_ = generateCmd.MarkFlagRequired("day-range")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := app.LoadConfig()
	questtDir := firstNonEmpty(genOpts.questtDir, cfg.QuesttDir)
	outputDir := firstNonEmpty(genOpts.outputDir, cfg.OutputDir)

	mode, err := render.ParseMode(genOpts.mode)
	if err != nil {
		return err
	}
	tmpl, err := render.LoadQuizTemplate(firstNonEmpty(genOpts.template, cfg.QuizTemplate))
	if err != nil {
		return err
	}
	if info, err := os.Stat(questtDir); err != nil || !info.IsDir() {
		return fmt.Errorf("questt-dir %s: %w", questtDir, validation.ErrDirectoryNotFound)
	}
	sources, err := validation.QuestionFiles(questtDir)
	if err != nil {
		return err
	}

	prev, err := archive.PreviousJSON(archive.LoadPrevious(genOpts.prevQuestions))
	if err != nil {
		return err
	}

	g := render.NewGenerator(render.GeneratorConfig{
		Parser:       newParser(),
		Clusters:     cat.Clusters(),
		QuizTemplate: tmpl,
		Period: render.Period{
			Number:           genOpts.period,
			DayRange:         genOpts.dayRange,
			GeneratedDate:    genOpts.generatedDate,
			ValidationStatus: genOpts.validationStatus,
		},
		PrevQuestions: prev,
		Logger:        logger,
	})

	res, err := g.Generate(mode, sources, outputDir)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\nGenerated : %d files\n", rule, len(res.Generated))
	if len(res.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped   : %d (%s)\n", len(res.Skipped), strings.Join(res.Skipped, ", "))
	}
	fmt.Fprintln(out, rule)
	return err
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
