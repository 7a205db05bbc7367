package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"utmequiz/internal/catalog"
	"utmequiz/internal/question"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Mode string

const (
	ModeIndividual Mode = "individual"
	ModeClusters   Mode = "clusters"
	ModePages      Mode = "pages"
	ModeAll        Mode = "all"
)

var (
	ErrUnknownMode       = errors.New("unknown generation mode")
	ErrNothingGenerated  = errors.New("no pages generated")
	ErrNoQuestionSources = errors.New("no .txt question files found")
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeIndividual, ModeClusters, ModePages, ModeAll:
		return m, nil
	case "":
		return ModeAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

func (m Mode) includes(other Mode) bool {
	return m == ModeAll || m == other
}

// Result lists output filenames written and source files or clusters skipped.
type Result struct {
	Generated []string
	Skipped   []string
}

// Generator writes quiz and listing pages into one output directory.
type Generator struct {
	parser   *question.Parser
	clusters []catalog.Cluster
	pages    []StreamPage
	template string
	period   Period
	prevJSON []byte
	log      *zap.Logger
}

type GeneratorConfig struct {
	Parser        *question.Parser
	Clusters      []catalog.Cluster
	StreamPages   []StreamPage
	QuizTemplate  string
	Period        Period
	PrevQuestions []byte
	Logger        *zap.Logger
}

func NewGenerator(cfg GeneratorConfig) *Generator {
	g := &Generator{
		parser:   cfg.Parser,
		clusters: cfg.Clusters,
		pages:    cfg.StreamPages,
		template: cfg.QuizTemplate,
		period:   cfg.Period,
		prevJSON: cfg.PrevQuestions,
		log:      cfg.Logger,
	}
	if g.parser == nil {
		g.parser = question.NewParser(nil, 0)
	}
	if g.clusters == nil {
		g.clusters = catalog.Default().Clusters()
	}
	if g.pages == nil {
		g.pages = DefaultStreamPages()
	}
	if g.template == "" {
		g.template = defaultQuizTemplate
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	return g
}

// Generate runs the requested mode over sources (question file paths, in
// order) and writes pages into outDir. Listing pages link only to quiz pages
// generated by this same call.
func (g *Generator) Generate(mode Mode, sources []string, outDir string) (Result, error) {
	if len(sources) == 0 && mode != ModePages {
		return Result{}, ErrNoQuestionSources
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	var res Result
	if mode.includes(ModeIndividual) {
		if err := g.individual(sources, outDir, &res); err != nil {
			return res, err
		}
	}
	if mode.includes(ModeClusters) {
		if err := g.clusterPages(sources, outDir, &res); err != nil {
			return res, err
		}
	}
	if mode.includes(ModePages) {
		available := make(map[string]bool, len(res.Generated))
		for _, name := range res.Generated {
			available[name] = true
		}
		if err := g.listings(outDir, available, &res); err != nil {
			return res, err
		}
	}

	g.log.Info("generation finished",
		zap.String("mode", string(mode)),
		zap.Int("generated", len(res.Generated)),
		zap.Strings("skipped", res.Skipped),
	)
	if len(res.Generated) == 0 {
		return res, ErrNothingGenerated
	}
	return res, nil
}

func (g *Generator) individual(sources []string, outDir string, res *Result) error {
	for _, path := range sources {
		parsed := g.parser.ParseFile(path)
		if !parsed.Success || parsed.QuestionCount() == 0 {
			g.log.Warn("skipping question file", zap.String("file", parsed.Filename), zap.Strings("errors", parsed.Errors))
			res.Skipped = append(res.Skipped, parsed.Filename)
			continue
		}
		name := "quiz-" + strings.ToLower(parsed.Subject) + ".html"
		page := QuizPage{
			Title:        parsed.Subject,
			SubjectsList: parsed.Subject,
			Questions:    parsed.Questions,
			TimerMinutes: IndividualMinutes,
		}
		if err := g.writeQuiz(filepath.Join(outDir, name), page); err != nil {
			return err
		}
		res.Generated = append(res.Generated, name)
	}
	return nil
}

func (g *Generator) clusterPages(sources []string, outDir string, res *Result) error {
	title := cases.Title(language.Und)
	for _, c := range g.clusters {
		var combined []question.Record
		var found []string
		for _, subject := range c.Required {
			path, ok := FindSubjectFile(subject, sources)
			if !ok {
				g.log.Warn("cluster subject missing", zap.String("cluster", c.Name), zap.String("subject", subject))
				continue
			}
			parsed := g.parser.ParseFile(path)
			if parsed.Success && parsed.QuestionCount() > 0 {
				combined = append(combined, parsed.Questions...)
				found = append(found, catalog.DisplayName(subject))
			}
		}
		if len(combined) == 0 {
			g.log.Warn("skipping cluster with no valid questions", zap.String("cluster", c.Name))
			res.Skipped = append(res.Skipped, c.Name)
			continue
		}

		name := "quiz-" + c.Name + ".html"
		page := QuizPage{
			Title:        title.String(strings.ReplaceAll(c.Name, "-", " ")),
			SubjectsList: strings.Join(found, ", "),
			Questions:    combined,
			TimerMinutes: ClusterMinutes,
		}
		if err := g.writeQuiz(filepath.Join(outDir, name), page); err != nil {
			return err
		}
		res.Generated = append(res.Generated, name)
	}
	return nil
}

func (g *Generator) listings(outDir string, available map[string]bool, res *Result) error {
	for _, p := range g.pages {
		raw, err := RenderListing(p, g.period.DayRange, available)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, p.Filename), raw, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", p.Filename, err)
		}
		g.log.Info("generated listing page", zap.String("file", p.Filename))
		res.Generated = append(res.Generated, p.Filename)
	}
	return nil
}

func (g *Generator) writeQuiz(path string, page QuizPage) error {
	html, err := FillQuiz(g.template, g.period, page, g.prevJSON)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	g.log.Info("generated quiz page",
		zap.String("file", filepath.Base(path)),
		zap.Int("questions", len(page.Questions)),
	)
	return nil
}

// FindSubjectFile returns the first source whose lower-cased filename
// contains subject.
func FindSubjectFile(subject string, sources []string) (string, bool) {
	needle := strings.ToLower(subject)
	for _, path := range sources {
		if strings.Contains(strings.ToLower(filepath.Base(path)), needle) {
			return path, true
		}
	}
	return "", false
}
