package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"utmequiz/internal/question"

	"github.com/spf13/cobra"
)

var batchOutput string

var parseCmd = &cobra.Command{
	Use:   "parse <file> [more files...]",
	Short: "Parse question files and print the result",
	Long: `With one file, prints a detailed summary followed by the JSON result.
With several, prints a per-file summary and writes all results as JSON to
--output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&batchOutput, "output", "o", "batch_parse_results.json", "batch mode JSON output file")
}

func runParse(cmd *cobra.Command, args []string) error {
	p := newParser()
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		res := p.ParseFile(args[0])
		printParseDetail(out, res)
		raw, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Fprintf(out, "\n%s\nJSON Output:\n%s\n%s\n", rule, rule, raw)
		return nil
	}

	results := p.BatchParse(args)
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(out, "\n%s\nBatch Parsing: %d files\n%s\n\n", rule, len(args), rule)
	successful := 0
	for _, name := range names {
		res := results[name]
		status := "FAIL"
		if res.Success {
			status = "OK"
			successful++
		}
		fmt.Fprintf(out, "[%s] %s\n", status, name)
		fmt.Fprintf(out, "   Subject: %s\n", res.Subject)
		fmt.Fprintf(out, "   Questions: %d\n", res.QuestionCount())
		printErrors(out, res.Errors, "      ")
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%s\nSummary: %d/%d files parsed successfully\n%s\n", rule, successful, len(results), rule)

	raw, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.WriteFile(batchOutput, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", batchOutput, err)
	}
	fmt.Fprintf(out, "Full results saved to: %s\n", batchOutput)
	return nil
}

const rule = "============================================================"

func printParseDetail(out io.Writer, res question.ParseResult) {
	fmt.Fprintf(out, "\n%s\nParsing: %s\n%s\n", rule, res.Filename, rule)
	fmt.Fprintf(out, "Subject: %s\n", res.Subject)
	fmt.Fprintf(out, "Questions Parsed: %d\n", res.QuestionCount())
	fmt.Fprintf(out, "Success: %t\n", res.Success)

	if len(res.Errors) > 0 {
		fmt.Fprintf(out, "\nErrors (%d):\n", len(res.Errors))
		for _, e := range res.Errors {
			fmt.Fprintf(out, "  - %s\n", e)
		}
		return
	}
	fmt.Fprintln(out, "\nAll validations passed!")
	if len(res.Questions) > 0 {
		fmt.Fprintf(out, "\nSample Question:\n")
		q := res.Questions[0]
		fmt.Fprintf(out, "  %d. %s\n", q.ID, q.Text)
		for _, label := range question.Labels {
			fmt.Fprintf(out, "     %s. %s\n", label, q.Option(label))
		}
		fmt.Fprintf(out, "     Answer: %s\n", q.Answer)
	}
}

func printErrors(out io.Writer, errs []string, indent string) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(out, "   Errors: %d\n", len(errs))
	for i, e := range errs {
		if i == 3 {
			fmt.Fprintf(out, "%s... and %d more\n", indent, len(errs)-3)
			return
		}
		fmt.Fprintf(out, "%s- %s\n", indent, e)
	}
}
