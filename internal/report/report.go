package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"utmequiz/internal/validation"

	"github.com/xuri/excelize/v2"
)

const rule = "============================================================"

// Save writes the report as indented JSON, creating parent directories.
func Save(path string, r validation.Report) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func Load(path string) (validation.Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return validation.Report{}, fmt.Errorf("read report: %w", err)
	}
	var r validation.Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return validation.Report{}, fmt.Errorf("decode report: %w", err)
	}
	return r, nil
}

// XLSX renders the report as a workbook with Summary, Files and Clusters
// sheets.
func XLSX(r validation.Report, clusters []validation.ClusterStatus) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, r, clusters); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteXLSX(w io.Writer, r validation.Report, clusters []validation.ClusterStatus) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), "Summary"); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	summary := [][]any{
		{"timestamp", r.Timestamp},
		{"total_files", r.Summary.TotalFiles},
		{"valid_files", r.Summary.ValidFiles},
		{"invalid_files", r.Summary.InvalidFiles},
		{"validation_status", r.Summary.ValidationStatus},
	}
	writeRows(f, "Summary", summary)
	_ = f.SetColWidth("Summary", "A", "B", 24)

	files := [][]any{{"filename", "subject", "valid", "question_count", "file_size_bytes", "has_duplicates", "errors", "warnings"}}
	for _, res := range r.Results() {
		files = append(files, []any{
			res.Filename,
			res.Subject,
			yesNo(res.Valid),
			res.Metadata.QuestionCount,
			res.Metadata.FileSizeBytes,
			yesNo(res.Metadata.HasDuplicates),
			strings.Join(res.Errors, "\n"),
			strings.Join(res.Warnings, "\n"),
		})
	}
	if _, err := f.NewSheet("Files"); err != nil {
		return fmt.Errorf("add files sheet: %w", err)
	}
	writeRows(f, "Files", files)
	_ = f.SetColWidth("Files", "A", "F", 18)
	_ = f.SetColWidth("Files", "G", "H", 60)

	clusterRows := [][]any{{"cluster", "ready", "required", "missing"}}
	for _, c := range clusters {
		clusterRows = append(clusterRows, []any{
			c.Name,
			yesNo(c.Ready),
			strings.Join(c.Required, ", "),
			strings.Join(c.Missing, ", "),
		})
	}
	if _, err := f.NewSheet("Clusters"); err != nil {
		return fmt.Errorf("add clusters sheet: %w", err)
	}
	writeRows(f, "Clusters", clusterRows)
	_ = f.SetColWidth("Clusters", "A", "D", 28)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write excel: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) {
	for i, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// PrintSummary writes the human-readable console summary, listing at most
// three errors per invalid file.
func PrintSummary(w io.Writer, r validation.Report, clusters []validation.ClusterStatus) {
	fmt.Fprintf(w, "\n%s\nVALIDATION SUMMARY\n%s\n", rule, rule)
	fmt.Fprintf(w, "Timestamp: %s\n", r.Timestamp)
	fmt.Fprintf(w, "Total Files: %d\n", r.Summary.TotalFiles)
	fmt.Fprintf(w, "Valid Files: %d\n", r.Summary.ValidFiles)
	fmt.Fprintf(w, "Invalid Files: %d\n", r.Summary.InvalidFiles)
	fmt.Fprintf(w, "Status: %s\n%s\n\n", r.Summary.ValidationStatus, rule)

	if len(r.ValidFiles) > 0 {
		fmt.Fprintln(w, "VALID FILES:")
		for _, name := range r.ValidFiles {
			res := r.Details[name]
			fmt.Fprintf(w, "   - %s\n", name)
			fmt.Fprintf(w, "     Subject: %s\n", res.Subject)
			fmt.Fprintf(w, "     Questions: %d\n", res.Metadata.QuestionCount)
			if len(res.Warnings) > 0 {
				fmt.Fprintf(w, "     Warnings: %d\n", len(res.Warnings))
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.InvalidFiles) > 0 {
		fmt.Fprintln(w, "INVALID FILES:")
		for _, name := range r.InvalidFiles {
			res := r.Details[name]
			fmt.Fprintf(w, "   - %s\n", name)
			if res.Subject != "" {
				fmt.Fprintf(w, "     Subject: %s\n", res.Subject)
			}
			fmt.Fprintf(w, "     Errors: %d\n", len(res.Errors))
			for i, e := range res.Errors {
				if i == 3 {
					fmt.Fprintf(w, "       ... and %d more\n", len(res.Errors)-3)
					break
				}
				fmt.Fprintf(w, "       - %s\n", e)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "GLOBAL WARNINGS:")
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "   - %s\n", warning)
		}
		fmt.Fprintln(w)
	}

	if len(clusters) == 0 {
		return
	}
	fmt.Fprintf(w, "%s\nCLUSTER GENERATION STATUS\n%s\n", rule, rule)
	for _, c := range clusters {
		status := "CANNOT GENERATE"
		if c.Ready {
			status = "CAN GENERATE"
		}
		fmt.Fprintf(w, "%s: %s\n", strings.ToUpper(c.Name), status)
		if !c.Ready && len(c.Missing) > 0 {
			fmt.Fprintf(w, "  Missing subjects: %s\n", strings.Join(c.Missing, ", "))
		}
	}
	fmt.Fprintln(w)
}
