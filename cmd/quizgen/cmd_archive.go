package main

import (
	"fmt"
	"os"

	"utmequiz/internal/archive"

	"github.com/spf13/cobra"
)

var (
	archiveDir  string
	prevRange   string
	prevOutput  string
	archiveRoot string
)

var collectPrevCmd = &cobra.Command{
	Use:   "collect-prev",
	Short: "Collect the previous period's archived questions into one JSON array",
	Long: `Reads <archive-dir>/day-<day-range>/*.txt and writes every question of
each valid file to --output-file. A missing archive folder writes [] and is
not an error.`,
	Args: cobra.NoArgs,
	RunE: runCollectPrev,
}

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Write day-<range>/metadata.json from environment variables",
	Long: `Reads PERIOD, DAY_RANGE, GEN_DATE, VALIDATION_STATUS, TOTAL_COUNT and
VALID_COUNT from the environment. DAY_RANGE is required.`,
	Args: cobra.NoArgs,
	RunE: runMetadata,
}

func init() {
	collectPrevCmd.Flags().StringVar(&archiveDir, "archive-dir", "", "archive root, e.g. archive-repo/archive")
	collectPrevCmd.Flags().StringVar(&prevRange, "day-range", "", "previous period day range, e.g. 1-2")
	collectPrevCmd.Flags().StringVar(&prevOutput, "output-file", "", "where to write the JSON array")
	_ = collectPrevCmd.MarkFlagRequired("archive-dir")
	_ = collectPrevCmd.MarkFlagRequired("day-range")
	_ = collectPrevCmd.MarkFlagRequired("output-file")

	metadataCmd.Flags().StringVar(&archiveRoot, "archive-root", "archive-repo/archive", "archive root directory")
}

func runCollectPrev(cmd *cobra.Command, args []string) error {
	n, err := archive.NewCollector(newParser(), logger).Collect(archiveDir, prevRange, prevOutput)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d previous questions to %s\n", n, prevOutput)
	return nil
}

func runMetadata(cmd *cobra.Command, args []string) error {
	m, err := archive.MetadataFromEnv(os.Getenv)
	if err != nil {
		return err
	}
	path, err := archive.WriteMetadata(archiveRoot, m)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "metadata.json written to %s\n", path)
	return nil
}
