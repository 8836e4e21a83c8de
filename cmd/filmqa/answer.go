package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filmqa/internal/pipeline"
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Answer a file of questions in batch",
	Long: `Answer reads a question file (one question per line, optionally prefixed
with "<id>\t") and writes one tab-separated answer line per question. Questions
that cannot be categorized or answered still produce a line, so output rows
stay aligned with input rows.`,
	RunE: runAnswer,
}

func init() {
	answerCmd.Flags().String("questions", "", "question file to answer (required)")
	answerCmd.Flags().String("output", "", "answer output file (default: stdout)")
	answerCmd.Flags().String("snapshot", "", "write a YAML snapshot of the full run to this file")
	answerCmd.Flags().Bool("no-progress", false, "disable the progress bar")
	answerCmd.MarkFlagRequired("questions")

	rootCmd.AddCommand(answerCmd)
}

func runAnswer(cmd *cobra.Command, args []string) error {
	questionsPath, _ := cmd.Flags().GetString("questions")
	outputPath, _ := cmd.Flags().GetString("output")
	snapshotPath, _ := cmd.Flags().GetString("snapshot")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	log := newLogger()

	questions, err := pipeline.ReadQuestions(questionsPath)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions found in %s", questionsPath)
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	p := buildPipeline(log)
	results, err := p.Batch(cmd.Context(), questions, pipeline.BatchOptions{
		Output:       out,
		SnapshotPath: snapshotPath,
		Progress:     !noProgress && outputPath != "",
	})
	if err != nil {
		return err
	}

	answered := 0
	for _, r := range results {
		if !r.Skipped && !r.Answer.IsEmpty() {
			answered++
		}
	}
	log.Info().Int("questions", len(results)).Int("answered", answered).Msg("batch complete")
	return nil
}
