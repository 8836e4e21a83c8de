package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filmqa/internal/classify"
	"github.com/pdiddy/filmqa/internal/extract"
	"github.com/pdiddy/filmqa/internal/nlp"
	"github.com/pdiddy/filmqa/internal/pipeline"
	"github.com/pdiddy/filmqa/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [question]",
	Short: "Show how questions are categorized and sliced, without answering",
	Long: `Parse runs only the local stages — sentence analysis, categorization and
slot extraction — and prints what the pipeline would look up. Useful for
debugging why a question got the wrong answer. Takes a single question as an
argument or a question file via --questions.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("questions", "", "question file to parse")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	questionsPath, _ := cmd.Flags().GetString("questions")

	var questions []pipeline.Question
	switch {
	case questionsPath != "":
		var err error
		questions, err = pipeline.ReadQuestions(questionsPath)
		if err != nil {
			return err
		}
	case len(args) > 0:
		questions = []pipeline.Question{{Text: strings.Join(args, " ")}}
	default:
		return fmt.Errorf("provide a question or --questions FILE")
	}

	log := newLogger()
	cfg := loadConfig()
	analyzer := nlp.NewClient(cfg.Parser, log)

	for _, q := range questions {
		parsed, err := analyzer.Analyze(cmd.Context(), q.Text)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", q.Text, err)
		}

		qt := classify.Classify(parsed)
		fmt.Printf("Q: %s\n", q.Text)
		fmt.Printf("  type:     %s\n", qt)
		if qt == types.TypeUnknown {
			fmt.Println()
			continue
		}

		slots := extract.Slots(parsed, qt)
		fmt.Printf("  entity:   %s\n", slots.Entity)
		switch {
		case slots.Property.Resolved():
			fmt.Printf("  property: %s\n", slots.Property.Mapping)
		default:
			fmt.Printf("  property: %q\n", slots.Property.Phrase)
		}
		if m, ok := extract.Override(parsed.Text); ok {
			fmt.Printf("  override: %s\n", m)
		}
		fmt.Println()
	}
	return nil
}
