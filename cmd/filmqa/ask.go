package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"github.com/pdiddy/filmqa/internal/pipeline"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question, or start an interactive prompt",
	Long: `Ask answers one question given as an argument. Without an argument it
starts an interactive prompt; type a question per line, "quit" or "exit" to
leave.`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	log := newLogger()
	p := buildPipeline(log)

	if len(args) > 0 {
		res := p.Process(cmd.Context(), "", strings.Join(args, " "))
		printResult(res)
		return nil
	}

	fmt.Println("Ask a question about a film (quit to leave).")
	executor := func(line string) {
		line = strings.TrimSpace(line)
		switch line {
		case "":
			return
		case "quit", "exit":
			os.Exit(0)
		}
		printResult(p.Process(context.Background(), "", line))
	}
	prompt.New(executor, askCompleter,
		prompt.OptionPrefix("? "),
		prompt.OptionTitle("filmqa"),
	).Run()
	return nil
}

// askCompleter suggests common question openers on an empty line.
func askCompleter(d prompt.Document) []prompt.Suggest {
	if d.TextBeforeCursor() != "" {
		return nil
	}
	return []prompt.Suggest{
		{Text: "Who"},
		{Text: "What"},
		{Text: "When"},
		{Text: "Where"},
		{Text: "How many"},
		{Text: "Did"},
	}
}

func printResult(res *pipeline.Result) {
	if res.Skipped {
		fmt.Println("Sorry, I could not understand that question.")
		return
	}
	if res.Answer.IsEmpty() {
		fmt.Println("No answer found.")
		return
	}
	fmt.Println(res.Answer.String())
}
