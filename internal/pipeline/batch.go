// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gosuri/uiprogress"
	"go.yaml.in/yaml/v3"
)

// Question is one line of a question file.
type Question struct {
	ID   string
	Text string
}

// ReadQuestions loads a question file: one question per line, optionally
// prefixed with "<id>\t". Lines without an identifier get their 1-based
// line number. Blank lines are skipped.
func ReadQuestions(path string) ([]Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening question file: %w", err)
	}
	defer f.Close()

	var questions []Question
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		line = strings.TrimRight(line, "\r\n ")
		if strings.TrimSpace(line) == "" {
			continue
		}

		id, text, found := strings.Cut(line, "\t")
		if !found {
			questions = append(questions, Question{ID: strconv.Itoa(lineNo), Text: line})
			continue
		}
		questions = append(questions, Question{ID: strings.TrimSpace(id), Text: strings.TrimSpace(text)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading question file: %w", err)
	}
	return questions, nil
}

// BatchOptions controls the batch driver's output.
type BatchOptions struct {
	// Output receives one "<id>\t<answer>" line per question.
	Output io.Writer
	// SnapshotPath, when set, receives a YAML record of the full run.
	SnapshotPath string
	// Progress draws a progress bar on stderr.
	Progress bool
}

type snapshot struct {
	CreatedAt time.Time `yaml:"created_at"`
	Results   []*Result `yaml:"results"`
}

// Batch answers every question in order and writes one output line per
// question. Questions that could not be answered still produce a line, so
// output rows align with input rows.
func (p *Pipeline) Batch(ctx context.Context, questions []Question, opts BatchOptions) ([]*Result, error) {
	var bar *uiprogress.Bar
	if opts.Progress {
		uiprogress.Start()
		defer uiprogress.Stop()
		bar = uiprogress.AddBar(len(questions)).AppendCompleted().PrependElapsed()
	}

	results := make([]*Result, 0, len(questions))
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := p.Process(ctx, q.ID, q.Text)
		results = append(results, res)
		if bar != nil {
			bar.Incr()
		}

		if opts.Output != nil {
			if _, err := fmt.Fprintf(opts.Output, "%s\t%s\n", res.ID, outputLine(res)); err != nil {
				return results, fmt.Errorf("writing answer line: %w", err)
			}
		}
	}

	if opts.SnapshotPath != "" {
		if err := writeSnapshot(opts.SnapshotPath, results); err != nil {
			return results, err
		}
	}
	return results, nil
}

func outputLine(res *Result) string {
	switch {
	case res.Skipped:
		return "question not understood"
	case res.Answer.IsEmpty():
		return "no answer found"
	default:
		return res.Answer.String()
	}
}

func writeSnapshot(path string, results []*Result) error {
	data, err := yaml.Marshal(snapshot{CreatedAt: time.Now().UTC(), Results: results})
	if err != nil {
		return fmt.Errorf("encoding run snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run snapshot: %w", err)
	}
	return nil
}
