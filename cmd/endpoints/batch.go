package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/kbukum/endpoints/errors"
	"github.com/kbukum/endpoints/llm"
	"github.com/kbukum/endpoints/provider"
	"github.com/kbukum/endpoints/server"
	"github.com/kbukum/endpoints/validation"
)

// maxRecordSize bounds one JSONL line.
const maxRecordSize = 1 << 20

// batchRecord is one input line of an evaluation batch.
type batchRecord struct {
	Query *string `json:"query" validate:"required"`
}

// batchOutput is one output line: the result, or the query with its error.
type batchOutput struct {
	Query    string `json:"query"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BatchStats counts the lines a batch produced.
type BatchStats struct {
	Total  int
	Failed int
}

// recordProvider turns a query provider into one that consumes batch records.
func recordProvider(inv server.Invoker) provider.RequestResponse[batchRecord, batchOutput] {
	return provider.Adapt(inv, inv.Name(),
		func(_ context.Context, rec batchRecord) (string, error) {
			if err := validation.Validate(rec); err != nil {
				return "", err
			}
			return *rec.Query, nil
		},
		func(res llm.Result) (batchOutput, error) {
			return batchOutput{Query: res.Query, Response: res.Response}, nil
		},
	)
}

// runBatch reads {"query": ...} lines from r, answers them in order and
// writes one output line per input line to w. A failed line is reported in
// its output and does not stop the batch; blank lines are skipped.
func runBatch(ctx context.Context, inv server.Invoker, r io.Reader, w io.Writer) (BatchStats, error) {
	var stats BatchStats
	p := recordProvider(inv)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Total++
		out, err := executeLine(ctx, p, text)
		if err != nil {
			stats.Failed++
			out.Error = describe(err)
		}
		if err := enc.Encode(out); err != nil {
			return stats, fmt.Errorf("write line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read line %d: %w", line+1, err)
	}
	return stats, nil
}

func executeLine(ctx context.Context, p provider.RequestResponse[batchRecord, batchOutput], text string) (batchOutput, error) {
	var rec batchRecord
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		return batchOutput{}, apperrors.InvalidFormat("line", "JSON object with a query string").WithCause(err)
	}
	out, err := p.Execute(ctx, rec)
	if err != nil && rec.Query != nil {
		out.Query = *rec.Query
	}
	return out, err
}

// describe renders an error for the output line. Application errors keep
// their code so a batch can be filtered by failure kind.
func describe(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return fmt.Sprintf("%s: %s", appErr.Code, appErr.Message)
	}
	return err.Error()
}
