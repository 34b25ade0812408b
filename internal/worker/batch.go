package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/censusflat/internal/pipeline"
)

// Flattener flattens one input file
type Flattener interface {
	Flatten(ctx context.Context, inputPath string) (*pipeline.Result, error)
}

// FlattenJob flattens one file and writes the result to OutputPath
type FlattenJob struct {
	Input      string
	OutputPath string
	Flattener  Flattener
}

// Execute runs the job
func (j *FlattenJob) Execute(ctx context.Context) Result {
	res, err := j.Flattener.Flatten(ctx, j.Input)
	if err != nil {
		return &FileResult{Input: j.Input, Error: err}
	}
	if err := pipeline.WriteJSON(j.OutputPath, res.Output); err != nil {
		return &FileResult{Input: j.Input, Error: err}
	}
	return &FileResult{Input: j.Input, OutputPath: j.OutputPath, Result: res}
}

// FileResult is the outcome of one FlattenJob
type FileResult struct {
	Input      string
	OutputPath string
	Result     *pipeline.Result
	Error      error
}

// GetError returns the job error
func (r *FileResult) GetError() error {
	return r.Error
}

// BatchProcessor flattens many files concurrently. Each document is still
// processed by a single goroutine.
type BatchProcessor struct {
	flattener   Flattener
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(flattener Flattener, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		flattener:   flattener,
		concurrency: concurrency,
	}
}

// ProcessFiles flattens every input into outputDir, naming each output after
// its input plus suffix. Results come back in input order.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, inputs []string, outputDir, suffix string) ([]*FileResult, error) {
	if len(inputs) == 0 {
		return []*FileResult{}, nil
	}

	var unique []string
	outputs := make(map[string]string, len(inputs))
	owners := make(map[string]string, len(inputs))
	for _, in := range inputs {
		if _, dup := outputs[in]; dup {
			continue
		}
		out := filepath.Join(outputDir, filepath.Base(pipeline.OutputPath(in, suffix)))
		if prev, taken := owners[out]; taken {
			return nil, fmt.Errorf("inputs %s and %s would both write %s", prev, in, out)
		}
		owners[out] = in
		outputs[in] = out
		unique = append(unique, in)
	}
	inputs = unique

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for _, in := range inputs {
		pool.Submit(&FlattenJob{
			Input:      in,
			OutputPath: outputs[in],
			Flattener:  b.flattener,
		})
	}

	results := pool.Wait()

	order := make(map[string]int, len(inputs))
	for i, in := range inputs {
		order[in] = i
	}

	fileResults := make([]*FileResult, 0, len(results))
	for _, r := range results {
		fileResults = append(fileResults, r.(*FileResult))
	}

	// jobs dropped because ctx ended never produced a result
	if len(fileResults) < len(inputs) {
		done := make(map[string]bool, len(fileResults))
		for _, r := range fileResults {
			done[r.Input] = true
		}
		for _, in := range inputs {
			if !done[in] {
				err := ctx.Err()
				if err == nil {
					err = fmt.Errorf("not processed")
				}
				fileResults = append(fileResults, &FileResult{Input: in, Error: err})
			}
		}
	}

	sort.Slice(fileResults, func(i, j int) bool {
		return order[fileResults[i].Input] < order[fileResults[j].Input]
	})

	return fileResults, nil
}

// ReadPathsFromFile reads input paths, one per line. Blank lines and lines
// starting with # are skipped, duplicates are dropped. Relative paths are
// resolved against the list file's directory.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(listPath)

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
