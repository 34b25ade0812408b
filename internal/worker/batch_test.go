package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/censusflat/internal/model"
	"github.com/ppiankov/censusflat/internal/pipeline"
)

// mockFlattener implements Flattener
type mockFlattener struct {
	failOn string
	calls  int32
}

func (m *mockFlattener) Flatten(ctx context.Context, inputPath string) (*pipeline.Result, error) {
	atomic.AddInt32(&m.calls, 1)
	time.Sleep(5 * time.Millisecond)
	if strings.Contains(inputPath, m.failOn) && m.failOn != "" {
		return nil, errors.New("flatten error")
	}
	return &pipeline.Result{
		Input: inputPath,
		Output: &model.Output{Records: []model.Record{
			{ID: filepath.Base(inputPath), People: []model.Person{{ID: "p1"}}},
		}},
	}, nil
}

func TestBatchProcessor_ProcessFiles(t *testing.T) {
	outDir := t.TempDir()
	flattener := &mockFlattener{failOn: "broken"}
	processor := NewBatchProcessor(flattener, 2)

	inputs := []string{"in/a.json", "in/broken.json", "in/c.json", "in/a.json"}
	results, err := processor.ProcessFiles(context.Background(), inputs, outDir, "-simple")
	if err != nil {
		t.Fatalf("ProcessFiles: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected duplicate input to be processed once, got %d results", len(results))
	}
	if atomic.LoadInt32(&flattener.calls) != 3 {
		t.Errorf("expected 3 flatten calls, got %d", flattener.calls)
	}

	wantOrder := []string{"in/a.json", "in/broken.json", "in/c.json"}
	for i, res := range results {
		if res.Input != wantOrder[i] {
			t.Errorf("result %d: expected %s, got %s", i, wantOrder[i], res.Input)
		}
	}

	if results[1].Error == nil {
		t.Error("expected error for broken input")
	}
	if results[0].Error != nil || results[2].Error != nil {
		t.Errorf("unexpected errors: %v, %v", results[0].Error, results[2].Error)
	}

	if _, err := os.Stat(filepath.Join(outDir, "a-simple.json")); err != nil {
		t.Errorf("expected output file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "broken-simple.json")); !os.IsNotExist(err) {
		t.Error("expected no output for failed input")
	}
}

func TestBatchProcessor_OutputCollision(t *testing.T) {
	processor := NewBatchProcessor(&mockFlattener{}, 2)

	_, err := processor.ProcessFiles(context.Background(), []string{"x/census.json", "y/census.json"}, t.TempDir(), "-simple")
	if err == nil {
		t.Error("expected error when two inputs map to the same output")
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockFlattener{}, 2)

	results, err := processor.ProcessFiles(context.Background(), nil, t.TempDir(), "-simple")
	if err != nil || len(results) != 0 {
		t.Errorf("expected no results and no error, got %d, %v", len(results), err)
	}
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	processor := NewBatchProcessor(&mockFlattener{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := processor.ProcessFiles(ctx, []string{"a.json", "b.json"}, t.TempDir(), "-simple")
	if err != nil {
		t.Fatalf("ProcessFiles: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected a result per input, got %d", len(results))
	}
	for _, r := range results {
		if r.Error == nil {
			t.Errorf("expected %s to fail on a cancelled context", r.Input)
		}
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "inputs.txt")
	content := "# exports\n\n1850.json\n  1850.json  \n/abs/1860.json\n"
	if err := os.WriteFile(list, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(list)
	if err != nil {
		t.Fatalf("ReadPathsFromFile: %v", err)
	}

	want := []string{filepath.Join(dir, "1850.json"), "/abs/1860.json"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path %d: expected %s, got %s", i, want[i], paths[i])
		}
	}

	if _, err := ReadPathsFromFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing list file")
	}
}
