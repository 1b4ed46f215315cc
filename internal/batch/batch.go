package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tagpivot/internal/fileutil"
	"tagpivot/internal/logging"
	"tagpivot/internal/mapping"
	"tagpivot/internal/reshape"
)

// ErrOutputLocked reports that another run currently holds the output file.
var ErrOutputLocked = errors.New("output file is locked by another run")

// Request describes one transform run.
type Request struct {
	InputPath   string
	MappingPath string
	OutputPath  string
	Mode        reshape.Mode
}

// Outcome reports a completed run.
type Outcome struct {
	RunID           string          `json:"run_id"`
	InputPath       string          `json:"input_path"`
	OutputPath      string          `json:"output_path"`
	Mode            string          `json:"mode"`
	Summary         reshape.Summary `json:"summary"`
	DurationSeconds float64         `json:"duration_seconds"`

	Duration time.Duration `json:"-"`
}

// Run executes the read, resolve, transform, and write stages for req.
// The output file is replaced atomically; a sibling .lock file guards it
// against concurrent runs for the duration of the write.
func Run(ctx context.Context, logger *slog.Logger, req Request) (*Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req.InputPath == "" || req.MappingPath == "" || req.OutputPath == "" {
		return nil, errors.New("run requires input, mapping, and output paths")
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	base := logging.NewComponentLogger(logger, "batch")
	runLogger := logging.WithContext(ctx, base)

	start := time.Now()
	runLogger.Info(
		"run started",
		logging.String("input", req.InputPath),
		logging.String("mapping", req.MappingPath),
		logging.String("output", req.OutputPath),
		logging.String("mode", req.Mode.String()),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	readLogger := logging.WithContext(logging.WithStage(ctx, "read"), base)
	tableText, err := fileutil.ReadTextFile(req.InputPath)
	if err != nil {
		readLogger.Error("read input failed", logging.Error(err))
		return nil, fmt.Errorf("read input: %w", err)
	}
	readLogger.Debug("input loaded", logging.Int("bytes", len(tableText)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resolveLogger := logging.WithContext(logging.WithStage(ctx, "resolve"), base)
	m, err := mapping.LoadFile(req.MappingPath)
	if err != nil {
		resolveLogger.Error("load mapping failed", logging.Error(err))
		return nil, err
	}
	resolveLogger.Debug("mapping loaded", logging.Int("entries", len(m)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	transformLogger := logging.WithContext(logging.WithStage(ctx, "transform"), base)
	result, err := reshape.Transform(tableText, m, req.Mode)
	if err != nil {
		transformLogger.Error("transform failed", logging.Error(err))
		return nil, err
	}
	transformLogger.Debug(
		"table reshaped",
		logging.Int("data_rows", result.Summary.DataRows),
		logging.Int("emitted_rows", result.Summary.EmittedRows),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	writeLogger := logging.WithContext(logging.WithStage(ctx, "write"), base)
	lockPath := req.OutputPath + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, req.OutputPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			writeLogger.Warn("release output lock", logging.Error(err))
		}
		_ = os.Remove(lockPath)
	}()
	if err := fileutil.WriteFileAtomic(req.OutputPath, []byte(result.Output), 0o644); err != nil {
		writeLogger.Error("write output failed", logging.Error(err))
		return nil, fmt.Errorf("write output: %w", err)
	}

	duration := time.Since(start)
	runLogger.Info(
		"run completed",
		logging.Int("emitted_rows", result.Summary.EmittedRows),
		logging.Int("skipped_rows", result.Summary.SkippedRows),
		logging.String("output", req.OutputPath),
		logging.Duration("run_duration", duration),
	)

	return &Outcome{
		RunID:           runID,
		InputPath:       req.InputPath,
		OutputPath:      req.OutputPath,
		Mode:            req.Mode.String(),
		Summary:         result.Summary,
		DurationSeconds: duration.Seconds(),
		Duration:        duration,
	}, nil
}
