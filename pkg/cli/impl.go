package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/evanw/propmangle/internal/exitcode"
	"github.com/evanw/propmangle/internal/helpers"
	"github.com/evanw/propmangle/internal/logger"
	"github.com/evanw/propmangle/pkg/api"
	"golang.org/x/sync/errgroup"
)

func joinOutdir(outdir string, inputPath string) string {
	return filepath.Join(outdir, filepath.Base(inputPath))
}

func run(ctx context.Context, opts *options, inputPaths []string, stdin io.Reader, stdout io.Writer) error {
	transformOptions, err := opts.transformOptions()
	if err != nil {
		return exitcode.Usage(err)
	}
	outputPaths, err := opts.outputPaths(inputPaths)
	if err != nil {
		return exitcode.Usage(err)
	}

	var timer *helpers.Timer
	if transformOptions.LogLevel == api.LogLevelVerbose {
		timer = &helpers.Timer{}
		defer func() {
			log := logger.NewStderrLog(logger.StderrOptions{
				Color:    logger.StderrColor(transformOptions.Color),
				LogLevel: logger.LevelVerbose,
			})
			timer.Log(log)
			log.Done()
		}()
	}

	timer.Begin("Total")
	defer timer.End("Total")

	results, err := transformAll(ctx, inputPaths, stdin, transformOptions, timer)
	if err != nil {
		return err
	}

	// Write nothing if any file failed so a partial run can't be mistaken for
	// a complete one. The log has already shown the errors.
	for _, result := range results {
		if len(result.Errors) > 0 {
			return exitcode.ErrReported
		}
	}

	timer.Begin("Write output")
	defer timer.End("Write output")

	if outputPaths == nil {
		for _, result := range results {
			if _, err := stdout.Write(result.Code); err != nil {
				return fmt.Errorf("Failed to write to stdout: %w", err)
			}
		}
	} else {
		for i, result := range results {
			if err := writeFile(outputPaths[i], result.Code); err != nil {
				return fmt.Errorf("Failed to write to output file: %w", err)
			}
		}
	}

	if opts.nameMap != "" {
		if err := writeNameMap(opts.nameMap, results[0].NameMap); err != nil {
			return fmt.Errorf("Failed to write name map: %w", err)
		}
	}

	return nil
}

// Every file gets its own renaming table, so the files are independent and
// can be transformed in parallel. Results are returned in input order.
func transformAll(ctx context.Context, inputPaths []string, stdin io.Reader, options api.TransformOptions, timer *helpers.Timer) ([]api.TransformResult, error) {
	if len(inputPaths) == 0 {
		timer.Begin("Read stdin")
		bytes, err := io.ReadAll(stdin)
		timer.End("Read stdin")
		if err != nil {
			return nil, fmt.Errorf("Could not read from stdin: %w", err)
		}

		timer.Begin("Transform")
		defer timer.End("Transform")
		return []api.TransformResult{api.Transform(string(bytes), options)}, nil
	}

	results := make([]api.TransformResult, len(inputPaths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, inputPath := range inputPaths {
		i, inputPath := i, inputPath
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fork := timer.Fork()
			fork.Begin(inputPath)
			defer func() {
				fork.End(inputPath)
				timer.Join(fork)
			}()

			fork.Begin("Read file")
			contents, err := os.ReadFile(inputPath)
			fork.End("Read file")
			if err != nil {
				return fmt.Errorf("Could not read from file %q: %w", inputPath, err)
			}

			fileOptions := options
			fileOptions.Sourcefile = inputPath

			fork.Begin("Transform")
			results[i] = api.Transform(string(contents), fileOptions)
			fork.End("Transform")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
