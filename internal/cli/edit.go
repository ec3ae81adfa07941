package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/ppmedit/pkg/errors"
	"github.com/matzehuels/ppmedit/pkg/pipeline"
	"github.com/matzehuels/ppmedit/pkg/ppm"
)

// runEdit transforms inPath into outPath.
//
// The output is written to a temp file beside outPath and renamed into place,
// so a failed run never leaves a truncated image behind.
func (c *CLI) runEdit(ctx context.Context, kind ppm.Kind, inPath, outPath string) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidatePPMFilename(inPath, "input"); err != nil {
		return err
	}
	if err := errors.ValidatePPMFilename(outPath, "output"); err != nil {
		return err
	}

	in, err := openInput(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	proceed, err := c.checkOutput(ctx, outPath)
	if err != nil || !proceed {
		return err
	}

	runner := c.newRunner(ctx)
	defer runner.Close()

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".ppmedit-*.ppm")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "Unable to create output file: %s", outPath)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	prog := newProgress(logger)
	spin := c.startSpinner(ctx, "Applying "+kind.String())
	result, err := runner.Execute(ctx, in, tmp, pipeline.Options{
		Kind:    kind,
		Refresh: c.refresh,
		Logger:  logger,
	})
	spin.Stop()
	if err != nil {
		return describeRunError(err)
	}

	if err := tmp.Chmod(0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "Unable to write output file: %s", outPath)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "Unable to write output file: %s", outPath)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "Unable to write output file: %s", outPath)
	}
	committed = true

	prog.done("Transformed " + inPath)
	printSuccess(c.Out, "Applied %s", kind.String())
	printFile(c.Out, outPath)
	printStats(c.Out, result.Rows, result.Cols, result.CacheHit)
	return nil
}

// openInput opens a readable regular file.
func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "Unable to access input file: %s", path)
	}
	info, err := f.Stat()
	if err == nil && info.IsDir() {
		f.Close()
		return nil, errors.New(errors.ErrCodeFileNotFound, "Unable to access input file: %s", path)
	}
	return f, nil
}

// checkOutput reports whether outPath may be written, prompting when it
// already exists. A declined prompt is not an error.
func (c *CLI) checkOutput(ctx context.Context, outPath string) (bool, error) {
	info, err := os.Stat(outPath)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeIO, err, "Unable to access output file: %s", outPath)
	}
	if info.IsDir() {
		return false, errors.New(errors.ErrCodeInvalidPath, "Output is a directory: %s", outPath)
	}
	if c.assumeYes {
		return true, nil
	}

	ok, err := c.confirm(ctx, overwritePrompt(outPath))
	if err != nil {
		return false, err
	}
	if !ok {
		printInfo(c.Out, "Left %s unchanged", outPath)
	}
	return ok, nil
}

// describeRunError turns pipeline errors into the messages shown to users.
func describeRunError(err error) error {
	if ppm.Classify(err) == ppm.OutcomeMalformed {
		return errors.Wrap(errors.ErrCodeMalformed, err, "Invalid input file: %s", errors.UserMessage(err))
	}
	return err
}
