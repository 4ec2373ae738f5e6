package feed

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Processor runs the full filtering pipeline: read the input document,
// keep the items matching the target category, and write the result out.
type Processor struct {
	parser     *Parser
	filterer   *Filterer
	generator  *Generator
	inputPath  string
	outputPath string
}

func NewProcessor(parser *Parser, filterer *Filterer, generator *Generator,
	inputPath, outputPath string) *Processor {
	return &Processor{
		parser:     parser,
		filterer:   filterer,
		generator:  generator,
		inputPath:  inputPath,
		outputPath: outputPath,
	}
}

func (p *Processor) InputPath() string {
	return p.inputPath
}

func (p *Processor) OutputPath() string {
	return p.outputPath
}

// Run executes one filtering pass. The output file appears only when the
// whole pipeline succeeds; a failed run leaves no partial file behind.
// Zero matching items is not a failure: a valid feed with no items is
// still written.
func (p *Processor) Run() error {
	startTime := time.Now()

	data, err := os.ReadFile(p.inputPath)
	if err != nil {
		return &ReadError{Path: p.inputPath, Err: err}
	}

	metadata, items, err := p.parser.Run(data)
	if err != nil {
		return &ReadError{Path: p.inputPath, Err: err}
	}

	kept := p.filterer.Run(items)

	rss, err := p.generator.Run(metadata, kept)
	if err != nil {
		return &WriteError{Path: p.outputPath, Err: err}
	}

	if err := p.writeAtomic(rss); err != nil {
		return &WriteError{Path: p.outputPath, Err: err}
	}

	slog.Info("Feed filtered",
		"input", p.inputPath,
		"output", p.outputPath,
		"total", len(items),
		"kept", len(kept),
		"duration", time.Since(startTime))

	return nil
}

// writeAtomic stages the document in a temporary file next to the target
// and renames it into place, so readers never observe a truncated feed.
func (p *Processor) writeAtomic(content string) error {
	dir := filepath.Dir(p.outputPath)

	tmp, err := os.CreateTemp(dir, filepath.Base(p.outputPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to set output permissions: %w", err)
	}

	if err := os.Rename(tmp.Name(), p.outputPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace output file: %w", err)
	}

	return nil
}
