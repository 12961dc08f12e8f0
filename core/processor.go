package core

import (
	"fmt"
	"log/slog"
	"sync"
)

// State is the lifecycle position of a Processor.
type State string

const (
	StateIdle       State = "idle"
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// ProgressFunc observes a run. current is 1-based.
type ProgressFunc func(current, total int, message string)

// Result holds every generated document of a completed run.
type Result struct {
	Individual []FileData
	Merged     FileData
}

// Processor drives the per-row pipeline and the final merge.
// A processor runs one batch at a time; Reset makes a finished processor reusable.
type Processor struct {
	codec  Codec
	logger *slog.Logger

	mu    sync.Mutex
	state State
	err   error
}

// NewProcessor creates an idle processor. A nil logger discards all output.
func NewProcessor(codec Codec, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Processor{
		codec:  codec,
		logger: logger,
		state:  StateIdle,
	}
}

// State returns the current lifecycle state.
func (p *Processor) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the error that moved the processor to StateFailed.
func (p *Processor) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Reset returns the processor to StateIdle. It has no effect while processing.
func (p *Processor) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateProcessing {
		return
	}
	p.state, p.err = StateIdle, nil
}

func (p *Processor) transition(from, to State, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != from {
		return false
	}
	p.state, p.err = to, err
	return true
}

// Run generates one document per row from template, then the merged document.
// Rows are processed strictly in order; the first failure aborts the batch and
// no partial result is returned.
func (p *Processor) Run(template FileData, rows []SourceRow, opts Options, onProgress ProgressFunc) (*Result, error) {
	if !p.transition(StateIdle, StateProcessing, nil) {
		return nil, ErrNotIdle
	}
	result, err := p.run(template, rows, opts.withDefaults(), onProgress)
	if err != nil {
		p.transition(StateProcessing, StateFailed, err)
		p.logger.Error("Batch failed", "template", template.Name, "error", err)
		return nil, err
	}
	p.transition(StateProcessing, StateCompleted, nil)
	return result, nil
}

func (p *Processor) run(template FileData, rows []SourceRow, opts Options, onProgress ProgressFunc) (*Result, error) {
	notify := func(current, total int, message string) {
		if onProgress != nil {
			onProgress(current, total, message)
		}
	}

	if len(rows) == 0 {
		return nil, ErrEmptySource
	}
	if opts.Month < 1 || opts.Month > 12 {
		return nil, fmt.Errorf("invalid month %d: want 1-12", opts.Month)
	}

	format := FormatLabel(template.Name)
	tpl, err := p.codec.Decode(template.Name, template.Data)
	if err != nil {
		return nil, &DecodeError{Name: template.Name, Format: format, Err: err}
	}
	p.logger.Info("Template decoded", "name", template.Name, "format", format, "sheets", len(tpl.Sheets))

	total := len(rows)
	result := &Result{Individual: make([]FileData, 0, total)}
	docs := make([]*Document, 0, total)

	for i, row := range rows {
		file, doc, err := p.processRow(tpl, template.Name, i, row, opts)
		if err != nil {
			return nil, err
		}
		result.Individual = append(result.Individual, file)
		docs = append(docs, doc)

		p.logger.Info("Row processed", "index", i+1, "total", total, "name", row.Name, "file", file.Name)
		notify(i+1, total, fmt.Sprintf("Processed %s", row.Name))
	}

	notify(total, total, "Generating merged file")
	merged, err := MergeDocuments(docs)
	if err != nil {
		return nil, fmt.Errorf("merge documents: %w", err)
	}
	merged.Name = opts.MergedName
	data, err := p.codec.Encode(merged)
	if err != nil {
		return nil, fmt.Errorf("encode merged document: %w", err)
	}
	result.Merged = NewFileData(opts.MergedName, data)
	p.logger.Info("Merged document generated", "name", opts.MergedName, "range", merged.FirstSheet().Ref)

	return result, nil
}

func (p *Processor) processRow(tpl *Document, templateName string, index int, row SourceRow, opts Options) (FileData, *Document, error) {
	doc, err := CloneDocument(tpl)
	if err != nil {
		return FileData{}, nil, NewRowError(index, row.Name, StageClone, err)
	}

	written, err := FillRow(doc, row, opts.Mapping)
	if err != nil {
		return FileData{}, nil, NewRowError(index, row.Name, StageFill, err)
	}

	sheet := doc.FirstSheet()
	if sheet == nil {
		return FileData{}, nil, NewRowError(index, row.Name, StageSubstitute, ErrNoSheet)
	}
	subs := SubstituteMonth(sheet, opts.Month, opts.MonthRule, sheet.Range())
	for _, sub := range subs {
		p.logger.Debug("Month token replaced",
			"row", row.Name,
			"cell", sub.Address.String(),
			"from", sub.Before,
			"to", sub.After,
		)
	}

	name := OutputName(opts.NamePattern, row, templateName, index+1, opts.Month)
	doc.Name = name
	data, err := p.codec.Encode(doc)
	if err != nil {
		return FileData{}, nil, NewRowError(index, row.Name, StageEncode, err)
	}

	p.logger.Debug("Row filled", "name", row.Name, "cells", written, "substitutions", len(subs))
	return NewFileData(name, data), doc, nil
}
