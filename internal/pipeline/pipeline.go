// Package pipeline runs the clean transform: load the raw grid, recover its
// header schema, pair the year columns, build tidy records, check them and
// write the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ecomstat/ecomclean/internal/config"
	"github.com/ecomstat/ecomclean/internal/grid"
	"github.com/ecomstat/ecomclean/internal/header"
	"github.com/ecomstat/ecomclean/internal/model"
	"github.com/ecomstat/ecomclean/internal/records"
	"github.com/ecomstat/ecomclean/internal/sanitize"
	"github.com/ecomstat/ecomclean/internal/tidy"
)

// ErrNoDataRows means the header band was found but no row follows it.
var ErrNoDataRows = errors.New("no data rows after header")

// ErrInvalidRecords means the built record set broke a tidy invariant.
var ErrInvalidRecords = errors.New("record set failed validation")

// Pipeline is one configured clean run. It holds no state between runs.
type Pipeline struct {
	cfg    *config.Config
	log    *zap.Logger
	loader *grid.Registry
}

// New creates a pipeline. cfg is not modified.
func New(cfg *config.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:    cfg,
		log:    logger,
		loader: grid.DefaultRegistry(cfg.Input.Sheet),
	}
}

// Inspection is the recovered schema of the input grid.
type Inspection struct {
	Rows       int
	Cols       int
	Resolution header.Resolution
	Pairs      []model.ColumnPair
	Conflicts  []header.Conflict
}

// Report describes a completed run.
type Report struct {
	RunID      string
	Input      string
	Output     string
	Format     string
	Inspection Inspection
	Stats      records.Stats
	Duplicates []records.Duplicate
	Records    []model.TidyRecord
}

// Inspect loads the input and resolves its header band without building
// records.
func (p *Pipeline) Inspect(ctx context.Context) (Inspection, error) {
	g, err := p.loader.LoadFile(p.cfg.Input.Path, p.cfg.Input.Format)
	if err != nil {
		return Inspection{}, err
	}
	if err := ctx.Err(); err != nil {
		return Inspection{}, err
	}
	return p.inspect(g)
}

func (p *Pipeline) inspect(g *grid.Grid) (Inspection, error) {
	ins := Inspection{Rows: g.NumRows(), Cols: g.NumCols()}

	res, err := header.Resolve(g, p.cfg.HeaderLayout())
	if err != nil {
		return ins, err
	}
	ins.Resolution = res
	ins.Pairs, ins.Conflicts = header.Pair(res.Labels)
	return ins, nil
}

// Run performs the transform and writes the tidy table. Any returned error
// is fatal and leaves the output path untouched.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	rep := &Report{
		RunID: uuid.NewString(),
		Input: p.cfg.Input.Path,
	}
	log := p.log.With(zap.String("run_id", rep.RunID))

	out, err := tidy.ResolveFormat(p.cfg.Output.Path, p.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	rep.Output = p.cfg.Output.Path
	rep.Format = out

	log.Debug("loading input", zap.String("path", p.cfg.Input.Path))
	g, err := p.loader.LoadFile(p.cfg.Input.Path, p.cfg.Input.Format)
	if err != nil {
		return nil, err
	}
	log.Debug("grid loaded", zap.Int("rows", g.NumRows()), zap.Int("cols", g.NumCols()))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ins, err := p.inspect(g)
	if err != nil {
		return nil, err
	}
	rep.Inspection = ins
	log.Debug("header resolved",
		zap.Int("year_row", ins.Resolution.YearRow+1),
		zap.Int("type_row", ins.Resolution.TypeRow+1),
		zap.Int("data_start", ins.Resolution.DataStart+1),
		zap.Ints("years", ins.Resolution.Years()))
	for _, c := range ins.Conflicts {
		log.Warn("duplicate header column ignored",
			zap.Int("year", c.Year),
			zap.Stringer("kind", c.Kind),
			zap.Int("kept_col", c.Kept+1),
			zap.Int("dropped_col", c.Dropped+1))
	}
	if ins.Resolution.DataStart >= g.NumRows() {
		return nil, fmt.Errorf("%w (header ends at row %d of %d)", ErrNoDataRows, ins.Resolution.TypeRow+1, g.NumRows())
	}

	res := records.Build(g, p.cfg.BuildParams(ins.Resolution.DataStart), ins.Pairs, sanitize.New(p.cfg.SuppressionTokens))
	rep.Stats = res.Stats
	rep.Duplicates = res.Duplicates
	rep.Records = res.Records
	for _, d := range res.Duplicates {
		log.Warn("duplicate industry-year dropped",
			zap.String("industry", d.Industry),
			zap.Int("year", d.Year),
			zap.Int("first_row", d.FirstRow),
			zap.Int("row", d.Row))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if errs := tidy.Validate(res.Records); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecords, strings.Join(msgs, "; "))
	}

	if err := tidy.WriteFile(p.cfg.Output.Path, out, res.Records); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	s := res.Stats
	log.Info("clean complete",
		zap.String("output", p.cfg.Output.Path),
		zap.Int("records", s.Records),
		zap.Int("rows_skipped", s.RowsSkipped),
		zap.Int("cells_empty", s.CellsEmpty),
		zap.Int("cells_suppressed", s.CellsSuppressed),
		zap.Int("cells_unparsable", s.CellsUnparsable),
		zap.Int("missing_total", s.MissingTotal),
		zap.Int("duplicates", s.Duplicates))
	return rep, nil
}

// Summary is the one-line diagnostic printed after a run.
func (r *Report) Summary() string {
	s := r.Stats
	return fmt.Sprintf("wrote %d records to %s (skipped: %d rows without identifier, %d empty, %d suppressed, %d unparsable; %d missing total; %d duplicates)",
		s.Records, r.Output, s.RowsSkipped, s.CellsEmpty, s.CellsSuppressed, s.CellsUnparsable, s.MissingTotal, s.Duplicates)
}
