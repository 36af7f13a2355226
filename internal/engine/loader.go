package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wcidash/internal/canon"
	"wcidash/internal/tabular"
)

// Sources locates the metrics table and one attribution matrix per mode.
type Sources struct {
	Metrics  tabular.Source
	Matrices map[Mode]tabular.Source
}

// Load reads every source concurrently and assembles a Dataset.
// Any read or validation failure aborts the load; nothing partial is returned.
func Load(ctx context.Context, src Sources, logger zerolog.Logger) (*Dataset, error) {
	start := time.Now()
	logger.Info().Int("matrices", len(src.Matrices)).Msg("loading dataset")

	// A. Read sources in parallel
	var (
		metricsRaw *tabular.Table
		mu         sync.Mutex
		raw        = make(map[Mode]*tabular.Table, len(src.Matrices))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := tabular.Open(gctx, src.Metrics)
		if err != nil {
			return fmt.Errorf("metrics table: %w", err)
		}
		metricsRaw = t
		return nil
	})
	for mode, s := range src.Matrices {
		g.Go(func() error {
			if s.Name == "" {
				s.Name = string(mode)
			}
			t, err := tabular.Open(gctx, s)
			if err != nil {
				return fmt.Errorf("matrix %q: %w", mode, err)
			}
			mu.Lock()
			raw[mode] = t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// B. Validate and index
	d, err := NewDataset(metricsRaw, raw)
	if err != nil {
		return nil, err
	}

	for _, mode := range sortedModes(d.Modes) {
		md := d.Modes[mode]
		for _, c := range md.Index.Collisions {
			logger.Warn().
				Str("mode", string(mode)).
				Str("key", c.Key).
				Str("shadowed", md.Matrix.Keys[c.Overwritten]).
				Str("winner", md.Matrix.Keys[c.Winner]).
				Msg("duplicate canonical row key; earlier row unreachable by name")
		}
		logger.Info().
			Str("mode", string(mode)).
			Int("rows", md.Matrix.NumRows()).
			Int("columns", md.Matrix.NumCols()).
			Int("key_collisions", md.Index.CollisionCount()).
			Msg("matrix indexed")
	}

	logger.Info().
		Int("countries", len(d.Metrics.Rows)).
		Dur("elapsed", time.Since(start)).
		Msg("load complete")
	return d, nil
}

// NewDataset validates already-read tables and builds every index.
func NewDataset(metrics *tabular.Table, matrices map[Mode]*tabular.Table) (*Dataset, error) {
	mt, err := NewMetricsTable(metrics)
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		Metrics:  mt,
		Modes:    make(map[Mode]*ModeData, len(matrices)),
		LoadedAt: time.Now(),
	}
	for mode, t := range matrices {
		md, err := BuildModeData(t)
		if err != nil {
			return nil, fmt.Errorf("matrix %q: %w", mode, err)
		}
		d.Modes[mode] = md
	}
	return d, nil
}

// BuildModeData cleans a raw matrix table, coerces it to numbers and
// indexes it. The key column is "Country".
func BuildModeData(t *tabular.Table) (*ModeData, error) {
	m, err := ToNumeric(cleanMatrixTable(t), ColCountry)
	if err != nil {
		return nil, err
	}
	return &ModeData{Matrix: m, Index: BuildIndex(m)}, nil
}

// withCleanHeader returns a shallow copy of t whose headers are cleaned.
// Rows are shared with t.
func withCleanHeader(t *tabular.Table) *tabular.Table {
	out := &tabular.Table{Name: t.Name, Header: make([]string, len(t.Header)), Rows: t.Rows}
	for i, h := range t.Header {
		out.Header[i] = canon.Clean(h)
	}
	return out
}

// cleanMatrixTable returns a copy of t with cleaned headers and key values.
func cleanMatrixTable(t *tabular.Table) *tabular.Table {
	out := withCleanHeader(t)
	out.Rows = make([][]string, len(t.Rows))

	key := out.Column(ColCountry)
	for i, r := range t.Rows {
		row := append([]string(nil), r...)
		if key >= 0 && key < len(row) {
			row[key] = canon.Clean(row[key])
		}
		out.Rows[i] = row
	}
	return out
}

func sortedModes(m map[Mode]*ModeData) []Mode {
	out := make([]Mode, 0, len(m))
	for mode := range m {
		out = append(out, mode)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
