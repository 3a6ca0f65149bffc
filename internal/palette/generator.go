package palette

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/glasbey/internal/cam02"
	"github.com/jmylchreest/glasbey/internal/colour"
	"github.com/jmylchreest/glasbey/internal/lut"
)

// Progress is invoked with the number of colours produced so far and the
// requested total. Nil is a no-op.
type Progress func(done, total int)

// Config describes one generation session. Base and BaseFile are mutually
// exclusive ways to supply the base palette; with neither, the session is
// seeded with a single white entry.
type Config struct {
	Base     []colour.RGB
	BaseFile string

	Constraints Constraints

	// Resolution of the candidate grid per channel; defaults to
	// lut.DefaultResolution.
	Resolution int

	// Table short-circuits the store when set (prebuilt or synthetic
	// tables). Otherwise Store is consulted, defaulting to a store in the
	// user cache directory.
	Table *lut.Table
	Store *lut.Store

	Logger        hclog.Logger
	BuildProgress Progress
	StepProgress  Progress
}

// Generator owns a palette generation session: one base palette, one
// constraint set, one growing palette. It is not safe for concurrent use.
type Generator struct {
	cfg      Config
	logger   hclog.Logger
	base     []colour.RGB
	selector *Selector
	palette  []cam02.JAB // base palette first, then selections, append-only
}

// NewGenerator resolves the base palette and validates the configuration.
// The candidate table is not touched until the first Generate call.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.BaseFile != "" && len(cfg.Base) > 0 {
		return nil, configErrorf("base palette given both as file %q and as literal list", cfg.BaseFile)
	}
	cfg.Constraints = cfg.Constraints.withDefaults()
	if err := cfg.Constraints.Validate(); err != nil {
		return nil, err
	}
	if cfg.Resolution == 0 {
		if cfg.Table != nil {
			cfg.Resolution = cfg.Table.Resolution()
		} else {
			cfg.Resolution = lut.DefaultResolution
		}
	}
	if cfg.Table != nil && cfg.Table.Resolution() != cfg.Resolution {
		return nil, configErrorf("supplied table has resolution %d, config wants %d", cfg.Table.Resolution(), cfg.Resolution)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	base := cfg.Base
	if cfg.BaseFile != "" {
		loaded, err := colour.LoadPaletteFile(cfg.BaseFile)
		if err != nil {
			return nil, err
		}
		base = loaded
	}
	if len(base) == 0 {
		base = []colour.RGB{{R: 255, G: 255, B: 255}}
	}

	g := &Generator{cfg: cfg, logger: logger.Named("palette"), base: base}
	g.palette = make([]cam02.JAB, len(base))
	for i, c := range base {
		g.palette[i] = colour.ToUCS(c)
	}
	return g, nil
}

// Base returns the resolved base palette, including the implicit white
// default.
func (g *Generator) Base() []colour.RGB {
	return append([]colour.RGB(nil), g.base...)
}

// Generate grows the session palette to exactly size colours (the base
// palette counts toward size) and returns their CAM02-UCS coordinates. A
// size not exceeding what was already generated returns the cached prefix
// without further work.
func (g *Generator) Generate(ctx context.Context, size int) ([]cam02.JAB, error) {
	if size < 0 {
		return nil, configErrorf("palette size %d is negative", size)
	}
	if size == 0 {
		// No extension requested: hand back the base palette untouched.
		return append([]cam02.JAB(nil), g.palette[:len(g.base)]...), nil
	}
	if size <= len(g.palette) {
		return append([]cam02.JAB(nil), g.palette[:size]...), nil
	}

	if g.selector == nil {
		sel, err := g.startSession(ctx)
		if err != nil {
			return nil, err
		}
		g.selector = sel
	}

	for len(g.palette) < size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_, chosen, err := g.selector.Next()
		if err != nil {
			var ice *InsufficientCandidatesError
			if errors.As(err, &ice) {
				ice.Requested = size
			}
			return nil, err
		}
		g.palette = append(g.palette, chosen)
		if g.cfg.StepProgress != nil {
			g.cfg.StepProgress(len(g.palette), size)
		}
	}
	g.logger.Debug("palette generated", "size", len(g.palette), "remaining", g.selector.Remaining())
	return append([]cam02.JAB(nil), g.palette...), nil
}

func (g *Generator) startSession(ctx context.Context) (*Selector, error) {
	table := g.cfg.Table
	if table == nil {
		store := g.cfg.Store
		if store == nil {
			store = lut.NewStore("", g.logger)
		}
		t, err := store.LoadOrBuild(ctx, g.cfg.Resolution, lut.Progress(g.cfg.BuildProgress))
		if err != nil {
			return nil, fmt.Errorf("candidate table: %w", err)
		}
		table = t
	}

	mask, err := ComputeMask(table.Coords(), g.cfg.Constraints)
	if err != nil {
		return nil, err
	}
	sel := NewSelector(table.Coords(), mask, g.palette)
	g.logger.Debug("session started",
		"candidates", table.Len(),
		"eligible", sel.Eligible(),
		"base", len(g.base))
	return sel, nil
}

// Bytes converts coordinates to 8-bit RGB triplets, rounded and clamped.
func Bytes(p []cam02.JAB) []colour.RGB {
	out := make([]colour.RGB, len(p))
	for i, c := range p {
		out[i] = colour.UCSToRGB255(c)
	}
	return out
}

// Floats converts coordinates to normalised RGB components as produced by
// the perceptual conversion, unclamped.
func Floats(p []cam02.JAB) [][3]float64 {
	out := make([][3]float64, len(p))
	for i, c := range p {
		r, gg, b := colour.UCSToRGB(c)
		out[i] = [3]float64{r, gg, b}
	}
	return out
}
