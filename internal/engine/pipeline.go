// Package engine turns source assets into a packed gang-sheet layout: the
// MaxRects packer, the preparation and packing pipeline, the genetic order
// search, scenario comparison and layout checks.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/piwi3910/GangSheet/internal/imageprep"
	"github.com/piwi3910/GangSheet/internal/model"
)

// ErrUnknownAlgorithm is returned when PackSettings names an algorithm the
// pipeline does not implement.
var ErrUnknownAlgorithm = errors.New("unknown packing algorithm")

const (
	defaultPrepBatch = 8
	defaultPackBatch = 16

	// prepWeight is the share of the progress bar spent decoding and trimming.
	prepWeight = 0.35
	// searchWeight is the share of the packing phase spent in the genetic search.
	searchWeight = 0.85
)

// ProgressFunc receives the fraction of the run completed so far, in [0,1].
type ProgressFunc func(fraction float64)

// Pipeline decodes, trims, scales and packs assets onto one canvas. It holds
// configuration only, so one Pipeline may serve any number of sequential
// runs.
type Pipeline struct {
	Settings model.PackSettings
	Genetic  GeneticConfig

	decoder   imageprep.Decoder
	logger    *slog.Logger
	progress  ProgressFunc
	yield     func()
	prepBatch int
	packBatch int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDecoder replaces the default file decoder.
func WithDecoder(d imageprep.Decoder) Option {
	return func(p *Pipeline) {
		if d != nil {
			p.decoder = d
		}
	}
}

// WithLogger sets the logger. Runs are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithProgress registers a progress callback, invoked at batch boundaries.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) {
		p.progress = fn
	}
}

// WithYield replaces runtime.Gosched as the function called at every batch
// boundary, e.g. to hand control back to a host event loop.
func WithYield(fn func()) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.yield = fn
		}
	}
}

// WithBatchSize sets how many assets are prepared and how many items are
// packed between two yields. Non-positive values keep the default.
func WithBatchSize(prep, pack int) Option {
	return func(p *Pipeline) {
		if prep > 0 {
			p.prepBatch = prep
		}
		if pack > 0 {
			p.packBatch = pack
		}
	}
}

// WithGeneticConfig overrides the genetic search parameters.
func WithGeneticConfig(cfg GeneticConfig) Option {
	return func(p *Pipeline) {
		p.Genetic = cfg
	}
}

// New creates a pipeline for settings with the default decoder, a discard
// logger and runtime.Gosched as yield, then applies opts.
func New(settings model.PackSettings, opts ...Option) *Pipeline {
	p := &Pipeline{
		Settings:  settings,
		Genetic:   DefaultGeneticConfig(),
		decoder:   imageprep.NewFileDecoder(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		yield:     runtime.Gosched,
		prepBatch: defaultPrepBatch,
		packBatch: defaultPackBatch,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run prepares every asset and packs the survivors onto canvas. Assets that
// cannot be decoded or placed end up in PackResult.Failed, so every asset is
// accounted for exactly once. An invalid canvas or algorithm is returned as
// an error before any asset is touched.
func (p *Pipeline) Run(assets []model.SourceAsset, canvas model.CanvasSpec) (model.PackResult, error) {
	if err := canvas.Validate(); err != nil {
		return model.PackResult{}, fmt.Errorf("cannot pack: %w", err)
	}
	algorithm, ok := model.ParseAlgorithm(string(p.Settings.Algorithm))
	if !ok {
		return model.PackResult{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, p.Settings.Algorithm)
	}

	start := time.Now()
	p.logger.Info("pack run started",
		"assets", len(assets),
		"canvas_width_px", canvas.WidthPx,
		"canvas_height_px", canvas.HeightPx,
		"padding_px", canvas.PaddingPx,
		"algorithm", algorithm,
	)

	result := model.PackResult{
		Canvas: canvas,
		Packed: make([]model.PackedItem, 0, len(assets)),
		Failed: []model.FailureRecord{},
	}
	tracker := &progressTracker{fn: p.progress}

	items := p.prepare(assets, &result, tracker)
	if algorithm == model.AlgorithmGenetic {
		p.packGenetic(items, canvas, &result, tracker)
	} else {
		p.packGreedy(items, canvas, &result, tracker)
	}
	tracker.report(1)

	p.logger.Info("pack run finished",
		"packed", len(result.Packed),
		"failed", len(result.Failed),
		"used_length_px", result.UsedLengthPx(),
		"efficiency", fmt.Sprintf("%.1f%%", result.Efficiency()),
		"duration", time.Since(start),
	)
	return result, nil
}

// prepare decodes and trims every asset in input order.
func (p *Pipeline) prepare(assets []model.SourceAsset, result *model.PackResult, tracker *progressTracker) []model.PreparedItem {
	items := make([]model.PreparedItem, 0, len(assets))
	n := len(assets)
	for i, asset := range assets {
		img, err := p.decoder.Decode(asset)
		if err != nil {
			p.logger.Warn("asset could not be decoded", "asset", asset.ID, "label", asset.Label, "error", err)
			result.Failed = append(result.Failed, model.FailureRecord{
				AssetID: asset.ID,
				Label:   asset.Label,
				Reason:  model.ReasonDecodeError,
				Detail:  err.Error(),
			})
		} else {
			item := imageprep.Prepare(asset, img, p.Settings.Trim, p.Settings.AlphaThreshold)
			if item.Trimmed {
				b := img.Bounds()
				p.logger.Debug("trimmed transparent margin", "asset", asset.ID,
					"from", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
					"to", fmt.Sprintf("%dx%d", item.Width, item.Height))
			}
			items = append(items, item)
		}

		if (i+1)%p.prepBatch == 0 || i == n-1 {
			tracker.report(prepWeight * float64(i+1) / float64(n))
			p.yield()
		}
	}
	return items
}

// scale applies the fit-to-width rule to one item.
func (p *Pipeline) scale(item model.PreparedItem, canvas model.CanvasSpec) model.PreparedItem {
	if !p.Settings.AutoScale {
		return item
	}
	scaled := imageprep.ScaleToFit(item, canvas.WidthPx-canvas.PaddingPx)
	if scaled.Scaled {
		p.logger.Debug("scaled to fit canvas width", "asset", item.ID,
			"from", fmt.Sprintf("%dx%d", item.Width, item.Height),
			"to", fmt.Sprintf("%dx%d", scaled.Width, scaled.Height))
	}
	return scaled
}

// packGreedy packs items in sorter order, letting the packer pick the
// orientation.
func (p *Pipeline) packGreedy(items []model.PreparedItem, canvas model.CanvasSpec, result *model.PackResult, tracker *progressTracker) {
	SortForPacking(items)
	packer := NewMaxRectsPacker(canvas.WidthPx, canvas.HeightPx)

	n := len(items)
	for i := range items {
		item := p.scale(items[i], canvas)
		p.commit(packer, canvas, item, OrientAny, result)

		if (i+1)%p.packBatch == 0 || i == n-1 {
			tracker.report(prepWeight + (1-prepWeight)*float64(i+1)/float64(n))
			p.yield()
		}
	}
}

// packGenetic scales every item up front, searches for a good order and
// orientation, then replays the winner through a fresh packer.
func (p *Pipeline) packGenetic(items []model.PreparedItem, canvas model.CanvasSpec, result *model.PackResult, tracker *progressTracker) {
	for i := range items {
		items[i] = p.scale(items[i], canvas)
	}
	SortForPacking(items)

	searchSpan := (1 - prepWeight) * searchWeight
	sequence := OptimizeOrderGenetic(items, canvas, p.Genetic, func(done, total int) {
		tracker.report(prepWeight + searchSpan*float64(done)/float64(total))
		p.yield()
	})

	packer := NewMaxRectsPacker(canvas.WidthPx, canvas.HeightPx)
	n := len(sequence)
	for i, s := range sequence {
		p.commit(packer, canvas, s.Item, s.Orientation, result)

		if (i+1)%p.packBatch == 0 || i == n-1 {
			tracker.report(prepWeight + searchSpan + (1-prepWeight-searchSpan)*float64(i+1)/float64(n))
			p.yield()
		}
	}
}

// commit places one item and records the outcome.
func (p *Pipeline) commit(packer *MaxRectsPacker, canvas model.CanvasSpec, item model.PreparedItem, orient Orientation, result *model.PackResult) {
	placement, ok := place(packer, canvas, item, orient)
	if !ok {
		p.logger.Warn("no space left for item", "asset", item.ID, "label", item.Label,
			"size", fmt.Sprintf("%dx%d", item.Width, item.Height))
		result.Failed = append(result.Failed, model.FailureRecord{
			AssetID: item.ID,
			Label:   item.Label,
			Reason:  model.ReasonNoSpace,
			Detail:  noSpaceDetail(packer, canvas, item),
		})
		return
	}
	result.Packed = append(result.Packed, packedItem(item, placement))
}

// Orientation is a per-item placement preference.
type Orientation int

const (
	OrientAny      Orientation = iota // Let the packer score both orientations
	OrientUpright                     // Try upright first, rotated as fallback
	OrientRotated                     // Try rotated first, upright as fallback
)

// noSpaceDetail tells an item that can never fit apart from one that came
// too late for the remaining free space.
func noSpaceDetail(packer *MaxRectsPacker, canvas model.CanvasSpec, item model.PreparedItem) string {
	cw, ch := packer.Size()
	w, h := item.Width+canvas.PaddingPx, item.Height+canvas.PaddingPx
	fitsEmpty := (w <= cw && h <= ch) || (canvas.AllowRotation && h <= cw && w <= ch)
	if !fitsEmpty {
		return fmt.Sprintf("%dx%d px with padding is larger than the %dx%d px canvas", w, h, cw, ch)
	}
	return fmt.Sprintf("%dx%d px does not fit the remaining free space", item.Width, item.Height)
}

// place reserves space for item, inflating the request by the canvas padding
// on both axes. The returned position is the top-left of the reserved
// rectangle, which is where the image itself is drawn, so the gap sits on the
// right and bottom of every image: items touching the canvas's left or top
// edge get no margin there. Rotated is relative to the item's own width and
// height.
func place(packer *MaxRectsPacker, canvas model.CanvasSpec, item model.PreparedItem, orient Orientation) (model.Placement, bool) {
	w := item.Width + canvas.PaddingPx
	h := item.Height + canvas.PaddingPx
	if !packer.Fits(w, h, canvas.AllowRotation) {
		return model.Placement{}, false
	}

	if !canvas.AllowRotation || orient == OrientAny || w == h {
		return packer.TryPlace(w, h, canvas.AllowRotation)
	}

	first, second := [2]int{w, h}, [2]int{h, w}
	if orient == OrientRotated {
		first, second = second, first
	}
	if pl, ok := packer.TryPlace(first[0], first[1], false); ok {
		pl.Rotated = orient == OrientRotated
		return pl, true
	}
	if pl, ok := packer.TryPlace(second[0], second[1], false); ok {
		pl.Rotated = orient != OrientRotated
		return pl, true
	}
	return model.Placement{}, false
}

func packedItem(item model.PreparedItem, pl model.Placement) model.PackedItem {
	w, h := item.Width, item.Height
	if pl.Rotated {
		w, h = h, w
	}
	return model.PackedItem{
		ID:             item.ID,
		Label:          item.Label,
		X:              pl.X,
		Y:              pl.Y,
		Width:          w,
		Height:         h,
		Rotated:        pl.Rotated,
		OriginalWidth:  item.OriginalWidth,
		OriginalHeight: item.OriginalHeight,
		Image:          item.Image,
	}
}

// progressTracker forwards progress clamped to [0,1] and never lets it move
// backwards.
type progressTracker struct {
	fn   ProgressFunc
	last float64
}

func (t *progressTracker) report(v float64) {
	if v > 1 {
		v = 1
	}
	if v < t.last {
		v = t.last
	}
	t.last = v
	if t.fn != nil {
		t.fn(v)
	}
}
