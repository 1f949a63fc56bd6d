// Package batch generates many character variants on a bounded worker pool
// and records what each one produced.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"survivor-meshgen/internal/config"
	"survivor-meshgen/internal/export"
	"survivor-meshgen/internal/humanoid"
	"survivor-meshgen/internal/logging"
	"survivor-meshgen/internal/naming"
	"survivor-meshgen/internal/placeholder"
	"survivor-meshgen/internal/preview"
	"survivor-meshgen/internal/raster"
	"survivor-meshgen/internal/scene"
)

// ProgressInterval is how often Run logs throughput.
var ProgressInterval = 2 * time.Second

// Result is the outcome of one variant.
type Result struct {
	Name     string
	Kind     string
	Output   string // model path, empty on failure
	Preview  string // preview path, empty when disabled or failed
	Vertices int
	Faces    int
	Success  bool
	Error    string
	Duration time.Duration
}

// Run processes variants with at most cfg.Workers in flight. Every variant
// gets its own scene, so workers share nothing but cfg. Per-variant
// failures land in the results; the returned error is only set when ctx
// ends the run early, in which case unstarted variants report ctx's error.
func Run(ctx context.Context, cfg config.Config, variants []config.Variant, log *zap.Logger) ([]Result, error) {
	log = logging.OrNop(log)
	total := len(variants)
	results := make([]Result, total)
	started := make([]bool, total)
	var processed atomic.Int64

	start := time.Now()
	done := make(chan struct{})
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		ticker := time.NewTicker(ProgressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					log.Info("batch progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("per_sec", float64(p)/time.Since(start).Seconds()))
				}
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers))
	for i, v := range variants {
		if gctx.Err() != nil {
			break
		}
		started[i] = true
		g.Go(func() error {
			results[i] = Process(cfg, v, log)
			processed.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	close(done)
	<-reporterDone

	if err := ctx.Err(); err != nil {
		for i, v := range variants {
			if !started[i] {
				results[i] = Result{Name: cfg.VariantName(v), Kind: v.Kind, Error: err.Error()}
			}
		}
		return results, err
	}

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	log.Info("batch finished",
		zap.Int("total", total),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))
	return results, nil
}

// Process builds one variant into a fresh scene, exports it and, when
// enabled, renders its preview next to the model.
func Process(cfg config.Config, v config.Variant, log *zap.Logger) Result {
	log = logging.OrNop(log)
	start := time.Now()
	res := Result{Name: cfg.VariantName(v), Kind: v.Kind}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Duration = time.Since(start)
		log.Warn("variant failed", zap.String("name", res.Name), zap.Error(err))
		return res
	}

	scn := scene.New()
	var err error
	switch v.Kind {
	case config.KindHumanoid:
		_, err = humanoid.Build(scn, cfg.VariantHumanoid(v), log)
	case config.KindPlaceholder:
		_, err = placeholder.Build(scn, cfg.VariantPlaceholder(v), log)
	default:
		err = fmt.Errorf("batch: unknown variant kind %q", v.Kind)
	}
	if err != nil {
		return fail(err)
	}
	for _, obj := range scn.OfKind(scene.KindMesh) {
		res.Vertices += len(obj.Mesh.Verts)
		res.Faces += len(obj.Mesh.Faces)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fail(fmt.Errorf("batch: %w", err))
	}
	out := filepath.Join(cfg.OutputDir, naming.AssetFile(res.Name, cfg.Format))
	opts := export.Options{UpAxis: cfg.UpAxis, ApplyModifiers: cfg.ApplyModifiers}
	if err := export.Write(out, scn, opts); err != nil {
		return fail(err)
	}
	res.Output = out

	if cfg.Preview.Enabled {
		img := preview.Render(scn, raster.Options{
			Size:        cfg.Preview.Size,
			Supersample: cfg.Preview.Supersample,
			Yaw:         cfg.Preview.Yaw,
			Pitch:       cfg.Preview.Pitch,
		})
		pv := strings.TrimSuffix(out, filepath.Ext(out)) + "." + cfg.Preview.Format
		if err := preview.Save(pv, img); err != nil {
			return fail(err)
		}
		res.Preview = pv
	}

	res.Success = true
	res.Duration = time.Since(start)
	log.Debug("variant done",
		zap.String("name", res.Name),
		zap.String("output", res.Output),
		zap.Duration("took", res.Duration))
	return res
}
