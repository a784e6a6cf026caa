package generate

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vango-dev/routegen/internal/config"
	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/internal/logger"
	"github.com/vango-dev/routegen/internal/metrics"
	"github.com/vango-dev/routegen/pkg/models"
	"github.com/vango-dev/routegen/pkg/routepath"
	"github.com/vango-dev/routegen/pkg/router"
)

const tracerName = "github.com/vango-dev/routegen/internal/generate"

// Status is the outcome of a run.
type Status int

const (
	// StatusSuccess means both files were written.
	StatusSuccess Status = iota

	// StatusRecoverable means the output could not be written. The next
	// run may succeed without changes to the project.
	StatusRecoverable

	// StatusFatal means the input is invalid.
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusRecoverable:
		return "recoverable"
	default:
		return "fatal"
	}
}

// Result describes a run.
type Result struct {
	Status Status

	// Files are the absolute paths written, in write order.
	Files []string

	// Routes is the number of route nodes, nested ones included.
	Routes int

	// ModuleRefs is the number of per-route state module references.
	ModuleRefs int

	// Globals is the number of global state modules.
	Globals int

	Warnings []router.Warning
	Duration time.Duration
}

// Options configures a Generator.
type Options struct {
	Logger *zap.Logger

	// Tracer defaults to the global tracer provider's tracer.
	Tracer trace.Tracer

	// Metrics may be nil.
	Metrics *metrics.Metrics
}

// Generator runs the load, rewrite and write pipeline for one project.
// Concurrent calls to Run are serialized.
type Generator struct {
	cfg     *config.Config
	log     *zap.Logger
	tracer  trace.Tracer
	metrics *metrics.Metrics

	mu sync.Mutex
}

// New creates a generator for cfg.
func New(cfg *config.Config, opts Options) *Generator {
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(tracerName)
	}
	return &Generator{
		cfg:     cfg,
		log:     logger.OrNop(opts.Logger),
		tracer:  opts.Tracer,
		metrics: opts.Metrics,
	}
}

// artifacts are the rendered files, held in memory until the output
// directory has been recreated.
type artifacts struct {
	manifest  []byte
	bootstrap []byte
}

// Run performs one generation pass. The returned Result is never nil; its
// Status tells a failed run with bad input apart from one that could not
// write its output.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := time.Now()
	ctx, span := g.tracer.Start(ctx, "generate", trace.WithAttributes(
		attribute.String("routegen.routes_file", g.cfg.RoutesPath()),
		attribute.String("routegen.output_dir", g.cfg.OutputPath()),
	))
	defer span.End()

	result := &Result{}
	err := g.run(ctx, result)
	result.Duration = time.Since(start)

	switch {
	case err == nil:
		result.Status = StatusSuccess
	case errors.IsRecoverable(err):
		result.Status = StatusRecoverable
	default:
		result.Status = StatusFatal
	}

	span.SetAttributes(
		attribute.String("routegen.status", result.Status.String()),
		attribute.Int("routegen.routes", result.Routes),
		attribute.Int("routegen.module_refs", result.ModuleRefs),
		attribute.Int("routegen.globals", result.Globals),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.log.Error("generation failed",
			zap.String("status", result.Status.String()),
			zap.Duration("duration", result.Duration),
			zap.Error(err))
	} else {
		g.log.Info("routes generated",
			zap.Int("routes", result.Routes),
			zap.Int("module_refs", result.ModuleRefs),
			zap.Int("globals", result.Globals),
			zap.Duration("duration", result.Duration))
	}
	g.metrics.ObserveRun(result.Status.String(), result.Duration, result.Routes, result.ModuleRefs, result.Globals)

	return result, err
}

func (g *Generator) run(ctx context.Context, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	routesFile := g.cfg.RoutesPath()
	nodes, err := router.LoadFile(routesFile)
	if err != nil {
		return err
	}
	warnings, err := router.Validate(nodes)
	if err != nil {
		return withFile(err, routesFile)
	}
	result.Warnings = warnings
	for _, w := range warnings {
		g.log.Warn(w.Message,
			zap.String("type", string(w.Type)),
			zap.String("node", w.Node),
			zap.String("path", w.Path))
	}

	out, err := g.synthesize(ctx, nodes, result)
	if err != nil {
		return err
	}

	// Nothing below may be interrupted half way.
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.write(ctx, out, result)
}

// synthesize rewrites the tree and renders both files without touching
// the output directory.
func (g *Generator) synthesize(ctx context.Context, nodes []router.RouteNode, result *Result) (*artifacts, error) {
	_, span := g.tracer.Start(ctx, "rewrite")
	defer span.End()

	outputDir := g.cfg.OutputPath()
	discoverer := models.NewDiscoverer(models.Options{
		DirName:    g.cfg.Models.Dir,
		Extensions: g.cfg.Models.Extensions,
		Boundary:   g.cfg.BoundaryName(),
	})

	rewriter := router.NewRewriter(g.cfg.PagesPath(), outputDir, discoverer, router.ChunkNames{
		Pages:  g.cfg.Chunks.Pages,
		Models: g.cfg.Chunks.Models,
	})
	routes, err := rewriter.Rewrite(nodes)
	if err != nil {
		span.RecordError(err)
		return nil, withFile(err, g.cfg.RoutesPath())
	}
	result.Routes = router.CountRoutes(routes)
	result.ModuleRefs = router.CountModelRefs(routes)

	globalPaths, err := discoverer.DiscoverIn(g.cfg.SrcPath())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	globals := make([]router.ModuleRef, 0, len(globalPaths))
	for _, abs := range globalPaths {
		spec, err := routepath.Specifier(outputDir, abs)
		if err != nil {
			return nil, errors.New("E140").WithLocation(abs, "").Wrap(err)
		}
		globals = append(globals, router.ModuleRef{Abs: abs, Specifier: spec})
	}
	result.Globals = len(globals)

	gen := router.NewGenerator(routes, globals, router.GeneratorOptions{
		ChunkComment: g.cfg.Chunks.Comment,
	})
	manifest, err := gen.GenerateConfig()
	if err != nil {
		return nil, withFile(err, g.cfg.RoutesPath())
	}
	bootstrap, err := gen.GenerateBootstrap()
	if err != nil {
		return nil, err
	}

	g.log.Debug("route tree rewritten",
		zap.Int("routes", result.Routes),
		zap.Strings("globals", globalPaths))
	return &artifacts{manifest: manifest, bootstrap: bootstrap}, nil
}

// write recreates the output directory and writes the manifest, then the
// bootstrap module.
func (g *Generator) write(ctx context.Context, out *artifacts, result *Result) error {
	_, span := g.tracer.Start(ctx, "write")
	defer span.End()

	dir := g.cfg.OutputPath()
	if err := os.RemoveAll(dir); err != nil {
		return errors.New("E150").WithLocation(dir, "").Wrap(err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.New("E150").WithLocation(dir, "").Wrap(err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{g.cfg.ConfigFile(), out.manifest},
		{g.cfg.RouterFile(), out.bootstrap},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.data, 0644); err != nil {
			return errors.New("E151").WithLocation(path, "").Wrap(err)
		}
		result.Files = append(result.Files, path)
		g.log.Debug("wrote file", zap.String("path", path), zap.Int("bytes", len(f.data)))
	}
	span.SetAttributes(attribute.Int("routegen.files", len(result.Files)))
	return nil
}

func withFile(err error, file string) error {
	var e *errors.Error
	if errors.As(err, &e) && e.Location != nil && e.Location.File == "" {
		e.Location.File = file
	}
	return err
}
