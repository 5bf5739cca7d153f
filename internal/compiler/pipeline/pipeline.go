// Package pipeline runs a complete generation: it loads a snapshot and its
// hints, generates the bootstrap classes and writes them to disk together with
// the native image configuration.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/compiler/bootstrap"
	"github.com/spring-attic/spring-native-aot/internal/compiler/cache"
	"github.com/spring-attic/spring-native-aot/internal/compiler/generator"
	"github.com/spring-attic/spring-native-aot/internal/compiler/hints"
	"github.com/spring-attic/spring-native-aot/internal/compiler/nativex"
	"github.com/spring-attic/spring-native-aot/internal/compiler/processors"
	"github.com/spring-attic/spring-native-aot/internal/compiler/snapshot"
)

// Layout of the output directory
const (
	SourcesDir = "sources"
	NativeDir  = "resources/META-INF/native-image"
)

// Options configures a Pipeline
type Options struct {
	Snapshot  string
	Hints     []string
	OutputDir string
	Package   string
	ClassName string

	// Generator selects the beans. Processors left nil get the defaults
	// built from the hint index and FeatureFlags.
	Generator generator.Options
	// FeatureFlags maps bean types to native image options, nil means
	// processors.DefaultFeatureFlags
	FeatureFlags []processors.FeatureFlag
}

// Result describes one run
type Result struct {
	RunID       string
	Fingerprint string
	Beans       int
	Sources     []string
	NativeFiles []string
	Skipped     bool
	Duration    time.Duration
}

// Files returns every written path
func (r *Result) Files() []string {
	return append(append([]string(nil), r.Sources...), r.NativeFiles...)
}

// Pipeline generates the bootstrap code of a snapshot. Runs whose inputs did
// not change since the previous run into the same directory are skipped.
type Pipeline struct {
	options Options
	logger  *zap.Logger
	hasher  *cache.FileHasher
	runs    *cache.RunCache
}

// New creates a pipeline
func New(options Options, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		options: options,
		logger:  logger,
		hasher:  cache.NewFileHasher(),
		runs:    cache.NewRunCache(),
	}
}

// Inputs returns the files a run reads
func (p *Pipeline) Inputs() []string {
	return append([]string{p.options.Snapshot}, p.options.Hints...)
}

// Invalidate forces the next run to regenerate
func (p *Pipeline) Invalidate() {
	p.runs.Invalidate(p.options.OutputDir)
}

// Run generates the output. Unless force is set, nothing is written when the
// inputs match the previous run.
func (p *Pipeline) Run(ctx context.Context, force bool) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.New().String()}
	logger := p.logger.With(zap.String("run_id", result.RunID))

	fingerprint, err := p.fingerprint()
	if err != nil {
		return nil, err
	}
	result.Fingerprint = fingerprint
	if !force && p.runs.UpToDate(p.options.OutputDir, fingerprint) {
		logger.Debug("inputs unchanged, skipping generation")
		result.Skipped = true
		result.Duration = time.Since(start)
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := snapshot.Load(p.options.Snapshot)
	if err != nil {
		return nil, err
	}
	factory, err := snap.Build()
	if err != nil {
		return nil, err
	}
	index, err := hints.Load(p.options.Hints...)
	if err != nil {
		return nil, err
	}
	result.Beans = len(factory.BeanDefinitionNames())
	logger.Debug("inputs loaded",
		zap.String("snapshot", p.options.Snapshot),
		zap.Int("beans", result.Beans),
		zap.Int("hints", index.Len()))

	registry := nativex.NewRegistry()
	wc := bootstrap.NewWriterContext(p.options.Package, p.options.ClassName, factory.ClassPath(), registry)
	if err := generator.New(p.generatorOptions(index), logger).Generate(factory, wc); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result.Sources, err = writeSources(filepath.Join(p.options.OutputDir, SourcesDir), wc); err != nil {
		return nil, err
	}
	if result.NativeFiles, err = registry.WriteTo(filepath.Join(p.options.OutputDir, NativeDir)); err != nil {
		return nil, err
	}

	p.runs.Set(&cache.Run{
		ID:          result.RunID,
		Fingerprint: fingerprint,
		OutputDir:   p.options.OutputDir,
		Files:       result.Files(),
	})
	result.Duration = time.Since(start)
	logger.Info("generation complete",
		zap.Int("sources", len(result.Sources)),
		zap.Int("native_files", len(result.NativeFiles)),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (p *Pipeline) generatorOptions(index *hints.Index) generator.Options {
	options := p.options.Generator
	if options.BeanProcessors == nil {
		options.BeanProcessors = processors.Defaults(index, p.options.FeatureFlags)
	}
	if options.FactoryProcessors == nil {
		options.FactoryProcessors = processors.DefaultFactoryProcessors(p.options.FeatureFlags)
	}
	return options
}

// fingerprint covers the input files and the settings that change the output
func (p *Pipeline) fingerprint() (string, error) {
	g := p.options.Generator
	settings := []string{
		p.options.Package,
		p.options.ClassName,
		strings.Join(g.ExcludeTypes, ","),
		strings.Join(g.ExcludeNames, ","),
		strings.Join(g.InfrastructureBeans, ","),
		strings.Join(g.Attributes, ","),
	}
	for _, flag := range p.options.FeatureFlags {
		settings = append(settings, flag.Type+"="+strings.Join(flag.Options, ","))
	}
	return p.hasher.Fingerprint(p.Inputs(), settings...)
}

func writeSources(dir string, wc *bootstrap.WriterContext) ([]string, error) {
	var written []string
	for _, file := range wc.SourceFiles() {
		path := filepath.Join(dir, filepath.FromSlash(file.Path()))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(file.Render()), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
