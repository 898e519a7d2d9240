package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"campaign-gen/internal/brief"
	"campaign-gen/internal/prompt"
	"campaign-gen/internal/ratio"
)

var (
	ErrConfig    = errors.New("pipeline is not configured")
	ErrAllFailed = errors.New("every generation attempt failed")
)

type Generator interface {
	CheckCredentials() error
	Authenticate(ctx context.Context) (string, error)
	UploadReference(ctx context.Context, token, path string) (string, error)
	GenerateImage(ctx context.Context, token, prompt string, r ratio.Ratio, referenceID string) ([]byte, error)
}

type AssetLocator interface {
	FindProductAssets(product string) []string
	AssetExists(campaign, product string, r ratio.Ratio) bool
}

type ImageWriter interface {
	Save(campaign, product string, r ratio.Ratio, data []byte) (string, error)
}

type Translator interface {
	Lookup(key, lang string) (string, bool)
}

type Options struct {
	Ratios     []ratio.Ratio
	BriefsDir  string
	Generator  Generator
	Assets     AssetLocator
	Writer     ImageWriter
	Translator Translator
	Logger     *slog.Logger
}

type Pipeline struct {
	ratios     []ratio.Ratio
	briefsDir  string
	generator  Generator
	assets     AssetLocator
	writer     ImageWriter
	translator Translator
	logger     *slog.Logger
}

func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	briefsDir := opts.BriefsDir
	if briefsDir == "" {
		briefsDir = brief.DefaultDir
	}
	return &Pipeline{
		ratios:     append([]ratio.Ratio(nil), opts.Ratios...),
		briefsDir:  briefsDir,
		generator:  opts.Generator,
		assets:     opts.Assets,
		writer:     opts.Writer,
		translator: opts.Translator,
		logger:     logger,
	}
}

// Run processes every (product, ratio) pair of the brief at briefPath.
// Configuration, authentication and brief errors abort the run; item
// failures are recorded in the Result and the loop continues. Run returns
// ErrAllFailed alongside the Result when nothing succeeded and at least one
// item failed.
func (p *Pipeline) Run(ctx context.Context, briefPath, lang string) (Result, error) {
	var res Result

	if err := p.checkConfig(); err != nil {
		return res, err
	}

	p.logger.Info("authenticating")
	token, err := p.generator.Authenticate(ctx)
	if err != nil {
		return res, fmt.Errorf("authenticate: %w", err)
	}

	path := brief.Resolve(briefPath, p.briefsDir)
	b, err := brief.Load(path)
	if err != nil {
		return res, fmt.Errorf("load brief: %w", err)
	}
	if err := b.Validate(); err != nil {
		return res, fmt.Errorf("brief %s: %w", path, err)
	}
	res.Campaign = b.CampaignName

	logger := p.logger.With("campaign", b.CampaignName)
	logger.Info("brief loaded", "path", path, "products", len(b.Products), "ratios", len(p.ratios), "lang", lang)

	message := p.translate(logger, b.CampaignMessage, lang)

	for _, product := range b.Products {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := p.runProduct(ctx, logger, token, b, product, message, &res); err != nil {
			return res, err
		}
	}

	return res, p.summarize(logger, res)
}

func (p *Pipeline) checkConfig() error {
	if len(p.ratios) == 0 {
		return fmt.Errorf("%w: no aspect ratios configured", ErrConfig)
	}
	if p.generator == nil || p.assets == nil || p.writer == nil {
		return fmt.Errorf("%w: generator, asset locator and writer are required", ErrConfig)
	}
	if err := p.generator.CheckCredentials(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}

func (p *Pipeline) translate(logger *slog.Logger, key, lang string) string {
	if p.translator == nil {
		return key
	}
	if msg, ok := p.translator.Lookup(key, lang); ok {
		return msg
	}
	logger.Warn("no translation for campaign message, using it verbatim", "key", key, "lang", lang)
	return key
}

func (p *Pipeline) runProduct(ctx context.Context, logger *slog.Logger, token string, b brief.Brief, product brief.Product, message string, res *Result) error {
	logger = logger.With("product", product.Name)
	logger.Info("processing product")

	referenceID := p.uploadReference(ctx, logger, token, product.Name)

	for _, r := range p.ratios {
		if err := ctx.Err(); err != nil {
			return err
		}
		item := p.runItem(ctx, logger.With("ratio", r.String()), token, b, product, r, message, referenceID)
		res.record(item)
	}
	return nil
}

// uploadReference returns the upload id of the product's first asset, or ""
// when there is none or the upload failed.
func (p *Pipeline) uploadReference(ctx context.Context, logger *slog.Logger, token, product string) string {
	found := p.assets.FindProductAssets(product)
	if len(found) == 0 {
		logger.Info("no reference assets, generating from text only")
		return ""
	}

	id, err := p.generator.UploadReference(ctx, token, found[0])
	if err != nil {
		logger.Warn("reference upload failed, generating from text only", "asset", found[0], "err", err)
		return ""
	}
	logger.Info("reference uploaded", "asset", found[0], "assets_found", len(found))
	return id
}

func (p *Pipeline) runItem(ctx context.Context, logger *slog.Logger, token string, b brief.Brief, product brief.Product, r ratio.Ratio, message, referenceID string) ItemResult {
	item := ItemResult{Product: product.Name, Ratio: r, State: StatePending}

	if p.assets.AssetExists(b.CampaignName, product.Name, r) {
		logger.Info("output exists, skipping")
		item.State = StateSkipped
		return item
	}

	text, err := prompt.Compose(product, b, message)
	if err != nil {
		logger.Error("prompt composition failed", "err", err)
		item.State, item.Err = StatePromptFailed, err
		return item
	}

	logger.Info("generating image", "with_reference", referenceID != "")
	data, err := p.generator.GenerateImage(ctx, token, text, r, referenceID)
	if err != nil && ctx.Err() != nil {
		logger.Warn("image generation interrupted", "err", err)
		item.State, item.Err = StateInterrupted, err
		return item
	}
	if err != nil {
		logger.Error("image generation failed", "err", err)
		item.State, item.Err = StateGenerationFailed, err
		return item
	}

	path, err := p.writer.Save(b.CampaignName, product.Name, r, data)
	if err != nil {
		logger.Error("saving image failed", "err", err)
		item.State, item.Err = StateSaveFailed, err
		return item
	}

	logger.Info("image saved", "path", path, "bytes", len(data))
	item.State, item.Path = StateSucceeded, path
	return item
}

func (p *Pipeline) summarize(logger *slog.Logger, res Result) error {
	attrs := []any{"succeeded", res.Succeeded, "failed", res.Failed, "skipped", res.Skipped}
	switch {
	case res.Failed > 0 && res.Succeeded == 0:
		logger.Error("run finished, nothing was generated", attrs...)
		return ErrAllFailed
	case res.Failed > 0:
		logger.Warn("run finished with failures", attrs...)
	default:
		logger.Info("run finished", attrs...)
	}
	return nil
}
