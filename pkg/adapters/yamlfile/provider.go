package yamlfile

import (
	"context"
	"log/slog"

	"github.com/fenwick-games/parley/internal/logging"
	"github.com/fenwick-games/parley/pkg/dialog"
)

// Provider implements ports.ContentProvider over a Loader, caching trees on
// first use. Custom actions are logged and dropped: file-based content has
// no game code attached; wrap the provider when handlers are needed.
type Provider struct {
	loader   *Loader
	mainName string
	logger   *slog.Logger
	cache    map[string]*dialog.Tree
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithProviderLogger sets the structured logger.
func WithProviderLogger(logger *slog.Logger) ProviderOption {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProvider creates a provider whose main tree is mainName.
func NewProvider(loader *Loader, mainName string, opts ...ProviderOption) *Provider {
	p := &Provider{
		loader:   loader,
		mainName: mainName,
		logger:   logging.NewNop(),
		cache:    make(map[string]*dialog.Tree),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MainTree returns the default conversation.
func (p *Provider) MainTree() *dialog.Tree { return p.Tree(p.mainName) }

// Tree loads (or returns the cached) named conversation, nil on any load
// failure.
func (p *Provider) Tree(name string) *dialog.Tree {
	if name == "" {
		return nil
	}
	if t, ok := p.cache[name]; ok {
		return t
	}
	t, err := p.loader.LoadTree(name)
	if err != nil {
		p.logger.Warn("failed to load tree", "tree", name, "err", err)
		return nil
	}
	p.cache[name] = t
	return t
}

// HasValidContent reports whether the main tree loads and has a start node.
func (p *Provider) HasValidContent() bool {
	t := p.MainTree()
	return t != nil && t.IsValid()
}

// SessionStarted implements ports.ContentProvider.
func (p *Provider) SessionStarted() {
	p.logger.Debug("session started", "tree", p.mainName)
}

// SessionEnded implements ports.ContentProvider.
func (p *Provider) SessionEnded() {
	p.logger.Debug("session ended", "tree", p.mainName)
}

// HandleCustomAction implements ports.ContentProvider.
func (p *Provider) HandleCustomAction(ctx context.Context, actionID string) {
	p.logger.Info("custom action", "action", actionID)
}
