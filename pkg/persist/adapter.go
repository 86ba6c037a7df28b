package persist

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pegplanner/pkg/catalog"
	perrors "github.com/matzehuels/pegplanner/pkg/errors"
	"github.com/matzehuels/pegplanner/pkg/layout"
	"github.com/matzehuels/pegplanner/pkg/observability"
	"github.com/matzehuels/pegplanner/pkg/store"
)

// DefaultKey is the store key layouts are saved under.
const DefaultKey = "pegboard_layout_v5"

// Option configures an [Adapter].
type Option func(*Adapter)

// WithKey sets the store key.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithLogger sets the logger used for load warnings and save failures.
func WithLogger(logger *log.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLayoutOptions passes options to every layout the adapter creates.
func WithLayoutOptions(opts ...layout.Option) Option {
	return func(a *Adapter) { a.layoutOpts = append(a.layoutOpts, opts...) }
}

// Adapter loads and saves one layout under a fixed key.
type Adapter struct {
	store      store.Store
	cat        *catalog.Catalog
	key        string
	logger     *log.Logger
	layoutOpts []layout.Option
	lastHash   string
}

// New returns an adapter over s that resolves ids against cat.
func New(s store.Store, cat *catalog.Catalog, opts ...Option) *Adapter {
	a := &Adapter{
		store:  s,
		cat:    cat,
		key:    DefaultKey,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the store key.
func (a *Adapter) Key() string { return a.key }

// Load reads the stored layout. It never fails: a miss, a store error or an
// unparseable payload all yield the default layout, and the report says
// which happened.
func (a *Adapter) Load(ctx context.Context) (*layout.Layout, LoadReport) {
	start := time.Now()
	data, hit, err := a.store.Get(ctx, a.key)
	observability.Store().OnLoad(ctx, a.key, hit, len(data), time.Since(start), err)

	if err != nil {
		a.logger.Warn("could not read saved layout, starting empty", "key", a.key, "err", err)
		return a.fresh(), LoadReport{Source: SourceRecovered, Err: err}
	}
	if !hit {
		a.logger.Debug("no saved layout", "key", a.key)
		return a.fresh(), LoadReport{Source: SourceDefault}
	}

	l, rep, err := Decode(data, a.cat, a.layoutOpts...)
	if err != nil {
		a.logger.Warn("saved layout is unreadable, starting empty", "key", a.key, "err", err)
		return a.fresh(), LoadReport{Source: SourceRecovered, Err: err}
	}
	rep.Source = SourceStored
	for _, w := range rep.Warnings {
		a.logger.Warn(w, "key", a.key)
	}
	if len(rep.Filled) > 0 {
		a.logger.Debug("filled defaults", "fields", rep.Filled)
	}
	if encoded, err := Encode(l); err == nil && len(rep.Filled) == 0 && rep.Dropped == 0 {
		a.lastHash = store.Hash(encoded)
	}
	a.logger.Debug("loaded layout", "key", a.key, "items", l.Len(), "board", l.Board().Size.ID)
	return l, rep
}

// Save writes l unless its encoding matches the last write.
func (a *Adapter) Save(ctx context.Context, l *layout.Layout) error {
	start := time.Now()
	data, err := Encode(l)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "encode layout")
	}
	hash := store.Hash(data)
	if hash == a.lastHash {
		observability.Store().OnSave(ctx, a.key, len(data), true, time.Since(start), nil)
		return nil
	}
	err = a.store.Set(ctx, a.key, data)
	observability.Store().OnSave(ctx, a.key, len(data), false, time.Since(start), err)
	if err != nil {
		a.logger.Error("could not save layout", "key", a.key, "err", err)
		return err
	}
	a.lastHash = hash
	a.logger.Debug("saved layout", "key", a.key, "items", l.Len(), "bytes", len(data))
	return nil
}

// Reset deletes the stored layout.
func (a *Adapter) Reset(ctx context.Context) error {
	if err := a.store.Delete(ctx, a.key); err != nil {
		return err
	}
	a.lastHash = ""
	return nil
}

func (a *Adapter) fresh() *layout.Layout {
	return layout.New(a.cat, a.layoutOpts...)
}
