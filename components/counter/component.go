package counter

import (
	"log/slog"
	"net/http"

	"github.com/goliatone/go-fragments/internal/logging"
	"github.com/goliatone/go-fragments/internal/metrics"
	counterstore "github.com/goliatone/go-fragments/pkg/counter"
	"github.com/goliatone/go-fragments/pkg/fragment"
	"github.com/goliatone/go-fragments/pkg/render/template"
)

// View is the render context of both counter blocks.
type View struct {
	Count uint64 `json:"count"`
}

// Component wires the counter store to its fragments.
type Component struct {
	opts     Options
	store    *counterstore.Store
	render   *fragment.Renderer
	logger   *slog.Logger
	recorder metrics.Recorder
}

// New builds the component. A nil store starts a fresh counter at 0.
func New(store *counterstore.Store, renderer template.BlockRenderer, fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	if store == nil {
		store = counterstore.New(0)
	}
	recorder := metrics.OrNoop(opts.Recorder)
	return &Component{
		opts:     opts,
		store:    store,
		render:   fragment.NewRenderer(renderer, recorder),
		logger:   logging.OrNop(opts.Logger),
		recorder: recorder,
	}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return c.opts
}

// Get renders the counter block with the current value.
func (c *Component) Get(w http.ResponseWriter, r *http.Request) {
	view := View{Count: c.store.Value()}

	out, err := c.render.Block(c.opts.Template, c.opts.CounterBlock, view)
	if err != nil {
		fragment.Fail(w, r, c.logger, err)
		return
	}
	fragment.Write(w, http.StatusOK, out)
}

// Increment bumps the counter and renders only the numeral.
func (c *Component) Increment(w http.ResponseWriter, r *http.Request) {
	view := View{Count: c.store.Increment()}
	c.recorder.IncCounter()
	c.logger.Debug("counter incremented", logging.Count(view.Count))

	out, err := c.render.Block(c.opts.Template, c.opts.CountBlock, view)
	if err != nil {
		fragment.Fail(w, r, c.logger, err)
		return
	}
	fragment.Write(w, http.StatusOK, out)
}
