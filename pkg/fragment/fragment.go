// Package fragment holds the plumbing shared by handlers that answer with
// rendered template blocks: timed rendering, writing one or more fragments and
// turning render failures into 500 responses.
package fragment

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-fragments/internal/logging"
	"github.com/goliatone/go-fragments/internal/metrics"
	"github.com/goliatone/go-fragments/pkg/render/template"
)

// ContentType is the header value used for every fragment response.
const ContentType = "text/html; charset=utf-8"

// Renderer renders named blocks, reporting timings to a metrics recorder.
type Renderer struct {
	blocks   template.BlockRenderer
	recorder metrics.Recorder
}

// NewRenderer wraps blocks. recorder may be nil.
func NewRenderer(blocks template.BlockRenderer, recorder metrics.Recorder) *Renderer {
	return &Renderer{blocks: blocks, recorder: metrics.OrNoop(recorder)}
}

// Block renders block of name with data.
func (r *Renderer) Block(name, block string, data any) (string, error) {
	if r == nil || r.blocks == nil {
		return "", template.NewRenderError(template.ErrTemplateNotFound, name, block, errors.New("fragment: no renderer configured"))
	}
	start := time.Now()
	out, err := r.blocks.RenderBlock(name, block, data)
	r.recorder.ObserveRender(name, block, time.Since(start), err)
	return out, err
}

// Write sends the concatenated parts with status.
func Write(w http.ResponseWriter, status int, parts ...string) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(strings.Join(parts, "")))
}

// Fail logs err and answers 500 without exposing template details.
func Fail(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	attrs := []any{logging.Error(err)}
	if r != nil {
		attrs = append(attrs, logging.Method(r.Method), logging.Path(r.URL.Path))
	}
	var rerr *template.RenderError
	if errors.As(err, &rerr) {
		attrs = append(attrs, logging.Template(rerr.Template), logging.Block(rerr.Block))
	}
	logging.OrNop(logger).Error("render fragment failed", attrs...)

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
