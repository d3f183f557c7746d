package contacts

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-fragments/internal/logging"
	"github.com/goliatone/go-fragments/internal/metrics"
	contactstore "github.com/goliatone/go-fragments/pkg/contacts"
	"github.com/goliatone/go-fragments/pkg/form"
	"github.com/goliatone/go-fragments/pkg/fragment"
	"github.com/goliatone/go-fragments/pkg/render/template"
)

// ListView feeds the contacts block: newest contact first, plus the form.
type ListView struct {
	Contacts []contactstore.Contact `json:"contacts"`
	FormData form.State             `json:"formdata"`
}

// FormView feeds the form block.
type FormView struct {
	FormData form.State `json:"formdata"`
}

// OOBView feeds the out-of-band list item block.
type OOBView struct {
	Contact contactstore.Contact `json:"contact"`
}

// Component wires the contact store to its fragments.
type Component struct {
	opts     Options
	store    *contactstore.Store
	render   *fragment.Renderer
	logger   *slog.Logger
	recorder metrics.Recorder
}

// New builds the component. A nil store starts an empty collection.
func New(store *contactstore.Store, renderer template.BlockRenderer, fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	if store == nil {
		store = contactstore.NewStore()
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

// List renders the contact list, newest first, with an empty form.
func (c *Component) List(w http.ResponseWriter, r *http.Request) {
	view := ListView{
		Contacts: contactstore.Reversed(c.store.List()),
		FormData: form.Empty(),
	}

	out, err := c.render.Block(c.opts.Template, c.opts.ListBlock, view)
	if err != nil {
		fragment.Fail(w, r, c.logger, err)
		return
	}
	fragment.Write(w, http.StatusOK, out)
}

// Create validates the submission and appends it unless the email is taken.
func (c *Component) Create(w http.ResponseWriter, r *http.Request) {
	sub, state, err := form.ParseContact(r)
	if err != nil {
		c.logger.Warn("contact form unreadable", logging.Error(err), logging.Path(r.URL.Path))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if state.HasErrors() {
		c.recorder.IncContactSubmission(metrics.SubmissionInvalid)
		c.writeForm(w, r, http.StatusUnprocessableEntity, state)
		return
	}

	contact, err := c.store.InsertIfAbsent(sub.Name, sub.Email)
	if err != nil {
		var dup *contactstore.DuplicateEmailError
		if !errors.As(err, &dup) {
			fragment.Fail(w, r, c.logger, err)
			return
		}
		c.recorder.IncContactSubmission(metrics.SubmissionDuplicate)
		c.logger.Info("contact rejected: email already exists")
		c.writeForm(w, r, dup.StatusCode(), form.Rejected(sub, form.FieldEmail, form.MsgEmailExists))
		return
	}

	c.recorder.IncContactSubmission(metrics.SubmissionAccepted)
	c.logger.Info("contact created", logging.ContactID(contact.ID))

	formHTML, err := c.render.Block(c.opts.Template, c.opts.FormBlock, FormView{FormData: form.Empty()})
	if err != nil {
		fragment.Fail(w, r, c.logger, err)
		return
	}
	itemHTML, err := c.render.Block(c.opts.Template, c.opts.OOBBlock, OOBView{Contact: contact})
	if err != nil {
		fragment.Fail(w, r, c.logger, err)
		return
	}
	fragment.Write(w, http.StatusOK, formHTML, itemHTML)
}

// Delete is routed so clients get a definite answer, but removing contacts is
// not supported.
func (c *Component) Delete(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusNotImplemented), http.StatusNotImplemented)
}

func (c *Component) writeForm(w http.ResponseWriter, r *http.Request, status int, state form.State) {
	out, err := c.render.Block(c.opts.Template, c.opts.FormBlock, FormView{FormData: state})
	if err != nil {
		fragment.Fail(w, r, c.logger, err)
		return
	}
	fragment.Write(w, status, out)
}
