package contact

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tanneryworkspace/website/internal/app/store/contactmsg"
	"github.com/tanneryworkspace/website/internal/app/system/mailer"
	"github.com/tanneryworkspace/website/internal/app/system/viewdata"
	"github.com/tanneryworkspace/website/internal/domain/models"
)

// Handler serves the contact form and records submissions.
type Handler struct {
	store    *contactstore.Store
	mail     *mailer.Mailer
	notifyTo string
	siteURL  string
	logger   *zap.Logger
}

// NewHandler creates a new contact Handler. mail may be nil when outbound
// email is not configured; submissions are still stored.
func NewHandler(store *contactstore.Store, mail *mailer.Mailer, notifyTo, siteURL string, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		mail:     mail,
		notifyTo: notifyTo,
		siteURL:  siteURL,
		logger:   logger,
	}
}

// Form holds the submitted field values so the template can re-render them
// after a validation failure.
type Form struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Body    string
}

// FormVM is the view model for the contact form page.
type FormVM struct {
	viewdata.BaseVM
	Form   Form
	Errors map[string]string
}

// SuccessVM is the view model for the submission confirmation page.
type SuccessVM struct {
	viewdata.BaseVM
	Reference string
}

// Routes returns a router with the contact endpoints.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ShowForm)
	r.Post("/", h.Submit)
	return r
}

// ShowForm renders an empty contact form.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	vm := FormVM{
		BaseVM: viewdata.New(r, "Contact Us", "Get in touch about desks, meeting rooms or events."),
	}
	if b := viewdata.SEO(); b != nil {
		vm.BaseVM = vm.WithSchema(b.WebPage("Contact Us", "Get in touch about desks, meeting rooms or events.", "/contact"))
	}
	templates.Render(w, r, "contact/form", vm)
}

// Submit validates the form, stores the enquiry, and sends notification
// email on a best-effort basis. A mail failure never loses the submission.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	form := Form{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Phone:   strings.TrimSpace(r.PostFormValue("phone")),
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Body:    strings.TrimSpace(r.PostFormValue("message")),
	}

	// Hidden field that only bots fill in. Pretend success so the bot
	// moves on, but store nothing.
	if r.PostFormValue("website") != "" {
		h.logger.Debug("contact form honeypot tripped")
		h.renderSuccess(w, r, newReference())
		return
	}

	errs := validate(form)
	if len(errs) > 0 {
		vm := FormVM{
			BaseVM: viewdata.New(r, "Contact Us", "Get in touch about desks, meeting rooms or events."),
			Form:   form,
			Errors: errs,
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "contact/form", vm)
		return
	}

	msg := models.ContactMessage{
		Reference: newReference(),
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Subject:   form.Subject,
		Body:      form.Body,
	}

	stored, err := h.store.Insert(r.Context(), msg)
	if err != nil {
		h.logger.Error("failed to store contact message", zap.Error(err))
		vm := FormVM{
			BaseVM: viewdata.New(r, "Contact Us", "Get in touch about desks, meeting rooms or events."),
			Form:   form,
			Errors: map[string]string{"form": "Something went wrong saving your message. Please try again, or email us directly."},
		}
		w.WriteHeader(http.StatusInternalServerError)
		templates.Render(w, r, "contact/form", vm)
		return
	}

	h.notify(stored)
	h.renderSuccess(w, r, stored.Reference)
}

func (h *Handler) renderSuccess(w http.ResponseWriter, r *http.Request, reference string) {
	vm := SuccessVM{
		BaseVM:    viewdata.New(r, "Message Sent", "Your enquiry has been received."),
		Reference: reference,
	}
	templates.Render(w, r, "contact/success", vm)
}

// notify sends the team notification and the visitor acknowledgement.
// Failures are logged and otherwise ignored.
func (h *Handler) notify(msg models.ContactMessage) {
	if h.mail == nil || h.notifyTo == "" {
		return
	}

	siteName := viewdata.SiteName()

	text, html := mailer.ContactNotificationEmail(mailer.ContactNotificationEmailData{
		SiteName:  siteName,
		Reference: msg.Reference,
		Name:      msg.Name,
		Email:     msg.Email,
		Phone:     msg.Phone,
		Interest:  msg.Subject,
		Message:   msg.Body,
		SentAt:    msg.CreatedAt.Format("2 Jan 2006 15:04 MST"),
	})
	if err := h.mail.Send(mailer.Email{
		To:       h.notifyTo,
		Subject:  "New enquiry " + msg.Reference + " from " + msg.Name,
		TextBody: text,
		HTMLBody: html,
	}); err != nil {
		h.logger.Warn("failed to send contact notification",
			zap.String("reference", msg.Reference),
			zap.Error(err))
	}

	text, html = mailer.ContactConfirmationEmail(mailer.ContactConfirmationEmailData{
		SiteName:  siteName,
		Reference: msg.Reference,
		Name:      msg.Name,
		SiteURL:   h.siteURL,
	})
	if err := h.mail.Send(mailer.Email{
		To:       msg.Email,
		Subject:  "We got your message (" + msg.Reference + ")",
		TextBody: text,
		HTMLBody: html,
	}); err != nil {
		h.logger.Warn("failed to send contact confirmation",
			zap.String("reference", msg.Reference),
			zap.Error(err))
	}
}

func validate(f Form) map[string]string {
	errs := make(map[string]string)
	if f.Name == "" {
		errs["name"] = "Please tell us your name."
	}
	switch {
	case f.Email == "":
		errs["email"] = "Please provide an email address so we can reply."
	case !strings.Contains(f.Email, "@") || strings.ContainsAny(f.Email, " \t"):
		errs["email"] = "That email address doesn't look right."
	}
	if f.Body == "" {
		errs["message"] = "Please include a message."
	}
	if len(f.Body) > 5000 {
		errs["message"] = "Please keep your message under 5000 characters."
	}
	return errs
}

// newReference generates a short code like TW-3F9A2C1B that reception can
// quote back when someone follows up by phone.
func newReference() string {
	id := uuid.New()
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return "TW-" + hex[:8]
}
