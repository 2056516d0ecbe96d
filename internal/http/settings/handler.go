package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agungalvian/wjg/internal/http/access"
	"github.com/agungalvian/wjg/internal/http/respond"
	"github.com/agungalvian/wjg/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes exposes the settings to every signed-in user, residents need the dues
// and the bank account to pay.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.With(access.Write).Put("/", h.update)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Get(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, st)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req settings.Settings
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := h.svc.Update(r.Context(), req); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, req)
}
