package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agungalvian/wjg/internal/dashboard"
	"github.com/agungalvian/wjg/internal/http/access"
	"github.com/agungalvian/wjg/internal/http/respond"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	id, _ := access.IdentityFrom(r.Context())

	sum, err := h.svc.Summary(r.Context(), dashboard.Viewer{ID: id.UserID, Role: id.Role})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, sum)
}
