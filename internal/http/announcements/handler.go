package announcements

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/announcement"
	"github.com/agungalvian/wjg/internal/http/access"
	"github.com/agungalvian/wjg/internal/http/respond"
)

type Handler struct {
	svc *announcement.Service
}

func NewHandler(svc *announcement.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes lists for every signed-in user; posting and removing need write access.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)

	r.Group(func(r chi.Router) {
		r.Use(access.Write)
		r.Post("/", h.create)
		r.Delete("/{id}", h.delete)
	})
}

type announcementResponse struct {
	ID        uuid.UUID             `json:"id"`
	Title     string                `json:"title"`
	Content   string                `json:"content"`
	Category  announcement.Category `json:"category"`
	Image     string                `json:"image,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

func toResponse(a *announcement.Announcement) announcementResponse {
	return announcementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Category:  a.Category,
		Image:     a.Image,
		CreatedAt: a.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]announcementResponse, len(list))
	for i, a := range list {
		resp[i] = toResponse(a)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	a := &announcement.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		Category: announcement.Category(req.Category),
		Image:    req.Image,
	}

	if err := h.svc.Post(r.Context(), a); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(a))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
