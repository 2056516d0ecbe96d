package users

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/http/access"
	"github.com/agungalvian/wjg/internal/http/respond"
	"github.com/agungalvian/wjg/internal/user"
)

type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(access.Admin).Get("/", h.list)
	r.With(access.Admin).Get("/{id}", h.get)
	r.With(access.Write).Post("/", h.create)
	r.With(access.Write).Put("/{id}", h.update)
	r.With(access.Write).Delete("/{id}", h.delete)
}

type userResponse struct {
	ID          uuid.UUID      `json:"id"`
	Username    string         `json:"username"`
	Role        user.Role      `json:"role"`
	FullName    string         `json:"full_name"`
	HouseNumber string         `json:"house_number"`
	Phone       string         `json:"phone"`
	Occupancy   user.Occupancy `json:"occupancy"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toResponse(u *user.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		FullName:    u.FullName,
		HouseNumber: u.HouseNumber,
		Phone:       u.Phone,
		Occupancy:   u.Occupancy,
		CreatedAt:   u.CreatedAt,
	}
}

func toResponseList(us []*user.User) []userResponse {
	resp := make([]userResponse, len(us))
	for i, u := range us {
		resp[i] = toResponse(u)
	}

	return resp
}

type userRequest struct {
	Username    string         `json:"username"`
	Password    string         `json:"password"`
	Role        user.Role      `json:"role"`
	FullName    string         `json:"full_name"`
	HouseNumber string         `json:"house_number"`
	Phone       string         `json:"phone"`
	Occupancy   user.Occupancy `json:"occupancy"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := user.ListFilter{Search: r.URL.Query().Get("search")}

	if s := r.URL.Query().Get("role"); s != "" {
		role := user.Role(s)
		if !role.Valid() {
			http.Error(w, "invalid role", http.StatusBadRequest)
			return
		}

		filter.Role = &role
	}

	us, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(us))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(u))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	u, err := h.svc.Create(r.Context(), user.CreateParams{
		Username:    req.Username,
		Password:    req.Password,
		Role:        req.Role,
		FullName:    req.FullName,
		HouseNumber: req.HouseNumber,
		Phone:       req.Phone,
		Occupancy:   req.Occupancy,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(u))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req userRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	u, err := h.svc.Update(r.Context(), id, user.UpdateParams{
		Username:    req.Username,
		Password:    req.Password,
		Role:        req.Role,
		FullName:    req.FullName,
		HouseNumber: req.HouseNumber,
		Phone:       req.Phone,
		Occupancy:   req.Occupancy,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(u))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	actor, _ := access.IdentityFrom(r.Context())

	if err := h.svc.Delete(r.Context(), actor.UserID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
