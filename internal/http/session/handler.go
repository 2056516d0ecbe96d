package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/auth"
	"github.com/agungalvian/wjg/internal/http/access"
	"github.com/agungalvian/wjg/internal/http/respond"
	"github.com/agungalvian/wjg/internal/user"
)

type Handler struct {
	users  *user.Service
	tokens *auth.JWTManager
}

func NewHandler(users *user.Service, tokens *auth.JWTManager) *Handler {
	return &Handler{users: users, tokens: tokens}
}

// Routes registers login publicly and the rest behind authn.
func (h *Handler) Routes(r chi.Router, authn func(http.Handler) http.Handler) {
	r.Post("/login", h.login)
	r.With(authn).Post("/password", h.changePassword)
	r.With(authn).Get("/me", h.me)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID          uuid.UUID      `json:"id"`
	Username    string         `json:"username"`
	Role        user.Role      `json:"role"`
	FullName    string         `json:"full_name"`
	HouseNumber string         `json:"house_number,omitempty"`
	Occupancy   user.Occupancy `json:"occupancy"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		FullName:    u.FullName,
		HouseNumber: u.HouseNumber,
		Occupancy:   u.Occupancy,
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	token, err := h.tokens.Generate(u)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{Token: token, User: toUserResponse(u)})
}

type passwordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	id, _ := access.IdentityFrom(r.Context())

	var req passwordRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := h.users.ChangePassword(r.Context(), id.UserID, req.OldPassword, req.NewPassword); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id, _ := access.IdentityFrom(r.Context())

	u, err := h.users.Get(r.Context(), id.UserID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toUserResponse(u))
}
