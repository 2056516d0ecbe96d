package matching

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/http/access"
	"github.com/agungalvian/wjg/internal/http/respond"
	"github.com/agungalvian/wjg/internal/ledger"
	"github.com/agungalvian/wjg/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(access.Admin)
	r.Get("/rules", h.list)
	r.Get("/suggest", h.suggest)
	r.With(access.Write).Post("/rules", h.learn)
}

type ruleResponse struct {
	ID          uuid.UUID   `json:"id"`
	RawPattern  string      `json:"raw_pattern"`
	Fund        ledger.Fund `json:"fund,omitempty"`
	Category    string      `json:"category,omitempty"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func toResponse(rule *matching.Rule) ruleResponse {
	return ruleResponse{
		ID:          rule.ID,
		RawPattern:  rule.RawPattern,
		Fund:        rule.Fund,
		Category:    rule.Category,
		Description: rule.Description,
		CreatedAt:   rule.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]ruleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = toResponse(rule)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type suggestResponse struct {
	RawDescription string        `json:"raw_description"`
	Rule           *ruleResponse `json:"rule"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	rawDesc := r.URL.Query().Get("raw_description")
	if rawDesc == "" {
		http.Error(w, "raw_description query parameter is required", http.StatusBadRequest)
		return
	}

	rule, err := h.svc.Suggest(r.Context(), rawDesc)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := suggestResponse{RawDescription: rawDesc}
	if rule != nil {
		rr := toResponse(rule)
		resp.Rule = &rr
	}

	respond.JSON(w, http.StatusOK, resp)
}

type learnRequest struct {
	RawPattern  string `json:"raw_pattern"`
	Fund        string `json:"fund"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	fund, ok := ledger.ParseFund(req.Fund)
	if !ok {
		http.Error(w, "unknown fund", http.StatusBadRequest)
		return
	}

	rule := &matching.Rule{
		RawPattern:  req.RawPattern,
		Fund:        fund,
		Category:    req.Category,
		Description: req.Description,
	}

	if err := h.svc.Learn(r.Context(), rule); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rule))
}
