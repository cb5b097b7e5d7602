package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mdineen/outgo/internal/auth"
	"github.com/mdineen/outgo/internal/expense"
	"github.com/mdineen/outgo/internal/money"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createExpenseRequest struct {
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Cost        json.Number `json:"cost"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	acct, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.svc.List(r.Context(), acct.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toListResponse(items)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	acct, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	draft, err := expense.ValidateDraft(req.Description, req.Date, req.Cost.String())
	if err != nil {
		writeValidationError(w, err)
		return
	}

	created, err := h.svc.Create(r.Context(), acct.ID, draft)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(created)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateExpenseRequest struct {
	Description *string      `json:"description,omitempty"`
	Date        *string      `json:"date,omitempty"`
	Cost        *json.Number `json:"cost,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	acct, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch, err := toPatch(req)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	if err := h.svc.Update(r.Context(), acct.ID, id, patch); err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	acct, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.SoftDelete(r.Context(), acct.ID, id); err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toPatch validates the provided fields the same way ValidateDraft does for
// new expenses; absent fields stay nil and are left untouched by the store.
func toPatch(req updateExpenseRequest) (expense.Patch, error) {
	var patch expense.Patch

	if req.Description != nil {
		if *req.Description == "" {
			return patch, &expense.ValidationError{
				Code:    expense.CodeDescriptionRequired,
				Message: "Description is required",
			}
		}

		patch.Description = req.Description
	}

	if req.Date != nil {
		patch.Date = req.Date
	}

	if req.Cost != nil {
		cents, err := money.ParseAmount(req.Cost.String())
		if err != nil {
			return patch, &expense.ValidationError{
				Code:    expense.CodeInvalidCost,
				Message: "Enter a valid non-negative cost",
			}
		}

		patch.Cost = &cents
	}

	return patch, nil
}

type validationErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeValidationError(w http.ResponseWriter, err error) {
	var ve *expense.ValidationError
	if !errors.As(err, &ve) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)

	resp := validationErrorResponse{Code: string(ve.Code), Message: ve.Message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
