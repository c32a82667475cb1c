package materialspec

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator/v10"

	"github.com/mwicaksana/construction-management/internal/auth"
	"github.com/mwicaksana/construction-management/internal/permissions"
	"github.com/mwicaksana/construction-management/internal/transport"
	"github.com/mwicaksana/construction-management/pkg/logger"
)

type ServiceAPI interface {
	SubmitSpec(projectID int64, dto SubmitSpecDTO, userID int64) (*Spec, error)
	GetSpec(id int64, set permissions.CapabilitySet) (*Spec, error)
	ListSpecs(projectID int64, status string, set permissions.CapabilitySet, limit, offset int) ([]*Spec, error)
	ListPending(set permissions.CapabilitySet, limit, offset int) ([]*Spec, error)
	ApproveSpec(ctx context.Context, id int64, reviewerID int64, note string, set permissions.CapabilitySet) (*Spec, error)
	RejectSpec(ctx context.Context, id int64, reviewerID int64, note string, set permissions.CapabilitySet) (*Spec, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	validate *validator.Validate
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
		validate:    validator.New(),
	}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var dto SubmitSpecDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	spec, err := h.Service.SubmitSpec(projectID, dto, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, spec)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid spec id")
		return
	}

	spec, err := h.Service.GetSpec(id, user.CapabilitySet)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, spec)
}

func (h *Handler) ListByProject(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	limit, offset := paginationParams(r)
	specs, err := h.Service.ListSpecs(projectID, r.URL.Query().Get("status"), user.CapabilitySet, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"specs": specs})
}

func (h *Handler) PendingQueue(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := paginationParams(r)
	specs, err := h.Service.ListPending(user.CapabilitySet, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"specs": specs})
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.ApproveSpec)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.RejectSpec)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, op func(context.Context, int64, int64, string, permissions.CapabilitySet) (*Spec, error)) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid spec id")
		return
	}

	var dto ReviewDTO
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.validate.Struct(dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	spec, err := op(r.Context(), id, user.ID, dto.Note, user.CapabilitySet)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, spec)
}

func paginationParams(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
