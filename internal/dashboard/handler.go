package dashboard

import (
	"context"
	"net/http"

	"github.com/mwicaksana/construction-management/internal/auth"
	"github.com/mwicaksana/construction-management/internal/permissions"
	"github.com/mwicaksana/construction-management/internal/transport"
	"github.com/mwicaksana/construction-management/pkg/logger"
)

type ServiceAPI interface {
	GetSummary(ctx context.Context, set permissions.CapabilitySet) (*Summary, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.Service.GetSummary(r.Context(), user.CapabilitySet)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}
