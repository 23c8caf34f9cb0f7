// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/reflekt-labs/reflekt/internal/app"
	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// ReputationDependencies defines the interface for score computation.
type ReputationDependencies interface {
	Assess(ctx context.Context, address model.Address) (app.Assessment, error)
}

// ReputationHandler handles reputation computation requests.
type ReputationHandler struct {
	deps ReputationDependencies
}

// NewReputationHandler creates a new reputation handler.
func NewReputationHandler(deps ReputationDependencies) *ReputationHandler {
	return &ReputationHandler{deps: deps}
}

// HandleComputeReputation handles POST /reputation requests. The score
// is computed fresh; credential state is untouched.
func (h *ReputationHandler) HandleComputeReputation(w http.ResponseWriter, r *http.Request) {
	const op = "api.compute_reputation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	address, ok := model.NormalizeAddress(req.Address)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_address", NewKind(op, ErrBadRequest))
		return
	}

	assessment, err := h.deps.Assess(r.Context(), address)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}
