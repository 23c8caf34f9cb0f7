// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
	"github.com/reflekt-labs/reflekt/internal/lifecycle"
)

// CredentialDependencies defines the interface for credential operations.
type CredentialDependencies interface {
	SyncCredential(ctx context.Context, address model.Address) (lifecycle.Result, error)
	BurnCredential(ctx context.Context, address model.Address) (lifecycle.Result, error)
	GetCredential(ctx context.Context, address model.Address) (model.Credential, bool, error)
	EnqueueRefresh(ctx context.Context, address model.Address) (string, bool)
}

// CredentialHandler handles credential lifecycle requests.
type CredentialHandler struct {
	deps CredentialDependencies
}

// NewCredentialHandler creates a new credential handler.
func NewCredentialHandler(deps CredentialDependencies) *CredentialHandler {
	return &CredentialHandler{deps: deps}
}

// HandleSync handles POST /credentials/sync requests. With async set
// the request is queued and acknowledged; otherwise the transition
// completes before the response.
func (h *CredentialHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	const op = "api.sync_credential"
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

	if req.Async {
		requestID, accepted := h.deps.EnqueueRefresh(r.Context(), address)
		if !accepted {
			writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
			return
		}
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", RequestID: requestID})
		return
	}

	result, err := h.deps.SyncCredential(r.Context(), address)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	status := http.StatusOK
	if result.Outcome == lifecycle.OutcomeMinted {
		status = http.StatusCreated
	}
	writeJSON(w, status, resultResponse{
		Outcome:    string(result.Outcome),
		Credential: result.Credential,
	})
}

// HandleBurn handles POST /credentials/burn requests.
func (h *CredentialHandler) HandleBurn(w http.ResponseWriter, r *http.Request) {
	const op = "api.burn_credential"
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

	result, err := h.deps.BurnCredential(r.Context(), address)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{
		Outcome:    string(result.Outcome),
		Credential: result.Credential,
	})
}

// HandleGetCredential handles GET /credentials/{address} requests.
func (h *CredentialHandler) HandleGetCredential(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_credential"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/credentials/")
	address, ok := model.NormalizeAddress(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_address", NewKind(op, ErrBadRequest))
		return
	}

	cred, exists, err := h.deps.GetCredential(r.Context(), address)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, "credential_not_found", NewKind(op, ErrBadRequest))
		return
	}
	writeJSON(w, http.StatusOK, cred)
}
