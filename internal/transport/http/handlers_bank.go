package httptransport

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/backend/models"
	"backoffice/internal/session"
	"backoffice/internal/verification"
	"backoffice/internal/verification/workflow"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/httputil"
)

// VerificationService is the reviewer surface of the verification workflow.
type VerificationService interface {
	LoadWorklist(ctx context.Context, token string) (*workflow.Worklist, error)
	ClientsByStatus(ctx context.Context, token string, status verification.Status) ([]models.Client, error)
	Submit(ctx context.Context, token string, wl *workflow.Worklist, clientID int64, d verification.Decision) (*models.Client, error)
	ChangeStatus(ctx context.Context, token string, clientID int64, target verification.Status, notes string) (*models.Client, error)
	Transitions(ctx context.Context, token string, clientID int64) (*workflow.TransitionHint, error)
}

// PaymentService is the bank approval surface for client payments.
type PaymentService interface {
	Pending(ctx context.Context, token string) ([]models.Payment, error)
	Approve(ctx context.Context, token string, paymentID int64, notes string) (*models.Payment, error)
	Reject(ctx context.Context, token string, paymentID int64, notes string) (*models.Payment, error)
}

type worklistResponse struct {
	Filter  workflow.Filter         `json:"filter"`
	Counts  map[workflow.Filter]int `json:"counts"`
	Clients []workflow.Entry        `json:"clients"`
}

type statusChangeRequest struct {
	VerificationStatus verification.Status `json:"verificationStatus"`
	Notes              string              `json:"notes"`
}

type paymentDecisionRequest struct {
	Notes string `json:"notes"`
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "id must be a positive integer")
	}
	return id, nil
}

func bearer(ctx context.Context) string {
	return session.FromContext(ctx).Token
}

func (h *Handler) handleWorklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := workflow.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	wl, err := h.verifications.LoadWorklist(ctx, bearer(ctx))
	if err != nil {
		h.logFailure(ctx, "failed to load verification worklist", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, worklistResponse{
		Filter:  filter,
		Counts:  wl.Counts(),
		Clients: wl.Filter(filter),
	})
}

// handleClientsByStatus lists clients in the status named by ?status=.
func (h *Handler) handleClientsByStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := verification.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	clients, err := h.verifications.ClientsByStatus(ctx, bearer(ctx), status)
	if err != nil {
		h.logFailure(ctx, "failed to list clients by status", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, clients)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var d verification.Decision
	if err := httputil.DecodeJSON(r, &d); err != nil {
		httputil.WriteError(w, err)
		return
	}
	client, err := h.verifications.Submit(ctx, bearer(ctx), nil, id, d)
	if err != nil {
		h.logFailure(ctx, "verification decision failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, client)
}

func (h *Handler) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req statusChangeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	client, err := h.verifications.ChangeStatus(ctx, bearer(ctx), id, req.VerificationStatus, req.Notes)
	if err != nil {
		h.logFailure(ctx, "status change failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, client)
}

func (h *Handler) handleTransitions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	hint, err := h.verifications.Transitions(ctx, bearer(ctx), id)
	if err != nil {
		h.logFailure(ctx, "failed to load transitions", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, hint)
}

func (h *Handler) handlePendingPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payments, err := h.payments.Pending(ctx, bearer(ctx))
	if err != nil {
		h.logFailure(ctx, "failed to list pending payments", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, payments)
}

func (h *Handler) handleApprovePayment(w http.ResponseWriter, r *http.Request) {
	h.decidePayment(w, r, h.payments.Approve)
}

func (h *Handler) handleRejectPayment(w http.ResponseWriter, r *http.Request) {
	h.decidePayment(w, r, h.payments.Reject)
}

type paymentDecider func(ctx context.Context, token string, paymentID int64, notes string) (*models.Payment, error)

func (h *Handler) decidePayment(w http.ResponseWriter, r *http.Request, decide paymentDecider) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req paymentDecisionRequest
	// An approval may come without a body.
	if r.ContentLength != 0 {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	p, err := decide(ctx, bearer(ctx), id, req.Notes)
	if err != nil {
		h.logFailure(ctx, "payment decision failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}
