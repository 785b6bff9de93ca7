package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	activationerrors "dttracker/contexts/creator-marketing/activation-service/domain/errors"
	activationhttp "dttracker/contexts/creator-marketing/activation-service/transport/http"
)

func (s *Server) handleCreateActivation(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeActivationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req activationhttp.CreateActivationRequest
	if !s.decodeJSON(w, r, &req, writeActivationError) {
		return
	}

	resp, err := s.activation.Handler.CreateActivationHandler(
		r.Context(),
		userID,
		r.Header.Get("Idempotency-Key"),
		req,
	)
	if err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListActivations(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeActivationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	query := r.URL.Query()
	resp, err := s.activation.Handler.ListActivationsHandler(
		r.Context(),
		userID,
		query.Get("status"),
		query.Get("visibility"),
	)
	if err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetActivation(w http.ResponseWriter, r *http.Request) {
	resp, err := s.activation.Handler.GetActivationHandler(r.Context(), r.PathValue("activation_id"))
	if err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangeActivationStatus(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeActivationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req activationhttp.StatusActionRequest
	if !s.decodeJSON(w, r, &req, writeActivationError) {
		return
	}

	if err := s.activation.Handler.ChangeStatusHandler(
		r.Context(),
		userID,
		r.PathValue("activation_id"),
		req.Action,
	); err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleCreateInvitations(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeActivationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req activationhttp.CreateInvitationsRequest
	if !s.decodeJSON(w, r, &req, writeActivationError) {
		return
	}

	resp, err := s.activation.Handler.CreateInvitationsHandler(
		r.Context(),
		userID,
		r.Header.Get("Idempotency-Key"),
		r.PathValue("activation_id"),
		req,
	)
	if err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListInvitations(w http.ResponseWriter, r *http.Request) {
	resp, err := s.activation.Handler.ListInvitationsHandler(r.Context(), r.PathValue("activation_id"))
	if err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := s.activation.Handler.BudgetSummaryHandler(r.Context(), r.PathValue("activation_id"))
	if err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMyInvitations(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeActivationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.activation.Handler.ListMyInvitationsHandler(r.Context(), userID)
	if err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMyNotifications(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeActivationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeActivationError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.activation.Handler.ListMyNotificationsHandler(r.Context(), userID, limit)
	if err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeActivationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.activation.Handler.AcceptInvitationHandler(r.Context(), userID, r.PathValue("invitation_id"))
	if err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeclineInvitation(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeActivationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.activation.Handler.DeclineInvitationHandler(r.Context(), userID, r.PathValue("invitation_id"))
	if err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReleasePayment(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeActivationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.activation.Handler.ReleasePaymentHandler(r.Context(), userID, r.PathValue("invitation_id"))
	if err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelInvitation(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeActivationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.activation.Handler.CancelInvitationHandler(r.Context(), userID, r.PathValue("invitation_id"))
	if err != nil {
		writeActivationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeActivationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, activationerrors.ErrActivationNotFound):
		writeActivationError(w, http.StatusNotFound, "activation_not_found", err.Error())
	case errors.Is(err, activationerrors.ErrInvitationNotFound):
		writeActivationError(w, http.StatusNotFound, "invitation_not_found", err.Error())
	case errors.Is(err, activationerrors.ErrInvalidInput):
		writeActivationError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, activationerrors.ErrActivationClosed):
		writeActivationError(w, http.StatusConflict, "activation_closed", err.Error())
	case errors.Is(err, activationerrors.ErrInvalidStateTransition):
		writeActivationError(w, http.StatusConflict, "invalid_state_transition", err.Error())
	case errors.Is(err, activationerrors.ErrDuplicateInvitation):
		writeActivationError(w, http.StatusConflict, "duplicate_invitation", err.Error())
	case errors.Is(err, activationerrors.ErrNotInvitationCreator),
		errors.Is(err, activationerrors.ErrNotActivationBrand):
		writeActivationError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, activationerrors.ErrInsufficientFunds):
		writeActivationError(w, http.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, activationerrors.ErrMutationInFlight):
		writeActivationError(w, http.StatusConflict, "mutation_in_flight", err.Error())
	case errors.Is(err, activationerrors.ErrIdempotencyKeyRequired):
		writeActivationError(w, http.StatusBadRequest, "idempotency_key_required", err.Error())
	case errors.Is(err, activationerrors.ErrIdempotencyConflict):
		writeActivationError(w, http.StatusConflict, "idempotency_conflict", err.Error())
	default:
		writeActivationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeActivationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, activationhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
