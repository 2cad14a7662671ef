// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/danielhkuo/regdesk/auth"
	"github.com/danielhkuo/regdesk/clientinfo"
	"github.com/danielhkuo/regdesk/cliparse"
	"github.com/danielhkuo/regdesk/db"
	"github.com/danielhkuo/regdesk/middleware"
	"github.com/danielhkuo/regdesk/models"
	"github.com/danielhkuo/regdesk/wizard"
)

// Messages shown to registrants
const (
	msgStep1Incomplete   = "Please fill all required fields in Step 1"
	msgStep2Incomplete   = "All 5 team members must be filled"
	msgStep3Incomplete   = "Please select your willingness to participate"
	msgTeamNameTaken     = "Team name already exists. Please choose a different name."
	msgSubmitted         = "Registration submitted successfully!"
	msgWrongStep         = "This action is not available on the current step"
	msgStoreNext         = "Error validating team name. Please try again."
	msgStoreSubmit       = "Failed to submit registration. Please try again."
	msgStoreDraft        = "Failed to save your progress. Please try again."
	msgInvalidSessionKey = "Invalid draft key"
)

type WizardHandler struct {
	wizard *wizard.Wizard
}

func NewWizardHandler(conn *sql.DB, cfg cliparse.Config) *WizardHandler {
	var cache wizard.DraftCache = db.NewDraftCache(conn)
	if cfg.DraftCache == cliparse.DraftCacheMemory {
		zap.L().Warn("drafts are kept in memory and will not survive a restart")
		cache = wizard.NewMemoryCache()
	}

	w := wizard.New(
		db.NewRegistrations(conn),
		cache,
		wizard.WithTimeout(cfg.RequestTimeout),
	)
	return &WizardHandler{wizard: w}
}

// sessionKey reads and validates the {key} path value
func sessionKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := r.PathValue("key")
	if err := auth.ValidateSessionKey(key); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidSessionKey)
		return "", false
	}
	return key, true
}

// CreateDraft handles POST /drafts
func (h *WizardHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	key, err := auth.GenerateSessionKey()
	if err != nil {
		zap.L().Error("failed to generate draft key", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start registration")
		return
	}

	// The session is only written on the first edit
	session, err := h.wizard.Open(r.Context(), key)
	if err != nil {
		writeWizardError(w, err, msgStoreDraft)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateDraftResponse{
		DraftKey: key,
		Session:  session,
	})
}

// GetDraft handles GET /drafts/{key}
func (h *WizardHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	key, ok := sessionKey(w, r)
	if !ok {
		return
	}

	session, err := h.wizard.Open(r.Context(), key)
	if err != nil {
		writeWizardError(w, err, msgStoreDraft)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{Session: session})
}

// UpdateDraft handles PATCH /drafts/{key}
func (h *WizardHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	key, ok := sessionKey(w, r)
	if !ok {
		return
	}

	var req models.UpdateDraftRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Edits) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "edits are required")
		return
	}

	edits := make([]models.Edit, 0, len(req.Edits))
	for _, e := range req.Edits {
		field, err := models.ParseField(e.Field)
		if err != nil {
			middleware.CodedErrorResponse(w, http.StatusBadRequest, models.CodeUnknownField,
				"Unknown field", []string{e.Field})
			return
		}
		edits = append(edits, models.Set(field, e.Value))
	}

	session, err := h.wizard.Apply(r.Context(), key, edits...)
	if err != nil {
		writeWizardError(w, err, msgStoreDraft)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{Session: session})
}

// Next handles POST /drafts/{key}/next
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	key, ok := sessionKey(w, r)
	if !ok {
		return
	}

	tr, err := h.wizard.Next(r.Context(), key)
	if err != nil {
		writeWizardError(w, err, msgStoreNext)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TransitionResponse{
		Session:    tr.Session,
		Advisories: tr.Advisories,
	})
}

// Back handles POST /drafts/{key}/back
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	key, ok := sessionKey(w, r)
	if !ok {
		return
	}

	session, err := h.wizard.Back(r.Context(), key)
	if err != nil {
		writeWizardError(w, err, msgStoreDraft)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{Session: session})
}

// Submit handles POST /drafts/{key}/submit
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	key, ok := sessionKey(w, r)
	if !ok {
		return
	}

	receipt, err := h.wizard.Submit(r.Context(), key, clientinfo.FromRequest(r))
	if err != nil {
		writeWizardError(w, err, msgStoreSubmit)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{
		RegistrationID: receipt.ID,
		SubmittedAt:    receipt.SubmittedAt,
		Message:        msgSubmitted,
		Session:        receipt.Session,
	})
}

// DiscardDraft handles DELETE /drafts/{key}
func (h *WizardHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	key, ok := sessionKey(w, r)
	if !ok {
		return
	}

	if err := h.wizard.Discard(r.Context(), key); err != nil {
		writeWizardError(w, err, msgStoreDraft)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeWizardError maps wizard failures to status codes. storeMessage is
// shown when the store could not be reached.
func writeWizardError(w http.ResponseWriter, err error, storeMessage string) {
	var verr *wizard.ValidationError
	var perr *wizard.PolicyError

	switch {
	case errors.As(err, &verr):
		middleware.CodedErrorResponse(w, http.StatusUnprocessableEntity, models.CodeValidation,
			incompleteMessage(verr.Step), verr.Fields)
	case errors.As(err, &perr):
		middleware.CodedErrorResponse(w, http.StatusUnprocessableEntity, models.CodePolicyViolation,
			perr.Message, nil)
	case errors.Is(err, wizard.ErrUniquenessConflict):
		middleware.CodedErrorResponse(w, http.StatusConflict, models.CodeUniquenessConflict,
			msgTeamNameTaken, []string{string(models.FieldTeamName)})
	case errors.Is(err, wizard.ErrWrongStep), errors.Is(err, wizard.ErrNoForwardStep):
		middleware.CodedErrorResponse(w, http.StatusConflict, models.CodeWrongStep, msgWrongStep, nil)
	case errors.Is(err, models.ErrUnknownField):
		middleware.CodedErrorResponse(w, http.StatusBadRequest, models.CodeUnknownField, "Unknown field", nil)
	case errors.Is(err, models.ErrInvalidValue):
		middleware.CodedErrorResponse(w, http.StatusBadRequest, models.CodeValidation, err.Error(), nil)
	case errors.Is(err, wizard.ErrStoreUnavailable):
		zap.L().Error("registration store unavailable", zap.Error(err))
		middleware.CodedErrorResponse(w, http.StatusServiceUnavailable, models.CodeStoreUnavailable, storeMessage, nil)
	default:
		zap.L().Error("unexpected wizard error", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

func incompleteMessage(step models.Step) string {
	switch step {
	case models.Step2:
		return msgStep2Incomplete
	case models.Step3:
		return msgStep3Incomplete
	}
	return msgStep1Incomplete
}
