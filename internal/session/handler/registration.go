package handler

import (
	"net/http"
	"strings"

	"jurify/internal/registration"
	"jurify/internal/session"
	"jurify/internal/verification"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/httputil"
	"jurify/pkg/requestcontext"
)

const verificationStatusPath = "/auth/verification/"

type registerResponse struct {
	session.RegisterResult
	StatusURL    string               `json:"statusUrl,omitempty"`
	Verification *verification.Status `json:"verification,omitempty"`
}

type validateFieldRequest struct {
	Field    string `json:"field"`
	Value    string `json:"value"`
	Password string `json:"password"`
}

func (r *validateFieldRequest) Validate() error {
	r.Field = strings.TrimSpace(r.Field)
	if r.Field == "" {
		return dErrors.New(dErrors.CodeBadRequest, "field is required")
	}
	return nil
}

type validateFieldResponse struct {
	Field string `json:"field"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type validateFormResponse struct {
	Valid bool `json:"valid"`
	registration.Result
}

// handleRegister submits a role form. Invalid forms get 422 with the field
// errors; a registration awaiting email verification gets 202 and a poller.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	role, err := parseRole(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	form, err := registration.DecodeForm(w, r, role)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to decode registration form",
			"request_id", requestID,
			"role", role,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	res := h.sessions.Register(ctx, form)
	switch {
	case res.Validation != nil:
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, registerResponse{RegisterResult: res})
	case !res.Success:
		httputil.WriteJSON(w, httputil.StatusFor(res.Code), registerResponse{RegisterResult: res})
	case res.Session != nil:
		h.cookies.SetCookie(w, res.Session, h.now())
		httputil.WriteJSON(w, http.StatusCreated, registerResponse{RegisterResult: res})
	default:
		resp := registerResponse{RegisterResult: res}
		if res.PollingToken != "" && h.polls != nil {
			status, err := h.polls.Start(res.PollingToken)
			if err != nil {
				h.logger.WarnContext(ctx, "failed to start verification polling",
					"request_id", requestID,
					"error", err,
				)
			} else {
				resp.StatusURL = verificationStatusPath + res.PollingToken
				resp.Verification = &status
			}
		}
		httputil.WriteJSON(w, http.StatusAccepted, resp)
	}
}

func (h *Handler) handleValidateForm(w http.ResponseWriter, r *http.Request) {
	role, err := parseRole(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	form, err := registration.DecodeForm(w, r, role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res := h.validator.Validate(form, h.now())
	status := http.StatusOK
	if !res.Valid() {
		status = http.StatusUnprocessableEntity
	}
	httputil.WriteJSON(w, status, validateFormResponse{Valid: res.Valid(), Result: res})
}

// handleValidateField checks one field as the user leaves it. The password is
// only used to compare confirmation fields.
func (h *Handler) handleValidateField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role, err := parseRole(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[validateFieldRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	msg := h.validator.Field(role, req.Field, req.Value,
		registration.WithPassword(req.Password),
		registration.WithNow(h.now()),
	)
	httputil.WriteJSON(w, http.StatusOK, validateFieldResponse{Field: req.Field, Valid: msg == "", Error: msg})
}

func (h *Handler) handlePasswordStrength(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, registration.PasswordStrength(r.URL.Query().Get("password")))
}
