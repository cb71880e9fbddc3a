package handler

import (
	"net/http"
	"strings"

	"jurify/internal/session"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/httputil"
	"jurify/pkg/requestcontext"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Email and password are required")
	}
	return nil
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[loginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res := h.sessions.Login(ctx, req.Email, req.Password)
	if res.Success {
		h.logger.InfoContext(ctx, "user logged in",
			"request_id", requestID,
			"role", res.User.Role,
		)
	}
	h.writeResult(w, res, http.StatusOK)
}

// handleLogout always succeeds and always clears the cookie.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if id, ok := h.cookies.SessionID(r); ok {
		h.sessions.Logout(ctx, id)
	}
	h.cookies.ClearCookie(w)
	httputil.WriteJSON(w, http.StatusOK, session.Result{Success: true, Message: "Logged out", Redirect: "/login"})
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[forgotPasswordRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.writeResult(w, h.sessions.ForgotPassword(ctx, req.Email), http.StatusOK)
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[resetPasswordRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.writeResult(w, h.sessions.ResetPassword(ctx, req.Token, req.NewPassword), http.StatusOK)
}

func (h *Handler) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, h.sessions.VerifyEmail(r.Context(), r.URL.Query().Get("token")), http.StatusOK)
}

// handleOAuth2Redirect finishes a social login and sends the browser on.
func (h *Handler) handleOAuth2Redirect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	res := h.sessions.CompleteOAuth2(ctx, q.Get("accessToken"), q.Get("refreshToken"))
	if res.Session != nil {
		h.cookies.SetCookie(w, res.Session, h.now())
	}
	if !res.Success {
		h.logger.WarnContext(ctx, "oauth2 login failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", res.Error,
		)
	}
	h.redirect(w, r, res.Redirect)
}
