package session

import (
	"context"
	"errors"
	"strings"

	"jurify/internal/jurifyapi"
	"jurify/internal/registration"
	"jurify/pkg/domain"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/audit"
	"jurify/pkg/platform/sentinel"
	"jurify/pkg/requestcontext"
)

const (
	OAuthFailedRedirect        = "/login?error=oauth_failed"
	ProfileFetchFailedRedirect = "/login?error=profile_fetch_failed"

	credentialsRequiredMessage = "Email and password are required"
	missingTokensMessage       = "Login failed. Please try again."
	verifyLinkInvalidMessage   = "Invalid verification link"
	resetTokenInvalidMessage   = "Invalid or missing reset token"
	weakPasswordMessage        = "Password does not meet all requirements"
)

// Login authenticates against the backend and starts a session.
func (s *Service) Login(ctx context.Context, email, password string) Result {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return failureMessage(dErrors.CodeBadRequest, credentialsRequiredMessage)
	}

	auth, err := s.api.Login(ctx, email, password)
	if err == nil && !auth.HasTokens() {
		err = dErrors.New(dErrors.CodeUnavailable, missingTokensMessage)
	}
	if err != nil {
		s.metrics.IncLogin("failure")
		s.logger.WarnContext(ctx, "login failed",
			"request_id", requestcontext.RequestID(ctx),
			"email", email,
			"error", jurifyapi.MessageOf(err),
		)
		s.emit(ctx, audit.EventLoginFailed, nil, func(e *audit.Event) {
			e.Email = email
			e.Reason = string(jurifyapi.CodeOf(err))
		})
		return failure(err)
	}

	profile := ProfileFromAuth(auth)
	sess, err := s.start(ctx, auth.AccessToken, auth.RefreshToken, profile)
	if err != nil {
		s.metrics.IncLogin("failure")
		return failure(err)
	}
	s.metrics.IncLogin("success")
	s.emit(ctx, audit.EventLoginSucceeded, sess, nil)
	return Result{Success: true, User: &sess.User, Redirect: profile.Role.DashboardPath(), Session: sess}
}

// Register validates form, submits it, and either starts a session (the
// backend returned tokens) or hands back the polling token to wait on.
func (s *Service) Register(ctx context.Context, form registration.Form) RegisterResult {
	role := form.Role()
	if !role.CanRegister() {
		return RegisterResult{Result: failureMessage(dErrors.CodeBadRequest, "unsupported registration role")}
	}

	validation := s.validator.Validate(form, s.now())
	if !validation.Valid() {
		s.metrics.IncRegistration(role.Segment(), "invalid")
		msg := validation.FormError
		if msg == "" {
			msg = registration.FixErrorsMessage
		}
		return RegisterResult{
			Result: failureMessage(dErrors.CodeValidation, msg),
			Validation: &ValidationFailure{
				Fields:    validation.Fields,
				Focus:     validation.FirstInvalid,
				FormError: validation.FormError,
			},
		}
	}

	resp, err := s.api.Register(ctx, role, registration.BuildPayload(form))
	if err != nil {
		s.metrics.IncRegistration(role.Segment(), "failure")
		s.logger.WarnContext(ctx, "registration failed",
			"request_id", requestcontext.RequestID(ctx),
			"role", role.String(),
			"error", jurifyapi.MessageOf(err),
		)
		return RegisterResult{Result: failure(err)}
	}
	s.metrics.IncRegistration(role.Segment(), "success")

	if resp.AccessToken != "" && resp.RefreshToken != "" {
		auth, err := s.api.Me(ctx, resp.AccessToken)
		if err != nil {
			s.logger.WarnContext(ctx, "profile fetch after registration failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", jurifyapi.MessageOf(err),
			)
			auth = &jurifyapi.AuthResponse{UserID: resp.UserID, Email: resp.Email, Role: resp.Role}
		}
		sess, err := s.start(ctx, resp.AccessToken, resp.RefreshToken, ProfileFromAuth(auth))
		if err != nil {
			return RegisterResult{Result: failure(err)}
		}
		s.emit(ctx, audit.EventRegistered, sess, nil)
		return RegisterResult{Result: Result{
			Success:  true,
			Message:  resp.Message,
			User:     &sess.User,
			Redirect: sess.User.Role.DashboardPath(),
			Session:  sess,
		}}
	}

	s.emit(ctx, audit.EventRegistered, nil, func(e *audit.Event) {
		e.UserID = domain.UserID(resp.UserID)
		e.Role = string(role)
		e.Email = resp.Email
	})
	msg := resp.Message
	if msg == "" {
		msg = "Registration successful. Please check your email to verify your account."
	}
	return RegisterResult{
		Result:       Result{Success: true, Message: msg},
		PollingToken: resp.PollingToken,
	}
}

// CompleteVerification starts the session for a verified account. The
// verification poller calls it with the backend's auth payload.
func (s *Service) CompleteVerification(ctx context.Context, auth *jurifyapi.AuthResponse) (*Session, error) {
	if !auth.HasTokens() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "verification response has no tokens")
	}
	sess, err := s.start(ctx, auth.AccessToken, auth.RefreshToken, ProfileFromAuth(auth))
	if err != nil {
		return nil, err
	}
	s.emit(ctx, audit.EventVerificationCompleted, sess, nil)
	return sess, nil
}

// Discard drops a session that was started for a verification nobody is
// waiting for any more.
func (s *Service) Discard(ctx context.Context, sess *Session) {
	if sess == nil {
		return
	}
	s.Logout(ctx, sess.ID)
}

// Logout deletes all session state. It never fails: the backend revocation is
// best-effort and repository errors are logged.
func (s *Service) Logout(ctx context.Context, id domain.SessionID) {
	if id.IsNil() {
		return
	}
	sess, err := s.sessions.Find(ctx, id)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to load session for logout",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		_ = s.sessions.Delete(ctx, id)
		return
	}

	if sess.RefreshToken != "" {
		revokeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutTimeout)
		if err := s.api.Logout(revokeCtx, sess.RefreshToken); err != nil {
			s.logger.InfoContext(ctx, "backend logout failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", jurifyapi.MessageOf(err),
			)
		}
		cancel()
	}
	s.destroy(ctx, sess, audit.EventLoggedOut, "")
}

// ForgotPassword asks the backend to mail a reset link.
func (s *Service) ForgotPassword(ctx context.Context, email string) Result {
	email = strings.TrimSpace(email)
	if msg := s.validator.Field(domain.RoleCitizen, "email", email, registration.WithNow(s.now())); msg != "" {
		return failureMessage(dErrors.CodeValidation, msg)
	}
	if err := s.api.ForgotPassword(ctx, email); err != nil {
		return failure(err)
	}
	s.emit(ctx, audit.EventPasswordResetRequested, nil, func(e *audit.Event) { e.Email = email })
	return Result{Success: true, Message: "If an account exists for this email, a reset link has been sent."}
}

// ResetPassword sets a new password; it must pass every strength check.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) Result {
	if strings.TrimSpace(token) == "" {
		return failureMessage(dErrors.CodeBadRequest, resetTokenInvalidMessage)
	}
	if registration.PasswordStrength(newPassword).Score < registration.MaxStrengthScore {
		return failureMessage(dErrors.CodeValidation, weakPasswordMessage)
	}
	if err := s.api.ResetPassword(ctx, token, newPassword); err != nil {
		return failure(err)
	}
	s.emit(ctx, audit.EventPasswordReset, nil, nil)
	return Result{Success: true, Message: "Password reset successfully. Please log in.", Redirect: "/login"}
}

// VerifyEmail consumes a verification link. A link that was already used
// counts as success. When the backend answers with tokens a session starts.
func (s *Service) VerifyEmail(ctx context.Context, token string) Result {
	if strings.TrimSpace(token) == "" {
		return failureMessage(dErrors.CodeBadRequest, verifyLinkInvalidMessage)
	}
	auth, err := s.api.VerifyEmail(ctx, token)
	if err != nil {
		if strings.Contains(strings.ToLower(jurifyapi.MessageOf(err)), "already used") {
			return Result{Success: true, Message: "Email already verified. Please log in.", Redirect: "/login"}
		}
		return failure(err)
	}
	if !auth.HasTokens() {
		return Result{Success: true, Message: "Email verified successfully. Please log in.", Redirect: "/login"}
	}
	sess, err := s.CompleteVerification(ctx, auth)
	if err != nil {
		return failure(err)
	}
	return Result{
		Success:  true,
		Message:  "Email verified successfully.",
		User:     &sess.User,
		Redirect: sess.User.Role.DashboardPath(),
		Session:  sess,
	}
}

// CompleteOAuth2 finishes a social login redirect. Result.Redirect is always
// set: the dashboard on success, a login error page otherwise.
func (s *Service) CompleteOAuth2(ctx context.Context, accessToken, refreshToken string) Result {
	if strings.TrimSpace(accessToken) == "" || strings.TrimSpace(refreshToken) == "" {
		return Result{Error: "OAuth login failed", Code: dErrors.CodeBadRequest, Redirect: OAuthFailedRedirect}
	}
	auth, err := s.api.Me(ctx, accessToken)
	if err != nil {
		s.logger.WarnContext(ctx, "oauth2 profile fetch failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", jurifyapi.MessageOf(err),
		)
		r := failure(err)
		r.Redirect = ProfileFetchFailedRedirect
		return r
	}
	sess, err := s.start(ctx, accessToken, refreshToken, ProfileFromAuth(auth))
	if err != nil {
		r := failure(err)
		r.Redirect = ProfileFetchFailedRedirect
		return r
	}
	s.emit(ctx, audit.EventOAuth2Completed, sess, nil)
	return Result{Success: true, User: &sess.User, Redirect: sess.User.Role.DashboardPath(), Session: sess}
}
