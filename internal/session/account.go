package session

import (
	"context"
	"encoding/json"
	"strings"

	"golang.org/x/sync/errgroup"

	"jurify/internal/jurifyapi"
	"jurify/pkg/domain"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/requestcontext"
)

const nearbyPageSize = 6

// GetProfile fetches /users/me and refreshes the stored profile.
func (s *Service) GetProfile(ctx context.Context, id domain.SessionID) Result {
	var auth *jurifyapi.AuthResponse
	sess, err := s.authorized(ctx, id, func(token string) error {
		var err error
		auth, err = s.api.Me(ctx, token)
		return err
	})
	if err != nil {
		return failure(err)
	}
	profile := ProfileFromAuth(auth)
	s.saveProfile(ctx, sess, profile)
	return Result{Success: true, User: &profile}
}

// UpdateProfile applies a partial update, then refetches the profile so the
// stored copy matches what the backend persisted.
func (s *Service) UpdateProfile(ctx context.Context, id domain.SessionID, partial map[string]any) Result {
	if len(partial) == 0 {
		return failureMessage(dErrors.CodeBadRequest, "No profile fields to update")
	}
	for _, locked := range []string{"email", "role", "id", "userId"} {
		delete(partial, locked)
	}
	if _, err := s.authorized(ctx, id, func(token string) error {
		return s.api.UpdateProfile(ctx, token, partial)
	}); err != nil {
		return failure(err)
	}
	r := s.GetProfile(ctx, id)
	if r.Success {
		r.Message = "Profile updated successfully"
	}
	return r
}

// UpdateDirectoryStatus lists or hides a lawyer or NGO in the public directory.
func (s *Service) UpdateDirectoryStatus(ctx context.Context, id domain.SessionID, isActive bool) Result {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return failure(err)
	}
	if r := sess.User.Role; r != domain.RoleLawyer && r != domain.RoleNGO {
		return failureMessage(dErrors.CodeForbidden, "Only lawyers and NGOs appear in the directory")
	}
	sess, err = s.authorized(ctx, id, func(token string) error {
		return s.api.UpdateDirectoryStatus(ctx, token, isActive)
	})
	if err != nil {
		return failure(err)
	}
	profile := sess.User
	profile.DirectoryActive = &isActive
	s.saveProfile(ctx, sess, profile)
	msg := "You are now hidden from the directory"
	if isActive {
		msg = "You are now visible in the directory"
	}
	return Result{Success: true, Message: msg, User: &profile}
}

// UpdateLocation stores the user's map position and any resolved address.
func (s *Service) UpdateLocation(ctx context.Context, id domain.SessionID, loc jurifyapi.LocationUpdate) Result {
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return failureMessage(dErrors.CodeValidation, "Please select your location on the map")
	}
	sess, err := s.authorized(ctx, id, func(token string) error {
		return s.api.UpdateLocation(ctx, token, loc)
	})
	if err != nil {
		return failure(err)
	}
	profile := sess.User
	setIf := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	setIf(&profile.AddressLine1, loc.AddressLine1)
	setIf(&profile.AddressLine2, loc.AddressLine2)
	setIf(&profile.City, loc.City)
	setIf(&profile.State, loc.State)
	setIf(&profile.Pincode, loc.Pincode)
	setIf(&profile.Country, loc.Country)
	s.saveProfile(ctx, sess, profile)
	return Result{Success: true, Message: "Location updated successfully", User: &profile}
}

// SearchDirectory proxies the public directory search.
func (s *Service) SearchDirectory(ctx context.Context, q jurifyapi.DirectoryQuery) (json.RawMessage, error) {
	if q.Size <= 0 {
		q.Size = 20
	}
	if q.Page < 0 {
		q.Page = 0
	}
	return s.api.SearchDirectory(ctx, q)
}

// Dashboard loads the fresh profile and the directory listing near the user
// concurrently. Lawyers and NGOs also get their directory status, which
// defaults to listed when the backend omits it. The nearby listing is
// optional: its failure is logged only.
func (s *Service) Dashboard(ctx context.Context, id domain.SessionID) (*DashboardView, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		profile Profile
		nearby  json.RawMessage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r := s.GetProfile(gctx, id)
		if !r.Success {
			return dErrors.New(r.Code, r.Error)
		}
		profile = *r.User
		return nil
	})
	if sess.User.City != "" {
		g.Go(func() error {
			raw, err := s.SearchDirectory(gctx, jurifyapi.DirectoryQuery{City: sess.User.City, Size: nearbyPageSize})
			if err != nil {
				s.logger.InfoContext(ctx, "nearby directory lookup failed",
					"request_id", requestcontext.RequestID(ctx),
					"error", jurifyapi.MessageOf(err),
				)
				return nil
			}
			nearby = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &DashboardView{User: profile}
	if listed(profile.Role) {
		active := profile.DirectoryActive == nil || *profile.DirectoryActive
		view.DirectoryActive = &active
	}
	if len(nearby) > 0 {
		view.Nearby = nearby
	}
	return view, nil
}

// listed reports whether role appears in the public directory.
func listed(role domain.Role) bool {
	return role == domain.RoleLawyer || role == domain.RoleNGO
}

func (s *Service) saveProfile(ctx context.Context, sess *Session, profile Profile) {
	sess.User = profile
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.WarnContext(ctx, "failed to store refreshed profile",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}
