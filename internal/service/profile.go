package service

import (
	"context"

	"github.com/caseworks/user-portal/internal/domain/model"
	"github.com/caseworks/user-portal/internal/ports"
)

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	Directory ports.UserDirectory
}

// ProfileService exposes the signed-in user's own record. It is a thin pass
// through; the record lives on the user service.
type ProfileService struct {
	directory ports.UserDirectory
}

// NewProfileService constructs a new ProfileService.
func NewProfileService(opts ProfileServiceOptions) *ProfileService {
	return &ProfileService{directory: opts.Directory}
}

// Get fetches the profile for an email.
func (s *ProfileService) Get(ctx context.Context, email string) (model.Profile, error) {
	return s.directory.Profile(ctx, email)
}

// Update submits profile changes and returns the server's confirmation message.
func (s *ProfileService) Update(ctx context.Context, upd model.ProfileUpdate) (string, error) {
	return s.directory.UpdateProfile(ctx, upd)
}
