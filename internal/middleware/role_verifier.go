package middleware

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/xcontext"
)

type ProfileRoleVerifier struct {
	profileRepo repository.ProfileRepository
}

func NewProfileRoleVerifier(profileRepo repository.ProfileRepository) *ProfileRoleVerifier {
	return &ProfileRoleVerifier{profileRepo: profileRepo}
}

func (verifier *ProfileRoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.ProfileRole) error {
	userID := xcontext.RequestUserID(ctx)
	p, err := verifier.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("profile is not valid")
	}

	if !slices.Contains(requiredRoles, p.Role) {
		return errors.New("profile role does not have permission")
	}

	return nil
}
