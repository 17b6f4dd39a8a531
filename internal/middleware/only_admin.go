package middleware

import (
	"context"

	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/router"
	"github.com/lyricroom/backend/pkg/xcontext"
)

type OnlyAdmin struct {
	roleVerifier *ProfileRoleVerifier
}

func NewOnlyAdmin(profileRepo repository.ProfileRepository) *OnlyAdmin {
	return &OnlyAdmin{
		roleVerifier: NewProfileRoleVerifier(profileRepo),
	}
}

func (a *OnlyAdmin) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if err := a.roleVerifier.Verify(ctx, entity.ProfileRoleAdmin); err != nil {
			xcontext.Logger(ctx).Debugf("Admin check failed: %v", err)
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		return nil, nil
	}
}
