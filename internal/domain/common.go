package domain

import (
	"context"
	"errors"
	"net/mail"
	"regexp"

	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/xcontext"
	"gorm.io/gorm"
)

var usernameRegex = regexp.MustCompile("^[A-Za-z0-9_.]*$")

func checkUsername(username string) error {
	if len(username) < 3 {
		return errorx.New(errorx.BadRequest, "Username too short (at least 3 characters)")
	}

	if len(username) > 32 {
		return errorx.New(errorx.BadRequest, "Username too long (at most 32 characters)")
	}

	if !usernameRegex.MatchString(username) {
		return errorx.New(errorx.BadRequest, "Username contains invalid characters")
	}

	return nil
}

func checkEmail(email string) error {
	if email == "" {
		return errorx.New(errorx.BadRequest, "Email is required")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid email")
	}

	return nil
}

// resolveActor returns the authenticated user. A user id sent in the body
// must be the same user.
func resolveActor(ctx context.Context, bodyUserID string) (string, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return "", errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if bodyUserID != "" && bodyUserID != requestUserID {
		return "", errorx.New(errorx.PermissionDenied, "Cannot act on behalf of another user")
	}

	return requestUserID, nil
}

// checkPaging fills the default limit and rejects values the api does not
// serve.
func checkPaging(ctx context.Context, offset, limit int) (int, int, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if offset < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Offset must be non-negative")
	}

	if limit == 0 {
		limit = apiCfg.DefaultLimit
	}

	if limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if limit > apiCfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	return offset, limit, nil
}

// notFoundOr maps a missing record to NotFound and logs everything else.
func notFoundOr(ctx context.Context, err error, format string, a ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.New(errorx.NotFound, format, a...)
	}

	var errx errorx.Error
	if errors.As(err, &errx) {
		return err
	}

	xcontext.Logger(ctx).Errorf("Cannot query database: %v", err)
	return errorx.Unknown
}

// orderByIDs returns the items in the order of ids, skipping ids without an
// item.
func orderByIDs[T any](ids []string, items []T, key func(T) string) []T {
	itemMap := make(map[string]T, len(items))
	for _, item := range items {
		itemMap[key(item)] = item
	}

	result := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := itemMap[id]; ok {
			result = append(result, item)
		}
	}

	return result
}

func profileKey(p entity.Profile) string { return p.ID }

func postKey(p entity.Post) string { return p.ID }

func musicKey(m entity.Music) string { return m.ID }

func lyricsKey(l entity.Lyrics) string { return l.ID }
