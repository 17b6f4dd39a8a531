package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/middleware"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/testutil"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_HandleSetAccessToken(t *testing.T) {
	ctx := testutil.MockContext()
	w := httptest.NewRecorder()
	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest(http.MethodPost, "/api/profiles", nil))
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithResponse(ctx, &model.CreateProfileResponse{AccessToken: "token-value"})

	_, err := middleware.HandleSetAccessToken()(ctx)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "access_token", cookies[0].Name)
	require.Equal(t, "token-value", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
}

func Test_HandleSaveSession_ThenRedirect(t *testing.T) {
	ctx := testutil.MockContext()
	w := httptest.NewRecorder()
	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest(http.MethodGet, "/api/spotify/auth", nil))
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithResponse(ctx, model.NewSpotifyAuthURLResponse("https://accounts.example.com/authorize", "state-1", true))

	newCtx, err := middleware.HandleSaveSession()(ctx)
	require.NoError(t, err)
	require.Nil(t, newCtx)

	newCtx, err = middleware.HandleRedirect()(ctx)
	require.NoError(t, err)
	require.Nil(t, xcontext.Response(newCtx))

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "https://accounts.example.com/authorize", w.Header().Get("Location"))
	require.NotEmpty(t, w.Result().Cookies())
}

func Test_HandleRedirect_Disabled(t *testing.T) {
	ctx := testutil.MockContext()
	ctx = xcontext.WithResponse(ctx, model.NewSpotifyAuthURLResponse("https://accounts.example.com/authorize", "state-1", false))

	newCtx, err := middleware.HandleRedirect()(ctx)
	require.NoError(t, err)
	require.Nil(t, newCtx)
}

func Test_OnlyAdmin(t *testing.T) {
	ctx := testutil.MockContext()
	admin := testutil.SampleProfile(ctx, &entity.Profile{Role: entity.ProfileRoleAdmin})
	user := testutil.SampleProfile(ctx, nil)

	onlyAdmin := middleware.NewOnlyAdmin(repository.NewProfileRepository(nil)).Middleware()

	_, err := onlyAdmin(xcontext.WithRequestUserID(ctx, admin.ID))
	require.NoError(t, err)

	_, err = onlyAdmin(xcontext.WithRequestUserID(ctx, user.ID))
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))

	_, err = onlyAdmin(ctx)
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))
}
