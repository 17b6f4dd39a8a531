package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/router"
	"github.com/lyricroom/backend/pkg/xcontext"
)

type verifyFunc func(ctx context.Context, req *http.Request) string

// AuthVerifier finds the caller of a request. The first verifier which
// recognizes the caller wins.
type AuthVerifier struct {
	verifiers []verifyFunc
	optional  bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

// WithAccessToken accepts an access token from the Authorization header or
// from the access token cookie.
func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.verifiers = append(a.verifiers, verifyAccessToken)
	return a
}

// Optional lets anonymous requests through. The request user id is set only
// when a token is valid.
func (a *AuthVerifier) Optional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req := xcontext.HTTPRequest(ctx)
		for _, verify := range a.verifiers {
			if userID := verify(ctx, req); userID != "" {
				return xcontext.WithRequestUserID(ctx, userID), nil
			}
		}

		if a.optional {
			return nil, nil
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func verifyAccessToken(ctx context.Context, req *http.Request) string {
	if req == nil {
		return ""
	}

	token := ""
	if auth := req.Header.Get("Authorization"); auth != "" {
		scheme, value, ok := strings.Cut(auth, " ")
		if ok && strings.EqualFold(scheme, "bearer") {
			token = strings.TrimSpace(value)
		}
	}

	if token == "" {
		cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
		if err == nil {
			token = cookie.Value
		}
	}

	if token == "" {
		return ""
	}

	var accessToken model.AccessToken
	if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
		xcontext.Logger(ctx).Debugf("Invalid access token: %v", err)
		return ""
	}

	return accessToken.ID
}
