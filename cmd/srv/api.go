package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lyricroom/backend/internal/middleware"
	"github.com/lyricroom/backend/pkg/prometheus"
	"github.com/lyricroom/backend/pkg/router"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

func (s *srv) startApi(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}

	if err := s.loadStorage(); err != nil {
		return err
	}

	s.loadIndexer()
	s.loadEndpoint()
	s.loadRepos()
	s.loadLedger()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr:    cfg.Address(),
		Handler: s.router.Handler(cfg.AllowedOrigins),
	}

	serveErr := make(chan error, 1)
	go func() {
		xcontext.Logger(s.ctx).Infof("Starting server on %s", cfg.Address())

		var err error
		if cfg.Cert != "" && cfg.Key != "" {
			err = s.server.ListenAndServeTLS(cfg.Cert, cfg.Key)
		} else {
			err = s.server.ListenAndServe()
		}

		if !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	signalCtx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	select {
	case err = <-serveErr:
	case <-signalCtx.Done():
		xcontext.Logger(s.ctx).Infof("Stopping server")
	}

	return multierr.Append(err, s.shutdown())
}

func (s *srv) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error
	if s.server != nil {
		err = multierr.Append(err, s.server.Shutdown(ctx))
	}

	if s.publisher != nil {
		err = multierr.Append(err, s.publisher.Stop(ctx))
	}

	if s.redisClient != nil {
		err = multierr.Append(err, s.redisClient.Close())
	}

	if s.indexer != nil {
		s.indexer.Close()
	}

	return err
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger(), middleware.Prometheus())
	s.router.After(
		middleware.HandleSaveSession(),
		middleware.HandleSetAccessToken(),
		middleware.HandleRedirect(),
	)

	s.router.Handle("GET /metrics", prometheus.NewHandler())

	// These following APIs need an access token.
	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	onlyTokenAuthRouter := s.router.Branch()
	onlyTokenAuthRouter.Before(authVerifier.Middleware())
	{
		// Profile API
		router.GET(onlyTokenAuthRouter, "/api/profiles/me", s.profileDomain.GetMe)
		router.PUT(onlyTokenAuthRouter, "/api/profiles/me", s.profileDomain.Update)
		router.GET(onlyTokenAuthRouter, "/api/profiles/me/saved-posts", s.profileDomain.GetSavedPosts)
		router.POST(onlyTokenAuthRouter, "/api/profiles/me/avatar", s.profileDomain.UploadAvatar)
		router.POST(onlyTokenAuthRouter, "/api/profiles/{username}/follow", s.profileDomain.Follow)
		router.POST(onlyTokenAuthRouter, "/api/profiles/{username}/unfollow", s.profileDomain.Unfollow)

		// Post API
		router.POST(onlyTokenAuthRouter, "/api/posts", s.postDomain.Create)
		router.PUT(onlyTokenAuthRouter, "/api/posts/{id}", s.postDomain.Update)
		router.DELETE(onlyTokenAuthRouter, "/api/posts/{id}", s.postDomain.Delete)
		router.POST(onlyTokenAuthRouter, "/api/posts/{id}/like", s.postDomain.Like)
		router.POST(onlyTokenAuthRouter, "/api/posts/{id}/comment", s.postDomain.Comment)
		router.POST(onlyTokenAuthRouter, "/api/posts/{id}/save", s.postDomain.Save)

		// Story API
		router.POST(onlyTokenAuthRouter, "/api/stories", s.storyDomain.Create)
		router.POST(onlyTokenAuthRouter, "/api/stories/{id}/view", s.storyDomain.View)
		router.DELETE(onlyTokenAuthRouter, "/api/stories/{id}", s.storyDomain.Delete)

		// Music API
		router.POST(onlyTokenAuthRouter, "/api/music", s.musicDomain.Create)
		router.POST(onlyTokenAuthRouter, "/api/music/{id}/like", s.musicDomain.Like)
		router.DELETE(onlyTokenAuthRouter, "/api/music/{id}", s.musicDomain.Delete)

		// Lyrics API
		router.POST(onlyTokenAuthRouter, "/api/lyrics/music/{music_id}", s.lyricsDomain.Upsert)

		// Spotify API
		router.GET(onlyTokenAuthRouter, "/api/spotify/auth", s.spotifyDomain.AuthURL)
		router.GET(onlyTokenAuthRouter, "/api/spotify/callback", s.spotifyDomain.Callback)
		router.GET(onlyTokenAuthRouter, "/api/spotify/integration/{user_id}", s.spotifyDomain.Get)
		router.DELETE(onlyTokenAuthRouter, "/api/spotify/integration/{user_id}", s.spotifyDomain.Disconnect)
		router.GET(onlyTokenAuthRouter, "/api/spotify/top-tracks/{user_id}", s.spotifyDomain.TopTracks)
		router.GET(onlyTokenAuthRouter, "/api/spotify/playlists/{user_id}", s.spotifyDomain.Playlists)
		router.POST(onlyTokenAuthRouter, "/api/spotify/link-track/{user_id}", s.spotifyDomain.LinkTrack)

		// Image API
		router.POST(onlyTokenAuthRouter, "/api/upload/image", s.fileDomain.UploadImage)
	}

	// Admin API.
	adminRouter := onlyTokenAuthRouter.Branch()
	adminRouter.Before(middleware.NewOnlyAdmin(s.profileRepo).Middleware())
	{
		router.GET(adminRouter, "/api/admin/profiles", s.adminDomain.GetProfiles)
		router.GET(adminRouter, "/api/admin/posts", s.adminDomain.GetPosts)
		router.GET(adminRouter, "/api/admin/stories", s.adminDomain.GetStories)
		router.DELETE(adminRouter, "/api/admin/profiles/{id}", s.adminDomain.DeleteProfile)
		router.DELETE(adminRouter, "/api/admin/posts/{id}", s.adminDomain.DeletePost)
		router.DELETE(adminRouter, "/api/admin/stories/{id}", s.adminDomain.DeleteStory)
	}

	// Public API.
	router.POST(s.router, "/api/profiles", s.profileDomain.Create)
	router.GET(s.router, "/api/profiles/{username}", s.profileDomain.GetByUsername)
	router.GET(s.router, "/api/profiles/{username}/followers", s.profileDomain.GetFollowers)
	router.GET(s.router, "/api/profiles/{username}/following", s.profileDomain.GetFollowing)
	router.GET(s.router, "/api/posts", s.postDomain.GetList)
	router.GET(s.router, "/api/posts/{id}", s.postDomain.Get)
	router.GET(s.router, "/api/posts/{id}/comments", s.postDomain.GetComments)
	router.POST(s.router, "/api/posts/{id}/share", s.postDomain.Share)
	router.GET(s.router, "/api/stories", s.storyDomain.GetActive)
	router.GET(s.router, "/api/stories/{id}", s.storyDomain.Get)
	router.GET(s.router, "/api/music", s.musicDomain.GetList)
	router.GET(s.router, "/api/music/trending", s.musicDomain.GetTrending)
	router.GET(s.router, "/api/music/{id}", s.musicDomain.Get)
	router.GET(s.router, "/api/lyrics/music/{music_id}", s.lyricsDomain.GetByMusic)
	router.GET(s.router, "/api/lyrics/search", s.lyricsDomain.Search)
	router.GET(s.router, "/api/lyrics/synced/{id}", s.lyricsDomain.GetSynced)
}
