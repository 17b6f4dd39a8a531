package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/lyricroom/backend/config"
	"github.com/lyricroom/backend/internal/domain"
	"github.com/lyricroom/backend/internal/domain/ledger"
	"github.com/lyricroom/backend/internal/domain/search"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/api/spotify"
	"github.com/lyricroom/backend/pkg/authenticator"
	"github.com/lyricroom/backend/pkg/kafka"
	"github.com/lyricroom/backend/pkg/logger"
	"github.com/lyricroom/backend/pkg/nats"
	"github.com/lyricroom/backend/pkg/pubsub"
	"github.com/lyricroom/backend/pkg/router"
	"github.com/lyricroom/backend/pkg/storage"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/lyricroom/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	server *http.Server
	router *router.Router

	redisClient xredis.Client
	publisher   pubsub.Publisher
	storage     storage.Storage
	indexer     search.Indexer
	spotify     spotify.IEndpoint

	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	storyRepo   repository.StoryRepository
	musicRepo   repository.MusicRepository
	lyricsRepo  repository.LyricsRepository
	spotifyRepo repository.SpotifyRepository

	ledger ledger.Ledger

	profileDomain domain.ProfileDomain
	postDomain    domain.PostDomain
	storyDomain   domain.StoryDomain
	musicDomain   domain.MusicDomain
	lyricsDomain  domain.LyricsDomain
	spotifyDomain domain.SpotifyDomain
	fileDomain    domain.FileDomain
	adminDomain   domain.AdminDomain
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String(configFlag.Name))
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.ParseLevel(cfg.LogLevel)))
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	s.ctx = xcontext.WithSessionStore(s.ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
	return nil
}

func (s *srv) newDatabase() (*gorm.DB, error) {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows only one writer.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Error
	}
}

func (s *srv) loadDatabase() error {
	db, err := s.newDatabase()
	if err != nil {
		return fmt.Errorf("cannot connect database: %w", err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

// loadRedisClient leaves the cache disabled when no address is configured.
func (s *srv) loadRedisClient() error {
	if xcontext.Configs(s.ctx).Redis.Addr == "" {
		xcontext.Logger(s.ctx).Warnf("Redis is not configured, cache and trending board are disabled")
		return nil
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		return fmt.Errorf("cannot connect redis: %w", err)
	}

	s.redisClient = client
	return nil
}

func (s *srv) loadPublisher() error {
	cfg := xcontext.Configs(s.ctx)

	var err error
	switch cfg.PubSub.Driver {
	case "":
		return nil
	case "kafka":
		s.publisher, err = kafka.NewPublisher("lyricroom", []string{cfg.Kafka.Addr})
	case "nats":
		s.publisher, err = nats.NewPublisher(s.ctx, "lyricroom", cfg.Nats.URL)
	default:
		return fmt.Errorf("unsupported pubsub driver %s", cfg.PubSub.Driver)
	}

	if err != nil {
		return fmt.Errorf("cannot connect %s: %w", cfg.PubSub.Driver, err)
	}

	return nil
}

func (s *srv) loadStorage() error {
	var err error
	s.storage, err = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
	return err
}

func (s *srv) loadIndexer() {
	s.indexer = search.NewBleveIndex(s.ctx)
}

func (s *srv) loadEndpoint() {
	s.spotify = spotify.New(xcontext.Configs(s.ctx).Spotify)
}

func (s *srv) loadRepos() {
	s.profileRepo = repository.NewProfileRepository(s.redisClient)
	s.postRepo = repository.NewPostRepository(s.redisClient)
	s.storyRepo = repository.NewStoryRepository(s.redisClient)
	s.musicRepo = repository.NewMusicRepository(s.redisClient)
	s.lyricsRepo = repository.NewLyricsRepository(s.redisClient)
	s.spotifyRepo = repository.NewSpotifyRepository()
}

func (s *srv) loadLedger() {
	s.ledger = ledger.NewLedger(
		s.profileRepo,
		s.postRepo,
		s.storyRepo,
		s.musicRepo,
		s.lyricsRepo,
		s.spotifyRepo,
		s.redisClient,
		s.publisher,
		s.indexer,
	)
}

func (s *srv) loadDomains() {
	s.profileDomain = domain.NewProfileDomain(s.profileRepo, s.postRepo, s.ledger, s.storage)
	s.postDomain = domain.NewPostDomain(s.postRepo, s.profileRepo, s.ledger)
	s.storyDomain = domain.NewStoryDomain(s.storyRepo, s.ledger)
	s.musicDomain = domain.NewMusicDomain(s.musicRepo, s.redisClient, s.ledger)
	s.lyricsDomain = domain.NewLyricsDomain(s.lyricsRepo, s.musicRepo, s.indexer, s.ledger)
	s.spotifyDomain = domain.NewSpotifyDomain(s.spotifyRepo, s.musicRepo, s.spotify)
	s.fileDomain = domain.NewFileDomain(s.storage)
	s.adminDomain = domain.NewAdminDomain(s.profileRepo, s.postRepo, s.storyRepo, s.ledger)
}

// shutdownTimeout bounds the graceful stop of the http server.
const shutdownTimeout = 10 * time.Second
