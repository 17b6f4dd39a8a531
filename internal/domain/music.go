package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lyricroom/backend/internal/common"
	"github.com/lyricroom/backend/internal/domain/ledger"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/lyricroom/backend/pkg/xredis"
	"gorm.io/gorm"
)

const musicListLimit = 50

type MusicDomain interface {
	GetList(context.Context, *model.GetListMusicRequest) (*model.GetListMusicResponse, error)
	GetTrending(context.Context, *model.GetTrendingMusicRequest) (*model.GetTrendingMusicResponse, error)
	Get(context.Context, *model.GetMusicRequest) (*model.GetMusicResponse, error)
	Create(context.Context, *model.CreateMusicRequest) (*model.CreateMusicResponse, error)
	Like(context.Context, *model.LikeMusicRequest) (*model.LikeMusicResponse, error)
	Delete(context.Context, *model.DeleteMusicRequest) (*model.DeleteMusicResponse, error)
}

type musicDomain struct {
	musicRepo   repository.MusicRepository
	redisClient xredis.Client
	ledger      ledger.Ledger
}

func NewMusicDomain(
	musicRepo repository.MusicRepository,
	redisClient xredis.Client,
	ledger ledger.Ledger,
) *musicDomain {
	return &musicDomain{
		musicRepo:   musicRepo,
		redisClient: redisClient,
		ledger:      ledger,
	}
}

func (d *musicDomain) GetList(
	ctx context.Context, req *model.GetListMusicRequest,
) (*model.GetListMusicResponse, error) {
	musics, err := d.musicRepo.GetList(ctx, repository.GetListMusicFilter{
		Genre:  req.Genre,
		Artist: req.Artist,
		Q:      req.Search,
		Limit:  musicListLimit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get music list: %v", err)
		return nil, errorx.Unknown
	}

	clientMusics := []model.Music{}
	for _, m := range musics {
		clientMusics = append(clientMusics, model.ConvertMusic(&m))
	}

	return &model.GetListMusicResponse{Music: clientMusics}, nil
}

// GetTrending ranks tracks by the plays counted since the trending board was
// created.
func (d *musicDomain) GetTrending(
	ctx context.Context, req *model.GetTrendingMusicRequest,
) (*model.GetTrendingMusicResponse, error) {
	offset, limit, err := checkPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	if d.redisClient == nil {
		return &model.GetTrendingMusicResponse{Music: []model.TrendingMusic{}}, nil
	}

	zs, err := d.redisClient.ZRevRangeWithScores(ctx, common.RedisKeyTrendingMusic, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get trending music: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	scores := map[string]int64{}
	for _, z := range zs {
		id := fmt.Sprint(z.Member)
		ids = append(ids, id)
		scores[id] = int64(z.Score)
	}

	musics, err := d.musicRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get music: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.TrendingMusic{}
	for _, m := range orderByIDs(ids, musics, musicKey) {
		result = append(result, model.TrendingMusic{
			Music: model.ConvertMusic(&m),
			Score: scores[m.ID],
		})
	}

	return &model.GetTrendingMusicResponse{Music: result}, nil
}

// Get counts a play on every call.
func (d *musicDomain) Get(ctx context.Context, req *model.GetMusicRequest) (*model.GetMusicResponse, error) {
	if _, err := d.ledger.Increment(ctx, ledger.MusicPlays, req.ID); err != nil {
		if errors.Is(err, errorx.New(errorx.NotFound, "")) {
			return nil, errorx.New(errorx.NotFound, "Music not found")
		}

		return nil, err
	}

	music, err := d.musicRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Music not found")
	}

	resp := model.GetMusicResponse(model.ConvertMusic(music))
	return &resp, nil
}

func (d *musicDomain) Create(
	ctx context.Context, req *model.CreateMusicRequest,
) (*model.CreateMusicResponse, error) {
	uploaderID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	music, err := createMusic(ctx, d.musicRepo, &entity.Music{
		Title:      req.Title,
		Artist:     req.Artist,
		Album:      req.Album,
		Duration:   req.Duration,
		ImageURL:   req.ImageURL,
		AudioURL:   req.AudioURL,
		Genre:      req.Genre,
		UploadedBy: uploaderID,
	}, req.SpotifyID)
	if err != nil {
		return nil, err
	}

	resp := model.CreateMusicResponse(model.ConvertMusic(music))
	return &resp, nil
}

func (d *musicDomain) Like(ctx context.Context, req *model.LikeMusicRequest) (*model.LikeMusicResponse, error) {
	userID, err := resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	result, err := d.ledger.Toggle(ctx, ledger.MusicLikes, req.ID, userID)
	if err != nil {
		return nil, err
	}

	music, err := d.musicRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Music not found")
	}

	return &model.LikeMusicResponse{Music: model.ConvertMusic(music), Liked: result.Member}, nil
}

func (d *musicDomain) Delete(
	ctx context.Context, req *model.DeleteMusicRequest,
) (*model.DeleteMusicResponse, error) {
	music, err := d.musicRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Music not found")
	}

	if music.UploadedBy != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the uploader can delete the music")
	}

	if err := d.ledger.Purge(ctx, ledger.KindMusic, req.ID); err != nil {
		return nil, err
	}

	return &model.DeleteMusicResponse{Message: "Music deleted"}, nil
}

// createMusic validates and stores a track. A spotify id can be linked to one
// track only.
func createMusic(
	ctx context.Context, musicRepo repository.MusicRepository, music *entity.Music, spotifyID string,
) (*entity.Music, error) {
	if music.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Title is required")
	}

	if music.Artist == "" {
		return nil, errorx.New(errorx.BadRequest, "Artist is required")
	}

	if music.Duration < 0 {
		return nil, errorx.New(errorx.BadRequest, "Duration must be non-negative")
	}

	if spotifyID != "" {
		_, err := musicRepo.GetBySpotifyID(ctx, spotifyID)
		if err == nil {
			return nil, errorx.New(errorx.AlreadyExists, "The spotify track is already linked")
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get music by spotify id: %v", err)
			return nil, errorx.Unknown
		}

		music.SpotifyID = sql.NullString{String: spotifyID, Valid: true}
	}

	if music.Genre == nil {
		music.Genre = entity.Array[string]{}
	}

	music.ID = uuid.NewString()
	if err := musicRepo.Create(ctx, music); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create music: %v", err)
		return nil, errorx.Unknown
	}

	return music, nil
}
