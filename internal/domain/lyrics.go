package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lyricroom/backend/internal/domain/ledger"
	"github.com/lyricroom/backend/internal/domain/search"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	lyricsSearchLimit = 20
	defaultLanguage   = "en"
)

type LyricsDomain interface {
	GetByMusic(context.Context, *model.GetLyricsByMusicRequest) (*model.GetLyricsByMusicResponse, error)
	Search(context.Context, *model.SearchLyricsRequest) (*model.SearchLyricsResponse, error)
	Upsert(context.Context, *model.UpsertLyricsRequest) (*model.UpsertLyricsResponse, error)
	GetSynced(context.Context, *model.GetSyncedLyricsRequest) (*model.GetSyncedLyricsResponse, error)
}

type lyricsDomain struct {
	lyricsRepo repository.LyricsRepository
	musicRepo  repository.MusicRepository
	indexer    search.Indexer
	ledger     ledger.Ledger
}

func NewLyricsDomain(
	lyricsRepo repository.LyricsRepository,
	musicRepo repository.MusicRepository,
	indexer search.Indexer,
	ledger ledger.Ledger,
) *lyricsDomain {
	return &lyricsDomain{
		lyricsRepo: lyricsRepo,
		musicRepo:  musicRepo,
		indexer:    indexer,
		ledger:     ledger,
	}
}

// GetByMusic counts a view on every call.
func (d *lyricsDomain) GetByMusic(
	ctx context.Context, req *model.GetLyricsByMusicRequest,
) (*model.GetLyricsByMusicResponse, error) {
	lyrics, err := d.lyricsRepo.GetByMusicID(ctx, req.MusicID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Lyrics not found")
	}

	views, err := d.ledger.Increment(ctx, ledger.LyricsViews, lyrics.ID)
	if err != nil {
		return nil, err
	}

	// The cached copy is not invalidated by a view.
	lyrics.Views = views

	resp := model.GetLyricsByMusicResponse(model.ConvertLyrics(lyrics))
	return &resp, nil
}

func (d *lyricsDomain) Search(
	ctx context.Context, req *model.SearchLyricsRequest,
) (*model.SearchLyricsResponse, error) {
	if req.Q == "" {
		return nil, errorx.New(errorx.BadRequest, "Query is required")
	}

	if req.Limit == 0 {
		req.Limit = lyricsSearchLimit
	}

	offset, limit, err := checkPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	ids, err := d.indexer.SearchLyrics(ctx, req.Q, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search lyrics: %v", err)
		return nil, errorx.Unknown
	}

	lyrics, err := d.lyricsRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get lyrics: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Lyrics{}
	for _, l := range orderByIDs(ids, lyrics, lyricsKey) {
		result = append(result, model.ConvertLyrics(&l))
	}

	return &model.SearchLyricsResponse{Lyrics: result}, nil
}

// Upsert creates the lyrics of a music or replaces the text of the existing
// ones. Fields missing from an update keep their previous values.
func (d *lyricsDomain) Upsert(
	ctx context.Context, req *model.UpsertLyricsRequest,
) (*model.UpsertLyricsResponse, error) {
	if req.MusicID == "" {
		return nil, errorx.New(errorx.BadRequest, "Music id is required")
	}

	if req.Lyrics == "" {
		return nil, errorx.New(errorx.BadRequest, "Lyrics are required")
	}

	music, err := d.musicRepo.GetByID(ctx, req.MusicID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Music not found")
	}

	lyrics := &entity.Lyrics{
		Base:         entity.Base{ID: uuid.NewString()},
		MusicID:      music.ID,
		Title:        req.Title,
		Artist:       req.Artist,
		Lyrics:       req.Lyrics,
		Language:     req.Language,
		Synced:       req.Synced,
		SyncedLyrics: convertSyncedLines(req.SyncedLyrics),
		Translations: convertTranslations(req.Translations),
		Source:       req.Source,
	}

	existing, err := d.lyricsRepo.GetByMusicID(ctx, req.MusicID)
	switch {
	case err == nil:
		mergeLyrics(lyrics, existing, req)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		xcontext.Logger(ctx).Errorf("Cannot get lyrics: %v", err)
		return nil, errorx.Unknown
	}

	if lyrics.Title == "" {
		lyrics.Title = music.Title
	}

	if lyrics.Artist == "" {
		lyrics.Artist = music.Artist
	}

	if lyrics.Language == "" {
		lyrics.Language = defaultLanguage
	}

	if lyrics.Synced && len(lyrics.SyncedLyrics) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Synced lyrics need timed lines")
	}

	if err := d.lyricsRepo.Upsert(ctx, lyrics); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert lyrics: %v", err)
		return nil, errorx.Unknown
	}

	saved, err := d.lyricsRepo.GetByMusicID(ctx, req.MusicID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Lyrics not found")
	}

	err = d.indexer.IndexLyrics(ctx, saved.ID, search.LyricsData{
		Title:  saved.Title,
		Artist: saved.Artist,
		Lyrics: saved.Lyrics,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index lyrics %s: %v", saved.ID, err)
	}

	resp := model.UpsertLyricsResponse(model.ConvertLyrics(saved))
	return &resp, nil
}

func (d *lyricsDomain) GetSynced(
	ctx context.Context, req *model.GetSyncedLyricsRequest,
) (*model.GetSyncedLyricsResponse, error) {
	lyrics, err := d.lyricsRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, notFoundOr(ctx, err, "Lyrics not found")
	}

	if !lyrics.Synced {
		return nil, errorx.New(errorx.BadRequest, "Lyrics not synced")
	}

	return &model.GetSyncedLyricsResponse{
		Title:        lyrics.Title,
		Artist:       lyrics.Artist,
		SyncedLyrics: model.ConvertSyncedLines(lyrics.SyncedLyrics),
	}, nil
}

func mergeLyrics(lyrics, existing *entity.Lyrics, req *model.UpsertLyricsRequest) {
	lyrics.ID = existing.ID
	if lyrics.Title == "" {
		lyrics.Title = existing.Title
	}

	if lyrics.Artist == "" {
		lyrics.Artist = existing.Artist
	}

	if lyrics.Language == "" {
		lyrics.Language = existing.Language
	}

	if lyrics.Source == "" {
		lyrics.Source = existing.Source
	}

	if req.SyncedLyrics == nil {
		lyrics.SyncedLyrics = existing.SyncedLyrics
		lyrics.Synced = lyrics.Synced || existing.Synced
	}

	if req.Translations == nil {
		lyrics.Translations = existing.Translations
	}
}

func convertSyncedLines(lines []model.SyncedLine) entity.Array[entity.SyncedLine] {
	if lines == nil {
		return nil
	}

	result := entity.Array[entity.SyncedLine]{}
	for _, l := range lines {
		result = append(result, entity.SyncedLine{Timestamp: l.Timestamp, Text: l.Text})
	}
	return result
}

func convertTranslations(translations []model.Translation) entity.Array[entity.Translation] {
	if translations == nil {
		return nil
	}

	result := entity.Array[entity.Translation]{}
	for _, t := range translations {
		result = append(result, entity.Translation{Language: t.Language, Lyrics: t.Lyrics})
	}
	return result
}
