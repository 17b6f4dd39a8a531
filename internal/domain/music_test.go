package domain

import (
	"context"
	"testing"

	"github.com/lyricroom/backend/internal/common"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func Test_musicDomain_GetCountsPlays(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewMusicDomain(deps.musicRepo, deps.redis, deps.ledger)
	music := testutil.SampleMusic(ctx, nil)

	trending := map[string]int64{}
	deps.redis.ZIncrByFunc = func(ctx context.Context, key string, incr int64, member string) error {
		require.Equal(t, common.RedisKeyTrendingMusic, key)
		trending[member] += incr
		return nil
	}

	resp, err := d.Get(ctx, &model.GetMusicRequest{ID: music.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Plays)

	resp, err = d.Get(ctx, &model.GetMusicRequest{ID: music.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Plays)
	require.Equal(t, map[string]int64{music.ID: 2}, trending)

	_, err = d.Get(ctx, &model.GetMusicRequest{ID: "missing"})
	requireCode(t, err, errorx.NotFound)
	require.Equal(t, "Music not found", err.Error())
}

func Test_musicDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewMusicDomain(deps.musicRepo, deps.redis, deps.ledger)
	ctx = withUser(ctx, "uploader")

	_, err := d.Create(ctx, &model.CreateMusicRequest{Artist: "Queen"})
	requireCode(t, err, errorx.BadRequest)

	_, err = d.Create(ctx, &model.CreateMusicRequest{Title: "Bohemian Rhapsody"})
	requireCode(t, err, errorx.BadRequest)

	_, err = d.Create(ctx, &model.CreateMusicRequest{Title: "Bohemian Rhapsody", Artist: "Queen", Duration: -1})
	requireCode(t, err, errorx.BadRequest)

	resp, err := d.Create(ctx, &model.CreateMusicRequest{
		Title:     "Bohemian Rhapsody",
		Artist:    "Queen",
		Duration:  354,
		SpotifyID: "sp1",
		Genre:     []string{"rock"},
	})
	require.NoError(t, err)
	require.Equal(t, "uploader", resp.UploadedBy)
	require.Equal(t, "sp1", resp.SpotifyID)
	require.Equal(t, []string{"rock"}, resp.Genre)

	_, err = d.Create(ctx, &model.CreateMusicRequest{Title: "Other", Artist: "Queen", SpotifyID: "sp1"})
	requireCode(t, err, errorx.AlreadyExists)

	// Tracks without a spotify id do not collide.
	_, err = d.Create(ctx, &model.CreateMusicRequest{Title: "A", Artist: "B"})
	require.NoError(t, err)
	_, err = d.Create(ctx, &model.CreateMusicRequest{Title: "C", Artist: "D"})
	require.NoError(t, err)
}

func Test_musicDomain_Like(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewMusicDomain(deps.musicRepo, deps.redis, deps.ledger)
	music := testutil.SampleMusic(ctx, nil)

	resp, err := d.Like(withUser(ctx, "userA"), &model.LikeMusicRequest{ID: music.ID})
	require.NoError(t, err)
	require.True(t, resp.Liked)
	require.Equal(t, int64(1), resp.Music.LikesCount)

	resp, err = d.Like(withUser(ctx, "userA"), &model.LikeMusicRequest{ID: music.ID})
	require.NoError(t, err)
	require.False(t, resp.Liked)
	require.Equal(t, int64(0), resp.Music.LikesCount)
}

func Test_musicDomain_GetTrending(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewMusicDomain(deps.musicRepo, deps.redis, deps.ledger)
	music1 := testutil.SampleMusic(ctx, nil)
	music2 := testutil.SampleMusic(ctx, nil)

	deps.redis.ZRevRangeWithScoresFunc = func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
		require.Equal(t, common.RedisKeyTrendingMusic, key)
		require.Equal(t, 0, offset)
		require.Equal(t, 20, limit)
		return []redis.Z{
			{Member: music2.ID, Score: 7},
			{Member: "deleted-music", Score: 5},
			{Member: music1.ID, Score: 3},
		}, nil
	}

	resp, err := d.GetTrending(ctx, &model.GetTrendingMusicRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Music, 2)
	require.Equal(t, music2.ID, resp.Music[0].ID)
	require.Equal(t, int64(7), resp.Music[0].Score)
	require.Equal(t, music1.ID, resp.Music[1].ID)
	require.Equal(t, int64(3), resp.Music[1].Score)
}

func Test_musicDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewMusicDomain(deps.musicRepo, deps.redis, deps.ledger)
	music := testutil.SampleMusic(ctx, &entity.Music{UploadedBy: "uploader"})
	lyrics := testutil.SampleLyrics(ctx, &entity.Lyrics{MusicID: music.ID})

	var deletedLyrics []string
	deps.indexer.DeleteLyricsFunc = func(ctx context.Context, id string) error {
		deletedLyrics = append(deletedLyrics, id)
		return nil
	}

	_, err := d.Delete(withUser(ctx, "other"), &model.DeleteMusicRequest{ID: music.ID})
	requireCode(t, err, errorx.PermissionDenied)

	_, err = d.Delete(withUser(ctx, "uploader"), &model.DeleteMusicRequest{ID: music.ID})
	require.NoError(t, err)
	require.Equal(t, []string{lyrics.ID}, deletedLyrics)

	_, err = deps.lyricsRepo.GetByMusicID(ctx, music.ID)
	require.Error(t, err)
}
