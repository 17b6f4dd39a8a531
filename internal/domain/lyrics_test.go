package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/lyricroom/backend/internal/domain/search"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_lyricsDomain_UpsertAndSearch(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	index := search.NewBleveIndex(ctx)
	defer index.Close()

	d := NewLyricsDomain(deps.lyricsRepo, deps.musicRepo, index, deps.ledger)
	music := testutil.SampleMusic(ctx, &entity.Music{Title: "Yesterday", Artist: "The Beatles"})

	_, err := d.Upsert(ctx, &model.UpsertLyricsRequest{MusicID: music.ID})
	requireCode(t, err, errorx.BadRequest)

	_, err = d.Upsert(ctx, &model.UpsertLyricsRequest{MusicID: "missing", Lyrics: "la la"})
	requireCode(t, err, errorx.NotFound)

	created, err := d.Upsert(ctx, &model.UpsertLyricsRequest{
		MusicID: music.ID,
		Lyrics:  "Yesterday all my troubles seemed so far away",
		Source:  "manual",
		Translations: []model.Translation{
			{Language: "fr", Lyrics: "Hier"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Yesterday", created.Title)
	require.Equal(t, "The Beatles", created.Artist)
	require.Equal(t, "en", created.Language)

	resp, err := d.Search(ctx, &model.SearchLyricsRequest{Q: "troubles"})
	require.NoError(t, err)
	require.Len(t, resp.Lyrics, 1)
	require.Equal(t, created.ID, resp.Lyrics[0].ID)

	// Updating replaces the text and keeps what the request omits.
	updated, err := d.Upsert(ctx, &model.UpsertLyricsRequest{
		MusicID: music.ID,
		Lyrics:  "Suddenly I'm not half the man I used to be",
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "manual", updated.Source)
	require.Equal(t, []model.Translation{{Language: "fr", Lyrics: "Hier"}}, updated.Translations)

	resp, err = d.Search(ctx, &model.SearchLyricsRequest{Q: "troubles"})
	require.NoError(t, err)
	require.Empty(t, resp.Lyrics)

	resp, err = d.Search(ctx, &model.SearchLyricsRequest{Q: "suddenly"})
	require.NoError(t, err)
	require.Len(t, resp.Lyrics, 1)

	_, err = d.Search(ctx, &model.SearchLyricsRequest{})
	requireCode(t, err, errorx.BadRequest)
}

func Test_lyricsDomain_Upsert_IndexFailureIsIgnored(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	deps.indexer.IndexLyricsFunc = func(ctx context.Context, id string, data search.LyricsData) error {
		return errors.New("index is down")
	}

	d := NewLyricsDomain(deps.lyricsRepo, deps.musicRepo, deps.indexer, deps.ledger)
	music := testutil.SampleMusic(ctx, nil)

	resp, err := d.Upsert(ctx, &model.UpsertLyricsRequest{MusicID: music.ID, Lyrics: "la la la"})
	require.NoError(t, err)
	require.Equal(t, "la la la", resp.Lyrics)
}

func Test_lyricsDomain_GetByMusic_CountsViews(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewLyricsDomain(deps.lyricsRepo, deps.musicRepo, deps.indexer, deps.ledger)
	music := testutil.SampleMusic(ctx, nil)
	testutil.SampleLyrics(ctx, &entity.Lyrics{MusicID: music.ID})

	resp, err := d.GetByMusic(ctx, &model.GetLyricsByMusicRequest{MusicID: music.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Views)

	resp, err = d.GetByMusic(ctx, &model.GetLyricsByMusicRequest{MusicID: music.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Views)

	_, err = d.GetByMusic(ctx, &model.GetLyricsByMusicRequest{MusicID: "missing"})
	requireCode(t, err, errorx.NotFound)
}

func Test_lyricsDomain_GetSynced(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewLyricsDomain(deps.lyricsRepo, deps.musicRepo, deps.indexer, deps.ledger)
	music := testutil.SampleMusic(ctx, nil)
	plain := testutil.SampleLyrics(ctx, nil)

	_, err := d.Upsert(ctx, &model.UpsertLyricsRequest{
		MusicID: music.ID,
		Lyrics:  "line one\nline two",
		Synced:  true,
	})
	requireCode(t, err, errorx.BadRequest)

	synced, err := d.Upsert(ctx, &model.UpsertLyricsRequest{
		MusicID: music.ID,
		Lyrics:  "line one\nline two",
		Synced:  true,
		SyncedLyrics: []model.SyncedLine{
			{Timestamp: 0, Text: "line one"},
			{Timestamp: 2500, Text: "line two"},
		},
	})
	require.NoError(t, err)

	resp, err := d.GetSynced(ctx, &model.GetSyncedLyricsRequest{ID: synced.ID})
	require.NoError(t, err)
	require.Equal(t, []model.SyncedLine{
		{Timestamp: 0, Text: "line one"},
		{Timestamp: 2500, Text: "line two"},
	}, resp.SyncedLyrics)

	_, err = d.GetSynced(ctx, &model.GetSyncedLyricsRequest{ID: plain.ID})
	requireCode(t, err, errorx.BadRequest)

	_, err = d.GetSynced(ctx, &model.GetSyncedLyricsRequest{ID: "missing"})
	requireCode(t, err, errorx.NotFound)
}
