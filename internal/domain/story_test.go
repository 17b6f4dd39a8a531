package domain

import (
	"testing"
	"time"

	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_storyDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewStoryDomain(deps.storyRepo, deps.ledger)
	ctx = withUser(ctx, "user1")

	_, err := d.Create(ctx, &model.CreateStoryRequest{})
	requireCode(t, err, errorx.BadRequest)

	_, err = d.Create(ctx, &model.CreateStoryRequest{
		Image:     "https://example.com/s.png",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	requireCode(t, err, errorx.BadRequest)

	before := time.Now()
	resp, err := d.Create(ctx, &model.CreateStoryRequest{Image: "https://example.com/s.png"})
	require.NoError(t, err)
	require.Equal(t, "user1", resp.AuthorID)

	expiresAt, err := time.Parse(model.DefaultTimeLayout, resp.ExpiresAt)
	require.NoError(t, err)
	require.WithinDuration(t, before.Add(24*time.Hour), expiresAt, time.Minute)
}

func Test_storyDomain_View(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewStoryDomain(deps.storyRepo, deps.ledger)
	story := testutil.SampleStory(ctx, nil)

	resp, err := d.View(withUser(ctx, "userA"), &model.ViewStoryRequest{ID: story.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Views)

	// The same viewer is counted once.
	resp, err = d.View(withUser(ctx, "userA"), &model.ViewStoryRequest{ID: story.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Views)

	resp, err = d.View(withUser(ctx, "userB"), &model.ViewStoryRequest{ID: story.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Views)
}

func Test_storyDomain_ExpiredIsHidden(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewStoryDomain(deps.storyRepo, deps.ledger)
	active := testutil.SampleStory(ctx, nil)
	expired := testutil.SampleStory(ctx, &entity.Story{ExpiresAt: time.Now().Add(-time.Hour)})

	_, err := d.Get(ctx, &model.GetStoryRequest{ID: expired.ID})
	requireCode(t, err, errorx.NotFound)

	_, err = d.View(withUser(ctx, "userA"), &model.ViewStoryRequest{ID: expired.ID})
	requireCode(t, err, errorx.NotFound)

	resp, err := d.GetActive(ctx, &model.GetActiveStoriesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Stories, 1)
	require.Equal(t, active.ID, resp.Stories[0].ID)
}

func Test_storyDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewStoryDomain(deps.storyRepo, deps.ledger)
	story := testutil.SampleStory(ctx, &entity.Story{AuthorID: "author"})

	_, err := d.View(withUser(ctx, "viewer"), &model.ViewStoryRequest{ID: story.ID})
	require.NoError(t, err)

	_, err = d.Delete(withUser(ctx, "viewer"), &model.DeleteStoryRequest{ID: story.ID})
	requireCode(t, err, errorx.PermissionDenied)

	_, err = d.Delete(withUser(ctx, "author"), &model.DeleteStoryRequest{ID: story.ID})
	require.NoError(t, err)

	_, err = d.Get(ctx, &model.GetStoryRequest{ID: story.ID})
	requireCode(t, err, errorx.NotFound)

	contains, err := deps.storyRepo.Views().Contains(ctx, story.ID, "viewer")
	require.NoError(t, err)
	require.False(t, contains)
}
