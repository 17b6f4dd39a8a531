package domain

import (
	"testing"
	"time"

	"github.com/lyricroom/backend/internal/domain/ledger"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/model"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_adminDomain_GetProfiles(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewAdminDomain(deps.profileRepo, deps.postRepo, deps.storyRepo, deps.ledger)
	alice := testutil.SampleProfile(ctx, nil)
	testutil.SampleProfile(ctx, nil)
	testutil.SamplePost(ctx, &entity.Post{AuthorID: alice.ID})

	resp, err := d.GetProfiles(ctx, &model.AdminGetProfilesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Profiles, 2)

	for _, p := range resp.Profiles {
		require.NotEmpty(t, p.Email)
		if p.ID == alice.ID {
			require.Equal(t, int64(1), p.PostsCount)
		}
	}
}

func Test_adminDomain_GetPosts(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewAdminDomain(deps.profileRepo, deps.postRepo, deps.storyRepo, deps.ledger)
	alice := testutil.SampleProfile(ctx, nil)
	now := time.Now()
	older := testutil.SamplePost(ctx, &entity.Post{
		Base:     entity.Base{ID: "post1", CreatedAt: now.Add(-time.Hour)},
		AuthorID: alice.ID,
	})
	newer := testutil.SamplePost(ctx, &entity.Post{
		Base:     entity.Base{ID: "post2", CreatedAt: now},
		AuthorID: alice.ID,
	})
	_, err := deps.ledger.AppendComment(ctx, older.ID, alice.ID, "first")
	require.NoError(t, err)

	resp, err := d.GetPosts(ctx, &model.AdminGetPostsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 2)
	require.Equal(t, newer.ID, resp.Posts[0].ID)
	require.Equal(t, older.ID, resp.Posts[1].ID)
	require.Equal(t, alice.Username, resp.Posts[1].Author.Username)
	require.Equal(t, int64(1), resp.Posts[1].CommentsCount)

	resp, err = d.GetPosts(ctx, &model.AdminGetPostsRequest{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, older.ID, resp.Posts[0].ID)

	_, err = d.GetPosts(ctx, &model.AdminGetPostsRequest{Limit: -1})
	requireCode(t, err, errorx.BadRequest)
}

func Test_adminDomain_GetStories(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewAdminDomain(deps.profileRepo, deps.postRepo, deps.storyRepo, deps.ledger)
	now := time.Now()
	expired := testutil.SampleStory(ctx, &entity.Story{
		Base:      entity.Base{ID: "story1", CreatedAt: now.Add(-2 * time.Hour)},
		ExpiresAt: now.Add(-time.Hour),
	})
	active := testutil.SampleStory(ctx, &entity.Story{
		Base: entity.Base{ID: "story2", CreatedAt: now},
	})

	resp, err := d.GetStories(ctx, &model.AdminGetStoriesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Stories, 2)
	require.Equal(t, active.ID, resp.Stories[0].ID)
	require.Equal(t, expired.ID, resp.Stories[1].ID)
}

func Test_adminDomain_DeleteProfile(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewAdminDomain(deps.profileRepo, deps.postRepo, deps.storyRepo, deps.ledger)
	alice := testutil.SampleProfile(ctx, nil)
	bob := testutil.SampleProfile(ctx, nil)
	alicePost := testutil.SamplePost(ctx, &entity.Post{AuthorID: alice.ID})
	bobPost := testutil.SamplePost(ctx, &entity.Post{AuthorID: bob.ID})
	require.NoError(t, deps.spotifyRepo.Upsert(ctx, &entity.SpotifyIntegration{
		Base:   entity.Base{ID: "integration1"},
		UserID: alice.ID,
	}))

	_, err := deps.ledger.Follow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = deps.ledger.Toggle(ctx, ledger.PostLikes, bobPost.ID, alice.ID)
	require.NoError(t, err)

	resp, err := d.DeleteProfile(ctx, &model.AdminDeleteProfileRequest{ID: alice.ID})
	require.NoError(t, err)
	require.True(t, resp.Success)

	_, err = deps.profileRepo.GetByID(ctx, alice.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = deps.postRepo.GetByID(ctx, alicePost.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = deps.spotifyRepo.GetByUserID(ctx, alice.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Traces on other aggregates are gone with their counters.
	post, err := deps.postRepo.GetByID(ctx, bobPost.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), post.Likes)

	profile, err := deps.profileRepo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), profile.FollowingCount)

	_, err = d.DeleteProfile(ctx, &model.AdminDeleteProfileRequest{ID: alice.ID})
	requireCode(t, err, errorx.NotFound)
}

func Test_adminDomain_DeletePostAndStory(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps()
	d := NewAdminDomain(deps.profileRepo, deps.postRepo, deps.storyRepo, deps.ledger)
	post := testutil.SamplePost(ctx, nil)
	story := testutil.SampleStory(ctx, nil)

	_, err := d.DeletePost(ctx, &model.AdminDeletePostRequest{ID: post.ID})
	require.NoError(t, err)

	_, err = d.DeletePost(ctx, &model.AdminDeletePostRequest{ID: post.ID})
	requireCode(t, err, errorx.NotFound)

	_, err = d.DeleteStory(ctx, &model.AdminDeleteStoryRequest{ID: story.ID})
	require.NoError(t, err)

	_, err = deps.storyRepo.GetByID(ctx, story.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
