package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/pubsub"
	"github.com/lyricroom/backend/pkg/testutil"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type testLedger struct {
	*ledger
	redis     *testutil.MockRedisClient
	publisher *testutil.MockPublisher
	indexer   *testutil.MockSearchIndexer
}

func newTestLedger() *testLedger {
	redisClient := &testutil.MockRedisClient{}
	publisher := &testutil.MockPublisher{}
	indexer := &testutil.MockSearchIndexer{}

	return &testLedger{
		ledger: NewLedger(
			repository.NewProfileRepository(redisClient),
			repository.NewPostRepository(redisClient),
			repository.NewStoryRepository(redisClient),
			repository.NewMusicRepository(redisClient),
			repository.NewLyricsRepository(redisClient),
			repository.NewSpotifyRepository(),
			redisClient,
			publisher,
			indexer,
		),
		redis:     redisClient,
		publisher: publisher,
		indexer:   indexer,
	}
}

func requireCode(t *testing.T, err error, code errorx.Code) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(code, ""))
}

func Test_ledger_Toggle_PostLike(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	post := testutil.SamplePost(ctx, nil)

	result, err := l.Toggle(ctx, PostLikes, post.ID, "userA")
	require.NoError(t, err)
	require.Equal(t, &MembershipResult{Member: true, Changed: true, Count: 1}, result)

	result, err = l.Toggle(ctx, PostLikes, post.ID, "userB")
	require.NoError(t, err)
	require.Equal(t, int64(2), result.Count)

	// Toggling again removes the actor.
	result, err = l.Toggle(ctx, PostLikes, post.ID, "userA")
	require.NoError(t, err)
	require.Equal(t, &MembershipResult{Member: false, Changed: true, Count: 1}, result)

	members, err := l.postRepo.Likes().Members(ctx, post.ID, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"userB"}, members)
}

func Test_ledger_Toggle_DoubleToggleRestoresState(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	music := testutil.SampleMusic(ctx, &entity.Music{LikesCount: 0})

	for i := 0; i < 2; i++ {
		_, err := l.Toggle(ctx, MusicLikes, music.ID, "userA")
		require.NoError(t, err)
	}

	likes, err := l.musicRepo.Counter(ctx, music.ID, "likes_count")
	require.NoError(t, err)
	require.Equal(t, int64(0), likes)

	contains, err := l.musicRepo.Likes().Contains(ctx, music.ID, "userA")
	require.NoError(t, err)
	require.False(t, contains)
}

func Test_ledger_Toggle_SaveHasNoCounter(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	post := testutil.SamplePost(ctx, nil)

	result, err := l.Toggle(ctx, PostSaves, post.ID, "userA")
	require.NoError(t, err)
	require.Equal(t, &MembershipResult{Member: true, Changed: true, Count: 1}, result)

	saved, err := l.postRepo.Saves().ListByActor(ctx, "userA", 0, 10)
	require.NoError(t, err)
	require.Equal(t, []string{post.ID}, saved)

	result, err = l.Toggle(ctx, PostSaves, post.ID, "userA")
	require.NoError(t, err)
	require.Equal(t, &MembershipResult{Member: false, Changed: true, Count: 0}, result)
}

func Test_ledger_Toggle_Validation(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	post := testutil.SamplePost(ctx, nil)

	_, err := l.Toggle(ctx, PostLikes, "missing-post", "userA")
	requireCode(t, err, errorx.NotFound)

	_, err = l.Toggle(ctx, PostLikes, post.ID, "")
	requireCode(t, err, errorx.BadRequest)

	_, err = l.Toggle(ctx, Relation("unknown"), post.ID, "userA")
	requireCode(t, err, errorx.BadRequest)

	// Nothing was written by the failed calls.
	count, err := l.postRepo.Likes().Count(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
	require.Empty(t, l.publisher.Packs())
}

func Test_ledger_Add_StoryViewCountsOnce(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	story := testutil.SampleStory(ctx, nil)

	result, err := l.Add(ctx, StoryViews, story.ID, "userA")
	require.NoError(t, err)
	require.Equal(t, &MembershipResult{Member: true, Changed: true, Count: 1}, result)

	result, err = l.Add(ctx, StoryViews, story.ID, "userA")
	require.NoError(t, err)
	require.Equal(t, &MembershipResult{Member: true, Changed: false, Count: 1}, result)

	_, err = l.Add(ctx, StoryViews, story.ID, "userB")
	require.NoError(t, err)

	views, err := l.storyRepo.Counter(ctx, story.ID, "views")
	require.NoError(t, err)
	require.Equal(t, int64(2), views)
}

func Test_ledger_Remove(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	post := testutil.SamplePost(ctx, nil)

	result, err := l.Remove(ctx, PostLikes, post.ID, "userA")
	require.NoError(t, err)
	require.Equal(t, &MembershipResult{Member: false, Changed: false, Count: 0}, result)

	_, err = l.Add(ctx, PostLikes, post.ID, "userA")
	require.NoError(t, err)

	result, err = l.Remove(ctx, PostLikes, post.ID, "userA")
	require.NoError(t, err)
	require.Equal(t, &MembershipResult{Member: false, Changed: true, Count: 0}, result)
}

func Test_ledger_Follow(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	alice := testutil.SampleProfile(ctx, nil)
	bob := testutil.SampleProfile(ctx, nil)

	result, err := l.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, &FollowResult{Following: true, Changed: true, FollowersCount: 1, FollowingCount: 1}, result)

	// Following again is a no-op.
	result, err = l.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, &FollowResult{Following: true, Changed: false, FollowersCount: 1, FollowingCount: 1}, result)

	followers, err := l.profileRepo.Follows().Members(ctx, bob.ID, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []string{alice.ID}, followers)

	following, err := l.profileRepo.Follows().ListByActor(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []string{bob.ID}, following)

	// The reverse direction is independent.
	reverse, err := l.profileRepo.Follows().Contains(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, reverse)

	result, err = l.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, &FollowResult{Following: false, Changed: true, FollowersCount: 0, FollowingCount: 0}, result)

	result, err = l.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, result.Changed)

	p, err := l.profileRepo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), p.FollowingCount)
	require.Equal(t, int64(0), p.FollowersCount)
}

func Test_ledger_Follow_Invalid(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	alice := testutil.SampleProfile(ctx, nil)

	_, err := l.Follow(ctx, alice.ID, alice.ID)
	requireCode(t, err, errorx.BadRequest)

	_, err = l.Follow(ctx, alice.ID, "missing")
	requireCode(t, err, errorx.NotFound)

	_, err = l.Follow(ctx, "missing", alice.ID)
	requireCode(t, err, errorx.NotFound)

	_, err = l.Unfollow(ctx, "", alice.ID)
	requireCode(t, err, errorx.BadRequest)

	p, err := l.profileRepo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), p.FollowersCount)
}

func Test_ledger_Increment(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	music := testutil.SampleMusic(ctx, nil)
	post := testutil.SamplePost(ctx, nil)
	lyrics := testutil.SampleLyrics(ctx, &entity.Lyrics{MusicID: music.ID})

	var trending []string
	l.redis.ZIncrByFunc = func(ctx context.Context, key string, incr int64, member string) error {
		trending = append(trending, member)
		return nil
	}

	for i := 1; i <= 3; i++ {
		plays, err := l.Increment(ctx, MusicPlays, music.ID)
		require.NoError(t, err)
		require.Equal(t, int64(i), plays)
	}
	require.Equal(t, []string{music.ID, music.ID, music.ID}, trending)

	shares, err := l.Increment(ctx, PostShares, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), shares)

	views, err := l.Increment(ctx, LyricsViews, lyrics.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), views)

	_, err = l.Increment(ctx, MusicPlays, "missing")
	requireCode(t, err, errorx.NotFound)
}

func Test_ledger_AppendComment(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	post := testutil.SamplePost(ctx, nil)

	texts := []string{"first", "", "third"}
	for _, text := range texts {
		_, err := l.AppendComment(ctx, post.ID, "userA", text)
		require.NoError(t, err)
	}

	comments, err := l.postRepo.GetComments(ctx, post.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	for i, c := range comments {
		require.Equal(t, texts[i], c.Text)
		require.Equal(t, "userA", c.AuthorID)
		require.False(t, c.CreatedAt.IsZero())
	}

	_, err = l.AppendComment(ctx, post.ID, "", "text")
	requireCode(t, err, errorx.BadRequest)

	_, err = l.AppendComment(ctx, "missing", "userA", "text")
	requireCode(t, err, errorx.NotFound)
}

func Test_ledger_ConcurrentToggles(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	post := testutil.SamplePost(ctx, nil)

	const n = 20
	eg, _ := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		actor := fmt.Sprintf("user%d", i)
		eg.Go(func() error {
			_, err := l.Toggle(ctx, PostLikes, post.ID, actor)
			return err
		})
	}
	require.NoError(t, eg.Wait())

	// Every second actor toggles again, which removes its like.
	eg, _ = errgroup.WithContext(ctx)
	for i := 0; i < n; i += 2 {
		actor := fmt.Sprintf("user%d", i)
		eg.Go(func() error {
			_, err := l.Toggle(ctx, PostLikes, post.ID, actor)
			return err
		})
	}
	require.NoError(t, eg.Wait())

	likes, err := l.postRepo.Counter(ctx, post.ID, "likes")
	require.NoError(t, err)
	size, err := l.postRepo.Likes().Count(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(n/2), likes)
	require.Equal(t, likes, size)
}

func Test_ledger_ConcurrentFollows(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	target := testutil.SampleProfile(ctx, nil)

	followers := make([]entity.Profile, 10)
	for i := range followers {
		followers[i] = testutil.SampleProfile(ctx, nil)
	}

	eg, _ := errgroup.WithContext(ctx)
	for _, f := range followers {
		followerID := f.ID
		eg.Go(func() error {
			// Two follows by the same actor count once.
			if _, err := l.Follow(ctx, followerID, target.ID); err != nil {
				return err
			}
			_, err := l.Follow(ctx, followerID, target.ID)
			return err
		})
	}
	require.NoError(t, eg.Wait())

	count, err := l.profileRepo.Counter(ctx, target.ID, "followers_count")
	require.NoError(t, err)
	require.Equal(t, int64(len(followers)), count)

	for _, f := range followers {
		following, err := l.profileRepo.Counter(ctx, f.ID, "following_count")
		require.NoError(t, err)
		require.Equal(t, int64(1), following)
	}
}

func Test_ledger_SideEffects(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	post := testutil.SamplePost(ctx, nil)

	var deleted []string
	l.redis.DelFunc = func(ctx context.Context, key ...string) error {
		deleted = append(deleted, key...)
		return nil
	}

	_, err := l.Toggle(ctx, PostLikes, post.ID, "userA")
	require.NoError(t, err)
	require.Equal(t, []string{"cache:post:" + post.ID}, deleted)

	packs := l.publisher.Packs()
	require.Len(t, packs, 1)
	require.Equal(t, []byte(post.ID), packs[0].Key)

	var event EngagementEvent
	require.NoError(t, json.Unmarshal(packs[0].Msg, &event))
	require.Equal(t, KindPost, event.Kind)
	require.Equal(t, ActionLike, event.Action)
	require.Equal(t, "userA", event.ActorID)
	require.Equal(t, int64(1), event.Count)

	// A broken publisher never fails the committed mutation.
	l.publisher.PublishFunc = func(context.Context, string, *pubsub.Pack) error {
		return errors.New("broker is down")
	}
	result, err := l.Toggle(ctx, PostLikes, post.ID, "userA")
	require.NoError(t, err)
	require.False(t, result.Member)

	// A no-op publishes nothing.
	l.publisher.PublishFunc = nil
	_, err = l.Remove(ctx, PostLikes, post.ID, "userA")
	require.NoError(t, err)
	require.Len(t, l.publisher.Packs(), 1)
}

func Test_ledger_Purge_Profile(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	alice := testutil.SampleProfile(ctx, nil)
	bob := testutil.SampleProfile(ctx, nil)
	carol := testutil.SampleProfile(ctx, nil)

	bobPost := testutil.SamplePost(ctx, &entity.Post{AuthorID: bob.ID})
	alicePost := testutil.SamplePost(ctx, &entity.Post{AuthorID: alice.ID})
	aliceStory := testutil.SampleStory(ctx, &entity.Story{AuthorID: alice.ID})
	music := testutil.SampleMusic(ctx, nil)

	_, err := l.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = l.Follow(ctx, carol.ID, alice.ID)
	require.NoError(t, err)
	_, err = l.Toggle(ctx, PostLikes, bobPost.ID, alice.ID)
	require.NoError(t, err)
	_, err = l.Toggle(ctx, PostLikes, alicePost.ID, bob.ID)
	require.NoError(t, err)
	_, err = l.Toggle(ctx, MusicLikes, music.ID, alice.ID)
	require.NoError(t, err)
	_, err = l.AppendComment(ctx, bobPost.ID, alice.ID, "nice")
	require.NoError(t, err)
	_, err = l.Add(ctx, StoryViews, aliceStory.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, l.Purge(ctx, KindProfile, alice.ID))

	exists, err := l.profileRepo.Exists(ctx, alice.ID)
	require.NoError(t, err)
	require.False(t, exists)

	counters := map[string]int64{}
	for name, read := range map[string]func() (int64, error){
		"bob.followers":   func() (int64, error) { return l.profileRepo.Counter(ctx, bob.ID, "followers_count") },
		"carol.following": func() (int64, error) { return l.profileRepo.Counter(ctx, carol.ID, "following_count") },
		"bobPost.likes":   func() (int64, error) { return l.postRepo.Counter(ctx, bobPost.ID, "likes") },
		"music.likes":     func() (int64, error) { return l.musicRepo.Counter(ctx, music.ID, "likes_count") },
		"comments":        func() (int64, error) { return l.postRepo.CountComments(ctx, bobPost.ID) },
	} {
		v, err := read()
		require.NoError(t, err)
		counters[name] = v
	}
	require.Equal(t, map[string]int64{
		"bob.followers":   0,
		"carol.following": 0,
		"bobPost.likes":   0,
		"music.likes":     0,
		"comments":        0,
	}, counters)

	exists, err = l.postRepo.Exists(ctx, alicePost.ID)
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = l.storyRepo.Exists(ctx, aliceStory.ID)
	require.NoError(t, err)
	require.False(t, exists)

	// Bob's like on the deleted post is gone too.
	liked, err := l.postRepo.Likes().ListByActor(ctx, bob.ID, 0, 10)
	require.NoError(t, err)
	require.Empty(t, liked)

	err = l.Purge(ctx, KindProfile, alice.ID)
	requireCode(t, err, errorx.NotFound)
}

type failingSpotifyRepository struct {
	repository.SpotifyRepository
}

func (failingSpotifyRepository) DeleteByUserID(context.Context, string) error {
	return errors.New("connection reset")
}

func Test_ledger_Purge_ProfileRollsBackWithIntegration(t *testing.T) {
	ctx := testutil.MockContext()
	redisClient := &testutil.MockRedisClient{}
	l := NewLedger(
		repository.NewProfileRepository(redisClient),
		repository.NewPostRepository(redisClient),
		repository.NewStoryRepository(redisClient),
		repository.NewMusicRepository(redisClient),
		repository.NewLyricsRepository(redisClient),
		failingSpotifyRepository{SpotifyRepository: repository.NewSpotifyRepository()},
		redisClient,
		&testutil.MockPublisher{},
		&testutil.MockSearchIndexer{},
	)
	alice := testutil.SampleProfile(ctx, nil)
	bob := testutil.SampleProfile(ctx, nil)
	alicePost := testutil.SamplePost(ctx, &entity.Post{AuthorID: alice.ID})

	_, err := l.Follow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	err = l.Purge(ctx, KindProfile, alice.ID)
	requireCode(t, err, errorx.Unknown.Code)

	exists, err := l.profileRepo.Exists(ctx, alice.ID)
	require.NoError(t, err)
	require.True(t, exists)

	_, err = l.postRepo.GetByID(ctx, alicePost.ID)
	require.NoError(t, err)

	following, err := l.profileRepo.Counter(ctx, bob.ID, "following_count")
	require.NoError(t, err)
	require.Equal(t, int64(1), following)
}

func Test_ledger_Purge_Music(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	music := testutil.SampleMusic(ctx, nil)
	lyrics := testutil.SampleLyrics(ctx, &entity.Lyrics{MusicID: music.ID})

	var droppedIndex, droppedTrending []string
	l.indexer.DeleteLyricsFunc = func(ctx context.Context, id string) error {
		droppedIndex = append(droppedIndex, id)
		return nil
	}
	l.redis.ZRemFunc = func(ctx context.Context, key string, members ...string) error {
		droppedTrending = append(droppedTrending, members...)
		return nil
	}

	_, err := l.Toggle(ctx, MusicLikes, music.ID, "userA")
	require.NoError(t, err)

	require.NoError(t, l.Purge(ctx, KindMusic, music.ID))
	require.Equal(t, []string{lyrics.ID}, droppedIndex)
	require.Equal(t, []string{music.ID}, droppedTrending)

	_, err = l.lyricsRepo.GetByMusicID(ctx, music.ID)
	require.Error(t, err)

	count, err := l.musicRepo.Likes().Count(ctx, music.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func Test_ledger_Purge_PostAndStory(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	post := testutil.SamplePost(ctx, nil)
	story := testutil.SampleStory(ctx, nil)

	_, err := l.Toggle(ctx, PostLikes, post.ID, "userA")
	require.NoError(t, err)
	_, err = l.Toggle(ctx, PostSaves, post.ID, "userA")
	require.NoError(t, err)
	_, err = l.AppendComment(ctx, post.ID, "userA", "hi")
	require.NoError(t, err)
	_, err = l.Add(ctx, StoryViews, story.ID, "userA")
	require.NoError(t, err)

	require.NoError(t, l.Purge(ctx, KindPost, post.ID))
	require.NoError(t, l.Purge(ctx, KindStory, story.ID))

	saved, err := l.postRepo.Saves().ListByActor(ctx, "userA", 0, 10)
	require.NoError(t, err)
	require.Empty(t, saved)

	viewed, err := l.storyRepo.Views().ListByActor(ctx, "userA", 0, 10)
	require.NoError(t, err)
	require.Empty(t, viewed)

	err = l.Purge(ctx, KindLyrics, "anything")
	requireCode(t, err, errorx.BadRequest)
}

func Test_ledger_run_RetriesConflicts(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()

	attempts := 0
	err := l.run(ctx, KindPost, func(ctx context.Context, effects *sideEffects) error {
		attempts++
		require.True(t, xcontext.InTransaction(ctx))
		if attempts < 3 {
			return sqlite3.Error{Code: sqlite3.ErrBusy}
		}

		effects.emit(KindPost, ActionLike, "post1", "userA", 1)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, attempts)
	require.Len(t, l.publisher.Packs(), 1)
}

func Test_ledger_run_ConflictExhausted(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()

	attempts := 0
	err := l.run(ctx, KindPost, func(ctx context.Context, effects *sideEffects) error {
		attempts++
		effects.emit(KindPost, ActionLike, "post1", "userA", 1)
		return &mysql.MySQLError{Number: mysqlErrLockDeadlock, Message: "Deadlock found"}
	})
	requireCode(t, err, errorx.Conflict)
	require.Greater(t, attempts, 1)
	require.LessOrEqual(t, attempts, xcontext.Configs(ctx).Ledger.MaxRetries+1)

	// Side effects of aborted attempts are dropped.
	require.Empty(t, l.publisher.Packs())
}

func Test_ledger_run_DoesNotRetryOtherErrors(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()

	attempts := 0
	err := l.run(ctx, KindPost, func(ctx context.Context, effects *sideEffects) error {
		attempts++
		return errors.New("disk is full")
	})
	require.Equal(t, errorx.Unknown, err)
	require.Equal(t, 1, attempts)
}

func Test_ledger_run_RollsBackOnError(t *testing.T) {
	ctx := testutil.MockContext()
	l := newTestLedger()
	post := testutil.SamplePost(ctx, nil)

	err := l.run(ctx, KindPost, func(ctx context.Context, effects *sideEffects) error {
		if _, err := l.postRepo.Likes().Add(ctx, post.ID, "userA"); err != nil {
			return err
		}

		return errorx.New(errorx.BadRequest, "abort")
	})
	requireCode(t, err, errorx.BadRequest)

	members, err := l.postRepo.Likes().Members(ctx, post.ID, 0, 10)
	require.NoError(t, err)
	require.False(t, slices.Contains(members, "userA"))
}

func Test_isConflict(t *testing.T) {
	require.True(t, isConflict(&mysql.MySQLError{Number: 1213}))
	require.True(t, isConflict(&mysql.MySQLError{Number: 1205}))
	require.False(t, isConflict(&mysql.MySQLError{Number: 1062}))
	require.True(t, isConflict(sqlite3.Error{Code: sqlite3.ErrBusy}))
	require.True(t, isConflict(fmt.Errorf("wrapped: %w", sqlite3.Error{Code: sqlite3.ErrLocked})))
	require.False(t, isConflict(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	require.False(t, isConflict(errors.New("other")))
}
