package ledger

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/flowchartsman/retry"
	"github.com/lyricroom/backend/internal/common"
	"github.com/lyricroom/backend/internal/domain/search"
	"github.com/lyricroom/backend/internal/entity"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/pubsub"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/lyricroom/backend/pkg/xredis"
	"gorm.io/gorm"
)

// Relation names a membership set whose size may be mirrored by a counter.
type Relation string

const (
	PostLikes  Relation = "post_likes"
	PostSaves  Relation = "post_saves"
	MusicLikes Relation = "music_likes"
	StoryViews Relation = "story_views"
)

// Counter names a monotonic counter without a membership set.
type Counter string

const (
	MusicPlays  Counter = "music_plays"
	PostShares  Counter = "post_shares"
	LyricsViews Counter = "lyrics_views"
)

type MembershipResult struct {
	// Member reports whether the actor is in the set after the mutation.
	Member bool

	// Changed is false when the mutation was a no-op.
	Changed bool

	// Count is the counter of the aggregate, or the size of the set when the
	// relation has no counter.
	Count int64
}

type FollowResult struct {
	Following      bool
	Changed        bool
	FollowersCount int64
	FollowingCount int64
}

type Ledger interface {
	// Toggle removes the actor from the set if present, otherwise adds it.
	Toggle(ctx context.Context, relation Relation, aggregateID, actorID string) (*MembershipResult, error)

	// Add adds the actor if absent. Adding twice counts once.
	Add(ctx context.Context, relation Relation, aggregateID, actorID string) (*MembershipResult, error)

	// Remove removes the actor if present.
	Remove(ctx context.Context, relation Relation, aggregateID, actorID string) (*MembershipResult, error)

	Follow(ctx context.Context, followerID, followeeID string) (*FollowResult, error)
	Unfollow(ctx context.Context, followerID, followeeID string) (*FollowResult, error)

	// Increment adds one to a monotonic counter and returns the new value.
	Increment(ctx context.Context, counter Counter, aggregateID string) (int64, error)

	AppendComment(ctx context.Context, postID, authorID, text string) (*entity.PostComment, error)

	// Purge deletes the aggregate together with every membership row and
	// counter contribution which refers to it.
	Purge(ctx context.Context, kind Kind, aggregateID string) error
}

type relationDef struct {
	kind         Kind
	aggregates   repository.CounterRepository
	members      repository.MembershipRepository
	column       string
	addAction    string
	removeAction string
	cacheKey     func(string) string
}

type counterDef struct {
	kind       Kind
	aggregates repository.CounterRepository
	column     string
	action     string
	cacheKey   func(string) string
}

type ledger struct {
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	storyRepo   repository.StoryRepository
	musicRepo   repository.MusicRepository
	lyricsRepo  repository.LyricsRepository
	spotifyRepo repository.SpotifyRepository

	redisClient xredis.Client
	publisher   pubsub.Publisher
	indexer     search.Indexer

	relations map[Relation]relationDef
	counters  map[Counter]counterDef
}

// NewLedger creates the engagement ledger. redisClient, publisher and indexer
// are optional.
func NewLedger(
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	storyRepo repository.StoryRepository,
	musicRepo repository.MusicRepository,
	lyricsRepo repository.LyricsRepository,
	spotifyRepo repository.SpotifyRepository,
	redisClient xredis.Client,
	publisher pubsub.Publisher,
	indexer search.Indexer,
) *ledger {
	return &ledger{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		storyRepo:   storyRepo,
		musicRepo:   musicRepo,
		lyricsRepo:  lyricsRepo,
		spotifyRepo: spotifyRepo,
		redisClient: redisClient,
		publisher:   publisher,
		indexer:     indexer,
		relations: map[Relation]relationDef{
			PostLikes: {
				kind:         KindPost,
				aggregates:   postRepo,
				members:      postRepo.Likes(),
				column:       "likes",
				addAction:    ActionLike,
				removeAction: ActionUnlike,
				cacheKey:     common.RedisKeyPost,
			},
			PostSaves: {
				kind:         KindPost,
				aggregates:   postRepo,
				members:      postRepo.Saves(),
				addAction:    ActionSave,
				removeAction: ActionUnsave,
				cacheKey:     common.RedisKeyPost,
			},
			MusicLikes: {
				kind:         KindMusic,
				aggregates:   musicRepo,
				members:      musicRepo.Likes(),
				column:       "likes_count",
				addAction:    ActionLike,
				removeAction: ActionUnlike,
				cacheKey:     common.RedisKeyMusic,
			},
			StoryViews: {
				kind:         KindStory,
				aggregates:   storyRepo,
				members:      storyRepo.Views(),
				column:       "views",
				addAction:    ActionView,
				removeAction: ActionUnview,
				cacheKey:     common.RedisKeyStory,
			},
		},
		counters: map[Counter]counterDef{
			MusicPlays: {
				kind:       KindMusic,
				aggregates: musicRepo,
				column:     "plays",
				action:     ActionPlay,
				cacheKey:   common.RedisKeyMusic,
			},
			PostShares: {
				kind:       KindPost,
				aggregates: postRepo,
				column:     "shares",
				action:     ActionShare,
				cacheKey:   common.RedisKeyPost,
			},
			LyricsViews: {
				kind:       KindLyrics,
				aggregates: lyricsRepo,
				column:     "views",
				action:     ActionView,
			},
		},
	}
}

func (l *ledger) Toggle(
	ctx context.Context, relation Relation, aggregateID, actorID string,
) (*MembershipResult, error) {
	return l.mutateMembership(ctx, relation, aggregateID, actorID, true, true)
}

func (l *ledger) Add(
	ctx context.Context, relation Relation, aggregateID, actorID string,
) (*MembershipResult, error) {
	return l.mutateMembership(ctx, relation, aggregateID, actorID, false, true)
}

func (l *ledger) Remove(
	ctx context.Context, relation Relation, aggregateID, actorID string,
) (*MembershipResult, error) {
	return l.mutateMembership(ctx, relation, aggregateID, actorID, true, false)
}

func (l *ledger) mutateMembership(
	ctx context.Context, relation Relation, aggregateID, actorID string, canRemove, canAdd bool,
) (*MembershipResult, error) {
	def, ok := l.relations[relation]
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Unknown relation %s", relation)
	}

	if actorID == "" {
		return nil, errorx.New(errorx.BadRequest, "User ID is required")
	}

	var result MembershipResult
	err := l.run(ctx, def.kind, func(ctx context.Context, effects *sideEffects) error {
		result = MembershipResult{}
		if err := l.mustExist(ctx, def.kind, def.aggregates, aggregateID); err != nil {
			return err
		}

		action := ""
		if canRemove {
			removed, err := def.members.Remove(ctx, aggregateID, actorID)
			if err != nil {
				return err
			}

			if removed {
				if err := l.decrease(ctx, def.aggregates, aggregateID, def.column); err != nil {
					return err
				}

				result.Changed, result.Member, action = true, false, def.removeAction
			}
		}

		if canAdd && !result.Changed {
			added, err := def.members.Add(ctx, aggregateID, actorID)
			if err != nil {
				return err
			}

			if added {
				if def.column != "" {
					if err := def.aggregates.Increase(ctx, aggregateID, def.column); err != nil {
						return err
					}
				}

				result.Changed, result.Member, action = true, true, def.addAction
			}
		}

		if !result.Changed {
			member, err := def.members.Contains(ctx, aggregateID, actorID)
			if err != nil {
				return err
			}

			result.Member = member
		}

		count, err := l.count(ctx, def, aggregateID)
		if err != nil {
			return err
		}
		result.Count = count

		if result.Changed {
			effects.invalidate(def.cacheKey(aggregateID))
			effects.emit(def.kind, action, aggregateID, actorID, count)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (l *ledger) Follow(ctx context.Context, followerID, followeeID string) (*FollowResult, error) {
	return l.mutateFollow(ctx, followerID, followeeID, true)
}

func (l *ledger) Unfollow(ctx context.Context, followerID, followeeID string) (*FollowResult, error) {
	return l.mutateFollow(ctx, followerID, followeeID, false)
}

// mutateFollow writes the edge and both counters in the same transaction, so
// followee.followers and follower.following never disagree.
func (l *ledger) mutateFollow(
	ctx context.Context, followerID, followeeID string, follow bool,
) (*FollowResult, error) {
	if followerID == "" || followeeID == "" {
		return nil, errorx.New(errorx.BadRequest, "User ID is required")
	}

	if followerID == followeeID {
		return nil, errorx.New(errorx.BadRequest, "Cannot follow yourself")
	}

	var result FollowResult
	err := l.run(ctx, KindProfile, func(ctx context.Context, effects *sideEffects) error {
		result = FollowResult{}
		if err := l.mustExist(ctx, KindProfile, l.profileRepo, followeeID); err != nil {
			return err
		}

		if err := l.mustExist(ctx, KindProfile, l.profileRepo, followerID); err != nil {
			return err
		}

		follows := l.profileRepo.Follows()
		action := ActionUnfollow
		if follow {
			action = ActionFollow
			added, err := follows.Add(ctx, followeeID, followerID)
			if err != nil {
				return err
			}

			if added {
				if err := l.profileRepo.Increase(ctx, followeeID, "followers_count"); err != nil {
					return err
				}

				if err := l.profileRepo.Increase(ctx, followerID, "following_count"); err != nil {
					return err
				}
			}

			result.Changed = added
			result.Following = true
		} else {
			removed, err := follows.Remove(ctx, followeeID, followerID)
			if err != nil {
				return err
			}

			if removed {
				if err := l.decrease(ctx, l.profileRepo, followeeID, "followers_count"); err != nil {
					return err
				}

				if err := l.decrease(ctx, l.profileRepo, followerID, "following_count"); err != nil {
					return err
				}
			}

			result.Changed = removed
			result.Following = false
		}

		followers, err := l.profileRepo.Counter(ctx, followeeID, "followers_count")
		if err != nil {
			return err
		}

		following, err := l.profileRepo.Counter(ctx, followerID, "following_count")
		if err != nil {
			return err
		}

		result.FollowersCount = followers
		result.FollowingCount = following

		if result.Changed {
			effects.invalidate(common.RedisKeyProfile(followeeID), common.RedisKeyProfile(followerID))
			effects.emit(KindProfile, action, followeeID, followerID, followers)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (l *ledger) Increment(ctx context.Context, counter Counter, aggregateID string) (int64, error) {
	def, ok := l.counters[counter]
	if !ok {
		return 0, errorx.New(errorx.BadRequest, "Unknown counter %s", counter)
	}

	var value int64
	err := l.run(ctx, def.kind, func(ctx context.Context, effects *sideEffects) error {
		if err := def.aggregates.Increase(ctx, aggregateID, def.column); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.New(errorx.NotFound, "Not found %s", def.kind)
			}

			return err
		}

		var err error
		value, err = def.aggregates.Counter(ctx, aggregateID, def.column)
		if err != nil {
			return err
		}

		if def.cacheKey != nil {
			effects.invalidate(def.cacheKey(aggregateID))
		}

		if counter == MusicPlays {
			effects.trendingPlays = append(effects.trendingPlays, aggregateID)
		}

		effects.emit(def.kind, def.action, aggregateID, xcontext.RequestUserID(ctx), value)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return value, nil
}

// AppendComment accepts empty text. Comments are ordered by their snowflake
// id, which grows with creation time.
func (l *ledger) AppendComment(ctx context.Context, postID, authorID, text string) (*entity.PostComment, error) {
	if authorID == "" {
		return nil, errorx.New(errorx.BadRequest, "User ID is required")
	}

	var comment *entity.PostComment
	err := l.run(ctx, KindPost, func(ctx context.Context, effects *sideEffects) error {
		if err := l.mustExist(ctx, KindPost, l.postRepo, postID); err != nil {
			return err
		}

		comment = &entity.PostComment{
			SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
			PostID:        postID,
			AuthorID:      authorID,
			Text:          text,
		}

		if err := l.postRepo.CreateComment(ctx, comment); err != nil {
			return err
		}

		count, err := l.postRepo.CountComments(ctx, postID)
		if err != nil {
			return err
		}

		effects.emit(KindPost, ActionComment, postID, authorID, count)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (l *ledger) Purge(ctx context.Context, kind Kind, aggregateID string) error {
	return l.run(ctx, kind, func(ctx context.Context, effects *sideEffects) error {
		switch kind {
		case KindProfile:
			return l.purgeProfile(ctx, effects, aggregateID)
		case KindPost:
			return l.purgePost(ctx, effects, aggregateID)
		case KindMusic:
			return l.purgeMusic(ctx, effects, aggregateID)
		case KindStory:
			return l.purgeStory(ctx, effects, aggregateID)
		default:
			return errorx.New(errorx.BadRequest, "Cannot purge %s", kind)
		}
	})
}

func (l *ledger) purgeProfile(ctx context.Context, effects *sideEffects, profileID string) error {
	if err := l.mustExist(ctx, KindProfile, l.profileRepo, profileID); err != nil {
		return err
	}

	follows := l.profileRepo.Follows()

	followees, err := follows.DeleteByActor(ctx, profileID)
	if err != nil {
		return err
	}

	for _, followee := range followees {
		if err := l.decrease(ctx, l.profileRepo, followee, "followers_count"); err != nil {
			return err
		}
		effects.invalidate(common.RedisKeyProfile(followee))
	}

	followers, err := follows.DeleteByAggregate(ctx, profileID)
	if err != nil {
		return err
	}

	for _, follower := range followers {
		if err := l.decrease(ctx, l.profileRepo, follower, "following_count"); err != nil {
			return err
		}
		effects.invalidate(common.RedisKeyProfile(follower))
	}

	// Engagement the profile left on aggregates it does not own.
	for _, relation := range []Relation{PostLikes, PostSaves, MusicLikes, StoryViews} {
		def := l.relations[relation]
		aggregates, err := def.members.DeleteByActor(ctx, profileID)
		if err != nil {
			return err
		}

		for _, aggregateID := range aggregates {
			if err := l.decrease(ctx, def.aggregates, aggregateID, def.column); err != nil {
				return err
			}
			effects.invalidate(def.cacheKey(aggregateID))
		}
	}

	if err := l.postRepo.DeleteCommentsByAuthor(ctx, profileID); err != nil {
		return err
	}

	postIDs, err := l.postRepo.GetIDsByAuthor(ctx, profileID)
	if err != nil {
		return err
	}

	for _, postID := range postIDs {
		if err := l.purgePost(ctx, effects, postID); err != nil {
			return err
		}
	}

	storyIDs, err := l.storyRepo.GetIDsByAuthor(ctx, profileID)
	if err != nil {
		return err
	}

	for _, storyID := range storyIDs {
		if err := l.purgeStory(ctx, effects, storyID); err != nil {
			return err
		}
	}

	err = l.spotifyRepo.DeleteByUserID(ctx, profileID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := l.profileRepo.DeleteByID(ctx, profileID); err != nil {
		return err
	}

	effects.invalidate(common.RedisKeyProfile(profileID))
	effects.emit(KindProfile, ActionDelete, profileID, "", 0)
	return nil
}

func (l *ledger) purgePost(ctx context.Context, effects *sideEffects, postID string) error {
	if err := l.mustExist(ctx, KindPost, l.postRepo, postID); err != nil {
		return err
	}

	if _, err := l.postRepo.Likes().DeleteByAggregate(ctx, postID); err != nil {
		return err
	}

	if _, err := l.postRepo.Saves().DeleteByAggregate(ctx, postID); err != nil {
		return err
	}

	if err := l.postRepo.DeleteComments(ctx, postID); err != nil {
		return err
	}

	if err := l.postRepo.DeleteByID(ctx, postID); err != nil {
		return err
	}

	effects.invalidate(common.RedisKeyPost(postID))
	effects.emit(KindPost, ActionDelete, postID, "", 0)
	return nil
}

func (l *ledger) purgeMusic(ctx context.Context, effects *sideEffects, musicID string) error {
	if err := l.mustExist(ctx, KindMusic, l.musicRepo, musicID); err != nil {
		return err
	}

	if _, err := l.musicRepo.Likes().DeleteByAggregate(ctx, musicID); err != nil {
		return err
	}

	lyrics, err := l.lyricsRepo.DeleteByMusicID(ctx, musicID)
	if err != nil {
		return err
	}

	if lyrics != nil {
		effects.invalidate(common.RedisKeyLyrics(musicID))
		effects.lyricsDrops = append(effects.lyricsDrops, lyrics.ID)
	}

	if err := l.musicRepo.DeleteByID(ctx, musicID); err != nil {
		return err
	}

	effects.invalidate(common.RedisKeyMusic(musicID))
	effects.trendingDrops = append(effects.trendingDrops, musicID)
	effects.emit(KindMusic, ActionDelete, musicID, "", 0)
	return nil
}

func (l *ledger) purgeStory(ctx context.Context, effects *sideEffects, storyID string) error {
	if err := l.mustExist(ctx, KindStory, l.storyRepo, storyID); err != nil {
		return err
	}

	if _, err := l.storyRepo.Views().DeleteByAggregate(ctx, storyID); err != nil {
		return err
	}

	if err := l.storyRepo.DeleteByID(ctx, storyID); err != nil {
		return err
	}

	effects.invalidate(common.RedisKeyStory(storyID))
	effects.emit(KindStory, ActionDelete, storyID, "", 0)
	return nil
}

func (l *ledger) mustExist(
	ctx context.Context, kind Kind, aggregates repository.CounterRepository, id string,
) error {
	exists, err := aggregates.Exists(ctx, id)
	if err != nil {
		return err
	}

	if !exists {
		return errorx.New(errorx.NotFound, "Not found %s", kind)
	}

	return nil
}

// decrease tolerates a counter which is already zero. It only happens when the
// counter drifted from its set, and blocking the removal would keep the drift
// forever.
func (l *ledger) decrease(
	ctx context.Context, aggregates repository.CounterRepository, id, column string,
) error {
	if column == "" {
		return nil
	}

	err := aggregates.Decrease(ctx, id, column)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Warnf("Counter %s of %s is already zero", column, id)
		return nil
	}

	return err
}

func (l *ledger) count(ctx context.Context, def relationDef, aggregateID string) (int64, error) {
	if def.column == "" {
		return def.members.Count(ctx, aggregateID)
	}

	return def.aggregates.Counter(ctx, aggregateID, def.column)
}

// run executes fn in a transaction. A transaction aborted by a write conflict
// is retried from scratch with backoff, any other error is returned as is.
// Side effects are applied once, after the commit.
func (l *ledger) run(
	ctx context.Context, kind Kind, fn func(context.Context, *sideEffects) error,
) error {
	cfg := xcontext.Configs(ctx).Ledger

	var effects *sideEffects
	var fnErr error
	retrier := retry.NewRetrier(cfg.MaxRetries+1, cfg.InitialDelay, cfg.MaxDelay)
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		effects, fnErr = &sideEffects{}, nil

		txCtx := xcontext.WithDBTransaction(ctx)
		defer xcontext.WithRollbackDBTransaction(txCtx)

		err := fn(txCtx, effects)
		if err == nil {
			err = xcontext.WithCommitDBTransaction(txCtx)
		}

		if err != nil && isConflict(err) {
			common.PromCounters[common.EngagementConflictsTotal].WithLabelValues(string(kind)).Inc()
			xcontext.Logger(ctx).Warnf("Conflict on %s transaction, retrying: %v", kind, err)
			return err
		}

		fnErr = err
		return nil
	})

	if fnErr != nil {
		return l.translate(ctx, fnErr)
	}

	if err != nil {
		if isConflict(err) {
			return errorx.New(errorx.Conflict, "The %s is busy, please try again", kind)
		}

		return l.translate(ctx, err)
	}

	l.apply(ctx, effects)
	return nil
}

func (l *ledger) translate(ctx context.Context, err error) error {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errorx.New(errorx.Unavailable, "Request is cancelled")
	}

	xcontext.Logger(ctx).Errorf("Cannot mutate engagement: %v", err)
	return errorx.Unknown
}

// apply runs the post-commit side effects. Failures are logged and never
// undo the committed mutation.
func (l *ledger) apply(ctx context.Context, effects *sideEffects) {
	if l.redisClient != nil {
		if len(effects.cacheKeys) > 0 {
			if err := l.redisClient.Del(ctx, effects.cacheKeys...); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot invalidate cache: %v", err)
			}
		}

		for _, musicID := range effects.trendingPlays {
			if err := l.redisClient.ZIncrBy(ctx, common.RedisKeyTrendingMusic, 1, musicID); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot increase trending score of %s: %v", musicID, err)
			}
		}

		if len(effects.trendingDrops) > 0 {
			if err := l.redisClient.ZRem(ctx, common.RedisKeyTrendingMusic, effects.trendingDrops...); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot remove trending music: %v", err)
			}
		}
	}

	if l.indexer != nil {
		for _, lyricsID := range effects.lyricsDrops {
			if err := l.indexer.DeleteLyrics(ctx, lyricsID); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot delete lyrics %s from index: %v", lyricsID, err)
			}
		}
	}

	topic := xcontext.Configs(ctx).PubSub.Topic
	for _, event := range effects.events {
		common.PromCounters[common.EngagementMutationsTotal].
			WithLabelValues(string(event.Kind), event.Action).Inc()

		if l.publisher == nil {
			continue
		}

		b, err := json.Marshal(event)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal engagement event: %v", err)
			continue
		}

		err = l.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(event.AggregateID), Msg: b})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish engagement event: %v", err)
		}
	}
}
