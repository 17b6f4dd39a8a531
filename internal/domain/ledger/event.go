package ledger

import "time"

type Kind string

const (
	KindProfile Kind = "profile"
	KindPost    Kind = "post"
	KindMusic   Kind = "music"
	KindStory   Kind = "story"
	KindLyrics  Kind = "lyrics"
)

const (
	ActionFollow   = "follow"
	ActionUnfollow = "unfollow"
	ActionLike     = "like"
	ActionUnlike   = "unlike"
	ActionSave     = "save"
	ActionUnsave   = "unsave"
	ActionView     = "view"
	ActionUnview   = "unview"
	ActionPlay     = "play"
	ActionShare    = "share"
	ActionComment  = "comment"
	ActionDelete   = "delete"
)

// EngagementEvent is published after a mutation commits. Count is the
// aggregate counter after the mutation.
type EngagementEvent struct {
	Kind        Kind      `json:"kind"`
	Action      string    `json:"action"`
	AggregateID string    `json:"aggregate_id"`
	ActorID     string    `json:"actor_id,omitempty"`
	Count       int64     `json:"count"`
	At          time.Time `json:"at"`
}

// sideEffects are collected inside the transaction and applied only after it
// commits.
type sideEffects struct {
	cacheKeys     []string
	events        []EngagementEvent
	trendingPlays []string
	trendingDrops []string
	lyricsDrops   []string
}

func (s *sideEffects) invalidate(keys ...string) {
	s.cacheKeys = append(s.cacheKeys, keys...)
}

func (s *sideEffects) emit(kind Kind, action, aggregateID, actorID string, count int64) {
	s.events = append(s.events, EngagementEvent{
		Kind:        kind,
		Action:      action,
		AggregateID: aggregateID,
		ActorID:     actorID,
		Count:       count,
		At:          time.Now(),
	})
}
