package cron

import (
	"context"
	"errors"
	"time"

	"github.com/lyricroom/backend/internal/common"
	"github.com/lyricroom/backend/internal/domain/ledger"
	"github.com/lyricroom/backend/internal/repository"
	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/xcontext"
)

const purgeBatchSize = 100

// PurgeExpiredStoriesCronJob removes expired stories together with their
// views.
type PurgeExpiredStoriesCronJob struct {
	storyRepo repository.StoryRepository
	ledger    ledger.Ledger
	interval  time.Duration
}

func NewPurgeExpiredStoriesCronJob(
	storyRepo repository.StoryRepository,
	ledger ledger.Ledger,
	interval time.Duration,
) *PurgeExpiredStoriesCronJob {
	return &PurgeExpiredStoriesCronJob{
		storyRepo: storyRepo,
		ledger:    ledger,
		interval:  interval,
	}
}

func (job *PurgeExpiredStoriesCronJob) Do(ctx context.Context) {
	now := time.Now()
	total := 0
	for {
		ids, err := job.storyRepo.GetExpiredIDs(ctx, now, purgeBatchSize)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get expired stories: %v", err)
			break
		}

		progress := 0
		for _, id := range ids {
			err := job.ledger.Purge(ctx, ledger.KindStory, id)
			switch {
			case err == nil:
				total++
			case errors.Is(err, errorx.New(errorx.NotFound, "")):
				// Deleted by its author meanwhile.
			default:
				xcontext.Logger(ctx).Warnf("Cannot purge story %s: %v", id, err)
				continue
			}

			progress++
		}

		// A batch without progress would be fetched again forever.
		if len(ids) < purgeBatchSize || progress == 0 {
			break
		}
	}

	if total > 0 {
		common.PromCounters[common.StoriesPurgedTotal].WithLabelValues().Add(float64(total))
		xcontext.Logger(ctx).Infof("Purged %d expired stories", total)
	}
}

func (job *PurgeExpiredStoriesCronJob) RunNow() bool {
	return true
}

func (job *PurgeExpiredStoriesCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
