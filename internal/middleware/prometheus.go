package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/lyricroom/backend/internal/common"
	"github.com/lyricroom/backend/pkg/router"
	"github.com/lyricroom/backend/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		method := xcontext.HTTPRequest(ctx).Method
		status := fmt.Sprint(router.HTTPStatus(xcontext.Error(ctx)))

		common.PromCounters[common.HTTPRequestTotal].WithLabelValues(method, status).Inc()

		startTime := xcontext.StartTime(ctx)
		if !startTime.IsZero() {
			common.PromHistograms[common.HTTPRequestDurationSeconds].
				WithLabelValues(method, status).
				Observe(time.Since(startTime).Seconds())
		}
	}
}
