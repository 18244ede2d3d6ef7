package obs

import (
	"context"
	"log/slog"
	"time"
)

// Time logs the duration and outcome of a named operation. Use with a
// named error return:
//
//	defer obs.Time(ctx, "marketapi.NearbyStores")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			slog.WarnContext(ctx, "op failed", "op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		slog.DebugContext(ctx, "op done", "op", name, "dur_ms", dur.Milliseconds())
	}
}
