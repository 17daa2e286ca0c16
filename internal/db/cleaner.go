package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartResolvedCleaner removes completed complaints older than retention,
// checking on the given interval, until ctx is cancelled.
func StartResolvedCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				res, err := db.ExecContext(ctx, `
                    DELETE FROM complaints
                     WHERE c_status = 'complete'
                       AND created_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to clean resolved complaints", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned resolved complaints", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
