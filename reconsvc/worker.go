package reconsvc

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/recon_backend/config"
	"bitbucket.org/mmdatafocus/recon_backend/models"
	"bitbucket.org/mmdatafocus/recon_backend/utils"
	"bitbucket.org/mmdatafocus/recon_backend/workflow"
)

const (
	runLockKey     = "recon:run_lock"
	latestRunKey   = "recon:latest_run"
	runLockTTL     = 10 * time.Minute
	latestRunCache = 24 * time.Hour
)

// ProcessReconcileRequest runs one reconciliation under the distributed run
// lock. Concurrent triggers (double-published scheduler, impatient admin) are
// skipped, not queued: the run they wanted is already happening.
func ProcessReconcileRequest(ctx context.Context, req ReconcileRequest) error {
	logger := config.GetLogger()

	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, runLockKey, runLockTTL, nil)
		if err == redislock.ErrNotObtained {
			logger.WithFields(logrus.Fields{
				"requested_by":   req.RequestedBy,
				"correlation_id": req.CorrelationId,
			}).Info("reconciliation already running, skipping trigger")
			return nil
		}
		if err != nil {
			config.LogError(logger, "worker.go", "ProcessReconcileRequest", "Obtaining run lock", req, err)
			return err
		}
		defer lock.Release(ctx)
	}

	if req.CorrelationId != "" {
		ctx = utils.SetCorrelationIdInContext(ctx, req.CorrelationId)
	}

	run, err := workflow.ProcessReconciliationWorkflow(ctx, config.GetDB(), logger)
	if err != nil {
		return err
	}

	// Best effort: the summary endpoint serves from this cache before
	// falling back to MySQL.
	if cacheErr := config.SetRedisObject(latestRunKey, run, latestRunCache); cacheErr != nil {
		config.LogError(logger, "worker.go", "ProcessReconcileRequest", "Caching latest run", run.ID, cacheErr)
	}
	return nil
}

// LatestRun serves the most recent run, redis first, MySQL as fallback.
func LatestRun(ctx context.Context) (*models.ReconciliationRun, error) {
	var cached models.ReconciliationRun
	if ok, err := config.GetRedisObject(latestRunKey, &cached); err == nil && ok {
		return &cached, nil
	}

	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorDatabaseNotReady
	}
	var run models.ReconciliationRun
	if err := db.WithContext(ctx).Order("id desc").First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
