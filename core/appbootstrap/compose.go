package appbootstrap

import (
	"database/sql"

	"stpaul-crime/api"
	"stpaul-crime/config"
	"stpaul-crime/core/maintenance"
	"stpaul-crime/core/store"
	"stpaul-crime/core/utils"
)

type runtimeComposition struct {
	serverDeps api.ServerDeps
	workers    []api.BackgroundWorker
}

func composeRuntime(cfg *config.AppConfig, db *sql.DB, logger *utils.Logger) *runtimeComposition {
	codes := store.NewCodesStore(db)
	neighborhoods := store.NewNeighborhoodsStore(db)
	incidents := store.NewIncidentsStore(db)
	scheduler := maintenance.NewScheduler(cfg.Scheduler, db, logger)
	workers := []api.BackgroundWorker{scheduler}

	return &runtimeComposition{
		serverDeps: api.ServerDeps{
			DB:            db,
			Codes:         codes,
			Neighborhoods: neighborhoods,
			Incidents:     incidents,
			Workers:       workers,
		},
		workers: workers,
	}
}
