package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
)

func Healthcheck(loader loading.Loader) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(loader),
		},
	}
}

func Branches(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/branches",
			Method:  http.MethodGet,
			Handler: ListBranches(service),
		},
		{
			Path:    "/v1/branches/:taxId/months",
			Method:  http.MethodGet,
			Handler: GetAvailableMonths(service),
		},
		{
			Path:    "/v1/branches/:taxId/report",
			Method:  http.MethodGet,
			Handler: GetBranchReport(service),
		},
	}
}

func Snapshot(loader loading.Loader) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/snapshot",
			Method:  http.MethodGet,
			Handler: GetSnapshotStatus(loader),
		},
		{
			Path:    "/v1/snapshot/refresh",
			Method:  http.MethodPost,
			Handler: RefreshSnapshot(loader),
		},
		{
			Path:    "/v1/snapshot",
			Method:  http.MethodDelete,
			Handler: InvalidateSnapshot(loader),
		},
	}
}

func CronJobs(refresher SnapshotRefresher) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/snapshot/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(refresher),
		},
		{
			Path:    "/v1/cron/snapshot/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(refresher),
		},
	}
}
