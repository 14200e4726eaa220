package cache

import (
	"context"

	v1 "github.com/emrgen/prd/apis/v1"
)

// DashboardCache holds the default listing and status counts shown on an
// author's dashboard. A miss returns nil without an error.
//
// Every invalidation bumps the author's dashboard version. A value read from
// the database is stored with the version taken before the read, and is
// dropped when an invalidation happened in between.
type DashboardCache interface {
	// DashboardVersion returns the author's current dashboard version.
	DashboardVersion(ctx context.Context, authorID string) (int64, error)
	// GetDashboard returns the cached default listing of the author's PRDs.
	GetDashboard(ctx context.Context, authorID string) (*v1.ListPRDsResponse, error)
	// SetDashboard caches the default listing of the author's PRDs if the
	// dashboard version is still version.
	SetDashboard(ctx context.Context, authorID string, version int64, res *v1.ListPRDsResponse) error
	// GetStats returns the cached status counts of the author's PRDs.
	GetStats(ctx context.Context, authorID string) (*v1.GetDashboardStatsResponse, error)
	// SetStats caches the status counts of the author's PRDs if the
	// dashboard version is still version.
	SetStats(ctx context.Context, authorID string, version int64, res *v1.GetDashboardStatsResponse) error
	// InvalidateDashboard drops everything cached for the author and bumps
	// the dashboard version.
	InvalidateDashboard(ctx context.Context, authorID string) error
}

var _ DashboardCache = NopDashboardCache{}

// NopDashboardCache never hits. Used when no redis is configured.
type NopDashboardCache struct{}

func NewNop() NopDashboardCache {
	return NopDashboardCache{}
}

func (NopDashboardCache) DashboardVersion(context.Context, string) (int64, error) {
	return 0, nil
}

func (NopDashboardCache) GetDashboard(context.Context, string) (*v1.ListPRDsResponse, error) {
	return nil, nil
}

func (NopDashboardCache) SetDashboard(context.Context, string, int64, *v1.ListPRDsResponse) error {
	return nil
}

func (NopDashboardCache) GetStats(context.Context, string) (*v1.GetDashboardStatsResponse, error) {
	return nil, nil
}

func (NopDashboardCache) SetStats(context.Context, string, int64, *v1.GetDashboardStatsResponse) error {
	return nil
}

func (NopDashboardCache) InvalidateDashboard(context.Context, string) error {
	return nil
}
