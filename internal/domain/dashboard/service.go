package dashboard

import (
	"context"
	"time"
)

// DashboardService builds the coordinator's department overview
type DashboardService interface {
	// GetDashboard gathers all sections concurrently as of now
	GetDashboard(ctx context.Context, now time.Time) (*DashboardResponse, error)
}
