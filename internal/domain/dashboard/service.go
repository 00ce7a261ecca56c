package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns the snapshot for the server's current date
	GetDashboard(ctx context.Context) (Snapshot, error)
}
