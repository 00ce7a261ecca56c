package view

import (
	"context"

	"github.com/Prateek11234/hrms/internal/domain/dashboard"
)

type DashboardAPI interface {
	GetDashboard(ctx context.Context) (dashboard.Snapshot, error)
}

type DashboardPage struct {
	*page[dashboard.Snapshot]
	api DashboardAPI
}

func NewDashboardPage(api DashboardAPI, notifier Notifier) *DashboardPage {
	return &DashboardPage{
		page: newPage(notifier, "Dashboard error", "Failed to load dashboard", dashboard.Snapshot{}),
		api:  api,
	}
}

func (p *DashboardPage) Mount(ctx context.Context) {
	p.remount()
	p.Refresh(ctx)
}

func (p *DashboardPage) Refresh(ctx context.Context) {
	gen, ok := p.begin(nil)
	if !ok {
		return
	}
	snap, err := p.api.GetDashboard(ctx)
	p.finish(gen, snap, err)
}
