package server

import (
	"embed"
	"html/template"
	"time"

	"hbcheckup/internal/api"
	"hbcheckup/internal/hbstatus"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

type dashboardRow struct {
	Host      string
	Status    string
	Encode    string
	Started   string
	Finished  string
	ETA       string
	Active    bool
	Reachable bool
}

type dashboardPage struct {
	Rows      []dashboardRow
	Generated string
}

func newDashboardPage(resp api.CheckupAllResponse, now time.Time) dashboardPage {
	rows := make([]dashboardRow, 0, len(resp.HostData))
	for _, host := range resp.HostData {
		status := host.StatusText
		if !host.Success && host.Status == "" {
			status = "Activity log unreadable"
		}
		rows = append(rows, dashboardRow{
			Host:      host.Hostname,
			Status:    status,
			Encode:    host.CurrentEncode,
			Started:   host.StartTime,
			Finished:  host.EndTime,
			ETA:       host.ETA,
			Active:    host.Status.Active(),
			Reachable: host.Status != hbstatus.PeerUnavailable,
		})
	}
	return dashboardPage{Rows: rows, Generated: now.Format("15:04:05")}
}
