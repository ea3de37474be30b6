package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"hbcheckup/internal/api"
)

var fleetHeaders = []string{"Host", "Status", "Encoding", "Started", "Finished", "ETA"}

func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func fleetRows(hosts []api.PeerStatus) [][]string {
	rows := make([][]string, 0, len(hosts))
	for _, h := range hosts {
		statusText := h.StatusText
		if !h.Success && h.Status == "" {
			statusText = "Activity log unreadable"
		}
		rows = append(rows, []string{h.Hostname, statusText, h.CurrentEncode, h.StartTime, h.EndTime, h.ETA})
	}
	return rows
}
