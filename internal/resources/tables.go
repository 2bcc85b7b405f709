package resources

import (
	"strconv"

	"console/internal/board"
	"console/internal/export"
	"console/internal/list"
	"console/internal/utils"
)

// ContractStats summarizes the contracts on the current page for the
// list header cards. Counts and sums cover the visible page only.
type ContractStats struct {
	ActiveCount  int
	ActiveValue  int64
	ActiveLabel  string
	ExpiredCount int
}

func SummarizeContracts(items []Contract) ContractStats {
	isActive := func(c Contract) bool { return c.Status == ContractActive }
	stats := ContractStats{
		ActiveCount:  list.CountBy(items, isActive),
		ActiveValue:  list.SumBy(items, isActive, func(c Contract) int64 { return c.TotalValue }),
		ExpiredCount: list.CountBy(items, func(c Contract) bool { return c.Status == ContractExpired }),
	}
	stats.ActiveLabel = utils.FormatRupiah(stats.ActiveValue)
	return stats
}

func ContractColumns() []export.Column {
	return []export.Column{
		{Header: "Nama Kontrak", Width: 60},
		{Header: "Akun", Width: 45},
		{Header: "Status", Width: 30},
		{Header: "Nilai", Width: 40},
	}
}

func ContractRow(c Contract, accountLabel string) []string {
	return []string{c.Name, accountLabel, c.Status, utils.FormatRupiah(c.TotalValue)}
}

func DriverColumns() []export.Column {
	return []export.Column{
		{Header: "Nama", Width: 55},
		{Header: "No. SIM", Width: 40},
		{Header: "Status", Width: 35},
		{Header: "Kendaraan", Width: 40},
	}
}

func DriverRow(d Driver) []string {
	return []string{d.Name, d.LicenseNo, d.Status, d.VehicleCode}
}

func VehicleColumns() []export.Column {
	return []export.Column{
		{Header: "Kode", Width: 35},
		{Header: "Plat", Width: 40},
		{Header: "Warna", Width: 35},
		{Header: "Kilometer", Width: 35},
	}
}

func VehicleRow(v Vehicle) []string {
	km := ""
	if v.Kilometers != nil {
		km = strconv.Itoa(*v.Kilometers)
	}
	return []string{v.VehicleCode, v.PlateNumber, v.Color, km}
}

func TaskColumnsExport() []export.Column {
	return []export.Column{
		{Header: "Judul", Width: 70},
		{Header: "Status", Width: 35},
		{Header: "Penanggung Jawab", Width: 45},
	}
}

func TaskRow(t Task) []string {
	return []string{t.Title, t.Status, t.Assignee}
}

// TaskCard adapts a task to the kanban board card shape.
func TaskCard(t Task) board.Card {
	return board.Card{ID: t.ID, Title: t.Title, Status: t.Status, Assignee: t.Assignee}
}
