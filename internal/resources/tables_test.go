package resources

import "testing"

func TestSummarizeContracts(t *testing.T) {
	items := []Contract{
		{ID: "c1", Name: "Kontrak A", Status: ContractActive, TotalValue: 1000000},
		{ID: "c2", Name: "Kontrak B", Status: ContractDraft, TotalValue: 500000},
		{ID: "c3", Name: "Kontrak C", Status: ContractExpired, TotalValue: 250000},
	}

	stats := SummarizeContracts(items)
	if stats.ActiveCount != 1 {
		t.Fatalf("active count = %d, ingin 1", stats.ActiveCount)
	}
	if stats.ActiveValue != 1000000 {
		t.Fatalf("active value = %d, ingin 1000000", stats.ActiveValue)
	}
	if stats.ActiveLabel != "Rp1.000.000" {
		t.Fatalf("active label = %q", stats.ActiveLabel)
	}
	if stats.ExpiredCount != 1 {
		t.Fatalf("expired count = %d, ingin 1", stats.ExpiredCount)
	}
}

func TestVehicleRowOptionalFields(t *testing.T) {
	row := VehicleRow(Vehicle{VehicleCode: "TRK-01", PlateNumber: "B 1234 ABC"})
	if row[3] != "" {
		t.Fatalf("kilometer kosong harus jadi string kosong, dapat %q", row[3])
	}

	km := 120500
	row = VehicleRow(Vehicle{VehicleCode: "TRK-02", PlateNumber: "B 5678 DEF", Kilometers: &km})
	if row[3] != "120500" {
		t.Fatalf("kilometer = %q", row[3])
	}
}

func TestTaskCard(t *testing.T) {
	card := TaskCard(Task{ID: "t1", Title: "Rakit laporan", Status: "TODO", Assignee: "andi"})
	if card.ID != "t1" || card.Status != "TODO" || card.Assignee != "andi" {
		t.Fatalf("card tidak sesuai: %+v", card)
	}
}
