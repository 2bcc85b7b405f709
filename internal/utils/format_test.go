package utils

import "testing"

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{1000, "Rp1.000"},
		{1000000, "Rp1.000.000"},
		{-250000, "-Rp250.000"},
	}
	for _, c := range cases {
		if got := FormatRupiah(c.in); got != c.want {
			t.Fatalf("FormatRupiah(%d) = %q, ingin %q", c.in, got, c.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Kontrak Armada Jabodetabek", 10); got != "Kontrak..." {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("pendek", 10); got != "pendek" {
		t.Fatalf("string pendek tidak boleh diubah: %q", got)
	}
}
