package config

import "testing"

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TIMEOUT_SECONDS", "")
	t.Setenv("PAGE_SIZE", "")

	env := LoadEnv()
	if env.APIBaseURL != "http://localhost:8080/api" {
		t.Fatalf("unexpected default base url: %q", env.APIBaseURL)
	}
	if env.PageSize != 20 {
		t.Fatalf("expected default page size 20, got %d", env.PageSize)
	}
	if env.Timeout.Seconds() != 30 {
		t.Fatalf("expected default timeout 30s, got %v", env.Timeout)
	}
}

func TestLoadEnvTrimsTrailingSlash(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://erp.example.com/api/")
	env := LoadEnv()
	if env.APIBaseURL != "https://erp.example.com/api" {
		t.Fatalf("trailing slash not trimmed: %q", env.APIBaseURL)
	}
}

func TestClampPageSize(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 20},
		{-5, 20},
		{10, 10},
		{14, 10},
		{16, 20},
		{35, 50},
		{100, 100},
		{9999, 100},
	}
	for _, c := range cases {
		if got := ClampPageSize(c.in); got != c.want {
			t.Errorf("ClampPageSize(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestEnvIntRejectsGarbage(t *testing.T) {
	t.Setenv("API_TIMEOUT_SECONDS", "banana")
	env := LoadEnv()
	if env.Timeout.Seconds() != 30 {
		t.Fatalf("garbage timeout should fall back to default, got %v", env.Timeout)
	}
}
