package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"console/internal/auth"
	"console/internal/domain"

	"github.com/h2non/gock"
)

func testClient(baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second, auth.NewContext(auth.StaticToken("test-token"), nil))
}

func TestListDecodesEnvelope(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"c1"},{"id":"c2"}],"total":12,"page":2,"page_size":2,"total_pages":6}`))
	}))
	defer srv.Close()

	q := url.Values{}
	q.Set("page", "2")
	q.Set("page_size", "2")
	page, err := testClient(srv.URL).List(context.Background(), "/crm/contracts", q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("missing bearer header, got %q", gotAuth)
	}
	if gotQuery != "page=2&page_size=2" {
		t.Errorf("unexpected query: %q", gotQuery)
	}
	if len(page.Items) != 2 || page.Total != 12 || page.TotalPages != 6 || page.Page != 2 {
		t.Fatalf("envelope decoded wrong: %+v", page)
	}
}

func TestListDecodesLegacyBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"v1"},{"id":"v2"},{"id":"v3"}]`))
	}))
	defer srv.Close()

	page, err := testClient(srv.URL).List(context.Background(), "/vehicles", nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 3 || page.Total != 3 || page.TotalPages != 1 || page.Page != 1 {
		t.Fatalf("bare array not adapted to a page: %+v", page)
	}
}

func TestListEmptyEnvelopeHasNonNilItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":null,"total":0,"page":9,"page_size":20,"total_pages":0}`))
	}))
	defer srv.Close()

	page, err := testClient(srv.URL).List(context.Background(), "/crm/contracts", nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("out-of-range page should decode to empty items, got %+v", page.Items)
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		check  func(error) bool
		name   string
	}{
		{http.StatusUnauthorized, `{"detail":"token salah"}`, domain.IsUnauthenticated, "401"},
		{http.StatusForbidden, `{"message":"akses ditolak"}`, domain.IsUnauthenticated, "403"},
		{http.StatusNotFound, `{"error":"contract tidak ditemukan"}`, domain.IsNotFound, "404"},
		{http.StatusConflict, `{"detail":"duplikat"}`, domain.IsConflict, "409"},
		{http.StatusBadRequest, `{"detail":"status tidak dikenal"}`, domain.IsValidation, "400"},
		{http.StatusInternalServerError, `boom`, domain.IsTransport, "500"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				_, _ = w.Write([]byte(c.body))
			}))
			defer srv.Close()

			_, err := testClient(srv.URL).List(context.Background(), "/crm/contracts", nil)
			if err == nil || !c.check(err) {
				t.Fatalf("status %d mapped wrong: %v", c.status, err)
			}
		})
	}
}

func TestValidationMessageSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"total_value harus positif"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Create(context.Background(), "/crm/contracts", map[string]any{"total_value": -1})
	var v domain.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if v.Msg != "total_value harus positif" {
		t.Fatalf("server message not verbatim: %q", v.Msg)
	}
}

func TestNoTokenNeverIssuesRequest(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	fired := false
	c := NewClient(srv.URL, time.Second, auth.NewContext(auth.StaticToken(""), func() { fired = true }))
	_, err := c.List(context.Background(), "/crm/contracts", nil)
	if !domain.IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("request must not be issued without a token, server saw %d hits", hits)
	}
	if !fired {
		t.Fatal("unauthenticated hook did not fire")
	}
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/tms/drivers/d9" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := testClient(srv.URL).Delete(context.Background(), "/tms/drivers", "d9"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestTransportFailure(t *testing.T) {
	defer gock.OffAll()

	c := testClient("http://erp.invalid")
	gock.InterceptClient(c.HTTP)
	gock.New("http://erp.invalid").
		Get("/pm/tasks").
		ReplyError(errors.New("dial tcp: connection refused"))

	_, err := c.List(context.Background(), "/pm/tasks", nil)
	if !domain.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestGarbageBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).List(context.Background(), "/crm/contracts", nil)
	if !domain.IsDecode(err) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestCreateReturnsEntity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "PT Maju" {
			t.Errorf("payload lost: %+v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"c77","status":"DRAFT","name":"PT Maju"}`))
	}))
	defer srv.Close()

	raw, err := testClient(srv.URL).Create(context.Background(), "/crm/contracts", map[string]any{"name": "PT Maju"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	var got struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode created entity: %v", err)
	}
	if got.ID != "c77" || got.Status != "DRAFT" {
		t.Fatalf("unexpected created entity: %+v", got)
	}
}
