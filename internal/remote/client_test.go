package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bigtrip/internal/domain"
)

func TestListPoints(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"p-1","type":"flight","destination":"d-1","base_price":500,"date_from":"2024-01-01T10:00:00.000Z","date_to":"2024-01-01T12:00:00.000Z","is_favorite":false,"offers":["offer-1"]}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "Basic er883jdzbdw")
	records, err := client.ListPoints(context.Background())
	if err != nil {
		t.Fatalf("list points: %v", err)
	}
	if gotAuth != "Basic er883jdzbdw" {
		t.Fatalf("authorization header missing, got %q", gotAuth)
	}
	if gotPath != "/points" {
		t.Fatalf("wrong path: %s", gotPath)
	}
	if len(records) != 1 || records[0].ID != "p-1" || records[0].BasePrice != 500 {
		t.Fatalf("unexpected records: %+v", records)
	}
	if len(records[0].Offers) != 1 || records[0].Offers[0] != "offer-1" {
		t.Fatalf("offers not decoded: %+v", records[0].Offers)
	}
}

func TestCreatePointPostsBodyAndReturnsServerRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/points" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type: %q", ct)
		}
		var in PointRecord
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode body: %v", err)
		}
		in.ID = "server-1"
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(in)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	out, err := client.CreatePoint(context.Background(), PointRecord{Type: "flight", Destination: "d-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.ID != "server-1" || out.Type != "flight" {
		t.Fatalf("server record not returned: %+v", out)
	}
}

func TestUpdateAndDeleteTargetTheID(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"p-1","type":"flight","destination":"d-1","base_price":0,"date_from":"2024-01-01T10:00:00.000Z","date_to":"2024-01-01T12:00:00.000Z","is_favorite":false,"offers":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.UpdatePoint(context.Background(), PointRecord{ID: "p-1"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := client.DeletePoint(context.Background(), "p-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(paths) != 2 || paths[0] != "PUT /points/p-1" || paths[1] != "DELETE /points/p-1" {
		t.Fatalf("unexpected requests: %v", paths)
	}
}

func TestNotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	err := client.DeletePoint(context.Background(), "gone")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestServerErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.ListPoints(context.Background())
	if !domain.IsServer(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	var serverErr domain.ServerError
	if !errors.As(err, &serverErr) || serverErr.Status != http.StatusInternalServerError {
		t.Fatalf("status not carried: %v", err)
	}
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, "")
	_, err := client.ListPoints(context.Background())
	if !domain.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.ListDestinations(context.Background())
	if !domain.IsMalformedRecord(err) {
		t.Fatalf("expected malformed-record error, got %v", err)
	}
}

func TestListOffersGroups(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/offers" {
			t.Errorf("wrong path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"type":"flight","offers":[{"id":"offer-1","title":"Luggage","price":50}]}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	groups, err := client.ListOffers(context.Background())
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(groups) != 1 || groups[0].Type != "flight" || len(groups[0].Offers) != 1 {
		t.Fatalf("unexpected groups: %+v", groups)
	}
	if groups[0].Offers[0].Price != 50 {
		t.Fatalf("price not decoded: %+v", groups[0].Offers[0])
	}
}
