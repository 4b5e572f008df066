package steamgriddb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchAndGrids(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("unexpected auth header %q", got)
		}
		switch r.URL.EscapedPath() {
		case "/search/autocomplete/Super%20Mario%20Bros.":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":5254,"name":"Super Mario Bros.","verified":true}]}`))
		case "/grids/game/5254":
			if r.URL.Query().Get("nsfw") != "false" {
				t.Errorf("expected nsfw filter, got %s", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"url":"https://cdn/grid.png","width":600,"height":900}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.EscapedPath())
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := New("key", server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	games, err := client.SearchGames(context.Background(), "Super Mario Bros.")
	if err != nil || len(games) != 1 || games[0].ID != 5254 {
		t.Fatalf("SearchGames: %+v err=%v", games, err)
	}
	grids, err := client.Grids(context.Background(), 5254)
	if err != nil || len(grids) != 1 || grids[0].URL != "https://cdn/grid.png" {
		t.Fatalf("Grids: %+v err=%v", grids, err)
	}
}

func TestUnsuccessfulEnvelopeIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"errors":["Game not found"]}`))
	}))
	defer server.Close()

	client, err := New("key", server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	game, err := client.GetGame(context.Background(), 99)
	if err != nil || game != nil {
		t.Fatalf("expected empty result, got %+v err=%v", game, err)
	}
}
