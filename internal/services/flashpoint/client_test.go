package flashpoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
)

const gameID = "0e4b2bb1-0b1f-4d5e-9a8e-0f2a4a0b7c11"

func TestSearchAndGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("smartSearch") == "Alien Hominid":
			if q.Get("filter") != "true" {
				t.Errorf("expected filter=true, got %s", r.URL.RawQuery)
			}
		case q.Get("id") == gameID:
		default:
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"id":"` + gameID + `","title":"Alien Hominid","alternateTitles":"AH; Alien Hominid Flash","platform":"Flash","tags":["Action"]}]`))
	}))
	defer server.Close()

	client, err := New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	games, err := client.SearchGames(context.Background(), "Alien Hominid")
	if err != nil || len(games) != 1 {
		t.Fatalf("SearchGames: %+v err=%v", games, err)
	}
	if !slices.Equal(games[0].AltTitles(), []string{"AH", "Alien Hominid Flash"}) {
		t.Fatalf("unexpected alt titles %v", games[0].AltTitles())
	}
	game, err := client.GetGame(context.Background(), gameID)
	if err != nil || game == nil || game.Title != "Alien Hominid" {
		t.Fatalf("GetGame: %+v err=%v", game, err)
	}
}

func TestGetGameRejectsInvalidID(t *testing.T) {
	client, err := New("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.GetGame(context.Background(), "not-a-uuid"); err == nil {
		t.Fatal("expected invalid id error")
	}
}

func TestImageURLs(t *testing.T) {
	want := "https://infinity.unstable.life/images/Logos/0e/4b/" + gameID + ".png"
	if got := LogoURL(gameID); got != want {
		t.Fatalf("LogoURL = %q, want %q", got, want)
	}
	if got := ScreenshotURL("ab"); got != "" {
		t.Fatalf("expected empty url for short id, got %q", got)
	}
}
