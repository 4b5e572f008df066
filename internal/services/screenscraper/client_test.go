package screenscraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(Credentials{DevID: "dev", DevPassword: "devpw", SoftName: "romm", Username: "user", Password: "pw"}, server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestLookupByHashSendsCredentialsAndHashes(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/jeuInfos.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		for key, want := range map[string]string{
			"devid": "dev", "devpassword": "devpw", "softname": "romm", "ssid": "user",
			"sspassword": "pw", "output": "json", "crc": "3337EC46", "systemeid": "3",
		} {
			if q.Get(key) != want {
				t.Errorf("param %s = %q, want %q", key, q.Get(key), want)
			}
		}
		_, _ = w.Write([]byte(`{"response":{"jeu":{"id":"1234","noms":[{"region":"us","text":"Super Mario Bros."}],"systeme":{"id":"3","text":"NES"},"rom":{"romserial":"NES-SM-USA"}}}}`))
	})

	game, err := client.LookupByHash(context.Background(), HashQuery{SystemID: 3, CRC32: "3337ec46"})
	if err != nil {
		t.Fatalf("LookupByHash: %v", err)
	}
	if game == nil || game.ID != 1234 || game.System == nil || game.System.ID != 3 {
		t.Fatalf("unexpected game %+v", game)
	}
	if game.ROM == nil || game.ROM.Serial != "NES-SM-USA" {
		t.Fatalf("unexpected rom info %+v", game.ROM)
	}
}

func TestLookupByHashRequiresHash(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	if _, err := client.LookupByHash(context.Background(), HashQuery{SystemID: 3}); err == nil {
		t.Fatal("expected error without hashes")
	}
}

func TestSearchGamesDropsEmptyEntries(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("recherche") != "Tetris" {
			t.Errorf("unexpected search %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"response":{"jeux":[{},{"id":5,"noms":[{"region":"wor","text":"Tetris"}]}]}}`))
	})
	games, err := client.SearchGames(context.Background(), "Tetris", 9)
	if err != nil {
		t.Fatalf("SearchGames: %v", err)
	}
	if len(games) != 1 || games[0].ID != 5 {
		t.Fatalf("unexpected games %+v", games)
	}
}

func TestFlexInt(t *testing.T) {
	var v struct {
		A FlexInt `json:"a"`
		B FlexInt `json:"b"`
		C FlexInt `json:"c"`
		D FlexInt `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a":"12","b":7,"c":"","d":null}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.A != 12 || v.B != 7 || v.C != 0 || v.D != 0 {
		t.Fatalf("unexpected values %+v", v)
	}
}
