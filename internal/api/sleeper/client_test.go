package sleeper

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLeague(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/league/123", r.URL.Path)
		w.Write([]byte(`{"league_id":"123","name":"Test League","season":"2024","settings":{"leg":7}}`))
	}))
	defer server.Close()

	api := NewAPI(NewClientWithBaseURL(server.URL))

	league, err := api.GetLeague("123")
	require.NoError(t, err)
	assert.Equal(t, "Test League", league.Name)
	assert.Equal(t, 7, league.CurrentWeek())
}

func TestGetAllPlayersSetsIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/nfl", r.URL.Path)
		w.Write([]byte(`{"6786":{"first_name":"Justin","last_name":"Jefferson","position":"WR","team":"MIN","search_rank":3}}`))
	}))
	defer server.Close()

	api := NewAPI(NewClientWithBaseURL(server.URL))

	players, err := api.GetAllPlayers()
	require.NoError(t, err)
	require.Contains(t, players, "6786")

	p := players["6786"]
	assert.Equal(t, "6786", p.ID)
	assert.Equal(t, "Justin Jefferson", p.FullName())

	assert.True(t, p.Ranked())
	require.NotNil(t, p.SearchRank)
	assert.Equal(t, 3, *p.SearchRank)
}

func TestGetTrendingSendsParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/nfl/trending/add", r.URL.Path)
		assert.Equal(t, "168", r.URL.Query().Get("lookback_hours"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"player_id":"6786","count":42}]`))
	}))
	defer server.Close()

	api := NewAPI(NewClientWithBaseURL(server.URL))

	trending, err := api.GetTrending("add", 168, 100)
	require.NoError(t, err)
	require.Len(t, trending, 1)
	assert.Equal(t, "6786", trending[0].PlayerID)
	assert.Equal(t, 42, trending[0].Count)
}

func TestGetIsSafeForConcurrentUse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out map[string]any
			assert.NoError(t, client.Get("/league/1", nil, &out))
		}()
	}
	wg.Wait()
}

func TestGetReturnsErrorOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	api := NewAPI(NewClientWithBaseURL(server.URL))

	_, err := api.GetLeague("missing")
	assert.ErrorContains(t, err, "unexpected status code: 404")
}
