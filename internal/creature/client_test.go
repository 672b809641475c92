package creature

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pikachuJSON = `{
  "id": 25, "name": "pikachu", "height": 4, "weight": 60,
  "sprites": {"other": {"official-artwork": {"front_default": "https://img.example/25.png"}}},
  "types": [{"slot": 1, "type": {"name": "electric"}}],
  "abilities": [{"ability": {"name": "static"}}, {"ability": {"name": "lightning-rod"}}],
  "stats": [{"base_stat": 35, "stat": {"name": "hp"}}, {"base_stat": 90, "stat": {"name": "speed"}}],
  "cries": {"latest": "https://cry.example/25.ogg"}
}`

func TestFetchByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pokemon/25", r.URL.Path)
		_, _ = w.Write([]byte(pikachuJSON))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL+"/", 0).FetchByID(context.Background(), 25)
	require.NoError(t, err)

	assert.Equal(t, 25, p.ID)
	assert.Equal(t, "pikachu", p.Name)
	assert.Equal(t, "https://img.example/25.png", p.ImageURL)
	assert.Equal(t, []string{"electric"}, p.Types)
	assert.Equal(t, []string{"static", "lightning-rod"}, p.Abilities)
	require.Len(t, p.Stats, 2)
	assert.Equal(t, "speed", p.Stats[1].Name)
	assert.Equal(t, 90, p.Stats[1].Value)
	require.NotNil(t, p.Cries)
	assert.Equal(t, "https://cry.example/25.ogg", p.Cries.Latest)
	assert.False(t, p.IsLegendary)
}

func TestFetchByIDFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).FetchByID(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetchFailed))
}

func TestFetchRandom(t *testing.T) {
	var requested []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/pokemon/"))
		assert.NoError(t, err)
		requested = append(requested, id)
		_, _ = w.Write([]byte(`{"id":` + strconv.Itoa(id) + `,"name":"x"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	c.SetRand(rand.New(rand.NewPCG(7, 7)))
	ctx := context.Background()

	for range 25 {
		p, err := c.FetchRandom(ctx, true)
		require.NoError(t, err)
		assert.True(t, p.IsLegendary, "id %d", p.ID)
	}
	for range 25 {
		p, err := c.FetchRandom(ctx, false)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p.ID, 1)
		assert.LessOrEqual(t, p.ID, MaxRandomID)
	}
	assert.Len(t, requested, 50)
}

func TestLegendaryList(t *testing.T) {
	assert.True(t, IsLegendary(150))
	assert.True(t, IsLegendary(898))
	assert.False(t, IsLegendary(893))
	assert.False(t, IsLegendary(25))

	ids := LegendaryIDs()
	ids[0] = 1
	assert.True(t, IsLegendary(144), "callers must not mutate the list")
}
