// Package creature fetches reward creatures from a PokeAPI-compatible service.
package creature

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"pokelearn/internal/models"
)

// ErrFetchFailed is returned when a creature cannot be retrieved
var ErrFetchFailed = errors.New("failed to fetch Pokemon")

// MaxRandomID is the highest id drawn for a non-legendary reward
const MaxRandomID = 898

var legendaryIDs = []int{
	144, 145, 146, 150, 151, 243, 244, 245, 249, 250, 251,
	377, 378, 379, 380, 381, 382, 383, 384, 385, 386,
	480, 481, 482, 483, 484, 485, 486, 487, 488, 489, 490, 491, 492, 493, 494,
	638, 639, 640, 641, 642, 643, 644, 645, 646, 647, 648, 649,
	716, 717, 718, 719, 720, 721,
	785, 786, 787, 788, 789, 790, 791, 792,
	800, 801, 802, 807, 808, 809,
	888, 889, 890, 891, 892, 894, 895, 896, 897, 898,
}

// IsLegendary reports whether the id belongs to the legendary list
func IsLegendary(id int) bool {
	return slices.Contains(legendaryIDs, id)
}

// LegendaryIDs returns a copy of the legendary id list
func LegendaryIDs() []int {
	return slices.Clone(legendaryIDs)
}

// Client talks to the creature API
type Client struct {
	baseURL string
	http    *http.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// NewClient creates a client. A zero timeout means requests never time out.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// SetRand replaces the random source used by FetchRandom
func (c *Client) SetRand(r *rand.Rand) {
	c.mu.Lock()
	c.rng = r
	c.mu.Unlock()
}

type apiResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		Other map[string]struct {
			FrontDefault string `json:"front_default"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Height    int `json:"height"`
	Weight    int `json:"weight"`
	Abilities []struct {
		Ability struct {
			Name string `json:"name"`
		} `json:"ability"`
	} `json:"abilities"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Cries *models.PokemonCries `json:"cries"`
}

func (r apiResponse) toModel() models.Pokemon {
	p := models.Pokemon{
		ID:          r.ID,
		Name:        r.Name,
		ImageURL:    r.Sprites.Other["official-artwork"].FrontDefault,
		Types:       make([]string, 0, len(r.Types)),
		Height:      r.Height,
		Weight:      r.Weight,
		Abilities:   make([]string, 0, len(r.Abilities)),
		Stats:       make([]models.PokemonStat, 0, len(r.Stats)),
		Cries:       r.Cries,
		IsLegendary: IsLegendary(r.ID),
	}
	for _, t := range r.Types {
		p.Types = append(p.Types, t.Type.Name)
	}
	for _, a := range r.Abilities {
		p.Abilities = append(p.Abilities, a.Ability.Name)
	}
	for _, s := range r.Stats {
		p.Stats = append(p.Stats, models.PokemonStat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	return p
}

// FetchByID retrieves one creature
func (c *Client) FetchByID(ctx context.Context, id int) (models.Pokemon, error) {
	url := fmt.Sprintf("%s/pokemon/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Pokemon{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Pokemon{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Pokemon{}, fmt.Errorf("%w: id %d returned %d", ErrFetchFailed, id, resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Pokemon{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return body.toModel(), nil
}

// FetchRandom retrieves a random creature, drawn from the legendary list when
// legendaryOnly is set and from 1..MaxRandomID otherwise
func (c *Client) FetchRandom(ctx context.Context, legendaryOnly bool) (models.Pokemon, error) {
	return c.FetchByID(ctx, c.randomID(legendaryOnly))
}

func (c *Client) randomID(legendaryOnly bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if legendaryOnly {
		return legendaryIDs[c.rng.IntN(len(legendaryIDs))]
	}
	return c.rng.IntN(MaxRandomID) + 1
}
