package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"pokelearn/internal/models"
)

const challengesQuery = `*[_type == "challenge" && isPublished == true] {
  _id, subject, grade, difficulty, type, question, options, correctAnswer,
  points, explanation, hint, media[] { type, asset-> { url }, alt }, tags, isPublished
}`

const challengeSetsQuery = `*[_type == "challengeSet" && isPublished == true] {
  _id, name, description, grade, subject, difficulty, challenges[]-> { _id },
  icon, color, estimatedMinutes, prerequisites[]-> { _id }, isPublished
}`

// SanityConfig identifies a remote content project
type SanityConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string // optional; sent as a bearer token
	UseCDN     bool
	Timeout    time.Duration
}

// SanityClient runs GROQ queries against the Sanity HTTP query API
type SanityClient struct {
	baseURL string
	http    *http.Client
}

// NewSanityClient builds a client for the given project
func NewSanityClient(cfg SanityConfig) *SanityClient {
	host := "api"
	if cfg.UseCDN {
		host = "apicdn"
	}
	base := fmt.Sprintf("https://%s.%s.sanity.io/v%s/data/query/%s",
		cfg.ProjectID, host, cfg.APIVersion, cfg.Dataset)
	return newSanityClient(base, cfg.Token, cfg.Timeout)
}

func newSanityClient(baseURL, token string, timeout time.Duration) *SanityClient {
	client := &http.Client{Timeout: timeout}
	if token != "" {
		client.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	return &SanityClient{baseURL: baseURL, http: client}
}

type sanityMedia struct {
	Type  string `json:"type"`
	Asset *struct {
		URL string `json:"url"`
	} `json:"asset"`
	Alt string `json:"alt"`
}

type sanityRef struct {
	ID string `json:"_id"`
}

type sanityChallenge struct {
	ID            string               `json:"_id"`
	Subject       models.Subject       `json:"subject"`
	Grade         models.Grade         `json:"grade"`
	Difficulty    models.Difficulty    `json:"difficulty"`
	Type          models.ChallengeType `json:"type"`
	Question      string               `json:"question"`
	Options       []string             `json:"options"`
	CorrectAnswer string               `json:"correctAnswer"`
	Points        int                  `json:"points"`
	Explanation   string               `json:"explanation"`
	Hint          string               `json:"hint"`
	Media         []sanityMedia        `json:"media"`
	Tags          []string             `json:"tags"`
	IsPublished   bool                 `json:"isPublished"`
}

type sanityChallengeSet struct {
	ID               string            `json:"_id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Grade            models.Grade      `json:"grade"`
	Subject          models.Subject    `json:"subject"`
	Difficulty       models.Difficulty `json:"difficulty"`
	Challenges       []*sanityRef      `json:"challenges"`
	Icon             string            `json:"icon"`
	Color            string            `json:"color"`
	EstimatedMinutes int               `json:"estimatedMinutes"`
	Prerequisites    []*sanityRef      `json:"prerequisites"`
	IsPublished      bool              `json:"isPublished"`
}

func (c sanityChallenge) toModel() models.Challenge {
	out := models.Challenge{
		ID:            c.ID,
		Subject:       c.Subject,
		Grade:         c.Grade,
		Difficulty:    c.Difficulty,
		Type:          c.Type,
		Question:      c.Question,
		Options:       c.Options,
		CorrectAnswer: c.CorrectAnswer,
		Points:        c.Points,
		Explanation:   c.Explanation,
		Hint:          c.Hint,
		Tags:          c.Tags,
		IsPublished:   c.IsPublished,
	}
	for _, m := range c.Media {
		media := models.ChallengeMedia{Type: m.Type, Alt: m.Alt}
		if m.Asset != nil {
			media.URL = m.Asset.URL
		}
		out.Media = append(out.Media, media)
	}
	return out
}

func (s sanityChallengeSet) toModel() models.ChallengeSet {
	return models.ChallengeSet{
		ID:               s.ID,
		Name:             s.Name,
		Description:      s.Description,
		Grade:            s.Grade,
		Subject:          s.Subject,
		Difficulty:       s.Difficulty,
		ChallengeIDs:     refIDs(s.Challenges),
		Icon:             s.Icon,
		Color:            s.Color,
		EstimatedMinutes: s.EstimatedMinutes,
		Prerequisites:    refIDs(s.Prerequisites),
		IsPublished:      s.IsPublished,
	}
}

// refIDs flattens dereferenced documents; dangling references come back null.
func refIDs(refs []*sanityRef) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		if r != nil && r.ID != "" {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// FetchChallenges returns every published challenge
func (c *SanityClient) FetchChallenges(ctx context.Context) ([]models.Challenge, error) {
	var docs []sanityChallenge
	if err := c.query(ctx, challengesQuery, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Challenge, 0, len(docs))
	for _, d := range docs {
		if !d.IsPublished {
			continue
		}
		out = append(out, d.toModel())
	}
	return out, nil
}

// FetchChallengeSets returns every published challenge set
func (c *SanityClient) FetchChallengeSets(ctx context.Context) ([]models.ChallengeSet, error) {
	var docs []sanityChallengeSet
	if err := c.query(ctx, challengeSetsQuery, &docs); err != nil {
		return nil, err
	}
	out := make([]models.ChallengeSet, 0, len(docs))
	for _, d := range docs {
		if !d.IsPublished {
			continue
		}
		out = append(out, d.toModel())
	}
	return out, nil
}

func (c *SanityClient) query(ctx context.Context, groq string, result any) error {
	endpoint := c.baseURL + "?" + url.Values{"query": {groq}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build content query: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("content query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("content query returned %d: %s", resp.StatusCode, body)
	}

	envelope := struct {
		Result json.RawMessage `json:"result"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode content response: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("failed to decode content records: %w", err)
	}
	return nil
}
