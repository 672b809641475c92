package content

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"

	"pokelearn/internal/logger"
	"pokelearn/internal/models"
)

// Provider resolves quiz content from a primary source, falling back to the
// bundled dataset when the primary is unconfigured, failing or empty. Each kind
// of record is fetched once and cached for the lifetime of the Provider.
type Provider struct {
	primary Source
	bundled *Dataset
	log     *logger.Logger

	mu         sync.Mutex
	challenges []models.Challenge
	sets       []models.ChallengeSet
	rng        *rand.Rand
}

// Option customises a Provider
type Option func(*Provider)

// WithRand supplies the random source used by RandomChallenge
func WithRand(r *rand.Rand) Option {
	return func(p *Provider) { p.rng = r }
}

// WithBundled overrides the offline dataset
func WithBundled(ds *Dataset) Option {
	return func(p *Provider) { p.bundled = ds }
}

// NewProvider creates a provider. A nil primary means no remote is configured.
func NewProvider(primary Source, log *logger.Logger, opts ...Option) *Provider {
	p := &Provider{
		primary: primary,
		log:     log,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bundled == nil {
		p.bundled = Bundled()
	}
	return p
}

// FetchChallenges returns every challenge of the session's dataset
func (p *Provider) FetchChallenges(ctx context.Context) []models.Challenge {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.loadChallenges(ctx))
}

// FetchChallengeSets returns every challenge set of the session's dataset
func (p *Provider) FetchChallengeSets(ctx context.Context) []models.ChallengeSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.loadSets(ctx))
}

// ChallengeByID looks a challenge up by id
func (p *Provider) ChallengeByID(ctx context.Context, id string) (models.Challenge, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.loadChallenges(ctx) {
		if c.ID == id {
			return c, true
		}
	}
	return models.Challenge{}, false
}

// ChallengeSetByID looks a challenge set up by id
func (p *Provider) ChallengeSetByID(ctx context.Context, id string) (models.ChallengeSet, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.loadSets(ctx) {
		if s.ID == id {
			return s, true
		}
	}
	return models.ChallengeSet{}, false
}

// ChallengesByFilters returns the challenges matching subject and difficulty exactly
func (p *Provider) ChallengesByFilters(ctx context.Context, subject models.Subject, difficulty models.Difficulty) []models.Challenge {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filterChallenges(ctx, subject, difficulty)
}

// RandomChallenge picks uniformly among the challenges matching subject and difficulty
func (p *Provider) RandomChallenge(ctx context.Context, subject models.Subject, difficulty models.Difficulty) (models.Challenge, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	matches := p.filterChallenges(ctx, subject, difficulty)
	if len(matches) == 0 {
		return models.Challenge{}, false
	}
	return matches[p.rng.IntN(len(matches))], true
}

// ChallengeSetsByGradeAndDifficulty returns the sets for a grade and difficulty
func (p *Provider) ChallengeSetsByGradeAndDifficulty(ctx context.Context, grade models.Grade, difficulty models.Difficulty) []models.ChallengeSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []models.ChallengeSet
	for _, s := range p.loadSets(ctx) {
		if s.Grade == grade && s.Difficulty == difficulty {
			out = append(out, s)
		}
	}
	return out
}

func (p *Provider) filterChallenges(ctx context.Context, subject models.Subject, difficulty models.Difficulty) []models.Challenge {
	var out []models.Challenge
	for _, c := range p.loadChallenges(ctx) {
		if c.Subject == subject && c.Difficulty == difficulty {
			out = append(out, c)
		}
	}
	return out
}

// loadChallenges must be called with mu held.
func (p *Provider) loadChallenges(ctx context.Context) []models.Challenge {
	if p.challenges != nil {
		return p.challenges
	}
	var res Result[models.Challenge]
	if p.primary != nil {
		records, err := p.primary.FetchChallenges(ctx)
		res = resultOf(records, err)
	}
	records, cache := choose(ctx, p, "challenges", res, p.bundled.Challenges)
	if cache {
		p.challenges = records
	}
	return records
}

// loadSets must be called with mu held.
func (p *Provider) loadSets(ctx context.Context) []models.ChallengeSet {
	if p.sets != nil {
		return p.sets
	}
	var res Result[models.ChallengeSet]
	if p.primary != nil {
		records, err := p.primary.FetchChallengeSets(ctx)
		res = resultOf(records, err)
	}
	records, cache := choose(ctx, p, "challenge sets", res, p.bundled.ChallengeSets)
	if cache {
		p.sets = records
	}
	return records
}

// choose picks the primary records or the bundle and reports whether the pick
// may be cached. A fallback caused by the caller's own cancellation is not.
func choose[T any](ctx context.Context, p *Provider, kind string, res Result[T], bundled []T) ([]T, bool) {
	if p.primary == nil {
		p.log.Info("content source not configured, using bundled "+kind, "count", len(bundled))
		return bundled, true
	}
	switch res.Status {
	case StatusSuccess:
		p.log.Debug("loaded "+kind+" from content source", "count", len(res.Records))
		return res.Records, true
	case StatusEmpty:
		p.log.Warn("content source returned no "+kind+", using bundled dataset")
	default:
		p.log.Warn("failed to fetch "+kind+", using bundled dataset", "error", res.Err)
	}
	return bundled, ctx.Err() == nil
}
