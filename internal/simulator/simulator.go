// Package simulator plays full bot-driven rounds and aggregates the results.
// Rounds are seeded independently, so any single round can be replayed from
// the run seed and its round index.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/thoas/go-funk"
	"golang.org/x/sync/errgroup"

	"github.com/fairwaylabs/wolfgoatpig/internal/bot"
	"github.com/fairwaylabs/wolfgoatpig/internal/game"
	"github.com/fairwaylabs/wolfgoatpig/internal/history"
	"github.com/fairwaylabs/wolfgoatpig/internal/randutil"
	"github.com/fairwaylabs/wolfgoatpig/internal/statistics"
)

// Simulator runs Wolf Goat Pig round simulations.
type Simulator struct {
	config *Config
	logger *log.Logger
	writer history.Writer
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithLogger attaches a structured logger.
func WithLogger(logger *log.Logger) SimulatorOption {
	return func(s *Simulator) { s.logger = logger }
}

// WithHistoryWriter archives every completed round through the writer.
func WithHistoryWriter(w history.Writer) SimulatorOption {
	return func(s *Simulator) { s.writer = w }
}

// New creates a new simulator with the given configuration.
func New(config *Config, opts ...SimulatorOption) *Simulator {
	s := &Simulator{config: config}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.writer == nil {
		s.writer = history.NoopWriter{}
	}
	return s
}

// Run executes the configured number of rounds, in parallel up to the
// configured limit, and returns the aggregated statistics.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	stats := statistics.New()
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Simulation.Parallelism)

	for round := 0; round < s.config.Simulation.Rounds; round++ {
		round := round
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, state, err := s.PlayRound(round)
			if err != nil {
				return fmt.Errorf("round %d (seed %d): %w", round, result.Seed, err)
			}
			if err := s.writer.WriteRound(state); err != nil {
				return fmt.Errorf("archiving round %d: %w", round, err)
			}
			mu.Lock()
			stats.Add(result)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// PlayRound plays one complete round with the configured bots and returns
// both the result and the final game state. Round indexes are the unit of
// reproducibility: the same config and index replay the same round.
func (s *Simulator) PlayRound(round int) (statistics.RoundResult, *game.State, error) {
	seed := s.config.Simulation.Seed
	rng := randutil.ForRound(seed, round)
	result := statistics.RoundResult{
		Seed:          seed + int64(round),
		Points:        make(map[game.PlayerID]float64),
		Personalities: make(map[game.PlayerID]string),
	}

	setups := funk.Map(s.config.Players, func(p PlayerConfig) game.PlayerSetup {
		return game.PlayerSetup{ID: game.PlayerID(p.Name), Name: p.Name, Handicap: p.Handicap}
	}).([]game.PlayerSetup)

	state, err := game.NewGame(game.Config{
		Rules:   game.RulesConfig{BaseWager: s.config.Simulation.BaseWager},
		Course:  game.StandardCourse(),
		Players: setups,
	}, game.WithLogger(s.logger))
	if err != nil {
		return result, nil, err
	}

	providers := make(map[game.PlayerID]game.DecisionProvider, len(s.config.Players))
	for _, pc := range s.config.Players {
		pid := game.PlayerID(pc.Name)
		botRNG := randutil.New(result.Seed ^ randutil.SeedFromString(pc.Name))
		provider, err := bot.New(bot.Personality(pc.Personality), botRNG, s.logger)
		if err != nil {
			return result, nil, err
		}
		providers[pid] = provider
		result.Personalities[pid] = pc.Personality
	}

	d := &roundDriver{state: state, providers: providers, rng: rng, logger: s.logger}
	for !state.Finished {
		if err := d.playHole(); err != nil {
			return result, nil, err
		}
	}

	for _, p := range state.Players {
		result.Points[p.ID] = p.Points
	}
	result.Holes = len(state.History)
	for _, h := range state.History {
		if h.Push {
			result.Pushes++
		}
		if h.Teams.Kind == game.TeamSolo {
			result.Solos++
		}
		if h.Multiplier > result.MaxMultiplier {
			result.MaxMultiplier = h.Multiplier
		}
		if h.NeedsManualReview {
			result.ManualReviews++
		}
	}
	return result, state, nil
}

// roundDriver sequences one game's decision points. The engine stays the
// source of truth: every move goes through its validated operations, and rule
// rejections of optional moves are tolerated rather than replanned.
type roundDriver struct {
	state     *game.State
	providers map[game.PlayerID]game.DecisionProvider
	rng       *rand.Rand
	logger    *log.Logger
}

// tolerate swallows rule violations on optional moves; anything else is a
// real failure.
func (d *roundDriver) tolerate(err error) error {
	var rve *game.RuleViolationError
	if err == nil || errors.As(err, &rve) {
		return nil
	}
	return err
}

func (d *roundDriver) playHole() error {
	s := d.state
	hole := s.CurrentHole

	if s.Phase == game.PhaseHoepfinger {
		if err := d.goatPicksPosition(); err != nil {
			return err
		}
	}
	if hole == 18 {
		if err := d.maybeBigDick(); err != nil {
			return err
		}
	}
	if err := d.formTeams(); err != nil {
		return err
	}
	if err := d.resolveAardvarks(); err != nil {
		return err
	}
	if err := d.maybeFloat(); err != nil {
		return err
	}
	if err := d.exchangeDoubles(); err != nil {
		return err
	}
	if err := d.playShotsAndScores(); err != nil {
		return err
	}

	if _, err := s.ApplyAction(game.Action{Kind: game.ActionAdvanceHole}); err != nil {
		return fmt.Errorf("settling hole %d: %w", hole, err)
	}
	return nil
}

// goatPicksPosition lets the Goat choose a hitting-order slot, retrying on
// the 6-man no-repeat rule.
func (d *roundDriver) goatPicksPosition() error {
	s := d.state
	goat, _ := game.Goat(s.Players, s.Order)
	n := len(s.Players)
	pos := 1 + d.rng.IntN(n)
	for attempt := 0; attempt < n; attempt++ {
		err := s.SelectGoatPosition(goat, pos)
		if err == nil {
			return nil
		}
		if terr := d.tolerate(err); terr != nil {
			return terr
		}
		pos = pos%n + 1
	}
	return nil
}

func (d *roundDriver) maybeBigDick() error {
	s := d.state
	leader := s.Standings()[0]
	if leader.Points <= 0 {
		return nil
	}
	view := s.View(leader.ID)
	if !d.providers[leader.ID].VoteBigDick(view, leader.ID) {
		return nil
	}
	if err := d.tolerate(s.InvokeBigDick(leader.ID)); err != nil {
		return err
	}
	if s.Betting.Special.Kind != game.SpecialBigDick {
		return nil
	}
	for _, p := range s.Players {
		if p.ID == leader.ID {
			continue
		}
		accept := d.providers[p.ID].VoteBigDick(s.View(p.ID), leader.ID)
		if err := d.tolerate(s.BigDickVote(p.ID, accept)); err != nil {
			return err
		}
		if s.Betting.Special.Voided {
			break
		}
	}
	return nil
}

func (d *roundDriver) formTeams() error {
	s := d.state
	captain := s.Captain()
	candidates := d.partnerCandidates(captain)

	decision := d.providers[captain].ChoosePartner(s.View(captain), candidates)
	if decision.GoSolo || len(candidates) == 0 {
		err := s.DeclareSolo(captain)
		if err == nil {
			return nil
		}
		if terr := d.tolerate(err); terr != nil {
			return terr
		}
		// Solo blocked (an active special bet): fall through to a partner.
		decision.Target = candidates[0]
	}

	if err := s.RequestPartner(captain, decision.Target); err != nil {
		return err
	}
	accept := d.providers[decision.Target].RespondPartner(s.View(decision.Target), captain)
	return s.RespondPartner(accept)
}

// partnerCandidates mirrors the eligibility rule: non-captain players among
// the first four in hitting order.
func (d *roundDriver) partnerCandidates(captain game.PlayerID) []game.PlayerID {
	s := d.state
	core := len(s.HittingOrder)
	if core > 4 {
		core = 4
	}
	var out []game.PlayerID
	for _, pid := range s.HittingOrder[:core] {
		if pid != captain {
			out = append(out, pid)
		}
	}
	return out
}

func (d *roundDriver) resolveAardvarks() error {
	s := d.state
	for len(s.Teams.UnassignedAardvarks) > 0 {
		aardvark := s.Teams.UnassignedAardvarks[0]
		side := d.providers[aardvark].ChooseAardvarkSide(s.View(aardvark))
		if err := s.AardvarkRequestJoin(aardvark, side); err != nil {
			return err
		}
		receiver := d.sideRepresentative(side, aardvark)
		if receiver == "" {
			continue
		}
		if d.providers[receiver].TossAardvark(s.View(receiver), aardvark) {
			if err := d.tolerate(s.AardvarkToss(aardvark)); err != nil {
				return err
			}
		}
	}
	return nil
}

// sideRepresentative picks the member who answers for a side, skipping the
// player under discussion.
func (d *roundDriver) sideRepresentative(side game.SideID, exclude game.PlayerID) game.PlayerID {
	for _, pid := range d.state.Teams.Members(side) {
		if pid != exclude {
			return pid
		}
	}
	return ""
}

// maybeFloat has the captain float when sitting strictly last on points.
func (d *roundDriver) maybeFloat() error {
	s := d.state
	captain := s.Captain()
	goat, tied := game.Goat(s.Players, s.Order)
	if tied || goat != captain {
		return nil
	}
	return d.tolerate(s.InvokeFloat(captain))
}

func (d *roundDriver) exchangeDoubles() error {
	s := d.state
	for _, side := range []game.SideID{game.SideCaptain, game.SideField} {
		rep := d.sideRepresentative(side, "")
		if rep == "" {
			continue
		}
		if !d.providers[rep].OfferDouble(s.View(rep)) {
			continue
		}
		if err := d.tolerate(s.OfferDouble(side)); err != nil {
			return err
		}
		if s.Betting.Pending == nil {
			continue
		}
		responder := d.sideRepresentative(side.Other(), "")
		accept := responder != "" && d.providers[responder].RespondDouble(s.View(responder))
		if err := s.RespondDouble(accept); err != nil {
			return err
		}
		if !accept {
			return nil // hole conceded
		}
	}
	return nil
}

func (d *roundDriver) playShotsAndScores() error {
	s := d.state
	if s.Betting.Forfeit != "" {
		return nil
	}
	for _, pid := range s.HittingOrder {
		if err := s.RecordShot(pid, 120+d.rng.Float64()*160); err != nil {
			return err
		}
	}
	hole, err := s.Course.HoleByNumber(s.CurrentHole)
	if err != nil {
		return err
	}
	for _, p := range s.Players {
		gross := float64(hole.Par) + float64(d.rng.IntN(5)-1)
		// Higher handicaps shoot higher gross scores, on average.
		if d.rng.Float64()*36 < p.Handicap {
			gross++
		}
		if gross < 1 {
			gross = 1
		}
		if err := s.RecordScore(p.ID, gross); err != nil {
			return err
		}
	}
	return nil
}
