package game

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// RulesConfig is the serializable rules configuration of a game.
type RulesConfig struct {
	// BaseWager is the stake of a regular hole, in quarters.
	BaseWager int `json:"base_wager"`

	// InvisibleAardvark enables the 4-man novelty rule where a phantom
	// Aardvark joins the field when the captain is forced solo.
	InvisibleAardvark bool `json:"invisible_aardvark,omitempty"`
}

// PlayerSetup is the external registry record supplied at game setup.
type PlayerSetup struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	Handicap float64  `json:"handicap"`
}

// Config collects everything needed to start a game.
type Config struct {
	Rules   RulesConfig
	Course  Course
	Players []PlayerSetup
}

// HoleProgress tracks shot-sequence state within the current hole: how many
// shots each player has taken, where each ball lies (yards to the hole), and
// the gross scores reported at hole-out.
type HoleProgress struct {
	ShotsTaken  map[PlayerID]int     `json:"shots_taken"`
	Balls       map[PlayerID]float64 `json:"balls"`
	GrossScores map[PlayerID]float64 `json:"gross_scores"`
	Notes       []string             `json:"notes,omitempty"`
}

func newHoleProgress() HoleProgress {
	return HoleProgress{
		ShotsTaken:  make(map[PlayerID]int),
		Balls:       make(map[PlayerID]float64),
		GrossScores: make(map[PlayerID]float64),
	}
}

// HoleResult is the immutable settlement record of one hole. Invariant:
// the PointsDelta values sum to zero within 0.01 quarters.
type HoleResult struct {
	Hole              int                  `json:"hole"`
	Phase             GamePhase            `json:"phase"`
	Teams             Teams                `json:"teams"`
	Wager             int                  `json:"wager"`
	Multiplier        int                  `json:"multiplier"`
	Winner            SideID               `json:"winner,omitempty"` // empty on a push
	Push              bool                 `json:"push,omitempty"`
	PointsDelta       map[PlayerID]float64 `json:"points_delta"`
	CarryOverAmount   int                  `json:"carry_over_amount"`
	NeedsManualReview bool                 `json:"needs_manual_review,omitempty"`
	Notes             []string             `json:"notes,omitempty"`
}

// State is the complete per-game state. Every engine operation is a method on
// State or a pure function; there is no package-level mutable state, so
// independent games can run concurrently as long as each State has a single
// owner.
type State struct {
	ID     string      `json:"id"`
	Rules  RulesConfig `json:"rules"`
	Course Course      `json:"course"`

	Players []*Player  `json:"players"`
	Order   []PlayerID `json:"order"` // fixed setup order, rotation base

	CurrentHole  int        `json:"current_hole"`
	Phase        GamePhase  `json:"phase"`
	HittingOrder []PlayerID `json:"hitting_order"`

	Teams        Teams        `json:"teams"`
	Betting      BettingState `json:"betting"`
	HoleProgress HoleProgress `json:"hole_progress"`

	History             []HoleResult `json:"history"`
	GoatPositionHistory []int        `json:"goat_position_history,omitempty"`
	Finished            bool         `json:"finished,omitempty"`

	logger *log.Logger
	bus    EventBus
}

// Option configures non-serialized collaborators of a State.
type Option func(*State)

// WithLogger attaches a structured logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *State) { s.logger = logger }
}

// WithEventBus attaches an event bus for observers.
func WithEventBus(bus EventBus) Option {
	return func(s *State) { s.bus = bus }
}

// WithID overrides the generated game ID (used when restoring fixtures).
func WithID(id string) Option {
	return func(s *State) { s.ID = id }
}

// NewGame validates the setup and returns a State positioned at hole 1.
func NewGame(cfg Config, opts ...Option) (*State, error) {
	n := len(cfg.Players)
	if n < 4 || n > 6 {
		return nil, validationf("players", "Wolf Goat Pig takes 4-6 players, got %d", n)
	}
	if cfg.Rules.BaseWager <= 0 {
		return nil, validationf("base_wager", "base wager must be positive quarters, got %d", cfg.Rules.BaseWager)
	}
	if err := cfg.Course.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[PlayerID]bool, n)
	players := make([]*Player, 0, n)
	order := make([]PlayerID, 0, n)
	for _, ps := range cfg.Players {
		if ps.ID == "" {
			return nil, validationf("players", "player %q has no id", ps.Name)
		}
		if seen[ps.ID] {
			return nil, validationf("players", "duplicate player id %s", ps.ID)
		}
		if ps.Handicap < 0 || ps.Handicap > MaxHandicap {
			return nil, validationf("handicap", "player %s handicap %.1f outside 0-%.0f", ps.ID, ps.Handicap, MaxHandicap)
		}
		seen[ps.ID] = true
		players = append(players, NewPlayer(ps.ID, ps.Name, ps.Handicap))
		order = append(order, ps.ID)
	}

	s := &State{
		ID:      uuid.NewString(),
		Rules:   cfg.Rules,
		Course:  cfg.Course,
		Players: players,
		Order:   order,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.startHole(1, 0)
	return s, nil
}

// Captain returns the hole's captain.
func (s *State) Captain() PlayerID { return s.Teams.Captain }

// PlayerCount returns the number of players in the game.
func (s *State) PlayerCount() int { return len(s.Players) }

func (s *State) playerByID(id PlayerID) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// startHole resets per-hole state for the given hole with the quarters
// carried over from a pushed previous hole.
func (s *State) startHole(holeNumber, carryOver int) {
	s.CurrentHole = holeNumber
	s.Phase = DeterminePhase(holeNumber, len(s.Players))
	s.HittingOrder = HittingOrderForHole(holeNumber, s.Order)

	baseWager := s.Rules.BaseWager
	if s.Phase == PhaseVinniesVariation {
		baseWager *= 2 // Vinnie's Variation plays at double base wager
	}
	s.Betting = newBettingState(baseWager, carryOver)

	captain := CaptainForHole(holeNumber, s.Order)
	s.Teams = Teams{
		Kind:    TeamPending,
		Captain: captain,
	}
	if len(s.HittingOrder) > 4 {
		s.Teams.UnassignedAardvarks = append([]PlayerID(nil), s.HittingOrder[4:]...)
	}
	s.HoleProgress = newHoleProgress()

	s.logger.Debug("hole start",
		"game", s.ID,
		"hole", holeNumber,
		"phase", s.Phase.String(),
		"captain", captain,
		"base_wager", baseWager,
		"carry_over", carryOver)
	s.publish(HoleStartEvent{
		Hole:      holeNumber,
		Phase:     s.Phase,
		Captain:   captain,
		BaseWager: baseWager,
		CarryOver: carryOver,
	})
}

// RecordShot registers a shot for a player, with the resulting distance to
// the hole in yards (0 means holed out). Shots drive the two timing rules:
// the partnership window and the line of scrimmage. A shot struck from in
// front of the line of scrimmage (while another ball lies further out)
// closes the wagering window for the hole.
func (s *State) RecordShot(player PlayerID, distance float64) error {
	if s.Finished {
		return ruleViolationf(CodeHoleSettled, "round is finished")
	}
	if s.playerByID(player) == nil {
		return validationf("player", "unknown player %s", player)
	}
	if distance < 0 {
		return validationf("distance", "distance %.1f cannot be negative", distance)
	}

	if s.HoleProgress.ShotsTaken[player] > 0 && !s.Betting.LineClosed {
		// The line of scrimmage is the furthest ball in play. Playing from
		// in front of it shuts the betting window.
		line := -1.0
		for pid, d := range s.HoleProgress.Balls {
			if pid != player && s.HoleProgress.ShotsTaken[pid] > 0 && d > line {
				line = d
			}
		}
		if line >= 0 && s.HoleProgress.Balls[player] < line {
			s.Betting.LineClosed = true
			s.logger.Debug("line of scrimmage breached", "game", s.ID, "hole", s.CurrentHole, "player", player)
		}
	}

	s.HoleProgress.ShotsTaken[player]++
	s.HoleProgress.Balls[player] = distance
	return nil
}

// RecordScore reports a player's gross score for the current hole.
func (s *State) RecordScore(player PlayerID, gross float64) error {
	if s.Finished {
		return ruleViolationf(CodeHoleSettled, "round is finished")
	}
	if s.playerByID(player) == nil {
		return validationf("player", "unknown player %s", player)
	}
	if gross < 1 || gross > 30 {
		return validationf("gross", "gross score %.1f outside 1-30", gross)
	}
	s.HoleProgress.GrossScores[player] = gross
	return nil
}

// Standings returns players ordered best to worst by cumulative points,
// ties broken by setup order.
func (s *State) Standings() []*Player {
	pos := make(map[PlayerID]int, len(s.Order))
	for i, pid := range s.Order {
		pos[pid] = i
	}
	out := append([]*Player(nil), s.Players...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return pos[out[i].ID] < pos[out[j].ID]
	})
	return out
}

// TotalPoints sums all players' points. It is zero for a consistent game.
func (s *State) TotalPoints() float64 {
	var sum float64
	for _, p := range s.Players {
		sum += p.Points
	}
	return sum
}

// Snapshot serializes the complete game state to JSON. Loggers and event
// buses are collaborators, not state, and are reattached on Restore.
func (s *State) Snapshot() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Restore rebuilds a State from a Snapshot. Replaying actions that were
// already applied against the snapshot is safe for settled holes: settlement
// is keyed to the current hole, so a stale ADVANCE_HOLE is rejected rather
// than re-applied.
func Restore(data []byte, opts ...Option) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, validationf("snapshot", "malformed snapshot: %v", err)
	}
	if len(s.Players) < 4 || len(s.Players) > 6 {
		return nil, validationf("snapshot", "snapshot has %d players, want 4-6", len(s.Players))
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return &s, nil
}
