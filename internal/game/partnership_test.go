package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPartnerFormsPending(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 4)
	require.NoError(t, s.RequestPartner("p1", "p3"))
	require.NotNil(t, s.Teams.Pending)
	assert.Equal(t, PlayerID("p3"), s.Teams.Pending.Target)
	assert.Equal(t, TeamPending, s.Teams.Kind)

	require.NoError(t, s.RespondPartner(true))
	assert.Equal(t, TeamPartners, s.Teams.Kind)
	assert.ElementsMatch(t, []PlayerID{"p1", "p3"}, s.Teams.CaptainSide)
	assert.ElementsMatch(t, []PlayerID{"p2", "p4"}, s.Teams.FieldSide)
}

func TestRequestPartnerOnlyCaptain(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 4)
	err := s.RequestPartner("p2", "p3")
	var rve *RuleViolationError
	require.ErrorAs(t, err, &rve)
	assert.Equal(t, CodeNotCaptain, rve.Code)
}

func TestRequestPartnerWindowCloses(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 4)
	// All eligible partners hit their tee shots: window closed.
	require.NoError(t, s.RecordShot("p1", 200))
	require.NoError(t, s.RecordShot("p2", 210))
	require.NoError(t, s.RecordShot("p3", 190))
	require.NoError(t, s.RecordShot("p4", 230))

	err := s.RequestPartner("p1", "p2")
	var rve *RuleViolationError
	require.ErrorAs(t, err, &rve)
	assert.Equal(t, CodeWindowClosed, rve.Code)
}

func TestRequestPartnerWindowOpenUntilLastTeeShot(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 4)
	require.NoError(t, s.RecordShot("p1", 200))
	require.NoError(t, s.RecordShot("p2", 210))
	require.NoError(t, s.RecordShot("p3", 190))
	// p4 has not hit yet.
	require.NoError(t, s.RequestPartner("p1", "p3"))
}

func TestDeclinedInvitationForcesSoloAtDoubleStake(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 4)
	require.NoError(t, s.RequestPartner("p1", "p2"))
	require.NoError(t, s.RespondPartner(false))

	assert.Equal(t, TeamSolo, s.Teams.Kind)
	assert.Equal(t, []PlayerID{"p1"}, s.Teams.CaptainSide)
	assert.Equal(t, 2, s.Betting.Multiplier, "The Invitation doubles the wager")
	assert.Equal(t, 1, s.playerByID("p1").SoloCount)
}

func TestDuncanRequiresNoTeeShots(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 4)
	require.NoError(t, s.DeclareSolo("p1"))
	assert.Equal(t, SpecialDuncan, s.Betting.Special.Kind)
	assert.Equal(t, 2, s.Betting.Multiplier)
}

func TestPlainSoloAfterTeeShots(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 4)
	require.NoError(t, s.RecordShot("p1", 200))
	require.NoError(t, s.DeclareSolo("p1"))
	assert.Equal(t, SpecialNone, s.Betting.Special.Kind)
	assert.Equal(t, TeamSolo, s.Teams.Kind)
	assert.Equal(t, 2, s.Betting.Multiplier)
}

func TestInvalidPartnerTarget(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 5)
	// p5 hits fifth: an Aardvark, not an eligible partner.
	err := s.RequestPartner("p1", "p5")
	var rve *RuleViolationError
	require.ErrorAs(t, err, &rve)
	assert.Equal(t, CodeInvalidTarget, rve.Code)
}

func TestAardvarkJoinAndToss(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 5)
	formPartners(t, s, "p2")

	require.NoError(t, s.AardvarkRequestJoin("p5", SideCaptain))
	assert.Equal(t, TeamAardvarkJoined, s.Teams.Kind)
	assert.Contains(t, s.Teams.CaptainSide, PlayerID("p5"))

	require.NoError(t, s.AardvarkToss("p5"))
	assert.Contains(t, s.Teams.FieldSide, PlayerID("p5"))
	assert.NotContains(t, s.Teams.CaptainSide, PlayerID("p5"))
	assert.Equal(t, 3, s.Betting.Multiplier, "toss is triple risk")
	assert.Equal(t, 1, s.playerByID("p5").AardvarkTossCount)

	// No ping-pong: the same Aardvark cannot be tossed twice.
	err := s.AardvarkToss("p5")
	var rve *RuleViolationError
	require.ErrorAs(t, err, &rve)
}

func TestAardvarkTossClampsAtMultiplierCap(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 5)
	formPartners(t, s, "p2")

	// Two accepted doubles first: 1 -> 2 -> 4.
	require.NoError(t, s.OfferDouble(SideCaptain))
	require.NoError(t, s.RespondDouble(true))
	require.NoError(t, s.OfferDouble(SideField))
	require.NoError(t, s.RespondDouble(true))
	require.Equal(t, 4, s.Betting.Multiplier)

	// Triple risk would reach 12; the multiplier never leaves 1-8.
	require.NoError(t, s.AardvarkRequestJoin("p5", SideCaptain))
	require.NoError(t, s.AardvarkToss("p5"))
	assert.Equal(t, MaxMultiplier, s.Betting.Multiplier)
	assert.Contains(t, s.Teams.FieldSide, PlayerID("p5"))
}

func TestAardvarkResolutionOrderSixMan(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 6)
	formPartners(t, s, "p2")

	// The first Aardvark (p5) must resolve before the second (p6).
	err := s.AardvarkRequestJoin("p6", SideField)
	var rve *RuleViolationError
	require.ErrorAs(t, err, &rve)
	assert.Equal(t, CodeInvalidTarget, rve.Code)

	require.NoError(t, s.AardvarkRequestJoin("p5", SideField))
	require.NoError(t, s.AardvarkRequestJoin("p6", SideCaptain))
	assert.True(t, s.Teams.Resolved())
}

func TestTunkarriAardvarkSolo(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 5)
	formPartners(t, s, "p2")

	require.NoError(t, s.InvokeTunkarri("p5"))
	assert.Equal(t, SpecialTunkarri, s.Betting.Special.Kind)
	assert.Equal(t, TeamSolo, s.Teams.Kind)
	assert.Equal(t, []PlayerID{"p5"}, s.Teams.CaptainSide)
	assert.Len(t, s.Teams.FieldSide, 4)
	assert.Equal(t, 2, s.Betting.Multiplier)
}

func TestInvisibleAardvarkNote(t *testing.T) {
	t.Parallel()

	players := []PlayerSetup{
		{ID: "p1", Name: "One"}, {ID: "p2", Name: "Two"},
		{ID: "p3", Name: "Three"}, {ID: "p4", Name: "Four"},
	}
	s, err := NewGame(Config{
		Rules:   RulesConfig{BaseWager: 1, InvisibleAardvark: true},
		Course:  StandardCourse(),
		Players: players,
	})
	require.NoError(t, err)

	require.NoError(t, s.RequestPartner("p1", "p2"))
	require.NoError(t, s.RespondPartner(false))
	assert.Contains(t, s.HoleProgress.Notes, "invisible aardvark joins the field")
}
