package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyActionDrivesAHole(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 4)
	actions := []Action{
		{Kind: ActionRequestPartner, Actor: "p1", Target: "p2"},
		{Kind: ActionRespondPartner, Actor: "p2", Accept: true},
		{Kind: ActionOfferDouble, Side: SideField},
		{Kind: ActionRespondDouble, Accept: true},
		{Kind: ActionRecordShot, Actor: "p1", Distance: 240},
		{Kind: ActionRecordScore, Actor: "p1", Gross: 4},
		{Kind: ActionRecordScore, Actor: "p2", Gross: 4},
		{Kind: ActionRecordScore, Actor: "p3", Gross: 5},
		{Kind: ActionRecordScore, Actor: "p4", Gross: 5},
	}
	for _, a := range actions {
		result, err := s.ApplyAction(a)
		require.NoError(t, err, "action %s", a.Kind)
		assert.Equal(t, a.Kind, result.Kind)
		assert.Nil(t, result.HoleResult)
	}

	result, err := s.ApplyAction(Action{Kind: ActionAdvanceHole})
	require.NoError(t, err)
	require.NotNil(t, result.HoleResult)
	assert.Equal(t, 1, result.HoleResult.Hole)
	assert.Equal(t, SideCaptain, result.HoleResult.Winner)
	assert.Equal(t, 2, result.HoleResult.Multiplier)
	assert.Equal(t, 2, s.CurrentHole)
}

func TestApplyActionUnknownKind(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 4)
	_, err := s.ApplyAction(Action{Kind: "TAKE_MULLIGAN"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestApplyActionLeavesStateUntouchedOnError(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 4)
	before, err := s.Snapshot()
	require.NoError(t, err)

	_, err = s.ApplyAction(Action{Kind: ActionRequestPartner, Actor: "p3", Target: "p2"})
	var rve *RuleViolationError
	require.ErrorAs(t, err, &rve)

	after, err := s.Snapshot()
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestApplyActionErrorTaxonomy(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 4)
	tests := []struct {
		name   string
		action Action
		code   RuleCode
	}{
		{"non-captain invite", Action{Kind: ActionRequestPartner, Actor: "p2", Target: "p3"}, CodeNotCaptain},
		{"big dick off eighteen", Action{Kind: ActionInvokeBigDick, Actor: "p1"}, CodeWrongPhase},
		{"goat position in regular play", Action{Kind: ActionGoatPosition, Actor: "p1", Position: 1}, CodeWrongPhase},
		{"answer without offer", Action{Kind: ActionRespondDouble, Accept: true}, CodeNoPendingOffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ApplyAction(tt.action)
			var rve *RuleViolationError
			require.ErrorAs(t, err, &rve)
			assert.Equal(t, tt.code, rve.Code)
		})
	}
}

func TestApplyActionAardvarkFlow(t *testing.T) {
	t.Parallel()

	s := newTestGame(t, 5)
	formPartners(t, s, "p2")

	_, err := s.ApplyAction(Action{Kind: ActionAardvarkJoin, Actor: "p5", Side: SideCaptain})
	require.NoError(t, err)
	_, err = s.ApplyAction(Action{Kind: ActionAardvarkToss, Actor: "p5"})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Betting.Multiplier)
	assert.Contains(t, s.Teams.FieldSide, PlayerID("p5"))
}
