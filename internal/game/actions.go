package game

// ApplyAction is the single entry point the service layer drives the engine
// through. Every action is validated against the current state; on error the
// state is unchanged and the error explains the rejection.

// ActionKind enumerates the externally drivable actions.
type ActionKind string

const (
	ActionRequestPartner ActionKind = "REQUEST_PARTNER"
	ActionRespondPartner ActionKind = "RESPOND_PARTNER"
	ActionDeclareSolo    ActionKind = "DECLARE_SOLO"
	ActionOfferDouble    ActionKind = "OFFER_DOUBLE"
	ActionRespondDouble  ActionKind = "RESPOND_DOUBLE"
	ActionInvokeFloat    ActionKind = "INVOKE_FLOAT"
	ActionToggleOption   ActionKind = "TOGGLE_OPTION"
	ActionInvokeTunkarri ActionKind = "INVOKE_TUNKARRI"
	ActionInvokeBigDick  ActionKind = "INVOKE_BIG_DICK"
	ActionBigDickVote    ActionKind = "BIG_DICK_VOTE"
	ActionAckerleyGambit ActionKind = "ACKERLEY_GAMBIT"
	ActionAardvarkJoin   ActionKind = "AARDVARK_JOIN"
	ActionAardvarkToss   ActionKind = "AARDVARK_TOSS"
	ActionGoatPosition   ActionKind = "GOAT_POSITION"
	ActionRecordShot     ActionKind = "RECORD_SHOT"
	ActionRecordScore    ActionKind = "RECORD_SCORE"
	ActionAdvanceHole    ActionKind = "ADVANCE_HOLE"
)

// Action is one externally supplied engine input. Fields beyond Kind and
// Actor are interpreted per kind; unused fields are ignored.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Actor PlayerID   `json:"actor,omitempty"`

	Target   PlayerID `json:"target,omitempty"`   // REQUEST_PARTNER
	Accept   bool     `json:"accept,omitempty"`   // RESPOND_PARTNER, RESPOND_DOUBLE, BIG_DICK_VOTE
	Side     SideID   `json:"side,omitempty"`     // OFFER_DOUBLE, AARDVARK_JOIN
	OptOut   bool     `json:"opt_out,omitempty"`  // ACKERLEY_GAMBIT
	Position int      `json:"position,omitempty"` // GOAT_POSITION
	Distance float64  `json:"distance,omitempty"` // RECORD_SHOT
	Gross    float64  `json:"gross,omitempty"`    // RECORD_SCORE
}

// Result reports what an accepted action produced. HoleResult is non-nil
// only for ADVANCE_HOLE.
type Result struct {
	Kind       ActionKind  `json:"kind"`
	HoleResult *HoleResult `json:"hole_result,omitempty"`
}

// ApplyAction dispatches an action against the state. Mutations are atomic:
// either the action fully applies or the state is untouched.
func (s *State) ApplyAction(action Action) (*Result, error) {
	var (
		result = &Result{Kind: action.Kind}
		err    error
	)
	switch action.Kind {
	case ActionRequestPartner:
		err = s.RequestPartner(action.Actor, action.Target)
	case ActionRespondPartner:
		err = s.RespondPartner(action.Accept)
	case ActionDeclareSolo:
		err = s.DeclareSolo(action.Actor)
	case ActionOfferDouble:
		err = s.OfferDouble(action.Side)
	case ActionRespondDouble:
		err = s.RespondDouble(action.Accept)
	case ActionInvokeFloat:
		err = s.InvokeFloat(action.Actor)
	case ActionToggleOption:
		err = s.ToggleOption(action.Actor)
	case ActionInvokeTunkarri:
		err = s.InvokeTunkarri(action.Actor)
	case ActionInvokeBigDick:
		err = s.InvokeBigDick(action.Actor)
	case ActionBigDickVote:
		err = s.BigDickVote(action.Actor, action.Accept)
	case ActionAckerleyGambit:
		err = s.AckerleyGambit(action.Actor, action.OptOut)
	case ActionAardvarkJoin:
		err = s.AardvarkRequestJoin(action.Actor, action.Side)
	case ActionAardvarkToss:
		err = s.AardvarkToss(action.Actor)
	case ActionGoatPosition:
		err = s.SelectGoatPosition(action.Actor, action.Position)
	case ActionRecordShot:
		err = s.RecordShot(action.Actor, action.Distance)
	case ActionRecordScore:
		err = s.RecordScore(action.Actor, action.Gross)
	case ActionAdvanceHole:
		result.HoleResult, err = s.SettleHole()
	default:
		err = validationf("kind", "unknown action kind %q", action.Kind)
	}
	if err != nil {
		return nil, err
	}
	s.publish(ActionAppliedEvent{Hole: s.CurrentHole, Kind: action.Kind, Actor: action.Actor})
	return result, nil
}
