package game

import "fmt"

// RuleCode identifies why an otherwise well-formed action was rejected by the
// game rules. Codes are stable strings so callers can branch on them.
type RuleCode string

const (
	CodeNotCaptain               RuleCode = "NOT_CAPTAIN"
	CodeInvalidTarget            RuleCode = "INVALID_TARGET"
	CodeWindowClosed             RuleCode = "WINDOW_CLOSED"
	CodePartnershipAlreadyFormed RuleCode = "PARTNERSHIP_ALREADY_FORMED"
	CodeDoubleAfterLine          RuleCode = "DOUBLE_AFTER_LINE"
	CodeFloatAlreadyUsed         RuleCode = "FLOAT_ALREADY_USED"
	CodeMultiplierCapExceeded    RuleCode = "MULTIPLIER_CAP_EXCEEDED"
	CodeNotUnanimous             RuleCode = "NOT_UNANIMOUS"
	CodePositionRepeated         RuleCode = "POSITION_REPEATED"
	CodeWrongPhase               RuleCode = "WRONG_PHASE"
	CodeHoleSettled              RuleCode = "HOLE_SETTLED"
	CodeSpecialBetActive         RuleCode = "SPECIAL_BET_ACTIVE"
	CodeNoPendingOffer           RuleCode = "NO_PENDING_OFFER"
)

// ValidationError reports malformed input: values outside their legal domain
// or structurally wrong setups. The action is not applied and the state is
// unchanged.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Msg
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Msg)
}

func validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// RuleViolationError reports a legal input that the game rules forbid in the
// current state, such as a double offered after the line of scrimmage. The
// action is not applied and the state is unchanged.
type RuleViolationError struct {
	Code RuleCode
	Msg  string
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("rule violation (%s): %s", e.Code, e.Msg)
}

func ruleViolationf(code RuleCode, format string, args ...any) error {
	return &RuleViolationError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// StateConsistencyError reports a broken internal invariant, most importantly
// the zero-sum settlement check. It always indicates a defect in the engine
// or its inputs and is never auto-corrected.
type StateConsistencyError struct {
	Msg string
}

func (e *StateConsistencyError) Error() string {
	return "state consistency: " + e.Msg
}

func consistencyf(format string, args ...any) error {
	return &StateConsistencyError{Msg: fmt.Sprintf(format, args...)}
}
