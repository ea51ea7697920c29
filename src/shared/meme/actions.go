package meme

// Action is a button callback understood by the bot. The set is closed; the
// custom id table below is the only mapping to and from the wire.
type Action uint8

const (
	ActionNone Action = iota
	ActionConfirmYes
	ActionConfirmNo
	ActionApproveYes
	ActionApproveNo
	ActionVoteUp
	ActionVoteDown
	ActionSettingsAnonymous
	ActionSettingsCredit

	actionCount
)

var actionIDs = [actionCount]string{
	ActionNone:              "",
	ActionConfirmYes:        "meme_confirm_yes",
	ActionConfirmNo:         "meme_confirm_no",
	ActionApproveYes:        "meme_approve_yes",
	ActionApproveNo:         "meme_approve_no",
	ActionVoteUp:            "meme_vote_yes",
	ActionVoteDown:          "meme_vote_no",
	ActionSettingsAnonymous: "meme_settings_anonimo",
	ActionSettingsCredit:    "meme_settings_credit",
}

var actionsByID = func() map[string]Action {
	out := make(map[string]Action, actionCount)
	for a := ActionNone + 1; a < actionCount; a++ {
		out[actionIDs[a]] = a
	}
	return out
}()

// ActionCount is the number of valid actions plus ActionNone, for sizing
// dispatch tables indexed by Action.
const ActionCount = int(actionCount)

// CustomID is the wire identifier of the action.
func (a Action) CustomID() string {
	if a >= actionCount {
		return ""
	}
	return actionIDs[a]
}

func (a Action) String() string { return a.CustomID() }

// ParseAction maps a wire identifier back to an action.
func ParseAction(id string) (Action, bool) {
	a, ok := actionsByID[id]
	return a, ok
}

// VoteDecision maps a voting action to the decision it records.
func (a Action) VoteDecision() (Decision, bool) {
	switch a {
	case ActionApproveYes:
		return DecisionApprove, true
	case ActionApproveNo:
		return DecisionReject, true
	case ActionVoteUp:
		return DecisionUp, true
	case ActionVoteDown:
		return DecisionDown, true
	default:
		return 0, false
	}
}
