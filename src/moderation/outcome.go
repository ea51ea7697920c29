package moderation

import "github.com/TendTo/MemeBot/src/shared/meme"

// Outcome classifies what a vote did to the ledger.
type Outcome uint8

const (
	OutcomeInserted Outcome = iota + 1
	OutcomeUpdated
	// OutcomeUnchanged is a repeat of the voter's current decision.
	OutcomeUnchanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// ClassifyVote decides how next relates to the voter's existing decision.
func ClassifyVote(existing meme.Decision, found bool, next meme.Decision) Outcome {
	switch {
	case !found:
		return OutcomeInserted
	case existing == next:
		return OutcomeUnchanged
	default:
		return OutcomeUpdated
	}
}

// Verdict is the resolution a vote triggered, if any.
type Verdict uint8

const (
	VerdictNone Verdict = iota
	VerdictApproved
	VerdictRejected
)

func (v Verdict) String() string {
	switch v {
	case VerdictApproved:
		return "approved"
	case VerdictRejected:
		return "rejected"
	default:
		return "none"
	}
}

// VoteResult reports a processed vote.
type VoteResult struct {
	Decision meme.Decision
	Outcome  Outcome
	Verdict  Verdict
	// Tally is the voted side's count after the vote and Other the opposite
	// side's, read in the same transaction. Meaningless once a verdict has
	// been reached.
	Tally int64
	Other int64
	// Published is the public card of an approved post.
	Published meme.CardRef
}

// NoOp reports a repeated vote that changed nothing. Callers must not re-render.
func (r VoteResult) NoOp() bool {
	return r.Verdict == VerdictNone && r.Outcome == OutcomeUnchanged
}

// Controls renders the counts on the control pair of the voted ledger.
func (r VoteResult) Controls() Controls {
	return controlsFor(r.Decision, r.Tally, r.Other)
}

// quorumVerdict applies the quorum to the known counts. Approval is checked
// first; a post at quorum on both sides is approved.
func quorumVerdict(quorum, approve, reject int64) Verdict {
	switch {
	case approve >= quorum:
		return VerdictApproved
	case reject >= quorum:
		return VerdictRejected
	default:
		return VerdictNone
	}
}
