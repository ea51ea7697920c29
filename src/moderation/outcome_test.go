package moderation

import (
	"testing"

	"github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/stretchr/testify/assert"
)

func TestClassifyVote(t *testing.T) {
	tests := []struct {
		name     string
		existing meme.Decision
		found    bool
		next     meme.Decision
		want     Outcome
	}{
		{"first vote", 0, false, meme.DecisionApprove, OutcomeInserted},
		{"same decision", meme.DecisionApprove, true, meme.DecisionApprove, OutcomeUnchanged},
		{"changed mind", meme.DecisionApprove, true, meme.DecisionReject, OutcomeUpdated},
		{"community repeat", meme.DecisionDown, true, meme.DecisionDown, OutcomeUnchanged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyVote(tt.existing, tt.found, tt.next))
		})
	}
}

func TestQuorumVerdictPrefersApproval(t *testing.T) {
	assert.Equal(t, VerdictNone, quorumVerdict(2, 1, 1))
	assert.Equal(t, VerdictApproved, quorumVerdict(2, 2, 0))
	assert.Equal(t, VerdictRejected, quorumVerdict(2, 1, 2))
	assert.Equal(t, VerdictApproved, quorumVerdict(2, 2, 2))
}

func TestControlsFor(t *testing.T) {
	c := controlsFor(meme.DecisionReject, 3, 1)
	assert.Equal(t, "🟢 1", c.Positive.Label())
	assert.Equal(t, "🔴 3", c.Negative.Label())
	assert.Equal(t, meme.ActionApproveNo, c.Negative.Action)

	c = controlsFor(meme.DecisionUp, 5, 0)
	assert.Equal(t, "👍 5", c.Positive.Label())
	assert.Equal(t, meme.ActionVoteDown, c.Negative.Action)
}

func TestVoteResultNoOp(t *testing.T) {
	assert.True(t, VoteResult{Outcome: OutcomeUnchanged}.NoOp())
	assert.False(t, VoteResult{Outcome: OutcomeUnchanged, Verdict: VerdictApproved}.NoOp())
	assert.False(t, VoteResult{Outcome: OutcomeUpdated}.NoOp())
}

func TestVoteResultControls(t *testing.T) {
	c := VoteResult{Decision: meme.DecisionDown, Tally: 2, Other: 7}.Controls()
	assert.Equal(t, "👍 7", c.Positive.Label())
	assert.Equal(t, "👎 2", c.Negative.Label())
}
