package meme

// CardRef identifies a message posted by the bot: the message id and the
// channel (review thread or public channel) holding it.
type CardRef struct {
	CardID int64 `json:"card_id"`
	ChatID int64 `json:"chat_id"`
}

// IsZero reports whether the reference points nowhere.
func (c CardRef) IsZero() bool { return c.CardID == 0 && c.ChatID == 0 }

// Decision is a single voter's choice on a post.
type Decision uint8

const (
	DecisionApprove Decision = iota + 1
	DecisionReject
	DecisionUp
	DecisionDown
)

func (d Decision) String() string {
	switch d {
	case DecisionApprove:
		return "approve"
	case DecisionReject:
		return "reject"
	case DecisionUp:
		return "up"
	case DecisionDown:
		return "down"
	default:
		return "unknown"
	}
}

// Positive reports whether the decision counts on the left-hand control.
func (d Decision) Positive() bool { return d == DecisionApprove || d == DecisionUp }

// Opposite returns the other decision on the same ledger.
func (d Decision) Opposite() Decision {
	switch d {
	case DecisionApprove:
		return DecisionReject
	case DecisionReject:
		return DecisionApprove
	case DecisionUp:
		return DecisionDown
	case DecisionDown:
		return DecisionUp
	default:
		return d
	}
}

// Admin reports whether the decision belongs to the moderator ledger.
func (d Decision) Admin() bool { return d == DecisionApprove || d == DecisionReject }

// PendingSubmission is a post waiting for a moderation verdict.
type PendingSubmission struct {
	SubmitterID     int64
	OriginMessageID int64
	Review          CardRef
	Content         Content
}

// Vote is a decision recorded for one voter on one card. Admin and community
// votes share the shape; the ledger they live in differs.
type Vote struct {
	VoterID  int64
	Card     CardRef
	Decision Decision
}

// PublishedPost is a post that made it to the public channel.
type PublishedPost struct {
	Card CardRef
}

// Tally is the per-side vote count of a card.
type Tally struct {
	Positive int64
	Negative int64
}
