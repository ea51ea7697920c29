package moderation

import (
	"strconv"

	"github.com/TendTo/MemeBot/src/shared/meme"
)

// Counter is one labelled vote button.
type Counter struct {
	Emoji  string
	Count  int64
	Action meme.Action
}

// Label is the button text, e.g. "🟢 3".
func (c Counter) Label() string {
	return c.Emoji + " " + strconv.FormatInt(c.Count, 10)
}

// Controls is the pair of vote buttons attached to a card.
type Controls struct {
	Positive Counter
	Negative Counter
}

func ReviewControls(approve, reject int64) Controls {
	return Controls{
		Positive: Counter{Emoji: "🟢", Count: approve, Action: meme.ActionApproveYes},
		Negative: Counter{Emoji: "🔴", Count: reject, Action: meme.ActionApproveNo},
	}
}

func PublicControls(up, down int64) Controls {
	return Controls{
		Positive: Counter{Emoji: "👍", Count: up, Action: meme.ActionVoteUp},
		Negative: Counter{Emoji: "👎", Count: down, Action: meme.ActionVoteDown},
	}
}

// controlsFor places the two counts on the control pair matching d's ledger.
func controlsFor(d meme.Decision, voted, other int64) Controls {
	positive, negative := voted, other
	if !d.Positive() {
		positive, negative = other, voted
	}
	if d.Admin() {
		return ReviewControls(positive, negative)
	}
	return PublicControls(positive, negative)
}
