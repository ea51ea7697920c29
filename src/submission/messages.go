package submission

import "fmt"

const (
	MsgAskContent      = "Reply to this message with the post you want to publish. Text, photos, voice notes, audio, videos, GIFs and stickers are accepted."
	MsgAskConfirm      = "Do you want to send this post to the moderators?"
	MsgCancelled       = "Post cancelled."
	MsgUnsupported     = "This kind of content can't be published. Use /post to try again."
	MsgSubmitFailed    = "A problem occurred while sending your post. Make sure its type is allowed and try again."
	MsgBanned          = "You are banned from submitting posts."
	MsgAlreadyPending  = "You already have a post under review. Wait for the verdict before sending another one."
	MsgNothingToCancel = "There is nothing to cancel."
	MsgWrongState      = "That action is not available right now. Use /post to start a new submission."
)

func underReview(publicChannel string) string {
	if publicChannel == "" {
		return "Your post is under review. You will be notified when the moderators decide."
	}
	return fmt.Sprintf("Your post is under review. If approved, you will find it on %s.", publicChannel)
}
