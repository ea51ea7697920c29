package moderation

const (
	MsgApproved      = "Your post has been approved and published. Thanks!"
	MsgRejected      = "Your post was rejected by the moderators. Check /rules before submitting again."
	adminReplyHeader = "ADMIN COMMUNICATION ON YOUR LAST POST:\n"
	creditFormat     = "CREDIT: %s"
)
