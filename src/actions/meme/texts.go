package meme

const (
	msgStart = "Hi! I collect posts for the community channel. Send /post in this chat to submit one; " +
		"the moderators will review it before it is published. Use /settings to choose whether your name is shown."

	msgUserHelp = "**Commands**\n" +
		"/post - submit a post (in a direct message with me)\n" +
		"/cancel - abort the current submission\n" +
		"/settings - choose between anonymous and credited posts\n" +
		"/rules - posting rules\n" +
		"/help - this message"

	msgModeratorHelp = "**Moderator commands** (review channel only)\n" +
		"Press 🟢 or 🔴 on a card to approve or reject it. Votes can be changed until the post is settled.\n" +
		"Ban author (message menu on a card) - ban the submitter and discard the post\n" +
		"/sban user_ids - lift bans, stops at the first user who is not banned\n" +
		"/reply card message - write to the author of a pending post"

	msgRules = "**Rules**\n" +
		"1. No personal attacks or harassment.\n" +
		"2. No spam or advertising.\n" +
		"3. No illegal or explicit content.\n" +
		"4. Posts are reviewed by the moderators; a rejected post can be revised and sent again."

	msgSettingsPrompt   = "How do you want your posts to appear in the channel?"
	msgAlreadyAnonymous = "Your posts are already anonymous."
	msgNowAnonymous     = "Your posts will be published anonymously."
	msgAlreadyCredited  = "Your posts are already credited."
	msgNowCredited      = "Your posts will be published with your name."

	msgPostInDM        = "Send /post in a direct message with me."
	msgReviewOnly      = "This command works only in the review channel."
	msgNotModerator    = "You don't have permission to do that."
	msgReviewConcluded = "This post has already been settled."
	msgNotPublished    = "This post is not in the channel any more."
	msgSomethingWrong  = "Something went wrong, try again later."
	msgSlowDown        = "Slow down a little and try again."
	msgBanned          = "The author has been banned and the post discarded."
	msgReplySent       = "Message delivered to the author."
	msgBadCard         = "That is not a card id."
)
