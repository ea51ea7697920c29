package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	CommandStart    = "start"
	CommandHelp     = "help"
	CommandRules    = "rules"
	CommandPost     = "post"
	CommandCancel   = "cancel"
	CommandSettings = "settings"
	CommandSban     = "sban"
	CommandReply    = "reply"
	// CommandBanAuthor is a message context menu entry, not a slash command.
	CommandBanAuthor = "Ban author"
)

var moderatorPermission int64 = discordgo.PermissionBanMembers

var commandDefinitions = map[string]*discordgo.ApplicationCommand{
	CommandStart: {
		Name:        CommandStart,
		Description: "Introduce the bot",
	},
	CommandHelp: {
		Name:        CommandHelp,
		Description: "List the available commands",
	},
	CommandRules: {
		Name:        CommandRules,
		Description: "Show the posting rules",
	},
	CommandPost: {
		Name:        CommandPost,
		Description: "Submit a post to the moderators (in a direct message)",
	},
	CommandCancel: {
		Name:        CommandCancel,
		Description: "Abort the current submission",
	},
	CommandSettings: {
		Name:        CommandSettings,
		Description: "Choose whether your posts are anonymous or credited",
	},
	CommandSban: {
		Name:                     CommandSban,
		Description:              "Lift the ban of one or more users",
		DefaultMemberPermissions: &moderatorPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "user_ids",
				Description: "Space separated user ids",
				Required:    true,
			},
		},
	},
	CommandReply: {
		Name:                     CommandReply,
		Description:              "Send a message to the author of a pending post",
		DefaultMemberPermissions: &moderatorPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "card",
				Description: "Message id of the review card",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message",
				Description: "Text forwarded to the author",
				Required:    true,
			},
		},
	},
	CommandBanAuthor: {
		Name:                     CommandBanAuthor,
		Type:                     discordgo.MessageApplicationCommand,
		DefaultMemberPermissions: &moderatorPermission,
	},
}

// UserCommands are usable anywhere, including direct messages, and are
// registered globally.
var UserCommands = []string{
	CommandStart,
	CommandHelp,
	CommandRules,
	CommandPost,
	CommandCancel,
	CommandSettings,
}

// ModeratorCommands are registered on the guild that hosts the review channel.
var ModeratorCommands = []string{
	CommandSban,
	CommandReply,
	CommandBanAuthor,
}

// RegisterSlashCommands registers the requested commands. An empty guildID
// registers them globally.
func RegisterSlashCommands(s *discordgo.Session, guildID string, log *zap.Logger, names ...string) error {
	if s.State == nil || s.State.User == nil {
		return fmt.Errorf("discord: session is not ready")
	}
	if log == nil {
		log = zap.NewNop()
	}

	var failures []string
	for _, name := range names {
		definition, ok := commandDefinitions[name]
		if !ok {
			log.Warn("unknown slash command", zap.String("command", name))
			continue
		}

		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, definition)
		if err != nil {
			if isDuplicateCommandError(err) {
				log.Debug("slash command already registered", zap.String("command", name))
				continue
			}
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			log.Warn("failed to register command", zap.String("command", name), zap.Error(err))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("discord: slash command registration errors: %s", strings.Join(failures, "; "))
	}

	return nil
}

func isDuplicateCommandError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			msg := strings.ToLower(restErr.Message.Message)
			if strings.Contains(msg, "already exists") {
				return true
			}
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "50035") && strings.Contains(msg, "already exists")
}
