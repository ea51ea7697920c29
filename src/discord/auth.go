package discord

import "github.com/bwmarrin/discordgo"

// HasRole checks whether a user has a role in a guild. Empty roleID always returns true.
func HasRole(s *discordgo.Session, guildID, userID, roleID string) bool {
	if roleID == "" {
		return true
	}
	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		return false
	}
	return memberHasRole(member, roleID)
}

// InteractionHasRole checks the member attached to an interaction, falling back
// to a lookup when the payload carries no roles.
func InteractionHasRole(s *discordgo.Session, i *discordgo.InteractionCreate, roleID string) bool {
	if roleID == "" {
		return true
	}
	if i.Member == nil || i.Member.User == nil {
		return false
	}
	if memberHasRole(i.Member, roleID) {
		return true
	}
	if len(i.Member.Roles) > 0 || s == nil {
		return false
	}
	return HasRole(s, i.GuildID, i.Member.User.ID, roleID)
}

func memberHasRole(member *discordgo.Member, roleID string) bool {
	for _, role := range member.Roles {
		if role == roleID {
			return true
		}
	}
	return false
}

// InteractionUser returns the acting user for guild and direct-message interactions.
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
