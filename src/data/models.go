package data

import "time"

const (
	tableAdminVotes     = "admin_votes"
	tableCommunityVotes = "community_votes"
)

// PendingRow is a post waiting for a moderation verdict.
type PendingRow struct {
	ReviewCardID    int64  `gorm:"primaryKey;autoIncrement:false"`
	ReviewChatID    int64  `gorm:"primaryKey;autoIncrement:false"`
	SubmitterID     int64  `gorm:"index;not null"`
	OriginMessageID int64  `gorm:"not null"`
	Content         string `gorm:"type:text"`
	CreatedAt       time.Time
}

func (PendingRow) TableName() string { return "pending_submissions" }

// VoteRow backs both admin_votes and community_votes; callers pick the table.
// The primary key leads with the card so tallies scan a key prefix.
type VoteRow struct {
	CardID    int64 `gorm:"primaryKey;autoIncrement:false"`
	ChatID    int64 `gorm:"primaryKey;autoIncrement:false"`
	VoterID   int64 `gorm:"primaryKey;autoIncrement:false"`
	Decision  uint8 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublishedRow is a post that reached the public channel.
type PublishedRow struct {
	CardID    int64 `gorm:"primaryKey;autoIncrement:false"`
	ChatID    int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (PublishedRow) TableName() string { return "published_posts" }

type BannedUser struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (BannedUser) TableName() string { return "banned_users" }

type CreditedUser struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (CreditedUser) TableName() string { return "credited_users" }

// Setting represents a configuration setting stored in the database
type Setting struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:64;uniqueIndex;not null"`
	Value  string `gorm:"type:text;not null"`
	Active uint8  `gorm:"not null;default:1"`
}
