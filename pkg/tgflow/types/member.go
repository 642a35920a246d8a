package types

// ChatMember describes one member of a chat and their status.
type ChatMember struct {
	User        User   `json:"user"`
	Status      string `json:"status"`
	CustomTitle string `json:"custom_title,omitempty"`
	IsAnonymous bool   `json:"is_anonymous,omitempty"`
	UntilDate   int64  `json:"until_date,omitempty"`
}

// ChatInviteLink represents an invite link to a chat.
type ChatInviteLink struct {
	InviteLink  string `json:"invite_link"`
	Creator     User   `json:"creator"`
	IsPrimary   bool   `json:"is_primary"`
	IsRevoked   bool   `json:"is_revoked"`
	ExpireDate  int64  `json:"expire_date,omitempty"`
	MemberLimit int    `json:"member_limit,omitempty"`
}

// ChatMemberUpdated describes a change in the status of a chat member.
type ChatMemberUpdated struct {
	Chat          Chat            `json:"chat"`
	From          User            `json:"from"`
	Date          int64           `json:"date"`
	OldChatMember ChatMember      `json:"old_chat_member"`
	NewChatMember ChatMember      `json:"new_chat_member"`
	InviteLink    *ChatInviteLink `json:"invite_link,omitempty"`
}
