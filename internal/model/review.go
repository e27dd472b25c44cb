package model

import "time"

// ModerationStatus is the tri-state review moderation flag.
type ModerationStatus int

const (
	ModerationRejected ModerationStatus = -1
	ModerationPending  ModerationStatus = 0
	ModerationApproved ModerationStatus = 1
)

// Review represents a user review of a fika place
type Review struct {
	ID           string           `db:"id" json:"id"`
	PlaceID      string           `db:"place_id" json:"place_id"`
	UserName     *string          `db:"user_name" json:"user_name,omitempty"`
	Rating       int              `db:"rating" json:"rating"`
	Comment      *string          `db:"comment" json:"comment,omitempty"`
	FikaItems    StringList       `db:"fika_items" json:"fika_items"`
	VisitDate    *string          `db:"visit_date" json:"visit_date,omitempty"`
	VisitTime    *string          `db:"visit_time" json:"visit_time,omitempty"`
	Moderated    ModerationStatus `db:"moderated" json:"moderated"`
	ModeratedAt  *time.Time       `db:"moderated_at" json:"moderated_at,omitempty"`
	HelpfulCount int              `db:"helpful_count" json:"helpful_count"`
	Language     string           `db:"language" json:"language"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

// IsApproved reports whether the review counts toward its place's rating.
func (r *Review) IsApproved() bool {
	return r.Moderated == ModerationApproved
}

// IsPending reports whether the review is awaiting moderation.
func (r *Review) IsPending() bool {
	return r.Moderated == ModerationPending
}
