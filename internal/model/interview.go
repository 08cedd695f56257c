package model

import "time"

type InterviewMode string

const (
	ModeWritten  InterviewMode = "Written"
	ModeOneToOne InterviewMode = "One-to-One"
)

// Interview is the configured interview template a candidate attempts.
// Sessions reference it; it never stores answers itself.
type Interview struct {
	ID             string        `json:"id" bson:"_id,omitempty"`
	Role           string        `json:"role" bson:"role"`
	Experience     int           `json:"experience" bson:"experience"`
	JobType        string        `json:"jobType" bson:"jobType"`
	Mode           InterviewMode `json:"mode" bson:"mode"`
	Skills         []string      `json:"skills,omitempty" bson:"skills,omitempty"`
	Resume         string        `json:"resume,omitempty" bson:"resume,omitempty"`
	IsProfileBased bool          `json:"isProfileBased" bson:"isProfileBased"`
	SessionIDs     []string      `json:"sessionIds" bson:"sessionIds"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
}
