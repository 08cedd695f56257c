package model

import "time"

type QuestionType string

const (
	QuestionTypeMCQ  QuestionType = "MCQ"
	QuestionTypeOpen QuestionType = "OPEN"
)

// QAPair is one question of a session. The parser fills Question and
// CorrectAnswer; the interview flow fills Answer; the scorer fills
// SimilarityScore. A nil score on an answered pair means scoring failed,
// never "not attempted".
type QAPair struct {
	Question        string       `json:"question" bson:"question"`
	CorrectAnswer   string       `json:"correctAnswer" bson:"correctAnswer"`
	Answer          string       `json:"answer,omitempty" bson:"answer,omitempty"`
	SimilarityScore *int         `json:"similarityScore" bson:"similarityScore"`
	QuestionType    QuestionType `json:"questionType" bson:"questionType"`
}

// Session is one finished interview attempt. Read-only after creation
// except for deletion.
type Session struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	InterviewID  string    `json:"interviewId" bson:"interviewId"`
	QNA          []QAPair  `json:"qna" bson:"qna"`
	Duration     int       `json:"duration" bson:"duration"`
	RecordingURL string    `json:"videoUrl" bson:"videoUrl"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
