package model

type GenerationMode string

const (
	GenerationInitial  GenerationMode = "initial"
	GenerationFollowUp GenerationMode = "followup"
)

// GenerationRequest drives which prompt template and parsing rule-set apply.
// PreviousQuestion/PreviousAnswer are set only for follow-up generation.
type GenerationRequest struct {
	Mode             GenerationMode `json:"mode"`
	InterviewMode    InterviewMode  `json:"interviewMode"`
	JobRole          string         `json:"jobRole"`
	Experience       int            `json:"experience"`
	JobType          string         `json:"jobType"`
	Skills           []string       `json:"skills,omitempty"`
	Resume           string         `json:"resume,omitempty"`
	IsProfileBased   bool           `json:"isProfileBased,omitempty"`
	PreviousQuestion string         `json:"previousQuestion,omitempty"`
	PreviousAnswer   string         `json:"previousAnswer,omitempty"`
}

// IsFollowUp reports whether the request continues a one-to-one exchange.
func (r *GenerationRequest) IsFollowUp() bool {
	return r.Mode == GenerationFollowUp && r.PreviousQuestion != ""
}

// GeneratedPair is a question plus its reference answer as extracted from
// one generation response.
type GeneratedPair struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
}

// GenerationResult is the parsed batch returned to the interview flow.
type GenerationResult struct {
	QuestionsWithAnswers []GeneratedPair `json:"questionsWithAnswers"`
}
