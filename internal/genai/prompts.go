package genai

import (
	"fmt"
	"strings"

	"mockview/internal/model"
)

// resumeExcerptLimit bounds how much resume text is embedded in a prompt so
// a long resume cannot crowd out the formatting instructions.
const resumeExcerptLimit = 5000

// BuildPrompt selects and renders the template for one generation request:
// follow-up requests get the single-pair template, written interviews the
// 20-pair batch template, one-to-one interviews the 10-pair template.
func BuildPrompt(req model.GenerationRequest) string {
	if req.IsFollowUp() {
		return followUpPrompt(req)
	}
	if req.InterviewMode == model.ModeWritten {
		return writtenPrompt(req)
	}
	return oneToOneInitialPrompt(req)
}

func writtenPrompt(req model.GenerationRequest) string {
	return fmt.Sprintf(`
Generate interview questions and their correct answers for a %s %s position with %d experience level.

IMPORTANT FORMATTING REQUIREMENTS:
- Generate exactly 20 question-answer pairs
- Use this EXACT format for each pair, with the keyword "QA_PAIR_SEPARATOR" as the delimiter after each question-answer pair:

QUESTION: [Your question here, including all MCQ options if applicable]
ANSWER: [Complete correct answer here, including only the correct option and explanation for MCQs]

QA_PAIR_SEPARATOR

CONTENT REQUIREMENTS:
- Include a mix of: Multiple Choice Questions (with correct option + explanation), Coding Problems (with complete working code), Theoretical Questions (with detailed explanations), Scenario-based Questions (with structured approaches)
- For MCQs:
  - Include the question stem followed by all four options (A), B), C), D)) directly in the QUESTION field, each option on a new line
  - In the ANSWER field, specify only the correct option (e.g., "Correct answer: C) description") followed by a detailed explanation (at least 2-3 sentences) explaining why the correct answer is correct and why others are incorrect
- For coding: Provide complete, working code with proper syntax, comments, and an explanation of how it works
- For theory: Give comprehensive explanations with examples
- For scenario-based: Provide structured approaches with clear steps
- Ensure answers are detailed, accurate, and demonstrate expert knowledge
- Avoid truncating method names or answers (e.g., ensure full method names like document.getElementsByClassName are used)
- Ensure MCQ options are included in the QUESTION field, not the ANSWER field

Begin generating now:`, req.JobType, req.JobRole, req.Experience)
}

func followUpPrompt(req model.GenerationRequest) string {
	return fmt.Sprintf(`
Based on this previous interview question and answer, generate 1 relevant follow-up question with its answer template:

Previous Question: %s
Previous Answer: %s

IMPORTANT FORMATTING REQUIREMENTS:
- Use this EXACT format, MUST start directly with QUESTION: and ending with QA_PAIR_SEPARATOR:
QUESTION: [Your question here]
ANSWER: [Professional answer template with key points to cover]
QA_PAIR_SEPARATOR

Do not include any introductory text or headers. Begin generating now:`, req.PreviousQuestion, req.PreviousAnswer)
}

func oneToOneInitialPrompt(req model.GenerationRequest) string {
	var content string
	if req.IsProfileBased && req.Resume != "" && len(req.Skills) > 0 {
		resume := req.Resume
		if len(resume) > resumeExcerptLimit {
			resume = resume[:resumeExcerptLimit]
		}
		content = fmt.Sprintf(`
- This is a profile-based interview. Prioritize questions based on the candidate's resume and skills:
  - 80%% of questions (8 out of 10) must directly relate to:
    - Resume content: %s...
    - Skills: %s
  - 20%% of questions (2 out of 10) should be based on the job role (%s), experience (%d years), and job type (%s)
  - Technical questions should focus on listed skills (e.g., specific frameworks or tools mentioned)
  - Behavioral and experience-based questions should tie to experiences or projects implied in the resume
`, resume, strings.Join(req.Skills, ", "), req.JobRole, req.Experience, req.JobType)
	} else {
		content = fmt.Sprintf(`
- Focus on behavioral, technical, and experience-based questions based on the job role (%s), experience (%d years), and job type (%s)
`, req.JobRole, req.Experience, req.JobType)
	}

	return fmt.Sprintf(`
Generate interview questions and answer templates for a %s %s position with %d experience level.

IMPORTANT FORMATTING REQUIREMENTS:
- Generate exactly 10 question-answer pairs for one-to-one interview
- Use this EXACT format for each pair:

QUESTION: [Your question here]
ANSWER: [Answer template with key points, structure, and guidance]

QA_PAIR_SEPARATOR

CONTENT REQUIREMENTS:
%s
- Include a mix of behavioral, technical, and experience-based questions
- Answer templates should guide candidates on what to include, with key points, structure, technical concepts, and examples
- Make templates comprehensive yet flexible, encouraging detailed responses
- Ensure questions are relevant to the candidate's expertise level and role

Begin generating now:`, req.JobType, req.JobRole, req.Experience, content)
}
