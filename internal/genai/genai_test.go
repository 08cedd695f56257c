package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"mockview/internal/config"
	"mockview/internal/model"
)

func TestBuildPromptWrittenMode(t *testing.T) {
	prompt := BuildPrompt(model.GenerationRequest{
		Mode:          model.GenerationInitial,
		InterviewMode: model.ModeWritten,
		JobRole:       "Backend Engineer",
		Experience:    3,
		JobType:       "Full-Time",
	})

	if !strings.Contains(prompt, "exactly 20 question-answer pairs") {
		t.Fatalf("written prompt missing batch size: %q", prompt)
	}
	if !strings.Contains(prompt, "QA_PAIR_SEPARATOR") {
		t.Fatalf("written prompt missing separator token")
	}
	if !strings.Contains(prompt, "Full-Time Backend Engineer position with 3 experience level") {
		t.Fatalf("written prompt missing role line: %q", prompt)
	}
}

func TestBuildPromptOneToOneInitial(t *testing.T) {
	prompt := BuildPrompt(model.GenerationRequest{
		Mode:          model.GenerationInitial,
		InterviewMode: model.ModeOneToOne,
		JobRole:       "Data Engineer",
		Experience:    5,
		JobType:       "Contract",
	})

	if !strings.Contains(prompt, "exactly 10 question-answer pairs for one-to-one interview") {
		t.Fatalf("one-to-one prompt missing batch size: %q", prompt)
	}
	if strings.Contains(prompt, "profile-based interview") {
		t.Fatalf("non-profile request rendered the profile block")
	}
	if !strings.Contains(prompt, "job role (Data Engineer), experience (5 years), and job type (Contract)") {
		t.Fatalf("one-to-one prompt missing role context: %q", prompt)
	}
}

func TestBuildPromptProfileBasedTruncatesResume(t *testing.T) {
	longResume := strings.Repeat("x", 6000)
	prompt := BuildPrompt(model.GenerationRequest{
		Mode:           model.GenerationInitial,
		InterviewMode:  model.ModeOneToOne,
		JobRole:        "SRE",
		Experience:     4,
		JobType:        "Full-Time",
		Skills:         []string{"Kubernetes", "Terraform"},
		Resume:         longResume,
		IsProfileBased: true,
	})

	if !strings.Contains(prompt, "profile-based interview") {
		t.Fatalf("profile request missing profile block")
	}
	if !strings.Contains(prompt, "Kubernetes, Terraform") {
		t.Fatalf("skills not joined into prompt")
	}
	if strings.Contains(prompt, longResume) {
		t.Fatalf("resume embedded without truncation")
	}
	if !strings.Contains(prompt, strings.Repeat("x", resumeExcerptLimit)+"...") {
		t.Fatalf("truncated resume excerpt missing")
	}
}

func TestBuildPromptFollowUp(t *testing.T) {
	prompt := BuildPrompt(model.GenerationRequest{
		Mode:             model.GenerationFollowUp,
		InterviewMode:    model.ModeOneToOne,
		PreviousQuestion: "How do you roll back a bad deploy?",
		PreviousAnswer:   "I revert the release and redeploy the previous image.",
	})

	if !strings.Contains(prompt, "generate 1 relevant follow-up question") {
		t.Fatalf("follow-up prompt missing instruction: %q", prompt)
	}
	if !strings.Contains(prompt, "Previous Question: How do you roll back a bad deploy?") {
		t.Fatalf("follow-up prompt missing previous question")
	}
	if !strings.Contains(prompt, "Previous Answer: I revert the release") {
		t.Fatalf("follow-up prompt missing previous answer")
	}
}

func TestClientGenerate(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := jsonDecode(r, &gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"QUESTION: What is 2+2?\nANSWER: 4\nQA_PAIR_SEPARATOR"}}]}`))
	}))
	defer server.Close()

	cfg := &config.AIConfig{
		GenerationURL:       server.URL,
		GenerationModel:     "gpt-4o-mini",
		GenerationKey:       "test-key",
		GenerationTimeoutMS: 5000,
	}
	client := NewClient(cfg, zap.NewNop())

	text, err := client.Generate(context.Background(), "a prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(text, "QUESTION: What is 2+2?") {
		t.Fatalf("unexpected content: %q", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if gotBody["model"] != "gpt-4o-mini" {
		t.Fatalf("request model = %v", gotBody["model"])
	}
}

func TestClientGenerateErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		payload string
	}{
		{"server error", http.StatusBadGateway, `{"error":"upstream"}`},
		{"empty choices", http.StatusOK, `{"choices":[]}`},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":""}}]}`},
		{"malformed body", http.StatusOK, `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.payload))
			}))
			defer server.Close()

			client := NewClient(&config.AIConfig{
				GenerationURL:       server.URL,
				GenerationModel:     "gpt-4o-mini",
				GenerationTimeoutMS: 5000,
			}, zap.NewNop())

			if _, err := client.Generate(context.Background(), "a prompt"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func jsonDecode(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
