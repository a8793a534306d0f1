package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerateText sends one prompt to Gemini and returns the raw text.
func GeminiGenerateText(prompt string) (string, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %v", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini returned no usable result")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// TutorExplanation is the structured answer the tutor endpoint returns to
// the learner panel.
type TutorExplanation struct {
	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples"`
	FollowUp    string   `json:"follow_up"`
}

// TutorExplain asks Gemini to answer a learner question as a K-12 tutor,
// optionally grounded in the current sub-lesson. If the model does not
// return parseable JSON, the raw text is used as the explanation so the
// learner still gets an answer.
func TutorExplain(question, lessonContext string) (*TutorExplanation, error) {
	var prompt strings.Builder
	prompt.WriteString("You are a friendly K-12 tutor. Answer the student's question in simple, age-appropriate language.\n")
	if lessonContext != "" {
		prompt.WriteString("The student is currently studying this lesson:\n")
		prompt.WriteString(lessonContext)
		prompt.WriteString("\n")
	}
	prompt.WriteString("Question: ")
	prompt.WriteString(question)
	prompt.WriteString("\n\nRespond with JSON only, no markdown, in this shape:\n")
	prompt.WriteString(`{"explanation": "...", "examples": ["...", "..."], "follow_up": "one question to check understanding"}`)

	raw, err := GeminiGenerateText(prompt.String())
	if err != nil {
		return nil, err
	}

	cleaned := stripCodeFences(raw)
	var explanation TutorExplanation
	if err := json.Unmarshal([]byte(cleaned), &explanation); err != nil || explanation.Explanation == "" {
		return &TutorExplanation{Explanation: strings.TrimSpace(raw), Examples: []string{}}, nil
	}
	if explanation.Examples == nil {
		explanation.Examples = []string{}
	}
	return &explanation, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
