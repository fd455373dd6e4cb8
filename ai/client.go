// Package ai talks to the Gemini generateContent API. Every call requests
// structured JSON output via a response schema so replies never need
// free-text parsing.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	modelName      = "gemini-2.5-flash"
	defaultTimeout = 60 * time.Second
)

// Part is one text fragment of a conversation turn.
type Part struct {
	Text string `json:"text"`
}

// Turn is one entry of a chat history in the Gemini wire format. The
// frontend sends history in this exact shape.
type Turn struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type generateRequest struct {
	Contents          []Turn            `json:"contents"`
	SystemInstruction *Turn             `json:"system_instruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"response_mime_type,omitempty"`
	ResponseSchema   *schema `json:"response_schema,omitempty"`
}

type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content Turn `json:"content"`
	} `json:"candidates"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var parts []string
	for _, p := range r.Candidates[0].Content.Parts {
		parts = append(parts, p.Text)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// generate runs one generateContent call and unmarshals the structured JSON
// reply into out.
func (c *Client) generate(ctx context.Context, req *generateRequest, out interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, modelName, url.QueryEscape(c.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gemini request failed: %s", resp.Status)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return err
	}

	text := genResp.text()
	if text == "" {
		return fmt.Errorf("gemini returned no candidates")
	}
	return json.Unmarshal([]byte(text), out)
}

// systemInstructionForScenario builds the practice-partner persona prompt.
func systemInstructionForScenario(scenario, assistantName string) string {
	switch scenario {
	case "restaurant":
		return fmt.Sprintf("You are %s, a friendly and patient waiter at a restaurant. Your goal is to help the user practice ordering food and drinks in English. Guide them through the menu, take their order, and handle any questions they might have about the dishes. Be polite and professional.", assistantName)
	case "interview":
		return fmt.Sprintf("You are %s, a professional hiring manager conducting a job interview. Your goal is to help the user practice their interview skills in English. Ask them common interview questions (e.g., \"Tell me about yourself,\" \"What are your strengths?\"). Keep your tone professional and encouraging.", assistantName)
	default:
		return fmt.Sprintf("You are an English speaking practice partner named %s. Your goal is to help the user practice speaking English. Keep your English responses natural and engaging.", assistantName)
	}
}

// ChatReply produces the assistant's next conversational turn together with
// its Vietnamese translation.
func (c *Client) ChatReply(ctx context.Context, history []Turn, assistantName, scenario string) (string, string, error) {
	req := &generateRequest{
		Contents:          history,
		SystemInstruction: &Turn{Parts: []Part{{Text: systemInstructionForScenario(scenario, assistantName)}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"englishResponse": {
						Type:        "STRING",
						Description: "A friendly, conversational English reply based on the persona.",
					},
					"vietnameseTranslation": {
						Type:        "STRING",
						Description: "The Vietnamese translation of the English response.",
					},
				},
				Required: []string{"englishResponse", "vietnameseTranslation"},
			},
		},
	}

	var parsed struct {
		EnglishResponse       string `json:"englishResponse"`
		VietnameseTranslation string `json:"vietnameseTranslation"`
	}
	if err := c.generate(ctx, req, &parsed); err != nil {
		return "", "", err
	}
	return parsed.EnglishResponse, parsed.VietnameseTranslation, nil
}

// SentenceSuggestions returns three more natural phrasings of the user's
// sentence.
func (c *Client) SentenceSuggestions(ctx context.Context, textToImprove string) ([]string, error) {
	prompt := fmt.Sprintf("The user said: %q. Provide 3 alternative, more natural, or more sophisticated ways to say the same thing.", textToImprove)

	req := &generateRequest{
		Contents:          []Turn{{Role: "user", Parts: []Part{{Text: prompt}}}},
		SystemInstruction: &Turn{Parts: []Part{{Text: "You are an expert English language coach. Your goal is to help users improve their phrasing."}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"suggestions": {
						Type:        "ARRAY",
						Description: "A list of 3 alternative sentences.",
						Items:       &schema{Type: "STRING"},
					},
				},
				Required: []string{"suggestions"},
			},
		},
	}

	var parsed struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.generate(ctx, req, &parsed); err != nil {
		return nil, err
	}
	return parsed.Suggestions, nil
}

// TopicSuggestion proposes one thing the user could say next, based on the
// last few turns of the conversation.
func (c *Client) TopicSuggestion(ctx context.Context, scenario string, history []Turn) (string, string, error) {
	recent := history
	if len(recent) > 4 {
		recent = recent[len(recent)-4:]
	}
	var lines []string
	for _, turn := range recent {
		if len(turn.Parts) > 0 {
			lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Parts[0].Text))
		}
	}

	prompt := fmt.Sprintf(`The user is practicing their English in a conversation with an AI. The scenario is '%s'. The user has asked for a hint on what to say next. Based on the last few messages of the conversation, provide one single, engaging question or topic suggestion to keep the conversation going. The suggestion should be something the user can naturally say to the AI.

Recent conversation:
%s

Your suggestion should be just the sentence the user could say.`, scenario, strings.Join(lines, "\n"))

	req := &generateRequest{
		Contents:          []Turn{{Role: "user", Parts: []Part{{Text: prompt}}}},
		SystemInstruction: &Turn{Parts: []Part{{Text: "You are an AI assistant helping a user who is stuck in an English conversation practice. You provide a single, natural-sounding suggestion for what they could say next. You will provide both the English suggestion and its Vietnamese translation."}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"englishResponse": {
						Type:        "STRING",
						Description: "A single, natural-sounding English question or topic suggestion that the user can say.",
					},
					"vietnameseTranslation": {
						Type:        "STRING",
						Description: "The Vietnamese translation of the English suggestion.",
					},
				},
				Required: []string{"englishResponse", "vietnameseTranslation"},
			},
		},
	}

	var parsed struct {
		EnglishResponse       string `json:"englishResponse"`
		VietnameseTranslation string `json:"vietnameseTranslation"`
	}
	if err := c.generate(ctx, req, &parsed); err != nil {
		return "", "", err
	}
	return parsed.EnglishResponse, parsed.VietnameseTranslation, nil
}

// RandomSentence generates a practice sentence with its IPA transcription.
func (c *Client) RandomSentence(ctx context.Context) (string, string, error) {
	req := &generateRequest{
		Contents:          []Turn{{Role: "user", Parts: []Part{{Text: "Generate a single, interesting, and grammatically correct English sentence that is suitable for a language learner to practice reading. The sentence should be between 10 and 15 words long."}}}},
		SystemInstruction: &Turn{Parts: []Part{{Text: "You are an English teacher creating practice materials. You will provide a sentence and its International Phonetic Alphabet (IPA) transcription."}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"sentence": {
						Type:        "STRING",
						Description: "The generated English sentence.",
					},
					"ipa": {
						Type:        "STRING",
						Description: "The IPA transcription of the sentence using slashes, e.g., /həˈloʊ/.",
					},
				},
				Required: []string{"sentence", "ipa"},
			},
		},
	}

	var parsed struct {
		Sentence string `json:"sentence"`
		IPA      string `json:"ipa"`
	}
	if err := c.generate(ctx, req, &parsed); err != nil {
		return "", "", err
	}
	return parsed.Sentence, parsed.IPA, nil
}
