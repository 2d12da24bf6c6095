// server/internal/triage/gemini.go
package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"phc-ops-api-server/internal/models"
)

type GeminiRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiClient calls the Gemini generateContent endpoint for triage.
type GeminiClient struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewGeminiClient returns a client, or nil when no API key is configured so
// callers fall through to the rule-based classifier.
func NewGeminiClient(apiKey, model, baseURL string) *GeminiClient {
	if apiKey == "" {
		return nil
	}
	return &GeminiClient{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Classify sends the patient summary to Gemini and parses the structured
// JSON reply. Any transport failure or malformed output is returned as an
// error; the handler decides whether to fall back.
func (g *GeminiClient) Classify(ctx context.Context, patient models.Patient) (*Assessment, error) {
	reqBody := GeminiRequest{
		Contents: []Content{
			{Parts: []Part{{Text: buildPrompt(patient)}}},
		},
		GenerationConfig: &GenerationConfig{
			ResponseMIMEType: "application/json",
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.BaseURL, g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var geminiResp GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var assessment Assessment
	if err := json.Unmarshal([]byte(geminiResp.Candidates[0].Content.Parts[0].Text), &assessment); err != nil {
		return nil, fmt.Errorf("parse triage JSON: %w", err)
	}
	if !validUrgency(assessment.UrgencyLevel) {
		return nil, fmt.Errorf("gemini returned unknown urgency level %q", assessment.UrgencyLevel)
	}

	assessment.PatientID = patient.ID
	assessment.Source = "ai"
	return &assessment, nil
}

func buildPrompt(patient models.Patient) string {
	vitals := patient.Vitals
	if vitals == "" {
		vitals = "No vitals recorded."
	}
	history := strings.Join(patient.MedicalHistory, ", ")
	if history == "" {
		history = "None known."
	}

	return fmt.Sprintf(`You are a highly experienced Triage Nurse specializing in Primary Healthcare Center (PHC) settings in Nigeria.
Your task is to provide an initial triage assessment and recommended course of action.

PATIENT DATA:
- Patient ID: %d
- Age: %d
- Sex: %s
- Triage Category (Intent): %s
- Reported Symptoms: %s
- Vitals (JSON/String): %s
- Medical History: %s

INSTRUCTIONS:
1. URGENCY LEVEL: Assign one of the following levels: 'Critical' (Needs immediate referral/resuscitation), 'Severe' (Needs doctor/CHO within 15 mins), 'Moderate' (Needs assessment/tests within 30-60 mins), or 'Mild' (Routine care/can wait).
2. RECOMMENDED ACTIONS: Choose one or more from: ['Wait for GP', 'Refer to hospital', 'Order tests', 'Administer first aid', 'Proceed to immunization station', 'Discharge'].
3. REASONING: Provide a brief, clinical justification (1-2 sentences) for the decision.

Your entire output MUST be a valid JSON object with the keys "urgency_level", "recommended_actions" and "reasoning".`,
		patient.ID, patient.Age, patient.Sex, patient.VisitType,
		strings.Join(patient.Symptoms, ", "), vitals, history)
}
