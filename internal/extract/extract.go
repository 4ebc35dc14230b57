// Package extract wraps the language-model service that turns free-form text
// ("Go to gym every day at 6:30 AM") into a structured event or habit draft.
// The service has a single failure mode: could not extract. Callers treat a
// nil result as "no draft" and surface nothing to the user.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/qenapp/qen/internal/constants"
	"github.com/qenapp/qen/internal/logger"
	"github.com/qenapp/qen/internal/models"
)

const (
	// DefaultModel is the default extraction model
	DefaultModel = "gpt-4o-mini"
	// DefaultTimeout is the default timeout for extraction calls
	DefaultTimeout = 30 * time.Second
)

// Extracted is the raw structured result from the language model. Frequency
// is "none" (or empty) when the text described a one-off event; any
// recognized frequency routes the result to habit creation regardless of
// which surface requested it.
type Extracted struct {
	Title           string           `json:"title"`
	Frequency       models.Frequency `json:"frequency,omitempty"`
	StartTime       string           `json:"start_time"`
	StartDate       string           `json:"start_date"`
	EndDate         string           `json:"end_date,omitempty"`
	DurationMinutes int              `json:"duration_minutes"`
	Location        string           `json:"location,omitempty"`
	Description     string           `json:"description,omitempty"`
}

// isHabit reports whether the extraction carries a recognized recurrence
// frequency. Presence of a frequency always wins over the requesting surface.
func (x *Extracted) isHabit() bool {
	switch x.Frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyWeekdays, models.FrequencyWeekends:
		return true
	default:
		return false
	}
}

type Extractor struct {
	client openai.Client
	model  string
}

func New(apiKey, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: DefaultTimeout}),
	)

	return &Extractor{
		client: client,
		model:  model,
	}
}

// ParseEvent extracts event fields from free text. The model may still
// report a frequency, in which case the caller routes to habit creation.
func (x *Extractor) ParseEvent(ctx context.Context, text string) (*Extracted, error) {
	return x.parse(ctx, text, eventPrompt(text))
}

// ParseHabit extracts habit fields from free text.
func (x *Extractor) ParseHabit(ctx context.Context, text string) (*Extracted, error) {
	return x.parse(ctx, text, habitPrompt(text))
}

func (x *Extractor) parse(ctx context.Context, text, prompt string) (*Extracted, error) {
	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(x.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You extract structured scheduling data from natural language. Respond with valid JSON only."),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	resp, err := x.client.Chat.Completions.New(ctx, req)
	if err != nil {
		logger.Warn("Extraction request failed", "error", err)
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("extraction failed: no choices in response")
	}

	result, err := parseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		logger.Warn("Extraction response unusable", "error", err, "text", text)
		return nil, err
	}
	return result, nil
}

// parseResponse decodes the model's JSON reply. Models occasionally wrap the
// object in prose, so a failed decode retries on the outermost brace pair.
func parseResponse(content string) (*Extracted, error) {
	raw := content
	var result Extracted
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		start := bytes.Index([]byte(raw), []byte("{"))
		end := bytes.LastIndex([]byte(raw), []byte("}"))
		if start == -1 || end == -1 || end <= start {
			return nil, fmt.Errorf("failed to parse extraction response: %w", err)
		}
		raw = raw[start : end+1]
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("failed to parse extraction response: %w", err)
		}
	}

	if result.Title == "" || result.StartDate == "" || result.StartTime == "" {
		return nil, fmt.Errorf("extraction response missing required fields")
	}
	return &result, nil
}

func eventPrompt(text string) string {
	today := time.Now().Format(constants.DateFormat)
	return fmt.Sprintf(`Extract a calendar entry from the text below. Today is %s.

Respond with a JSON object with these fields:
- "title": short name of the entry
- "start_date": date in YYYY-MM-DD format
- "start_time": time of day in HH:MM 24-hour format (default "09:00" if unstated)
- "end_date": YYYY-MM-DD, only for multi-day entries
- "duration_minutes": integer (default 60 if unstated)
- "location": place, or ""
- "description": one-line summary, or ""
- "frequency": "daily", "weekly", "weekdays" or "weekends" if the text describes a recurring commitment, otherwise "none"

Text: %q`, today, text)
}

func habitPrompt(text string) string {
	today := time.Now().Format(constants.DateFormat)
	return fmt.Sprintf(`Extract a recurring habit from the text below. Today is %s.

Respond with a JSON object with these fields:
- "title": short name of the habit
- "frequency": one of "daily", "weekly", "weekdays", "weekends" (default "daily")
- "start_date": first day in YYYY-MM-DD format (default today)
- "start_time": time of day in HH:MM 24-hour format (default "09:00" if unstated)
- "end_date": YYYY-MM-DD, only if the text gives an end
- "duration_minutes": integer (default 30 if unstated)

Text: %q`, today, text)
}

// Draft converts the extraction into a confirmable draft with the standard
// form defaults filled in. A recognized frequency always yields the habit
// variant; forceHabit covers the habit surface when the model reported none.
func (x *Extracted) Draft(now time.Time, forceHabit bool) models.Draft {
	if forceHabit || x.isHabit() {
		return models.Draft{Habit: x.habitDraft(now)}
	}
	return models.Draft{Event: x.eventDraft()}
}

func (x *Extracted) eventDraft() *models.Event {
	draft := models.NewEventDraft()
	draft.Title = x.Title
	draft.StartDate = x.StartDate
	draft.StartTime = x.StartTime
	draft.EndDate = x.EndDate
	draft.DurationMinutes = x.DurationMinutes
	draft.Location = x.Location
	draft.Description = x.Description
	return draft
}

func (x *Extracted) habitDraft(now time.Time) *models.Habit {
	draft := models.NewHabitDraft(now)
	draft.Title = x.Title
	if x.isHabit() {
		draft.Frequency = x.Frequency
	}
	draft.StartDate = x.StartDate
	draft.StartTime = x.StartTime
	draft.EndDate = x.EndDate
	draft.DurationMinutes = x.DurationMinutes
	return draft
}
