package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"tripcraft/models"
)

var ErrMalformedItinerary = errors.New("generator did not return a valid itinerary")

// Planner generates day-by-day itineraries with a chat-completion model.
type Planner struct {
	client *openai.Client
	model  string
}

func New() (*Planner, error) {
	token := os.Getenv("OPENAI_API_KEY")
	if token == "" {
		return nil, errors.New("missing the OpenAI API key, set it in the OPENAI_API_KEY environment variable")
	}

	config := openai.DefaultConfig(token)
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		config.BaseURL = base
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}

	return &Planner{client: openai.NewClientWithConfig(config), model: model}, nil
}

// buildPrompt renders the strict-JSON planning prompt. Specific attractions
// win over general interests when the user picked places.
func buildPrompt(req models.ItineraryRequest) string {
	duration := req.TripLength
	if duration < 1 {
		duration = 1
	}

	vibe := req.TripType
	if vibe == "" {
		vibe = "general"
	}

	attractions := make([]string, 0, len(req.Places))
	for _, p := range req.Places {
		if p.Name != "" {
			attractions = append(attractions, p.Name)
		}
	}
	if len(attractions) == 0 {
		attractions = req.Interests
	}

	joined := "None"
	if len(attractions) > 0 {
		joined = strings.Join(attractions, ", ")
	}

	return fmt.Sprintf(`You are a travel planner that creates detailed, daily itineraries. Return ONLY valid JSON - no markdown, no code blocks, no explanations.

USER INFO:
Destination: %s
Trip Duration: %d days
Budget: %s
Travel Party: %s
Vibe/General Interests: %s
Specific Attractions: %s

REQUIREMENTS:
1. Generate exactly %d days.
2. Each day must have 3-5 activities with:
   - time (e.g., "9:00 AM - 11:00 AM")
   - name
   - description
   - tips (local tip)
   - optional photo_url
   - optional cost
3. Include specific attractions if provided; otherwise use general interests.
4. Return ONLY the JSON object - no markdown code blocks, no explanations, no extra text.

Expected JSON structure:
{"days": [{"day": 1, "activities": [{"time": "9:00 AM - 11:00 AM", "name": "Attraction Name", "description": "Short description", "tips": "Local tip", "photo_url": "https://example.com/photo.jpg", "cost": "$20"}]}]}

Return only the JSON object above, nothing else.`,
		req.Destination, duration, req.Budget, req.Party, vibe, joined, duration)
}

// GenerateItinerary asks the model for a plan and parses its reply. A reply
// without a well-formed day list is an error; nothing partial comes back.
func (p *Planner) GenerateItinerary(ctx context.Context, req models.ItineraryRequest) (*models.Itinerary, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrMalformedItinerary
	}

	return ParseItinerary(resp.Choices[0].Message.Content)
}

// ParseItinerary extracts the itinerary JSON from a model reply. Models keep
// wrapping output in markdown fences and prose despite the prompt, so strip
// fences and cut down to the outermost braces before unmarshalling.
func ParseItinerary(text string) (*models.Itinerary, error) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	text = strings.TrimSpace(text)

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last <= first {
		return nil, ErrMalformedItinerary
	}
	text = text[first : last+1]

	var itin models.Itinerary
	if err := json.Unmarshal([]byte(text), &itin); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedItinerary, err)
	}
	if len(itin.Days) == 0 {
		return nil, ErrMalformedItinerary
	}
	return &itin, nil
}
