package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	googlegenai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

// Client wraps the Gemini API for icebreaker suggestions.
type Client struct {
	client *googlegenai.Client
	model  *googlegenai.GenerativeModel
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := googlegenai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.8)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// SuggestIcebreakers generates opening lines for a matched pair based on
// their gaming profiles. Falls back to canned suggestions when the API is
// unavailable or returns unusable output.
func (c *Client) SuggestIcebreakers(ctx context.Context, mine, theirs *domain.Profile) ([]string, error) {
	prompt := fmt.Sprintf(`
		Generate 3 short icebreaker messages for a gamer dating app match.
		Sender plays: platforms %v, genres %v, favorite games %v, playstyle %s.
		Recipient plays: platforms %v, genres %v, favorite games %v, playstyle %s.

		Task: write 3 distinct friendly opening lines the sender could use.
		Reference shared games or genres when they exist.
		Keep each under 120 characters. No emojis.
		Output: JSON array of strings. Example: ["Hey...", "So..."]
	`,
		mine.Platforms, mine.FavoriteGenres, mine.TopGames, mine.Playstyle,
		theirs.Platforms, theirs.FavoriteGenres, theirs.TopGames, theirs.Playstyle,
	)

	resp, err := c.model.GenerateContent(ctx, googlegenai.Text(prompt))
	if err != nil {
		return FallbackIcebreakers(mine, theirs), nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return FallbackIcebreakers(mine, theirs), nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(googlegenai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	text := strings.TrimSpace(sb.String())
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var icebreakers []string
	if err := json.Unmarshal([]byte(text), &icebreakers); err != nil {
		// Model sometimes ignores the JSON instruction; salvage plain lines.
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
				icebreakers = append(icebreakers, line)
			}
		}
	}
	if len(icebreakers) == 0 {
		return FallbackIcebreakers(mine, theirs), nil
	}
	if len(icebreakers) > 3 {
		icebreakers = icebreakers[:3]
	}
	return icebreakers, nil
}

// FallbackIcebreakers builds static openers from whatever the two profiles
// share. Used when no API client is configured or a call fails.
func FallbackIcebreakers(mine, theirs *domain.Profile) []string {
	if game := firstShared(mine.TopGames, theirs.TopGames); game != "" {
		return []string{
			fmt.Sprintf("A fellow %s player! What rank are you grinding for?", game),
			fmt.Sprintf("We both have %s in our top games, want to queue up sometime?", game),
			fmt.Sprintf("Okay, important question: hottest take you have about %s?", game),
		}
	}
	if genre := firstShared(mine.FavoriteGenres, theirs.FavoriteGenres); genre != "" {
		return []string{
			fmt.Sprintf("Saw you're into %s too, what's your current obsession?", genre),
			fmt.Sprintf("Best %s game you've played this year, go.", genre),
			fmt.Sprintf("We matched on %s taste, that has to count for something. What are you playing?", genre),
		}
	}
	return []string{
		"So what's the game you always come back to?",
		"Controller or keyboard? Choose carefully.",
		"What are you playing lately? Always looking for recommendations.",
	}
}

func firstShared(a, b []string) string {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return x
			}
		}
	}
	return ""
}
