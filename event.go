package marvel

import (
	"context"
	"fmt"
)

// MaxLimit is the largest page size the API accepts.
const MaxLimit = 100

// Event represents a big, universe altering storyline.
//
// Event is a comparable value: two events are equal when all fields are
// equal, so events can be collected in a map to form a set.
type Event struct {
	// ID is the unique ID of the event resource.
	ID int `json:"id"`
	// Title is the title of the event.
	Title string `json:"title"`
	// Start is the publication date of the first issue, absent if unknown.
	Start Date `json:"start"`
	// Description is a description of the event.
	Description string `json:"description"`
}

func (Event) requiredFields() []string {
	return []string{"id", "title", "description"}
}

// EventParams filters the events of a character.
type EventParams struct {
	// Limit caps the number of results. The API allows at most [MaxLimit].
	Limit int `url:"limit,omitempty"`
	// OrderBy sorts the results, e.g. "startDate" or "-name".
	OrderBy string `url:"orderBy,omitempty"`
}

// CharacterEvents fetches a single page of events the character appears in.
func (c *Client) CharacterEvents(ctx context.Context, characterID int, params EventParams) ([]Event, error) {
	u, err := c.buildURL(fmt.Sprintf("characters/%d/events", characterID), params)
	if err != nil {
		return nil, err
	}

	raw, err := c.getJSON(ctx, u)
	if err != nil {
		return nil, err
	}

	return decodeResults[Event](raw)
}

// EventsByCharacter returns the events of a character ordered by start date.
//
// Only one page of [MaxLimit] events is requested. The whole event catalogue
// is smaller than that, so the page holds every event of the character.
func (c *Client) EventsByCharacter(ctx context.Context, characterID int) ([]Event, error) {
	return c.CharacterEvents(ctx, characterID, EventParams{
		Limit:   MaxLimit,
		OrderBy: "startDate",
	})
}
