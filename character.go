package marvel

import (
	"context"
)

// Character represents a character of the Marvel universe.
type Character struct {
	// ID is the unique ID of the character resource.
	ID int `json:"id"`
	// Name is the name of the character.
	Name string `json:"name"`
	// Description is a short bio or description of the character. May be empty.
	Description string `json:"description"`
}

func (Character) requiredFields() []string {
	return []string{"id", "name", "description"}
}

// CharacterParams filters the characters endpoint.
type CharacterParams struct {
	// Name matches the full character name exactly.
	Name string `url:"name,omitempty"`
	// NameStartsWith matches characters whose name begins with the value.
	NameStartsWith string `url:"nameStartsWith,omitempty"`
	// Limit caps the number of results. The API allows at most [MaxLimit].
	Limit int `url:"limit,omitempty"`
	// OrderBy sorts the results, e.g. "name" or "-modified".
	OrderBy string `url:"orderBy,omitempty"`
}

// Characters fetches a single page of characters matching params.
func (c *Client) Characters(ctx context.Context, params CharacterParams) ([]Character, error) {
	u, err := c.buildURL("characters", params)
	if err != nil {
		return nil, err
	}

	raw, err := c.getJSON(ctx, u)
	if err != nil {
		return nil, err
	}

	return decodeResults[Character](raw)
}

// SearchCharacters returns the characters whose name starts with prefix.
func (c *Client) SearchCharacters(ctx context.Context, prefix string) ([]Character, error) {
	return c.Characters(ctx, CharacterParams{NameStartsWith: prefix})
}

// CharacterByName looks up a character by its exact name.
// It returns a [*CharacterNotFoundError] if no character has that name.
// Duplicate names are not disambiguated: the first match is returned.
func (c *Client) CharacterByName(ctx context.Context, name string) (Character, error) {
	characters, err := c.Characters(ctx, CharacterParams{Name: name})
	if err != nil {
		return Character{}, err
	}

	if len(characters) == 0 {
		return Character{}, &CharacterNotFoundError{Name: name}
	}

	return characters[0], nil
}
