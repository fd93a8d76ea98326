package marvel

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"
)

// eventSet is a set of events keyed by full value.
type eventSet map[Event]struct{}

func newEventSet(events []Event) eventSet {
	set := make(eventSet, len(events))
	for _, e := range events {
		set[e] = struct{}{}
	}
	return set
}

// intersect returns the events present in both sets.
func (s eventSet) intersect(other eventSet) []Event {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}

	var shared []Event
	for e := range small {
		if _, ok := large[e]; ok {
			shared = append(shared, e)
		}
	}
	return shared
}

// compareEvents orders events by start date, absent dates first.
// Equal dates fall back to ID and title so the order is stable.
func compareEvents(a, b Event) int {
	return cmp.Or(
		a.Start.Compare(b.Start),
		cmp.Compare(a.ID, b.ID),
		cmp.Compare(a.Title, b.Title),
		cmp.Compare(a.Description, b.Description),
	)
}

// characterEventSet resolves name to a character and collects its events.
func (c *Client) characterEventSet(ctx context.Context, name string) (eventSet, error) {
	character, err := c.CharacterByName(ctx, name)
	if err != nil {
		return nil, err
	}

	events, err := c.EventsByCharacter(ctx, character.ID)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("resolved events", "name", name, "id", character.ID, "events", len(events))
	return newEventSet(events), nil
}

// SharedEvents returns the events both characters appear in, earliest first.
//
// The two characters are looked up concurrently. If either lookup fails the
// other one is cancelled and its error is returned; there are no partial results.
func (c *Client) SharedEvents(ctx context.Context, name1, name2 string) ([]Event, error) {
	var set1, set2 eventSet

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		set1, err = c.characterEventSet(gctx, name1)
		return err
	})
	g.Go(func() error {
		var err error
		set2, err = c.characterEventSet(gctx, name2)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	shared := set1.intersect(set2)
	slices.SortFunc(shared, compareEvents)
	return shared, nil
}

// EarliestSharedEvent returns the earliest event both characters appear in.
// It returns nil without an error when the characters share no event.
//
// Events without a start date sort before all dated events.
func (c *Client) EarliestSharedEvent(ctx context.Context, name1, name2 string) (*Event, error) {
	shared, err := c.SharedEvents(ctx, name1, name2)
	if err != nil {
		return nil, err
	}

	if len(shared) == 0 {
		return nil, nil
	}

	earliest := shared[0]
	return &earliest, nil
}
