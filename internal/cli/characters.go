package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"thde.io/marvel"
)

const (
	characterDescriptionWidth = 60
	eventDescriptionWidth     = 40
)

// searchCommand creates the "search" command.
func (c *CLI) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name-prefix>",
		Short: "List characters whose name starts with a prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			characters, err := client.SearchCharacters(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("search %q: %w", args[0], err)
			}
			prog.done(fmt.Sprintf("Found %d characters", len(characters)))

			if len(characters) == 0 {
				printInfo(cmd.OutOrStdout(), "No characters start with %q", args[0])
				return nil
			}

			rows := make([][]string, 0, len(characters))
			for _, ch := range characters {
				rows = append(rows, []string{
					strconv.Itoa(ch.ID),
					ch.Name,
					truncate(ch.Description, characterDescriptionWidth),
				})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "Name", "Description"}, rows)
			return nil
		},
	}
}

// eventsCommand creates the "events" command.
func (c *CLI) eventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "events <character-id>",
		Short: "List the events a character appears in, by start date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid character id %q: %w", args[0], err)
			}

			client, err := c.client()
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			events, err := client.EventsByCharacter(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("events of %d: %w", id, err)
			}
			prog.done(fmt.Sprintf("Found %d events", len(events)))

			if len(events) == 0 {
				printInfo(cmd.OutOrStdout(), "Character %d appears in no events", id)
				return nil
			}

			printEvents(cmd, events)
			return nil
		},
	}
}

func printEvents(cmd *cobra.Command, events []marvel.Event) {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			strconv.Itoa(e.ID),
			e.Title,
			e.Start.String(),
			truncate(e.Description, eventDescriptionWidth),
		})
	}
	printTable(cmd.OutOrStdout(), []string{"ID", "Title", "Date", "Description"}, rows)
}
