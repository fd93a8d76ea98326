package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// firstEventCommand creates the "first-event" command.
func (c *CLI) firstEventCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "first-event <name> <name>",
		Short: "Show the earliest event two characters both appear in",
		Long: `Show the earliest event two characters both appear in.

Names must match exactly, e.g. "Spider-Man (Peter Parker)". Use the search
command to find the exact name of a character.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			event, err := client.EarliestSharedEvent(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			prog.done("Compared events")

			w := cmd.OutOrStdout()
			if event == nil {
				fmt.Fprintln(w, StyleWarning.Render(fmt.Sprintf("%s and %s share no event", args[0], args[1])))
				return nil
			}

			start := event.Start.String()
			if start == "" {
				start = StyleDim.Render("unknown")
			}

			fmt.Fprintln(w, StyleTitle.Render(event.Title))
			printKeyValue(w, "ID", strconv.Itoa(event.ID))
			printKeyValue(w, "Start", start)
			printKeyValue(w, "Description", truncate(event.Description, 2*eventDescriptionWidth))
			return nil
		},
	}
}

// sharedEventsCommand creates the "shared-events" command.
func (c *CLI) sharedEventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shared-events <name> <name>",
		Short: "List every event two characters both appear in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			events, err := client.SharedEvents(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Found %d shared events", len(events)))

			if len(events) == 0 {
				printInfo(cmd.OutOrStdout(), "%s and %s share no event", args[0], args[1])
				return nil
			}

			printEvents(cmd, events)
			return nil
		},
	}
}
