package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/SINO-Proyect/sino-cli/internal/api"
)

func eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "manage calendar events",
		Commands: []*cli.Command{
			eventsListCommand(),
			eventsAddCommand(),
			eventsRemoveCommand(),
		},
	}
}

func eventsListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list calendar events in a window (default: next 7 days)",
		Flags: []cli.Flag{
			&cli.TimestampFlag{
				Name:  "from",
				Usage: "window start (RFC 3339)",
				Config: cli.TimestampConfig{
					Layouts: []string{time.RFC3339, "2006-01-02"},
				},
			},
			&cli.TimestampFlag{
				Name:  "to",
				Usage: "window end (RFC 3339)",
				Config: cli.TimestampConfig{
					Layouts: []string{time.RFC3339, "2006-01-02"},
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, err := setup(cmd)
			if err != nil {
				return err
			}

			from := cmd.Timestamp("from")
			if from.IsZero() {
				from = time.Now()
			}
			to := cmd.Timestamp("to")
			if to.IsZero() {
				to = from.AddDate(0, 0, 7)
			}

			events, err := application.Client.ListEvents(ctx, from, to)
			if err != nil {
				return err
			}

			for _, event := range events {
				fmt.Printf("%s  %s  %s", event.ID, event.StartsAt.Format(time.RFC3339), event.Title)
				if event.CourseCode != "" {
					fmt.Printf("  [%s]", event.CourseCode)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func eventsAddCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "add a calendar event",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true, Usage: "event title"},
			&cli.StringFlag{Name: "course", Usage: "linked course code"},
			&cli.StringFlag{Name: "notes", Usage: "free-form notes"},
			&cli.TimestampFlag{
				Name:     "starts",
				Required: true,
				Usage:    "start time (RFC 3339)",
				Config: cli.TimestampConfig{
					Layouts: []string{time.RFC3339},
				},
			},
			&cli.TimestampFlag{
				Name:     "ends",
				Required: true,
				Usage:    "end time (RFC 3339)",
				Config: cli.TimestampConfig{
					Layouts: []string{time.RFC3339},
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, err := setup(cmd)
			if err != nil {
				return err
			}

			event, err := application.Client.CreateEvent(ctx, api.EventInput{
				Title:      cmd.String("title"),
				Notes:      cmd.String("notes"),
				CourseCode: cmd.String("course"),
				StartsAt:   cmd.Timestamp("starts"),
				EndsAt:     cmd.Timestamp("ends"),
			})
			if err != nil {
				return err
			}

			fmt.Printf("Added event %s (%s)\n", event.Title, event.ID)
			return nil
		},
	}
}

func eventsRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "remove a calendar event",
		ArgsUsage: "<event-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("event id required")
			}

			application, err := setup(cmd)
			if err != nil {
				return err
			}

			if err := application.Client.DeleteEvent(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Removed event %s\n", id)
			return nil
		},
	}
}
