package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/SINO-Proyect/sino-cli/internal/api"
)

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show a summary of the account: profile, plans, upcoming events",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, err := setup(cmd)
			if err != nil {
				return err
			}

			authenticated, err := application.Session.Authenticated(ctx)
			if err != nil {
				return err
			}
			if !authenticated {
				fmt.Println("Not logged in")
				return nil
			}

			// Three independent reads; the request pipeline collapses any
			// concurrent 401s into a single token refresh.
			var (
				profile api.Profile
				plans   []api.StudyPlan
				events  []api.Event
			)

			g, gCtx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				profile, err = application.Client.Profile(gCtx)
				return err
			})
			g.Go(func() error {
				var err error
				plans, err = application.Client.ListStudyPlans(gCtx)
				return err
			})
			g.Go(func() error {
				var err error
				now := time.Now()
				events, err = application.Client.ListEvents(gCtx, now, now.AddDate(0, 0, 7))
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			fmt.Printf("%s <%s>", profile.Name, profile.Email)
			if !profile.EmailVerified {
				fmt.Print(" (email not verified)")
			}
			fmt.Println()

			fmt.Printf("Study plans: %d\n", len(plans))
			for _, plan := range plans {
				fmt.Printf("  %s  %s\n", plan.ID, plan.Name)
			}

			fmt.Printf("Events in the next 7 days: %d\n", len(events))
			for _, event := range events {
				fmt.Printf("  %s  %s\n", event.StartsAt.Format("Mon 02 Jan 15:04"), event.Title)
			}

			return nil
		},
	}
}
