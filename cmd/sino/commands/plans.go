package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/SINO-Proyect/sino-cli/internal/api"
	"github.com/SINO-Proyect/sino-cli/internal/curriculum"
)

func plansCommand() *cli.Command {
	return &cli.Command{
		Name:  "plans",
		Usage: "manage study plans",
		Commands: []*cli.Command{
			plansListCommand(),
			plansShowCommand(),
			plansPushCommand(),
			plansDeleteCommand(),
		},
	}
}

func plansListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list study plans",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, err := setup(cmd)
			if err != nil {
				return err
			}

			plans, err := application.Client.ListStudyPlans(ctx)
			if err != nil {
				return err
			}

			for _, plan := range plans {
				fmt.Printf("%s  %s", plan.ID, plan.Name)
				if plan.Career != "" {
					fmt.Printf("  (%s)", plan.Career)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func plansShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print a study plan's curriculum",
		ArgsUsage: "<plan-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("plan id required")
			}

			application, err := setup(cmd)
			if err != nil {
				return err
			}

			plan, err := application.Client.GetStudyPlan(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("%s (%s)\n", plan.Name, plan.Career)
			for _, cycle := range plan.Cycles {
				fmt.Printf("  %s\n", cycle.Name)
				for _, period := range cycle.Periods {
					fmt.Printf("    %s\n", period.Name)
					for _, course := range period.Courses {
						fmt.Printf("      %s  %s (%d cr)", course.Code, course.Name, course.Credits)
						if len(course.Prerequisites) > 0 {
							fmt.Printf("  requires %v", course.Prerequisites)
						}
						if len(course.Corequisites) > 0 {
							fmt.Printf("  with %v", course.Corequisites)
						}
						fmt.Println()
					}
				}
			}
			return nil
		},
	}
}

func plansPushCommand() *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "validate a curriculum file and store it as a new study plan",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "path to a JSON curriculum file",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, err := os.ReadFile(cmd.String("file"))
			if err != nil {
				return fmt.Errorf("reading curriculum file: %w", err)
			}

			var input api.StudyPlanInput
			if err := json.Unmarshal(raw, &input); err != nil {
				return fmt.Errorf("parsing curriculum file: %w", err)
			}

			application, err := setup(cmd)
			if err != nil {
				return err
			}

			// File-loaded plans go through the same builder validation as
			// wizard-assembled ones.
			plan, err := curriculum.FromInput(input).Submit(ctx, application.Client)
			if err != nil {
				return err
			}

			fmt.Printf("Created study plan %s (%s)\n", plan.ID, plan.Name)
			return nil
		},
	}
}

func plansDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete a study plan",
		ArgsUsage: "<plan-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("plan id required")
			}

			application, err := setup(cmd)
			if err != nil {
				return err
			}

			if err := application.Client.DeleteStudyPlan(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Deleted study plan %s\n", id)
			return nil
		},
	}
}
