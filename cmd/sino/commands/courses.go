package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/SINO-Proyect/sino-cli/internal/api"
)

func coursesCommand() *cli.Command {
	return &cli.Command{
		Name:  "courses",
		Usage: "manage enrolled courses",
		Commands: []*cli.Command{
			coursesListCommand(),
			coursesAddCommand(),
			coursesRemoveCommand(),
		},
	}
}

func coursesListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list enrolled courses",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, err := setup(cmd)
			if err != nil {
				return err
			}

			courses, err := application.Client.ListCourses(ctx)
			if err != nil {
				return err
			}

			for _, course := range courses {
				fmt.Printf("%s  %s  %s (%d cr)", course.ID, course.Code, course.Name, course.Credits)
				if course.Schedule != "" {
					fmt.Printf("  %s", course.Schedule)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func coursesAddCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "enroll a course",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "code", Required: true, Usage: "course code"},
			&cli.StringFlag{Name: "name", Required: true, Usage: "course name"},
			&cli.IntFlag{Name: "credits", Usage: "credit count"},
			&cli.StringFlag{Name: "schedule", Usage: "free-form schedule note"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, err := setup(cmd)
			if err != nil {
				return err
			}

			course, err := application.Client.CreateCourse(ctx, api.CourseInput{
				Code:     cmd.String("code"),
				Name:     cmd.String("name"),
				Credits:  int(cmd.Int("credits")),
				Schedule: cmd.String("schedule"),
			})
			if err != nil {
				return err
			}

			fmt.Printf("Enrolled %s (%s)\n", course.Code, course.ID)
			return nil
		},
	}
}

func coursesRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "remove an enrolled course",
		ArgsUsage: "<course-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("course id required")
			}

			application, err := setup(cmd)
			if err != nil {
				return err
			}

			if err := application.Client.DeleteCourse(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Removed course %s\n", id)
			return nil
		},
	}
}
