package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"boxtime/internal/core/intervaltimer"
	"boxtime/internal/core/model"

	"github.com/spf13/cobra"
)

func newSessionsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage stored training sessions",
	}
	cmd.AddCommand(newSessionsListCommand(opts))
	cmd.AddCommand(newSessionsShowCommand(opts))
	cmd.AddCommand(newSessionsAddCommand(opts))
	cmd.AddCommand(newSessionsDeleteCommand(opts))
	return cmd
}

func newSessionsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := opts.store.ListSessions()
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no sessions stored")
				return nil
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "TITLE\tEXERCISES\tTOTAL\tID")
			for _, session := range sessions {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", session.Title, session.ExerciseCountText(), session.TotalTimeText(), session.ID)
			}
			return writer.Flush()
		},
	}
}

func newSessionsShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session>",
		Short: "Show the exercises of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.store.FindSession(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s, %s)\n", session.Title, session.ExerciseCountText(), session.TotalTimeText())
			writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "#\tEXERCISE\tROUNDS\tWORK\tREST")
			for i, exercise := range session.Exercises {
				fmt.Fprintf(writer, "%d\t%s\t%d\t%s\t%s\n", i+1, exercise.Name, exercise.Rounds,
					intervaltimer.FormatRemaining(exercise.WorkPhaseDuration),
					intervaltimer.FormatRemaining(exercise.RestPhaseDuration))
			}
			return writer.Flush()
		},
	}
}

func newSessionsAddCommand(opts *RootOptions) *cobra.Command {
	var specs []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Store a new session",
		Example: `  boxtime sessions add "Bag work" \
    --exercise jab:3:60:30 --exercise combos:5:90:30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exercises := make([]model.Exercise, 0, len(specs))
			for _, raw := range specs {
				exercise, err := parseExercise(raw)
				if err != nil {
					return err
				}
				exercises = append(exercises, exercise)
			}

			session, err := opts.store.SaveSession(model.Session{Title: args[0], Exercises: exercises})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %q (%s, %s) as %s\n", session.Title, session.ExerciseCountText(), session.TotalTimeText(), session.ID)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&specs, "exercise", "e", nil, "exercise as name:rounds:work:rest (seconds); repeatable")
	return cmd
}

func newSessionsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session>",
		Short: "Delete a stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.store.DeleteSession(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

// parseExercise reads "name:rounds:work:rest". The name may itself contain colons.
func parseExercise(value string) (model.Exercise, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 4 {
		return model.Exercise{}, fmt.Errorf("exercise %q: want name:rounds:work:rest", value)
	}
	numbers := parts[len(parts)-3:]
	values := make([]int, len(numbers))
	for i, raw := range numbers {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return model.Exercise{}, fmt.Errorf("exercise %q: %w", value, err)
		}
		values[i] = n
	}

	exercise := model.Exercise{
		Name:              strings.TrimSpace(strings.Join(parts[:len(parts)-3], ":")),
		Rounds:            values[0],
		WorkPhaseDuration: values[1],
		RestPhaseDuration: values[2],
	}
	if err := exercise.Validate(); err != nil {
		return model.Exercise{}, err
	}
	return exercise, nil
}
