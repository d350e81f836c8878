package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"boxtime/internal/core/intervaltimer"
	"boxtime/internal/core/model"
	"boxtime/internal/core/timekeeper"
	"boxtime/internal/platform"
	"boxtime/internal/storage"
	"boxtime/internal/ui/preferences"
	"boxtime/internal/ui/presenter"

	"fyne.io/fyne/v2/test"
	"github.com/spf13/cobra"
)

const adBanner = "-- ad -- BoxTime is free with ads. Remove them with: boxtime settings set --premium"

type runOptions struct {
	name    string
	rounds  int
	work    int
	rest    int
	tick    time.Duration
	startAt int
	noSound bool
}

// selection is what a run loads into the timer.
type selection struct {
	title     string
	exercises []model.Exercise
}

func newRunCommand(opts *RootOptions) *cobra.Command {
	runOpts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [session]",
		Short: "Run a session or a quick-start exercise",
		Long: `Run a stored session by ID or title, or a single quick-start exercise
when --work/--rest/--rounds are given. Without arguments the last run
selection is resumed. Ctrl-C pauses and exits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.store.LoadSettings()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tick") {
				if runOpts.tick <= 0 {
					return fmt.Errorf("tick must be positive, got %s", runOpts.tick)
				}
				settings.TickInterval = runOpts.tick
			}
			if runOpts.noSound {
				settings.SoundEnabled = false
			}

			chosen, err := resolveSelection(cmd, opts, runOpts, args, settings)
			if err != nil {
				return err
			}

			guard, err := platform.AcquireRunGuard(AppName, opts.ConfigDir)
			if err != nil {
				return err
			}
			defer func() {
				_ = guard.Release()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runSelection(ctx, cmd.OutOrStdout(), opts.logger, settings, chosen, runOpts.startAt)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&runOpts.name, "name", "", "quick-start exercise name")
	flags.IntVar(&runOpts.rounds, "rounds", 0, "quick-start rounds")
	flags.IntVar(&runOpts.work, "work", 0, "quick-start work phase in seconds")
	flags.IntVar(&runOpts.rest, "rest", 0, "quick-start rest phase in seconds")
	flags.DurationVar(&runOpts.tick, "tick", time.Second, "override the tick interval")
	flags.IntVar(&runOpts.startAt, "start-at", 1, "exercise number to start from")
	flags.BoolVar(&runOpts.noSound, "no-sound", false, "disable the terminal bell cue")
	return cmd
}

func resolveSelection(cmd *cobra.Command, opts *RootOptions, runOpts *runOptions, args []string, settings preferences.Settings) (selection, error) {
	store := opts.store

	if len(args) == 1 {
		session, err := store.FindSession(args[0])
		if err != nil {
			return selection{}, err
		}
		if err := store.SaveActiveSession(session.ID); err != nil {
			opts.logger.Printf("remember active session: %v", err)
		}
		return selection{title: session.Title, exercises: session.Exercises}, nil
	}

	flags := cmd.Flags()
	if flags.Changed("name") || flags.Changed("rounds") || flags.Changed("work") || flags.Changed("rest") {
		exercise := settings.QuickStart
		if flags.Changed("name") {
			exercise.Name = runOpts.name
		}
		if flags.Changed("rounds") {
			exercise.Rounds = runOpts.rounds
		}
		if flags.Changed("work") {
			exercise.WorkPhaseDuration = runOpts.work
		}
		if flags.Changed("rest") {
			exercise.RestPhaseDuration = runOpts.rest
		}
		if err := exercise.Validate(); err != nil {
			return selection{}, err
		}
		if err := store.SaveActiveExercise(exercise); err != nil {
			opts.logger.Printf("remember active exercise: %v", err)
		}
		return selection{title: exercise.Name, exercises: []model.Exercise{exercise}}, nil
	}

	active, err := store.LoadActive()
	if err != nil {
		opts.logger.Printf("load active selection: %v", err)
	}
	switch active.Kind {
	case storage.ActiveSession:
		session, err := store.FindSession(active.SessionID)
		if err == nil {
			return selection{title: session.Title, exercises: session.Exercises}, nil
		}
		opts.logger.Printf("active session %s: %v", active.SessionID, err)
	case storage.ActiveExercise:
		return selection{title: active.Exercise.Name, exercises: []model.Exercise{active.Exercise}}, nil
	}

	quick := settings.QuickStart
	return selection{title: quick.Name, exercises: []model.Exercise{quick}}, nil
}

func runSelection(ctx context.Context, out io.Writer, logger *log.Logger, settings preferences.Settings, chosen selection, startAt int) error {
	keeper := timekeeper.New(settings.TimeKeeperConfig(), logger)
	defer keeper.Close()

	// Bindings notify through the current fyne app. A terminal run has no
	// window, so the headless driver serves.
	headless := test.NewApp()
	defer headless.Quit()

	view, err := presenter.New(presenter.Dependencies{
		Entitlement:  presenter.StaticEntitlement(settings.Premium),
		Cues:         bellCues{out: out},
		SoundEnabled: settings.SoundEnabled,
	})
	if err != nil {
		return err
	}

	events := keeper.Subscribe(64)
	keeper.Load(chosen.exercises)
	for i := 1; i < startAt; i++ {
		if !keeper.SkipToNext() {
			return fmt.Errorf("--start-at %d: %q has %d exercises", startAt, chosen.title, len(chosen.exercises))
		}
	}

	if showAds, _ := view.ShowAds().Get(); showAds {
		fmt.Fprintln(out, adBanner)
	}
	fmt.Fprintf(out, "%s (%s)\n", chosen.title, model.Session{Exercises: chosen.exercises}.TotalTimeText())

	if !keeper.Start() {
		return errors.New("nothing to run: the exercise has no rounds or no timed phase")
	}

	// Events are dropped for slow readers, so completion is also polled.
	poll := time.NewTicker(2 * settings.TickInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			keeper.Pause()
			snapshot := keeper.Snapshot()
			fmt.Fprintf(out, "paused at %s in %q\n", snapshot.FormattedRemaining(), snapshot.Exercise.Name)
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := view.Apply(event); err != nil {
				return err
			}
			fmt.Fprintln(out, view.Summary())
			if !event.Snapshot.Running && event.Type != timekeeper.EventStateChange {
				reportStopped(out, keeper.Snapshot())
				return nil
			}
		case <-poll.C:
			if snapshot := keeper.Snapshot(); !snapshot.Running {
				reportStopped(out, snapshot)
				return nil
			}
		}
	}
}

func reportStopped(out io.Writer, snapshot intervaltimer.Snapshot) {
	switch {
	case snapshot.Finished:
		fmt.Fprintln(out, "session complete")
	case snapshot.Status == intervaltimer.StatusReady && snapshot.Round == 0 && snapshot.ExerciseIndex > 0:
		fmt.Fprintf(out, "exercise complete; next up %q (continue with --start-at %d)\n", snapshot.Exercise.Name, snapshot.ExerciseIndex+1)
	default:
		fmt.Fprintln(out, "timer stopped")
	}
}

// bellCues rings the terminal bell.
type bellCues struct {
	out io.Writer
}

func (cues bellCues) Play(cue presenter.Cue) {
	count := 1
	if cue == presenter.CueFinished {
		count = 3
	}
	for i := 0; i < count; i++ {
		fmt.Fprint(cues.out, "\a")
	}
}
