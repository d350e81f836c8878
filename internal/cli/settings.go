package cli

import (
	"fmt"
	"time"

	"boxtime/internal/ui/preferences"

	"github.com/spf13/cobra"
)

func newSettingsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
	}
	cmd.AddCommand(newSettingsShowCommand(opts))
	cmd.AddCommand(newSettingsSetCommand(opts))
	return cmd
}

func newSettingsShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.store.LoadSettings()
			if err != nil {
				return err
			}
			printSettings(cmd, settings)
			return nil
		},
	}
}

func newSettingsSetCommand(opts *RootOptions) *cobra.Command {
	var (
		premium      bool
		sound        bool
		autoContinue bool
		tick         time.Duration
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences; only the flags given are updated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.store.LoadSettings()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("premium") {
				settings.Premium = premium
			}
			if flags.Changed("sound") {
				settings.SoundEnabled = sound
			}
			if flags.Changed("auto-continue") {
				settings.AutoContinue = autoContinue
			}
			if flags.Changed("tick") {
				if tick <= 0 {
					return fmt.Errorf("tick must be positive, got %s", tick)
				}
				settings.TickInterval = tick
			}

			if err := opts.store.SaveSettings(settings); err != nil {
				return err
			}
			printSettings(cmd, settings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&premium, "premium", false, "premium entitlement (hides ads, enables history)")
	cmd.Flags().BoolVar(&sound, "sound", true, "ring a cue on phase changes")
	cmd.Flags().BoolVar(&autoContinue, "auto-continue", true, "run exercises back to back")
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "timer tick interval")
	return cmd
}

func printSettings(cmd *cobra.Command, settings preferences.Settings) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "tick:          %s\n", settings.TickInterval)
	fmt.Fprintf(out, "auto-continue: %t\n", settings.AutoContinue)
	fmt.Fprintf(out, "sound:         %t\n", settings.SoundEnabled)
	fmt.Fprintf(out, "premium:       %t\n", settings.Premium)
	quick := settings.QuickStart
	fmt.Fprintf(out, "quick start:   %s %d x %ds work / %ds rest\n", quick.Name, quick.Rounds, quick.WorkPhaseDuration, quick.RestPhaseDuration)
}
