package cli

import (
	"io"
	"log"

	"boxtime/internal/storage"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// AppName names the config directory and the run guard.
const AppName = "boxtime"

// RootOptions holds global flags and the resources commands share.
type RootOptions struct {
	ConfigDir string
	Verbose   bool

	fs     afero.Fs
	store  *storage.Store
	logger *log.Logger
}

// NewRootCommand creates the boxtime command tree on the OS filesystem.
func NewRootCommand() *cobra.Command {
	return newRootCommand(afero.NewOsFs())
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	opts := &RootOptions{fs: fs}

	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Interval training timer",
		Long:          "BoxTime runs interval training sessions: exercises of work and rest rounds, back to back.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd.ErrOrStderr())
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "directory holding sessions and settings (default: user config dir)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log timer transitions to stderr")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newSessionsCommand(opts))
	cmd.AddCommand(newSettingsCommand(opts))
	return cmd
}

func (opts *RootOptions) init(stderr io.Writer) error {
	if opts.ConfigDir == "" {
		dir, err := storage.ResolveConfigDir(AppName)
		if err != nil {
			return err
		}
		opts.ConfigDir = dir
	}
	opts.store = storage.NewStore(opts.fs, opts.ConfigDir)

	output := io.Discard
	if opts.Verbose {
		output = stderr
	}
	opts.logger = log.New(output, AppName+": ", log.LstdFlags)
	return nil
}
