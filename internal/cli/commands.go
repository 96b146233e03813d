// Package cli assembles the update-alternatives command tree. Each verb
// resolves its arguments and directories, dispatches into pkg/commands
// and hands the result to a ui renderer.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fthomys/update-alternatives/internal/version"
	"github.com/fthomys/update-alternatives/pkg/cobrax/topics"
	"github.com/fthomys/update-alternatives/pkg/commands"
	"github.com/fthomys/update-alternatives/pkg/config"
	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/filesystem"
	"github.com/fthomys/update-alternatives/pkg/logging"
	"github.com/fthomys/update-alternatives/pkg/paths"
	"github.com/fthomys/update-alternatives/pkg/types"
	"github.com/fthomys/update-alternatives/pkg/ui"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "update-alternatives",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			// Show help but return an error to indicate incorrect usage
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().Bool("user", false, MsgFlagUser)
	rootCmd.PersistentFlags().String("format", "", MsgFlagFormat)
	rootCmd.PersistentFlags().String("storage-dir", "", MsgFlagStorageDir)
	rootCmd.PersistentFlags().String("link-dir", "", MsgFlagLinkDir)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help system
	// Try to find help topics relative to the executable location
	exe, err := os.Executable()
	if err == nil {
		// Look for help topics in various locations
		possiblePaths := []string{
			filepath.Join(filepath.Dir(exe), "topics"),                   // Same directory as binary (production)
			filepath.Join(filepath.Dir(exe), "..", "..", "docs", "help"), // Development
			"docs/help", // Current directory fallback
		}

		for _, helpPath := range possiblePaths {
			if _, err := os.Stat(helpPath); err == nil {
				opts := topics.Options{
					Extensions: []string{".txt", ".md"},
					// Always use Glamour renderer for markdown files
					Renderer: topics.NewGlamourRenderer(),
				}

				if err := topics.InitializeWithOptions(rootCmd, helpPath, opts); err == nil {
					break
				}
			}
		}
	}

	return rootCmd
}

// cmdEnv is the resolved execution environment for one invocation.
type cmdEnv struct {
	cfg      *config.Config
	paths    types.Pather
	fs       types.FS
	renderer ui.Renderer
}

// resolveEnv builds the execution environment for a verb. Persistent
// flags win over environment variables, which win over the config
// files; in user mode the system directories from the config do not
// apply and only explicit flags override the XDG derivation.
func resolveEnv(cmd *cobra.Command) (*cmdEnv, error) {
	flags := cmd.Root().PersistentFlags()
	userMode, _ := flags.GetBool("user")
	storageDir, _ := flags.GetString("storage-dir")
	linkDir, _ := flags.GetString("link-dir")
	format, _ := flags.GetString("format")

	overrides := map[string]interface{}{}
	if storageDir != "" {
		overrides["storage.dir"] = storageDir
	}
	if linkDir != "" {
		overrides["links.dir"] = linkDir
	}
	if format != "" {
		overrides["output.format"] = format
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return nil, err
	}

	var p types.Pather
	if userMode {
		p, err = paths.New(true, storageDir, linkDir)
	} else {
		p, err = paths.New(false, cfg.Storage.Dir, cfg.Links.Dir)
	}
	if err != nil {
		return nil, err
	}

	outputFormat, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	renderer, err := ui.NewRenderer(outputFormat, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	return &cmdEnv{
		cfg:      cfg,
		paths:    p,
		fs:       filesystem.NewOS(),
		renderer: renderer,
	}, nil
}

// requireRoot refuses to write to the system directories without root.
// User mode and invocations with both directories relocated skip the
// check; permission errors on relocated directories still surface at
// write time.
func requireRoot(p types.Pather) error {
	if p.UserMode() || os.Geteuid() == 0 {
		return nil
	}
	if p.StorageDir() != paths.DefaultStorageDir && p.LinkDir() != paths.DefaultLinkDir {
		return nil
	}
	return errors.New(errors.ErrPermission, "must be run as root")
}

// resolveArg returns the value of an argument that can be given either
// through a flag or positionally. Giving both spellings is an error.
func resolveArg(cmd *cobra.Command, args []string, flag string, index int) (string, error) {
	var posVal string
	if index < len(args) {
		posVal = args[index]
	}
	if cmd.Flags().Changed(flag) && posVal != "" {
		return "", errors.Newf(errors.ErrInvalidInput, "%s given both as --%s and as an argument", flag, flag)
	}
	if cmd.Flags().Changed(flag) {
		return cmd.Flags().GetString(flag)
	}
	return posVal, nil
}

// requiredArg is resolveArg for arguments that must be present.
func requiredArg(cmd *cobra.Command, args []string, flag string, index int) (string, error) {
	val, err := resolveArg(cmd, args, flag, index)
	if err != nil {
		return "", err
	}
	if val == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "missing required argument: %s", flag)
	}
	return val, nil
}

// nameCompletion provides shell completion for registered alternative
// names, skipping names already present on the command line.
func nameCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	env, err := resolveEnv(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	result, err := commands.List(commands.ListOptions{
		FileSystem: env.fs,
		StorageDir: env.paths.StorageDir(),
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, group := range result.Groups {
		taken := false
		for _, arg := range args {
			if arg == group.Name {
				taken = true
				break
			}
		}
		if !taken {
			names = append(names, group.Name)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

// nameTargetCompletion completes the first argument as a registered
// name and the second as a path.
func nameTargetCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return nameCompletion(cmd, args, toComplete)
	case 1:
		return nil, cobra.ShellCompDirectiveDefault
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list [name...]",
		Short:             MsgListShort,
		Long:              MsgListLong,
		Example:           MsgListExample,
		GroupID:           "core",
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: nameCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if cmd.Flags().Changed("name") {
				if len(args) > 0 {
					return errors.New(errors.ErrInvalidInput, "name given both as --name and as an argument")
				}
				name, _ := cmd.Flags().GetString("name")
				names = []string{name}
			}

			env, err := resolveEnv(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("storageDir", env.paths.StorageDir()).
				Strs("names", names).
				Msg("Listing alternatives")

			result, err := commands.Dispatch(commands.CommandList, commands.DispatchOptions{
				FileSystem: env.fs,
				StorageDir: env.paths.StorageDir(),
				Names:      names,
			})
			if err != nil {
				return err
			}

			return env.renderer.RenderResult(result)
		},
	}

	cmd.Flags().StringP("name", "n", "", MsgFlagName)

	return cmd
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "add [name] [target] [weight]",
		Short:             MsgAddShort,
		Long:              MsgAddLong,
		Example:           MsgAddExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(3),
		ValidArgsFunction: nameTargetCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := requiredArg(cmd, args, "name", 0)
			if err != nil {
				return err
			}
			target, err := requiredArg(cmd, args, "target", 1)
			if err != nil {
				return err
			}
			weightStr, err := requiredArg(cmd, args, "weight", 2)
			if err != nil {
				return err
			}
			weight, err := strconv.Atoi(weightStr)
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, "could not parse %s as weight", weightStr)
			}

			env, err := resolveEnv(cmd)
			if err != nil {
				return err
			}
			if err := requireRoot(env.paths); err != nil {
				return err
			}

			log.Info().
				Str("name", name).
				Str("target", target).
				Int("weight", weight).
				Msg("Adding alternative")

			result, err := commands.Dispatch(commands.CommandAdd, commands.DispatchOptions{
				FileSystem: env.fs,
				StorageDir: env.paths.StorageDir(),
				LinkDir:    env.paths.LinkDir(),
				Name:       name,
				Target:     target,
				Priority:   weight,
			})
			if err != nil {
				return err
			}

			return env.renderer.RenderResult(result)
		},
	}

	cmd.Flags().StringP("name", "n", "", MsgFlagName)
	cmd.Flags().StringP("target", "t", "", MsgFlagTarget)
	cmd.Flags().StringP("weight", "w", "", MsgFlagWeight)

	return cmd
}

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "remove [name] [target]",
		Short:             MsgRemoveShort,
		Long:              MsgRemoveLong,
		Example:           MsgRemoveExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(2),
		ValidArgsFunction: nameTargetCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := requiredArg(cmd, args, "name", 0)
			if err != nil {
				return err
			}
			target, err := requiredArg(cmd, args, "target", 1)
			if err != nil {
				return err
			}

			env, err := resolveEnv(cmd)
			if err != nil {
				return err
			}
			if err := requireRoot(env.paths); err != nil {
				return err
			}

			log.Info().
				Str("name", name).
				Str("target", target).
				Msg("Removing alternative")

			result, err := commands.Dispatch(commands.CommandRemove, commands.DispatchOptions{
				FileSystem: env.fs,
				StorageDir: env.paths.StorageDir(),
				LinkDir:    env.paths.LinkDir(),
				Name:       name,
				Target:     target,
			})
			if err != nil {
				return err
			}

			return env.renderer.RenderResult(result)
		},
	}

	cmd.Flags().StringP("name", "n", "", MsgFlagName)
	cmd.Flags().StringP("target", "t", "", MsgFlagTarget)

	return cmd
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnv(cmd)
			if err != nil {
				return err
			}
			if err := requireRoot(env.paths); err != nil {
				return err
			}

			log.Info().
				Str("storageDir", env.paths.StorageDir()).
				Str("linkDir", env.paths.LinkDir()).
				Msg("Syncing links")

			result, err := commands.Dispatch(commands.CommandSync, commands.DispatchOptions{
				FileSystem: env.fs,
				StorageDir: env.paths.StorageDir(),
				LinkDir:    env.paths.LinkDir(),
			})
			if err != nil {
				return err
			}

			return env.renderer.RenderResult(result)
		},
	}
}

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "install [manifest...]",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnv(cmd)
			if err != nil {
				return err
			}
			if err := requireRoot(env.paths); err != nil {
				return err
			}

			manifestDir, _ := cmd.Flags().GetString("manifest-dir")
			if manifestDir == "" {
				manifestDir = env.cfg.Manifests.Dir
			}

			log.Info().
				Strs("manifests", args).
				Str("manifestDir", manifestDir).
				Msg("Installing from manifests")

			result, err := commands.Dispatch(commands.CommandInstall, commands.DispatchOptions{
				FileSystem:    env.fs,
				StorageDir:    env.paths.StorageDir(),
				LinkDir:       env.paths.LinkDir(),
				ManifestPaths: args,
				ManifestDir:   manifestDir,
			})
			if err != nil {
				return err
			}

			return env.renderer.RenderResult(result)
		},
	}

	cmd.Flags().String("manifest-dir", "", MsgFlagManifestDir)

	return cmd
}

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnv(cmd)
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			force, _ := cmd.Flags().GetBool("force")

			result, err := commands.Dispatch(commands.CommandGenConfig, commands.DispatchOptions{
				FileSystem: env.fs,
				ConfigPath: output,
				Force:      force,
			})
			if err != nil {
				return err
			}

			return env.renderer.RenderResult(result)
		},
	}

	cmd.Flags().StringP("output", "o", "", MsgFlagOutput)
	cmd.Flags().Bool("force", false, MsgFlagForce)

	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "update-alternatives %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
