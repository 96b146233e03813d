package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Manage program alternatives through priority-ordered symlinks"
	MsgListShort       = "List registered alternatives and their priorities"
	MsgAddShort        = "Add or update an alternative"
	MsgRemoveShort     = "Remove an alternative"
	MsgSyncShort       = "Rewrite all managed symlinks from the database"
	MsgInstallShort    = "Apply alternatives from manifest files"
	MsgGenConfigShort  = "Print or write the default configuration"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Show version and build information"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagUser        = "Operate on the per-user tree instead of the system one"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagStorageDir  = "Directory holding the alternatives database"
	MsgFlagLinkDir     = "Directory the managed symlinks are written to"
	MsgFlagName        = "The name of the alternative"
	MsgFlagTarget      = "The target of the alternative"
	MsgFlagWeight      = "The priority of the alternative"
	MsgFlagManifestDir = "Directory scanned for manifests when none are given"
	MsgFlagOutput      = "Write the configuration to this file instead of stdout"
	MsgFlagForce       = "Overwrite the output file if it exists"
)

// Long messages and examples
const (
	MsgRootLong = `update-alternatives manages symlinks to interchangeable programs.

Several programs can be registered under one generic name, each with a
priority. The registration with the highest priority wins and is exposed
as a symlink in the link directory, /usr/local/bin by default. State is
kept as one plain text file per name in /etc/alternatives, so it
survives between invocations.

To have 'editor' open nvim:

  sudo update-alternatives add --name editor --target /usr/bin/nvim --weight 100

Run 'update-alternatives help topics' for background on priorities, the
database format and manifests.`

	MsgListLong = `List prints every registration for the given names with their
priorities, highest first, and marks the current winner. Without a name,
every known alternative is listed.`

	MsgListExample = `  update-alternatives list
  update-alternatives list editor
  update-alternatives list --name editor`

	MsgAddLong = `Add registers TARGET as an alternative for NAME with priority WEIGHT,
or updates the priority if the target is already registered. When the
database changes, the winning target is relinked, which requires write
access to the storage and link directories.`

	MsgAddExample = `  update-alternatives add editor /usr/bin/nvim 100
  update-alternatives add --name editor --target /usr/bin/nvim --weight 100`

	MsgRemoveLong = `Remove drops the registration of TARGET for NAME if one exists.
Removing the winner promotes the next-best registration; removing the
last registration deletes the name's database file and its symlink.`

	MsgRemoveExample = `  update-alternatives remove editor /usr/bin/nvim
  update-alternatives remove --name editor --target /usr/bin/nvim`

	MsgSyncLong = `Sync rewrites every symlink in the link directory from the current
state of the database without modifying the database. Useful as a
package manager hook after installs, upgrades or removals.`

	MsgSyncExample = `  update-alternatives sync
  update-alternatives --user sync`

	MsgInstallLong = `Install applies every entry from the given TOML manifests. Without
arguments the configured manifest directory is scanned and every *.toml
file in it is applied in sorted name order. All entries are validated
before anything is written; one bad entry aborts the whole invocation.`

	MsgInstallExample = `  update-alternatives install /usr/share/vim/alternatives.toml
  update-alternatives install`

	MsgGenConfigLong = `Gen-config emits the built-in configuration with every setting
commented out, as a starting point for a config file. With --output the
content is written to a file instead of stdout.`

	MsgGenConfigExample = `  update-alternatives gen-config
  update-alternatives gen-config --output /etc/update-alternatives/config.toml`

	MsgCompletionLong = `Generate a shell completion script for update-alternatives.

To load completions in your current bash session:

  source <(update-alternatives completion bash)

To load completions for every session, write the script to the
completion directory of your shell, for example:

  update-alternatives completion bash > /etc/bash_completion.d/update-alternatives
  update-alternatives completion zsh > "${fpath[1]}/_update-alternatives"
  update-alternatives completion fish > ~/.config/fish/completions/update-alternatives.fish`
)

// MsgUsageTemplate is the cobra usage template with the section headers
// run through the formatting template functions.
const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{boldUpper "Available Commands:"}}{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold .Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

{{boldUpper "Additional Commands:"}}{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

{{boldUpper "Additional help topics:"}}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
