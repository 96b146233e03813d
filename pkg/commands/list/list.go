package list

import (
	"github.com/fthomys/update-alternatives/pkg/alternatives"
	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/logging"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// ListOptions defines the options for the List command.
type ListOptions struct {
	FileSystem types.FS
	StorageDir string

	// Names restricts the listing. Empty lists every group.
	Names []string
}

// List resolves the requested alternative groups. Asking for a name that is
// not in the database is an error; listing everything never is, even when
// the database is empty.
func List(opts ListOptions) (*types.ListResult, error) {
	logger := logging.GetLogger("commands.list")
	logger.Debug().Str("command", "list").Strs("names", opts.Names).Msg("Executing command")

	db, warnings, err := alternatives.Load(opts.FileSystem, opts.StorageDir)
	if err != nil {
		return nil, err
	}

	result := &types.ListResult{
		Parsed:   db.Records(),
		Groups:   []types.GroupInfo{},
		Warnings: warnings,
	}

	names := opts.Names
	if len(names) == 0 {
		names = db.Names()
	}

	for _, name := range names {
		group, ok := db.Lookup(name)
		if !ok {
			return nil, errors.Newf(errors.ErrGroupNotFound, "no alternatives found for %s", name).
				WithDetail("name", name)
		}
		result.Groups = append(result.Groups, groupInfo(group))
	}

	logger.Info().Str("command", "list").Int("groups", len(result.Groups)).Msg("Command finished")
	return result, nil
}

// groupInfo flattens a group into its display form, marking the winner.
func groupInfo(g *alternatives.Group) types.GroupInfo {
	info := types.GroupInfo{
		Name:    g.Name(),
		Records: make([]types.RecordInfo, 0, g.Len()),
	}

	current, ok := g.Current()
	if ok {
		info.Current = current.Target
	}

	for record := range g.All() {
		info.Records = append(info.Records, types.RecordInfo{
			Target:   record.Target,
			Priority: record.Priority,
			Selected: ok && record.Target == current.Target,
		})
	}

	return info
}
