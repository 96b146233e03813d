package types

// RecordInfo is one registered alternative for display.
type RecordInfo struct {
	Target   string `json:"target"`
	Priority int    `json:"priority"`
	Selected bool   `json:"selected"`
}

// GroupInfo is the resolved view of one alternative group: every
// registered record plus the winning target, if any.
type GroupInfo struct {
	Name    string       `json:"name"`
	Current string       `json:"current,omitempty"`
	Records []RecordInfo `json:"records"`
}

// ParseWarning reports a database file that could not be parsed and was
// skipped during load. The rest of the database is unaffected.
type ParseWarning struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// LinkState describes what happened to one symlink during materialization.
type LinkState string

const (
	LinkCreated   LinkState = "created"
	LinkUpdated   LinkState = "updated"
	LinkRemoved   LinkState = "removed"
	LinkUnchanged LinkState = "unchanged"
	LinkFailed    LinkState = "failed"
)

// LinkChange is the per-link outcome of a materialization pass.
type LinkChange struct {
	Name   string    `json:"name"`
	Path   string    `json:"path"`
	Target string    `json:"target,omitempty"`
	State  LinkState `json:"state"`
	Error  string    `json:"error,omitempty"`
}

// LinkResult collects the outcome of materializing every group's link.
type LinkResult struct {
	Changes []LinkChange `json:"changes"`
}

// Changed returns the number of links that were actually modified.
func (r *LinkResult) Changed() int {
	n := 0
	for _, c := range r.Changes {
		switch c.State {
		case LinkCreated, LinkUpdated, LinkRemoved:
			n++
		}
	}
	return n
}

// Failed returns the number of links that could not be materialized.
func (r *LinkResult) Failed() int {
	n := 0
	for _, c := range r.Changes {
		if c.State == LinkFailed {
			n++
		}
	}
	return n
}

// CommitResult reports what a mutating command wrote back to disk.
type CommitResult struct {
	Persisted bool        `json:"persisted"`
	Links     *LinkResult `json:"links,omitempty"`
}

// ListResult holds the result of the 'list' command.
type ListResult struct {
	Parsed   int            `json:"parsed"`
	Groups   []GroupInfo    `json:"groups"`
	Warnings []ParseWarning `json:"warnings,omitempty"`
}

// AddResult holds the result of the 'add' command.
type AddResult struct {
	Parsed   int            `json:"parsed"`
	Name     string         `json:"name"`
	Target   string         `json:"target"`
	Priority int            `json:"priority"`
	Changed  bool           `json:"changed"`
	Warnings []ParseWarning `json:"warnings,omitempty"`
	Commit   *CommitResult  `json:"commit,omitempty"`
}

// RemoveResult holds the result of the 'remove' command.
type RemoveResult struct {
	Parsed   int            `json:"parsed"`
	Name     string         `json:"name"`
	Target   string         `json:"target"`
	Removed  bool           `json:"removed"`
	Warnings []ParseWarning `json:"warnings,omitempty"`
	Commit   *CommitResult  `json:"commit,omitempty"`
}

// SyncResult holds the result of the 'sync' command.
type SyncResult struct {
	Parsed   int            `json:"parsed"`
	Links    *LinkResult    `json:"links"`
	Warnings []ParseWarning `json:"warnings,omitempty"`
}

// InstallResult holds the result of the 'install' command.
type InstallResult struct {
	Parsed    int            `json:"parsed"`
	Manifests []string       `json:"manifests"`
	Applied   int            `json:"applied"`
	Changed   bool           `json:"changed"`
	Warnings  []ParseWarning `json:"warnings,omitempty"`
	Commit    *CommitResult  `json:"commit,omitempty"`
}

// GenConfigResult holds the result of the 'gen-config' command.
type GenConfigResult struct {
	Path    string `json:"path,omitempty"`
	Content string `json:"content"`
	Written bool   `json:"written"`
}
