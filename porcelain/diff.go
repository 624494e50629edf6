package porcelain

// DiffStatus is the kind of change a diff entry describes. Exactly one
// status holds per entry; the predicate methods on DiffEntry derive from it.
type DiffStatus int

const (
	Modified DiffStatus = iota
	Added
	Deleted
	Renamed
	Copied
	TypeChanged
	Unmerged
)

// String returns the lowercase status name.
func (s DiffStatus) String() string {
	switch s {
	case Modified:
		return "modified"
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Renamed:
		return "renamed"
	case Copied:
		return "copied"
	case TypeChanged:
		return "type_changed"
	case Unmerged:
		return "unmerged"
	default:
		return "unknown"
	}
}

// submoduleMode is the tree-entry mode git uses for gitlinks. A submodule
// entry is recognized purely by this mode; it gets no special status
// handling beyond the normal mode-diff logic.
const submoduleMode = "160000"

// FileRef identifies one side of a change: a path plus the mode and blob id
// git reported for that side.
type FileRef struct {
	Path string
	Mode string
	SHA  string
}

// IsSubmodule reports whether this side is a gitlink.
func (f *FileRef) IsSubmodule() bool {
	return f != nil && f.Mode == submoduleMode
}

// DiffEntry is one file-level change.
//
// Src is nil for added entries and Dst is nil for deleted ones; absence
// means "no such side", which is different from a side with a zero SHA
// (git reports all-zero ids for worktree content it has not hashed).
type DiffEntry struct {
	Status DiffStatus
	// Path is the entry's primary path: the destination side when both
	// sides exist, the only side otherwise.
	Path string
	// SrcPath is set only for renames and copies whose origin differs
	// from Path.
	SrcPath string
	Src     *FileRef
	Dst     *FileRef
	// Similarity is the rename/copy score in [1,100]; zero otherwise.
	Similarity int
	// Insertions and Deletions are line counts; always zero for binary
	// entries.
	Insertions int
	Deletions  int
	Binary     bool
}

func (e *DiffEntry) IsModified() bool    { return e.Status == Modified }
func (e *DiffEntry) IsAdded() bool       { return e.Status == Added }
func (e *DiffEntry) IsDeleted() bool     { return e.Status == Deleted }
func (e *DiffEntry) IsRenamed() bool     { return e.Status == Renamed }
func (e *DiffEntry) IsCopied() bool      { return e.Status == Copied }
func (e *DiffEntry) IsTypeChanged() bool { return e.Status == TypeChanged }
func (e *DiffEntry) IsUnmerged() bool    { return e.Status == Unmerged }

// DiffResult is an ordered collection of entries in the tool's emission
// order, with aggregate totals that always equal the per-entry sums.
type DiffResult struct {
	Entries         []DiffEntry
	TotalInsertions int
	TotalDeletions  int
	FilesChanged    int
	// Dirstat is present only when directory statistics were requested.
	Dirstat []DirstatEntry
}

// recompute refreshes the aggregate fields from the entries.
func (r *DiffResult) recompute() {
	r.FilesChanged = len(r.Entries)
	r.TotalInsertions = 0
	r.TotalDeletions = 0
	for i := range r.Entries {
		r.TotalInsertions += r.Entries[i].Insertions
		r.TotalDeletions += r.Entries[i].Deletions
	}
}

// DirstatEntry is one per-directory change percentage. Directory always
// ends with a path separator. Order reflects the tool's own sort; no
// re-aggregation happens here.
type DirstatEntry struct {
	Directory string
	Percent   float64
}
