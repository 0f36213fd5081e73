package domain

// SnapshotLoader reads diagnostic snapshots from a file. A file may contain a
// single snapshot or a list of them.
type SnapshotLoader interface {
	Load(path string) ([]Submission, error)
}

// ConfigLoader reads project configuration.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// ReportHistory persists a trace of validation runs under a directory.
type ReportHistory interface {
	Save(dir string, entry HistoryEntry) error
	Load(dir string) ([]HistoryEntry, error)
}
