package state

import "time"

// Record is the persisted bootstrap state.
type Record struct {
	Timestamp  time.Time `json:"timestamp"`
	GHUser     string    `json:"gh_user"`
	RepoName   string    `json:"repo_name"`
	RepoURL    string    `json:"repo_url"`
	PagesBase  string    `json:"pages_base"`
	DLShSHA256 string    `json:"dl_sh_sha256"`
}

// Store reads and writes the state record.
type Store interface {
	Exists() (bool, error)
	Load() (*Record, error)
	Save(rec Record) error
	Delete() (bool, error)
}
