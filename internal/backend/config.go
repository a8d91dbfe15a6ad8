package backend

// Type selects the persistence backend for the session.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	}
	return false
}

// Config carries everything a factory needs to build a backend.
type Config struct {
	Type         Type
	SQLiteDBPath string
}
