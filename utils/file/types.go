package file

// Utils is the filesystem-query capability used by input validation. It keeps
// validation pure and testable without touching the real disk.
type Utils interface {
	FileExists(path string) (bool, error)
	DirExists(path string) (bool, error)
}
