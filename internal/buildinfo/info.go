package buildinfo

var (
	// Version задается через ldflags при сборке.
	Version = "dev"
	// Commit задается через ldflags при сборке.
	Commit = "none"
	// Date задается через ldflags при сборке.
	Date = "unknown"
)
