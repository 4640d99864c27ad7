package buildinfo

// Set with -ldflags "-X github.com/cleared-dev/bank2ledger/internal/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
