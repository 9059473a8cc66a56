package version

// Version is the current vault-raft-backup release.
const Version = "0.1.0"
