package version

// Version is the version of the baasbox CLI, overridden at build time with
// -ldflags "-X github.com/hashicorp-forge/baasbox/internal/version.Version=...".
var Version = "0.1.0-dev"
