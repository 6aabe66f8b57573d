package version

// Version is overridden at build time via -ldflags "-X moligo/internal/version.Version=...".
var Version = "0.2.0-dev"
