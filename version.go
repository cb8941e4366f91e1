package parley

// Version is the release version reported by the CLI.
var Version = "0.1.0"
