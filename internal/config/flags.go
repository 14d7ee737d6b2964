package config

import (
	"flag"
	"os"
)

// parses CLI flags for the load subcommand
func ParseLoadFlags() IngestFlags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("load", flag.ExitOnError)
	path := fs.String("path", "./data/statements.csv", "path to the catalog CSV file")
	clearFlag := fs.Bool("clear", false, "clear existing statements before loading")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return IngestFlags{Path: *path, Clear: *clearFlag}
}

// parses CLI flags for the embed subcommand
func ParseEmbedFlags() IngestFlags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("embed", flag.ExitOnError)
	clearFlag := fs.Bool("clear", false, "recreate the vector collection before embedding")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return IngestFlags{Clear: *clearFlag}
}

// returns default flags for the load subcommand
func DefaultLoadFlags() IngestFlags {
	return IngestFlags{Path: "./data/statements.csv", Clear: false}
}

// returns default flags for the embed subcommand
func DefaultEmbedFlags() IngestFlags {
	return IngestFlags{Clear: false}
}
