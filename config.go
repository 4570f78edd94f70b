package main

import (
	"os"
	"time"
)

// Config is resolved once at startup and never mutated afterwards.
// Every component gets what it needs from here; nothing reads the
// environment after main has built it.
type Config struct {
	ModemAddress           string
	DryRun                 bool
	NotifyOnDryRun         bool
	RestoreFactoryDefaults bool
	UncorrectableThreshold uint64
	CorrectableThreshold   uint64
	Timeout                time.Duration
	Parser                 string
	TextfilePath           string
}

// envSet reports whether the variable holds anything at all. DRY_RUN
// counts any non-empty value as enabled, not just values
// strconv.ParseBool accepts.
func envSet(name string) bool {
	return os.Getenv(name) != ""
}

// restoreFromEnv reads FACTORY_DEFAULTS, whose documented default is
// the literal "0".
func restoreFromEnv() bool {
	v := os.Getenv("FACTORY_DEFAULTS")
	return v != "" && v != "0"
}
