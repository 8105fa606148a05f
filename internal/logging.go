// Package internal holds process-level plumbing shared by the binaries.
package internal

import (
	"log"
	"os"
)

// InitLogging routes the standard logger to stdout with microsecond
// timestamps. The loaders and feed caches log through the default logger,
// so this must run before the store is opened.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
