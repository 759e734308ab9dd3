// Package steplog emits structured records for pipeline steps. The command
// echo on stderr is the user-facing contract; these records are diagnostics
// and stay at debug level unless PYCTL_LOG_LEVEL raises them.
package steplog

import (
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Init configures the logger from PYCTL_LOG_LEVEL (default info).
func Init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	lvl := strings.TrimSpace(os.Getenv("PYCTL_LOG_LEVEL"))
	if lvl == "" {
		return
	}
	if level, err := log.ParseLevel(lvl); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("invalid log level %s, defaulting to info", lvl)
	}
}

// Started records the launch of a pipeline step.
func Started(tool string, args []string) {
	log.WithFields(log.Fields{"tool": tool, "args": strings.Join(args, " ")}).Debug("step started")
}

// Finished records a completed step with its exit code and duration.
func Finished(tool string, code int, d time.Duration) {
	entry := log.WithFields(log.Fields{"tool": tool, "code": code, "duration": d.Round(time.Millisecond).String()})
	if code != 0 {
		entry.Warn("step failed")
		return
	}
	entry.Debug("step finished")
}

// Skipped records a step bypassed by dry-run mode.
func Skipped(tool string) {
	log.WithField("tool", tool).Debug("step skipped (dry run)")
}
