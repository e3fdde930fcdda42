// Package version provides build version information and runtime metadata.
package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Name is the binary name reported by Info.
const Name = "reportbot"

// gitTimeout bounds each git lookup so a hung repository never blocks startup.
const gitTimeout = 2 * time.Second

var (
	// These are set via ldflags at build time
	Version = ""
	Commit  = ""
	Date    = ""

	once sync.Once

	execCommand = exec.CommandContext
)

// reset clears lazily resolved values so they are computed again.
// Values injected through ldflags are cleared as well.
func reset() {
	Version, Commit, Date = "", "", ""
	once = sync.Once{}
}

func ensureInitialized() {
	once.Do(func() {
		if Date == "" {
			Date = time.Now().Format("2006-01-02")
		}
		if Commit == "" {
			Commit = gitCommit()
		}
		if Version == "" {
			Version = gitVersion()
		}
	})
}

func runGit(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	cmd := execCommand(ctx, "git", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

func gitCommit() string {
	out, err := runGit("describe", "--always", "--dirty")
	if err != nil || out == "" {
		return "unknown"
	}
	return out
}

func gitVersion() string {
	out, err := runGit("describe", "--tags", "--abbrev=0")
	if err != nil || out == "" {
		return "dev"
	}
	return strings.TrimPrefix(out, "v")
}

// GetVersion returns the release version, "dev" outside a tagged checkout.
func GetVersion() string {
	ensureInitialized()
	return Version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	ensureInitialized()
	return Commit
}

// GetDate returns the build date.
func GetDate() string {
	ensureInitialized()
	return Date
}

// Info returns a one-line description used by the version command and the
// startup log.
func Info() string {
	ensureInitialized()
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s/%s)",
		Name, Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
