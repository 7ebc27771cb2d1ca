package config

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Build info, injected by ldflags, e.g. -X github.com/gaswhisperer/gaswhisperer/config.Version=v1.0.0
var (
	Version   string = "dev"
	GitCommit string

	BuildDate string
	BuildOS   string
	BuildArch string
)

func init() {
	BuildOS = runtime.GOOS
	BuildArch = runtime.GOARCH
}

func DumpVersionInfo() {
	strFormat := "%-12v%v\n"

	logrus.Infof(strFormat, "Version:", Version)
	logrus.Infof(strFormat, "Git Commit:", GitCommit)
	logrus.Infof(strFormat, "Build OS:", BuildOS)
	logrus.Infof(strFormat, "Build Arch:", BuildArch)
	logrus.Infof(strFormat, "Build Date:", BuildDate)
}

// VersionString returns the version with short git commit if available.
func VersionString() string {
	if len(GitCommit) >= 7 {
		return fmt.Sprintf("%v-%v", Version, GitCommit[:7])
	}

	return Version
}
