package version

import "fmt"

// ColorsatVersion is set at build time with -ldflags.
var ColorsatVersion string

// GitCommit indicates which git commit the binary was built from
var GitCommit string

// String returns ColorsatVersion and GitCommit as two lines, with
// "unknown" standing in for either when unset.
func String() string {
	return fmt.Sprintf("colorsat version: %s\ngit commit:       %s\n", orUnknown(ColorsatVersion), orUnknown(GitCommit))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
