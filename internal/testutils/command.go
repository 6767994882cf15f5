package testutils

import (
	"fmt"
	"os"
	"slices"
)

// SetupFakeCmdArgs returns the arguments to run the test binary as a fake
// command implemented by the test function named testName.
func SetupFakeCmdArgs(testName string, args ...string) []string {
	cmdArgs := []string{os.Args[0], fmt.Sprintf("-test.run=^%s$", testName), "--"}
	return append(cmdArgs, args...)
}

// GetFakeCmdArgs returns the arguments passed to a fake command.
// It errors if the current process is not running as a fake command.
func GetFakeCmdArgs() ([]string, error) {
	sep := slices.Index(os.Args, "--")
	if sep == -1 || sep == len(os.Args)-1 {
		return nil, fmt.Errorf("not running as a fake command")
	}
	return os.Args[sep+1:], nil
}

// SetupHelperCoverdir creates a subdirectory of GOCOVERDIR for fake commands
// so that their coverage data does not collide with the parent test binary's.
// It returns false if coverage is not enabled.
func SetupHelperCoverdir() (string, bool) {
	dir, ok := os.LookupEnv("GOCOVERDIR")
	if !ok {
		return dir, ok
	}

	dir, err := os.MkdirTemp(dir, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Setup: could not create subdirectory for helper coverage: %v", err)
		os.Exit(1)
	}
	os.Setenv("GOCOVERDIR", dir)
	return dir, ok
}
