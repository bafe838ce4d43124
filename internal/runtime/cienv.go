package runtime

import (
	"fmt"
	"os"
)

// AppendCIEnv appends a KEY=value line to the file named by the given
// environment variable, the contract CI systems use to propagate
// environment into later workflow steps. A missing variable is a no-op.
func AppendCIEnv(envVar, key, value string) error {
	path := os.Getenv(envVar)
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s file: %w", envVar, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
		return fmt.Errorf("appending to %s file: %w", envVar, err)
	}
	return nil
}
