package telemetry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/stackctl/stackctl/pkg/paths"
)

// getUserUUIDFilePath returns the path to the user UUID file
func getUserUUIDFilePath() string {
	return filepath.Join(paths.GetConfigDir(), "user-uuid")
}

// getUserUUID gets or creates a persistent, random installation UUID
func getUserUUID() string {
	return getUserUUIDFrom(getUserUUIDFilePath())
}

func getUserUUIDFrom(uuidFile string) string {
	if data, err := os.ReadFile(uuidFile); err == nil {
		if existing := strings.TrimSpace(string(data)); existing != "" {
			if _, err := uuid.Parse(existing); err == nil {
				return existing
			}
		}
	}

	newUUID := uuid.New().String()
	// If we can't save, still return a UUID for this session
	// but it won't persist across runs
	_ = saveUserUUID(uuidFile, newUUID)
	return newUUID
}

func saveUserUUID(uuidFile, newUUID string) error {
	if err := os.MkdirAll(filepath.Dir(uuidFile), 0o755); err != nil {
		return err
	}
	// readable only by user
	return os.WriteFile(uuidFile, []byte(newUUID), 0o600)
}
