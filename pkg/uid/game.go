package uid

import "github.com/google/uuid"

// GenerateGameID returns a random (v4) UUID used as a game handle
func GenerateGameID() string {
	return uuid.NewString()
}

// IsGameID reports whether id has the shape of a handle from GenerateGameID.
func IsGameID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
