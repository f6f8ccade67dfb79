// Package id provides unique identifier generation for temporary artifacts.
package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generate creates a new unique identifier carrying the given prefix.
// Format: <prefix>-<timestamp>-<random>
// Example: merge-1701432000-a1b2c3d4e5f6
func Generate(prefix string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().Unix(), random)
}
