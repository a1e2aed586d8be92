// Package shared holds small helpers used across domain packages.
package shared

import (
	"strconv"
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewRecordID returns a millisecond-timestamp identifier, the format used by
// all previously stored records. Consecutive calls within the same
// millisecond are bumped forward so ids stay unique for the lifetime of the
// process.
func NewRecordID() string {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}
