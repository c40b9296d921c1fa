package auditlog

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one line of the tournament activity log.
type Entry struct {
	Message   string
	Timestamp time.Time
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Errorf("log message is required")
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("log timestamp is required")
	}

	return nil
}
