package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/group-stage/internal/domain/auditlog"
)

type AuditLogRepository struct {
	mu      sync.RWMutex
	entries []auditlog.Entry
}

func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

func (r *AuditLogRepository) Create(_ context.Context, entry auditlog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}

func (r *AuditLogRepository) ListLatest(_ context.Context) ([]auditlog.Entry, error) {
	r.mu.RLock()
	out := make([]auditlog.Entry, 0, len(r.entries))
	for idx := len(r.entries) - 1; idx >= 0; idx-- {
		out = append(out, r.entries[idx])
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	return out, nil
}
