package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/group-stage/internal/domain/auditlog"
	"github.com/riskibarqy/group-stage/internal/platform/logging"
)

// AuditRecorder stores a human readable line about a completed mutation.
type AuditRecorder interface {
	Record(ctx context.Context, message string) (auditlog.Entry, error)
}

type AuditLogService struct {
	repo auditlog.Repository
	now  func() time.Time
}

func NewAuditLogService(repo auditlog.Repository) *AuditLogService {
	return &AuditLogService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *AuditLogService) Record(ctx context.Context, message string) (auditlog.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuditLogService.Record")
	defer span.End()

	entry := auditlog.Entry{
		Message:   strings.TrimSpace(message),
		Timestamp: s.now().UTC(),
	}
	if err := entry.Validate(); err != nil {
		return auditlog.Entry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return auditlog.Entry{}, fmt.Errorf("create log entry: %w", err)
	}

	return entry, nil
}

func (s *AuditLogService) List(ctx context.Context) ([]auditlog.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuditLogService.List")
	defer span.End()

	items, err := s.repo.ListLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}

	return items, nil
}

type noopAuditRecorder struct{}

func (noopAuditRecorder) Record(_ context.Context, message string) (auditlog.Entry, error) {
	return auditlog.Entry{Message: message}, nil
}

// recordAudit never fails the caller; a lost audit line is only logged.
func recordAudit(ctx context.Context, recorder AuditRecorder, logger *logging.Logger, message string) {
	if _, err := recorder.Record(ctx, message); err != nil {
		logger.WarnContext(ctx, "record audit log failed", "message", message, "error", err)
	}
}
