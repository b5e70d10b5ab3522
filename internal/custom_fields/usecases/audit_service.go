package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

//go:generate mockgen -source=audit_service.go -destination=../../../test/unit/doubles/custom_fields/usecases/audit_service_mock.go -package=usecases -mock_names=AuditService=MockAuditService

type AuditService interface {
	Record(ctx context.Context, change domain.ValueChange) error
	// List returns the entries of an entity newest first; an empty fieldID matches every field.
	List(ctx context.Context, entityID, fieldID shareddomain.ID, pagination Pagination) ([]domain.AuditEntry, int, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
}

func NewAuditService(repository AuditRepository) *SimpleAuditService {
	return &SimpleAuditService{repository: repository}
}

var _ AuditService = (*SimpleAuditService)(nil)

type SimpleAuditService struct {
	repository AuditRepository
}

func (s *SimpleAuditService) Record(ctx context.Context, change domain.ValueChange) error {
	if change.IsNoop() {
		return nil
	}

	entry := change.ToAuditEntry()
	if err := s.repository.Create(ctx, entry); err != nil {
		slog.Error("recording audit entry",
			slog.String("entity_id", change.EntityID.String()),
			slog.String("field_id", change.FieldID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("recording audit entry: %w", err)
	}

	return nil
}

func (s *SimpleAuditService) List(ctx context.Context, entityID, fieldID shareddomain.ID, pagination Pagination) ([]domain.AuditEntry, int, error) {
	entries, total, err := s.repository.FindByEntity(ctx, entityID, fieldID, pagination)
	if err != nil {
		slog.Error("listing audit entries", slog.String("entity_id", entityID.String()), slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing audit entries: %w", err)
	}

	return entries, total, nil
}

func (s *SimpleAuditService) Prune(ctx context.Context, before time.Time) (int64, error) {
	deleted, err := s.repository.DeleteOlderThan(ctx, before)
	if err != nil {
		slog.Error("pruning audit entries", slog.String("error", err.Error()))
		return 0, fmt.Errorf("pruning audit entries: %w", err)
	}

	slog.Info("audit entries pruned", slog.Int64("deleted", deleted), slog.Time("before", before))
	return deleted, nil
}
