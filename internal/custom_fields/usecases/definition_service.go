package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/infra/cache"
	"prospectar-server/internal/infra/utils"
	shareddomain "prospectar-server/internal/shared_kernel/domain"

	"github.com/vmihailenco/msgpack/v5"
)

//go:generate mockgen -source=definition_service.go -destination=../../../test/unit/doubles/custom_fields/usecases/definition_service_mock.go -package=usecases -mock_names=FieldDefinitionService=MockFieldDefinitionService

const (
	_definitionsKeyPrefix   = "custom_fields:definitions"
	_defaultDefinitionsTTL  = 5 * time.Minute
	_generationKeyTTL       = 24 * time.Hour
	_fieldDefinitionsEntity = "custom field"
)

type FieldDefinitionService interface {
	DefinitionStore
	Get(ctx context.Context, id shareddomain.ID) (domain.FieldDefinition, error)
	// Invalidate drops the cached definition list of a tenant.
	Invalidate(ctx context.Context, tenantID shareddomain.ID)
}

func NewFieldDefinitionService(repository FieldDefinitionRepository, definitionsCache cache.Cache, ttl time.Duration) *SimpleFieldDefinitionService {
	if ttl <= 0 {
		ttl = _defaultDefinitionsTTL
	}

	return &SimpleFieldDefinitionService{
		repository: repository,
		cache:      definitionsCache,
		ttl:        ttl,
	}
}

var _ FieldDefinitionService = (*SimpleFieldDefinitionService)(nil)

// SimpleFieldDefinitionService caches the definition list of each tenant
// under a generation token. Every mutation replaces the token, so a list
// loaded concurrently with a mutation lands on a key nobody reads again.
type SimpleFieldDefinitionService struct {
	repository FieldDefinitionRepository
	cache      cache.Cache
	ttl        time.Duration
}

func (s *SimpleFieldDefinitionService) List(ctx context.Context, tenantID shareddomain.ID) ([]domain.FieldDefinition, error) {
	key := fmt.Sprintf("%s:%s:%s", _definitionsKeyPrefix, tenantID, s.generation(ctx, tenantID))

	data, err := s.cache.GetOrSet(ctx, key, s.ttl, func(loadCtx context.Context) ([]byte, error) {
		fields, err := s.repository.FindAllByTenant(loadCtx, tenantID)
		if err != nil {
			return nil, err
		}
		return msgpack.Marshal(fields)
	})
	if err != nil {
		slog.Error("listing custom fields", slog.String("tenant_id", tenantID.String()), slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing custom fields: %w", err)
	}

	var fields []domain.FieldDefinition
	if err := msgpack.Unmarshal(data, &fields); err != nil {
		slog.Error("decoding cached custom fields", slog.String("error", err.Error()))
		return nil, fmt.Errorf("decoding cached custom fields: %w", err)
	}

	return fields, nil
}

func (s *SimpleFieldDefinitionService) Get(ctx context.Context, id shareddomain.ID) (domain.FieldDefinition, error) {
	field, err := s.repository.GetByID(ctx, id)
	if errors.Is(err, ErrFieldNotFound) {
		return domain.FieldDefinition{}, domain.NotFoundError{Resource: _fieldDefinitionsEntity, ID: id, Err: ErrFieldNotFound}
	}
	if err != nil {
		slog.Error("getting custom field", slog.String("id", id.String()), slog.String("error", err.Error()))
		return domain.FieldDefinition{}, fmt.Errorf("getting custom field: %w", err)
	}

	if field.IsDeleted() {
		return domain.FieldDefinition{}, domain.NotFoundError{Resource: _fieldDefinitionsEntity, ID: id, Err: ErrFieldDeleted}
	}

	return field, nil
}

func (s *SimpleFieldDefinitionService) Create(ctx context.Context, spec domain.FieldDefinitionSpec) (domain.FieldDefinition, error) {
	field, err := domain.NewFieldDefinitionBuilder().FromSpec(spec).Build()
	if err != nil {
		return domain.FieldDefinition{}, err
	}

	if err := s.repository.Create(ctx, field); err != nil {
		slog.Error("creating custom field", slog.String("error", err.Error()))
		return domain.FieldDefinition{}, fmt.Errorf("creating custom field: %w", err)
	}
	s.Invalidate(ctx, field.TenantID)

	slog.Info("custom field created",
		slog.String("id", field.ID.String()),
		slog.String("tenant_id", field.TenantID.String()),
		slog.String("type", field.Type.String()))

	return field, nil
}

func (s *SimpleFieldDefinitionService) Update(ctx context.Context, id shareddomain.ID, patch domain.FieldDefinitionPatch) (domain.FieldDefinition, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.FieldDefinition{}, err
	}

	updated, err := patch.Apply(current)
	if err != nil {
		return domain.FieldDefinition{}, err
	}

	if err := s.repository.Update(ctx, updated); err != nil {
		if errors.Is(err, ErrFieldNotFound) {
			return domain.FieldDefinition{}, domain.NotFoundError{Resource: _fieldDefinitionsEntity, ID: id, Err: err}
		}
		slog.Error("updating custom field", slog.String("id", id.String()), slog.String("error", err.Error()))
		return domain.FieldDefinition{}, fmt.Errorf("updating custom field: %w", err)
	}
	s.Invalidate(ctx, updated.TenantID)

	return updated, nil
}

// Delete is a soft delete; stored values are kept but no longer read.
func (s *SimpleFieldDefinitionService) Delete(ctx context.Context, id shareddomain.ID) error {
	field, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	field.SoftDelete()
	if err := s.repository.Update(ctx, field); err != nil {
		slog.Error("deleting custom field", slog.String("id", id.String()), slog.String("error", err.Error()))
		return fmt.Errorf("deleting custom field: %w", err)
	}
	s.Invalidate(ctx, field.TenantID)

	slog.Info("custom field deleted", slog.String("id", id.String()))
	return nil
}

// Invalidate drops the token first so a rejected Set still forces a fresh one.
func (s *SimpleFieldDefinitionService) Invalidate(ctx context.Context, tenantID shareddomain.ID) {
	s.cache.Delete(ctx, s.generationKey(tenantID))
	s.cache.Set(ctx, s.generationKey(tenantID), []byte(utils.GenerateUUID()), _generationKeyTTL)
}

func (s *SimpleFieldDefinitionService) generation(ctx context.Context, tenantID shareddomain.ID) string {
	if token, found := s.cache.Get(ctx, s.generationKey(tenantID)); found {
		return string(token)
	}

	token := []byte(utils.GenerateUUID())
	s.cache.Set(ctx, s.generationKey(tenantID), token, _generationKeyTTL)
	return string(token)
}

func (s *SimpleFieldDefinitionService) generationKey(tenantID shareddomain.ID) string {
	return fmt.Sprintf("%s:%s:generation", _definitionsKeyPrefix, tenantID)
}
