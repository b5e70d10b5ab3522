package usecases_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/usecases"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

var errConnectionReset = errors.New("connection reset by peer")

type storeWrite struct {
	EntityID shareddomain.ID
	Pairs    []domain.FieldValuePair
}

// fakeValueStore answers reads with the data present when the read started,
// so a gated read returns what was stored before any later write.
type fakeValueStore struct {
	mu          sync.Mutex
	data        map[shareddomain.ID]map[shareddomain.ID]domain.Value
	reads       map[shareddomain.ID]int
	readErr     map[shareddomain.ID]error
	readGate    chan struct{}
	readCtxErrs []error

	// activeReads counts reads of an entity not answered yet; peakReads
	// keeps the highest count seen.
	activeReads map[shareddomain.ID]int
	peakReads   map[shareddomain.ID]int

	writes    []storeWrite
	writeErr  error
	writeGate chan struct{}
	// failAfter stores that many pairs of a batch before failing with writeErr.
	// Both are captured when a write arrives.
	failAfter int
}

var _ usecases.ValueStore = (*fakeValueStore)(nil)

func newFakeValueStore() *fakeValueStore {
	return &fakeValueStore{
		data:        make(map[shareddomain.ID]map[shareddomain.ID]domain.Value),
		reads:       make(map[shareddomain.ID]int),
		readErr:     make(map[shareddomain.ID]error),
		activeReads: make(map[shareddomain.ID]int),
		peakReads:   make(map[shareddomain.ID]int),
	}
}

func (s *fakeValueStore) seed(entityID, fieldID shareddomain.ID, value domain.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[entityID] == nil {
		s.data[entityID] = make(map[shareddomain.ID]domain.Value)
	}
	s.data[entityID][fieldID] = value
}

func (s *fakeValueStore) stored(entityID, fieldID shareddomain.ID) domain.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[entityID][fieldID]
}

func (s *fakeValueStore) gateReads() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readGate = make(chan struct{})
	return s.readGate
}

func (s *fakeValueStore) gateWrites() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeGate = make(chan struct{})
	return s.writeGate
}

func (s *fakeValueStore) failReads(entityID shareddomain.ID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.readErr, entityID)
		return
	}
	s.readErr[entityID] = err
}

func (s *fakeValueStore) failWrites(err error, afterPairs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
	s.failAfter = afterPairs
}

func (s *fakeValueStore) Reads(entityID shareddomain.ID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[entityID]
}

func (s *fakeValueStore) PeakConcurrentReads(entityID shareddomain.ID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peakReads[entityID]
}

func (s *fakeValueStore) Writes() []storeWrite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.writes)
}

// ReadContextErrors reports the context error each read saw when it returned.
func (s *fakeValueStore) ReadContextErrors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.readCtxErrs)
}

func (s *fakeValueStore) GetForEntity(ctx context.Context, entityID shareddomain.ID) (map[shareddomain.ID]domain.Value, error) {
	s.mu.Lock()
	s.reads[entityID]++
	s.activeReads[entityID]++
	s.peakReads[entityID] = max(s.peakReads[entityID], s.activeReads[entityID])
	snapshot := maps.Clone(s.data[entityID])
	err := s.readErr[entityID]
	gate := s.readGate
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	s.activeReads[entityID]--
	s.readCtxErrs = append(s.readCtxErrs, ctx.Err())
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		snapshot = map[shareddomain.ID]domain.Value{}
	}
	return snapshot, nil
}

func (s *fakeValueStore) SetMany(_ context.Context, entityID shareddomain.ID, pairs []domain.FieldValuePair) error {
	s.mu.Lock()
	s.writes = append(s.writes, storeWrite{EntityID: entityID, Pairs: slices.Clone(pairs)})
	gate := s.writeGate
	writeErr, failAfter := s.writeErr, s.failAfter
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[entityID] == nil {
		s.data[entityID] = make(map[shareddomain.ID]domain.Value)
	}
	for i, pair := range pairs {
		if writeErr != nil && i >= failAfter {
			return writeErr
		}
		s.data[entityID][pair.FieldID] = pair.Value
	}
	return writeErr
}

type fakeDefinitionStore struct {
	mu     sync.Mutex
	fields []domain.FieldDefinition
	lists  int
}

var _ usecases.DefinitionStore = (*fakeDefinitionStore)(nil)

func newFakeDefinitionStore(fields ...domain.FieldDefinition) *fakeDefinitionStore {
	return &fakeDefinitionStore{fields: fields}
}

func (s *fakeDefinitionStore) Lists() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists
}

func (s *fakeDefinitionStore) List(_ context.Context, tenantID shareddomain.ID) ([]domain.FieldDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++

	result := make([]domain.FieldDefinition, 0, len(s.fields))
	for _, field := range s.fields {
		if field.TenantID == tenantID && !field.IsDeleted() {
			result = append(result, field)
		}
	}
	return result, nil
}

func (s *fakeDefinitionStore) Create(_ context.Context, spec domain.FieldDefinitionSpec) (domain.FieldDefinition, error) {
	field, err := domain.NewFieldDefinitionBuilder().FromSpec(spec).Build()
	if err != nil {
		return domain.FieldDefinition{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields = append(s.fields, field)
	return field, nil
}

func (s *fakeDefinitionStore) Update(_ context.Context, id shareddomain.ID, patch domain.FieldDefinitionPatch) (domain.FieldDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, field := range s.fields {
		if field.ID != id || field.IsDeleted() {
			continue
		}
		updated, err := patch.Apply(field)
		if err != nil {
			return domain.FieldDefinition{}, err
		}
		s.fields[i] = updated
		return updated, nil
	}
	return domain.FieldDefinition{}, domain.NotFoundError{Resource: "custom field", ID: id, Err: usecases.ErrFieldNotFound}
}

func (s *fakeDefinitionStore) Delete(_ context.Context, id shareddomain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.fields {
		if s.fields[i].ID == id && !s.fields[i].IsDeleted() {
			s.fields[i].SoftDelete()
			return nil
		}
	}
	return domain.NotFoundError{Resource: "custom field", ID: id, Err: usecases.ErrFieldNotFound}
}
