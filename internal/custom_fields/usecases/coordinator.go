package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/validation"
	"prospectar-server/internal/custom_fields/visibility"
	"prospectar-server/internal/infra/utils"
	shareddomain "prospectar-server/internal/shared_kernel/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"
)

const (
	_defaultFetchTimeout = 10 * time.Second

	_metricKeyLoads          = "loads"
	_metricKeyCoalescedLoads = "coalesced_loads"
	_metricKeyWriteRollbacks = "write_rollbacks"
)

type EntryStatus string

const (
	StatusEmpty   EntryStatus = "empty"
	StatusLoading EntryStatus = "loading"
	StatusReady   EntryStatus = "ready"
	StatusError   EntryStatus = "error"
)

// Snapshot is a copy of an entity's cache entry; mutating it changes nothing.
type Snapshot struct {
	EntityID     shareddomain.ID
	Status       EntryStatus
	Values       map[shareddomain.ID]domain.Value
	Err          error
	LastLoadedAt time.Time
}

// Value returns the cached value of a field, null when absent.
func (s Snapshot) Value(fieldID shareddomain.ID) domain.Value {
	return s.Values[fieldID]
}

// FieldView pairs a definition with the entity's current value for it.
type FieldView struct {
	Field domain.FieldDefinition
	Value domain.Value
}

type CoordinatorConfig struct {
	TenantID     shareddomain.ID
	FetchTimeout time.Duration
}

// fetch is one request to the value store shared by every coalesced caller.
type fetch struct {
	token  string
	done   chan struct{}
	values map[shareddomain.ID]domain.Value
	err    error

	// unacknowledged holds the fields with writes in flight when the fetch
	// started; the response may predate them.
	unacknowledged map[shareddomain.ID]struct{}
}

type cacheEntry struct {
	status       EntryStatus
	values       map[shareddomain.ID]domain.Value
	err          error
	lastLoadedAt time.Time

	inFlight       *fetch
	refreshPending bool

	// clock orders loads and writes of this entity. writtenAt keeps the
	// clock of the latest local write per field, pending the writes not
	// yet acknowledged by the store.
	clock     uint64
	writtenAt map[shareddomain.ID]uint64
	pending   map[shareddomain.ID]int
}

func newCacheEntry() *cacheEntry {
	return &cacheEntry{
		status:    StatusEmpty,
		values:    make(map[shareddomain.ID]domain.Value),
		writtenAt: make(map[shareddomain.ID]uint64),
		pending:   make(map[shareddomain.ID]int),
	}
}

// Coordinator owns every cached value of a session. Loads of one entity are
// coalesced into a single store request, writes are applied optimistically
// and reach the store in issue order, and a failed write is rolled back.
// Entities never share state or locks beyond the entry map.
type Coordinator struct {
	definitions DefinitionStore
	values      ValueStore
	config      CoordinatorConfig

	mu      sync.Mutex
	entries map[shareddomain.ID]*cacheEntry

	// writeTails and fetches survive Evict, so a new entry of an entity
	// still queues behind the requests of the evicted one. A write tail is
	// closed once the last queued write finished.
	writeTails map[shareddomain.ID]chan struct{}
	fetches    map[shareddomain.ID]*fetch

	definitionsMu         sync.RWMutex
	definitionsCache      []domain.FieldDefinition
	definitionsLoaded     bool
	definitionsGeneration uint64
	definitionsGroup      singleflight.Group

	metricCounters map[string]metric.Int64Counter
}

func NewCoordinator(definitions DefinitionStore, values ValueStore, config CoordinatorConfig) *Coordinator {
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = _defaultFetchTimeout
	}

	c := &Coordinator{
		definitions:    definitions,
		values:         values,
		config:         config,
		entries:        make(map[shareddomain.ID]*cacheEntry),
		writeTails:     make(map[shareddomain.ID]chan struct{}),
		fetches:        make(map[shareddomain.ID]*fetch),
		metricCounters: make(map[string]metric.Int64Counter),
	}
	c.setupOtelCounters()
	return c
}

func (c *Coordinator) setupOtelCounters() {
	meter := otel.Meter("prospectar_server")
	for key, description := range map[string]string{
		_metricKeyLoads:          "custom field value loads sent to the store",
		_metricKeyCoalescedLoads: "custom field value loads served by an in-flight request",
		_metricKeyWriteRollbacks: "optimistic custom field writes rolled back",
	} {
		counter, _ := meter.Int64Counter(
			fmt.Sprintf("%s.%s.%s", "prospectar_server", "custom_fields", key),
			metric.WithDescription(description),
		)
		c.metricCounters[key] = counter
	}
}

func (c *Coordinator) count(ctx context.Context, key string) {
	if counter, ok := c.metricCounters[key]; ok && counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(attribute.String("tenant_id", c.config.TenantID.String())))
	}
}

// Load returns the cached values of an entity, fetching them on first use.
// A load issued while another is in flight waits for the same request. An
// entity in error keeps failing with the same error until Retry.
func (c *Coordinator) Load(ctx context.Context, entityID shareddomain.ID) (map[shareddomain.ID]domain.Value, error) {
	c.mu.Lock()
	entry := c.entryFor(entityID)

	switch entry.status {
	case StatusReady:
		values := maps.Clone(entry.values)
		c.mu.Unlock()
		return values, nil
	case StatusError:
		err := entry.err
		c.mu.Unlock()
		return nil, err
	case StatusLoading:
		f := entry.inFlight
		c.mu.Unlock()
		c.count(ctx, _metricKeyCoalescedLoads)
		return c.wait(ctx, f)
	default:
		f := c.startFetch(ctx, entityID, entry, false)
		c.mu.Unlock()
		return c.wait(ctx, f)
	}
}

// Reload fetches the entity again whatever its status. It joins a request
// already in flight instead of issuing a second one.
func (c *Coordinator) Reload(ctx context.Context, entityID shareddomain.ID) (map[shareddomain.ID]domain.Value, error) {
	c.mu.Lock()
	entry := c.entryFor(entityID)

	if f := entry.inFlight; f != nil {
		entry.status = StatusLoading
		c.mu.Unlock()
		c.count(ctx, _metricKeyCoalescedLoads)
		return c.wait(ctx, f)
	}

	f := c.startFetch(ctx, entityID, entry, false)
	c.mu.Unlock()
	return c.wait(ctx, f)
}

// Retry is the user-triggered recovery of a failed load. It is idempotent:
// retrying an entity that is loading or ready behaves like Reload.
func (c *Coordinator) Retry(ctx context.Context, entityID shareddomain.ID) (map[shareddomain.ID]domain.Value, error) {
	return c.Reload(ctx, entityID)
}

// Set writes one field. See SetMany.
func (c *Coordinator) Set(ctx context.Context, entityID, fieldID shareddomain.ID, value domain.Value) error {
	return c.SetMany(ctx, entityID, []domain.FieldValuePair{{FieldID: fieldID, Value: value}})
}

// SetMany validates the pairs, applies them to the cache at once and sends
// them to the store after every earlier write of the entity. When the store
// fails the pairs not overwritten since are restored, the entity is
// re-read in the background and a domain.WriteError is returned.
func (c *Coordinator) SetMany(ctx context.Context, entityID shareddomain.ID, pairs []domain.FieldValuePair) error {
	if len(pairs) == 0 {
		return nil
	}

	fields, err := c.Definitions(ctx)
	if err != nil {
		return err
	}
	if err := validation.ValidateAll(fields, pairs); err != nil {
		return err
	}

	c.mu.Lock()
	entry := c.entryFor(entityID)

	entry.clock++
	writeClock := entry.clock
	previous := make(map[shareddomain.ID]*domain.Value, len(pairs))
	for _, pair := range pairs {
		if _, seen := previous[pair.FieldID]; !seen {
			if old, found := entry.values[pair.FieldID]; found {
				previous[pair.FieldID] = &old
			} else {
				previous[pair.FieldID] = nil
			}
		}
		entry.values[pair.FieldID] = pair.Value
		entry.writtenAt[pair.FieldID] = writeClock
		entry.pending[pair.FieldID]++
	}

	waitFor := c.writeTails[entityID]
	finished := make(chan struct{})
	c.writeTails[entityID] = finished
	c.mu.Unlock()

	var writeErr error
	go func() {
		defer func() {
			c.mu.Lock()
			if c.writeTails[entityID] == finished {
				delete(c.writeTails, entityID)
			}
			c.mu.Unlock()
			close(finished)
		}()
		if waitFor != nil {
			<-waitFor
		}

		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.config.FetchTimeout)
		defer cancel()

		err := c.values.SetMany(writeCtx, entityID, pairs)
		c.completeWrite(writeCtx, entityID, entry, pairs, previous, writeClock, err)
		writeErr = err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-finished:
	}

	if writeErr == nil {
		return nil
	}

	var notFound domain.NotFoundError
	if errors.As(writeErr, &notFound) {
		c.InvalidateDefinitions()
	}
	var existing domain.WriteError
	if errors.As(writeErr, &existing) {
		return existing
	}
	return domain.WriteError{EntityID: entityID, Err: writeErr}
}

func (c *Coordinator) completeWrite(
	ctx context.Context,
	entityID shareddomain.ID,
	entry *cacheEntry,
	pairs []domain.FieldValuePair,
	previous map[shareddomain.ID]*domain.Value,
	writeClock uint64,
	err error,
) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, pair := range pairs {
		entry.pending[pair.FieldID]--
		if entry.pending[pair.FieldID] <= 0 {
			delete(entry.pending, pair.FieldID)
		}
	}

	if err == nil {
		return
	}

	slog.Warn("custom field write failed, rolling back",
		slog.String("entity_id", entityID.String()),
		slog.String("error", err.Error()))
	c.count(ctx, _metricKeyWriteRollbacks)

	for fieldID, old := range previous {
		if entry.writtenAt[fieldID] != writeClock {
			continue
		}
		if old == nil {
			delete(entry.values, fieldID)
		} else {
			entry.values[fieldID] = *old
		}
	}

	if c.entries[entityID] != entry {
		return
	}
	if entry.inFlight != nil {
		entry.refreshPending = true
		return
	}
	c.startFetch(ctx, entityID, entry, true)
}

// GetSnapshot never fetches; an unknown entity reports StatusEmpty.
func (c *Coordinator) GetSnapshot(entityID shareddomain.ID) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.entries[entityID]
	if !found {
		return Snapshot{EntityID: entityID, Status: StatusEmpty, Values: map[shareddomain.ID]domain.Value{}}
	}

	return Snapshot{
		EntityID:     entityID,
		Status:       entry.status,
		Values:       maps.Clone(entry.values),
		Err:          entry.err,
		LastLoadedAt: entry.lastLoadedAt,
	}
}

// VisibleFieldsFor loads the entity when needed and returns the fields shown
// in tab, in definition order, with their values.
func (c *Coordinator) VisibleFieldsFor(ctx context.Context, entityID shareddomain.ID, tab domain.Tab) ([]FieldView, error) {
	fields, err := c.Definitions(ctx)
	if err != nil {
		return nil, err
	}

	values, err := c.Load(ctx, entityID)
	if err != nil {
		return nil, err
	}

	visible := visibility.VisibleFields(fields, tab)
	views := make([]FieldView, 0, len(visible))
	for _, field := range visible {
		views = append(views, FieldView{Field: field, Value: values[field.ID]})
	}
	return views, nil
}

// Evict forgets an entity. Requests in flight for it still complete but no
// longer touch the cache; later requests of the entity wait for them.
func (c *Coordinator) Evict(entityID shareddomain.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, entityID)
}

// Definitions returns the tenant's definitions, listing them once per
// session until invalidated.
func (c *Coordinator) Definitions(ctx context.Context) ([]domain.FieldDefinition, error) {
	c.definitionsMu.RLock()
	if c.definitionsLoaded {
		fields := c.definitionsCache
		c.definitionsMu.RUnlock()
		return fields, nil
	}
	generation := c.definitionsGeneration
	c.definitionsMu.RUnlock()

	result, err, _ := c.definitionsGroup.Do(fmt.Sprint(generation), func() (any, error) {
		listCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.config.FetchTimeout)
		defer cancel()

		fields, err := c.definitions.List(listCtx, c.config.TenantID)
		if err != nil {
			return nil, err
		}

		c.definitionsMu.Lock()
		if c.definitionsGeneration == generation {
			c.definitionsCache = fields
			c.definitionsLoaded = true
		}
		c.definitionsMu.Unlock()
		return fields, nil
	})
	if err != nil {
		slog.Error("listing custom field definitions", slog.String("error", err.Error()))
		return nil, err
	}

	return result.([]domain.FieldDefinition), nil
}

// InvalidateDefinitions makes the next read list the definitions again.
func (c *Coordinator) InvalidateDefinitions() {
	c.definitionsMu.Lock()
	defer c.definitionsMu.Unlock()

	c.definitionsGeneration++
	c.definitionsLoaded = false
	c.definitionsCache = nil
}

func (c *Coordinator) CreateDefinition(ctx context.Context, spec domain.FieldDefinitionSpec) (domain.FieldDefinition, error) {
	if spec.TenantID.IsZero() {
		spec.TenantID = c.config.TenantID
	}

	field, err := c.definitions.Create(ctx, spec)
	if err != nil {
		return domain.FieldDefinition{}, err
	}
	c.InvalidateDefinitions()
	return field, nil
}

func (c *Coordinator) UpdateDefinition(ctx context.Context, id shareddomain.ID, patch domain.FieldDefinitionPatch) (domain.FieldDefinition, error) {
	field, err := c.definitions.Update(ctx, id, patch)
	var notFound domain.NotFoundError
	if err == nil || errors.As(err, &notFound) {
		c.InvalidateDefinitions()
	}
	return field, err
}

func (c *Coordinator) DeleteDefinition(ctx context.Context, id shareddomain.ID) error {
	err := c.definitions.Delete(ctx, id)
	var notFound domain.NotFoundError
	if err == nil || errors.As(err, &notFound) {
		c.InvalidateDefinitions()
	}
	return err
}

// entryFor must be called with c.mu held.
func (c *Coordinator) entryFor(entityID shareddomain.ID) *cacheEntry {
	entry, found := c.entries[entityID]
	if !found {
		entry = newCacheEntry()
		c.entries[entityID] = entry
	}
	return entry
}

// startFetch must be called with c.mu held. A silent fetch leaves a ready
// entry ready whatever its outcome. A fetch still running for an evicted
// entry of the same entity is awaited before the store is queried.
func (c *Coordinator) startFetch(ctx context.Context, entityID shareddomain.ID, entry *cacheEntry, silent bool) *fetch {
	f := &fetch{
		token:          utils.GenerateUUID(),
		done:           make(chan struct{}),
		unacknowledged: make(map[shareddomain.ID]struct{}, len(entry.pending)),
	}
	for fieldID := range entry.pending {
		f.unacknowledged[fieldID] = struct{}{}
	}
	previous := c.fetches[entityID]
	c.fetches[entityID] = f
	entry.inFlight = f
	if !silent || entry.status != StatusReady {
		entry.status = StatusLoading
	}
	startClock := entry.clock

	c.count(ctx, _metricKeyLoads)
	slog.Debug("loading custom field values",
		slog.String("entity_id", entityID.String()),
		slog.String("token", f.token),
		slog.Bool("silent", silent))

	detached := context.WithoutCancel(ctx)
	go func() {
		if previous != nil {
			<-previous.done
		}

		fetchCtx, cancel := context.WithTimeout(detached, c.config.FetchTimeout)
		defer cancel()
		values, err := c.values.GetForEntity(fetchCtx, entityID)
		c.completeFetch(fetchCtx, entityID, entry, f, startClock, silent, values, err)
	}()

	return f
}

func (c *Coordinator) completeFetch(
	ctx context.Context,
	entityID shareddomain.ID,
	entry *cacheEntry,
	f *fetch,
	startClock uint64,
	silent bool,
	values map[shareddomain.ID]domain.Value,
	err error,
) {
	c.mu.Lock()
	defer func() {
		c.mu.Unlock()
		close(f.done)
	}()

	if entry.inFlight == f {
		entry.inFlight = nil
	}
	if c.fetches[entityID] == f {
		delete(c.fetches, entityID)
	}

	if err != nil {
		slog.Error("loading custom field values",
			slog.String("entity_id", entityID.String()),
			slog.String("token", f.token),
			slog.String("error", err.Error()))
		f.err = err

		if silent && entry.status == StatusReady {
			entry.refreshPending = false
			return
		}
		entry.status = StatusError
		entry.err = err
		entry.refreshPending = false
		return
	}

	merged := make(map[shareddomain.ID]domain.Value, len(values))
	maps.Copy(merged, values)
	for fieldID, writeClock := range entry.writtenAt {
		_, unacknowledged := f.unacknowledged[fieldID]
		if writeClock <= startClock && !unacknowledged && entry.pending[fieldID] == 0 {
			continue
		}
		if local, found := entry.values[fieldID]; found {
			merged[fieldID] = local
		} else {
			delete(merged, fieldID)
		}
	}

	entry.values = merged
	entry.status = StatusReady
	entry.err = nil
	entry.lastLoadedAt = time.Now()
	f.values = maps.Clone(merged)

	if entry.refreshPending && c.entries[entityID] == entry {
		entry.refreshPending = false
		c.startFetch(ctx, entityID, entry, true)
	}
}

func (c *Coordinator) wait(ctx context.Context, f *fetch) (map[shareddomain.ID]domain.Value, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
	}

	if f.err != nil {
		return nil, f.err
	}
	return maps.Clone(f.values), nil
}
