package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/httpapi/internal"
	"prospectar-server/internal/custom_fields/usecases"
	"prospectar-server/internal/infra/httpserver"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

const (
	_defaultTimeout  = 15 * time.Second
	_maxErrorBody    = 4 << 10
	_fieldResource   = "custom field"
	_contactResource = "contact"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	// UserID is sent as X-User-ID unless the context carries an actor.
	UserID string
}

func New(config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = _defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		userID:     config.UserID,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

var (
	_ usecases.DefinitionStore = (*Client)(nil)
	_ usecases.ValueStore      = (*Client)(nil)
)

// Client reaches the definition and value stores through the HTTP API.
// Transport failures and 5xx replies surface as domain.NetworkError.
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

type call struct {
	op       string
	method   string
	path     string
	body     any
	resource string
	id       shareddomain.ID
}

func (c *Client) List(ctx context.Context, tenantID shareddomain.ID) ([]domain.FieldDefinition, error) {
	var response internal.CustomFieldListResponse
	err := c.do(ctx, call{
		op:     "list custom fields",
		method: http.MethodGet,
		path:   "/v1/custom-fields?tenant_id=" + url.QueryEscape(tenantID.String()),
	}, &response)
	if err != nil {
		return nil, err
	}

	fields := make([]domain.FieldDefinition, len(response.Fields))
	for i, field := range response.Fields {
		fields[i] = field.ToDefinition()
	}
	return fields, nil
}

func (c *Client) Get(ctx context.Context, id shareddomain.ID) (domain.FieldDefinition, error) {
	var response internal.CustomFieldResponse
	err := c.do(ctx, call{
		op:       "get custom field",
		method:   http.MethodGet,
		path:     "/v1/custom-fields/" + url.PathEscape(id.String()),
		resource: _fieldResource,
		id:       id,
	}, &response)
	if err != nil {
		return domain.FieldDefinition{}, err
	}
	return response.ToDefinition(), nil
}

func (c *Client) Create(ctx context.Context, spec domain.FieldDefinitionSpec) (domain.FieldDefinition, error) {
	request := internal.CustomFieldCreateRequest{
		TenantID: spec.TenantID.String(),
		Name:     spec.Name,
		Type:     spec.Type.String(),
		Options:  spec.Options,
		Required: spec.Required,
		Rules:    internal.FromRules(spec.Rules),
	}
	if spec.Visibility != nil {
		visibility := internal.FromVisibility(*spec.Visibility)
		request.Visibility = &visibility
	}

	var response internal.CustomFieldResponse
	err := c.do(ctx, call{
		op:     "create custom field",
		method: http.MethodPost,
		path:   "/v1/custom-fields",
		body:   request,
	}, &response)
	if err != nil {
		return domain.FieldDefinition{}, err
	}
	return response.ToDefinition(), nil
}

func (c *Client) Update(ctx context.Context, id shareddomain.ID, patch domain.FieldDefinitionPatch) (domain.FieldDefinition, error) {
	request := internal.CustomFieldUpdateRequest{
		Name:     patch.Name,
		Options:  patch.Options,
		Required: patch.Required,
	}
	if patch.Type != nil {
		fieldType := patch.Type.String()
		request.Type = &fieldType
	}
	if patch.Visibility != nil {
		visibility := internal.FromVisibility(*patch.Visibility)
		request.Visibility = &visibility
	}
	if patch.Rules != nil {
		rules := internal.FromRules(*patch.Rules)
		request.Rules = &rules
	}

	var response internal.CustomFieldResponse
	err := c.do(ctx, call{
		op:       "update custom field",
		method:   http.MethodPut,
		path:     "/v1/custom-fields/" + url.PathEscape(id.String()),
		body:     request,
		resource: _fieldResource,
		id:       id,
	}, &response)
	if err != nil {
		return domain.FieldDefinition{}, err
	}
	return response.ToDefinition(), nil
}

func (c *Client) Delete(ctx context.Context, id shareddomain.ID) error {
	return c.do(ctx, call{
		op:       "delete custom field",
		method:   http.MethodDelete,
		path:     "/v1/custom-fields/" + url.PathEscape(id.String()),
		resource: _fieldResource,
		id:       id,
	}, nil)
}

func (c *Client) GetForEntity(ctx context.Context, entityID shareddomain.ID) (map[shareddomain.ID]domain.Value, error) {
	var response internal.CustomFieldValuesResponse
	err := c.do(ctx, call{
		op:       "get custom field values",
		method:   http.MethodGet,
		path:     valuesPath(entityID),
		resource: _contactResource,
		id:       entityID,
	}, &response)
	if err != nil {
		return nil, err
	}
	return response.ToDomain(), nil
}

// SetMany keeps validation and not found failures as they are; anything
// else becomes a domain.WriteError.
func (c *Client) SetMany(ctx context.Context, entityID shareddomain.ID, pairs []domain.FieldValuePair) error {
	err := c.do(ctx, call{
		op:       "set custom field values",
		method:   http.MethodPut,
		path:     valuesPath(entityID),
		body:     internal.FromPairs(pairs),
		resource: _fieldResource,
	}, nil)
	if err == nil {
		return nil
	}

	var validationErrs domain.ValidationErrors
	var notFound domain.NotFoundError
	if errors.As(err, &validationErrs) || errors.As(err, &notFound) {
		return err
	}
	return domain.WriteError{EntityID: entityID, Err: err}
}

// AuditPage is one page of the audit log of an entity.
type AuditPage struct {
	Entries []domain.AuditEntry
	Total   int
}

func (c *Client) Audit(ctx context.Context, entityID, fieldID shareddomain.ID, page, limit int) (AuditPage, error) {
	query := url.Values{}
	if !fieldID.IsZero() {
		query.Set("field_id", fieldID.String())
	}
	if page > 0 {
		query.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		query.Set("limit", fmt.Sprint(limit))
	}

	var response struct {
		Data       []internal.AuditEntryResponse `json:"data"`
		Pagination httpserver.PaginationMeta     `json:"pagination"`
	}
	err := c.do(ctx, call{
		op:     "list custom field audit",
		method: http.MethodGet,
		path:   valuesPath(entityID) + "/audit?" + query.Encode(),
	}, &response)
	if err != nil {
		return AuditPage{}, err
	}

	entries := make([]domain.AuditEntry, len(response.Data))
	for i, entry := range response.Data {
		entries[i] = domain.AuditEntry{
			ID:         shareddomain.ID(entry.ID),
			EntityID:   entityID,
			FieldID:    shareddomain.ID(entry.FieldID),
			OldValue:   entry.OldValue,
			NewValue:   entry.NewValue,
			ChangeType: domain.ChangeType(entry.ChangeType),
			ChangedBy:  shareddomain.Actor(entry.ChangedBy),
			CreatedAt:  entry.CreatedAt.Time,
		}
	}
	return AuditPage{Entries: entries, Total: response.Pagination.Total}, nil
}

func (c *Client) do(ctx context.Context, call call, out any) error {
	var body io.Reader
	if call.body != nil {
		data, err := json.Marshal(call.body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", call.op, err)
		}
		body = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, call.method, c.baseURL+call.path, body)
	if err != nil {
		return fmt.Errorf("building %s request: %w", call.op, err)
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if actor := c.actor(ctx); actor != "" {
		request.Header.Set("X-User-ID", actor)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		slog.Debug("custom fields request failed", slog.String("op", call.op), slog.String("error", err.Error()))
		return domain.NetworkError{Op: call.op, Err: err}
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode >= 200 && response.StatusCode < 300:
		if out == nil || response.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(response.Body).Decode(out); err != nil {
			return domain.NetworkError{Op: call.op, Err: fmt.Errorf("decoding response: %w", err)}
		}
		return nil
	case response.StatusCode == http.StatusNotFound:
		return domain.NotFoundError{Resource: call.resource, ID: call.id, Err: errors.New(readError(response).Message)}
	case response.StatusCode == http.StatusUnprocessableEntity:
		errResponse := readError(response)
		if len(errResponse.Fields) == 0 {
			return domain.ValidationErrors{domain.NewValidationError("", errors.New(errResponse.Message))}
		}
		return internal.ToValidationErrors(errResponse.Fields)
	case response.StatusCode >= 500 || response.StatusCode == http.StatusTooManyRequests:
		return domain.NetworkError{Op: call.op, Err: fmt.Errorf("server replied %d: %s", response.StatusCode, readError(response).Message)}
	default:
		return fmt.Errorf("%s: unexpected status %d: %s", call.op, response.StatusCode, readError(response).Message)
	}
}

func (c *Client) actor(ctx context.Context) string {
	if actor := shareddomain.ActorFromContext(ctx); actor != shareddomain.AnonymousActor {
		return string(actor)
	}
	return c.userID
}

func readError(response *http.Response) httpserver.ErrorResponse {
	data, _ := io.ReadAll(io.LimitReader(response.Body, _maxErrorBody))

	var errResponse httpserver.ErrorResponse
	if err := json.Unmarshal(data, &errResponse); err != nil || errResponse.Message == "" {
		errResponse.Message = strings.TrimSpace(string(data))
	}
	return errResponse
}

func valuesPath(entityID shareddomain.ID) string {
	return "/v1/contacts/" + url.PathEscape(entityID.String()) + "/custom-fields"
}
