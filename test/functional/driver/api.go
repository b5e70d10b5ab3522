package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type APIDriver struct {
	baseURL string
	client  *http.Client
}

func NewAPIDriver(baseURL string) *APIDriver {
	return &APIDriver{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// FieldValue is one entry of a batch write.
type FieldValue struct {
	FieldID string `json:"field_id"`
	Value   any    `json:"value"`
}

func (d *APIDriver) GetHealthz() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/healthz", d.baseURL))
}

func (d *APIDriver) CreateCustomField(tenantID, name, fieldType string, options []string, required bool) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{
		"tenant_id": tenantID,
		"name":      name,
		"type":      fieldType,
		"options":   options,
		"required":  required,
	})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/custom-fields", d.baseURL), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) ListCustomFields(tenantID string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/custom-fields?tenant_id=%s", d.baseURL, url.QueryEscape(tenantID)))
}

func (d *APIDriver) GetCustomField(id string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/custom-fields/%s", d.baseURL, id))
}

func (d *APIDriver) UpdateCustomField(id string, changes map[string]any) (*http.Response, error) {
	reqBody, err := json.Marshal(changes)
	if err != nil {
		panic(err)
	}
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/v1/custom-fields/%s", d.baseURL, id), bytes.NewBuffer(reqBody))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return d.client.Do(req)
}

func (d *APIDriver) DeleteCustomField(id string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/v1/custom-fields/%s", d.baseURL, id), nil)
	if err != nil {
		panic(err)
	}
	return d.client.Do(req)
}

func (d *APIDriver) GetCustomFieldValues(contactID string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/contacts/%s/custom-fields", d.baseURL, contactID))
}

func (d *APIDriver) SetCustomFieldValues(contactID, userID string, values []FieldValue) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{"values": values})
	if err != nil {
		panic(err)
	}
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/v1/contacts/%s/custom-fields", d.baseURL, contactID), bytes.NewBuffer(reqBody))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	return d.client.Do(req)
}

func (d *APIDriver) GetCustomFieldAudit(contactID string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/contacts/%s/custom-fields/audit", d.baseURL, contactID))
}
