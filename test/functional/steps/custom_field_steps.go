package steps

import (
	"fmt"
	"net/http"
	"strings"
)

func (fc *FeatureContext) aTenant(name string) error {
	fc.tenantID = ""
	if name != "" {
		fc.tenantID = scoped(name)
	}
	return nil
}

func (fc *FeatureContext) aContact(name string) error {
	fc.contactID = scoped(name)
	return nil
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	items := strings.Split(value, ",")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items
}

func (fc *FeatureContext) createCustomField(fieldType, name string, options []string, required bool) error {
	resp, err := fc.apiDriver.CreateCustomField(fc.tenantID, name, fieldType, options, required)
	fc.require.NoError(err)
	fc.response = resp

	if resp.StatusCode != http.StatusCreated {
		return nil
	}

	var data map[string]any
	fc.require.NoError(fc.decodeBody(resp.Body, &data))
	fc.require.NotEmpty(data["id"])
	fc.fieldIDs[name] = data["id"].(string)
	fc.fieldTypes[name] = fieldType
	fc.responseData = data
	return nil
}

func (fc *FeatureContext) iCreateACustomFieldNamed(fieldType, name string) error {
	return fc.createCustomField(fieldType, name, nil, false)
}

func (fc *FeatureContext) iCreateACustomFieldNamedWithOptions(fieldType, name, options string) error {
	return fc.createCustomField(fieldType, name, splitList(options), false)
}

func (fc *FeatureContext) aCustomFieldNamedExists(fieldType, name string) error {
	fc.require.NoError(fc.createCustomField(fieldType, name, nil, false))
	fc.require.Equal(http.StatusCreated, fc.response.StatusCode)
	return nil
}

func (fc *FeatureContext) aCustomFieldNamedExistsWithOptions(fieldType, name, options string) error {
	fc.require.NoError(fc.createCustomField(fieldType, name, splitList(options), false))
	fc.require.Equal(http.StatusCreated, fc.response.StatusCode)
	return nil
}

func (fc *FeatureContext) aRequiredCustomFieldNamedExists(fieldType, name string) error {
	fc.require.NoError(fc.createCustomField(fieldType, name, nil, true))
	fc.require.Equal(http.StatusCreated, fc.response.StatusCode)
	return nil
}

func (fc *FeatureContext) iListTheCustomFields() error {
	resp, err := fc.apiDriver.ListCustomFields(fc.tenantID)
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) theCustomFieldsShouldBeListedAs(names string) error {
	var list struct {
		Fields []map[string]any `json:"fields"`
		Total  int              `json:"total"`
	}
	fc.require.NoError(fc.decodeBody(fc.response.Body, &list))

	listed := make([]string, 0, len(list.Fields))
	for _, field := range list.Fields {
		listed = append(listed, field["name"].(string))
	}
	expected := splitList(names)
	if expected == nil {
		expected = []string{}
	}
	fc.require.Equal(expected, listed)
	fc.require.Equal(len(expected), list.Total)
	return nil
}

func (fc *FeatureContext) updateCustomField(name string, changes map[string]any) error {
	resp, err := fc.apiDriver.UpdateCustomField(fc.fieldID(name), changes)
	fc.require.NoError(err)
	fc.response = resp

	if resp.StatusCode == http.StatusOK {
		var data map[string]any
		fc.require.NoError(fc.decodeBody(resp.Body, &data))
		fc.responseData = data
	}
	return nil
}

func (fc *FeatureContext) iRenameTheCustomField(name, newName string) error {
	if err := fc.updateCustomField(name, map[string]any{"name": newName}); err != nil {
		return err
	}
	fc.fieldIDs[newName] = fc.fieldIDs[name]
	fc.fieldTypes[newName] = fc.fieldTypes[name]
	return nil
}

func (fc *FeatureContext) iChangeTheOptionsOfTheCustomField(name, options string) error {
	return fc.updateCustomField(name, map[string]any{"options": splitList(options)})
}

func (fc *FeatureContext) iChangeTheTypeOfTheCustomField(name, fieldType string) error {
	if err := fc.updateCustomField(name, map[string]any{"type": fieldType}); err != nil {
		return err
	}
	fc.fieldTypes[name] = fieldType
	return nil
}

func (fc *FeatureContext) theCustomFieldShouldHaveVersion(version int) error {
	fc.require.NotNil(fc.responseData, "no custom field in the last response")
	fc.require.EqualValues(version, fc.responseData["version"])
	return nil
}

func (fc *FeatureContext) iDeleteTheCustomField(name string) error {
	resp, err := fc.apiDriver.DeleteCustomField(fc.fieldID(name))
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) iGetTheCustomField(name string) error {
	resp, err := fc.apiDriver.GetCustomField(fc.fieldID(name))
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) theErrorShouldNameTheField(name string) error {
	var data struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	fc.require.NoError(fc.decodeBody(fc.response.Body, &data))

	key := name
	if id, found := fc.fieldIDs[name]; found {
		key = id
	}
	fc.require.Contains(data.Fields, key, fmt.Sprintf("fields in error: %v", data.Fields))
	return nil
}
