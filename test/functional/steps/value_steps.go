package steps

import (
	"fmt"
	"net/http"
	"time"

	"prospectar-server/test/functional/driver"

	"github.com/cucumber/godog"
)

const (
	_auditPollInterval = 50 * time.Millisecond
	_auditPollTimeout  = 3 * time.Second
)

func (fc *FeatureContext) valuesFromTable(table *godog.Table) []driver.FieldValue {
	fc.require.NotEmpty(table.Rows, "the table needs a header row")

	values := make([]driver.FieldValue, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		name, raw := row.Cells[0].Value, row.Cells[1].Value

		var value any = raw
		switch {
		case fc.fieldTypes[name] == "multi_select":
			value = splitList(raw)
		case raw == "":
			value = nil
		}
		values = append(values, driver.FieldValue{FieldID: fc.fieldID(name), Value: value})
	}
	return values
}

func (fc *FeatureContext) setValues(userID string, values []driver.FieldValue) error {
	resp, err := fc.apiDriver.SetCustomFieldValues(fc.contactID, userID, values)
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) iSetTheCustomFieldsOfTheContact(table *godog.Table) error {
	return fc.setValues("", fc.valuesFromTable(table))
}

func (fc *FeatureContext) userSetsTheCustomFieldsOfTheContact(userID string, table *godog.Table) error {
	return fc.setValues(userID, fc.valuesFromTable(table))
}

func (fc *FeatureContext) iSetTheCustomFieldToTheNumber(name string, number int) error {
	return fc.setValues("", []driver.FieldValue{{FieldID: fc.fieldID(name), Value: number}})
}

func (fc *FeatureContext) iGetTheCustomFieldValuesOfTheContact() error {
	resp, err := fc.apiDriver.GetCustomFieldValues(fc.contactID)
	fc.require.NoError(err)
	fc.response = resp
	fc.require.Equal(http.StatusOK, resp.StatusCode)

	var data map[string]any
	fc.require.NoError(fc.decodeBody(resp.Body, &data))
	fc.responseData = data
	return nil
}

func (fc *FeatureContext) storedValues() map[string]any {
	fc.require.NotNil(fc.responseData, "values were not read")
	values, _ := fc.responseData["values"].(map[string]any)
	return values
}

func (fc *FeatureContext) theValueOfShouldBe(name, expected string) error {
	fc.require.Equal(expected, fc.storedValues()[fc.fieldID(name)])
	return nil
}

func (fc *FeatureContext) theValueOfShouldBeTheSet(name, expected string) error {
	stored, ok := fc.storedValues()[fc.fieldID(name)].([]any)
	fc.require.True(ok, fmt.Sprintf("value of %s is not a set", name))

	members := make([]string, len(stored))
	for i, member := range stored {
		members[i] = member.(string)
	}
	fc.require.ElementsMatch(splitList(expected), members)
	return nil
}

func (fc *FeatureContext) theContactShouldHaveNoValueFor(name string) error {
	fc.require.NotContains(fc.storedValues(), fc.fieldID(name))
	return nil
}

func (fc *FeatureContext) theContactShouldHaveNoCustomFieldValues() error {
	fc.require.Empty(fc.storedValues())
	return nil
}

func (fc *FeatureContext) auditEntries() (PaginatedResponse[map[string]any], error) {
	resp, err := fc.apiDriver.GetCustomFieldAudit(fc.contactID)
	if err != nil {
		return PaginatedResponse[map[string]any]{}, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return PaginatedResponse[map[string]any]{}, fmt.Errorf("audit request failed with status %d", resp.StatusCode)
	}
	return fc.decodePaginatedResponse(resp)
}

// The audit log is written by a worker, so the step polls for it.
func (fc *FeatureContext) theAuditLogShouldEventuallyHaveEntries(count int) error {
	deadline := time.Now().Add(_auditPollTimeout)
	for {
		page, err := fc.auditEntries()
		fc.require.NoError(err)
		if page.Pagination.Total == count {
			fc.responseData = map[string]any{"entries": page.Data}
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("expected %d audit entries, found %d", count, page.Pagination.Total)
		}
		time.Sleep(_auditPollInterval)
	}
}

func (fc *FeatureContext) theLatestAuditEntryShouldBe(changeType, userID string) error {
	entries, _ := fc.responseData["entries"].([]map[string]any)
	fc.require.NotEmpty(entries, "no audit entries were read")

	latest := entries[0]
	fc.require.Equal(changeType, latest["change_type"])
	fc.require.Equal(userID, latest["changed_by"])
	return nil
}
