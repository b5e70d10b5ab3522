package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"prospectar-server/internal/infra/utils"
	"prospectar-server/test/functional/driver"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

// PaginatedResponse mirrors the paginated envelope of list endpoints.
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}

type FeatureContext struct {
	apiDriver    *driver.APIDriver
	response     *http.Response
	responseData map[string]any
	tenantID     string
	contactID    string
	fieldIDs     map[string]string
	fieldTypes   map[string]string
	require      *require.Assertions
	t            godog.TestingT
}

func NewFeatureContext(baseURL string) *FeatureContext {
	return &FeatureContext{
		apiDriver: driver.NewAPIDriver(baseURL),
	}
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	// Generic steps
	ctx.Step(`^wait for (.*)$`, fc.waitForDuration)
	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)
	ctx.When(`^I call the healthz endpoint$`, fc.iCallTheHealthzEndpoint)
	ctx.Then(`^the response should contain status information$`, fc.theResponseShouldContainStatusInformation)

	// Custom field steps
	ctx.Given(`^a tenant "([^"]*)"$`, fc.aTenant)
	ctx.Given(`^a contact "([^"]*)"$`, fc.aContact)
	ctx.When(`^I create a "([^"]*)" custom field named "([^"]*)"$`, fc.iCreateACustomFieldNamed)
	ctx.When(`^I create a "([^"]*)" custom field named "([^"]*)" with options "([^"]*)"$`, fc.iCreateACustomFieldNamedWithOptions)
	ctx.Given(`^a "([^"]*)" custom field named "([^"]*)" exists$`, fc.aCustomFieldNamedExists)
	ctx.Given(`^a "([^"]*)" custom field named "([^"]*)" exists with options "([^"]*)"$`, fc.aCustomFieldNamedExistsWithOptions)
	ctx.Given(`^a required "([^"]*)" custom field named "([^"]*)" exists$`, fc.aRequiredCustomFieldNamedExists)
	ctx.When(`^I list the custom fields$`, fc.iListTheCustomFields)
	ctx.Then(`^the custom fields should be listed as "([^"]*)"$`, fc.theCustomFieldsShouldBeListedAs)
	ctx.When(`^I rename the custom field "([^"]*)" to "([^"]*)"$`, fc.iRenameTheCustomField)
	ctx.When(`^I change the options of the custom field "([^"]*)" to "([^"]*)"$`, fc.iChangeTheOptionsOfTheCustomField)
	ctx.When(`^I change the type of the custom field "([^"]*)" to "([^"]*)"$`, fc.iChangeTheTypeOfTheCustomField)
	ctx.Then(`^the custom field should have version (\d+)$`, fc.theCustomFieldShouldHaveVersion)
	ctx.When(`^I delete the custom field "([^"]*)"$`, fc.iDeleteTheCustomField)
	ctx.When(`^I get the custom field "([^"]*)"$`, fc.iGetTheCustomField)
	ctx.Then(`^the error should name the field "([^"]*)"$`, fc.theErrorShouldNameTheField)

	// Value steps
	ctx.When(`^I set the custom fields of the contact:$`, fc.iSetTheCustomFieldsOfTheContact)
	ctx.When(`^"([^"]*)" sets the custom fields of the contact:$`, fc.userSetsTheCustomFieldsOfTheContact)
	ctx.When(`^I set the custom field "([^"]*)" of the contact to the number (\d+)$`, fc.iSetTheCustomFieldToTheNumber)
	ctx.When(`^I get the custom field values of the contact$`, fc.iGetTheCustomFieldValuesOfTheContact)
	ctx.Then(`^the value of "([^"]*)" should be "([^"]*)"$`, fc.theValueOfShouldBe)
	ctx.Then(`^the value of "([^"]*)" should be the set "([^"]*)"$`, fc.theValueOfShouldBeTheSet)
	ctx.Then(`^the contact should have no value for "([^"]*)"$`, fc.theContactShouldHaveNoValueFor)
	ctx.Then(`^the contact should have no custom field values$`, fc.theContactShouldHaveNoCustomFieldValues)
	ctx.Then(`^the audit log of the contact should eventually have (\d+) entries$`, fc.theAuditLogShouldEventuallyHaveEntries)
	ctx.Then(`^the latest audit entry should be a "([^"]*)" by "([^"]*)"$`, fc.theLatestAuditEntryShouldBe)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.t = godog.T(ctx)
		fc.require = require.New(fc.t)

		fc.reset()
		return ctx, nil
	})
}

func (fc *FeatureContext) reset() {
	fc.response = nil
	fc.responseData = nil
	fc.tenantID = ""
	fc.contactID = ""
	fc.fieldIDs = map[string]string{}
	fc.fieldTypes = map[string]string{}
}

// scoped keeps scenarios apart when they share one server.
func scoped(name string) string {
	return fmt.Sprintf("%s-%s", name, utils.GenerateUUID()[:8])
}

func (fc *FeatureContext) decodeBody(body io.ReadCloser, target any) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(target)
}

func (fc *FeatureContext) decodePaginatedResponse(response *http.Response) (PaginatedResponse[map[string]any], error) {
	var paginatedResp PaginatedResponse[map[string]any]
	if err := fc.decodeBody(response.Body, &paginatedResp); err != nil {
		return paginatedResp, fmt.Errorf("failed to decode paginated response: %w", err)
	}
	return paginatedResp, nil
}

func (fc *FeatureContext) fieldID(name string) string {
	id, found := fc.fieldIDs[name]
	fc.require.True(found, fmt.Sprintf("custom field %s was not created in this scenario", name))
	return id
}
