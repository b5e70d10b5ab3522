package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"prospectar-server/internal/custom_fields/domain"
	shareddomain "prospectar-server/internal/shared_kernel/domain"

	"github.com/spf13/cobra"
)

func newFieldsCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Manage custom field definitions",
	}
	cmd.AddCommand(
		newFieldsListCommand(opts),
		newFieldsCreateCommand(opts),
		newFieldsUpdateCommand(opts),
		newFieldsDeleteCommand(opts),
	)
	return cmd
}

func newFieldsListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the tenant's custom fields in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coordinator, err := opts.coordinator()
			if err != nil {
				return err
			}

			fields, err := coordinator.Definitions(cmd.Context())
			if err != nil {
				return err
			}

			printFields(cmd.OutOrStdout(), fields)
			return nil
		},
	}
}

func newFieldsCreateCommand(opts *options) *cobra.Command {
	var (
		name       string
		fieldType  string
		fieldOpts  []string
		required   bool
		summary    bool
		hiddenTabs []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a custom field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coordinator, err := opts.coordinator()
			if err != nil {
				return err
			}

			parsedType, err := domain.ParseFieldType(fieldType)
			if err != nil {
				return err
			}

			visibility, err := visibilityFrom(summary, hiddenTabs)
			if err != nil {
				return err
			}

			field, err := coordinator.CreateDefinition(cmd.Context(), domain.FieldDefinitionSpec{
				TenantID:   opts.tenant(),
				Name:       name,
				Type:       parsedType,
				Options:    fieldOpts,
				Required:   required,
				Visibility: &visibility,
			})
			if err != nil {
				return reportError(cmd.ErrOrStderr(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", field.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Field name")
	cmd.Flags().StringVar(&fieldType, "type", string(domain.FieldTypeText), "Field type (text, single_select, multi_select)")
	cmd.Flags().StringSliceVar(&fieldOpts, "option", nil, "Option of a select field, repeatable")
	cmd.Flags().BoolVar(&required, "required", false, "Reject empty values")
	cmd.Flags().BoolVar(&summary, "summary", false, "Show the field in the contact summary")
	cmd.Flags().StringSliceVar(&hiddenTabs, "hide-tab", nil, "Tab the field is hidden in, repeatable")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newFieldsUpdateCommand(opts *options) *cobra.Command {
	var (
		name      string
		fieldOpts []string
		required  bool
	)

	cmd := &cobra.Command{
		Use:   "update FIELD_ID",
		Short: "Change the name, options or required flag of a custom field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coordinator, err := opts.coordinator()
			if err != nil {
				return err
			}

			var patch domain.FieldDefinitionPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("option") {
				patch.Options = &fieldOpts
			}
			if cmd.Flags().Changed("required") {
				patch.Required = &required
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update")
			}

			field, err := coordinator.UpdateDefinition(cmd.Context(), shareddomain.ID(args[0]), patch)
			if err != nil {
				return reportError(cmd.ErrOrStderr(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "updated %s (version %d)\n", field.ID, field.Version)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New field name")
	cmd.Flags().StringSliceVar(&fieldOpts, "option", nil, "Replacement option list, repeatable")
	cmd.Flags().BoolVar(&required, "required", false, "Reject empty values")
	return cmd
}

func newFieldsDeleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete FIELD_ID",
		Short: "Delete a custom field; its stored values are kept but hidden",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coordinator, err := opts.coordinator()
			if err != nil {
				return err
			}

			if err := coordinator.DeleteDefinition(cmd.Context(), shareddomain.ID(args[0])); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func visibilityFrom(summary bool, hiddenTabs []string) (domain.Visibility, error) {
	visibility := domain.DefaultVisibility()
	visibility.ShownInSummary = summary
	for _, name := range hiddenTabs {
		tab := domain.Tab(name)
		if !tab.IsKnown() {
			return domain.Visibility{}, fmt.Errorf("unknown tab %q", name)
		}
		visibility.Tabs[tab] = false
	}
	return visibility, nil
}

func printFields(out io.Writer, fields []domain.FieldDefinition) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tTYPE\tREQUIRED\tOPTIONS\tHIDDEN IN")
	for _, field := range fields {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\t%s\n",
			field.ID,
			field.Name,
			field.Type,
			field.Required,
			orDash(strings.Join(field.Options, ",")),
			orDash(strings.Join(hiddenTabsOf(field), ",")))
	}
}

func hiddenTabsOf(field domain.FieldDefinition) []string {
	var hidden []string
	for _, tab := range domain.KnownTabs {
		if visible, found := field.Visibility.Tabs[tab]; found && !visible {
			hidden = append(hidden, string(tab))
		}
	}
	return hidden
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
