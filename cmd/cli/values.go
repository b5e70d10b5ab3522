package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/renderer"
	"prospectar-server/internal/custom_fields/usecases"
	shareddomain "prospectar-server/internal/shared_kernel/domain"

	"github.com/spf13/cobra"
)

func newValuesCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "values",
		Short: "Read and write the custom field values of a contact",
	}
	cmd.AddCommand(
		newValuesShowCommand(opts),
		newValuesSetCommand(opts),
		newValuesHistoryCommand(opts),
	)
	return cmd
}

func newValuesShowCommand(opts *options) *cobra.Command {
	var tab string

	cmd := &cobra.Command{
		Use:   "show CONTACT_ID",
		Short: "Show the fields a tab displays for a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.Tab(tab).IsKnown() {
				return fmt.Errorf("unknown tab %q", tab)
			}

			coordinator, err := opts.coordinator()
			if err != nil {
				return err
			}

			views, err := coordinator.VisibleFieldsFor(cmd.Context(), shareddomain.ID(args[0]), domain.Tab(tab))
			if err != nil {
				return err
			}

			printViews(cmd.OutOrStdout(), views)
			return nil
		},
	}

	cmd.Flags().StringVar(&tab, "tab", string(domain.TabBasic), "Tab to render (basic, commercial, utm, docs)")
	return cmd
}

func newValuesSetCommand(opts *options) *cobra.Command {
	var assignments []string

	cmd := &cobra.Command{
		Use:   "set CONTACT_ID --set FIELD=VALUE...",
		Short: "Write several fields of a contact in one batch",
		Long: `Write several fields of a contact in one batch.

FIELD is a field id or name. multi_select values are comma separated and an
empty VALUE clears the field.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coordinator, err := opts.coordinator()
			if err != nil {
				return err
			}

			fields, err := coordinator.Definitions(cmd.Context())
			if err != nil {
				return err
			}

			pairs, err := parseAssignments(fields, assignments)
			if err != nil {
				return err
			}

			if err := coordinator.SetMany(cmd.Context(), shareddomain.ID(args[0]), pairs); err != nil {
				return reportError(cmd.ErrOrStderr(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "stored %d field(s)\n", len(pairs))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&assignments, "set", nil, "FIELD=VALUE assignment, repeatable")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

func newValuesHistoryCommand(opts *options) *cobra.Command {
	var (
		fieldID string
		page    int
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "history CONTACT_ID",
		Short: "Show the audit log of a contact, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.client().Audit(cmd.Context(), shareddomain.ID(args[0]), shareddomain.ID(fieldID), page, limit)
			if err != nil {
				return err
			}

			printAudit(cmd.OutOrStdout(), result.Entries)
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d change(s)\n", len(result.Entries), result.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&fieldID, "field", "", "Only changes of this field id")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Entries per page")
	return cmd
}

// parseAssignments turns FIELD=VALUE pairs into values shaped by the widget
// each field renders as.
func parseAssignments(fields []domain.FieldDefinition, assignments []string) ([]domain.FieldValuePair, error) {
	pairs := make([]domain.FieldValuePair, 0, len(assignments))
	for _, assignment := range assignments {
		key, raw, found := strings.Cut(assignment, "=")
		if !found {
			return nil, fmt.Errorf("assignment %q is not FIELD=VALUE", assignment)
		}

		field, ok := lookupField(fields, key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownField, key)
		}

		value, err := inputValue(field, raw)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, domain.FieldValuePair{FieldID: field.ID, Value: value})
	}
	return pairs, nil
}

func lookupField(fields []domain.FieldDefinition, key string) (domain.FieldDefinition, bool) {
	for _, field := range fields {
		if field.ID.String() == key || field.Name.String() == key {
			return field, true
		}
	}
	return domain.FieldDefinition{}, false
}

func inputValue(field domain.FieldDefinition, raw string) (domain.Value, error) {
	switch field.Type {
	case domain.FieldTypeSingleSelect:
		return renderer.Choose(field, raw)
	case domain.FieldTypeMultiSelect:
		value := domain.NullValue()
		for _, option := range strings.Split(raw, ",") {
			option = strings.TrimSpace(option)
			if option == "" {
				continue
			}
			next, err := renderer.Toggle(field, value, option, true)
			if err != nil {
				return domain.Value{}, err
			}
			value = next
		}
		return value, nil
	default:
		return renderer.Text(field, raw)
	}
}

func printViews(out io.Writer, views []usecases.FieldView) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "FIELD\tTYPE\tVALUE")
	for _, view := range views {
		widget := renderer.Describe(view.Field, view.Value, nil)
		label := widget.Label
		if widget.Required {
			label += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", label, widget.Type, orDash(widgetValue(widget)))
	}
}

func widgetValue(widget renderer.Widget) string {
	if widget.Kind == renderer.WidgetTextInput {
		return widget.Text
	}

	var selected []string
	for _, choice := range widget.Choices {
		if !choice.Selected || choice.Value == renderer.NoneChoice {
			continue
		}
		if choice.Stale {
			selected = append(selected, choice.Label+" (stale)")
			continue
		}
		selected = append(selected, choice.Label)
	}
	return strings.Join(selected, ", ")
}

func printAudit(out io.Writer, entries []domain.AuditEntry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "WHEN\tFIELD\tCHANGE\tFROM\tTO\tBY")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.FieldID,
			entry.ChangeType,
			orDash(entry.OldValue.String()),
			orDash(entry.NewValue.String()),
			entry.ChangedBy)
	}
}
