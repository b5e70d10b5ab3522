package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/httpapi/client"
	"prospectar-server/internal/custom_fields/usecases"
	shareddomain "prospectar-server/internal/shared_kernel/domain"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const _envPrefix = "prospectar_cli"

var errTenantRequired = errors.New("--tenant is required")

var logLevelMapping = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// options are resolved from flags first, then PROSPECTAR_CLI_* variables.
type options struct {
	v *viper.Viper
}

func (o *options) server() string          { return o.v.GetString("server") }
func (o *options) user() string            { return o.v.GetString("user") }
func (o *options) tenant() shareddomain.ID { return shareddomain.ID(o.v.GetString("tenant")) }
func (o *options) timeout() time.Duration  { return o.v.GetDuration("timeout") }

func (o *options) client() *client.Client {
	return client.New(client.Config{
		BaseURL: o.server(),
		Timeout: o.timeout(),
		UserID:  o.user(),
	})
}

func (o *options) coordinator() (*usecases.Coordinator, error) {
	if o.tenant().IsZero() {
		return nil, errTenantRequired
	}

	remote := o.client()
	return usecases.NewCoordinator(remote, remote, usecases.CoordinatorConfig{
		TenantID:     o.tenant(),
		FetchTimeout: o.timeout(),
	}), nil
}

func newRootCommand() *cobra.Command {
	opts := &options{v: viper.New()}

	root := &cobra.Command{
		Use:           "prospectar",
		Short:         "Manage contact custom fields",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(cmd.ErrOrStderr(), opts.v.GetString("log-level"))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("server", "http://localhost:3000", "Base URL of the prospectar server")
	flags.String("user", "", "User id sent as the change author")
	flags.String("tenant", "", "Tenant owning the custom fields")
	flags.Duration("timeout", 15*time.Second, "Request timeout")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	bindFlags(opts.v, flags)

	root.AddCommand(newFieldsCommand(opts), newValuesCommand(opts))
	return root
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	v.SetEnvPrefix(_envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	flags.VisitAll(func(flag *pflag.Flag) {
		_ = v.BindPFlag(flag.Name, flag)
	})
}

func setupLogging(out io.Writer, level string) {
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: logLevelMapping[level]})
	slog.SetDefault(slog.New(handler))
}

// reportError writes the per-field failures of a rejected batch.
func reportError(out io.Writer, err error) error {
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fmt.Fprintf(out, "  %s: %s\n", fieldErr.FieldID, fieldErr.Reason)
		}
		return err
	}

	var validationErr domain.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(out, "  %s: %s\n", validationErr.FieldID, validationErr.Reason)
	}
	return err
}
