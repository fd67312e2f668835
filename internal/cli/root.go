package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vladislavdragonenkov/partners/internal/app"
	"github.com/vladislavdragonenkov/partners/internal/domain"
)

// Options задаёт окружение запуска. Нулевые поля заменяются значениями процесса.
type Options struct {
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Getenv     func(string) string
	LoadConfig func(path string) (app.Config, error)
	NewRuntime func(ctx context.Context, cfg app.Config, reg prometheus.Registerer, logger *log.Entry) (*app.Runtime, error)
	Registerer prometheus.Registerer
}

func (o Options) withDefaults() Options {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
	if o.LoadConfig == nil {
		o.LoadConfig = app.LoadConfig
	}
	if o.NewRuntime == nil {
		o.NewRuntime = app.NewRuntime
	}
	return o
}

// Execute runs partnerctl with process arguments and returns the exit code.
func Execute() int {
	return Run(os.Args[1:], Options{})
}

// Run выполняет команду и возвращает код завершения.
func Run(args []string, opts Options) int {
	e := &env{opts: opts.withDefaults()}
	defer e.close()

	rootCmd := newRootCmd(e)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(e.opts.Stdin)
	rootCmd.SetOut(e.opts.Stdout)
	rootCmd.SetErr(e.opts.Stderr)

	if err := rootCmd.Execute(); err != nil {
		if e.output == outputJSON {
			_ = printJSON(e.opts.Stdout, map[string]string{
				"error": err.Error(),
				"code":  errorCode(err),
			})
		} else {
			_, _ = fmt.Fprintf(e.opts.Stderr, "Error: %v\n", err)
		}
		return exitCode(err)
	}
	return 0
}

func newRootCmd(e *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "partnerctl",
		Short:         "Partner management console",
		Long:          "Manage partners, partner types and partner sales statistics.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&e.configPath, "config", "c", "", "Path to config file (yaml, toml or json)")
	flags.StringVar(&e.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVarP(&e.output, "output", "o", outputTable, "Output format (table, json)")
	flags.StringVar(&e.login, "login", "", "Manager login (env PARTNERS_LOGIN)")
	flags.StringVar(&e.password, "password", "", "Manager password (env PARTNERS_PASSWORD)")

	rootCmd.AddCommand(newVersionCmd(e))
	rootCmd.AddCommand(newHashPasswordCmd(e))
	rootCmd.AddCommand(newStatusCmd(e))
	rootCmd.AddCommand(newPartnersCmd(e))
	rootCmd.AddCommand(newStatsCmd(e))

	return rootCmd
}

type env struct {
	opts Options

	configPath string
	logLevel   string
	output     string
	login      string
	password   string

	cfg    app.Config
	logger *log.Logger
	rt     *app.Runtime
}

func (e *env) init(cmd *cobra.Command) error {
	if err := validateOutputFormat(e.output); err != nil {
		return err
	}

	cfg, err := e.opts.LoadConfig(e.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = e.logLevel
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	e.cfg = cfg
	e.logger = log.New()
	e.logger.SetOutput(e.opts.Stderr)
	e.logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	e.logger.SetLevel(level)
	return nil
}

func (e *env) entry() *log.Entry {
	if e.logger == nil {
		return log.WithField("component", "cli")
	}
	return e.logger.WithField("component", "cli")
}

// runtime лениво собирает сервисы под выбранное хранилище.
func (e *env) runtime(ctx context.Context) (*app.Runtime, error) {
	if e.rt != nil {
		return e.rt, nil
	}
	rt, err := e.opts.NewRuntime(ctx, e.cfg, e.opts.Registerer, e.entry().WithField("component", "app"))
	if err != nil {
		return nil, err
	}
	e.rt = rt
	return rt, nil
}

func (e *env) close() {
	if e.rt == nil {
		return
	}
	if err := e.rt.Close(); err != nil {
		e.entry().WithError(err).Warn("failed to close storage")
	}
	e.rt = nil
}

func (e *env) operationContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if e.cfg.OperationTimeout > 0 {
		return context.WithTimeout(ctx, e.cfg.OperationTimeout)
	}
	return context.WithCancel(ctx)
}

// authenticate проверяет учётные данные и привязывает сессию к контексту.
func (e *env) authenticate(ctx context.Context) (context.Context, *app.Runtime, error) {
	rt, err := e.runtime(ctx)
	if err != nil {
		return nil, nil, err
	}

	login := e.login
	if login == "" {
		login = e.opts.Getenv("PARTNERS_LOGIN")
	}
	password := e.password
	if password == "" {
		password = e.opts.Getenv("PARTNERS_PASSWORD")
	}
	if password == "" && strings.TrimSpace(login) != "" {
		password, err = e.promptPassword()
		if err != nil {
			return nil, nil, err
		}
	}

	session, err := rt.Auth.Authenticate(ctx, login, password)
	if err != nil {
		return nil, nil, err
	}
	return domain.ContextWithSession(ctx, session), rt, nil
}

// promptPassword читает пароль без эха, если stdin — терминал.
func (e *env) promptPassword() (string, error) {
	f, ok := e.opts.Stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", nil
	}
	_, _ = fmt.Fprint(e.opts.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(f.Fd()))
	_, _ = fmt.Fprintln(e.opts.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrConnection):
		return "connection"
	case domain.IsNotFound(err):
		return "not_found"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	case errors.Is(err, domain.ErrRead):
		return "read"
	default:
		return "error"
	}
}

func exitCode(err error) int {
	switch errorCode(err) {
	case "validation":
		return 2
	case "invalid_credentials":
		return 3
	case "connection", "read":
		return 4
	default:
		return 1
	}
}
