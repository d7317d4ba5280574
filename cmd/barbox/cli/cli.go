// Package cli implements the barbox terminal front-end on top of the console
// core.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/barbox/barbox-admin/internal/app"
	"github.com/barbox/barbox-admin/internal/shared"
)

// Options configures one invocation.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	// Confirm asks the operator to approve prompt. Defaults to reading a
	// yes/no answer from Stdin.
	Confirm func(r io.Reader, w io.Writer, prompt string) (bool, error)
	Now     func() time.Time
}

type env struct {
	console *app.Console
	opts    Options
}

type command struct {
	run     func(ctx context.Context, e *env, args []string) error
	summary string
}

var commands = map[string]command{
	"login":     {runLogin, "Iniciar sesión (--usuario, --password)"},
	"logout":    {runLogout, "Cerrar sesión"},
	"list":      {runList, "Listar registros de una entidad con filtros"},
	"search":    {runSearch, "Buscar registros en el servidor"},
	"show":      {runShow, "Mostrar un registro"},
	"export":    {runExport, "Exportar la lista completa a CSV o XLSX"},
	"create":    {runCreate, "Crear un registro desde JSON"},
	"update":    {runUpdate, "Actualizar un registro desde JSON"},
	"toggle":    {runToggle, "Cambiar el estado de un registro"},
	"delete":    {runDelete, "Eliminar un registro"},
	"approve":   {runApprove, "Aprobar una compra pendiente"},
	"annul":     {runAnnul, "Anular una factura o una recepción"},
	"dashboard": {runDashboard, "Indicadores del negocio"},
}

// Run dispatches args to a command and returns the process exit code.
func Run(ctx context.Context, console *app.Console, args []string, opts Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Confirm == nil {
		opts.Confirm = defaultConfirm
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if len(args) == 0 {
		usage(opts.Stderr)
		return 1
	}
	name := args[0]
	if name == "-h" || name == "--help" || name == "help" {
		usage(opts.Stdout)
		return 0
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(opts.Stderr, "unknown command: %s\n\n", name)
		usage(opts.Stderr)
		return 1
	}

	e := &env{console: console, opts: opts}
	if name != "login" {
		if err := console.Start(ctx); err != nil {
			fmt.Fprintf(opts.Stderr, "barbox: %v\n", err)
			return 1
		}
		if console.Navigator.Current() == app.ViewLogin && name != "logout" {
			fmt.Fprintln(opts.Stderr, "barbox: sesión no iniciada, ejecute 'barbox login'")
			return 1
		}
	}
	err := cmd.run(ctx, e, args[1:])
	notified := e.flushNotices()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		if errors.Is(err, shared.ErrUnauthorized) {
			fmt.Fprintln(opts.Stderr, "barbox: la sesión expiró, ejecute 'barbox login'")
			return 1
		}
		if msg := shared.UserMessage(err); msg != "" && !notified {
			fmt.Fprintf(opts.Stderr, "barbox: %s\n", msg)
		}
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprint(w, "barbox - consola de administración BARBOX\n\nUsage:\n  barbox <command> [options]\n\nCommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(w, "\nEntities: %s\n", strings.Join(entityNames(), ", "))
}

// flushNotices prints the notices raised by the command and reports
// whether one of them was an error.
func (e *env) flushNotices() bool {
	failed := false
	for _, n := range e.console.Notices.Drain() {
		if n.Message == "" {
			continue
		}
		if n.Kind == shared.NoticeError {
			failed = true
			fmt.Fprintf(e.opts.Stderr, "✗ %s\n", n.Message)
			continue
		}
		fmt.Fprintf(e.opts.Stdout, "✓ %s\n", n.Message)
	}
	return failed
}

// confirmer adapts Options.Confirm; assumeYes skips the question.
func (e *env) confirmer(assumeYes bool) shared.Confirmer {
	return shared.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		if assumeYes {
			return true, nil
		}
		return e.opts.Confirm(e.opts.Stdin, e.opts.Stdout, prompt)
	})
}

func defaultConfirm(r io.Reader, w io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(w, "%s [s/N]: ", prompt)
	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// criteria collects repeated --filter key=value flags.
type criteria map[string]string

func (c criteria) String() string {
	parts := make([]string, 0, len(c))
	for k, v := range c {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (c criteria) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("filter %q must be key=value", raw)
	}
	c[strings.TrimSpace(key)] = value
	return nil
}

func newFlagSet(e *env, name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.opts.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: barbox %s [options] %s\n\nOptions:\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// parse accepts flags before and after the positional arguments.
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

func requireArgs(fs *flag.FlagSet, got []string, n int) error {
	if len(got) < n {
		fs.Usage()
		return fmt.Errorf("%s: expected %d argument(s): %w", fs.Name(), n, shared.ErrValidation)
	}
	return nil
}
