package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/auth"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/procurement"
	"github.com/barbox/barbox-admin/internal/sales/invoices"
	"github.com/barbox/barbox-admin/internal/shared"
)

func runLogin(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "login", "")
	user := fs.String("usuario", "", "Nombre de usuario")
	password := fs.String("password", "", "Contraseña (se lee de stdin si se omite)")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if *password == "" {
		fmt.Fprint(e.opts.Stdout, "Contraseña: ")
		line, err := bufio.NewReader(e.opts.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		*password = strings.TrimRight(line, "\r\n")
	}
	session, err := e.console.Login(ctx, auth.Credentials{Username: *user, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(e.opts.Stdout, "Bienvenido, %s\n", session.Username)
	return nil
}

func runLogout(ctx context.Context, e *env, args []string) error {
	if err := e.console.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(e.opts.Stdout, "Sesión cerrada")
	return nil
}

func runList(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "list", "<entity>")
	crit := criteria{}
	fs.Var(crit, "filter", "Filtro key=value (repetible)")
	jsonOut := fs.Bool("json", false, "Salida JSON")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := requireArgs(fs, pos, 1); err != nil {
		return err
	}
	ent, err := lookupEntity(pos[0])
	if err != nil {
		return err
	}
	return ent.list(ctx, e, crit, *jsonOut)
}

func runSearch(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "search", "<entity> [term]")
	params := criteria{}
	fs.Var(params, "param", "Parámetro de búsqueda key=value (repetible)")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := requireArgs(fs, pos, 1); err != nil {
		return err
	}
	ent, err := lookupEntity(pos[0])
	if err != nil {
		return err
	}
	if len(pos) > 1 {
		params["q"] = strings.Join(pos[1:], " ")
	}
	return ent.search(ctx, e, params)
}

func runShow(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "show", "<entity> <id>")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := requireArgs(fs, pos, 2); err != nil {
		return err
	}
	ent, err := lookupEntity(pos[0])
	if err != nil {
		return err
	}
	return ent.show(ctx, e, pos[1])
}

func runExport(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "export", "<entity>")
	format := fs.String("format", "csv", "csv o xlsx")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := requireArgs(fs, pos, 1); err != nil {
		return err
	}
	ent, err := lookupEntity(pos[0])
	if err != nil {
		return err
	}
	path, err := ent.export(ctx, e, strings.ToLower(strings.TrimSpace(*format)))
	if err != nil {
		return err
	}
	fmt.Fprintf(e.opts.Stdout, "Exportado a %s\n", path)
	return nil
}

func runCreate(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "create", "<entity>")
	data := fs.String("data", "", "Registro JSON, @archivo o - para stdin")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := requireArgs(fs, pos, 1); err != nil {
		return err
	}
	ent, err := lookupEntity(pos[0])
	if err != nil {
		return err
	}
	body, err := readData(e, *data)
	if err != nil {
		return err
	}
	return ent.create(ctx, e, body)
}

func runUpdate(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "update", "<entity> <id>")
	data := fs.String("data", "", "Campos JSON a modificar, @archivo o - para stdin")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := requireArgs(fs, pos, 2); err != nil {
		return err
	}
	ent, err := lookupEntity(pos[0])
	if err != nil {
		return err
	}
	body, err := readData(e, *data)
	if err != nil {
		return err
	}
	return ent.update(ctx, e, pos[1], body)
}

func runToggle(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "toggle", "<entity> <id>")
	yes := fs.Bool("yes", false, "No pedir confirmación")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := requireArgs(fs, pos, 2); err != nil {
		return err
	}
	ent, err := lookupEntity(pos[0])
	if err != nil {
		return err
	}
	return ent.toggle(ctx, e, pos[1], *yes)
}

func runDelete(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "delete", "<entity> <id>")
	yes := fs.Bool("yes", false, "No pedir confirmación")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := requireArgs(fs, pos, 2); err != nil {
		return err
	}
	ent, err := lookupEntity(pos[0])
	if err != nil {
		return err
	}
	return ent.remove(ctx, e, pos[1], *yes)
}

func runApprove(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "approve", "<id_compra>")
	yes := fs.Bool("yes", false, "No pedir confirmación")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := requireArgs(fs, pos, 1); err != nil {
		return err
	}
	ctrl, rec, err := openRecord[procurement.Purchase](ctx, e, procurement.PurchaseEntity, pos[0])
	if err != nil {
		return err
	}
	m, err := procurement.Approve(rec)
	if err != nil {
		return err
	}
	_, err = ctrl.ConfirmAction(ctx, e.confirmer(*yes), procurement.ApprovePrompt(rec), m)
	return err
}

func runAnnul(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "annul", "<facturas|recepciones> <id>")
	reason := fs.String("motivo", "", "Motivo de la anulación")
	yes := fs.Bool("yes", false, "No pedir confirmación")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := requireArgs(fs, pos, 2); err != nil {
		return err
	}
	switch pos[0] {
	case invoices.Entity:
		ctrl, rec, err := openRecord[invoices.Invoice](ctx, e, invoices.Entity, pos[1])
		if err != nil {
			return err
		}
		m, err := invoices.Annul(rec, *reason)
		if err != nil {
			return err
		}
		_, err = ctrl.ConfirmAction(ctx, e.confirmer(*yes), invoices.AnnulPrompt(rec), m)
		return err
	case procurement.ReceiptEntity:
		ctrl, rec, err := openRecord[procurement.Receipt](ctx, e, procurement.ReceiptEntity, pos[1])
		if err != nil {
			return err
		}
		m := procurement.AnnulReceipt(rec, *reason)
		_, err = ctrl.ConfirmAction(ctx, e.confirmer(*yes), procurement.AnnulReceiptPrompt(rec), m)
		return err
	default:
		return fmt.Errorf("annul: %q no admite anulación: %w", pos[0], shared.ErrValidation)
	}
}

func runDashboard(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "dashboard", "")
	format := fs.String("format", "text", "text, json, csv o xlsx")
	refresh := fs.Bool("refresh", false, "Ignorar la caché")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if *refresh {
		if err := e.console.Analytics.Invalidate(ctx); err != nil {
			return err
		}
	}
	d, err := e.console.Analytics.Dashboard(ctx)
	if err != nil {
		return err
	}
	switch strings.ToLower(*format) {
	case "json":
		return writeJSON(e.opts.Stdout, d)
	case "csv", "xlsx":
		ext := strings.ToLower(*format)
		dir := e.console.Config.ExportDir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		path := filepath.Join(dir, export.FileName("dashboard", e.opts.Now(), ext))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		if ext == "xlsx" {
			err = d.WriteXLSX(f)
		} else {
			err = d.WriteCSV(f)
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		fmt.Fprintf(e.opts.Stdout, "Exportado a %s\n", path)
		return nil
	default:
		return d.WriteText(e.opts.Stdout)
	}
}

// openRecord loads the list of the named entity and finds rawID in it.
func openRecord[T any](ctx context.Context, e *env, name, rawID string) (*listing.Controller[T], T, error) {
	var zero T
	b, ok := entities[name].(binding[T])
	if !ok {
		return nil, zero, fmt.Errorf("entity %q: %w", name, shared.ErrValidation)
	}
	ctrl, _, err := b.open(ctx, e)
	if err != nil {
		return nil, zero, err
	}
	rec, err := b.record(ctrl, rawID)
	if err != nil {
		return nil, zero, err
	}
	return ctrl, rec, nil
}

func readData(e *env, raw string) ([]byte, error) {
	switch {
	case raw == "":
		return nil, fmt.Errorf("--data es obligatorio: %w", shared.ErrValidation)
	case raw == "-":
		return io.ReadAll(e.opts.Stdin)
	case strings.HasPrefix(raw, "@"):
		return os.ReadFile(strings.TrimPrefix(raw, "@"))
	default:
		return []byte(raw), nil
	}
}
