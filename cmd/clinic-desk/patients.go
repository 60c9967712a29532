package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"clinic-desk/internal/config"
	"clinic-desk/internal/domain/patients"
	"clinic-desk/internal/ports/auth"
	"clinic-desk/internal/router"
)

func patientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Consultar pacientes desde la terminal",
	}
	cmd.PersistentFlags().String("cookie", "", "cookie de sesión a reenviar al backend")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista una página del roster, opcionalmente filtrada por texto",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, _ := cmd.Flags().GetString("query")
			page, _ := cmd.Flags().GetInt("page")

			svc, cfg, ctx, err := patientsService(cmd)
			if err != nil {
				return err
			}
			roster, err := svc.Roster(ctx)
			if err != nil {
				return err
			}
			win := patients.Paginate(patients.Search(roster, q), page, cfg.PageSize)
			printWindow(cmd.OutOrStdout(), win)
			return nil
		},
	}
	listCmd.Flags().StringP("query", "q", "", "texto libre (nombre o id)")
	listCmd.Flags().Int("page", 1, "página")

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Búsqueda interactiva: cada línea es el texto del buscador",
		Long: `Lee líneas de stdin. Cada línea reemplaza el texto de búsqueda (con debounce).
":p N" cambia de página, ":clear" limpia la búsqueda y ":q" sale.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, ctx, err := patientsService(cmd)
			if err != nil {
				return err
			}
			return browse(ctx, svc, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(listCmd, browseCmd)
	return cmd
}

func patientsService(cmd *cobra.Command) (*patients.Service, *config.Config, context.Context, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cookie, _ := cmd.Flags().GetString("cookie")

	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, nil, err
	}
	backend, err := router.NewBackend(cfg, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	svc := patients.NewService(backend.Patients, patients.ServiceOptions{
		RosterLimit: cfg.RosterLimit,
		Logger:      newLogger(cfg),
	})
	ctx := auth.WithCredentials(cmd.Context(), cookie)
	return svc, cfg, ctx, nil
}

func browse(ctx context.Context, svc *patients.Service, cfg *config.Config, in io.Reader, out io.Writer) error {
	var mu sync.Mutex
	show := func(st patients.State) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "\nbúsqueda=%q página %d/%d (%d pacientes)\n", st.Search, st.Page, st.TotalPages, st.Total)
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, c := range st.Cards {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", c.ID, c.FullName, c.Age, c.Gender)
		}
		_ = w.Flush()
	}

	v := patients.NewView(svc, patients.ViewOptions{
		PerPage:     cfg.PageSize,
		SearchDelay: cfg.SearchDebounce,
		FilterMode:  patients.ParseFilterMode(cfg.FilterMode),
		APIURL:      cfg.ClinicAPIURL,
		OnChange:    show,
	})
	defer v.Close()

	if err := v.LoadRoster(ctx); err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == ":q":
			return nil
		case line == ":clear":
			v.ApplySearch("")
			v.FlushSearch()
		case strings.HasPrefix(line, ":p "):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ":p ")))
			if err != nil || n < 1 {
				fmt.Fprintln(os.Stderr, "página inválida")
				continue
			}
			v.FlushSearch()
			v.SetPage(n)
		default:
			v.ApplySearch(line)
		}
	}
	// stdin cerrado: aplicar lo último tecleado antes de salir
	v.FlushSearch()
	return sc.Err()
}

func printWindow(out io.Writer, win patients.Window[patients.Patient]) {
	fmt.Fprintf(out, "página %d/%d (%d pacientes)\n", win.Page, win.TotalPages, win.Total)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tEDAD\tSEXO\tÚLTIMA VISITA")
	for _, p := range win.Items {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", p.ID, p.FullName, p.Age, p.Gender, p.LastVisit)
	}
	_ = w.Flush()
}
