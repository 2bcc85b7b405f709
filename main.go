package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"console/internal/api"
	"console/internal/auth"
	"console/internal/config"
	"console/internal/dispatch"
	"console/internal/domain"
	"console/internal/export"
	"console/internal/list"
	"console/internal/lookup"
	"console/internal/resources"
)

func main() {
	var (
		resource  = flag.String("resource", "contracts", "daftar yang ditampilkan: contracts|drivers|vehicles|tasks|dispatch")
		search    = flag.String("search", "", "teks pencarian")
		status    = flag.String("status", "", "filter status")
		sortField = flag.String("sort", "", "kolom pengurutan")
		sortDesc  = flag.Bool("desc", false, "urut menurun")
		page      = flag.Int("page", 1, "nomor halaman")
		pageSize  = flag.Int("page-size", 0, "ukuran halaman (10/20/50/100)")
		exportAs  = flag.String("export", "", "ekspor halaman: pdf|csv")
		watch     = flag.Bool("watch", false, "pantau dashboard dispatch terus-menerus")
	)
	flag.Parse()

	env := config.LoadEnv()
	if *pageSize == 0 {
		*pageSize = env.PageSize
	}

	authCtx := auth.NewContext(tokenSource(env), func() {
		log.Println("sesi berakhir, perbarui API_TOKEN lalu jalankan ulang")
	})
	client := api.NewClient(env.APIBaseURL, env.Timeout, authCtx)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch *resource {
	case "contracts":
		err = runContracts(ctx, client, *search, *status, *sortField, *sortDesc, *page, *pageSize, *exportAs)
	case "drivers":
		err = runDrivers(ctx, client, *search, *status, *sortField, *sortDesc, *page, *pageSize, *exportAs)
	case "vehicles":
		err = runVehicles(ctx, client, *exportAs)
	case "tasks":
		err = runTasks(ctx, client)
	case "dispatch":
		err = runDispatch(ctx, client, env.WatchInterval, *watch)
	default:
		err = fmt.Errorf("resource %q tidak dikenal", *resource)
	}
	if err != nil {
		log.Fatalf("gagal: %s", domain.UserMessage(err))
	}
}

func tokenSource(env config.Env) auth.TokenSource {
	if env.TokenFile != "" {
		return auth.FileToken(env.TokenFile)
	}
	if env.APIToken != "" {
		return auth.StaticToken(env.APIToken)
	}
	return auth.EnvToken("API_TOKEN")
}

func buildQuery(search, status, sortField string, desc bool, page, pageSize int) list.Query {
	q := list.NewQuery(pageSize)
	q.SetSearch(search)
	if status != "" {
		q.SetFilter("status", status)
	}
	if sortField != "" {
		q.SetSort(sortField)
		if desc {
			q.SetSortOrder(list.Desc)
		}
	}
	q.SetPage(page)
	return q
}

func runContracts(ctx context.Context, client *api.Client, search, status, sortField string, desc bool, page, pageSize int, exportAs string) error {
	ctrl := list.NewController[resources.Contract](client, "kontrak", resources.PathContracts, buildQuery(search, status, sortField, desc, page, pageSize))
	defer ctrl.Close()
	if err := ctrl.Reload(ctx); err != nil {
		return err
	}
	res := ctrl.Snapshot()

	stats := resources.SummarizeContracts(res.Items)
	fmt.Printf("Kontrak aktif: %d (%s) | Kedaluwarsa: %d\n\n", stats.ActiveCount, stats.ActiveLabel, stats.ExpiredCount)

	accounts := lookup.NewResolver("akun", resources.AccountSource(client))
	rows := make([][]string, 0, len(res.Items))
	for _, c := range res.Items {
		rows = append(rows, resources.ContractRow(c, accounts.Label(ctx, c.AccountID)))
	}
	if exportAs != "" {
		return exportPage(exportAs, "kontrak", resources.ContractColumns(), rows, res.Page, res.TotalPages, res.Total)
	}
	printTable(resources.ContractColumns(), rows, res.Page, res.TotalPages, res.Total)
	return nil
}

func runDrivers(ctx context.Context, client *api.Client, search, status, sortField string, desc bool, page, pageSize int, exportAs string) error {
	ctrl := list.NewController[resources.Driver](client, "sopir", resources.PathDrivers, buildQuery(search, status, sortField, desc, page, pageSize))
	defer ctrl.Close()
	if err := ctrl.Reload(ctx); err != nil {
		return err
	}
	res := ctrl.Snapshot()
	rows := make([][]string, 0, len(res.Items))
	for _, d := range res.Items {
		rows = append(rows, resources.DriverRow(d))
	}
	if exportAs != "" {
		return exportPage(exportAs, "sopir", resources.DriverColumns(), rows, res.Page, res.TotalPages, res.Total)
	}
	printTable(resources.DriverColumns(), rows, res.Page, res.TotalPages, res.Total)
	return nil
}

func runVehicles(ctx context.Context, client *api.Client, exportAs string) error {
	ctrl := list.NewController[resources.Vehicle](client, "kendaraan", resources.PathVehiclesOld, list.NewQuery(100))
	defer ctrl.Close()
	if err := ctrl.Reload(ctx); err != nil {
		return err
	}
	res := ctrl.Snapshot()
	rows := make([][]string, 0, len(res.Items))
	for _, v := range res.Items {
		rows = append(rows, resources.VehicleRow(v))
	}
	if exportAs != "" {
		return exportPage(exportAs, "kendaraan", resources.VehicleColumns(), rows, res.Page, res.TotalPages, res.Total)
	}
	printTable(resources.VehicleColumns(), rows, res.Page, res.TotalPages, res.Total)
	return nil
}

func runTasks(ctx context.Context, client *api.Client) error {
	page, err := client.List(ctx, resources.PathTasks, nil)
	if err != nil {
		return err
	}
	tasks, err := list.DecodeItems[resources.Task](page.Items)
	if err != nil {
		return err
	}
	byStatus := make(map[string][]resources.Task)
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}
	for _, col := range resources.TaskColumns {
		fmt.Printf("== %s (%d)\n", col, len(byStatus[col]))
		for _, t := range byStatus[col] {
			fmt.Printf("   %-8s %-40s %s\n", t.ID, t.Title, t.Assignee)
		}
	}
	return nil
}

func runDispatch(ctx context.Context, client *api.Client, interval time.Duration, watch bool) error {
	p := dispatch.NewPoller(client, resources.PathDispatchBoard, interval)
	if !watch {
		if err := p.Refresh(ctx); err != nil {
			return err
		}
		printDispatch(p)
		return nil
	}

	go p.Run(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("pemantauan dihentikan")
			return nil
		case <-ticker.C:
			printDispatch(p)
		}
	}
}

func printDispatch(p *dispatch.Poller) {
	snap, err, ok := p.Snapshot()
	if !ok {
		if err != nil {
			fmt.Printf("dashboard belum tersedia: %s\n", domain.UserMessage(err))
		}
		return
	}
	fmt.Printf("[%s] kendaraan=%d peringatan=%d\n", snap.GeneratedAt, len(snap.Vehicles), len(snap.Alerts))
	for _, d := range snap.AIDecisions {
		fmt.Printf("   %-8s %-6.0f%% %-10s %s\n", d.ID, d.Confidence*100, d.Status, d.Summary)
	}
}

func printTable(cols []export.Column, rows [][]string, page, totalPages, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r, "\t"))
	}
	w.Flush()
	fmt.Printf("\nHalaman %d dari %d (%d total)\n", page, totalPages, total)
}

func exportPage(format, name string, cols []export.Column, rows [][]string, page, totalPages, total int) error {
	meta := export.Meta{Page: page, TotalPages: totalPages, Total: total}
	switch format {
	case "pdf":
		data, filename, err := export.BuildPagePDF(name, cols, rows, meta)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filename, data, 0o644); err != nil {
			return err
		}
		log.Printf("tersimpan: %s", filename)
		return nil
	case "csv":
		filename := fmt.Sprintf("%s_p%d.csv", name, page)
		f, err := os.Create(filename)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteCSV(f, cols, rows); err != nil {
			return err
		}
		log.Printf("tersimpan: %s", filename)
		return nil
	default:
		return fmt.Errorf("format ekspor %q tidak dikenal", format)
	}
}
