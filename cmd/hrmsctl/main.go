// Command hrmsctl drives the HRMS API from a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/Prateek11234/hrms/internal/client"
	"github.com/Prateek11234/hrms/internal/config"
	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/domain/employee"
	"github.com/Prateek11234/hrms/internal/pkg/apifetch"
	"github.com/Prateek11234/hrms/internal/pkg/notify"
	"github.com/Prateek11234/hrms/internal/roster"
	"github.com/Prateek11234/hrms/internal/view"
)

const usage = `usage: hrmsctl <command> [flags]

commands:
  dashboard                              today's summary
  employees                              list employees
  add -id ID -name NAME -email E -dept D create an employee
  delete ID                              delete an employee and their attendance
  attendance ID [-from D] [-to D] [-status S]
                                         list attendance records
  mark ID -status S [-date D]            mark attendance (date defaults to today)
  export ID -o FILE [-from D] [-to D] [-status S]
                                         write attendance as XLSX
  import FILE                            create employees from an XLSX roster
`

// errFailed reports that the command already printed its failure.
var errFailed = errors.New("command failed")

type cli struct {
	api *client.Client
	bus *notify.Bus
	out io.Writer
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if os.Getenv("HRMS_DEBUG") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bus := notify.NewBus(cfg.NotifyTTL)
	notifications, unsubscribe := bus.Subscribe()
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for n := range notifications {
			printNotification(os.Stderr, n)
		}
	}()

	c := &cli{
		api: client.New(apifetch.New(cfg.APIBaseURL,
			apifetch.WithTimeout(cfg.Timeout),
			apifetch.WithLogger(logger),
		)),
		bus: bus,
		out: os.Stdout,
	}

	err = c.run(ctx, os.Args[1], os.Args[2:])
	unsubscribe()
	<-printed

	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "dashboard":
		return c.dashboard(ctx)
	case "employees":
		return c.employees(ctx)
	case "add":
		return c.add(ctx, args)
	case "delete":
		return c.delete(ctx, args)
	case "attendance":
		return c.attendance(ctx, args)
	case "mark":
		return c.mark(ctx, args)
	case "export":
		return c.export(ctx, args)
	case "import":
		return c.importRoster(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	}
	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("unknown command %q", cmd)
}

func (c *cli) dashboard(ctx context.Context) error {
	page := view.NewDashboardPage(c.api, c.bus)
	page.Mount(ctx)
	defer page.Unmount()

	st := page.State()
	if st.Phase != view.Ready {
		return errFailed
	}
	s := st.Data
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Date\t%s\n", s.TodayDate)
	fmt.Fprintf(w, "Employees\t%d\n", s.EmployeeCount)
	fmt.Fprintf(w, "Attendance records\t%d\n", s.AttendanceRecords)
	fmt.Fprintf(w, "Present today\t%d\n", s.TodayPresent)
	fmt.Fprintf(w, "Absent today\t%d\n", s.TodayAbsent)
	fmt.Fprintf(w, "Unmarked today\t%d\n", s.Unmarked())
	return w.Flush()
}

func (c *cli) employees(ctx context.Context) error {
	page := view.NewEmployeesPage(c.api, c.bus)
	page.Mount(ctx)
	defer page.Unmount()

	st := page.State()
	if st.Phase != view.Ready {
		return errFailed
	}
	if len(st.Data) == 0 {
		fmt.Fprintln(c.out, "No employees yet.")
		return nil
	}
	printEmployees(c.out, st.Data)
	return nil
}

func (c *cli) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	var req employee.CreateEmployeeRequest
	fs.StringVar(&req.EmployeeID, "id", "", "employee id")
	fs.StringVar(&req.FullName, "name", "", "full name")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Department, "dept", "", "department")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page := view.NewEmployeesPage(c.api, c.bus)
	defer page.Unmount()
	if _, err := page.Create(ctx, req); err != nil {
		return errFailed
	}
	return nil
}

func (c *cli) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("delete needs exactly one employee id")
	}
	page := view.NewEmployeesPage(c.api, c.bus)
	defer page.Unmount()
	if err := page.Delete(ctx, args[0]); err != nil {
		return errFailed
	}
	return nil
}

// filterFlags registers -from, -to and -status on fs.
func filterFlags(fs *flag.FlagSet) func() (attendance.Filter, error) {
	from := fs.String("from", "", "start date, YYYY-MM-DD")
	to := fs.String("to", "", "end date, YYYY-MM-DD")
	status := fs.String("status", "", "Present or Absent")
	return func() (attendance.Filter, error) {
		q := url.Values{}
		if *from != "" {
			q.Set("start_date", *from)
		}
		if *to != "" {
			q.Set("end_date", *to)
		}
		if *status != "" {
			q.Set("status", *status)
		}
		return attendance.ParseFilter(q)
	}
}

// splitID takes the leading positional employee id so flags may follow it.
func splitID(cmd string, args []string) (string, []string, error) {
	if len(args) == 0 || args[0] == "" || args[0][0] == '-' {
		return "", nil, fmt.Errorf("%s needs an employee id", cmd)
	}
	return args[0], args[1:], nil
}

func (c *cli) attendance(ctx context.Context, args []string) error {
	id, rest, err := splitID("attendance", args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("attendance", flag.ContinueOnError)
	filter := filterFlags(fs)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	f, err := filter()
	if err != nil {
		return err
	}

	page := view.NewAttendancePage(c.api, c.bus, id)
	if err := page.SetFilter(f); err != nil {
		return err
	}
	page.Mount(ctx)
	defer page.Unmount()

	st := page.State()
	if st.Phase != view.Ready {
		return errFailed
	}
	if len(st.Data) == 0 {
		fmt.Fprintln(c.out, "No attendance records.")
		return nil
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSTATUS\tRECORDED AT")
	for _, r := range st.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Date, r.Status, r.CreatedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintf(w, "\nPresent days\t%d\n", page.PresentCount())
	return w.Flush()
}

func (c *cli) mark(ctx context.Context, args []string) error {
	id, rest, err := splitID("mark", args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("mark", flag.ContinueOnError)
	date := fs.String("date", attendance.DateOf(time.Now()).String(), "day to mark, YYYY-MM-DD")
	status := fs.String("status", string(attendance.StatusPresent), "Present or Absent")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	page := view.NewAttendancePage(c.api, c.bus, id)
	defer page.Unmount()
	if _, err := page.Mark(ctx, attendance.MarkRequest{Date: *date, Status: attendance.Status(*status)}); err != nil {
		return errFailed
	}
	return nil
}

func (c *cli) export(ctx context.Context, args []string) error {
	id, rest, err := splitID("export", args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", "", "output file")
	filter := filterFlags(fs)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("export needs -o FILE")
	}
	f, err := filter()
	if err != nil {
		return err
	}

	data, err := c.api.ExportAttendance(ctx, id, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Fprintf(c.out, "Wrote %s (%d bytes)\n", *out, len(data))
	return nil
}

func (c *cli) importRoster(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("import needs exactly one file")
	}
	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := roster.Parse(file)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	page := view.NewEmployeesPage(c.api, c.bus)
	defer page.Unmount()
	report := roster.Import(ctx, page, rows)

	fmt.Fprintf(c.out, "Imported %d of %d employees\n", len(report.Created), len(rows))
	if len(report.Failures) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROW\tEMPLOYEE ID\tERROR")
	for _, f := range report.Failures {
		msg, ok := apifetch.Message(f.Err)
		if !ok {
			msg = f.Err.Error()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", f.Line, f.EmployeeID, msg)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return errFailed
}

func printEmployees(out io.Writer, employees []employee.Employee) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EMPLOYEE ID\tNAME\tEMAIL\tDEPARTMENT\tCREATED")
	for _, e := range employees {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.EmployeeID, e.FullName, e.Email, e.Department, e.CreatedAt.Local().Format(time.DateOnly))
	}
	_ = w.Flush()
}

func printNotification(out io.Writer, n notify.Notification) {
	mark := "✓"
	if n.Kind == notify.KindError {
		mark = "✗"
	}
	fmt.Fprintf(out, "%s %s: %s\n", mark, n.Title, n.Message)
}
