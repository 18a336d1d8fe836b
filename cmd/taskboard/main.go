package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/yukikurage/taskboard-client/internal/app"
	"github.com/yukikurage/taskboard-client/internal/config"
	"github.com/yukikurage/taskboard-client/internal/constants"
	"github.com/yukikurage/taskboard-client/internal/models"
)

const usage = `usage: taskboard <command> [flags] [args]

commands:
  register      -username -email -password [-name]
  login         -username|-email -password
  logout
  whoami
  boards
  columns       <board-id>
  tasks         <column-id>
  create-board  -name [-color] [-icon]
  create-column -board -name [-color]
  create-task   -column -title [-description] [-assignee] [-priority] [-start] [-end]
`

var errUsage = errors.New("invalid usage")

func main() {
	cfg := config.Load()
	if err := run(context.Background(), cfg, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer, opts ...app.Option) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]

	a, err := app.New(ctx, cfg, opts...)
	if err != nil {
		return fmt.Errorf("start client: %w", err)
	}
	defer a.Close()

	switch cmd {
	case "register":
		return register(ctx, a, args, out)
	case "login":
		return login(ctx, a, args, out)
	case "logout":
		a.Session.Logout(ctx)
		fmt.Fprintln(out, "logged out")
		return nil
	case "whoami":
		user, ok := a.Session.CurrentUser()
		if !ok {
			return errors.New("not logged in")
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", user.ID, user.Name, user.Email)
		return nil
	case "boards":
		return listBoards(ctx, a, out)
	case "columns":
		if len(args) != 1 {
			return errUsage
		}
		return listColumns(ctx, a, args[0], out)
	case "tasks":
		if len(args) != 1 {
			return errUsage
		}
		return listTasks(ctx, a, args[0], out)
	case "create-board":
		return createBoard(ctx, a, args, out)
	case "create-column":
		return createColumn(ctx, a, args, out)
	case "create-task":
		return createTask(ctx, a, args, out)
	default:
		return errUsage
	}
}

func credentials(name string, args []string, withName bool) (models.Credentials, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var creds models.Credentials
	fs.StringVar(&creds.Username, "username", "", "account username")
	fs.StringVar(&creds.Email, "email", "", "account email")
	fs.StringVar(&creds.Password, "password", "", "account password")
	if withName {
		fs.StringVar(&creds.Name, "name", "", "display name")
	}
	if err := fs.Parse(args); err != nil {
		return creds, errUsage
	}
	return creds, nil
}

func register(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	creds, err := credentials("register", args, true)
	if err != nil {
		return err
	}
	if _, err := a.Session.Register(ctx, creds); err != nil {
		return err
	}
	fmt.Fprintln(out, constants.MessageRegistered)
	return nil
}

func login(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	creds, err := credentials("login", args, false)
	if err != nil {
		return err
	}
	outcome, err := a.Session.Login(ctx, creds)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "logged in as %s\n", outcome.User.Name)
	return nil
}

func listBoards(ctx context.Context, a *app.App, out io.Writer) error {
	boards := a.Boards()
	boards.Fetch(ctx)
	if err := boards.Err(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR\tICON")
	for _, b := range boards.Boards() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, b.Name, b.Color, b.Icon)
	}
	return w.Flush()
}

func listColumns(ctx context.Context, a *app.App, boardID string, out io.Writer) error {
	columns := a.Columns(boardID)
	columns.Fetch(ctx)
	if err := columns.Err(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPOSITION\tTASKS")
	for _, c := range columns.Columns() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", c.ID, c.Name, c.Position, len(c.Tasks))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	names := make([]string, 0, len(columns.Members()))
	for _, m := range columns.Members() {
		names = append(names, m.Name)
	}
	fmt.Fprintf(out, "members: %s\n", strings.Join(names, ", "))
	return nil
}

func listTasks(ctx context.Context, a *app.App, columnID string, out io.Writer) error {
	tasks := a.Tasks(columnID)
	tasks.Fetch(ctx)
	if err := tasks.Err(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tASSIGNEE\tDUE")
	for _, t := range tasks.Tasks() {
		due := ""
		if t.EndDate != nil {
			due = t.EndDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, constants.PriorityLabels[t.Priority], t.Assignee, due)
	}
	return w.Flush()
}

func createBoard(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create-board", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var form models.BoardForm
	fs.StringVar(&form.Name, "name", "", "board name")
	fs.StringVar(&form.Color, "color", constants.DefaultBoardColor, "hex color")
	fs.StringVar(&form.Icon, "icon", constants.DefaultBoardIcon, "board icon")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	board, err := a.Boards().Create(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, board.ID)
	return nil
}

func createColumn(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create-column", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var form models.ColumnForm
	fs.StringVar(&form.BoardID, "board", "", "board id")
	fs.StringVar(&form.Name, "name", "", "column name")
	fs.StringVar(&form.Color, "color", constants.DefaultColumnColor, "hex color")
	if err := fs.Parse(args); err != nil || form.BoardID == "" {
		return errUsage
	}

	column, err := a.Columns(form.BoardID).Create(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, column.ID)
	return nil
}

func createTask(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create-task", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var form models.TaskForm
	column := fs.String("column", "", "column id")
	fs.StringVar(&form.Title, "title", "", "task title")
	fs.StringVar(&form.Description, "description", "", "task description")
	fs.StringVar(&form.Assignee, "assignee", "", "assignee name")
	fs.IntVar(&form.Priority, "priority", constants.DefaultTaskPriority, "priority 1-5")
	fs.StringVar(&form.StartDate, "start", "", "start date YYYY-MM-DD")
	fs.StringVar(&form.EndDate, "end", "", "end date YYYY-MM-DD")
	if err := fs.Parse(args); err != nil || *column == "" {
		return errUsage
	}

	task, err := a.Tasks(*column).Create(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, task.ID)
	return nil
}
