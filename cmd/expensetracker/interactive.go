package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	"expensetracker/internal/log"
)

// session is one interactive run: a long-lived loop that re-renders
// the table, statistics and activity log after every mutation, the
// way the desktop surface contract describes.
type session struct {
	a        *app
	in       *bufio.Scanner
	out      io.Writer
	criteria ledger.Criteria
}

func (a *app) interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.WithComponent(log.ComponentCLI).Info("interactive session started")
			s := &session{
				a:   a,
				in:  bufio.NewScanner(cmd.InOrStdin()),
				out: cmd.OutOrStdout(),
			}
			return s.run(cmd)
		},
	}
}

func (s *session) run(cmd *cobra.Command) error {
	fmt.Fprintln(s.out, "Expense Tracker. Type 'help' for commands, 'quit' to leave.")
	s.refresh()

	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			return s.in.Err()
		}
		fields := strings.Fields(strings.TrimSpace(s.in.Text()))
		if len(fields) == 0 {
			continue
		}
		command, rest := fields[0], fields[1:]

		// Any single failure is reported and the session continues.
		var err error
		switch command {
		case "quit", "exit":
			return nil
		case "help":
			s.help()
		case "show":
			s.refresh()
		case "add":
			err = s.add(cmd)
		case "edit":
			err = s.edit(cmd, rest)
		case "delete":
			err = s.delete(cmd, rest)
		case "filter":
			s.filter(rest)
		case "summary":
			view := s.a.svc.View(s.criteria)
			s.a.out.Summary(s.out, s.a.svc.Summarize(view))
			s.a.out.CategoryTotals(s.out, s.a.svc.CategoryTotals(view))
		case "chart":
			dir := "charts"
			if len(rest) > 0 {
				dir = rest[0]
			}
			err = s.a.renderCharts(cmd, s.a.svc.View(s.criteria), dir)
		case "export":
			err = s.export(cmd, rest)
		case "import":
			err = s.importFile(cmd, rest)
		case "log":
			s.a.out.ActivityLog(s.out, s.a.svc.Activity())
		default:
			fmt.Fprintf(s.out, "Unknown command %q, type 'help'.\n", command)
		}
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

func (s *session) help() {
	fmt.Fprint(s.out, `Commands:
  show                       redraw the table and statistics
  add                        add an expense (prompts for fields)
  edit <id>                  edit an expense (prompts, empty keeps current)
  delete <id>                delete an expense
  filter [category=C] [from=YYYY-MM-DD] [to=YYYY-MM-DD]
  filter clear               drop all filters
  summary                    statistics and category breakdown
  chart [dir]                write PNG charts (default ./charts)
  export <path>              export ledger (.csv, .xlsx or JSON)
  import <path>              replace ledger from file
  log                        show the activity log
  quit                       leave
`)
}

// refresh redraws the filtered table, the statistics block and the
// most recent activity.
func (s *session) refresh() {
	view := s.a.svc.View(s.criteria)
	if !s.criteria.IsZero() {
		fmt.Fprintln(s.out, "Filter active ('filter clear' to reset):")
	}
	s.a.out.Table(s.out, view)
	s.a.out.Summary(s.out, s.a.svc.Summarize(view))

	entries := s.a.svc.Activity()
	if len(entries) > 5 {
		entries = entries[len(entries)-5:]
	}
	if len(entries) > 0 {
		fmt.Fprintln(s.out, "Recent activity:")
		s.a.out.ActivityLog(s.out, entries)
	}
}

// prompt reads one line, returning the default when the answer is
// empty.
func (s *session) prompt(label, def string) string {
	if def != "" {
		fmt.Fprintf(s.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(s.out, "%s: ", label)
	}
	if !s.in.Scan() {
		return def
	}
	answer := strings.TrimSpace(s.in.Text())
	if answer == "" {
		return def
	}
	return answer
}

func (s *session) add(cmd *cobra.Command) error {
	in := core.RecordInput{
		Description: s.prompt("Description", ""),
		Amount:      s.prompt("Amount", ""),
		Category:    s.prompt(fmt.Sprintf("Category (%s)", strings.Join(s.a.settings.Categories, ", ")), "Other"),
		Date:        s.prompt("Date", time.Now().Format(core.DateLayout)),
	}
	rec, err := s.a.svc.Add(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Added expense #%d\n", rec.ID)
	s.refresh()
	return nil
}

func (s *session) edit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	current, err := s.a.svc.Get(id)
	if err != nil {
		return err
	}
	in := core.RecordInput{
		Description: s.prompt("Description", current.Description),
		Amount:      s.prompt("Amount", current.Amount.String()),
		Category:    s.prompt("Category", current.Category),
		Date:        s.prompt("Date", current.Date.String()),
	}
	if _, err := s.a.svc.Update(cmd.Context(), id, in); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Updated expense #%d\n", id)
	s.refresh()
	return nil
}

func (s *session) delete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := s.a.svc.Delete(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Deleted expense #%d\n", id)
	s.refresh()
	return nil
}

// filter updates the session criteria from key=value arguments. A
// malformed date bound simply constrains nothing, so there is no
// error path here.
func (s *session) filter(args []string) {
	if len(args) == 1 && args[0] == "clear" {
		s.criteria = ledger.Criteria{}
		s.refresh()
		return
	}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(s.out, "Ignoring %q, expected key=value.\n", arg)
			continue
		}
		switch key {
		case "category":
			s.criteria.Category = value
		case "from":
			s.criteria.From = value
		case "to":
			s.criteria.To = value
		default:
			fmt.Fprintf(s.out, "Ignoring unknown filter key %q.\n", key)
		}
	}
	s.refresh()
}

func (s *session) export(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: export <path>")
	}
	if err := s.a.svc.Export(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Exported to %s\n", args[0])
	return nil
}

func (s *session) importFile(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: import <path>")
	}
	n, err := s.a.svc.Import(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Imported %d expenses\n", n)
	s.refresh()
	return nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
