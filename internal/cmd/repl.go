package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"library-catalog/library"
)

const helpText = `Available commands:
  Circulation: checkout <patron> <item>, return <item>, request <patron> <item>
  Fines:       pay <patron> <amount>, overdue <patron>, fines <patron>
  Clock:       advance [days]
  Catalog:     items, patrons, status
  History:     history <item>
  System:      help, exit`

// Shell is the line-oriented front end over a LibraryManager.
type Shell struct {
	mgr         *library.LibraryManager
	out         io.Writer
	interactive bool
}

// NewShell returns a shell writing to out. Prompts are only printed when
// interactive is set.
func NewShell(mgr *library.LibraryManager, out io.Writer, interactive bool) *Shell {
	return &Shell{mgr: mgr, out: out, interactive: interactive}
}

// Run reads commands from in until EOF or exit.
func (s *Shell) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	if s.interactive {
		printHeader(s.out, "Library circulation simulator")
		printLine(s.out, helpText)
	}

	for {
		if s.interactive {
			fmt.Fprint(s.out, "\n> ")
		}
		if !scanner.Scan() {
			break
		}
		if quit := s.Exec(scanner.Text()); quit {
			return nil
		}
	}
	return scanner.Err()
}

// Exec runs a single command line and reports whether the shell should stop.
func (s *Shell) Exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "checkout":
		s.handleCheckout(args)
	case "return":
		s.handleReturn(args)
	case "request":
		s.handleRequest(args)
	case "pay":
		s.handlePay(args)
	case "advance":
		s.handleAdvance(args)
	case "items":
		s.handleListItems()
	case "patrons":
		s.handleListPatrons()
	case "status":
		s.handleStatus()
	case "overdue":
		s.handleOverdue(args)
	case "fines":
		s.handleFines(args)
	case "history":
		s.handleHistory(args)
	case "help":
		printLine(s.out, helpText)
	case "exit", "quit":
		if s.interactive {
			printLine(s.out, "Goodbye!")
		}
		return true
	default:
		printError(s.out, "Unknown command %q. Type 'help' to list commands.", cmd)
	}
	return false
}

func (s *Shell) wantArgs(args []string, n int, usage string) bool {
	if len(args) != n {
		printError(s.out, "usage: %s", usage)
		return false
	}
	return true
}

func (s *Shell) handleCheckout(args []string) {
	if !s.wantArgs(args, 2, "checkout <patron> <item>") {
		return
	}
	printStatus(s.out, s.mgr.CheckOut(args[0], args[1]))
}

func (s *Shell) handleReturn(args []string) {
	if !s.wantArgs(args, 1, "return <item>") {
		return
	}
	printStatus(s.out, s.mgr.Return(args[0]))
}

func (s *Shell) handleRequest(args []string) {
	if !s.wantArgs(args, 2, "request <patron> <item>") {
		return
	}
	printStatus(s.out, s.mgr.Request(args[0], args[1]))
}

func (s *Shell) handlePay(args []string) {
	if !s.wantArgs(args, 2, "pay <patron> <amount>") {
		return
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		printError(s.out, "Invalid amount: %s", args[1])
		return
	}
	printStatus(s.out, s.mgr.PayFine(args[0], amount))
}

func (s *Shell) handleAdvance(args []string) {
	days := 1
	if len(args) > 1 {
		printError(s.out, "usage: advance [days]")
		return
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			printError(s.out, "Invalid number of days: %s", args[0])
			return
		}
		days = n
	}
	printLine(s.out, "Current date: %d", s.mgr.AdvanceDays(days))
}

func (s *Shell) handleListItems() {
	snap := s.mgr.Snapshot()
	if len(snap.Items) == 0 {
		printLine(s.out, "No items in library.")
		return
	}
	printHeader(s.out, "%-8s %-30s %-6s %-14s %-20s", "ID", "Title", "Kind", "Location", "Borrower")
	printLine(s.out, "%s", strings.Repeat("-", 82))
	for _, is := range snap.Items {
		printLine(s.out, "%s", library.PrettyItem(s.mgr.Library().LookupLibraryItemFromID(is.ID)))
	}
}

func (s *Shell) handleListPatrons() {
	snap := s.mgr.Snapshot()
	if len(snap.Patrons) == 0 {
		printLine(s.out, "No patrons registered.")
		return
	}
	printHeader(s.out, "%-8s %-30s %-10s %s", "ID", "Name", "Fine", "Checked out")
	printLine(s.out, "%s", strings.Repeat("-", 70))
	for _, p := range snap.Patrons {
		printLine(s.out, "%-8s %-30s %-10.2f %s", p.ID, p.Name, p.Fine, strings.Join(p.CheckedOut, ", "))
	}
}

func (s *Shell) handleStatus() {
	data, err := s.mgr.Snapshot().JSON()
	if err != nil {
		printError(s.out, "Error rendering status: %v", err)
		return
	}
	printLine(s.out, "%s", data)
}

func (s *Shell) handleOverdue(args []string) {
	if !s.wantArgs(args, 1, "overdue <patron>") {
		return
	}
	items, ok := s.mgr.OverdueItems(args[0])
	if !ok {
		printStatus(s.out, library.StatusPatronNotFound)
		return
	}
	if len(items) == 0 {
		printLine(s.out, "No overdue items.")
		return
	}
	date := s.mgr.Library().CurrentDate()
	for _, it := range items {
		printLine(s.out, "%s %s (%d days late)", it.ID(), it.Title(), date-it.DateCheckedOut()-it.CheckOutLength())
	}
}

func (s *Shell) handleFines(args []string) {
	if !s.wantArgs(args, 1, "fines <patron>") {
		return
	}
	patron := s.mgr.Library().LookupPatronFromID(args[0])
	if patron == nil {
		printStatus(s.out, library.StatusPatronNotFound)
		return
	}
	accrued, err := s.mgr.TotalFines(patron.ID())
	if err != nil {
		printError(s.out, "Error reading journal: %v", err)
		return
	}
	printLine(s.out, "Balance: %.2f (accrued %.2f)", patron.Fine(), accrued)
}

func (s *Shell) handleHistory(args []string) {
	if !s.wantArgs(args, 1, "history <item>") {
		return
	}
	events, err := s.mgr.History(args[0])
	if err != nil {
		printError(s.out, "Error reading journal: %v", err)
		return
	}
	if len(events) == 0 {
		printLine(s.out, "No history for item %s.", args[0])
		return
	}
	for _, e := range events {
		printLine(s.out, "day %-4d %-9s patron %s", e.Day, e.Kind, e.PatronID)
	}
}
