package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"stockboard/internal/board"
	"stockboard/pkg/inventory"
)

type showCmd struct{}

func (*showCmd) Name() string { return "show" }
func (*showCmd) Synopsis() string { return "print the board column by column" }
func (*showCmd) Usage() string {
	return `stockboard show

  Prints the inventory name, then every column with its category and items.
`
}
func (*showCmd) SetFlags(*flag.FlagSet) {}

func (*showCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, args, func(a *app, s *session) error {
		st := s.store.State()
		fmt.Fprintln(a.stdout, st.InventoryName)
		for i, col := range st.Columns {
			fmt.Fprintf(a.stdout, "\n%d. %s (%d)\n", i+1, st.Categories[i], len(col))
			for j, it := range col {
				line := fmt.Sprintf("  %d) %s x%d", j+1, it.Name, it.Quantity)
				if it.Description != "" {
					line += " - " + it.Description
				}
				fmt.Fprintln(a.stdout, line)
			}
		}
		return nil
	})
}

type searchCmd struct {
	watch    bool
	debounce time.Duration
}

func (*searchCmd) Name() string { return "search" }
func (*searchCmd) Synopsis() string { return "search items by name, description, location or category" }
func (*searchCmd) Usage() string {
	return `stockboard search [<query>...]
stockboard search -watch [-debounce <duration>]

  Case-insensitive substring search. With no query every item is listed.
  With -watch each stdin line is taken as the search box contents: a line
  is searched once no further line arrives for the debounce period, and the
  last line is searched immediately at end of input.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.watch, "watch", false, "search as queries are typed on stdin")
	f.DurationVar(&c.debounce, "debounce", board.DefaultDebounce, "quiet period before a typed query is searched")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	return withSession(ctx, args, func(a *app, s *session) error {
		if c.watch {
			return c.watchInput(a, s)
		}
		return writeRecords(a.stdout, s.store.Search(query))
	})
}

func (c *searchCmd) watchInput(a *app, s *session) error {
	var (
		mu      sync.Mutex
		written error
	)
	search := board.NewSearchSession(s.store, c.debounce, func(query string, results []inventory.SearchRecord) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(a.stdout, "search %q: %d result(s)\n", query, len(results))
		if err := writeRecords(a.stdout, results); err != nil && written == nil {
			written = err
		}
	})
	defer search.Close()

	var last string
	sc := bufio.NewScanner(a.stdin)
	for sc.Scan() {
		last = strings.TrimSpace(sc.Text())
		search.Input(last)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	search.Submit(last)
	mu.Lock()
	defer mu.Unlock()
	return written
}

func writeRecords(out io.Writer, records []inventory.SearchRecord) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tSTATUS\tLOCATION\tCATEGORY\tDESCRIPTION")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Quantity, r.StockStatus(), r.Location, r.Category, r.Description)
	}
	return w.Flush()
}

type totalsCmd struct{}

func (*totalsCmd) Name() string { return "totals" }
func (*totalsCmd) Synopsis() string { return "print the summed quantity per product name" }
func (*totalsCmd) Usage() string {
	return `stockboard totals
`
}
func (*totalsCmd) SetFlags(*flag.FlagSet) {}

func (*totalsCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, args, func(a *app, s *session) error {
		totals := s.store.Totals()
		w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
		for i, name := range totals.Names {
			fmt.Fprintf(w, "%s\t%d\n", name, totals.Quantities[i])
		}
		return w.Flush()
	})
}

type renameCmd struct {
	column int
}

func (*renameCmd) Name() string { return "rename" }
func (*renameCmd) Synopsis() string { return "rename the inventory or a column category" }
func (*renameCmd) Usage() string {
	return `stockboard rename [-column <1-5>] [<name>...]

  Without -column the inventory itself is renamed. Without a name the current
  one is offered for editing on stdin.
`
}

func (c *renameCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.column, "column", 0, "column whose category to rename (1-5)")
}

func (c *renameCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	return withSession(ctx, args, func(a *app, s *session) error {
		if c.column == 0 {
			if name == "" {
				return a.controller(s).RenameInventory(ctx)
			}
			return s.store.RenameInventory(ctx, name)
		}
		column, err := columnIndex(c.column)
		if err != nil {
			return s.store.Reject(ctx, err)
		}
		if name == "" {
			return a.controller(s).RenameCategory(ctx, column)
		}
		return s.store.RenameCategory(ctx, column, name)
	})
}
