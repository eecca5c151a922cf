package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"stockboard/internal/board"
	"stockboard/pkg/inventory"
)

func (a *app) controller(s *session) *board.Controller {
	return board.NewController(s.store, newLinePrompter(a.stdin, a.stdout))
}

// position holds the 1-based -column and -item flags shared by item commands.
type position struct {
	column int
	item   int
}

func (p *position) setFlags(f *flag.FlagSet) {
	f.IntVar(&p.column, "column", 0, "column number (1-5)")
	f.IntVar(&p.item, "item", 0, "item number within the column, from 1")
}

// resolve converts the flags to zero-based indexes, reporting bad ones.
func (p *position) resolve(ctx context.Context, s *session) (int, int, error) {
	column, err := columnIndex(p.column)
	if err != nil {
		return 0, 0, s.store.Reject(ctx, err)
	}
	return column, p.item - 1, nil
}

type addCmd struct {
	column      int
	name        string
	description string
	quantity    string
}

func (*addCmd) Name() string { return "add" }
func (*addCmd) Synopsis() string { return "add a product to a column" }
func (*addCmd) Usage() string {
	return `stockboard add -name <name> [-description <text>] [-quantity <n>] [-column <1-5>]

  Without -column the target column is asked on stdin.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.column, "column", 0, "target column (1-5); asked when omitted")
	f.StringVar(&c.name, "name", "", "product name")
	f.StringVar(&c.description, "description", "", "product description")
	f.StringVar(&c.quantity, "quantity", "1", "quantity, a whole number greater than 0")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, args, func(a *app, s *session) error {
		qty, err := inventory.ParseQuantity(c.quantity)
		if err != nil {
			return s.store.Reject(ctx, err)
		}
		it := inventory.Item{Name: c.name, Description: c.description, Quantity: qty}
		var target *int
		if c.column != 0 {
			column, err := columnIndex(c.column)
			if err != nil {
				return s.store.Reject(ctx, err)
			}
			target = &column
		}
		return a.controller(s).AddItem(ctx, target, it)
	})
}

type editCmd struct {
	position
}

func (*editCmd) Name() string { return "edit" }
func (*editCmd) Synopsis() string { return "edit a product's name, description and quantity" }
func (*editCmd) Usage() string {
	return `stockboard edit -column <1-5> -item <n> [-name <name>] [-description <text>] [-quantity <n>]

  Flags that are not given keep the current value. With none of -name,
  -description or -quantity every field is asked on stdin.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.String("name", "", "new name")
	f.String("description", "", "new description")
	f.String("quantity", "", "new quantity")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	set := map[string]string{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = fl.Value.String() })
	return withSession(ctx, args, func(a *app, s *session) error {
		column, index, err := c.resolve(ctx, s)
		if err != nil {
			return err
		}
		_, hasName := set["name"]
		_, hasDesc := set["description"]
		_, hasQty := set["quantity"]
		if !hasName && !hasDesc && !hasQty {
			return a.controller(s).EditItem(ctx, column, index)
		}
		it, err := s.store.Item(column, index)
		if err != nil {
			return s.store.Reject(ctx, err)
		}
		if hasName {
			it.Name = set["name"]
		}
		if hasDesc {
			it.Description = set["description"]
		}
		if hasQty {
			if it.Quantity, err = inventory.ParseQuantity(set["quantity"]); err != nil {
				return s.store.Reject(ctx, err)
			}
		}
		return s.store.EditItem(ctx, column, index, it)
	})
}

type deleteCmd struct {
	position
	yes bool
}

func (*deleteCmd) Name() string { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a product" }
func (*deleteCmd) Usage() string {
	return `stockboard delete -column <1-5> -item <n> [-y]
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *deleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, args, func(a *app, s *session) error {
		column, index, err := c.resolve(ctx, s)
		if err != nil {
			return err
		}
		if c.yes {
			return s.store.DeleteItem(ctx, column, index)
		}
		return a.controller(s).DeleteItem(ctx, column, index)
	})
}

type moveCmd struct {
	position
	to string
}

func (*moveCmd) Name() string { return "move" }
func (*moveCmd) Synopsis() string { return "move a product to the end of another column" }
func (*moveCmd) Usage() string {
	return `stockboard move -column <1-5> -item <n> [-to <1-5>]

  Without -to the target column is asked on stdin.
`
}

func (c *moveCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.to, "to", "", "target column (1-5)")
}

func (c *moveCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, args, func(a *app, s *session) error {
		column, index, err := c.resolve(ctx, s)
		if err != nil {
			return err
		}
		if c.to == "" {
			return a.controller(s).MoveItem(ctx, column, index)
		}
		target, err := inventory.ParseColumnNumber(c.to)
		if err != nil {
			return s.store.Reject(ctx, err)
		}
		return s.store.MoveItem(ctx, column, index, target)
	})
}

type menuCmd struct {
	position
}

func (*menuCmd) Name() string { return "menu" }
func (*menuCmd) Synopsis() string { return "choose edit, delete or move for a product interactively" }
func (*menuCmd) Usage() string {
	return `stockboard menu -column <1-5> -item <n>
`
}

func (c *menuCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *menuCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, args, func(a *app, s *session) error {
		column, index, err := c.resolve(ctx, s)
		if err != nil {
			return err
		}
		return a.controller(s).ItemMenu(ctx, column, index)
	})
}
