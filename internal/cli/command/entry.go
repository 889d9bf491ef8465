package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/data-respons-solutions/nvram/internal/cli/output"
	"github.com/data-respons-solutions/nvram/internal/core/domain"
)

// ListCommand prints every entry of the section.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "Print all entries",
		Action: listAction,
	}
}

// GetCommand prints the value of one key.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print the value of KEY",
		ArgsUsage: "KEY",
		Action:    getAction,
	}
}

// SetCommand stores one or more key/value pairs and commits them.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Store values and commit",
		ArgsUsage: "KEY VALUE [KEY VALUE...]",
		Action:    setAction,
	}
}

// DeleteCommand removes keys and commits.
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"del"},
		Usage:     "Remove keys and commit",
		ArgsUsage: "KEY [KEY...]",
		Action:    deleteAction,
	}
}

func listAction(c *cli.Context) error {
	st := stateFrom(c)
	store, closeStore, err := st.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	entries, err := store.List(st.role)
	if err != nil {
		return err
	}
	return st.formatter().Format(c.App.Writer, entries)
}

func getAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return usageError(c, "expected exactly one key")
	}
	key := c.Args().First()

	st := stateFrom(c)
	store, closeStore, err := st.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	value, err := store.Get(st.role, key)
	if err != nil {
		return err
	}

	if st.output == output.FormatText {
		_, err = fmt.Fprintf(c.App.Writer, "%s\n", value)
		return err
	}
	return st.formatter().Format(c.App.Writer, []domain.Entry{{Key: []byte(key), Value: value}})
}

func setAction(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) == 0 || len(args)%2 != 0 {
		return usageError(c, "expected key/value pairs")
	}

	st := stateFrom(c)
	store, closeStore, err := st.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	for i := 0; i < len(args); i += 2 {
		if err := store.Set(st.role, args[i], args[i+1]); err != nil {
			return fmt.Errorf("set %q: %w", args[i], err)
		}
	}
	if err := store.Commit(st.role); err != nil {
		return err
	}
	return closeStore()
}

func deleteAction(c *cli.Context) error {
	keys := c.Args().Slice()
	if len(keys) == 0 {
		return usageError(c, "expected at least one key")
	}

	st := stateFrom(c)
	store, closeStore, err := st.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	for _, key := range keys {
		if err := store.Delete(st.role, key); err != nil {
			return fmt.Errorf("delete %q: %w", key, err)
		}
	}
	if err := store.Commit(st.role); err != nil {
		return err
	}
	return closeStore()
}
