package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/example/glaze"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r.subcommand("colors"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	fmt.Fprintln(os.Stdout, "built-in colors:")
	for _, entry := range glaze.Palette() {
		printColor(entry.Name, entry.Color)
	}

	if len(c.config.Colors) == 0 {
		return nil
	}
	var names []string
	for name := range c.config.Colors {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(os.Stdout, "config colors:")
	for _, name := range names {
		v := c.config.Colors[name]
		printColor(name, glaze.NewColor(v.R, v.G, v.B, v.A))
	}
	return nil
}

func printColor(name string, col glaze.Color) {
	block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", col.R, col.G, col.B)
	fmt.Fprintf(os.Stdout, "  %-12s %s %s\n", name, col.Hex(), block)
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
