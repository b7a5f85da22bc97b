package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/glaze"
)

type monitorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseMonitorsCmd(args []string, r *root) (*monitorsCmd, error) {
	fs := flag.NewFlagSet("monitors", flag.ExitOnError)
	cmd := &monitorsCmd{root: r.subcommand("monitors"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *monitorsCmd) Run() error {
	monitors, err := glaze.Monitors()
	if err != nil {
		return fmt.Errorf("failed to list monitors: %w", err)
	}
	if len(monitors) == 0 {
		fmt.Fprintln(os.Stdout, "no monitors available")
		return nil
	}
	fmt.Fprintln(os.Stdout, "attached monitors (* marks the primary):")
	for _, m := range monitors {
		marker := " "
		if m.Primary {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %-10s %dx%d at (%d,%d)\n", marker, m.Name, m.Width, m.Height, m.X, m.Y)
	}
	return nil
}

func (c *monitorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *monitorsCmd) Template() string {
	return "monitors.txt"
}
