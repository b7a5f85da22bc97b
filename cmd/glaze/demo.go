package main

import (
	"errors"
	"flag"
	"math"
	"time"

	"github.com/example/glaze"
)

type demoCmd struct {
	*root
	fs *flag.FlagSet

	duration time.Duration
	interval time.Duration
	colorA   string
	colorB   string
}

func parseDemoCmd(args []string, r *root) (*demoCmd, error) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	cmd := &demoCmd{root: r.subcommand("demo"), fs: fs}
	fs.DurationVar(&cmd.duration, "for", 10*time.Second, "how long to run the animation (0 runs until closed)")
	fs.DurationVar(&cmd.interval, "interval", 33*time.Millisecond, "time between animation frames")
	fs.StringVar(&cmd.colorA, "color-a", "cyan", "first gradient color (name or #RRGGBB)")
	fs.StringVar(&cmd.colorB, "color-b", "magenta", "second gradient color (name or #RRGGBB)")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *demoCmd) Run() error {
	a, err := c.namedColor(c.colorA)
	if err != nil {
		return err
	}
	b, err := c.namedColor(c.colorB)
	if err != nil {
		return err
	}

	o := glaze.New(c.options()...)

	go c.animate(o, a, b)
	return o.Run()
}

// animate redraws the primitives on a timer until the overlay closes or the
// run duration elapses.
func (c *demoCmd) animate(o *glaze.Overlay, a, b glaze.Color) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	var stop <-chan time.Time
	if c.duration > 0 {
		t := time.NewTimer(c.duration)
		defer t.Stop()
		stop = t.C
	}

	start := time.Now()
	for {
		select {
		case <-o.Done():
			return
		case <-stop:
			o.Close()
			return
		case <-ticker.C:
		}

		c.drawFrame(o, a, b, time.Since(start).Seconds())
		if err := o.Frame().Render(); err != nil {
			if errors.Is(err, glaze.ErrClosed) {
				return
			}
			// Not live yet; the next tick retries.
			continue
		}
	}
}

func (c *demoCmd) drawFrame(o *glaze.Overlay, a, b glaze.Color, t float64) {
	frame := o.Frame()
	w, h := frame.Size()
	if w == 0 || h == 0 {
		return
	}
	phase := (math.Sin(t) + 1) / 2
	tint := a.Lerp(b, phase)

	frame.Clear(glaze.Transparent)
	frame.DrawRect(0, 0, w, 24, tint)
	frame.DrawRect(0, h-24, w, 24, tint)

	cx, cy := w/2, h/2
	maxR := cy - 32
	if maxR > 4 {
		r := 4 + int(phase*float64(maxR-4))
		frame.DrawCircle(cx, cy, r, tint)
		frame.DrawCircle(cx, cy, maxR, a)
	}

	x := int(phase * float64(w-1))
	frame.DrawLine(x, 0, w-1-x, h-1, b)
	frame.DrawLine(0, cy, w-1, cy, tint.Lerp(glaze.White, 0.5))
}

func (c *demoCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
