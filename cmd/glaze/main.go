package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/glaze"
	"github.com/example/glaze/internal/config"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs      *flag.FlagSet
	program string
	config  *config.Config

	title        string
	levelName    string
	width        int
	height       int
	x            int
	y            int
	clickThrough bool
	keepAwake    bool
	cursor       bool
	fullscreen   bool
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:      program,
		config:       r.config,
		title:        r.title,
		levelName:    r.levelName,
		width:        r.width,
		height:       r.height,
		x:            r.x,
		y:            r.y,
		clickThrough: r.clickThrough,
		keepAwake:    r.keepAwake,
		cursor:       r.cursor,
		fullscreen:   r.fullscreen,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:      flag.NewFlagSet("glaze", flag.ExitOnError),
		program: "glaze",
		config:  cfg,
	}

	// Precedence: CLI > Config > Default. Config values become the flag
	// defaults so everything is overridable at the command line.
	defaultLevel := cfg.Level
	if defaultLevel == "" {
		defaultLevel = glaze.LevelAlwaysOnTop.String()
	}
	defaultTitle := cfg.Title
	if defaultTitle == "" {
		defaultTitle = "Overlay"
	}
	r.fs.StringVar(&r.title, "title", defaultTitle, "window title")
	r.fs.StringVar(&r.levelName, "level", defaultLevel, "stacking level (normal, always-on-top, always-on-bottom)")
	r.fs.IntVar(&r.width, "width", cfg.Window.Width, "window width in pixels")
	r.fs.IntVar(&r.height, "height", cfg.Window.Height, "window height in pixels")
	r.fs.IntVar(&r.x, "x", cfg.Window.X, "window x position in screen pixels")
	r.fs.IntVar(&r.y, "y", cfg.Window.Y, "window y position in screen pixels")
	r.fs.BoolVar(&r.clickThrough, "click-through", cfg.Window.ClickThrough, "let pointer input pass through the overlay")
	r.fs.BoolVar(&r.keepAwake, "keep-awake", cfg.Window.KeepAwake, "inhibit the screensaver while the overlay is shown")
	r.fs.BoolVar(&r.cursor, "cursor", cfg.Window.CursorVisible, "show the pointer while it is over the overlay")
	r.fs.BoolVar(&r.fullscreen, "fullscreen", cfg.Window.Fullscreen, "cover the whole screen")
	r.fs.Usage = usageFunc(r)
	return r
}

// options maps the resolved flag values onto overlay options.
func (r *root) options() []glaze.Option {
	return []glaze.Option{
		glaze.WithTitle(r.title),
		glaze.WithLevel(glaze.ParseLevel(r.levelName)),
		glaze.WithSize(r.width, r.height),
		glaze.WithPosition(r.x, r.y),
		glaze.WithClickThrough(r.clickThrough),
		glaze.WithKeepScreenAwake(r.keepAwake),
		glaze.WithCursorVisible(r.cursor),
		glaze.WithFullscreen(r.fullscreen),
		glaze.WithDecorations(r.config.Window.Decorations),
		glaze.WithRenderWhenOccluded(r.config.Window.RenderWhenOccluded),
		glaze.WithVisible(r.config.Window.Visible),
	}
}

// namedColor resolves a color by config name, palette name or hex literal.
func (r *root) namedColor(s string) (glaze.Color, error) {
	if c, ok := r.config.Colors[strings.ToLower(s)]; ok {
		return glaze.NewColor(c.R, c.G, c.B, c.A), nil
	}
	for _, entry := range glaze.Palette() {
		if strings.EqualFold(entry.Name, s) {
			return entry.Color, nil
		}
	}
	if strings.HasPrefix(s, "#") {
		c, err := config.ParseColor(s)
		if err != nil {
			return glaze.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return glaze.NewColor(c.R, c.G, c.B, c.A), nil
	}
	return glaze.Color{}, fmt.Errorf("unknown color %q", s)
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "show":
		cmd, err = parseShowCmd(subArgs, r)
	case "demo":
		cmd, err = parseDemoCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "monitors":
		cmd, err = parseMonitorsCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	if runErr := cmd.Run(); runErr != nil {
		return runErr
	}
	return nil
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
