package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"time"

	"github.com/example/glaze"
	"github.com/example/glaze/internal/clipboard"
	"github.com/example/glaze/internal/imageutil"
)

type showCmd struct {
	*root
	fs *flag.FlagSet

	path          string
	fromClipboard bool
	fit           bool
	filter        string
	duration      time.Duration
}

func parseShowCmd(args []string, r *root) (*showCmd, error) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	cmd := &showCmd{root: r.subcommand("show"), fs: fs}
	fs.BoolVar(&cmd.fromClipboard, "clipboard", false, "show the image currently on the clipboard instead of a file")
	fs.BoolVar(&cmd.fit, "fit", true, "scale the image to fill the overlay")
	fs.StringVar(&cmd.filter, "filter", "catmullrom", "resampling filter when scaling (nearest, bilinear, catmullrom)")
	fs.DurationVar(&cmd.duration, "for", 0, "close the overlay after this duration (0 keeps it open)")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.fromClipboard {
		if fs.NArg() != 0 {
			return nil, errors.New("an image file and -clipboard cannot be combined")
		}
		return cmd, nil
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: cmd}
	}
	cmd.path = fs.Arg(0)
	return cmd, nil
}

// loadImage resolves the configured image source.
func (c *showCmd) loadImage() (*image.RGBA, error) {
	if c.fromClipboard {
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard image: %w", err)
		}
		return imageutil.ToRGBA(img), nil
	}
	img, err := imageutil.DecodeFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", c.path, err)
	}
	return img, nil
}

func parseFilter(name string) (imageutil.Filter, error) {
	switch name {
	case "nearest":
		return imageutil.FilterNearest, nil
	case "bilinear":
		return imageutil.FilterBilinear, nil
	case "catmullrom":
		return imageutil.FilterCatmullRom, nil
	}
	return 0, fmt.Errorf("unknown filter %q", name)
}

func (c *showCmd) Run() error {
	filter, err := parseFilter(c.filter)
	if err != nil {
		return err
	}
	img, err := c.loadImage()
	if err != nil {
		return err
	}

	o := glaze.New(c.options()...)
	bounds := img.Bounds()
	if c.fit {
		err = o.Frame().DrawImageScaled(0, 0, img.Pix, bounds.Dx(), bounds.Dy(), c.width, c.height, filter)
	} else {
		err = o.Frame().DrawImage(0, 0, img.Pix, bounds.Dx(), bounds.Dy())
	}
	if err != nil {
		return fmt.Errorf("failed to stage image: %w", err)
	}

	if c.duration > 0 {
		go func() {
			select {
			case <-time.After(c.duration):
				o.Close()
			case <-o.Done():
			}
		}()
	}
	return o.Run()
}

func (c *showCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
