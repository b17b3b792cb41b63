package main

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/size"

	"floc/skinswap/skin"
	"floc/skinswap/tex"
)

const (
	minw = 200
	minh = 200
)

// loadAny decodes a texture container or, failing to tell the format, any
// image the skin decoder knows
func loadAny(p, format string) (*image.NRGBA, error) {
	f, err := formatFor(p, format)
	if err != nil {
		return skin.Load(p)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	img, _, err := tex.Unpack(data, f)
	return img, err
}

func viewCmd() *cobra.Command {
	var (
		format string
		zoom   int
	)

	c := &cobra.Command{
		Use:   "view FILE",
		Short: "Show an image or texture container in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadAny(args[0], format)
			if err != nil {
				return err
			}
			if zoom < 1 {
				zoom = 1
			}

			view(args[0], img, zoom)
			return nil
		},
	}

	c.Flags().StringVarP(&format, "format", "f", "", "container format, nutex or bntx (default: from the extension)")
	c.Flags().IntVarP(&zoom, "zoom", "z", 4, "integer zoom, skins are tiny")

	return c
}

// nearest neighbour zoom, so single skin pixels stay visible
func zoomed(img *image.NRGBA, z int) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()*z, b.Dy()*z))
	for y := 0; y < out.Rect.Dy(); y++ {
		for x := 0; x < out.Rect.Dx(); x++ {
			out.SetNRGBA(x, y, img.NRGBAAt(b.Min.X+x/z, b.Min.Y+y/z))
		}
	}
	return out
}

func view(name string, img *image.NRGBA, z int) {
	junk := zoomed(img, z)
	w, h := junk.Rect.Dx(), junk.Rect.Dy()

	wiw := max(w, minw)
	wih := max(h, minh)

	// start all of the gui stuff
	driver.Main(func(s screen.Screen) {
		wi, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  fmt.Sprintf("skintool: viewing %s", name),
			Width:  wiw,
			Height: wih,
		})
		if err != nil {
			panic(err)
		}
		defer wi.Release()

		sb, err := s.NewBuffer(image.Point{wiw, wih})
		if err != nil {
			panic(err)
		}
		defer func() { sb.Release() }()
		pixbuf := sb.RGBA()

		for {
			draw.Draw(pixbuf, pixbuf.Bounds(), image.Transparent, image.Point{}, draw.Src)
			draw.Draw(pixbuf, pixbuf.Bounds(), junk, image.Point{}, draw.Over)
			wi.Upload(image.Point{0, 0}, sb, sb.Bounds())
			wi.Publish()

			switch e := wi.NextEvent().(type) {
			case key.Event:
				if e.Code == key.CodeEscape {
					return
				}

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case size.Event:
				// will crash if width/height == 0
				es := image.Point{max(e.WidthPx, 1), max(e.HeightPx, 1)}
				sb.Release()
				sb, err = s.NewBuffer(es)
				if err != nil {
					panic(err)
				}
				pixbuf = sb.RGBA()
			}
			time.Sleep(time.Millisecond * 5)
		}
	})
}
