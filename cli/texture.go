package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"floc/skinswap/pipeline"
	"floc/skinswap/skin"
	"floc/skinswap/tex"
)

// formatFor picks the container format from the flag, or else from the
// file extension
func formatFor(p, flag string) (tex.Format, error) {
	if flag != "" {
		return tex.ParseFormat(flag)
	}

	if f, err := tex.ParseFormat(filepath.Ext(p)); err == nil {
		return f, nil
	}
	return 0, fmt.Errorf("%w: can't tell the format of %s, use --format", tex.ErrUnknownFormat, p)
}

func packCmd() *cobra.Command {
	var (
		format   string
		name     string
		capacity int
	)

	c := &cobra.Command{
		Use:   "pack IN OUT",
		Short: "Write an image as a texture container",
		Long: `Write an image as a texture container. With --capacity the container
is packed into a buffer of exactly that size, the way the daemon hands
it to the game.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatFor(args[1], format)
			if err != nil {
				return err
			}
			if name == "" {
				name = filepath.Base(args[1])
			}

			img, err := skin.Load(args[0])
			if err != nil {
				return err
			}

			var data []byte
			if capacity > 0 {
				data = make([]byte, capacity)
				n, err := tex.Pack(data, f, name, img)
				if err != nil {
					return err
				}
				data = data[:n]
			} else if data, err = tex.Encode(f, name, img); err != nil {
				return err
			}

			if err := os.WriteFile(args[1], data, 0644); err != nil {
				return err
			}
			cmd.Printf("wrote %d bytes (%v, %dx%d) to %s\n", len(data), f, img.Bounds().Dx(), img.Bounds().Dy(), args[1])
			return nil
		},
	}

	c.Flags().StringVarP(&format, "format", "f", "", "container format, nutex or bntx (default: from the extension)")
	c.Flags().StringVarP(&name, "name", "n", "", "asset path stored in the trailer (default: output file name)")
	c.Flags().IntVarP(&capacity, "capacity", "c", 0, "pack into a buffer of this many bytes")

	return c
}

func unpackCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "unpack IN [OUT.png]",
		Short: "Print the header of a texture container and optionally extract it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatFor(args[0], format)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			img, h, err := tex.Unpack(data, f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			cmd.Printf("format %v\nname %s\nsize %dx%d\npayload %d bytes in %d\n", h.Format, h.Name, h.Width, h.Height, h.PayloadSize, len(data))
			if f == tex.Bntx {
				cmd.Printf("id %#x\ncrc32 %08x\n", h.ID, h.Checksum)
			}

			if len(args) < 2 {
				return nil
			}
			return savePNG(args[1], img)
		},
	}

	c.Flags().StringVarP(&format, "format", "f", "", "container format, nutex or bntx (default: from the extension)")

	return c
}

func hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash PATH...",
		Short: "Print the content id of asset paths",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range args {
				cmd.Printf("%#012x %s\n", tex.Hash40(p), p)
			}
		},
	}
}

func idsCmd() *cobra.Command {
	var scale int

	c := &cobra.Command{
		Use:   "ids [FILTER]",
		Short: "List the content ids the daemon registers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sz := pipeline.DefaultSizes()
			sz.MaxScale = scale

			t, err := pipeline.DefaultTable(sz)
			if err != nil {
				return err
			}

			ds := t.All()
			if len(args) > 0 {
				ds = t.Filter(args[0])
				if len(ds) == 0 {
					if s, ok := t.Suggest(args[0]); ok {
						return fmt.Errorf("%w: nothing matches %s (did you mean %s?)", pipeline.ErrUnknownContent, args[0], s)
					}
					return fmt.Errorf("%w: nothing matches %s", pipeline.ErrUnknownContent, args[0])
				}
			}

			for _, d := range ds {
				cmd.Printf("%#012x %-15s %d %8d %s\n", d.ID, d.Kind, d.Slot, d.Capacity, d.Path)
			}
			return nil
		},
	}

	c.Flags().IntVar(&scale, "scale", pipeline.DefaultSizes().MaxScale, "largest skin scale a primary texture holds")

	return c
}
