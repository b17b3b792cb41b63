package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"floc/skinswap/skin"
)

func savePNG(p string, img image.Image) error {
	fo, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if err := png.Encode(fo, img); err != nil {
		fo.Close()
		return err
	}
	return fo.Close()
}

// builds a command reading one image and writing one png
func imageCmd(use, short string, fn func(*image.NRGBA) (*image.NRGBA, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " IN OUT.png",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := skin.Load(args[0])
			if err != nil {
				return err
			}

			out, err := fn(src)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			if err := savePNG(args[1], out); err != nil {
				return err
			}
			b := out.Bounds()
			cmd.Printf("wrote %s (%dx%d) to %s\n", args[0], b.Dx(), b.Dy(), args[1])
			return nil
		},
	}
}

func convertCmd() *cobra.Command {
	return imageCmd("convert", "Convert a legacy 2:1 skin to the modern square layout", skin.ToModern)
}

func gradeCmd() *cobra.Command {
	return imageCmd("grade", "Apply the in-game color grade", func(src *image.NRGBA) (*image.NRGBA, error) {
		m := skin.Clone(src)
		skin.Grade(m)
		return m, nil
	})
}

func iconCmd() *cobra.Command {
	var raw bool

	c := imageCmd("icon", "Build the stock icon of a skin", func(src *image.NRGBA) (*image.NRGBA, error) {
		if !raw {
			m, err := skin.Normalize(src)
			if err != nil {
				return nil, err
			}
			src = m
		}
		return skin.GenIcon(src)
	})
	c.Flags().BoolVar(&raw, "raw", false, "do not convert legacy skins first")

	return c
}

func portraitCmd() *cobra.Command {
	var size int

	c := imageCmd("portrait", "Build a portrait of a skin", func(src *image.NRGBA) (*image.NRGBA, error) {
		m, err := skin.Normalize(src)
		if err != nil {
			return nil, err
		}
		return skin.GenPortrait(m, size)
	})
	c.Flags().IntVarP(&size, "size", "s", 256, "edge of the square portrait")

	return c
}
