package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cyp0633/libvcard/contact"
	"github.com/cyp0633/libvcard/qr"
	"github.com/spf13/cobra"
)

func (a *app) qrCmd() *cobra.Command {
	var (
		file   string
		output string
		size   int
	)

	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Render a contact as a QR code",
		Long: `Build a vCard from a contact file and write it as a PNG QR code.
Without --output the image is saved as <filename>.png in the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := contact.Load(file)
			if err != nil {
				return err
			}
			b, err := c.Build(cmd.Context(), a.builderOptions()...)
			if err != nil {
				return err
			}

			if size == 0 {
				size = a.cfg.Server.QRSize
			}
			png, err := qr.Encode(b.BuildVCard(), size)
			if err != nil {
				return err
			}

			if output == "" {
				output = filepath.Join(a.cfg.Output.Dir, b.Filename()+".png")
			}
			if err := writeFile(output, png); err != nil {
				return err
			}
			a.logger.Info("QR code written", "path", output, "size", size)
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "contact file (.yaml, .yml or .json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write")
	cmd.Flags().IntVar(&size, "size", 0, "image size in pixels (default from config)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <png>",
		Short: "Print the text of a QR code image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			text, err := qr.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
}
