package main

import (
	"fmt"
	"path/filepath"

	"github.com/cyp0633/libvcard/contact"
	"github.com/cyp0633/libvcard/xcard"
	"github.com/spf13/cobra"
)

func (a *app) buildCmd() *cobra.Command {
	var (
		file      string
		userAgent string
		dir       string
		toStdout  bool
		asXCard   bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a card from a contact file",
		Long: `Build a vCard from a YAML or JSON contact file and save it as
<filename>.vcf, or <filename>.ics when --user-agent names an iOS client
older than iOS 8.

Example:
  vcardgen build -f jane.yaml
  vcardgen build -f jane.json --dir out/ --xcard`,
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

			if dir == "" {
				dir = a.cfg.Output.Dir
			}

			if asXCard {
				data, err := xcard.Marshal(b.Properties())
				if err != nil {
					return err
				}
				if toStdout {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				path := filepath.Join(dir, b.Filename()+".xml")
				if err := writeFile(path, data); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}

			if toStdout {
				_, err := fmt.Fprint(cmd.OutOrStdout(), b.Output(userAgent))
				return err
			}
			if err := b.SetSavePath(dir); err != nil {
				return err
			}
			path, err := b.Save(userAgent)
			if err != nil {
				return err
			}
			a.logger.Info("card built", "contact", file, "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "contact file (.yaml, .yml or .json)")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "client user agent that selects the output format")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write the document to stdout instead of a file")
	cmd.Flags().BoolVar(&asXCard, "xcard", false, "write an xCard XML document")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
