package main

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cyp0633/libvcard/vcard"
	govcard "github.com/emersion/go-vcard"
	"github.com/spf13/cobra"
)

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the properties of a .vcf or .ics document",
		Long: `Parse a vCard, or a VCALENDAR wrapping one, and print its properties
one per line, sorted by name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			card, err := decodeCard(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			a.logger.Debug("card decoded", "file", args[0], "properties", len(card))

			out := cmd.OutOrStdout()
			for _, line := range describeCard(card) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

// decodeCard parses a vCard, unwrapping it from a calendar first if needed.
func decodeCard(data []byte) (govcard.Card, error) {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("BEGIN:VCALENDAR")) {
		card, err := vcard.ExtractCard(data)
		if err != nil {
			return nil, err
		}
		data = card
	}
	card, err := govcard.NewDecoder(bytes.NewReader(data)).Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode card: %w", err)
	}
	return card, nil
}

// describeCard formats each field as "NAME;PARAM=a,b: value".
func describeCard(card govcard.Card) []string {
	names := make([]string, 0, len(card))
	for name := range card {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		for _, field := range card[name] {
			var sb strings.Builder
			sb.WriteString(name)

			params := make([]string, 0, len(field.Params))
			for k := range field.Params {
				params = append(params, k)
			}
			sort.Strings(params)
			for _, k := range params {
				sb.WriteString(";" + k + "=" + strings.Join(field.Params[k], ","))
			}
			sb.WriteString(": " + field.Value)
			lines = append(lines, sb.String())
		}
	}
	return lines
}
