package main

import (
	"fmt"

	"github.com/danmuck/coaphdr/internal/cli/output"
	"github.com/danmuck/coaphdr/internal/protocol"
	"github.com/spf13/cobra"
)

type codeView struct {
	Class   string `json:"class" yaml:"class"`
	Variant string `json:"variant" yaml:"variant"`
	Dotted  string `json:"dotted" yaml:"dotted"`
	Byte    string `json:"byte" yaml:"byte"`
}

func newCodesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List every valid class/detail code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := protocol.AllCodes()
			switch a.printer.Format() {
			case output.FormatText:
				for _, c := range codes {
					a.printer.Printf("%s  %s\n", protocol.FormatDotted(c), c)
				}
				return nil
			case output.FormatTable:
				table := output.NewTableData("Dotted", "Byte", "Class", "Variant")
				for _, c := range codes {
					table.AddRow(protocol.FormatDotted(c), fmt.Sprintf("0x%02x", protocol.EncodeCode(c)), c.Class().String(), c.Variant())
				}
				return a.printer.Print(table)
			default:
				views := make([]codeView, 0, len(codes))
				for _, c := range codes {
					views = append(views, codeView{
						Class:   c.Class().String(),
						Variant: c.Variant(),
						Dotted:  protocol.FormatDotted(c),
						Byte:    fmt.Sprintf("0x%02x", protocol.EncodeCode(c)),
					})
				}
				return a.printer.Print(views)
			}
		},
	}
}
