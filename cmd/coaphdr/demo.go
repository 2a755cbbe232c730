package main

import (
	"fmt"

	"github.com/danmuck/coaphdr/internal/protocol"
	"github.com/spf13/cobra"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Print two decoded sample headers and one built by hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := protocol.DecodeHeader([4]byte{64, 1, 0, 1})
			if err != nil {
				return fmt.Errorf("demo: %w", err)
			}
			second, err := protocol.DecodeHeader([4]byte{96, 95, 0, 1})
			if err != nil {
				return fmt.Errorf("demo: %w", err)
			}
			third := protocol.NewHeader(1, protocol.Acknowledgment, 0, protocol.SuccessCreated, 1)

			a.printer.Printf("First:\n%s\n\n", first)
			a.printer.Printf("Second:\n%s\n\n", second)
			a.printer.Printf("Third:\n%s\n\n", third)
			return nil
		},
	}
}
