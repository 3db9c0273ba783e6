package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurebook/internal/book"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

func (a *app) newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every record from the book",
		Long:  "Clear empties all four collections. Run 'insurebook backup create' first to keep a copy.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.mutate(func(b *book.Book) error { return b.ResetData(types.Data{}) }); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Insurance book has been cleared!")
			return nil
		},
	}
}
