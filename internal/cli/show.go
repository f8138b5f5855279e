package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canopyui/canopy/internal/db"
	"github.com/canopyui/canopy/internal/render"
)

func newShowCmd() *cobra.Command {
	var ephemeral bool
	var width int

	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Render one document to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(cmd, ephemeral)
			if err != nil {
				return err
			}
			defer store.Close()
			if ephemeral {
				if err := db.Seed(ctx, store); err != nil {
					return err
				}
			}

			docs, err := store.List(ctx)
			if err != nil {
				return err
			}
			for _, d := range docs {
				if d.Path == args[0] {
					return writePaged(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), render.PreviewDoc(d, width))
				}
			}
			return fmt.Errorf("no document at %q", args[0])
		},
	}

	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "use the seeded in-memory library")
	cmd.Flags().IntVar(&width, "width", 100, "wrap width for rendered markdown")
	return cmd
}
