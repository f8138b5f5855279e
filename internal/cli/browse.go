package cli

import (
	"github.com/spf13/cobra"

	"github.com/canopyui/canopy/internal/config"
	"github.com/canopyui/canopy/internal/db"
	"github.com/canopyui/canopy/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	var ephemeral bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive document browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(cmd, ephemeral)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := db.Seed(ctx, store); err != nil {
				return err
			}
			return tui.Run(ctx, store, config.FromViper(getViper(cmd)))
		},
	}

	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "use an in-memory library that is discarded on exit")
	return cmd
}

// openStore resolves the store from flags and config: an in-memory one for
// --ephemeral, the sqlite library under data_dir otherwise.
func openStore(cmd *cobra.Command, ephemeral bool) (db.Store, error) {
	if ephemeral {
		return db.NewMem(), nil
	}
	return db.Open(cmd.Context(), config.ResolveDBPath(getViper(cmd)))
}
