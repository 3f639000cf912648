package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/justyntemme/amplife/pkg/plugin"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show plugin identity and version",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := plugin.New().Info()
		if err := info.ValidateUID(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, info)
		fmt.Fprintf(out, "unique id: %08x\n", uint32(info.UniqueID()))
		if verbose {
			fmt.Fprintf(out, "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
