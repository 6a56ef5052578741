package cmd

import (
	"fmt"
	"os"

	"github.com/TFMV/hypergraph/config"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create configuration files",
	}

	var asYAML bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := config.DefaultPath
			if asYAML {
				name = "hypergraph.yaml"
			}
			out, err := config.Marshal(cfg, name)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
	show.Flags().BoolVar(&asYAML, "yaml", false, "Print YAML instead of TOML")

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Save(config.Default(), path, force); err != nil {
				return err
			}
			fmt.Printf("%s wrote %s\n", Good.Sprint("✓"), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}
