// Command asm24 assembles one or more source files for the 24-bit word
// machine, producing .ob/.ext/.ent files alongside each input.
package main

import (
	"fmt"
	"os"

	"github.com/gmofishsauce/asm24/internal/config"
	"github.com/gmofishsauce/asm24/internal/driver"
	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "asm24 [file...]",
		Short: "Assemble source files for the 24-bit word machine",
		Long: "asm24 reads one or more base filenames (without the \".as\" suffix), " +
			"assembles each in two passes, and writes the resulting .ob file, plus " +
			"a .ext file if the program references external symbols and a .ent file " +
			"if it declares entry symbols.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(os.Stderr, cmd.UsageString())
				return nil
			}

			cfg, err := config.LoadFrom(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if err := driver.RunWithConfig(args, os.Stderr, cfg); err != nil {
				if fe, ok := err.(*driver.FatalError); ok {
					fmt.Fprintln(os.Stderr, fe.Error())
					os.Exit(fe.Code)
				}
				return err
			}
			return nil
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "asm24.toml", "Path to an optional TOML configuration file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
