package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vidyasagar/navcore/internal/navigation"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <input>",
	Short: "Print the address an input resolves to",
	Long: `Resolves input the way the shell does: as an absolute address, then relative
to --current, then as a host with the default http:// scheme. Nothing is fetched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		currentInput, _ := cmd.Flags().GetString("current")

		var current navigation.Address
		if currentInput != "" {
			c, err := navigation.Resolve(currentInput, navigation.Address{})
			if err != nil {
				return fmt.Errorf("--current: %w", err)
			}
			current = c
		}

		addr, err := navigation.Resolve(args[0], current)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), addr)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().String("current", "", "Address to resolve relative input against")
}
