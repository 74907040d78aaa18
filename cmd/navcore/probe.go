package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vidyasagar/navcore/internal/navigation"
)

var probeCmd = &cobra.Command{
	Use:   "probe <address>",
	Short: "Visit an address once and print its page summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		loader, err := newLoader(cfg)
		if err != nil {
			return err
		}

		nav := navigation.New(loader)
		addr, err := nav.Visit(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Address: %s\n", addr)
		if u := addr.URL(); u != nil && u.Host != "" {
			fmt.Fprintf(out, "Host:    %s\n", u.Host)
		}
		page, ok := loader.Cached(addr)
		if !ok {
			return nil
		}
		fmt.Fprintf(out, "Status:  %d\n", page.StatusCode)
		fmt.Fprintf(out, "Title:   %s\n", page.Title)
		if page.SiteName != "" {
			fmt.Fprintf(out, "Site:    %s\n", page.SiteName)
		}
		fmt.Fprintf(out, "Links:   %d\n", len(page.Links))

		if showLinks, _ := cmd.Flags().GetBool("links"); showLinks {
			for _, l := range page.Links {
				fmt.Fprintf(out, "  [%d] %s -> %s\n", l.Index, l.Text, l.URL)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().BoolP("links", "l", false, "List the page's links")
}
