package main

import (
	"fmt"

	"github.com/spf13/cobra"
	linkapi "github.com/szmijews/mfd-network-adapter/api/link"
	"github.com/szmijews/mfd-network-adapter/networkinterface/feature/link"
)

func newLinkPrivilegeCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link-privilege",
		Short: "Get or set the administrative link privilege of the interface",
	}
	cmd.AddCommand(newLinkPrivilegeGetCmd(o), newLinkPrivilegeSetCmd(o))
	return cmd
}

func newLinkPrivilegeGetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the administrative link privilege of the interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runLink(func(feature link.Feature) error {
				state, err := feature.GetAdministrativePrivileges()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), state)
				return nil
			})
		},
	}
}

func newLinkPrivilegeSetCmd(o *rootOptions) *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Enable or disable the administrative link privilege of the interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := linkapi.ParseState(state)
			if err != nil {
				return err
			}
			return o.runLink(func(feature link.Feature) error {
				return feature.SetAdministrativePrivileges(parsed)
			})
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "enabled or disabled")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}
