package main

import (
	"fmt"

	"github.com/spf13/cobra"
	vlanapi "github.com/szmijews/mfd-network-adapter/api/vlan"
	"github.com/szmijews/mfd-network-adapter/networkinterface/feature/vlan"
)

func newGetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the VLAN TPID of the interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runVLAN(func(feature vlan.Feature) error {
				tpid, err := feature.GetVLANTPID()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), tpid)
				return nil
			})
		},
	}
}

func newSetCmd(o *rootOptions) *cobra.Command {
	var tpid string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the VLAN TPID of the interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runVLAN(func(feature vlan.Feature) error {
				return feature.SetVLANTPID(vlanapi.TPID(tpid))
			})
		},
	}
	cmd.Flags().StringVar(&tpid, "tpid", "", fmt.Sprintf("TPID to set, one of %v", vlanapi.SupportedTPIDs()))
	_ = cmd.MarkFlagRequired("tpid")
	return cmd
}
