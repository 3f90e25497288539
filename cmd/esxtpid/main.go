// esxtpid reads and writes the VLAN TPID of an ESXi network interface.
package main

import (
	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(NewRootCmd().Execute())
}
