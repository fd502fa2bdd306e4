/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import "github.com/spf13/cobra"

var devCmd = &cobra.Command{
	Use:   "dev <subcommand>",
	Short: "Collection of subcommands for developing tlox itself",
	Long: `Collection of subcommands useful for developing tlox itself.
If you are not working on the tlox tool, you probably don't need these.`,
}
