// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/33cn/wager/common/log"
	"github.com/33cn/wager/pluginmgr"
	"github.com/33cn/wager/system/dapp/commands"
	"github.com/33cn/wager/types"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get node version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(types.Version)
	},
}

//NewRootCmd 系统命令以及所有插件注册的命令
func NewRootCmd(rpcAddr string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wager-cli",
		Short: "wager client tools",
	}
	rootCmd.PersistentFlags().String("rpc_laddr", rpcAddr, "http url")
	rootCmd.AddCommand(
		commands.BlockCmd(),
		commands.TxCmd(),
		commands.BalanceCmd(),
		commands.CoinsCmd(),
		versionCmd,
	)
	pluginmgr.AddCmd(rootCmd)
	return rootCmd
}

//Run :
func Run(rpcAddr string) {
	log.SetLogLevel("error")
	if err := NewRootCmd(rpcAddr).Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
