// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands 系统命令: 区块, 交易, 余额以及 coins 转账
package commands

import (
	"fmt"
	"os"

	"github.com/33cn/wager/rpc/jsonclient"
	rpctypes "github.com/33cn/wager/rpc/types"
	cty "github.com/33cn/wager/system/dapp/coins/types"
	"github.com/spf13/cobra"
)

// BlockCmd 区块相关命令
func BlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Get block header or body info",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		lastHeaderCmd(),
		getBlockCmd(),
		mineCmd(),
	)
	return cmd
}

func lastHeaderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last_header",
		Short: "View last block header",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			var res rpctypes.Header
			jsonclient.NewRpcCtx(rpcLaddr, "Chain.GetLastHeader", rpctypes.ReqNil{}, &res).Run()
		},
	}
}

func getBlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get block with receipts by height",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			height, _ := cmd.Flags().GetInt64("height")
			var res rpctypes.BlockDetail
			jsonclient.NewRpcCtx(rpcLaddr, "Chain.GetBlock", rpctypes.ReqHeight{Height: height}, &res).Run()
		},
	}
	cmd.Flags().Int64P("height", "t", 0, "block height")
	cmd.MarkFlagRequired("height")
	return cmd
}

func mineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Create an empty block",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			var res rpctypes.Header
			jsonclient.NewRpcCtx(rpcLaddr, "Chain.Mine", rpctypes.ReqNil{}, &res).Run()
		},
	}
}

// TxCmd 交易查询
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Query transaction by hash",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			hash, _ := cmd.Flags().GetString("hash")
			var res rpctypes.TransactionDetail
			jsonclient.NewRpcCtx(rpcLaddr, "Chain.QueryTransaction", rpctypes.ReqHash{Hash: hash}, &res).Run()
		},
	}
	cmd.Flags().StringP("hash", "s", "", "transaction hash")
	cmd.MarkFlagRequired("hash")
	return cmd
}

// BalanceCmd 余额查询
func BalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get balance of an address",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			addr, _ := cmd.Flags().GetString("addr")
			execer, _ := cmd.Flags().GetString("exec")
			var res []*rpctypes.Account
			params := rpctypes.ReqAddrs{Addrs: []string{addr}, Execer: execer}
			jsonclient.NewRpcCtx(rpcLaddr, "Chain.GetBalance", params, &res).Run()
		},
	}
	cmd.Flags().StringP("addr", "a", "", "account address")
	cmd.MarkFlagRequired("addr")
	cmd.Flags().StringP("exec", "e", "", "executor name, empty for the main account")
	return cmd
}

// CoinsCmd coins 转账
func CoinsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coins",
		Short: "Transfer or withdraw coins",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(transferCmd(), withdrawCmd())
	return cmd
}

func transferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer coins to an address or an executor",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			amountStr, _ := cmd.Flags().GetString("amount")
			note, _ := cmd.Flags().GetString("note")
			amount, err := rpctypes.ParseAmount(amountStr)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			tx := cty.CreateTransferTx(from, to, amount, note)
			var res rpctypes.TransactionDetail
			jsonclient.NewRpcCtx(rpcLaddr, "Chain.SendTransaction", tx, &res).Run()
		},
	}
	cmd.Flags().StringP("from", "f", "", "sender address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("to", "t", "", "receiver address")
	cmd.MarkFlagRequired("to")
	cmd.Flags().StringP("amount", "a", "", "amount in coins")
	cmd.MarkFlagRequired("amount")
	cmd.Flags().StringP("note", "n", "", "transaction note")
	return cmd
}

func withdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw coins from an executor",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			from, _ := cmd.Flags().GetString("from")
			execer, _ := cmd.Flags().GetString("exec")
			amountStr, _ := cmd.Flags().GetString("amount")
			amount, err := rpctypes.ParseAmount(amountStr)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			tx := cty.CreateWithdrawTx(from, execer, amount)
			var res rpctypes.TransactionDetail
			jsonclient.NewRpcCtx(rpcLaddr, "Chain.SendTransaction", tx, &res).Run()
		},
	}
	cmd.Flags().StringP("from", "f", "", "address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("exec", "e", "", "executor name")
	cmd.MarkFlagRequired("exec")
	cmd.Flags().StringP("amount", "a", "", "amount in coins")
	cmd.MarkFlagRequired("amount")
	return cmd
}
