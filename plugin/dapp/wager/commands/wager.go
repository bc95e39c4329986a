// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands wager 的命令行
package commands

import (
	"fmt"
	"os"

	wty "github.com/33cn/wager/plugin/dapp/wager/types"
	"github.com/33cn/wager/rpc/jsonclient"
	rpctypes "github.com/33cn/wager/rpc/types"
	"github.com/33cn/wager/types"
	"github.com/spf13/cobra"
)

// WagerCmd wager 命令
func WagerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wager",
		Short: "Wager bet and distribute",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		BetCmd(),
		DistributeCmd(),
		WithdrawCmd(),
		PotCmd(),
		QueueCmd(),
		ShowCmd(),
		MatchCmd(),
		EscrowCmd(),
		ListCmd(),
	)
	return cmd
}

// BetCmd 投注
func BetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bet",
		Short: "Place a bet on a one byte challenge",
		Run:   bet,
	}
	cmd.Flags().StringP("from", "f", "", "bettor address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("challenge", "c", "", "one byte challenge, e.g. 0x94")
	cmd.MarkFlagRequired("challenge")
	cmd.Flags().StringP("amount", "a", "", "stake in coins, default the configured bet amount")
	cmd.Flags().BoolP("distribute", "d", false, "settle matured bets in the same transaction")
	return cmd
}

func bet(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	from, _ := cmd.Flags().GetString("from")
	challenge, _ := cmd.Flags().GetString("challenge")
	amountStr, _ := cmd.Flags().GetString("amount")
	distribute, _ := cmd.Flags().GetBool("distribute")

	params := &wty.ReqBet{From: from, Challenge: challenge, Distribute: distribute}
	if amountStr != "" {
		amount, err := rpctypes.ParseAmount(amountStr)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		params.Amount = amount
	}
	var res rpctypes.TransactionDetail
	ctx := jsonclient.NewRpcCtx(rpcLaddr, "wager.Bet", params, &res)
	ctx.Run()
}

// DistributeCmd 结算
func DistributeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Settle matured bets",
		Run:   distribute,
	}
	cmd.Flags().StringP("from", "f", "", "caller address")
	cmd.MarkFlagRequired("from")
	return cmd
}

func distribute(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	from, _ := cmd.Flags().GetString("from")
	var res rpctypes.TransactionDetail
	ctx := jsonclient.NewRpcCtx(rpcLaddr, "wager.Distribute", &wty.ReqAddr{Addr: from}, &res)
	ctx.Run()
}

// WithdrawCmd 取回托管
func WithdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw escrowed payouts",
		Run:   withdraw,
	}
	cmd.Flags().StringP("from", "f", "", "address")
	cmd.MarkFlagRequired("from")
	return cmd
}

func withdraw(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	from, _ := cmd.Flags().GetString("from")
	var res rpctypes.TransactionDetail
	ctx := jsonclient.NewRpcCtx(rpcLaddr, "wager.Withdraw", &wty.ReqAddr{Addr: from}, &res)
	ctx.Run()
}

// PotCmd 奖池
func PotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pot",
		Short: "Show the pot",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			var res map[string]interface{}
			jsonclient.NewRpcCtx(rpcLaddr, "wager.GetPot", rpctypes.ReqNil{}, &res).Run()
		},
	}
}

// QueueCmd 队列状态
func QueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show queue head, tail and config",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			var res wty.ReplyQueueInfo
			ctx := jsonclient.NewRpcCtx(rpcLaddr, "wager.GetQueueInfo", rpctypes.ReqNil{}, &res)
			ctx.SetResultCb(parseQueueInfo)
			ctx.Run()
		},
	}
}

// ShowCmd 投注详情
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a bet by index",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			index, _ := cmd.Flags().GetInt64("index")
			var res wty.Wager
			jsonclient.NewRpcCtx(rpcLaddr, "wager.GetWager", &wty.ReqWager{Index: index}, &res).Run()
		},
	}
	cmd.Flags().Int64P("index", "i", 0, "bet index")
	cmd.MarkFlagRequired("index")
	return cmd
}

// MatchCmd 比较挑战和哈希
func MatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Compare a challenge with a block hash",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			challenge, _ := cmd.Flags().GetString("challenge")
			hash, _ := cmd.Flags().GetString("hash")
			var res wty.ReplyIsMatch
			jsonclient.NewRpcCtx(rpcLaddr, "wager.IsMatch", &wty.ReqIsMatch{Challenge: challenge, Hash: hash}, &res).Run()
		},
	}
	cmd.Flags().StringP("challenge", "c", "", "one byte challenge")
	cmd.MarkFlagRequired("challenge")
	cmd.Flags().StringP("hash", "s", "", "block hash")
	cmd.MarkFlagRequired("hash")
	return cmd
}

// QueueResult 金额按币显示的队列状态
type QueueResult struct {
	Head             int64  `json:"head"`
	Tail             int64  `json:"tail"`
	Pot              string `json:"pot"`
	BetAmount        string `json:"betAmount"`
	RevealDelay      int64  `json:"revealDelay"`
	MaxSettlePerCall int32  `json:"maxSettlePerCall"`
}

func parseQueueInfo(arg interface{}) (interface{}, error) {
	res := arg.(*wty.ReplyQueueInfo)
	return &QueueResult{
		Head:             res.Head,
		Tail:             res.Tail,
		Pot:              rpctypes.FormatAmount(res.Pot),
		BetAmount:        rpctypes.FormatAmount(res.BetAmount),
		RevealDelay:      res.RevealDelay,
		MaxSettlePerCall: res.MaxSettlePerCall,
	}, nil
}

func parseEscrow(arg interface{}) (interface{}, error) {
	res := arg.(*types.Int64)
	return map[string]string{"escrow": rpctypes.FormatAmount(res.Data)}, nil
}

// EscrowCmd 托管余额
func EscrowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escrow",
		Short: "Show escrowed balance of an address",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			addr, _ := cmd.Flags().GetString("addr")
			var res types.Int64
			ctx := jsonclient.NewRpcCtx(rpcLaddr, "wager.GetEscrow", &wty.ReqAddr{Addr: addr}, &res)
			ctx.SetResultCb(parseEscrow)
			ctx.Run()
		},
	}
	cmd.Flags().StringP("addr", "a", "", "address")
	cmd.MarkFlagRequired("addr")
	return cmd
}

// ListCmd 某个地址的投注
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bets of an address",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			addr, _ := cmd.Flags().GetString("addr")
			index, _ := cmd.Flags().GetInt64("index")
			count, _ := cmd.Flags().GetInt32("count")
			direction, _ := cmd.Flags().GetInt32("direction")
			params := &wty.ReqWagersByAddr{Addr: addr, Index: index, Count: count, Direction: direction}
			var res wty.ReplyWagers
			jsonclient.NewRpcCtx(rpcLaddr, "wager.ListWagersByAddr", params, &res).Run()
		},
	}
	cmd.Flags().StringP("addr", "a", "", "address")
	cmd.MarkFlagRequired("addr")
	cmd.Flags().Int64P("index", "i", -1, "last index of previous page, -1 from start")
	cmd.Flags().Int32P("count", "c", wty.DefaultListCount, "count")
	cmd.Flags().Int32P("direction", "d", 1, "0: desc, 1: asc")
	return cmd
}
