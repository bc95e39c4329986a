// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package testnode

var cfgstring = `
Title="local"

[log]
loglevel = "info"
logConsoleLevel = "error"
logFile = ""

[store]
driver="memdb"

[blockchain]
defCacheSize=128
hashRetention=256

[consensus]
name="solo"
genesis="14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"
genesisAmount=10000000000000000
idleBlockInterval=0

[rpc]
jrpcBindAddr="localhost:0"
whitelist=["127.0.0.1"]

[metrics]
enableMetrics=false

[exec.sub.wager]
betAmount=500000
revealDelay=3
maxSettlePerCall=16
settleOnBet=true
`
