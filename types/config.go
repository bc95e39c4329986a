// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// Config 节点的配置, 由 toml 文件解析而来
type Config struct {
	Title      string      `json:"title,omitempty"`
	Log        *Log        `json:"log,omitempty"`
	Store      *Store      `json:"store,omitempty"`
	BlockChain *BlockChain `json:"blockChain,omitempty"`
	Consensus  *Consensus  `json:"consensus,omitempty"`
	RPC        *RPC        `json:"rpc,omitempty"`
	Metrics    *Metrics    `json:"metrics,omitempty"`
}

// ConfigSubModule 子模块的配置, key 为子模块名, value 为 json 编码的配置
type ConfigSubModule struct {
	Exec    map[string][]byte
	Metrics map[string][]byte
}

// Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `json:"loglevel,omitempty"`
	LogConsoleLevel string `json:"logConsoleLevel,omitempty"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `json:"logFile,omitempty"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `json:"maxFileSize,omitempty"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `json:"maxBackups,omitempty"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32 `json:"maxAge,omitempty"`
	// 日志文件名是否使用本地事件（否则使用UTC时间）
	LocalTime bool `json:"localTime,omitempty"`
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool `json:"compress,omitempty"`
	// 是否打印调用源文件和行号
	CallerFile bool `json:"callerFile,omitempty"`
	// 是否打印调用方法
	CallerFunction bool `json:"callerFunction,omitempty"`
}

// Store 数据库配置, 区块, 状态和本地索引共用一个数据库
type Store struct {
	Driver  string `json:"driver,omitempty"`
	DbPath  string `json:"dbPath,omitempty"`
	DbCache int32  `json:"dbCache,omitempty"`
}

// BlockChain 区块链配置
type BlockChain struct {
	// 区块头缓存个数
	DefCacheSize int64 `json:"defCacheSize,omitempty"`
	// 最近多少个区块的哈希可以被执行器读取
	HashRetention int64 `json:"hashRetention,omitempty"`
}

// Consensus 共识配置, 目前只支持 solo
type Consensus struct {
	Name             string `json:"name,omitempty"`
	Genesis          string `json:"genesis,omitempty"`
	GenesisAmount    int64  `json:"genesisAmount,omitempty"`
	GenesisBlockTime int64  `json:"genesisBlockTime,omitempty"`
	// 没有交易时出空块的间隔(秒), 0 表示不出空块
	IdleBlockInterval int64 `json:"idleBlockInterval,omitempty"`
}

// RPC 配置
type RPC struct {
	JrpcBindAddr string   `json:"jrpcBindAddr,omitempty"`
	Whitelist    []string `json:"whitelist,omitempty"`
	// 每个 ip 每秒允许的请求数, 0 表示不限制
	RateLimit float64 `json:"rateLimit,omitempty"`
	RateBurst int64   `json:"rateBurst,omitempty"`
	// 允许跨域访问的来源, 为空时允许所有来源
	CorsAllowedOrigins []string `json:"corsAllowedOrigins,omitempty"`
}

// Metrics 配置
type Metrics struct {
	EnableMetrics bool   `json:"enableMetrics,omitempty"`
	DataEmitMode  string `json:"dataEmitMode,omitempty"`
}

// FillDefault 没有配置的项使用默认值
func (cfg *Config) FillDefault() {
	if cfg.Title == "" {
		cfg.Title = "local"
	}
	if cfg.Log == nil {
		cfg.Log = &Log{}
	}
	if cfg.Store == nil {
		cfg.Store = &Store{}
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "leveldb"
	}
	if cfg.Store.DbPath == "" {
		cfg.Store.DbPath = "datadir"
	}
	if cfg.Store.DbCache == 0 {
		cfg.Store.DbCache = 64
	}
	if cfg.BlockChain == nil {
		cfg.BlockChain = &BlockChain{}
	}
	if cfg.BlockChain.DefCacheSize == 0 {
		cfg.BlockChain.DefCacheSize = 128
	}
	if cfg.BlockChain.HashRetention == 0 {
		cfg.BlockChain.HashRetention = DefaultHashRetention
	}
	if cfg.Consensus == nil {
		cfg.Consensus = &Consensus{}
	}
	if cfg.Consensus.Name == "" {
		cfg.Consensus.Name = "solo"
	}
	if cfg.Consensus.Genesis == "" {
		cfg.Consensus.Genesis = GenesisAddr
	}
	if cfg.Consensus.GenesisAmount == 0 {
		cfg.Consensus.GenesisAmount = DefaultGenesisAmount
	}
	if cfg.Consensus.GenesisBlockTime == 0 {
		cfg.Consensus.GenesisBlockTime = GenesisBlockTime
	}
	if cfg.RPC == nil {
		cfg.RPC = &RPC{}
	}
	if cfg.RPC.JrpcBindAddr == "" {
		cfg.RPC.JrpcBindAddr = "localhost:8801"
	}
	if cfg.RPC.RateLimit > 0 && cfg.RPC.RateBurst == 0 {
		cfg.RPC.RateBurst = int64(cfg.RPC.RateLimit) * 2
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &Metrics{}
	}
}
