// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc 节点的 json rpc 服务, 系统服务名为 Chain, 插件可以注册自己的服务
package rpc

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"time"

	"github.com/33cn/wager/client"
	"github.com/33cn/wager/metrics"
	"github.com/33cn/wager/pluginmgr"
	rpctypes "github.com/33cn/wager/rpc/types"
	"github.com/33cn/wager/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

var log = log15.New("module", "rpc_server")

//单个请求的最大字节数
const maxRequestSize = 1 << 20

// HTTPConn adapt HTTP connection to ReadWriteCloser
type HTTPConn struct {
	in  io.Reader
	out io.Writer
}

func (c *HTTPConn) Read(p []byte) (n int, err error)  { return c.in.Read(p) }
func (c *HTTPConn) Write(d []byte) (n int, err error) { return c.out.Write(d) }

// Close 由 http server 关闭连接
func (c *HTTPConn) Close() error { return nil }

type serverMetrics struct {
	Requests *prometheus.CounterVec
	Duration prometheus.Histogram
}

// Metrics 实现 metrics.Collector
func (m *serverMetrics) Metrics() []prometheus.Collector {
	return metrics.PrometheusCollectorsFromFields(m)
}

func newServerMetrics() *serverMetrics {
	return &serverMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "json rpc requests by result",
		}, []string{"result"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "json rpc request duration",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// JSONRPCServer  a json rpcserver object
type JSONRPCServer struct {
	jrpc      *Chain
	s         *rpc.Server
	l         net.Listener
	whitelist map[string]bool
	limiter   *ipLimiter
	metrics   *serverMetrics
	registry  *prometheus.Registry
	origins   []string
}

// NewJSONRPCServer new json rpcserver object
func NewJSONRPCServer(cfg *types.RPC, api client.API) *JSONRPCServer {
	j := &JSONRPCServer{
		jrpc:      &Chain{},
		s:         rpc.NewServer(),
		whitelist: initIPWhitelist(cfg.Whitelist),
		limiter:   newIPLimiter(cfg.RateLimit, cfg.RateBurst),
		metrics:   newServerMetrics(),
		registry:  prometheus.NewRegistry(),
		origins:   cfg.CorsAllowedOrigins,
	}
	j.jrpc.cli.API = api
	if err := j.s.RegisterName("Chain", j.jrpc); err != nil {
		panic(err)
	}
	j.registry.MustRegister(j.metrics.Metrics()...)
	return j
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-type", "application/json")
	w.WriteHeader(code)
	data, _ := json.Marshal(map[string]interface{}{"id": nil, "result": nil, "error": err.Error()})
	_, _ = w.Write(data)
}

func (j *JSONRPCServer) serveJSONRPC(w http.ResponseWriter, r *http.Request) {
	beg := time.Now()
	defer func() { j.metrics.Duration.Observe(time.Since(beg).Seconds()) }()

	if r.Method != http.MethodPost {
		j.metrics.Requests.WithLabelValues("badmethod").Inc()
		writeError(w, http.StatusMethodNotAllowed, types.ErrInvalidParam)
		return
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if !checkIPWhitelist(j.whitelist, ip) {
		log.Error("HandlerFunc", "remote ip not in whitelist", ip)
		j.metrics.Requests.WithLabelValues("forbidden").Inc()
		writeError(w, http.StatusForbidden, types.ErrForbidden)
		return
	}
	if !j.limiter.Allow(ip) {
		j.metrics.Requests.WithLabelValues("limited").Inc()
		writeError(w, http.StatusTooManyRequests, types.ErrRateLimited)
		return
	}
	body := http.MaxBytesReader(w, r.Body, maxRequestSize)
	serverCodec := jsonrpc.NewServerCodec(&HTTPConn{in: body, out: w})
	w.Header().Set("Content-type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := j.s.ServeRequest(serverCodec); err != nil {
		log.Debug("Error while serving JSON request", "err", err)
		j.metrics.Requests.WithLabelValues("error").Inc()
		return
	}
	j.metrics.Requests.WithLabelValues("ok").Inc()
}

// Handler json rpc 在 "/" 上, prometheus 指标在 "/metrics" 上
func (j *JSONRPCServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(j.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", j.serveJSONRPC)
	c := cors.New(cors.Options{
		AllowedOrigins: j.origins,
		AllowedMethods: []string{http.MethodPost, http.MethodGet},
	})
	return c.Handler(mux)
}

// Listen 开始监听, 返回实际监听的端口
func (j *JSONRPCServer) Listen(addr string) (int, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, err
	}
	j.l = listener
	go func() {
		srv := &http.Server{Handler: j.Handler(), ReadHeaderTimeout: 10 * time.Second}
		if err := srv.Serve(listener); err != nil {
			log.Info("jrpc serve stop", "err", err)
		}
	}()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Close json rpcserver close
func (j *JSONRPCServer) Close() {
	if j.l != nil {
		if err := j.l.Close(); err != nil {
			log.Error("JSONRPCServer close", "err", err)
		}
	}
}

func initIPWhitelist(list []string) map[string]bool {
	whitelist := make(map[string]bool)
	if len(list) == 0 {
		whitelist["127.0.0.1"] = true
		return whitelist
	}
	if len(list) == 1 && list[0] == "*" {
		whitelist["0.0.0.0"] = true
		return whitelist
	}
	for _, addr := range list {
		whitelist[addr] = true
	}
	return whitelist
}

func checkIPWhitelist(whitelist map[string]bool, addr string) bool {
	//回环网络直接允许
	ip := net.ParseIP(addr)
	if ip.IsLoopback() {
		return true
	}
	ipv4 := ip.To4()
	if ipv4 != nil {
		addr = ipv4.String()
	}
	if _, ok := whitelist["0.0.0.0"]; ok {
		return true
	}
	if _, ok := whitelist[addr]; ok {
		return true
	}
	return false
}

// RPC a type object
type RPC struct {
	cfg  *types.RPC
	api  client.API
	japi *JSONRPCServer
	once sync.Once
}

// New 新建 rpc 服务, 同时注册所有插件的 rpc
func New(cfg *types.RPC, api client.API) *RPC {
	if cfg == nil {
		cfg = &types.RPC{}
	}
	r := &RPC{cfg: cfg, api: api}
	r.japi = NewJSONRPCServer(cfg, api)
	pluginmgr.AddRPC(r)
	return r
}

// Listen 在配置的地址上监听
func (r *RPC) Listen() (int, error) {
	port, err := r.japi.Listen(r.cfg.JrpcBindAddr)
	if err != nil {
		log.Error("Jrpc Listen", "err", err)
		return 0, err
	}
	log.Info("rpc Listen port", "jrpc", port)
	return port, nil
}

// Handler http handler, 测试时使用
func (r *RPC) Handler() http.Handler {
	return r.japi.Handler()
}

// GetAPI 节点接口
func (r *RPC) GetAPI() client.API {
	return r.api
}

// JRPC return jrpc
func (r *RPC) JRPC() *rpc.Server {
	return r.japi.s
}

// Close rpc close
func (r *RPC) Close() {
	r.once.Do(r.japi.Close)
}

var _ rpctypes.RPCServer = (*RPC)(nil)
