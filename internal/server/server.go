package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/hangman-online/internal/config"
	"github.com/palemoky/hangman-online/internal/protocol"
	"github.com/palemoky/hangman-online/internal/server/game"
	"github.com/palemoky/hangman-online/internal/server/handlers"
	"github.com/palemoky/hangman-online/internal/server/storage"
	"github.com/palemoky/hangman-online/internal/server/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
}

// Server WebSocket 服务器
type Server struct {
	config      *config.Config
	redis       *redis.Client
	store       types.StoreInterface
	words       types.WordSourceInterface
	leaderboard types.LeaderboardInterface
	registry    *game.SessionRegistry
	handler     *handlers.Handler

	clients   map[string]*Client
	clientsMu sync.RWMutex

	httpServer *http.Server
}

// NewServer 创建服务器实例
// 持久化（Postgres）和排行榜（Redis）都是尽力而为的依赖:
// 任何一个不可用时服务器照常运行，对局完全依靠内存状态
func NewServer(cfg *config.Config) (*Server, error) {
	s := &Server{
		config:  cfg,
		clients: make(map[string]*Client),
	}

	// 初始化 Postgres 存储，失败时降级为纯内存模式
	if store, err := storage.Open(cfg.Postgres.DSN); err != nil {
		log.Printf("⚠️ Postgres 不可用，进入纯内存模式: %v", err)
		s.words = storage.NewMemoryWordSource()
	} else {
		s.store = store
		s.words = store
	}

	// 初始化 Redis 排行榜，失败时跳过排行榜功能
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis 不可用，排行榜功能关闭: %v", err)
		_ = rdb.Close()
	} else {
		s.redis = rdb
		s.leaderboard = storage.NewLeaderboard(rdb)
	}

	// 初始化对局注册表
	s.registry = game.NewSessionRegistry(s)

	// 初始化消息处理器
	s.handler = handlers.NewHandler(s)

	return s, nil
}

// Start 启动服务器
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	log.Printf("🚀 服务器启动在 ws://%s/ws", addr)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	// 创建客户端
	client := NewClient(s, conn)
	s.registerClient(client)

	// 发送连接成功消息（包含本连接的临时 ID）
	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		ConnID: client.ID,
	}))

	log.Printf("✅ 连接 %s 已建立", client.ID)

	// 启动客户端读写协程
	go client.ReadPump()
	go client.WritePump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		log.Printf("❌ 连接 %s 已断开", client.ID)
	}
}

// GetOnlineCount 获取在线人数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Shutdown 关闭服务器
func (s *Server) Shutdown() {
	// 关闭所有客户端连接
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
	}

	if s.redis != nil {
		_ = s.redis.Close()
	}

	log.Println("服务器已关闭")
}

// Interface implementations for types.ServerContext
func (s *Server) GetRegistry() types.RegistryInterface       { return s.registry }
func (s *Server) GetStore() types.StoreInterface             { return s.store }
func (s *Server) GetWordSource() types.WordSourceInterface   { return s.words }
func (s *Server) GetLeaderboard() types.LeaderboardInterface { return s.leaderboard }
func (s *Server) GetGameConfig() types.GameConfigInterface   { return &s.config.Game }

func (s *Server) GetClientByID(id string) types.ClientInterface {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	client, ok := s.clients[id]
	if !ok {
		return nil
	}
	return client
}

func (s *Server) RegisterClient(id string, client types.ClientInterface) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if c, ok := client.(*Client); ok {
		s.clients[id] = c
	}
}

func (s *Server) UnregisterClient(id string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, id)
}
