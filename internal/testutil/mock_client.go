//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/hangman-online/internal/protocol"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetName(name string) {
	m.Called(name)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的 mock 客户端，不使用 testify（用于不需要断言的测试）
// 定时流转会从其他协程发消息，所以消息列表用锁保护
type SimpleClient struct {
	ID   string
	Name string

	mu       sync.Mutex
	messages []*protocol.Message
}

func (m *SimpleClient) GetID() string       { return m.ID }
func (m *SimpleClient) GetName() string     { return m.Name }
func (m *SimpleClient) SetName(name string) { m.Name = name }
func (m *SimpleClient) Close()              {}

func (m *SimpleClient) SendMessage(msg *protocol.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

// Messages 返回已收到消息的快照
func (m *SimpleClient) Messages() []*protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*protocol.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// LastOf 返回指定类型的最后一条消息，没有则返回 nil
func (m *SimpleClient) LastOf(msgType protocol.MessageType) *protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Type == msgType {
			return m.messages[i]
		}
	}
	return nil
}

// CountOf 返回指定类型消息的数量
func (m *SimpleClient) CountOf(msgType protocol.MessageType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.messages {
		if msg.Type == msgType {
			n++
		}
	}
	return n
}
