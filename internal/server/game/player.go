package game

import (
	"strconv"

	"github.com/palemoky/hangman-online/internal/protocol"
)

// Player 对局中的玩家
type Player struct {
	ID       uint   // 持久化后的玩家行 ID（0 表示未持久化）
	ConnID   string // 连接 ID
	Name     string // 昵称
	Score    int    // 累计得分
	IsLeader bool   // 是否是房主
}

// NewPlayer 创建玩家
func NewPlayer(connID, name string, isLeader bool) *Player {
	return &Player{
		ConnID:   connID,
		Name:     name,
		IsLeader: isLeader,
	}
}

// AddPoints 给玩家加分，返回新的总分
func (p *Player) AddPoints(n int) (int, error) {
	if n < 0 {
		return p.Score, ErrNegativePoints
	}
	p.Score += n
	return p.Score, nil
}

// Info 返回玩家的公开视图
func (p *Player) Info() protocol.PlayerInfo {
	id := ""
	if p.ID != 0 {
		id = strconv.FormatUint(uint64(p.ID), 10)
	}
	return protocol.PlayerInfo{
		ID:       id,
		ConnID:   p.ConnID,
		Name:     p.Name,
		Score:    p.Score,
		IsLeader: p.IsLeader,
	}
}
