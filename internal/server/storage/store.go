package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/palemoky/hangman-online/internal/protocol"
	"github.com/palemoky/hangman-online/internal/server/types"
)

// GameRecord 对局记录
type GameRecord struct {
	ID          uint `gorm:"primaryKey"`
	StartedAt   time.Time
	FinishedAt  *time.Time
	FinalScores datatypes.JSON // 最终得分，降序 [{name, score}]
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GamePlayer 对局中的玩家记录
type GamePlayer struct {
	ID        uint   `gorm:"primaryKey"`
	GameID    uint   `gorm:"index"`
	ConnID    string // 当时的连接 ID
	Name      string
	Score     int
	IsLeader  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WordRecord 词库条目
type WordRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Text      string `gorm:"not null"`
	Hint      string `gorm:"not null"`
	Category  string `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName 沿用原有的词库表名
func (WordRecord) TableName() string { return "words" }

// Store Postgres 持久化
// 同时充当单词来源（words 表）
type Store struct {
	db *gorm.DB
}

// Open 连接 Postgres、迁移表结构并在词库为空时写入种子数据
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres DSN 未配置")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres 连接失败: %w", err)
	}

	if err := db.AutoMigrate(&GameRecord{}, &GamePlayer{}, &WordRecord{}); err != nil {
		return nil, fmt.Errorf("迁移表结构失败: %w", err)
	}

	store := &Store{db: db}
	if err := store.seedWords(); err != nil {
		return nil, err
	}

	log.Println("✅ Postgres 已连接并完成迁移")
	return store, nil
}

// seedWords 词库为空时写入内置单词
func (s *Store) seedWords() error {
	var count int64
	if err := s.db.Model(&WordRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	records := make([]WordRecord, len(seedWords))
	for i, w := range seedWords {
		records[i] = WordRecord{Text: w.Text, Hint: w.Hint, Category: w.Category}
	}
	if err := s.db.Create(&records).Error; err != nil {
		return fmt.Errorf("写入种子词库失败: %w", err)
	}

	log.Printf("🌱 种子词库已写入，共 %d 个单词", len(records))
	return nil
}

// --- 持久化接口（types.StoreInterface） ---

// CreateGameRecord 创建对局行，返回行 ID
func (s *Store) CreateGameRecord(ctx context.Context) (uint, error) {
	record := &GameRecord{StartedAt: time.Now()}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

// RecordPlayer 记录一名玩家，返回玩家行 ID
func (s *Store) RecordPlayer(ctx context.Context, gameID uint, connID, name string, isLeader bool) (uint, error) {
	record := &GamePlayer{
		GameID:   gameID,
		ConnID:   connID,
		Name:     name,
		IsLeader: isLeader,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

// PromoteLeader 把玩家标记为房主
func (s *Store) PromoteLeader(ctx context.Context, playerID uint) error {
	return s.db.WithContext(ctx).
		Model(&GamePlayer{}).
		Where("id = ?", playerID).
		Update("is_leader", true).Error
}

// FinalizeGame 标记对局结束并落库最终得分
func (s *Store) FinalizeGame(ctx context.Context, gameID uint, finishedAt time.Time, finalScores []protocol.FinalScore) error {
	scores, err := json.Marshal(finalScores)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Model(&GameRecord{}).
		Where("id = ?", gameID).
		Updates(map[string]any{
			"finished_at":  finishedAt,
			"final_scores": datatypes.JSON(scores),
		}).Error
}

// UpdatePlayerScore 更新玩家得分
func (s *Store) UpdatePlayerScore(ctx context.Context, playerID uint, score int) error {
	return s.db.WithContext(ctx).
		Model(&GamePlayer{}).
		Where("id = ?", playerID).
		Update("score", score).Error
}

// --- 单词来源接口（types.WordSourceInterface） ---

// FetchRandomWords 随机抽取单词，词库不足时返回的数量会少于请求数量
func (s *Store) FetchRandomWords(ctx context.Context, count int, category string) ([]types.Word, error) {
	query := s.db.WithContext(ctx).Model(&WordRecord{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var records []WordRecord
	if err := query.Order("RANDOM()").Limit(count).Find(&records).Error; err != nil {
		return nil, err
	}

	words := make([]types.Word, len(records))
	for i, r := range records {
		words[i] = types.Word{Text: r.Text, Hint: r.Hint, Category: r.Category}
	}
	return words, nil
}
