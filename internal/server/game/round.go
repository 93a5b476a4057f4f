package game

import (
	"sort"
	"strings"
	"unicode"

	"github.com/palemoky/hangman-online/internal/server/types"
)

// MaxWrongAttempts 每回合允许的最大错误次数
const MaxWrongAttempts = 6

// RoundState 单个玩家在单个回合中的猜测进度
// 不变量: guessed = correct ∪ wrong，且 correct 与 wrong 不相交
type RoundState struct {
	guessed map[rune]struct{}
	correct map[rune]struct{}
	wrong   map[rune]struct{}
}

// NewRoundState 创建空的回合状态
func NewRoundState() *RoundState {
	return &RoundState{
		guessed: make(map[rune]struct{}),
		correct: make(map[rune]struct{}),
		wrong:   make(map[rune]struct{}),
	}
}

// NormalizeLetter 将输入归一化为单个大写字母
func NormalizeLetter(s string) (rune, error) {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) != 1 || !unicode.IsLetter(runes[0]) {
		return 0, ErrInvalidLetter
	}
	return unicode.ToUpper(runes[0]), nil
}

// ApplyGuess 应用一次猜测
// 重复猜测返回 ErrAlreadyGuessed，字母集合保持不变
func (rs *RoundState) ApplyGuess(word types.Word, letter rune) error {
	if _, ok := rs.guessed[letter]; ok {
		return ErrAlreadyGuessed
	}

	rs.guessed[letter] = struct{}{}
	if strings.ContainsRune(strings.ToUpper(word.Text), letter) {
		rs.correct[letter] = struct{}{}
	} else {
		rs.wrong[letter] = struct{}{}
	}
	return nil
}

// Display 生成遮罩后的单词
// 空格原样显示且不参与胜负判定，未猜出的字母显示为 "_"
func (rs *RoundState) Display(word types.Word) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(word.Text) {
		switch {
		case r == ' ':
			b.WriteRune(' ')
		case rs.has(rs.correct, r):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// IsWon 单词中每个非空格字符都已被猜中
func (rs *RoundState) IsWon(word types.Word) bool {
	for _, r := range strings.ToUpper(word.Text) {
		if r == ' ' {
			continue
		}
		if !rs.has(rs.correct, r) {
			return false
		}
	}
	return true
}

// IsLost 错误次数达到上限
func (rs *RoundState) IsLost() bool {
	return len(rs.wrong) >= MaxWrongAttempts
}

// Finished 本回合对该玩家已结束（猜出或出局）
func (rs *RoundState) Finished(word types.Word) bool {
	return rs.IsWon(word) || rs.IsLost()
}

// GuessedLetters 已猜过的全部字母（升序）
func (rs *RoundState) GuessedLetters() []string { return sortedLetters(rs.guessed) }

// CorrectLetters 猜对的字母（升序）
func (rs *RoundState) CorrectLetters() []string { return sortedLetters(rs.correct) }

// WrongLetters 猜错的字母（升序）
func (rs *RoundState) WrongLetters() []string { return sortedLetters(rs.wrong) }

// WrongCount 猜错的字母数量
func (rs *RoundState) WrongCount() int { return len(rs.wrong) }

func (rs *RoundState) has(set map[rune]struct{}, r rune) bool {
	_, ok := set[r]
	return ok
}

func sortedLetters(set map[rune]struct{}) []string {
	letters := make([]string, 0, len(set))
	for r := range set {
		letters = append(letters, string(r))
	}
	sort.Strings(letters)
	return letters
}
