package storage

import (
	"github.com/palemoky/hangman-online/internal/server/types"
)

// seedWords 内置词库，首次启动时写入数据库，
// 数据库不可用时由 MemoryWordSource 直接使用
var seedWords = []types.Word{
	// 电影
	{Text: "INCEPTION", Hint: "诺兰执导的盗梦题材电影", Category: "电影"},
	{Text: "MATRIX", Hint: "基努·里维斯在虚拟世界对抗机器", Category: "电影"},
	{Text: "AVATAR", Hint: "潘多拉星球上的外星世界", Category: "电影"},

	// 剧集
	{Text: "BREAKING BAD", Hint: "化学老师转行制毒", Category: "剧集"},
	{Text: "STRANGER THINGS", Hint: "男孩失踪，朋友们闯入颠倒世界", Category: "剧集"},
	{Text: "FRIENDS", Hint: "六个好友的纽约生活", Category: "剧集"},

	// 角色
	{Text: "GANDALF", Hint: "《指环王》里的灰袍巫师", Category: "角色"},
	{Text: "HARRY POTTER", Hint: "额头有闪电伤疤的巫师", Category: "角色"},
	{Text: "SHERLOCK HOLMES", Hint: "柯南·道尔笔下的侦探", Category: "角色"},

	// 食物
	{Text: "PIZZA", Hint: "配马苏里拉和番茄的意大利美食", Category: "食物"},
	{Text: "SUSHI", Hint: "米饭配生鱼片的日本料理", Category: "食物"},
	{Text: "TACO", Hint: "玉米饼夹馅的墨西哥食物", Category: "食物"},

	// 动物
	{Text: "PENGUIN", Hint: "不会飞、生活在寒冷地区的鸟", Category: "动物"},
	{Text: "KANGAROO", Hint: "澳大利亚的有袋类动物", Category: "动物"},
	{Text: "DOLPHIN", Hint: "非常聪明的海洋哺乳动物", Category: "动物"},
	{Text: "DRAGON", Hint: "会喷火的神话生物", Category: "动物"},

	// 其他
	{Text: "BATMAN", Hint: "哥谭市的英雄，布鲁斯·韦恩", Category: "超级英雄"},
	{Text: "MARIO", Hint: "任天堂的大胡子水管工", Category: "角色"},
}
