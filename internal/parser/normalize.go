package parser

import "strings"

// 全角标点到半角的固定映射，顿号统一折算为逗号
var punctFold = map[rune]rune{
	'。': '.',
	'，': ',',
	'：': ':',
	'；': ';',
	'？': '?',
	'！': '!',
	'（': '(',
	'）': ')',
	'【': '[',
	'】': ']',
	'、': ',',
}

// isInvisible 零宽字符、方向控制符、行/段分隔符
func isInvisible(r rune) bool {
	switch {
	case r >= 0x200B && r <= 0x200D:
		return true
	case r == 0xFEFF, r == 0x2060, r == 0x180E:
		return true
	case r >= 0x202A && r <= 0x202E:
		return true
	case r == 0x2028, r == 0x2029:
		return true
	}
	return false
}

// stripInvisible 仅去除不可见字符，供需要保留原始标点的检测使用
func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		if isInvisible(r) {
			return -1
		}
		return r
	}, s)
}

// Normalize 统一全角半角符号并清理不可见字符。
// 幂等：Normalize(Normalize(s)) == Normalize(s)。
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case isInvisible(r):
			// 丢弃
		case r >= '０' && r <= '９', r >= 'ａ' && r <= 'ｚ', r >= 'Ａ' && r <= 'Ｚ':
			// FF00 区块数字字母折算到 ASCII
			b.WriteRune(r - 0xFEE0)
		default:
			if h, ok := punctFold[r]; ok {
				b.WriteRune(h)
			} else {
				b.WriteRune(r)
			}
		}
	}
	// 压缩连续空白并去掉首尾空白
	return strings.Join(strings.Fields(b.String()), " ")
}
