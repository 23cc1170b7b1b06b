// Package textutil 提供与语言无关的文本归一化工具
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Fold 去除首尾空白、转小写并剥离变音符号（"Concluído" → "concluido"）
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// EqualFold 忽略大小写与变音符号比较
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// RuneLen 按字符而非字节计算长度
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
