package textutil

import "testing"

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Concluído":     "concluido",
		"  FINALIZADO ": "finalizado",
		"Qualificação":  "qualificacao",
		"Pré-projeto":   "pre-projeto",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Errorf("Fold(%q)=%q，期望 %q", in, got, want)
		}
	}
}

func TestEqualFold(t *testing.T) {
	if !EqualFold("concluido", "CONCLUÍDO") {
		t.Error("应忽略大小写和重音")
	}
	if EqualFold("Defesa", "Finalizado") {
		t.Error("不同文本不应相等")
	}
}

func TestRuneLen(t *testing.T) {
	if RuneLen("São") != 3 {
		t.Errorf("期望 3 个字符，实际=%d", RuneLen("São"))
	}
}
