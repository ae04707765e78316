package parser

import "testing"

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"LISTA CORRIDA", "LISTACORRIDA"},
		{"lista corrida", "LISTACORRIDA"},
		{"Lista  Corrida ", "LISTACORRIDA"},
		{"Série", "SERIE"},
		{"SÉRIE", "SERIE"},
		{"serie", "SERIE"},
		{"Observações", "OBSERVACOES"},
		{"OBSERVAÇÕES!", "OBSERVACOES"},
		{"Total de Alunos", "TOTALDEALUNOS"},
		{"R.M.", "RM"},
		{"R M", "RM"},
		{"4ºB", "4B"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.input); got != tt.expected {
			t.Errorf("NormalizeKey(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

// Headers differing only by accent, case, spacing or punctuation must
// produce the same key.
func TestNormalizeKeyEquivalence(t *testing.T) {
	groups := [][]string{
		{"Data de Nascimento", "DATA DE NASCIMENTO", "data-de-nascimento"},
		{"Inclusão", "INCLUSAO", "inclusão?"},
		{"Plano de Ação", "plano de acao", "PLANO DE AÇÃO"},
	}
	for _, group := range groups {
		want := NormalizeKey(group[0])
		for _, s := range group[1:] {
			if got := NormalizeKey(s); got != want {
				t.Errorf("NormalizeKey(%q) = %q, expected %q (same as %q)", s, got, want, group[0])
			}
		}
	}
}
