package models

import "testing"

func TestChunk_WordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"one two  three", 3},
		{" leading\tand\ntrailing ", 3},
	}
	for _, tt := range tests {
		if got := (Chunk{Text: tt.text}).WordCount(); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestAnswer_Ready(t *testing.T) {
	var nilAnswer *Answer
	if nilAnswer.Ready() {
		t.Error("nil answer should not be ready")
	}
	if (&Answer{Status: StatusNotReady}).Ready() {
		t.Error("not_ready answer should not be ready")
	}
	if !(&Answer{Status: StatusAnswered}).Ready() {
		t.Error("answered answer should be ready")
	}
}
