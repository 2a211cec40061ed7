package answer

import (
	"context"
	"reflect"
	"testing"
)

func TestMockAnswerText(t *testing.T) {
	got, err := Mock{}.Answer(context.Background(), "What is REST?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got.Text != `Mock answer for: "What is REST?"` {
		t.Errorf("text = %q", got.Text)
	}
}

func TestMockAnswerTable(t *testing.T) {
	got, err := Mock{}.Answer(context.Background(), "What is REST?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got.Structured == nil {
		t.Fatal("structured payload is nil")
	}

	wantHeaders := []string{"Metric", "Value"}
	if !reflect.DeepEqual(got.Structured.Headers, wantHeaders) {
		t.Errorf("headers = %v, want %v", got.Structured.Headers, wantHeaders)
	}

	wantRows := [][]string{
		{"Question Length", "13"},
		{"Words", "3"},
		{"Confidence", "0.85 (mock)"},
	}
	if !reflect.DeepEqual(got.Structured.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", got.Structured.Rows, wantRows)
	}
}

func TestMockAnswerDeterministic(t *testing.T) {
	first, _ := Mock{}.Answer(context.Background(), "same question twice")
	second, _ := Mock{}.Answer(context.Background(), "same question twice")
	if !reflect.DeepEqual(first, second) {
		t.Error("mock generator is not deterministic")
	}
}

func TestMockAnswerWordCount(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"one", "1"},
		{"  padded   words  here  ", "3"},
		{"tabs\tand\nnewlines count", "4"},
	}
	for _, tt := range tests {
		got, _ := Mock{}.Answer(context.Background(), tt.question)
		if got.Structured.Rows[1][1] != tt.want {
			t.Errorf("Words for %q = %q, want %q", tt.question, got.Structured.Rows[1][1], tt.want)
		}
	}
}
