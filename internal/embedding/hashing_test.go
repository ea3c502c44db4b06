package embedding

import (
	"context"
	"math"
	"testing"
)

func TestHashingEmbedder_Deterministic(t *testing.T) {
	e := NewHashingEmbedder(64)
	ctx := context.Background()
	a, err := e.Embed(ctx, "The quick brown fox")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := e.Embed(ctx, "the QUICK brown, fox!")
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embeddings differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestHashingEmbedder_UnitNorm(t *testing.T) {
	e := NewHashingEmbedder(128)
	emb, _ := e.Embed(context.Background(), "alpha beta gamma delta")
	var sum float64
	for _, v := range emb {
		sum += float64(v) * float64(v)
	}
	if math.Abs(sum-1) > 1e-5 {
		t.Errorf("squared norm = %f, want 1", sum)
	}
}

func TestHashingEmbedder_EmptyIsZero(t *testing.T) {
	e := NewHashingEmbedder(16)
	emb, err := e.Embed(context.Background(), "  ... ")
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range emb {
		if v != 0 {
			t.Fatalf("emb[%d] = %v, want 0", i, v)
		}
	}
}

func TestHashingEmbedder_SharedWordsAreCloser(t *testing.T) {
	e := NewHashingEmbedder(4096)
	ctx := context.Background()
	q, _ := e.Embed(ctx, "where do penguins live")
	near, _ := e.Embed(ctx, "penguins live in the southern hemisphere")
	far, _ := e.Embed(ctx, "compilers translate source code into machine code")
	if dist(q, near) >= dist(q, far) {
		t.Errorf("expected related text to be closer: near=%f far=%f", dist(q, near), dist(q, far))
	}
}

func TestHashingEmbedder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewHashingEmbedder(8).EmbedBatch(ctx, []string{"a"}); err == nil {
		t.Error("expected context error")
	}
}

func TestHashingEmbedder_DefaultDimensions(t *testing.T) {
	if d := NewHashingEmbedder(0).Dimensions(); d != 384 {
		t.Errorf("Dimensions() = %d, want 384", d)
	}
}

func TestTerms(t *testing.T) {
	got := Terms("Hello, World! It's 2024.")
	want := []string{"hello", "world", "it", "s", "2024"}
	if len(got) != len(want) {
		t.Fatalf("Terms = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Terms[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func dist(a, b []float32) float64 {
	var s float64
	for i := range a {
		d := float64(a[i] - b[i])
		s += d * d
	}
	return math.Sqrt(s)
}
