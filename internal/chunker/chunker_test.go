package chunker

import (
	"strings"
	"testing"
)

// reconstruct concatenates chunks with the overlap removed.
func reconstruct(chunks []Chunk, overlap int) string {
	var sb strings.Builder
	for i, c := range chunks {
		runes := []rune(c.Text)
		if i > 0 {
			runes = runes[overlap:]
		}
		sb.WriteString(string(runes))
	}
	return sb.String()
}

func TestSplitEmpty(t *testing.T) {
	s := New(100, 20)
	if chunks := s.Split("", nil); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty input, got %d", len(chunks))
	}
}

func TestSplitShortInput(t *testing.T) {
	s := New(100, 20)
	chunks := s.Split("short document", map[string]string{"source": "a.txt"})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "short document" {
		t.Errorf("expected whole document back, got %q", chunks[0].Text)
	}
	if chunks[0].Metadata["source"] != "a.txt" {
		t.Errorf("expected inherited metadata, got %v", chunks[0].Metadata)
	}
}

func TestSplitReconstruction(t *testing.T) {
	s := New(50, 10)

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("Sentence number one. Sentence number two.\n\n")
	}
	text := sb.String()

	chunks := s.Split(text, nil)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if got := reconstruct(chunks, 10); got != text {
		t.Errorf("reconstruction mismatch: got %d chars, want %d", len(got), len(text))
	}

	for i, c := range chunks {
		if n := len([]rune(c.Text)); n > 50 {
			t.Errorf("chunk %d exceeds size: %d runes", i, n)
		}
	}
}

func TestSplitReconstructionUnicode(t *testing.T) {
	s := New(30, 5)
	text := strings.Repeat("יש לי נזילה במטבח ואני צריך עזרה דחופה. ", 20)

	chunks := s.Split(text, nil)
	if got := reconstruct(chunks, 5); got != text {
		t.Error("unicode reconstruction mismatch")
	}
}

func TestSplitChunkCount(t *testing.T) {
	s := New(100, 20)
	// No natural boundaries: every cut is a hard cut, so the count is exact.
	text := strings.Repeat("x", 1000)

	chunks := s.Split(text, nil)
	// ceil((1000 - 20) / (100 - 20)) = 13 with hard cuts at every boundary.
	if len(chunks) != 13 {
		t.Errorf("expected 13 chunks, got %d", len(chunks))
	}
	if got := reconstruct(chunks, 20); got != text {
		t.Error("reconstruction mismatch")
	}
}

func TestSplitPrefersWordBoundary(t *testing.T) {
	s := New(20, 4)
	text := strings.Repeat("alpha beta gamma delta epsilon ", 10)

	chunks := s.Split(text, nil)
	for i, c := range chunks[:len(chunks)-1] {
		if !strings.HasSuffix(c.Text, " ") && !strings.HasSuffix(c.Text, "\n") {
			t.Errorf("chunk %d does not end on a boundary: %q", i, c.Text)
		}
	}
	if got := reconstruct(chunks, 4); got != text {
		t.Error("reconstruction mismatch")
	}
}

func TestMetadataIsCopied(t *testing.T) {
	s := New(20, 4)
	meta := map[string]string{"source": "doc.txt"}
	chunks := s.Split(strings.Repeat("word ", 50), meta)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	chunks[0].Metadata["source"] = "mutated"
	if chunks[1].Metadata["source"] != "doc.txt" {
		t.Error("chunk metadata is shared, expected independent copies")
	}
	if meta["source"] != "doc.txt" {
		t.Error("parent metadata was mutated")
	}
}

func TestSplitDocuments(t *testing.T) {
	s := New(100, 20)
	docs := []Document{
		{Text: "first document", Metadata: map[string]string{"source": "a"}},
		{Text: "", Metadata: map[string]string{"source": "skipped"}},
		{Text: "second document", Metadata: map[string]string{"source": "b"}},
	}

	chunks := s.SplitDocuments(docs)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Metadata["source"] != "a" || chunks[1].Metadata["source"] != "b" {
		t.Error("chunks did not inherit their document's metadata")
	}
}
