package history

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestHistoryUnknownSessionIsEmpty(t *testing.T) {
	store := NewMemoryStore(10, zaptest.NewLogger(t))

	messages, err := store.History(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("Expected empty history, got %d messages", len(messages))
	}
}

func TestAppendPreservesInsertionOrder(t *testing.T) {
	store := NewMemoryStore(10, zaptest.NewLogger(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		msg := Message{ID: fmt.Sprintf("m%d", i), Content: fmt.Sprintf("message %d", i), Timestamp: int64(i)}
		if err := store.Append(ctx, "s1", msg); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	messages, _ := store.History(ctx, "s1")
	if len(messages) != 5 {
		t.Fatalf("Expected 5 messages, got %d", len(messages))
	}
	for i, msg := range messages {
		if msg.ID != fmt.Sprintf("m%d", i) {
			t.Errorf("Position %d: expected m%d, got %s", i, i, msg.ID)
		}
	}
}

func TestFIFOEvictionAtCap(t *testing.T) {
	store := NewMemoryStore(10, zaptest.NewLogger(t))
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		msg := Message{ID: fmt.Sprintf("m%d", i), Timestamp: int64(i)}
		if err := store.Append(ctx, "s1", msg); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	messages, _ := store.History(ctx, "s1")
	if len(messages) != MaxMessagesPerSession {
		t.Fatalf("Expected %d messages after 25 appends, got %d", MaxMessagesPerSession, len(messages))
	}
	// Oldest five evicted, window starts at m5.
	if messages[0].ID != "m5" {
		t.Errorf("Expected oldest surviving message m5, got %s", messages[0].ID)
	}
	if messages[len(messages)-1].ID != "m24" {
		t.Errorf("Expected newest message m24, got %s", messages[len(messages)-1].ID)
	}
}

func TestTimestampsNonDecreasing(t *testing.T) {
	store := NewMemoryStore(10, zaptest.NewLogger(t))
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		store.Append(ctx, "s1", Message{ID: fmt.Sprintf("m%d", i), Timestamp: int64(i * 100)})
	}

	messages, _ := store.History(ctx, "s1")
	for i := 1; i < len(messages); i++ {
		if messages[i].Timestamp < messages[i-1].Timestamp {
			t.Errorf("Timestamp decreased at position %d: %d < %d", i, messages[i].Timestamp, messages[i-1].Timestamp)
		}
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := NewMemoryStore(10, zaptest.NewLogger(t))
	ctx := context.Background()

	store.Append(ctx, "s1", Message{ID: "a"})
	store.Append(ctx, "s2", Message{ID: "b"})

	s1, _ := store.History(ctx, "s1")
	s2, _ := store.History(ctx, "s2")
	if len(s1) != 1 || len(s2) != 1 {
		t.Fatalf("Expected 1 message per session, got %d and %d", len(s1), len(s2))
	}
	if s1[0].ID != "a" || s2[0].ID != "b" {
		t.Errorf("Sessions leaked messages: %s / %s", s1[0].ID, s2[0].ID)
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	store := NewMemoryStore(10, zaptest.NewLogger(t))
	ctx := context.Background()

	store.Append(ctx, "s1", Message{ID: "a", Content: "original"})
	first, _ := store.History(ctx, "s1")
	first[0].Content = "mutated"

	second, _ := store.History(ctx, "s1")
	if second[0].Content != "original" {
		t.Error("History exposed internal storage to mutation")
	}
}

func TestSessionCountIsBounded(t *testing.T) {
	store := NewMemoryStore(3, zaptest.NewLogger(t))
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		store.Append(ctx, fmt.Sprintf("session-%d", i), Message{ID: "m"})
	}
	if store.Sessions() > 3 {
		t.Errorf("Expected at most 3 tracked sessions, got %d", store.Sessions())
	}
}
