package types

import (
	"fmt"
	"testing"
)

func TestConversationTrim(t *testing.T) {
	t.Run("length never exceeds window across many cycles", func(t *testing.T) {
		const window = 10
		conv := NewConversation()

		for i := 0; i < 50; i++ {
			conv.Trim(window)
			conv.AddUserMessage(fmt.Sprintf("question %d", i))
			conv.AddAssistantMessage(fmt.Sprintf("answer %d", i), nil)
			conv.Trim(window)

			if len(conv.Messages) > window {
				t.Fatalf("cycle %d: history length %d exceeds window %d", i, len(conv.Messages), window)
			}
		}
	})

	t.Run("length is at most n immediately after trimming", func(t *testing.T) {
		for _, window := range []int{1, 3, 10} {
			for _, size := range []int{0, 1, 3, 10, 11, 25} {
				conv := NewConversation()
				for i := 0; i < size; i++ {
					conv.AddUserMessage(fmt.Sprintf("m%d", i))
				}

				conv.Trim(window)

				want := size
				if want > window {
					want = window
				}
				if len(conv.Messages) != want {
					t.Errorf("size %d window %d: expected %d messages after trim, got %d",
						size, window, want, len(conv.Messages))
				}
			}
		}
	})

	t.Run("evicts from the front only", func(t *testing.T) {
		conv := NewConversation()
		for i := 0; i < 6; i++ {
			conv.AddUserMessage(fmt.Sprintf("m%d", i))
		}

		conv.Trim(4)

		if len(conv.Messages) != 4 {
			t.Fatalf("expected 4 messages, got %d", len(conv.Messages))
		}
		if conv.Messages[0].Content != "m2" {
			t.Errorf("expected oldest surviving message m2, got %s", conv.Messages[0].Content)
		}
		if conv.Messages[3].Content != "m5" {
			t.Errorf("expected newest message m5 retained, got %s", conv.Messages[3].Content)
		}
	})

	t.Run("no-op when under the window", func(t *testing.T) {
		conv := NewConversation()
		conv.AddUserMessage("hello")
		conv.Trim(10)

		if len(conv.Messages) != 1 {
			t.Errorf("expected 1 message, got %d", len(conv.Messages))
		}
	})

	t.Run("notes participate in eviction like any turn", func(t *testing.T) {
		conv := NewConversation()
		conv.AddUserMessage("find listings")
		conv.AddNote(`listing IDs: [{"listing_id":1}]`)
		conv.AddAssistantMessage("here you go", nil)

		conv.Trim(2)

		if len(conv.Messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(conv.Messages))
		}
		if conv.Messages[0].Role != RoleNote {
			t.Errorf("expected note to survive as oldest, got role %s", conv.Messages[0].Role)
		}
	})
}
