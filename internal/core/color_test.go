package core

import "testing"

func TestColorForKnownIDs(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"", "#ef4444"},   // empty hash is 0
		{"A", "#3b82f6"},  // 65 % 8 == 1
		{"B", "#10b981"},  // 66 % 8 == 2
		{"AB", "#3b82f6"}, // 65*31+66 = 2081, 2081 % 8 == 1
		// UUIDs whose 32-bit hash goes negative exercise the abs path.
		{"f47ac10b-58cc-4372-a567-0e02b2c3d479", "#6366f1"},
		{"a3bb189e-8bf9-3888-9912-ace4e6543002", "#84cc16"},
		{"zzzzzzzzzz", "#ef4444"},
	}
	for _, tc := range cases {
		if got := ColorFor(tc.id); got != tc.want {
			t.Fatalf("ColorFor(%q) got %s, want %s", tc.id, got, tc.want)
		}
	}
}

func TestColorForDeterministicAndTotal(t *testing.T) {
	ids := []string{"", "x", "category-1", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "日本語"}
	for _, id := range ids {
		first := ColorFor(id)
		for i := 0; i < 10; i++ {
			if got := ColorFor(id); got != first {
				t.Fatalf("ColorFor(%q) not deterministic: %s then %s", id, first, got)
			}
		}
		found := false
		for _, c := range palette {
			if c == first {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("ColorFor(%q) = %s is not a palette entry", id, first)
		}
	}
}
