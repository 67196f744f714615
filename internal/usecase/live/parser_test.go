package live

import (
	"strings"
	"testing"
)

func TestParseSummaryResponse(t *testing.T) {
	raw := `{
		"summary": "新製品の発売時期について議論した。",
		"key_points": ["発売は10月", "予算は据え置き"],
		"action_items": [{"task": "価格表を更新する", "assignee": "田中"}],
		"decisions": ["10月発売で確定"]
	}`

	payload, err := parseSummaryResponse(raw)
	if err != nil {
		t.Fatalf("parseSummaryResponse: %v", err)
	}
	if payload.Summary != "新製品の発売時期について議論した。" {
		t.Errorf("summary = %q", payload.Summary)
	}
	if len(payload.KeyPoints) != 2 || len(payload.ActionItems) != 1 || len(payload.Decisions) != 1 {
		t.Errorf("unexpected counts: %d key points, %d action items, %d decisions",
			len(payload.KeyPoints), len(payload.ActionItems), len(payload.Decisions))
	}
	if payload.ActionItems[0].Assignee != "田中" {
		t.Errorf("assignee = %q", payload.ActionItems[0].Assignee)
	}
}

func TestParseSummaryResponseMarkdownFenced(t *testing.T) {
	raw := "```json\n{\"summary\": \"要約\", \"key_points\": [], \"action_items\": [], \"decisions\": []}\n```"

	payload, err := parseSummaryResponse(raw)
	if err != nil {
		t.Fatalf("parseSummaryResponse: %v", err)
	}
	if payload.Summary != "要約" {
		t.Errorf("summary = %q", payload.Summary)
	}
}

func TestParseSummaryResponseNilSlicesNormalized(t *testing.T) {
	payload, err := parseSummaryResponse(`{"summary": "要約のみ"}`)
	if err != nil {
		t.Fatalf("parseSummaryResponse: %v", err)
	}
	if payload.KeyPoints == nil || payload.ActionItems == nil || payload.Decisions == nil {
		t.Error("nil slices were not normalized to empty")
	}
}

func TestParseSummaryResponseErrors(t *testing.T) {
	if _, err := parseSummaryResponse("これはJSONではありません"); err == nil {
		t.Error("non-JSON input did not error")
	}
	if _, err := parseSummaryResponse(`{"key_points": ["a"]}`); err == nil {
		t.Error("missing summary field did not error")
	}
}

func TestFallbackSummaryTruncatesExcerpt(t *testing.T) {
	long := strings.Repeat("あ", 500)
	payload := fallbackSummary(long)

	if payload.Summary == "" {
		t.Error("fallback summary is empty")
	}
	if len(payload.KeyPoints) != 1 {
		t.Fatalf("key points = %d, want 1", len(payload.KeyPoints))
	}
	if got := []rune(payload.KeyPoints[0]); len(got) != 203 {
		t.Errorf("excerpt length = %d runes, want 203 (200 + ellipsis)", len(got))
	}

	short := fallbackSummary("短いテキスト")
	if short.KeyPoints[0] != "短いテキスト" {
		t.Errorf("short excerpt = %q", short.KeyPoints[0])
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := extractJSON(tc.in); got != tc.want {
			t.Errorf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
