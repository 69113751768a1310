package memo

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{name: "plain", content: "buy milk", want: "buy milk"},
		{name: "trimmed", content: "\t buy milk \n", want: "buy milk"},
		{name: "inner whitespace kept", content: "line one\nline two", want: "line one\nline two"},
		{name: "empty", content: "", wantErr: ErrEmptyContent},
		{name: "whitespace only", content: "   ", wantErr: ErrEmptyContent},
		{name: "at limit", content: strings.Repeat("가", MaxContentLength), want: strings.Repeat("가", MaxContentLength)},
		{name: "over limit", content: strings.Repeat("x", MaxContentLength+1), wantErr: ErrContentTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeContent(tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMemo_WireShape(t *testing.T) {
	created := time.Date(2024, 5, 1, 8, 30, 0, 123000000, time.UTC)
	m := Memo{ID: 1714552200123, Content: "hello", CreatedAt: created, UpdatedAt: created.Add(time.Minute)}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"id":1714552200123,"content":"hello","createdAt":"2024-05-01T08:30:00.123Z","updatedAt":"2024-05-01T08:31:00.123Z"}`
	if string(data) != want {
		t.Errorf("wire shape mismatch:\n got %s\nwant %s", data, want)
	}
}

func TestMemo_TimestampsNormalizedToUTC(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	at := time.Date(2024, 5, 1, 17, 30, 0, 0, seoul)
	m := Memo{ID: 1, Content: "x", CreatedAt: at, UpdatedAt: at}

	data, _ := json.Marshal(m)
	if !strings.Contains(string(data), `"createdAt":"2024-05-01T08:30:00.000Z"`) {
		t.Errorf("expected UTC timestamp, got %s", data)
	}
}

func TestDecode_BrowserData(t *testing.T) {
	// Written by Date.toISOString() and Date.now()
	raw := `[
		{"id":1714552260000,"content":"call mom","createdAt":"2024-05-01T08:31:00.000Z","updatedAt":"2024-05-01T08:31:00.000Z"},
		{"id":1714552200000,"content":"buy oat milk","createdAt":"2024-05-01T08:30:00.000Z","updatedAt":"2024-05-01T09:00:00Z"}
	]`

	memos, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(memos) != 2 {
		t.Fatalf("expected 2 memos, got %d", len(memos))
	}
	if memos[0].Content != "call mom" || memos[1].Content != "buy oat milk" {
		t.Errorf("order not preserved: %+v", memos)
	}
	if memos[0].Edited() {
		t.Error("first memo should not be edited")
	}
	if !memos[1].Edited() {
		t.Error("second memo should be edited")
	}
}

func TestDecode_Null(t *testing.T) {
	memos, err := Decode([]byte("null"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if memos == nil || len(memos) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", memos)
	}
}

func TestDecode_TrimsContent(t *testing.T) {
	raw := `[{"id":1,"content":"  buy milk \n","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`

	memos, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if memos[0].Content != "buy milk" {
		t.Errorf("expected trimmed content, got %q", memos[0].Content)
	}
}

func TestRecover(t *testing.T) {
	raw := `[
		{"id":3,"content":"ok","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"},
		{"id":0,"content":"zero id","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"},
		{"id":2,"content":"   ","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"},
		"not a memo",
		{"id":3,"content":"same id","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}
	]`

	memos, dropped, err := Recover([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(memos) != 2 || memos[0].Content != "ok" || memos[1].Content != "same id" {
		t.Errorf("expected the two readable memos, got %#v", memos)
	}
	if len(dropped) != 3 {
		t.Errorf("expected 3 dropped elements, got %d: %v", len(dropped), dropped)
	}

	if _, _, err := Recover([]byte(`{"memos":[]}`)); err == nil {
		t.Error("expected an error for a payload that is not an array")
	}
}

func TestDecode_Rejects(t *testing.T) {
	cases := map[string]string{
		"not json":   "[",
		"not array":  `{"memos":[]}`,
		"zero id":    `[{"id":0,"content":"a","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`,
		"string id":  `[{"id":"1","content":"a","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`,
		"no content": `[{"id":1,"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`,
		"duplicate":  `[{"id":1,"content":"a","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"},{"id":1,"content":"b","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode([]byte(raw)); err == nil {
				t.Errorf("expected decode error for %s", raw)
			}
		})
	}
}

func TestEncode_Nil(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected [], got %s", data)
	}
}

func TestRoundTrip(t *testing.T) {
	clock := newFakeClock()
	store := openTestStore(t, newRecordingSlot(), clock)

	for _, c := range []string{"one", "two", "three", "four"} {
		if _, err := store.Add(c); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		clock.Advance(1500 * time.Microsecond)
	}
	memos := store.Memos()
	if _, err := store.Update(memos[2].ID, "two, edited"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := store.Delete(memos[0].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	want := store.Memos()
	data, err := Encode(want)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("memo %d mismatch: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
