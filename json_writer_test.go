package capgains

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	testCases := []struct {
		name  string
		build func(w *jsonObjectWriter)
		want  string
	}{
		{
			name:  "empty object",
			build: func(w *jsonObjectWriter) {},
			want:  "{}",
		},
		{
			name: "fields keep insertion order",
			build: func(w *jsonObjectWriter) {
				w.Append("command", "buy").Append("quantity", 100)
			},
			want: `{"command":"buy","quantity":100}`,
		},
		{
			name: "optional drops zero values only",
			build: func(w *jsonObjectWriter) {
				w.Append("fee", 0).Optional("memo", "").Optional("currency", "AUD")
			},
			want: `{"fee":0,"currency":"AUD"}`,
		},
		{
			name: "embedded object is flattened in place",
			build: func(w *jsonObjectWriter) {
				w.Append("a", 1)
				w.Embed(json.RawMessage(`{"b":2,"c":3}`))
				w.Append("d", 4)
			},
			want: `{"a":1,"b":2,"c":3,"d":4}`,
		},
		{
			name: "embed from a struct",
			build: func(w *jsonObjectWriter) {
				w.Append("security", "BHP")
				w.EmbedFrom(struct {
					Price int `json:"price"`
				}{Price: 12})
			},
			want: `{"security":"BHP","price":12}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var w jsonObjectWriter
			tc.build(&w)
			got, err := w.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() failed: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestTransactionMarshalOrder(t *testing.T) {
	// Ledger lines keep a stable, human-scannable field order.
	tx := NewBuy(day("2022-01-10"), "", "BHP", Q(100), AUD(10), AUD(5))
	got, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	want := `{"command":"buy","date":"2022-01-10","security":"BHP","quantity":100,"currency":"AUD","price":10,"fee":5}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}
