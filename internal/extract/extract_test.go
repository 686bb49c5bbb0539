package extract

import (
	"encoding/json"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "bare_object",
			input: `{"name":"Stripe"}`,
			want:  `{"name":"Stripe"}`,
		},
		{
			name:  "prose_around_object",
			input: "Here is the data you asked for:\n" + `{"name":"Stripe","foundingYear":2010}` + "\nLet me know if you need more.",
			want:  `{"name":"Stripe","foundingYear":2010}`,
		},
		{
			name:  "json_fence",
			input: "```json\n{\"name\":\"Figma\"}\n```",
			want:  `{"name":"Figma"}`,
		},
		{
			name:  "plain_fence",
			input: "```\n{\"name\":\"Figma\"}\n```",
			want:  `{"name":"Figma"}`,
		},
		{
			name:  "nested_objects",
			input: `{"marketMap":{"segments":[{"name":"Core"}]}}`,
			want:  `{"marketMap":{"segments":[{"name":"Core"}]}}`,
		},
		{
			name:    "no_braces",
			input:   "I could not find any information about that company.",
			wantErr: ErrNoJSON,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrNoJSON,
		},
		{
			name:    "truncated_object",
			input:   `{"name":"Stripe","tagline":}`,
			wantErr: ErrMalformedJSON,
		},
		{
			// Greedy first-to-last match swallows the trailing commentary
			// brace and fails. Known limitation, kept on purpose.
			name:    "stray_trailing_brace",
			input:   `{"name":"Stripe"} and one more thing }`,
			wantErr: ErrMalformedJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Object(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, eris.Is(err, tt.wantErr))
				assert.Nil(t, raw)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

// Any object serialized between brace-free prefix and suffix text must
// round-trip through extraction unchanged.
func TestObjectRoundTrip(t *testing.T) {
	objs := []map[string]any{
		{"name": "Stripe", "foundingYear": float64(2010)},
		{"topCompetitors": []any{map[string]any{"name": "Adyen", "type": "direct"}}},
		{"nested": map[string]any{"deep": map[string]any{"value": "x y z"}}},
	}

	for _, obj := range objs {
		encoded, err := json.Marshal(obj)
		require.NoError(t, err)

		text := "Sure - here is the JSON:\n" + string(encoded) + "\nHope that helps."
		raw, err := Object(text)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, obj, got)
	}
}

func TestInto(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}
	err := Into("prefix {\"name\":\"Notion\"} suffix", &out)
	require.NoError(t, err)
	assert.Equal(t, "Notion", out.Name)

	err = Into("no json here", &out)
	assert.True(t, eris.Is(err, ErrNoJSON))

	// Valid JSON that does not fit the target shape is malformed from the
	// caller's point of view.
	var typed struct {
		Year int `json:"year"`
	}
	err = Into(`{"year":"not a number"}`, &typed)
	assert.True(t, eris.Is(err, ErrMalformedJSON))
}
