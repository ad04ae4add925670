package businessflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:   "remote address when no proxy headers",
			remote: "198.51.100.7",
			want:   "198.51.100.7",
		},
		{
			name:    "cloudflare header wins",
			headers: map[string]string{"CF-Connecting-IP": "203.0.113.1", "X-Forwarded-For": "203.0.113.2", "X-Real-IP": "203.0.113.3"},
			remote:  "10.0.0.1",
			want:    "203.0.113.1",
		},
		{
			name:    "first forwarded hop",
			headers: map[string]string{"X-Forwarded-For": " 203.0.113.2 , 10.0.0.2, 10.0.0.3", "X-Real-IP": "203.0.113.3"},
			remote:  "10.0.0.1",
			want:    "203.0.113.2",
		},
		{
			name:    "empty forwarded hop falls through",
			headers: map[string]string{"X-Forwarded-For": " , 10.0.0.2", "X-Real-IP": "203.0.113.3"},
			remote:  "10.0.0.1",
			want:    "203.0.113.3",
		},
		{
			name:    "real ip header",
			headers: map[string]string{"X-Real-IP": "2001:db8::1"},
			remote:  "10.0.0.1",
			want:    "2001:db8::1",
		},
		{
			name:    "blank headers ignored",
			headers: map[string]string{"CF-Connecting-IP": "   "},
			remote:  "10.0.0.1",
			want:    "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := func(name string) string { return tt.headers[name] }
			assert.Equal(t, tt.want, ResolveClientIP(header, tt.remote))
		})
	}
}

func TestBusinessErrorChain(t *testing.T) {
	err := NewBusinessError("INVALID_RATING_INPUT", "Invalid input", ErrInvalidRatingInput)

	assert.True(t, IsInvalidRatingInput(err))
	assert.False(t, IsRatingStorageFailed(err))
	assert.Equal(t, "Invalid input: "+ErrInvalidRatingInput.Error(), err.Error())

	be, ok := AsBusinessError(err)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_RATING_INPUT", be.Code)

	_, ok = AsBusinessError(ErrRatingQueryFailed)
	assert.False(t, ok)
}
