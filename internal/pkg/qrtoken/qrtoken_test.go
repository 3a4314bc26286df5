package qrtoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	now := time.Now().Unix()

	token, err := Issue(KindStall, 42, now)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(token), MaxTokenLength)

	kind, id, ok := Verify(token)
	assert.True(t, ok)
	assert.Equal(t, KindStall, kind)
	assert.Equal(t, uint(42), id)
}

func TestIssueStudentKind(t *testing.T) {
	token, err := Issue(KindStudent, 7, time.Now().Unix())
	require.NoError(t, err)

	kind, id, ok := Verify(token)
	assert.True(t, ok)
	assert.Equal(t, KindStudent, kind)
	assert.Equal(t, uint(7), id)
}

func TestIssueRejectsZeroID(t *testing.T) {
	_, err := Issue(KindStall, 0, time.Now().Unix())
	assert.Error(t, err)
}

func TestIssueTokensDiffer(t *testing.T) {
	now := time.Now().Unix()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := Issue(KindStall, 3, now)
		require.NoError(t, err)
		assert.False(t, seen[token], "token %q issued twice", token)
		seen[token] = true
	}
}

func TestVerifyMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong prefix", "EXPO2.S42.1a2b3c.deadbeef"},
		{"missing random part", "EXPO1.S42.1a2b3c"},
		{"zero id", "EXPO1.S0.1a2b3c.deadbeef"},
		{"unknown kind", "EXPO1.X42.1a2b3c.deadbeef"},
		{"uppercase hex", "EXPO1.S42.1a2b3c.DEADBEEF"},
		{"short random part", "EXPO1.S42.1a2b3c.dead"},
		{"trailing data", "EXPO1.S42.1a2b3c.deadbeef."},
		{"sql-ish input", "'; DROP TABLE stalls; --"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := Verify(tt.token)
			assert.False(t, ok)
		})
	}
}

func TestVerifyNeverPanics(t *testing.T) {
	inputs := []string{"", ".", "....", "EXPO1", string(rune(0)), "EXPO1.S1..deadbeef"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Verify(in) })
	}
}
