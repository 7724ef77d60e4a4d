package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScript() *Script {
	return &Script{
		Intents: []Intent{
			{
				Name:      "greeting",
				Keywords:  []string{"hi", "hello"},
				Templates: []string{"Hey {name}!", "Hello {name}."},
			},
			{
				Name:      "stress_high",
				Keywords:  []string{"stressed", "overwhelmed"},
				Templates: []string{"That sounds really heavy, {name}."},
			},
		},
		General: []string{"I'm here with you."},
		Closers: []string{"Want to try this together?", "One small step is enough today."},
	}
}

func TestDetectIntent_WordBoundaries(t *testing.T) {
	a, err := New(testScript())
	require.NoError(t, err)

	// "hi" must not match inside "this" or "something".
	assert.Equal(t, "general", a.DetectIntent("this is something"))
	assert.Equal(t, "greeting", a.DetectIntent("hi there"))
	assert.Equal(t, "greeting", a.DetectIntent("well, HI!"))
	assert.Equal(t, "stress_high", a.DetectIntent("I feel so stressed today"))
}

func TestDetectIntent_FirstRuleWins(t *testing.T) {
	a, err := New(testScript())
	require.NoError(t, err)
	assert.Equal(t, "greeting", a.DetectIntent("hi, I'm overwhelmed"))
}

func TestReply_DeterministicAndPersonalized(t *testing.T) {
	a, err := New(testScript())
	require.NoError(t, err)

	intent, reply := a.Reply("Maya", "hello!")
	assert.Equal(t, "greeting", intent)
	assert.Equal(t, "Hey Maya! Want to try this together?", reply)

	// Second message cycles to the next template and closer.
	_, reply = a.Reply("Maya", "hi again")
	assert.Equal(t, "Hello Maya. One small step is enough today.", reply)
}

func TestReply_MemoryCapped(t *testing.T) {
	a, err := New(testScript())
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		a.Reply("Maya", "hello")
	}
	assert.Len(t, a.History(), 5, "memory keeps the last five exchanges")
}
