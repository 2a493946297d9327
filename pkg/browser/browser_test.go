package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerRequiresInitialize(t *testing.T) {
	m := NewManager()

	_, err := m.Session()
	assert.Error(t, err)

	_, err = m.StartSession(SessionOptions{})
	assert.ErrorContains(t, err, "not initialized")
}

func TestValidWaitUntil(t *testing.T) {
	for _, s := range []string{"load", "domcontentloaded", "networkidle"} {
		assert.True(t, validWaitUntil(s), s)
	}
	for _, s := range []string{"", "idle", "LOAD", "complete"} {
		assert.False(t, validWaitUntil(s), s)
	}
}
