package ident

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docboard/internal/domain"
)

func TestNew_Uniqueness(t *testing.T) {
	const n = 10000
	seen := make(map[uuid.UUID]bool, n)
	for i := 0; i < n; i++ {
		id := New()
		assert.False(t, seen[id], "generated a duplicate identifier at iteration %d", i)
		seen[id] = true
	}
}

func TestTimestamp_RFC3339UTC(t *testing.T) {
	ts := Timestamp()
	parsed, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)
	_, offset := parsed.Zone()
	assert.Equal(t, 0, offset)
}

func TestCloneMessagesWithFreshIDs(t *testing.T) {
	source := []domain.Message{
		{
			UUID:      New(),
			CreatedAt: "2024-01-01T00:00:00Z",
			Sender:    domain.SenderBot,
			Text:      "processing started",
			Statuses: []domain.MessageStatus{
				{Status: "queued"},
				{Status: "running"},
			},
			StatusIndex: 1,
			ShowSender:  true,
		},
		{
			UUID:      New(),
			CreatedAt: "2024-01-01T00:01:00Z",
			Sender:    domain.SenderUser,
			Text:      "looks good",
		},
	}

	clones := CloneMessagesWithFreshIDs(source)
	require.Len(t, clones, len(source))

	sourceIDs := make(map[uuid.UUID]bool)
	for _, m := range source {
		sourceIDs[m.UUID] = true
	}

	cloneIDs := make(map[uuid.UUID]bool)
	for i, c := range clones {
		assert.False(t, sourceIDs[c.UUID], "clone %d reused a source uuid", i)
		assert.False(t, cloneIDs[c.UUID], "clone %d collided with another clone", i)
		cloneIDs[c.UUID] = true

		assert.Equal(t, source[i].Sender, c.Sender)
		assert.Equal(t, source[i].Text, c.Text)
		assert.Equal(t, source[i].StatusIndex, c.StatusIndex)
		assert.Equal(t, source[i].ShowSender, c.ShowSender)
		assert.Equal(t, source[i].Statuses, c.Statuses)
	}

	// The status slice is copied, not shared.
	if len(clones[0].Statuses) > 0 {
		clones[0].Statuses[0].Status = "mutated"
		assert.Equal(t, "queued", source[0].Statuses[0].Status)
	}
}

func TestCloneMessagesWithFreshIDs_Nil(t *testing.T) {
	assert.Nil(t, CloneMessagesWithFreshIDs(nil))
}
