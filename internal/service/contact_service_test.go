package service

import (
	"context"
	"testing"
	"time"

	"glamify/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContactService_LogsSubmission(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewContactService(zap.New(core))

	err := svc.Submit(context.Background(), domain.ContactMessage{
		Name:    "Jane",
		Email:   "jane@example.com",
		Message: "Do you ship overseas?",
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("Contact submission").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "jane@example.com", fields["email"])
	assert.Equal(t, "Do you ship overseas?", fields["message"])
	assert.IsType(t, time.Time{}, fields["received_at"])
}

func TestContactService_CancelledContext(t *testing.T) {
	svc := NewContactService(zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, svc.Submit(ctx, domain.ContactMessage{}), context.Canceled)
}
