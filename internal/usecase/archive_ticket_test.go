package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coproptech/maintenance-service/internal/domain"
)

func TestArchiveTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("archives and stays idempotent on re-archive", func(t *testing.T) {
		f := newFixture()
		id := f.tickets.seed(domain.Ticket{Title: "Interphone", Status: domain.TicketStatusResolved})
		uc := NewArchiveTicket(f.tickets)

		first, err := uc.Execute(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.True(t, first.Archived)

		second, err := uc.Execute(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.True(t, second.Archived)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("missing ticket returns nil", func(t *testing.T) {
		f := newFixture()
		uc := NewArchiveTicket(f.tickets)

		ticket, err := uc.Execute(ctx, "4f6a3c1d-9d9b-4a1b-9a5e-64c7cf9b55aa")
		require.NoError(t, err)
		assert.Nil(t, ticket)
	})

	t.Run("sends no notification", func(t *testing.T) {
		f := newFixture()
		f.users.seed("Marie", "Durand", "marie@example.com")
		id := f.tickets.seed(domain.Ticket{Title: "Interphone", Status: domain.TicketStatusResolved})
		uc := NewArchiveTicket(f.tickets)

		_, err := uc.Execute(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, f.transport.messages)
	})
}
