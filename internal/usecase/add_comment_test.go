package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/pkg/util"
)

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("persists trimmed comment and notifies members", func(t *testing.T) {
		f := newFixture()
		authorID := f.users.seed("Marie", "Durand", "marie@example.com")
		ticketID := f.tickets.seed(domain.Ticket{Title: "Cave", Status: domain.TicketStatusNew})
		uc := NewAddComment(f.comments, f.users, f.notifier)

		comment, err := uc.Execute(ctx, AddCommentInput{
			TicketID: ticketID,
			Content:  "  L'odeur persiste  ",
			AuthorID: authorID,
		})
		require.NoError(t, err)
		assert.Equal(t, "L'odeur persiste", comment.Content)
		assert.Equal(t, ticketID, comment.TicketID)
		assert.NotEmpty(t, comment.ID)

		require.Len(t, f.transport.messages, 1)
		assert.Equal(t, "comment", subjectPrefix(f.transport.messages[0]))
	})

	t.Run("malformed ticket id fails before any repository call", func(t *testing.T) {
		f := newFixture()
		uc := NewAddComment(f.comments, f.users, f.notifier)

		_, err := uc.Execute(ctx, AddCommentInput{TicketID: "not-a-uuid", Content: "ok", AuthorID: "x"})
		var fieldErr *util.FieldValidationError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "ticket_id", fieldErr.Field)
		assert.Empty(t, f.comments.comments)
		assert.Empty(t, f.tickets.calls)
	})

	t.Run("content boundary: 2000 succeeds, 2001 fails", func(t *testing.T) {
		f := newFixture()
		authorID := f.users.seed("Marie", "Durand", "marie@example.com")
		ticketID := f.tickets.seed(domain.Ticket{Title: "Cave", Status: domain.TicketStatusNew})
		uc := NewAddComment(f.comments, f.users, f.notifier)

		_, err := uc.Execute(ctx, AddCommentInput{
			TicketID: ticketID,
			Content:  strings.Repeat("a", 2000),
			AuthorID: authorID,
		})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, AddCommentInput{
			TicketID: ticketID,
			Content:  strings.Repeat("a", 2001),
			AuthorID: authorID,
		})
		var fieldErr *util.FieldValidationError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "content", fieldErr.Field)
	})

	t.Run("content bound counts characters, not bytes", func(t *testing.T) {
		f := newFixture()
		authorID := f.users.seed("Marie", "Durand", "marie@example.com")
		ticketID := f.tickets.seed(domain.Ticket{Title: "Cave", Status: domain.TicketStatusNew})
		uc := NewAddComment(f.comments, f.users, f.notifier)

		comment, err := uc.Execute(ctx, AddCommentInput{
			TicketID: ticketID,
			Content:  strings.Repeat("é", 2000),
			AuthorID: authorID,
		})
		require.NoError(t, err)
		require.NotNil(t, comment)

		_, err = uc.Execute(ctx, AddCommentInput{
			TicketID: ticketID,
			Content:  strings.Repeat("é", 2001),
			AuthorID: authorID,
		})
		var fieldErr *util.FieldValidationError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "content", fieldErr.Field)
	})

	t.Run("unknown author is a reference error", func(t *testing.T) {
		f := newFixture()
		ticketID := f.tickets.seed(domain.Ticket{Title: "Cave", Status: domain.TicketStatusNew})
		uc := NewAddComment(f.comments, f.users, f.notifier)

		_, err := uc.Execute(ctx, AddCommentInput{
			TicketID: ticketID,
			Content:  "ok",
			AuthorID: "db0b1c7a-7f64-4c36-8e3e-0a0ff3f5a001",
		})
		var refErr *util.ReferenceValidationError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, "author_id", refErr.Field)
		assert.Empty(t, f.comments.comments)
	})

	t.Run("ticket lookup failure during notify phase is swallowed and logged", func(t *testing.T) {
		f := newFixture()
		authorID := f.users.seed("Marie", "Durand", "marie@example.com")
		ticketID := f.tickets.seed(domain.Ticket{Title: "Cave", Status: domain.TicketStatusNew})
		uc := NewAddComment(f.comments, f.users, f.notifier)

		f.tickets.findErr = errors.New("connection reset")
		comment, err := uc.Execute(ctx, AddCommentInput{TicketID: ticketID, Content: "ok", AuthorID: authorID})
		require.NoError(t, err)
		require.NotNil(t, comment)
		assert.Equal(t, 1, f.logs.FilterLevelExact(zap.ErrorLevel).Len())
		assert.Equal(t, int64(1), f.metrics.NotificationCount("comment_added", "failed"))
	})

	t.Run("missing parent ticket skips notification without error", func(t *testing.T) {
		f := newFixture()
		authorID := f.users.seed("Marie", "Durand", "marie@example.com")
		uc := NewAddComment(f.comments, f.users, f.notifier)

		comment, err := uc.Execute(ctx, AddCommentInput{
			TicketID: "07a1b7ce-62a4-4e1c-832b-1e315cf7b2a3",
			Content:  "orphelin",
			AuthorID: authorID,
		})
		require.NoError(t, err)
		require.NotNil(t, comment)
		assert.Empty(t, f.transport.messages)
		assert.Equal(t, int64(1), f.metrics.NotificationCount("comment_added", "skipped"))
	})
}
