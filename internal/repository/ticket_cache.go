package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coproptech/maintenance-service/internal/domain"
)

// CachedTicketRepository decorates a TicketRepository with a redis
// read-through cache on FindByID. Cache trouble is logged and the call falls
// back to the inner repository; writes invalidate before delegating results
// back to the caller.
type CachedTicketRepository struct {
	inner  TicketRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedTicketRepository wraps inner with a redis cache.
func NewCachedTicketRepository(inner TicketRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedTicketRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedTicketRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func ticketCacheKey(id string) string {
	return "ticket:" + id
}

func (r *CachedTicketRepository) FindAll(ctx context.Context) ([]domain.Ticket, error) {
	return r.inner.FindAll(ctx)
}

func (r *CachedTicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if cached, err := r.client.Get(ctx, ticketCacheKey(id)).Bytes(); err == nil {
		var ticket domain.Ticket
		if err := json.Unmarshal(cached, &ticket); err == nil {
			return &ticket, nil
		}
	} else if err != redis.Nil {
		r.logger.Warn("ticket cache read failed", zap.String("ticket_id", id), zap.Error(err))
	}

	ticket, err := r.inner.FindByID(ctx, id)
	if err != nil || ticket == nil {
		return ticket, err
	}
	r.store(ctx, ticket)
	return ticket, nil
}

func (r *CachedTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	return r.inner.Create(ctx, ticket)
}

func (r *CachedTicketRepository) Update(ctx context.Context, id string, patch TicketPatch) (*domain.Ticket, error) {
	r.invalidate(ctx, id)
	ticket, err := r.inner.Update(ctx, id, patch)
	if err == nil && ticket != nil {
		r.store(ctx, ticket)
	}
	return ticket, err
}

func (r *CachedTicketRepository) Archive(ctx context.Context, id string) (*domain.Ticket, error) {
	r.invalidate(ctx, id)
	ticket, err := r.inner.Archive(ctx, id)
	if err == nil && ticket != nil {
		r.store(ctx, ticket)
	}
	return ticket, err
}

func (r *CachedTicketRepository) store(ctx context.Context, ticket *domain.Ticket) {
	payload, err := json.Marshal(ticket)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, ticketCacheKey(ticket.ID), payload, r.ttl).Err(); err != nil {
		r.logger.Warn("ticket cache write failed", zap.String("ticket_id", ticket.ID), zap.Error(err))
	}
}

func (r *CachedTicketRepository) invalidate(ctx context.Context, id string) {
	if err := r.client.Del(ctx, ticketCacheKey(id)).Err(); err != nil {
		r.logger.Warn("ticket cache invalidation failed", zap.String("ticket_id", id), zap.Error(err))
	}
}
