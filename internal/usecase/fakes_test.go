package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/mail"
	"github.com/coproptech/maintenance-service/internal/repository"
)

type fakeTicketRepo struct {
	mu        sync.Mutex
	tickets   map[string]*domain.Ticket
	findErr   error
	createErr error
	updateErr error
	calls     []string
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *fakeTicketRepo) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *fakeTicketRepo) FindAll(ctx context.Context) ([]domain.Ticket, error) {
	r.record("FindAll")
	if r.findErr != nil {
		return nil, r.findErr
	}
	result := make([]domain.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		result = append(result, *t)
	}
	return result, nil
}

func (r *fakeTicketRepo) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.record("FindByID")
	if r.findErr != nil {
		return nil, r.findErr
	}
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, nil
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.record("Create")
	if r.createErr != nil {
		return r.createErr
	}
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) Update(ctx context.Context, id string, patch repository.TicketPatch) (*domain.Ticket, error) {
	r.record("Update")
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	ticket, ok := r.tickets[id]
	if !ok || ticket.Archived {
		return nil, nil
	}
	if patch.Title != nil {
		ticket.Title = *patch.Title
	}
	if patch.Description != nil {
		ticket.Description = *patch.Description
	}
	if patch.Status != nil {
		ticket.Status = *patch.Status
	}
	if patch.ClearAssignee {
		ticket.AssignedTo = nil
	} else if patch.AssignedTo != nil {
		assignee := *patch.AssignedTo
		ticket.AssignedTo = &assignee
	}
	ticket.UpdatedAt = time.Now()
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) Archive(ctx context.Context, id string) (*domain.Ticket, error) {
	r.record("Archive")
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, nil
	}
	ticket.Archived = true
	ticket.UpdatedAt = time.Now()
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) seed(ticket domain.Ticket) string {
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	r.tickets[ticket.ID] = &ticket
	return ticket.ID
}

type fakeUserRepo struct {
	users      map[string]*domain.User
	findAllErr error
	findErr    error
	emptyAll   bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}
	if r.emptyAll {
		return nil, nil
	}
	result := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, *u)
	}
	return result, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if user, ok := r.users[id]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

func (r *fakeUserRepo) seed(firstName, lastName, email string) string {
	id := uuid.NewString()
	r.users[id] = &domain.User{ID: id, FirstName: firstName, LastName: lastName, Email: email}
	return id
}

type fakeCommentRepo struct {
	comments  []domain.Comment
	createErr error
}

func (r *fakeCommentRepo) FindByTicketID(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	var result []domain.Comment
	for _, c := range r.comments {
		if c.TicketID == ticketID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	if r.createErr != nil {
		return r.createErr
	}
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

type fakeTransport struct {
	mu       sync.Mutex
	messages []mail.Message
	fail     bool
}

func (t *fakeTransport) Send(ctx context.Context, msg mail.Message) error {
	if !t.SendSafe(ctx, msg) {
		return errAssert("send failed")
	}
	return nil
}

func (t *fakeTransport) SendSafe(ctx context.Context, msg mail.Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fail {
		return false
	}
	t.messages = append(t.messages, msg)
	return true
}

type errAssert string

func (e errAssert) Error() string { return string(e) }

type stubRenderer struct {
	err error
}

func (r *stubRenderer) rendered(subject string) (mail.RenderedMessage, error) {
	if r.err != nil {
		return mail.RenderedMessage{}, r.err
	}
	return mail.RenderedMessage{Subject: subject, HTMLBody: "<p>" + subject + "</p>", TextBody: subject}, nil
}

func (r *stubRenderer) TicketCreated(ticket *domain.Ticket) (mail.RenderedMessage, error) {
	return r.rendered("created:" + ticket.Title)
}

func (r *stubRenderer) TicketAssigned(ticket *domain.Ticket, assignee *domain.User) (mail.RenderedMessage, error) {
	return r.rendered("assigned:" + ticket.Title + ":" + assignee.ID)
}

func (r *stubRenderer) TicketStatusChanged(ticket *domain.Ticket, oldStatus domain.TicketStatus) (mail.RenderedMessage, error) {
	return r.rendered("status:" + string(oldStatus) + ">" + string(ticket.Status))
}

func (r *stubRenderer) CommentAdded(ticket *domain.Ticket, comment *domain.Comment) (mail.RenderedMessage, error) {
	return r.rendered("comment:" + ticket.ID)
}

func (r *stubRenderer) PasswordReset(user *domain.User, token string) (mail.RenderedMessage, error) {
	return r.rendered("reset:" + user.ID)
}

func subjectPrefix(msg mail.Message) string {
	if i := strings.Index(msg.Subject, ":"); i >= 0 {
		return msg.Subject[:i]
	}
	return msg.Subject
}
