package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	bookModel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/loan/model"
	memberModel "library-backend/internal/domains/member/model"
	"library-backend/internal/shared"
	"library-backend/pkg/database"
)

// memStore backs the three fake repositories. mu serializes transactions
// the way the book row lock does in postgres.
type memStore struct {
	mu      sync.Mutex
	books   map[uuid.UUID]bookModel.Book
	members map[uuid.UUID]memberModel.Member
	loans   map[uuid.UUID]model.Loan

	failCreateLoan   error
	failUpdateStatus error
}

type memSnapshot struct {
	books   map[uuid.UUID]bookModel.Book
	members map[uuid.UUID]memberModel.Member
	loans   map[uuid.UUID]model.Loan
}

func newMemStore() *memStore {
	return &memStore{
		books:   map[uuid.UUID]bookModel.Book{},
		members: map[uuid.UUID]memberModel.Member{},
		loans:   map[uuid.UUID]model.Loan{},
	}
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		books:   make(map[uuid.UUID]bookModel.Book, len(s.books)),
		members: make(map[uuid.UUID]memberModel.Member, len(s.members)),
		loans:   make(map[uuid.UUID]model.Loan, len(s.loans)),
	}
	for k, v := range s.books {
		snap.books[k] = v
	}
	for k, v := range s.members {
		snap.members[k] = v
	}
	for k, v := range s.loans {
		snap.loans[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.books = snap.books
	s.members = snap.members
	s.loans = snap.loans
}

func (s *memStore) addBook(copies int) bookModel.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := bookModel.Book{
		ID:              uuid.New(),
		Title:           "Les Miserables",
		Author:          "Victor Hugo",
		Year:            1862,
		Category:        "Roman",
		TotalCopies:     copies,
		AvailableCopies: copies,
	}
	s.books[b.ID] = b
	return b
}

func (s *memStore) addMember(status memberModel.Status) memberModel.Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := memberModel.Member{
		ID:       uuid.New(),
		Username: "user-" + uuid.NewString()[:8],
		Role:     shared.RoleMember,
		Status:   status,
	}
	s.members[m.ID] = m
	return m
}

// addOpenLoan records an open loan and takes one copy off the shelf
func (s *memStore) addOpenLoan(memberID, bookID uuid.UUID, borrow, due time.Time) model.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := model.Loan{
		ID:         uuid.New(),
		MemberID:   memberID,
		BookID:     bookID,
		BorrowDate: borrow,
		DueDate:    due,
	}
	s.loans[l.ID] = l

	b := s.books[bookID]
	b.AvailableCopies--
	s.books[bookID] = b
	return l
}

func (s *memStore) book(id uuid.UUID) bookModel.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id]
}

func (s *memStore) member(id uuid.UUID) memberModel.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[id]
}

func (s *memStore) loan(id uuid.UUID) model.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loans[id]
}

func (s *memStore) loanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loans)
}

func (s *memStore) openLoansFor(bookID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.loans {
		if l.BookID == bookID && l.ReturnDate == nil {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------

type fakeTransactor struct {
	store    *memStore
	beginErr error
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn database.TxFunc) error {
	if t.beginErr != nil {
		return fmt.Errorf("%w: begin: %w", shared.ErrTransactionFailure, t.beginErr)
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(ctx, nil); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Catalog Store. *Tx methods run with store.mu already held.

type fakeBookRepo struct{ store *memStore }

func (r *fakeBookRepo) Create(_ context.Context, b *bookModel.Book) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.books[b.ID] = *b
	return nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id uuid.UUID) (*bookModel.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.get(id)
}

func (r *fakeBookRepo) List(context.Context, string) ([]bookModel.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]bookModel.Book, 0, len(r.store.books))
	for _, b := range r.store.books {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookRepo) GetByIDForUpdateTx(_ context.Context, _ pgx.Tx, id uuid.UUID) (*bookModel.Book, error) {
	return r.get(id)
}

func (r *fakeBookRepo) get(id uuid.UUID) (*bookModel.Book, error) {
	b, ok := r.store.books[id]
	if !ok {
		return nil, bookModel.ErrBookNotFound
	}
	return &b, nil
}

func (r *fakeBookRepo) DecrementAvailableTx(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	b, ok := r.store.books[id]
	if !ok {
		return bookModel.ErrBookNotFound
	}
	if b.AvailableCopies <= 0 {
		return bookModel.ErrNoCopiesAvailable
	}
	b.AvailableCopies--
	r.store.books[id] = b
	return nil
}

func (r *fakeBookRepo) IncrementAvailableTx(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	b, ok := r.store.books[id]
	if !ok {
		return bookModel.ErrBookNotFound
	}
	if b.AvailableCopies >= b.TotalCopies {
		return bookModel.ErrCopiesAtCapacity
	}
	b.AvailableCopies++
	r.store.books[id] = b
	return nil
}

// ---------------------------------------------------------------------------
// Member Directory

type fakeMemberRepo struct{ store *memStore }

func (r *fakeMemberRepo) Create(_ context.Context, m *memberModel.Member) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.members[m.ID] = *m
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id uuid.UUID) (*memberModel.Member, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.get(id)
}

func (r *fakeMemberRepo) GetByUsername(_ context.Context, username string) (*memberModel.Member, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.members {
		if m.Username == username {
			return &m, nil
		}
	}
	return nil, memberModel.ErrMemberNotFound
}

func (r *fakeMemberRepo) List(context.Context, string) ([]memberModel.Member, error) {
	return nil, nil
}

func (r *fakeMemberRepo) UpdateStatus(_ context.Context, id uuid.UUID, status memberModel.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.setStatus(id, status)
}

func (r *fakeMemberRepo) GetByIDTx(_ context.Context, _ pgx.Tx, id uuid.UUID) (*memberModel.Member, error) {
	return r.get(id)
}

func (r *fakeMemberRepo) UpdateStatusTx(_ context.Context, _ pgx.Tx, id uuid.UUID, status memberModel.Status) error {
	if r.store.failUpdateStatus != nil {
		return r.store.failUpdateStatus
	}
	return r.setStatus(id, status)
}

func (r *fakeMemberRepo) get(id uuid.UUID) (*memberModel.Member, error) {
	m, ok := r.store.members[id]
	if !ok {
		return nil, memberModel.ErrMemberNotFound
	}
	return &m, nil
}

func (r *fakeMemberRepo) setStatus(id uuid.UUID, status memberModel.Status) error {
	m, ok := r.store.members[id]
	if !ok {
		return memberModel.ErrMemberNotFound
	}
	m.Status = status
	r.store.members[id] = m
	return nil
}

// ---------------------------------------------------------------------------
// Loan Ledger

type fakeLoanRepo struct{ store *memStore }

func (r *fakeLoanRepo) CreateTx(_ context.Context, _ pgx.Tx, l *model.Loan) error {
	if r.store.failCreateLoan != nil {
		return r.store.failCreateLoan
	}
	r.store.loans[l.ID] = *l
	return nil
}

func (r *fakeLoanRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.get(id)
}

func (r *fakeLoanRepo) GetByIDForUpdateTx(_ context.Context, _ pgx.Tx, id uuid.UUID) (*model.Loan, error) {
	return r.get(id)
}

func (r *fakeLoanRepo) get(id uuid.UUID) (*model.Loan, error) {
	l, ok := r.store.loans[id]
	if !ok {
		return nil, model.ErrLoanNotFound
	}
	return &l, nil
}

func (r *fakeLoanRepo) MarkReturnedTx(_ context.Context, _ pgx.Tx, id uuid.UUID, returnDate time.Time) error {
	l, ok := r.store.loans[id]
	if !ok {
		return model.ErrLoanNotFound
	}
	if l.ReturnDate != nil {
		return model.ErrAlreadyReturned
	}
	l.ReturnDate = &returnDate
	r.store.loans[id] = l
	return nil
}

func (r *fakeLoanRepo) List(_ context.Context, filter model.ListFilter) ([]model.LoanDetail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []model.LoanDetail
	for _, l := range r.store.loans {
		if filter.MemberID != nil && l.MemberID != *filter.MemberID {
			continue
		}
		if filter.OpenOnly && l.ReturnDate != nil {
			continue
		}
		out = append(out, toDetail(l))
	}
	return out, nil
}

func (r *fakeLoanRepo) ListOverdue(_ context.Context, today time.Time) ([]model.LoanDetail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []model.LoanDetail
	for _, l := range r.store.loans {
		if l.ReturnDate == nil && l.DueDate.Before(today) {
			out = append(out, toDetail(l))
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) CountOpenOverdue(ctx context.Context, memberID uuid.UUID, today time.Time) (int, error) {
	overdue, _ := r.ListOverdue(ctx, today)
	n := 0
	for _, d := range overdue {
		if d.MemberID == memberID {
			n++
		}
	}
	return n, nil
}

func toDetail(l model.Loan) model.LoanDetail {
	return model.LoanDetail{
		ID:         l.ID,
		MemberID:   l.MemberID,
		BookID:     l.BookID,
		BorrowDate: l.BorrowDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		CreatedAt:  l.CreatedAt,
	}
}

// ---------------------------------------------------------------------------

type fakeNotifier struct {
	mu       sync.Mutex
	payloads []model.SuspensionNoticePayload
	err      error
}

func (n *fakeNotifier) NotifySuspension(_ context.Context, p model.SuspensionNoticePayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads = append(n.payloads, p)
	return n.err
}
