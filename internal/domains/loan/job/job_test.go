package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/loan/model"
	memberModel "library-backend/internal/domains/member/model"
	"library-backend/internal/shared"
)

type memberLookup map[uuid.UUID]memberModel.Member

func (m memberLookup) GetByID(_ context.Context, id uuid.UUID) (*memberModel.Member, error) {
	member, ok := m[id]
	if !ok {
		return nil, memberModel.ErrMemberNotFound
	}
	return &member, nil
}

type failingLookup struct{}

func (failingLookup) GetByID(context.Context, uuid.UUID) (*memberModel.Member, error) {
	return nil, errors.New("connection refused")
}

func noticeTask(t *testing.T, memberID string) *asynq.Task {
	t.Helper()
	task, err := NewSuspensionNoticeTask(model.SuspensionNoticePayload{
		MemberID:    memberID,
		LoanID:      uuid.NewString(),
		BookID:      uuid.NewString(),
		DueDate:     "2024-01-01",
		ReturnDate:  "2024-01-05",
		OverdueDays: 4,
		Fine:        "2.00",
	})
	require.NoError(t, err)
	return task
}

func Test_NewSuspensionNoticeTask_EncodesPayload(t *testing.T) {
	task := noticeTask(t, "6f1c2b9e-3d4a-4c55-8e7f-0a1b2c3d4e5f")

	var decoded model.SuspensionNoticePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))

	assert.Equal(t, shared.TypeSendSuspensionNotice, task.Type())
	assert.Equal(t, "6f1c2b9e-3d4a-4c55-8e7f-0a1b2c3d4e5f", decoded.MemberID)
	assert.Equal(t, 4, decoded.OverdueDays)
}

func Test_SuspensionNoticeHandler(t *testing.T) {
	known := memberModel.Member{ID: uuid.New(), Username: "jdupont", Email: "j@example.com"}
	lookup := memberLookup{known.ID: known}

	tests := []struct {
		name      string
		members   MemberLookup
		task      *asynq.Task
		wantErr   bool
		skipRetry bool
	}{
		{name: "known member", members: lookup, task: noticeTask(t, known.ID.String())},
		{name: "unknown member", members: lookup, task: noticeTask(t, uuid.NewString()), wantErr: true, skipRetry: true},
		{name: "bad member id", members: lookup, task: noticeTask(t, "nope"), wantErr: true, skipRetry: true},
		{name: "bad payload", members: lookup, task: asynq.NewTask(shared.TypeSendSuspensionNotice, []byte("{")), wantErr: true, skipRetry: true},
		{name: "lookup failure retries", members: failingLookup{}, task: noticeTask(t, known.ID.String()), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSuspensionNoticeHandler(tt.members).ProcessTask(context.Background(), tt.task)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
		})
	}
}

type overdueStub struct {
	loans []model.LoanDetail
	err   error
}

func (s overdueStub) ListOverdue(context.Context) ([]model.LoanDetail, error) {
	return s.loans, s.err
}

func (s overdueStub) Policy() model.Policy {
	return model.Policy{PeriodDays: 14, Location: time.UTC}
}

func Test_OverdueScanHandler(t *testing.T) {
	ok := overdueStub{loans: []model.LoanDetail{{
		ID:        uuid.New(),
		DueDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BookTitle: "Nana",
	}}}
	broken := overdueStub{err: errors.New("db down")}

	assert.NoError(t, NewOverdueScanHandler(ok).ProcessTask(context.Background(), asynq.NewTask(shared.TypeScanOverdueLoans, nil)))
	assert.Error(t, NewOverdueScanHandler(broken).ProcessTask(context.Background(), asynq.NewTask(shared.TypeScanOverdueLoans, nil)))
}
