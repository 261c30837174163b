package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/shared"
)

// AsynqNotifier enqueue task loan:suspension_notice
type AsynqNotifier struct {
	client *asynq.Client
}

func NewAsynqNotifier(client *asynq.Client) *AsynqNotifier {
	return &AsynqNotifier{client: client}
}

func (n *AsynqNotifier) NotifySuspension(ctx context.Context, payload model.SuspensionNoticePayload) error {
	task, err := NewSuspensionNoticeTask(payload)
	if err != nil {
		return err
	}

	if _, err := n.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueLoan),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	); err != nil {
		return fmt.Errorf("enqueue suspension notice: %w", err)
	}
	return nil
}

func NewSuspensionNoticeTask(payload model.SuspensionNoticePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal suspension notice: %w", err)
	}
	return asynq.NewTask(shared.TypeSendSuspensionNotice, data), nil
}
