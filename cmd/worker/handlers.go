package main

import (
	"github.com/hibiken/asynq"

	loanJob "library-backend/internal/domains/loan/job"
	"library-backend/internal/shared"
	"library-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	suspensionNotice *loanJob.SuspensionNoticeHandler
	overdueScan      *loanJob.OverdueScanHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		suspensionNotice: loanJob.NewSuspensionNoticeHandler(c.MemberRepo),
		overdueScan:      loanJob.NewOverdueScanHandler(c.LoanService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendSuspensionNotice, h.suspensionNotice.ProcessTask)
	mux.HandleFunc(shared.TypeScanOverdueLoans, h.overdueScan.ProcessTask)
}
