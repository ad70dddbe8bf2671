package events

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "hotelops/pkg/errors"
	"hotelops/pkg/kafka"
	"hotelops/pkg/logger"
	"hotelops/pkg/model"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ApprovalMessage is the decision payload consumed from the approvals
// topic. Leave requests sit pending until one of these arrives.
type ApprovalMessage struct {
	RecordID  string `json:"record_id"`
	Decision  string `json:"decision"`
	DecidedBy string `json:"decided_by,omitempty"`
}

// StatusTransitioner is the slice of the engine the approval handler needs.
type StatusTransitioner interface {
	TransitionStatus(ctx context.Context, recordID string, next model.BookingStatus) (*model.BookingRecord, error)
}

// ApprovalHandler applies approval decisions to pending bookings. Returned
// errors mark the message for redelivery, so decisions that can never apply
// (bad payload, unknown record, terminal record) are logged and swallowed.
type ApprovalHandler struct {
	engine StatusTransitioner
	log    *logger.Logger
}

func NewApprovalHandler(engine StatusTransitioner, log *logger.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		engine: engine,
		log:    log,
	}
}

// Handle is the kafka.MessageHandler for the approvals topic.
func (h *ApprovalHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var approval ApprovalMessage
	if err := json.Unmarshal(msg.Value, &approval); err != nil {
		h.log.Error("discarding malformed approval message",
			"topic", msg.Topic,
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}

	next, err := approval.targetStatus()
	if err != nil {
		h.log.Error("discarding approval with unknown decision",
			"record_id", approval.RecordID,
			"decision", approval.Decision,
		)
		return nil
	}

	record, err := h.engine.TransitionStatus(ctx, approval.RecordID, next)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) || apperrors.HasCode(err, apperrors.CodeIllegalTransition) {
			h.log.Warn("approval decision not applicable",
				"record_id", approval.RecordID,
				"decision", approval.Decision,
				"error", err,
			)
			return nil
		}
		return err
	}

	h.log.Info("approval decision applied",
		"record_id", record.ID,
		"status", string(record.Status),
		"decided_by", approval.DecidedBy,
	)
	return nil
}

func (a ApprovalMessage) targetStatus() (model.BookingStatus, error) {
	switch a.Decision {
	case DecisionApprove:
		return model.StatusConfirmed, nil
	case DecisionReject:
		return model.StatusRejected, nil
	}
	return "", fmt.Errorf("unknown approval decision: %s", a.Decision)
}
