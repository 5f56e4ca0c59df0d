package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nyaysetu/nyaysetu-client/internal/client/httpclient"
	"github.com/nyaysetu/nyaysetu-client/internal/client/models"
	"github.com/nyaysetu/nyaysetu-client/internal/client/offline"
	"github.com/nyaysetu/nyaysetu-client/internal/logging"
)

// Intent operations that can be queued while offline. File uploads are
// absent because their content cannot be persisted.
const (
	OpCreateCase       = "cases.create"
	OpUpdateCaseStatus = "cases.update_status"
	OpSendChat         = "chat.send"
)

var (
	// ErrQueued means the backend was unreachable and the intent was saved
	// for a later Drain.
	ErrQueued    = errors.New("action queued for retry when back online")
	ErrUnknownOp = errors.New("unknown action")
)

// Intent is a serialisable user action.
type Intent struct {
	Op   string          `json:"op"`
	Args json.RawMessage `json:"args"`
}

type statusArgs struct {
	CaseID string            `json:"caseId"`
	Status models.CaseStatus `json:"status"`
}

type chatArgs struct {
	CaseID string `json:"caseId"`
	Text   string `json:"text"`
}

func newIntent(op string, args any) Intent {
	b, _ := json.Marshal(args)
	return Intent{Op: op, Args: b}
}

func CreateCaseIntent(in models.NewCase) Intent {
	return newIntent(OpCreateCase, in)
}

func UpdateCaseStatusIntent(caseID string, status models.CaseStatus) Intent {
	return newIntent(OpUpdateCaseStatus, statusArgs{CaseID: caseID, Status: status})
}

func SendChatIntent(caseID, text string) Intent {
	return newIntent(OpSendChat, chatArgs{CaseID: caseID, Text: text})
}

type CasesAPI interface {
	Create(ctx context.Context, in models.NewCase) (*models.Case, error)
	UpdateStatus(ctx context.Context, id string, status models.CaseStatus) (*models.Case, error)
}

type ChatAPI interface {
	Send(ctx context.Context, caseID, text string) (*models.ChatMessage, error)
}

// Connectivity is satisfied by *connectivity.Detector.
type Connectivity interface {
	Online() bool
}

// DrainResult counts what happened to each queued entry.
type DrainResult struct {
	Replayed int
	Rejected int
	Kept     int
	Corrupt  int
}

// ActionService runs intents against the backend and falls back to the
// offline queue when it cannot be reached.
type ActionService interface {
	Submit(ctx context.Context, in Intent) (any, error)
	Drain(ctx context.Context) DrainResult
	Pending(ctx context.Context) []offline.Entry
	Discard(ctx context.Context) bool
}

type actionService struct {
	cases CasesAPI
	chat  ChatAPI
	queue *offline.Queue
	conn  Connectivity
	log   logging.Logger
}

func NewActionService(cases CasesAPI, chat ChatAPI, queue *offline.Queue, conn Connectivity, log logging.Logger) ActionService {
	if log == nil {
		log = logging.Nop()
	}
	return &actionService{cases: cases, chat: chat, queue: queue, conn: conn, log: log}
}

// Submit executes in. When the host is known to be offline, or the call
// fails before reaching the backend, the intent is queued and ErrQueued is
// returned. Backend rejections are returned as is.
func (s *actionService) Submit(ctx context.Context, in Intent) (any, error) {
	if s.conn != nil && !s.conn.Online() {
		return nil, s.enqueue(ctx, in, nil)
	}
	res, err := s.execute(ctx, in)
	if err != nil && httpclient.IsTransport(err) {
		return nil, s.enqueue(ctx, in, err)
	}
	return res, err
}

func (s *actionService) enqueue(ctx context.Context, in Intent, cause error) error {
	if !s.queue.Enqueue(ctx, in) {
		if cause == nil {
			cause = errors.New("offline")
		}
		return fmt.Errorf("could not queue %s: %w", in.Op, cause)
	}
	s.log.Info(ctx, "action queued", "op", in.Op)
	return ErrQueued
}

// Drain replays queued intents oldest first. Entries that still cannot reach
// the backend are put back in their original order together with every
// entry after them; entries the backend rejects or that cannot be decoded
// are dropped.
func (s *actionService) Drain(ctx context.Context) DrainResult {
	var res DrainResult

	entries := s.queue.Take(ctx)
	for i, e := range entries {
		var in Intent
		if err := e.Decode(&in); err != nil || in.Op == "" {
			s.log.Warn(ctx, "dropping unreadable queued action", "timestamp", e.Timestamp, "error", err)
			res.Corrupt++
			continue
		}

		_, err := s.execute(ctx, in)
		switch {
		case err == nil:
			res.Replayed++
		case httpclient.IsTransport(err) || ctx.Err() != nil:
			rest := entries[i:]
			res.Kept = len(rest)
			if !s.queue.Prepend(ctx, rest) {
				s.log.Error(ctx, "lost queued actions", "count", len(rest))
			}
			return res
		default:
			s.log.Warn(ctx, "queued action rejected", "op", in.Op, "error", err)
			res.Rejected++
		}
	}
	return res
}

func (s *actionService) Pending(ctx context.Context) []offline.Entry {
	return s.queue.PeekAll(ctx)
}

func (s *actionService) Discard(ctx context.Context) bool {
	return s.queue.Clear(ctx)
}

func (s *actionService) execute(ctx context.Context, in Intent) (any, error) {
	switch in.Op {
	case OpCreateCase:
		var args models.NewCase
		if err := json.Unmarshal(in.Args, &args); err != nil {
			return nil, fmt.Errorf("decode %s args: %w", in.Op, err)
		}
		return s.cases.Create(ctx, args)
	case OpUpdateCaseStatus:
		var args statusArgs
		if err := json.Unmarshal(in.Args, &args); err != nil {
			return nil, fmt.Errorf("decode %s args: %w", in.Op, err)
		}
		return s.cases.UpdateStatus(ctx, args.CaseID, args.Status)
	case OpSendChat:
		var args chatArgs
		if err := json.Unmarshal(in.Args, &args); err != nil {
			return nil, fmt.Errorf("decode %s args: %w", in.Op, err)
		}
		return s.chat.Send(ctx, args.CaseID, args.Text)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, in.Op)
	}
}
