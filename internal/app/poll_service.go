// internal/app/poll_service.go
package app

import (
	"context"
	"errors"
	"fmt"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// PollService runs the fetch, validate, translate, notify cycle and owns all
// loop state: the from_date cursor, the status messages delivered on the
// previous cycle and the last delivered failure report. The scheduler
// guarantees at most one cycle runs at a time, so none of the state needs
// locking.
type PollService struct {
	provider       homework.StatusProvider
	telegramClient domainTelegram.Client
	logger         *logrus.Logger
	chatID         int64

	cursor       int64
	lastMessages map[string]struct{}
	lastError    string
}

func NewPollService(
	provider homework.StatusProvider,
	tc domainTelegram.Client,
	logger *logrus.Logger,
	chatID int64,
	startCursor int64,
) *PollService {
	return &PollService{
		provider:       provider,
		telegramClient: tc,
		logger:         logger,
		chatID:         chatID,
		cursor:         startCursor,
	}
}

// Cursor reports the current from_date cursor.
func (s *PollService) Cursor() int64 {
	return s.cursor
}

// RunCycle executes a single poll cycle. Processing errors are funneled into
// a failure report sent to the chat; nothing here is fatal, the next cycle
// always gets its turn.
func (s *PollService) RunCycle(ctx context.Context) {
	s.logger.Debugf("Poll cycle started. Cursor: %d", s.cursor)

	raw, err := s.provider.FetchStatuses(ctx, s.cursor)
	if err != nil {
		s.reportFailure(err)
		return
	}

	update, err := homework.ParseResponse(raw)
	if err != nil {
		s.reportFailure(err)
		return
	}

	if len(update.Homeworks) == 0 {
		s.logger.Info("No homework updates since the last poll.")
		s.advanceCursor(update.CurrentDate)
		return
	}

	// Dedup works cycle-to-cycle: a message is suppressed when the previous
	// cycle already delivered it, and each cycle's delivered-or-suppressed
	// set becomes the cache for the next one. A message that failed to send
	// stays out of the cache so the retry actually sends it.
	current := make(map[string]struct{}, len(update.Homeworks))
	delivered := true
	for _, hw := range update.Homeworks {
		message, err := homework.StatusMessage(hw)
		if err != nil {
			s.reportFailure(err)
			return
		}
		if _, seen := s.lastMessages[message]; seen {
			s.logger.Debugf("Duplicate status message suppressed: %s", message)
			current[message] = struct{}{}
			continue
		}
		if err := s.send(message); err != nil {
			s.logger.Errorf("Failed to deliver status message: %v", err)
			delivered = false
			continue
		}
		s.logger.Infof("Status message delivered: %s", message)
		current[message] = struct{}{}
	}
	s.lastMessages = current

	// An undelivered message keeps the cursor in place so the same update is
	// fetched again next cycle.
	if delivered {
		s.advanceCursor(update.CurrentDate)
	}
}

// advanceCursor moves the cursor to the server-reported current_date. The
// cursor only ever moves forward.
func (s *PollService) advanceCursor(currentDate int64) {
	if currentDate > s.cursor {
		s.cursor = currentDate
	}
}

func (s *PollService) send(message string) error {
	if err := s.telegramClient.SendMessage(s.chatID, message, nil); err != nil {
		return &domainTelegram.SendMessageError{Err: err}
	}
	return nil
}

// reportFailure logs a cycle error according to its kind and forwards it to
// the chat as a failure report, suppressing repeats of the same report.
func (s *PollService) reportFailure(err error) {
	var reqErr *homework.RequestStatusError
	switch {
	case errors.As(err, &reqErr):
		s.logger.Errorf("Review API request failed: %v", err)
	case errors.Is(err, homework.ErrKeyNotFound):
		s.logger.Errorf("Review API response is missing a required key: %v", err)
	case errors.Is(err, homework.ErrVerdictNotFound):
		s.logger.Errorf("Review API reported an unknown homework status: %v", err)
	case errors.Is(err, homework.ErrUnexpectedPayload):
		s.logger.Errorf("Review API response has an unexpected shape: %v", err)
	default:
		s.logger.Errorf("Poll cycle failed: %v", err)
	}

	message := fmt.Sprintf("Сбой в работе программы: %v", err)
	if message == s.lastError {
		s.logger.Debug("Duplicate failure report suppressed.")
		return
	}
	if sendErr := s.send(message); sendErr != nil {
		s.logger.Errorf("Failed to deliver failure report: %v", sendErr)
		return
	}
	s.lastError = message
}
