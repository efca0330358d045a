// internal/domain/homework/homework.go
package homework

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Recognized review statuses a homework can carry.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

// Verdicts maps each recognized status to the operator-facing verdict text.
var Verdicts = map[string]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Record is a single homework entry from the review API. Pointer fields plus
// presence flags keep three cases apart: key absent, key present but null,
// and key present with a value.
type Record struct {
	Name   *string
	Status *string

	nameSet   bool
	statusSet bool
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var fields struct {
		Name   *string `json:"homework_name"`
		Status *string `json:"status"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	r.Name = fields.Name
	r.Status = fields.Status
	_, r.nameSet = keys["homework_name"]
	_, r.statusSet = keys["status"]
	return nil
}

// StatusUpdate is one validated review API response: every homework whose
// status changed since the requested from_date, plus the server clock to use
// as the next cursor.
type StatusUpdate struct {
	Homeworks   []Record
	CurrentDate int64
}

// StatusProvider fetches raw status payloads from the review API.
type StatusProvider interface {
	FetchStatuses(ctx context.Context, fromDate int64) (json.RawMessage, error)
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// ParseResponse checks the structural shape of a raw API payload and returns
// the full homework sequence. Callers decide which entries to act on.
func ParseResponse(data json.RawMessage) (*StatusUpdate, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: response is not a JSON object", ErrUnexpectedPayload)
	}

	rawHomeworks, ok := top["homeworks"]
	if !ok {
		return nil, fmt.Errorf("%w: homeworks", ErrKeyNotFound)
	}
	rawDate, ok := top["current_date"]
	if !ok {
		return nil, fmt.Errorf("%w: current_date", ErrKeyNotFound)
	}

	// json.Unmarshal treats null as a no-op, so a null value would slip
	// through the decode checks below.
	if isJSONNull(rawHomeworks) {
		return nil, fmt.Errorf("%w: homeworks is null, expected a list", ErrUnexpectedPayload)
	}
	if isJSONNull(rawDate) {
		return nil, fmt.Errorf("%w: current_date is null, expected an integer", ErrUnexpectedPayload)
	}

	var homeworks []Record
	if err := json.Unmarshal(rawHomeworks, &homeworks); err != nil {
		return nil, fmt.Errorf("%w: homeworks is not a list", ErrUnexpectedPayload)
	}
	var currentDate int64
	if err := json.Unmarshal(rawDate, &currentDate); err != nil {
		return nil, fmt.Errorf("%w: current_date is not an integer", ErrUnexpectedPayload)
	}

	return &StatusUpdate{Homeworks: homeworks, CurrentDate: currentDate}, nil
}

// StatusMessage builds the chat notification text for a single homework.
func StatusMessage(hw Record) (string, error) {
	if !hw.statusSet {
		return "", fmt.Errorf("%w: status", ErrKeyNotFound)
	}
	if !hw.nameSet {
		return "", fmt.Errorf("%w: homework_name", ErrKeyNotFound)
	}
	if hw.Name == nil {
		return "", fmt.Errorf("%w: homework_name is null", ErrUnexpectedPayload)
	}
	if hw.Status == nil {
		// The key is present, so this is an unrecognized verdict rather than
		// a missing one.
		return "", fmt.Errorf("%w: null", ErrVerdictNotFound)
	}
	verdict, ok := Verdicts[*hw.Status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrVerdictNotFound, *hw.Status)
	}
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", *hw.Name, verdict), nil
}
