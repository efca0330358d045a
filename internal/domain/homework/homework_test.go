package homework

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseResponse_ValidPayload(t *testing.T) {
	raw := json.RawMessage(`{
		"homeworks": [
			{"homework_name": "hw1", "status": "approved"},
			{"homework_name": "hw2", "status": "reviewing"}
		],
		"current_date": 1000
	}`)

	update, err := ParseResponse(raw)

	require.NoError(t, err)
	require.Equal(t, int64(1000), update.CurrentDate)
	require.Len(t, update.Homeworks, 2)
	require.Equal(t, "hw1", *update.Homeworks[0].Name)
	require.Equal(t, StatusApproved, *update.Homeworks[0].Status)
	require.Equal(t, "hw2", *update.Homeworks[1].Name)
}

func TestParseResponse_EmptyHomeworks(t *testing.T) {
	update, err := ParseResponse(json.RawMessage(`{"homeworks": [], "current_date": 1000}`))

	require.NoError(t, err)
	require.Empty(t, update.Homeworks)
	require.Equal(t, int64(1000), update.CurrentDate)
}

func TestParseResponse_NotAnObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"text"`, `42`, `not json at all`} {
		_, err := ParseResponse(json.RawMessage(raw))
		require.ErrorIs(t, err, ErrUnexpectedPayload, "payload: %s", raw)
	}
}

func TestParseResponse_MissingHomeworksKey(t *testing.T) {
	_, err := ParseResponse(json.RawMessage(`{"current_date": 1000}`))

	require.ErrorIs(t, err, ErrKeyNotFound)
	require.Contains(t, err.Error(), "homeworks")
}

func TestParseResponse_MissingCurrentDateKey(t *testing.T) {
	_, err := ParseResponse(json.RawMessage(`{"homeworks": []}`))

	require.ErrorIs(t, err, ErrKeyNotFound)
	require.Contains(t, err.Error(), "current_date")
}

func TestParseResponse_NullHomeworks(t *testing.T) {
	_, err := ParseResponse(json.RawMessage(`{"homeworks": null, "current_date": 1000}`))

	require.ErrorIs(t, err, ErrUnexpectedPayload)
	require.Contains(t, err.Error(), "homeworks")
}

func TestParseResponse_NullCurrentDate(t *testing.T) {
	_, err := ParseResponse(json.RawMessage(`{"homeworks": [], "current_date": null}`))

	require.ErrorIs(t, err, ErrUnexpectedPayload)
	require.Contains(t, err.Error(), "current_date")
}

func TestParseResponse_HomeworksNotAList(t *testing.T) {
	_, err := ParseResponse(json.RawMessage(`{"homeworks": {"homework_name": "hw1"}, "current_date": 1000}`))

	require.ErrorIs(t, err, ErrUnexpectedPayload)
}

func TestParseResponse_CurrentDateNotAnInteger(t *testing.T) {
	_, err := ParseResponse(json.RawMessage(`{"homeworks": [], "current_date": "soon"}`))

	require.ErrorIs(t, err, ErrUnexpectedPayload)
}

func mustRecord(t *testing.T, raw string) Record {
	t.Helper()
	var hw Record
	require.NoError(t, json.Unmarshal([]byte(raw), &hw))
	return hw
}

func TestStatusMessage_AllVerdicts(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{StatusApproved, `Изменился статус проверки работы "hw1". Работа проверена: ревьюеру всё понравилось. Ура!`},
		{StatusReviewing, `Изменился статус проверки работы "hw1". Работа взята на проверку ревьюером.`},
		{StatusRejected, `Изменился статус проверки работы "hw1". Работа проверена: у ревьюера есть замечания.`},
	}

	for _, c := range cases {
		hw := mustRecord(t, fmt.Sprintf(`{"homework_name": "hw1", "status": "%s"}`, c.status))
		got, err := StatusMessage(hw)
		require.NoError(t, err, "status %s", c.status)
		require.Equal(t, c.want, got)
	}
}

func TestStatusMessage_MissingStatus(t *testing.T) {
	_, err := StatusMessage(mustRecord(t, `{"homework_name": "hw1"}`))

	require.ErrorIs(t, err, ErrKeyNotFound)
	require.Contains(t, err.Error(), "status")
}

func TestStatusMessage_MissingName(t *testing.T) {
	_, err := StatusMessage(mustRecord(t, `{"status": "approved"}`))

	require.ErrorIs(t, err, ErrKeyNotFound)
	require.Contains(t, err.Error(), "homework_name")
}

func TestStatusMessage_NullStatusIsUnknownVerdict(t *testing.T) {
	// The key is present, so this is a verdict problem, not a missing key.
	_, err := StatusMessage(mustRecord(t, `{"homework_name": "hw1", "status": null}`))

	require.ErrorIs(t, err, ErrVerdictNotFound)
}

func TestStatusMessage_NullName(t *testing.T) {
	_, err := StatusMessage(mustRecord(t, `{"homework_name": null, "status": "approved"}`))

	require.ErrorIs(t, err, ErrUnexpectedPayload)
	require.Contains(t, err.Error(), "homework_name")
}

func TestStatusMessage_UnknownVerdict(t *testing.T) {
	_, err := StatusMessage(mustRecord(t, `{"homework_name": "hw1", "status": "burned"}`))

	require.ErrorIs(t, err, ErrVerdictNotFound)
}
