package syncclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topic-planner/internal/model"
)

func TestPush_WireShape(t *testing.T) {
	var gotAuth string
	var gotBody map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Write([]byte(`{"success":true,"data":{"topics":[],"tasks":[]}}`))
	}))
	defer server.Close()

	client := New(server.URL, "secret", 5*time.Second)

	topicID := "t1"
	task := model.Task{
		ID:           "k1",
		OwnerID:      "alice",
		TopicID:      &topicID,
		Title:        "Report",
		StartTime:    "09:00",
		EndTime:      "10:00",
		Date:         "2024-01-05",
		Status:       model.StatusPending,
		ReminderDays: model.ParseWeekdaySet([]string{"Monday", "Friday"}),
	}

	_, err := client.Push(context.Background(), nil, []model.Task{task})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)

	var tasks []map[string]interface{}
	require.NoError(t, json.Unmarshal(gotBody["tasks"], &tasks))
	require.Len(t, tasks, 1)

	// Remote naming convention: snake_case, day names for the rule.
	assert.Equal(t, "09:00", tasks[0]["start_time"])
	assert.Equal(t, "10:00", tasks[0]["end_time"])
	assert.Equal(t, "alice", tasks[0]["user_id"])
	assert.Equal(t, "t1", tasks[0]["topic_id"])
	assert.Equal(t, []interface{}{"MONDAY", "FRIDAY"}, tasks[0]["reminder_days"])
	_, hasCamel := tasks[0]["startTime"]
	assert.False(t, hasCamel)
}

func TestPush_TranslatesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := `{"success":true,"data":{
			"topics":[{"id":"t1","title":"Work","user_id":"alice","category_id":"c9",
				"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}],
			"tasks":[{"id":"k1","title":"Report","user_id":"alice",
				"date":"2024-01-05","start_time":"09:00","end_time":"10:00","status":"COMPLETED",
				"reminder_days":["WEDNESDAY"],"is_deleted":true,
				"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]}}`
		w.Write([]byte(resp))
	}))
	defer server.Close()

	client := New(server.URL, "secret", 5*time.Second)
	payload, err := client.Push(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, payload.Topics, 1)
	assert.Equal(t, "alice", payload.Topics[0].OwnerID)
	require.NotNil(t, payload.Topics[0].CategoryID)
	assert.Equal(t, "c9", *payload.Topics[0].CategoryID)

	require.Len(t, payload.Tasks, 1)
	assert.Equal(t, model.StatusCompleted, payload.Tasks[0].Status)
	assert.True(t, payload.Tasks[0].IsDeleted)
	assert.True(t, payload.Tasks[0].ReminderDays.Has(model.Wednesday))
}

func TestPush_RemoteErrorSurfacedUnmodified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":{"code":"BAD_TOKEN"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "wrong", 5*time.Second)
	_, err := client.Push(context.Background(), nil, nil)
	require.Error(t, err)

	var re *model.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusUnauthorized, re.Status)
	assert.JSONEq(t, `{"success":false,"error":{"code":"BAD_TOKEN"}}`, re.Body)
}

func TestPush_SuccessFalseIsRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":{"message":"quota"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "secret", 5*time.Second)
	_, err := client.Push(context.Background(), nil, nil)
	assert.True(t, model.IsRemote(err))
}

func TestPush_TransportError(t *testing.T) {
	client := New("http://127.0.0.1:1", "secret", 500*time.Millisecond)
	_, err := client.Push(context.Background(), nil, nil)
	assert.True(t, model.IsRemote(err))
}
