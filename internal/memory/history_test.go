package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/database"
	database_mocks "github.com/gcakvpt/neo4j-orchestration-framework/internal/database/mocks"
)

func TestHistoryAppend(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := database_mocks.NewMockService(ctrl)

	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	mockDB.EXPECT().
		ExecuteWriteQuery(gomock.Any(), appendHistoryQuery, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, params map[string]any) ([]*neo4j.Record, error) {
			assert.Equal(t, "rec-1", params["record_id"])
			assert.Equal(t, "show critical vendors", params["natural_language"])
			assert.JSONEq(t, `{"query_type":"vendor_risk"}`, params["intent"].(string))
			assert.Equal(t, []string{"Vendor"}, params["entities"])
			assert.Equal(t, int64(250), params["execution_time_ms"])
			assert.Equal(t, ts.Format(time.RFC3339Nano), params["timestamp"])
			assert.Equal(t, true, params["success"])
			return nil, nil
		})

	store := NewHistoryStore(mockDB)
	err := store.Append(context.Background(), QueryRecord{
		ID:              "rec-1",
		NaturalLanguage: "show critical vendors",
		Intent:          map[string]any{"query_type": "vendor_risk"},
		Entities:        []string{"Vendor"},
		Cypher:          "MATCH (v:Vendor) RETURN v",
		ResultCount:     7,
		ExecutionTime:   250 * time.Millisecond,
		Timestamp:       ts,
		Success:         true,
	})
	require.NoError(t, err)
}

func TestHistoryAppendConnectivityFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := database_mocks.NewMockService(ctrl)

	mockDB.EXPECT().
		ExecuteWriteQuery(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &database.ConnectivityError{Op: "write", Err: fmt.Errorf("no route to host")})

	store := NewHistoryStore(mockDB)
	err := store.Append(context.Background(), QueryRecord{ID: "rec-1"})

	var unavailable *StoreUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestHistoryRecentDecodesRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := database_mocks.NewMockService(ctrl)

	keys := []string{
		"record_id", "natural_language", "intent", "entities", "cypher",
		"parameters", "result_count", "execution_time_ms", "success",
		"error_message",
	}
	mockDB.EXPECT().
		ExecuteReadQuery(gomock.Any(), gomock.Any(), map[string]any{"limit": 2}).
		Return([]*neo4j.Record{
			{Keys: keys, Values: []any{
				"rec-2", "count all vendors", `{"query_type":"vendor_list"}`,
				[]any{"Vendor"}, "MATCH (v:Vendor) RETURN count(v) AS count_result",
				`{}`, int64(1), int64(42), true, "",
			}},
			{Keys: keys, Values: []any{
				"rec-1", "gibberish", `{"query_type":"unknown"}`,
				[]any{}, "", `{}`, int64(0), int64(0), false, "cannot understand this query",
			}},
		}, nil)

	store := NewHistoryStore(mockDB)
	records, err := store.Recent(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rec-2", records[0].ID)
	assert.Equal(t, map[string]any{"query_type": "vendor_list"}, records[0].Intent)
	assert.Equal(t, []string{"Vendor"}, records[0].Entities)
	assert.Equal(t, 1, records[0].ResultCount)
	assert.Equal(t, 42*time.Millisecond, records[0].ExecutionTime)
	assert.True(t, records[0].Success)
	assert.False(t, records[1].Success)
	assert.Equal(t, "cannot understand this query", records[1].ErrorMessage)
}

func TestHistoryLast(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := database_mocks.NewMockService(ctrl)

	mockDB.EXPECT().
		ExecuteReadQuery(gomock.Any(), gomock.Any(), map[string]any{"limit": 1}).
		Return([]*neo4j.Record{}, nil)

	store := NewHistoryStore(mockDB)
	record, err := store.Last(context.Background())

	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestInMemoryHistoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryHistoryStore(10)

	for i := 1; i <= 4; i++ {
		require.NoError(t, store.Append(ctx, QueryRecord{
			ID:       fmt.Sprintf("rec-%d", i),
			Entities: []string{"Vendor"},
			Success:  i%2 == 0,
		}))
	}

	recent, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "rec-4", recent[0].ID, "most recent first")
	assert.Equal(t, "rec-3", recent[1].ID)

	successful, err := store.Successful(ctx, 10)
	require.NoError(t, err)
	require.Len(t, successful, 2)
	assert.Equal(t, "rec-4", successful[0].ID)
	assert.Equal(t, "rec-2", successful[1].ID)

	last, err := store.Last(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "rec-4", last.ID)
}

func TestInMemoryHistoryStoreByEntity(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryHistoryStore(10)

	require.NoError(t, store.Append(ctx, QueryRecord{ID: "rec-1", Entities: []string{"Vendor"}}))
	require.NoError(t, store.Append(ctx, QueryRecord{ID: "rec-2", Entities: []string{"Control"}}))
	require.NoError(t, store.Append(ctx, QueryRecord{ID: "rec-3", Entities: []string{"Vendor", "Control"}}))

	records, err := store.ByEntity(ctx, "Vendor", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rec-3", records[0].ID)
	assert.Equal(t, "rec-1", records[1].ID)
}

func TestInMemoryHistoryStoreBounded(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryHistoryStore(2)

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.Append(ctx, QueryRecord{ID: fmt.Sprintf("rec-%d", i)}))
	}

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2, "oldest records are dropped")
	assert.Equal(t, "rec-5", records[0].ID)
	assert.Equal(t, "rec-4", records[1].ID)
}
