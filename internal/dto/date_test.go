package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshal(t *testing.T) {
	var payload struct {
		BillDate Date  `json:"bill_date"`
		DueDate  *Date `json:"due_date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"bill_date":"2024-03-05","due_date":"2024-04-04T15:04:05Z"}`), &payload))

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), payload.BillDate.Time)
	require.NotNil(t, payload.DueDate)
	assert.Equal(t, time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC), payload.DueDate.Time)

	out, err := json.Marshal(payload.BillDate)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(out))
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"05/03/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240305`), &d))
}
