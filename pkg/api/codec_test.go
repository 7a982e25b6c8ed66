package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	var c Codec
	assert.Equal(t, "json", c.Name())

	data, err := c.Marshal(&Split{MemberID: "m1", Share: "12.50"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"memberId":"m1","share":"12.50"}`, string(data))

	var got Split
	require.NoError(t, c.Unmarshal(data, &got))
	assert.Equal(t, Split{MemberID: "m1", Share: "12.50"}, got)

	var empty DeleteExpenseResponse
	assert.NoError(t, c.Unmarshal(nil, &empty))

	assert.Error(t, c.Unmarshal([]byte(`{"memberId":`), &got))
}

func TestTripEventOmitsEmptyPayloads(t *testing.T) {
	data, err := Codec{}.Marshal(&TripEvent{Action: "delete", TripID: "t1", ID: "e1", At: 42})
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"delete","tripId":"t1","id":"e1","at":42}`, string(data))
}
