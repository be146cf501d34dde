package envelope

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarshalsMeta(t *testing.T) {
	orig := Now
	Now = func() time.Time { return time.Unix(1_380_000_000, 0) }
	defer func() { Now = orig }()

	b, err := json.Marshal(New([]string{"Boston Red Sox"}))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"data":["Boston Red Sox"],"meta":{"created_at":1380000000,"loaded_from_cache":false}}`,
		string(b))
}

func TestMessage(t *testing.T) {
	env := Message("No games scheduled for today")
	assert.Equal(t, map[string]string{"message": "No games scheduled for today"}, env.Data)
	assert.False(t, env.Meta.LoadedFromCache)
}
