package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
)

func TestDateUnmarshal(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		var d model.Date
		require.NoError(t, json.Unmarshal([]byte(`"2024-01-31"`), &d))
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.January, d.Month())
		assert.Equal(t, 31, d.Day())
	})

	t.Run("rfc3339 timestamp", func(t *testing.T) {
		var d model.Date
		require.NoError(t, json.Unmarshal([]byte(`"2024-01-31T15:04:05Z"`), &d))
		assert.Equal(t, 31, d.Day())
	})

	t.Run("empty string is the zero date", func(t *testing.T) {
		var d model.Date
		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.True(t, d.IsZero())
		assert.Equal(t, "-", d.String())
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		var d model.Date
		assert.Error(t, json.Unmarshal([]byte(`"31/01/2024"`), &d))
	})
}

func TestDateMarshal(t *testing.T) {
	data, err := json.Marshal(model.NewDate(2024, time.June, 3))
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-03"`, string(data))
}
