package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	ref, err := Schema()
	require.NoError(t, err)
	require.NotNil(t, ref.Value)

	props := ref.Value.Properties
	for _, name := range []string{"url", "status", "http_code", "response_time_ms", "ssl_valid", "ssl_expiry_days", "error_message", "timestamp", "is_up"} {
		require.Contains(t, props, name)
	}
	assert.Len(t, props, 9)

	for _, name := range nullableFields {
		assert.True(t, props[name].Value.Nullable, "%s should be nullable", name)
	}
	assert.False(t, props["url"].Value.Nullable)

	assert.ElementsMatch(t, []any{"healthy", "http_error", "unreachable", "timeout", "error"}, props["status"].Value.Enum)
	assert.Equal(t, "date-time", props["timestamp"].Value.Format)
	assert.ElementsMatch(t, []string{"url", "status", "timestamp", "is_up"}, ref.Value.Required)
}
