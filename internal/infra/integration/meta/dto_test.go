package meta

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookPayloadLeadgenIDs(t *testing.T) {
	body := `{"object":"page","entry":[
		{"id":123,"time":"ontem","changes":[
			{"field":"feed","value":{"item":"post","created_time":"2024-01-01","post_id":["a"]}},
			{"field":"leadgen","value":{"leadgen_id":"L1","page_id":456,"created_time":"2024-01-01T00:00:00"}},
			{"field":"leadgen","value":"string inesperada"},
			{"field":"leadgen","value":{"leadgen_id":987654321}},
			{"field":"leadgen","value":{"page_id":"P"}},
			{"field":"feed","value":{"leadgen_id":"ignorado"}}
		]},
		{"changes":[{"field":"leadgen","value":{"leadgen_id":"L2"}}]}
	]}`

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(body), &payload))

	assert.Equal(t, []string{"L1", "987654321", "L2"}, payload.LeadgenIDs())
}

func TestWebhookPayloadWithoutLeadgen(t *testing.T) {
	var payload WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(`{"object":"page","entry":[]}`), &payload))
	assert.Empty(t, payload.LeadgenIDs())
}
