package request

import "encoding/json"

// WebhookID is the gateway's data.id, which arrives as either a JSON number
// or a JSON string. json.Number alone rejects non-numeric strings, so both
// forms are normalized to their verbatim text here.
type WebhookID string

func (id *WebhookID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = WebhookID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = WebhookID(n.String())
	return nil
}

func (id WebhookID) String() string {
	return string(id)
}

// WebhookEnvelope is the notification body the payment gateway posts.
type WebhookEnvelope struct {
	Type        string      `json:"type"`
	Data        WebhookData `json:"data"`
	Action      string      `json:"action"`
	DateCreated string      `json:"date_created"`
}

type WebhookData struct {
	ID WebhookID `json:"id"`
}
