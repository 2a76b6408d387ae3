package webhooks

import (
	"encoding/json"
	"fmt"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"
)

// IdentityEvent is the envelope the identity provider delivers. Kind is an
// open set; consumers must tolerate kinds they do not know.
type IdentityEvent struct {
	Type string            `json:"type"`
	Data IdentityEventData `json:"data"`
}

type IdentityEventData struct {
	ID              string         `json:"id"`
	Username        string         `json:"username"`
	EmailAddresses  []EmailAddress `json:"email_addresses"`
	ProfileImageURL string         `json:"profile_image_url"`
}

type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail returns the first listed email address, or "".
func (d IdentityEventData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

// Verifier checks webhook signatures against the shared endpoint secret
// before any payload is trusted.
type Verifier struct {
	wh *svix.Webhook
}

func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("webhook secret is required")
	}
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("init webhook verifier: %w", err)
	}
	return &Verifier{wh: wh}, nil
}

// Parse verifies the raw payload against the svix signature headers and
// decodes the event envelope. Verification failure means the payload is
// untrusted and must be rejected outright.
func (v *Verifier) Parse(payload []byte, headers http.Header) (*IdentityEvent, error) {
	if err := v.wh.Verify(payload, headers); err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}

	var evt IdentityEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}
	return &evt, nil
}
