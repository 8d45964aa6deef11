package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"CareBowAPI/internal/model"
)

type ResendMailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewResendMailer(apiKey, from string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key not set")
	}

	return &ResendMailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendVerificationDecision emails a caregiver the outcome of their
// verification review.
func (m *ResendMailer) SendVerificationDecision(
	ctx context.Context,
	toEmail string,
	status string,
) error {
	subject := "Your CareBow caregiver profile was reviewed"
	html := `
			<p>Hello,</p>
			<p>Unfortunately we could not verify your caregiver profile at this time.</p>
			<p>You can reach our support team for details.</p>
		`
	if status == model.VerificationVerified {
		html = `
			<p>Congratulations!</p>
			<p>Your caregiver profile has been verified and is now visible to families.</p>
		`
	}

	body := sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: subject,
		HTML:    html,
	}

	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New(
			"failed to send decision email: " + buf.String(),
		)
	}

	return nil
}
