package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sdeshpande/CivicDesk/internal/models"
	"go.uber.org/zap"
)

// Retry policy for complaint submission: only transport failures with no
// response are retried, with a fixed delay between attempts. HTTP error
// responses are terminal.
const (
	maxRetries        = 3
	defaultRetryDelay = time.Second
)

// ErrSubmitInFlight is returned when Submit is invoked while a previous
// submission of the same pipeline is still pending. The caller should
// treat it as a no-op, not as a failure to report.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// dateFormat is the calendar-date wire format for incident dates.
const dateFormat = "2006-01-02"

// Pipeline packages a complaint draft into a multipart payload and
// delivers it, retrying transient transport failures. One pipeline
// serves one draft at a time.
type Pipeline struct {
	Client *Client

	// RetryDelay is the fixed pause between attempts. Zero means the
	// default of one second.
	RetryDelay time.Duration

	// Notify, when set, is invoked with the server-assigned id after a
	// successful submission. It runs fire-and-forget; its outcome never
	// affects the submission result.
	Notify func(id string)

	inFlight atomic.Bool
}

// submitResponse is the create endpoint's answer.
type submitResponse struct {
	Status  string      `json:"status"`
	ID      json.Number `json:"c_id"`
	Message string      `json:"message"`
}

// Submit validates, encodes, and delivers the draft, returning the
// server-assigned complaint id. A nil error is the signal to clear the
// draft; on any error the draft must be left intact so the user can retry
// manually. A second call while one is pending returns ErrSubmitInFlight
// without issuing a request.
func (p *Pipeline) Submit(ctx context.Context, draft models.ComplaintDraft) (string, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return "", ErrSubmitInFlight
	}
	defer p.inFlight.Store(false)

	if err := validateDraft(draft); err != nil {
		return "", err
	}

	fields := []formField{
		{"c_name", draft.ReporterName},
		{"c_contactno", draft.ContactNumber},
		{"c_area", draft.Area},
		{"complaint", draft.Description},
		{"complaint_for", string(draft.Category)},
		{"c_time", draft.IncidentDate.Format(dateFormat)},
	}
	body, contentType, err := buildComplaintForm(fields, draft.ImagePath)
	if err != nil {
		return "", validationErr("could not read the attached image")
	}

	return p.deliver(ctx, body.Bytes(), contentType)
}

// validateDraft enforces the mandatory fields. It runs before any
// network call.
func validateDraft(draft models.ComplaintDraft) error {
	var missing []string
	if strings.TrimSpace(draft.ReporterName) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(draft.Area) == "" {
		missing = append(missing, "area")
	}
	if strings.TrimSpace(draft.Description) == "" {
		missing = append(missing, "description")
	}
	if draft.IncidentDate.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return validationErr("please fill all the fields: " + strings.Join(missing, ", "))
	}
	return nil
}

// deliver posts the payload, retrying transport failures up to maxRetries
// times. The attempt counter lives in this call frame and dies with it.
func (p *Pipeline) deliver(ctx context.Context, payload []byte, contentType string) (string, error) {
	delay := p.RetryDelay
	if delay == 0 {
		delay = defaultRetryDelay
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", networkErr(ctx.Err())
			case <-time.After(delay):
			}
		}

		id, retriable, err := p.attempt(ctx, payload, contentType)
		if err == nil {
			if p.Notify != nil {
				go p.Notify(id)
			}
			return id, nil
		}
		if !retriable {
			return "", err
		}
		lastErr = err
		p.Client.Log.Debug("submission attempt failed",
			zap.Int("attempt", attempt+1), zap.Error(err))
	}
	return "", lastErr
}

// attempt performs one delivery. retriable is true only for transport
// failures with no response.
func (p *Pipeline) attempt(ctx context.Context, payload []byte, contentType string) (id string, retriable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.Client.BaseURL+pathAddComplaint, bytes.NewReader(payload))
	if err != nil {
		return "", false, serverErr("", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := p.Client.do(req)
	if err != nil {
		return "", true, networkErr(err)
	}
	defer resp.Body.Close()

	var decoded submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return "", false, serverErr("", err)
		}
		decoded = submitResponse{}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false, serverErr(decoded.Message, nil)
	}
	if decoded.Status != "success" {
		return "", false, serverErr(decoded.Message, nil)
	}
	return decoded.ID.String(), false, nil
}
