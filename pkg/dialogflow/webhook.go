// Package dialogflow models the Dialogflow v2 webhook payloads this
// service exchanges with the conversational agent.
package dialogflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// WebhookRequest is the subset of the webhook payload the service
// consumes.
type WebhookRequest struct {
	QueryResult QueryResult `json:"queryResult"`
}

// QueryResult carries the matched intent, its parameters, and the
// active contexts.
type QueryResult struct {
	Intent         Intent     `json:"intent"`
	Parameters     Parameters `json:"parameters"`
	OutputContexts []Context  `json:"outputContexts"`
}

// Intent identifies the matched intent by display name.
type Intent struct {
	DisplayName string `json:"displayName"`
}

// Context is one output context; the session id is embedded in its
// resource name.
type Context struct {
	Name string `json:"name"`
}

// Parameters are the slots filled by the agent.
type Parameters struct {
	FoodItems []string   `json:"food-item"`
	Number    NumberList `json:"number"`
}

// NumberList accepts the shapes the agent uses for the "number" slot:
// a list of numbers, a bare number, or a numeric string.
type NumberList []float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumberList) UnmarshalJSON(data []byte) error {
	var list []float64
	if err := json.Unmarshal(data, &list); err == nil {
		*n = list
		return nil
	}
	var single float64
	if err := json.Unmarshal(data, &single); err == nil {
		*n = NumberList{single}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*n = nil
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("number: %q is not numeric", s)
		}
		*n = NumberList{v}
		return nil
	}
	return errors.New("number: unsupported JSON shape")
}

// Quantities converts the number slots to integer quantities, paired
// positionally with the food-item slots.
func (p Parameters) Quantities() []int {
	out := make([]int, len(p.Number))
	for i, v := range p.Number {
		out[i] = int(v)
	}
	return out
}

// ErrNoOrderID reports a missing "number" slot on a tracking request.
var ErrNoOrderID = errors.New("missing order id")

// OrderID returns the single order id carried by the "number" slot.
func (p Parameters) OrderID() (int, error) {
	if len(p.Number) == 0 {
		return 0, ErrNoOrderID
	}
	return int(p.Number[0]), nil
}

// ErrNoSessionID reports that no session id could be extracted from
// the request's output contexts.
var ErrNoSessionID = errors.New("no session id in output contexts")

var sessionRe = regexp.MustCompile(`/sessions/(.+?)/contexts/`)

// SessionID extracts the session id from the first output context's
// resource name (".../sessions/<id>/contexts/...").
func (r WebhookRequest) SessionID() (string, error) {
	if len(r.QueryResult.OutputContexts) == 0 {
		return "", ErrNoSessionID
	}
	m := sessionRe.FindStringSubmatch(r.QueryResult.OutputContexts[0].Name)
	if m == nil {
		return "", ErrNoSessionID
	}
	return m[1], nil
}

// WebhookResponse is the fulfillment returned to the agent.
type WebhookResponse struct {
	FulfillmentText string `json:"fulfillmentText"`
}
