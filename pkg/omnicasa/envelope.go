package omnicasa

import (
	"bytes"
	"encoding/json"
)

// EnvelopeKind tags the shape a response body was recognised as.
type EnvelopeKind int

const (
	// EnvelopeEmpty covers empty, unparsable and unrecognised bodies.
	EnvelopeEmpty EnvelopeKind = iota
	// EnvelopeWrapped is {"<Endpoint>JsonResult": {Code, Success, Message, Value}}.
	EnvelopeWrapped
	// EnvelopeBare is a top-level {"Value": {...}}.
	EnvelopeBare
)

func (k EnvelopeKind) String() string {
	switch k {
	case EnvelopeWrapped:
		return "wrapped"
	case EnvelopeBare:
		return "bare"
	default:
		return "empty"
	}
}

// Envelope is the decoded outer object of a response.
type Envelope struct {
	Kind     EnvelopeKind
	Endpoint string
	Code     int
	Success  bool
	Message  string
	Value    json.RawMessage
}

// ResultKey is the property a wrapped response nests its result under.
func ResultKey(endpoint string) string {
	return endpoint + "Result"
}

// DecodeEnvelope recognises the response shapes of endpoint, which must already
// carry the Json suffix. It never fails: anything unrecognised is EnvelopeEmpty.
func DecodeEnvelope(endpoint string, body []byte) Envelope {
	env := Envelope{Kind: EnvelopeEmpty, Endpoint: endpoint}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return env
	}

	if raw, ok := top[ResultKey(endpoint)]; ok && !falsy(raw) {
		env.Kind = EnvelopeWrapped
		var result map[string]json.RawMessage
		if err := json.Unmarshal(raw, &result); err != nil {
			return env
		}
		env.Code = jsonInt(result["Code"])
		env.Success = !falsy(result["Success"])
		env.Message = jsonString(result["Message"])
		env.Value = nullable(result["Value"])
		return env
	}

	if raw, ok := top["Value"]; ok && isObject(raw) {
		env.Kind = EnvelopeBare
		env.Value = raw
	}
	return env
}

// Payload is the logical result: Value, or Value.Items for a wrapped envelope
// whose Value carries a non-null Items property.
func (e Envelope) Payload() json.RawMessage {
	if e.Kind != EnvelopeWrapped || !isObject(e.Value) {
		return e.Value
	}
	var value map[string]json.RawMessage
	if err := json.Unmarshal(e.Value, &value); err != nil {
		return e.Value
	}
	if items := nullable(value["Items"]); items != nil {
		return items
	}
	return e.Value
}

// Err returns an *APIError when the service declared a failure.
func (e Envelope) Err() error {
	if e.Kind == EnvelopeWrapped && e.Code > 0 && !e.Success {
		return &APIError{Endpoint: e.Endpoint, Code: e.Code, Message: e.Message}
	}
	return nil
}

// Decode unmarshals payload into dst. A nil or null payload leaves dst untouched.
func Decode(payload json.RawMessage, dst interface{}) error {
	if nullable(payload) == nil {
		return nil
	}
	return json.Unmarshal(payload, dst)
}

func nullable(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return trimmed
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// falsy follows the loose truthiness the service relies on: null, false, zero,
// "", "0" and [] are all false.
func falsy(raw json.RawMessage) bool {
	if nullable(raw) == nil {
		return true
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return true
	}
	switch t := v.(type) {
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == "" || t == "0"
	case []interface{}:
		return len(t) == 0
	default:
		return false
	}
}

func jsonInt(raw json.RawMessage) int {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	var s json.Number
	if err := json.Unmarshal(raw, &s); err == nil {
		if i, err := s.Int64(); err == nil {
			return int(i)
		}
	}
	return 0
}

func jsonString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
