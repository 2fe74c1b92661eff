package backend

import "encoding/json"

// ExtractDetail pulls the `detail` field out of an upstream error body.
// Bodies that are absent, not JSON, or not shaped as an object are
// tolerated; the return value is nil in those cases. When a detail is
// present it is returned exactly as decoded (string, object or list) so
// proxy routes can re-emit it without modification.
func ExtractDetail(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil
	}
	raw, ok := parsed["detail"]
	if !ok {
		return nil
	}
	var detail interface{}
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil
	}
	return detail
}

// FlattenDetail converts an upstream `detail` value into a single display
// string. The upstream convention is either a plain string, an object with
// a msg/message field, or a list of such objects (validation errors).
func FlattenDetail(detail interface{}) string {
	switch v := detail.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}:
		return messageOf(v)
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			switch e := item.(type) {
			case string:
				parts = append(parts, e)
			case map[string]interface{}:
				if msg := messageOf(e); msg != "" {
					parts = append(parts, msg)
				}
			}
		}
		return join(parts)
	}
	return ""
}

func messageOf(obj map[string]interface{}) string {
	if msg, ok := obj["msg"].(string); ok {
		return msg
	}
	if msg, ok := obj["message"].(string); ok {
		return msg
	}
	return ""
}

func join(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "; "
		}
		out += p
	}
	return out
}
