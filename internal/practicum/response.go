package practicum

import (
	"bytes"
	"encoding/json"

	"homework_bot/internal/model"
)

// Decode checks the shape of a statuses payload and converts it into a
// model.Response. Only the structure is validated: homeworks must be an array
// of objects and current_date, when present, must be an integer. Record
// fields are read leniently and left for homework.Extract to judge.
func Decode(raw json.RawMessage) (*model.Response, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, &StructuralError{Kind: KindNotAMapping}
	}

	rawHomeworks, ok := obj["homeworks"]
	if !ok {
		return nil, &StructuralError{Kind: KindMissingKey, Key: "homeworks"}
	}

	var records []json.RawMessage
	if !isArray(rawHomeworks) {
		return nil, &StructuralError{Kind: KindWrongType, Key: "homeworks"}
	}
	if err := json.Unmarshal(rawHomeworks, &records); err != nil {
		return nil, &StructuralError{Kind: KindWrongType, Key: "homeworks"}
	}

	resp := model.Response{Homeworks: make([]model.Homework, 0, len(records))}
	for _, rec := range records {
		hw, ok := decodeRecord(rec)
		if !ok {
			return nil, &StructuralError{Kind: KindWrongType, Key: "homeworks"}
		}
		resp.Homeworks = append(resp.Homeworks, hw)
	}

	if rawDate, ok := obj["current_date"]; ok && !isNull(rawDate) {
		var date int64
		if err := json.Unmarshal(rawDate, &date); err != nil {
			return nil, &StructuralError{Kind: KindWrongType, Key: "current_date"}
		}
		resp.CurrentDate = &date
	}

	return &resp, nil
}

// decodeRecord reads a homework object. It fails only when the record is not
// an object; null fields count as absent.
func decodeRecord(raw json.RawMessage) (model.Homework, bool) {
	if isNull(raw) {
		return model.Homework{}, true
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.Homework{}, false
	}
	return model.Homework{
		HomeworkName: fieldText(fields, "homework_name"),
		Status:       fieldText(fields, "status"),
	}, true
}

// fieldText returns a string field as is and any other non-null JSON value
// in its literal form.
func fieldText(fields map[string]json.RawMessage, key string) *string {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	text := string(bytes.TrimSpace(raw))
	return &text
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
