package postgres

import "encoding/json"

func marshalJSON(value interface{}) []byte {
	b, err := json.Marshal(value)
	if err != nil {
		return []byte("null")
	}
	return b
}

func unmarshalJSON(data []byte, target interface{}) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, target)
}
