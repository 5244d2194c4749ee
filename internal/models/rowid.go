package models

import (
	"bytes"
	"encoding/json"
)

// RowID is a primary key that may arrive as a JSON string (uuid, text) or a
// JSON number (bigint identity columns).
type RowID string

func (id *RowID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RowID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = RowID(n.String())
	return nil
}

func (id RowID) String() string {
	return string(id)
}
