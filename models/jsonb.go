package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TeamMember is one member of a team registration.
type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Resource is a link attached to an event (starter kit, docs, etc).
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// TeamMemberList is stored as a jsonb column.
type TeamMemberList []TeamMember

func (l TeamMemberList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *TeamMemberList) Scan(src interface{}) error  { return jsonbScan(src, l) }

// ResourceList is stored as a jsonb column.
type ResourceList []Resource

func (l ResourceList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *ResourceList) Scan(src interface{}) error  { return jsonbScan(src, l) }

// StringList is stored as a jsonb column (event tags).
type StringList []string

func (l StringList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *StringList) Scan(src interface{}) error  { return jsonbScan(src, l) }

func jsonbValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonbScan(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
