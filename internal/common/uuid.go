package common

import "github.com/google/uuid"

// UUID is a string-typed identifier so IDs survive JSON round-trips without
// a custom marshaler. ParseUUID is the only validation gate.
type UUID string

func NewUUID() UUID {
	return UUID(uuid.NewString())
}

func ParseUUID(value string) (UUID, error) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return "", err
	}
	return UUID(parsed.String()), nil
}

func (u UUID) String() string {
	return string(u)
}

func (u UUID) IsZero() bool {
	return u == ""
}
