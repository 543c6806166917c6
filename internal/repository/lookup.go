package repository

import (
	"errors"
	"fmt"
	"strings"

	apperrors "customer-intake-portal/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// lookupFields reads the named columns of a single row into a map keyed by column name.
// Only columns listed in allowed may be requested; a requested column absent from the
// result is reported as an error rather than silently returned as nil.
func lookupFields(db *gorm.DB, model interface{}, allowed map[string]struct{}, id uuid.UUID, fields []string, notFound error) (map[string]interface{}, error) {
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("fields", "at least one field is required")
	}
	for _, f := range fields {
		if _, ok := allowed[f]; !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownLookupField, f)
		}
	}

	out := map[string]interface{}{}
	err := db.Model(model).Select(fields).Where("id = ?", id).Take(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, err
	}

	for _, f := range fields {
		v, ok := out[f]
		if !ok {
			return nil, fmt.Errorf("lookup result is missing column %q", f)
		}
		if b, isBytes := v.([]byte); isBytes && f != "id" && !strings.HasSuffix(f, "_id") {
			out[f] = string(b)
		}
	}
	return out, nil
}

func columnSet(columns ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return set
}

// FieldString returns fields[key] as a string; NULL and missing keys yield "".
func FieldString(fields map[string]interface{}, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case *string:
		if v == nil {
			return ""
		}
		return *v
	default:
		return fmt.Sprint(v)
	}
}

// FieldUUID returns fields[key] as a UUID; NULL and missing keys yield nil.
// Drivers hand UUID columns back as text, raw bytes or a uuid value depending on the backend.
func FieldUUID(fields map[string]interface{}, key string) (*uuid.UUID, error) {
	var (
		id  uuid.UUID
		err error
	)
	switch v := fields[key].(type) {
	case nil:
		return nil, nil
	case uuid.UUID:
		id = v
	case *uuid.UUID:
		if v == nil {
			return nil, nil
		}
		id = *v
	case [16]byte:
		id = uuid.UUID(v)
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		id, err = uuid.Parse(v)
	case []byte:
		switch len(v) {
		case 0:
			return nil, nil
		case 16:
			id, err = uuid.FromBytes(v)
		default:
			id, err = uuid.ParseBytes(v)
		}
	case fmt.Stringer:
		id, err = uuid.Parse(v.String())
	default:
		return nil, fmt.Errorf("column %q has unexpected type %T", key, v)
	}
	if err != nil {
		return nil, fmt.Errorf("column %q is not a valid uuid: %w", key, err)
	}
	if id == uuid.Nil {
		return nil, nil
	}
	return &id, nil
}
