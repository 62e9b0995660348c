package database

import (
	"github.com/google/uuid"

	apperrors "github.com/allisson/crm/internal/errors"
)

// UUIDBytes encodes an id for a MySQL BINARY(16) column.
func UUIDBytes(id uuid.UUID) ([]byte, error) {
	b, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal uuid")
	}
	return b, nil
}

// NullableUUIDBytes encodes an optional id; nil maps to SQL NULL.
func NullableUUIDBytes(id *uuid.UUID) (any, error) {
	if id == nil {
		return nil, nil
	}
	return UUIDBytes(*id)
}

// UUIDFromBytes decodes a MySQL BINARY(16) column.
func UUIDFromBytes(b []byte) (uuid.UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to unmarshal uuid")
	}
	return id, nil
}

// NullableUUIDFromBytes decodes an optional BINARY(16) column; NULL maps to nil.
func NullableUUIDFromBytes(b []byte) (*uuid.UUID, error) {
	if b == nil {
		return nil, nil
	}
	id, err := UUIDFromBytes(b)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// NullUUIDPtr converts a scanned uuid.NullUUID into an optional id.
func NullUUIDPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

// UUIDPtrValue converts an optional id into a driver value for PostgreSQL.
func UUIDPtrValue(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
