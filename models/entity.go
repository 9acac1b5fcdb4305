package models

// Entity is a record kept in an entity store: it has an identifier and can be
// copied with a new one.
type Entity[T any] interface {
	EntityID() ID
	WithID(id ID) T
}
