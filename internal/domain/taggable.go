package domain

// Taggable is implemented by entities that own a set of tags of type T.
//
// Tags must return the entity's own set, not a copy: callers mutate the set
// through the returned pointer and expect the entity to see the change.
type Taggable[T Tagger] interface {
	Tags() *TagSet[T]
}
