package store

import (
	"errors"

	"fieldbook/internal/logging"
	"fieldbook/internal/types"
)

// AnnotationField names the free-form annotation fields settable through
// SetField.
type AnnotationField string

const (
	FieldDate     AnnotationField = "date"
	FieldLocation AnnotationField = "location"
	FieldCounty   AnnotationField = "county"
	FieldNotes    AnnotationField = "notes"
)

// ProgressStore owns the species-ID to annotation mapping. Records are
// created lazily on first mutation and never deleted; every mutation
// replaces the whole record and flushes to the KV store.
type ProgressStore struct {
	kv          *KV
	annotations map[string]types.Annotation
	onSeen      func(id string) // fired on the not-seen -> seen transition
	log         *logging.Logger
}

// NewProgressStore loads the annotation map from the KV store. A missing or
// corrupt blob degrades to an empty map.
func NewProgressStore(kv *KV) *ProgressStore {
	s := &ProgressStore{
		kv:          kv,
		annotations: make(map[string]types.Annotation),
		log:         logging.Get(logging.CategoryStore),
	}

	var stored map[string]types.Annotation
	err := kv.Get(KeyProgress, &stored)
	switch {
	case err == nil:
		if stored != nil {
			s.annotations = stored
		}
		s.log.Info("loaded %d annotations", len(s.annotations))
	case errors.Is(err, ErrNotFound):
		s.log.Info("no stored annotations, starting empty")
	default:
		s.log.Warn("failed to load annotations, starting empty: %v", err)
	}
	return s
}

// OnSeen registers the hook fired whenever a species transitions from
// not-seen to seen. Used to feed the challenge auto-count.
func (s *ProgressStore) OnSeen(fn func(id string)) {
	s.onSeen = fn
}

// Annotation returns the record for id, or a synthesized default. The
// default is not persisted until a mutation occurs.
func (s *ProgressStore) Annotation(id string) types.Annotation {
	if ann, ok := s.annotations[id]; ok {
		return ann
	}
	return types.Annotation{SpeciesID: id}
}

// All returns a copy of the annotation map.
func (s *ProgressStore) All() map[string]types.Annotation {
	out := make(map[string]types.Annotation, len(s.annotations))
	for id, ann := range s.annotations {
		out[id] = ann
	}
	return out
}

// ToggleSeen flips the seen flag and returns the new record. The not-seen to
// seen transition fires the OnSeen hook after the record is stored.
func (s *ProgressStore) ToggleSeen(id string) types.Annotation {
	ann := s.Annotation(id)
	ann.Seen = !ann.Seen
	s.put(ann)
	if ann.Seen && s.onSeen != nil {
		s.onSeen(id)
	}
	return ann
}

// ToggleTarget flips the target flag and returns the new record.
func (s *ProgressStore) ToggleTarget(id string) types.Annotation {
	ann := s.Annotation(id)
	ann.Target = !ann.Target
	s.put(ann)
	return ann
}

// SetField updates one free-form field and returns the new record. Unknown
// fields are ignored.
func (s *ProgressStore) SetField(id string, field AnnotationField, value string) types.Annotation {
	ann := s.Annotation(id)
	switch field {
	case FieldDate:
		ann.Date = value
	case FieldLocation:
		ann.Location = value
	case FieldCounty:
		ann.County = value
	case FieldNotes:
		ann.Notes = value
	default:
		s.log.Warn("ignoring unknown annotation field %q", field)
		return ann
	}
	s.put(ann)
	return ann
}

// put replaces the record and flushes. Write failures are logged and
// swallowed; the in-memory state is already updated and last write wins.
func (s *ProgressStore) put(ann types.Annotation) {
	s.annotations[ann.SpeciesID] = ann
	if err := s.kv.Set(KeyProgress, s.annotations); err != nil {
		s.log.Warn("failed to persist annotations: %v", err)
	}
}
