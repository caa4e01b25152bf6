package rtplan

import (
	apperrors "github.com/fieldshape/mlca/pkg/errors"
)

// Class is the ingestion classification of a candidate file.
type Class string

const (
	// ClassUsable files parsed as RT Plans and proceed to evaluation.
	ClassUsable Class = "usable"

	// ClassWrongModality files parsed but are not RT Plans. They are
	// reported and skipped, never treated as failures.
	ClassWrongModality Class = "wrong_modality"

	// ClassUnreadable files could not be opened or decoded at all.
	ClassUnreadable Class = "unreadable"
)

// Classify parses the file at path and buckets it into exactly one class.
// The returned plan is non-nil only for ClassUsable; the returned error is
// non-nil only for the other two classes and carries the cause.
func Classify(path string) (*Plan, Class, error) {
	plan, err := ParseFile(path)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeWrongModality) {
			return nil, ClassWrongModality, err
		}
		return nil, ClassUnreadable, err
	}
	return plan, ClassUsable, nil
}
