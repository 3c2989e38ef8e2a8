package catalog

import (
	"context"
	"errors"

	catalogerrors "go-erp/internal/catalog/errors"
	"go-erp/internal/shared/apperror"
)

type Saver[T any] interface {
	Save(ctx context.Context, rec T) (T, error)
}

// Form is the create/edit flow for one record. A failed Submit leaves the
// form open with Err set so the caller can correct and retry.
type Form[T Record[T]] struct {
	resource Resource[T]
	saver    Saver[T]

	// OnSaved runs after a successful submit, typically a list refetch.
	OnSaved func(saved T)

	value   T
	open    bool
	editing bool
	err     string
}

func NewForm[T Record[T]](resource Resource[T], saver Saver[T]) *Form[T] {
	return &Form[T]{resource: resource, saver: saver}
}

func (f *Form[T]) OpenCreate() {
	f.value = f.resource.newRecord().WithID("")
	f.open, f.editing, f.err = true, false, ""
}

func (f *Form[T]) OpenEdit(rec T) {
	f.value = rec
	f.open, f.editing, f.err = true, true, ""
}

// Draft is the editable state. Callers bind input into it between Open and Submit.
func (f *Form[T]) Draft() *T { return &f.value }

func (f *Form[T]) IsOpen() bool  { return f.open }
func (f *Form[T]) Editing() bool { return f.editing }
func (f *Form[T]) Err() string   { return f.err }

func (f *Form[T]) Submit(ctx context.Context) (T, error) {
	var zero T
	if !f.open {
		return zero, catalogerrors.ErrFormClosed
	}

	if err := f.value.Validate(); err != nil {
		f.err = userMessage(err)
		return zero, err
	}

	saved, err := f.saver.Save(ctx, f.value)
	if err != nil {
		f.err = userMessage(err)
		return zero, err
	}

	f.open, f.err = false, ""
	if f.OnSaved != nil {
		f.OnSaved(saved)
	}
	return saved, nil
}

// userMessage prefers the message carried by an AppError (for upstream
// errors that is the server's own text) over the generic fallback.
func userMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return apperror.FallbackMessage
}
