package sharing

import (
	"testing"

	"github.com/pkg/errors"
)

func TestErrorKinds(t *testing.T) {
	err := notFound("album")
	if !errors.Is(err, ErrNotFound) {
		t.Error("every not found error should match ErrNotFound")
	}
	if errors.Is(err, ErrForbidden) {
		t.Error("kinds must stay distinct")
	}
	if err.Error() != "album not found" {
		t.Errorf("unexpected message %q", err.Error())
	}

	cause := errors.New("disk full")
	failure := storeFailure(cause, "create invite")
	if KindOf(failure) != KindStoreFailure {
		t.Errorf("KindOf() = %s", KindOf(failure))
	}
	if errors.Cause(errors.Unwrap(failure)) != cause {
		t.Error("store failures keep their cause")
	}
	if KindOf(errors.Wrap(ErrMaxUsesReached, "accept")) != KindMaxUsesReached {
		t.Error("KindOf should see through wrapping")
	}
	if KindOf(errors.New("other")) != KindStoreFailure {
		t.Error("foreign errors count as store failures")
	}
}
