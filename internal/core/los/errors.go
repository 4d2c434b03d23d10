package los

import "github.com/pkg/errors"

var (
	// ErrUnclosedChain is returned when the polygon walk does not get back to
	// its starting edge within the iteration cap.
	ErrUnclosedChain = errors.New("los: edge chain did not close")

	// ErrBrokenChain is returned when the polygon walk reaches an unset or
	// broken link.
	ErrBrokenChain = errors.New("los: edge chain is broken")

	// ErrUnterminatedProjection is returned when the polygon walk depends on a
	// projection that found no edge to close on.
	ErrUnterminatedProjection = errors.New("los: projection did not terminate")

	// ErrObserverOutside is returned when the assembled polygon does not
	// wind around the observer.
	ErrObserverOutside = errors.New("los: polygon does not enclose the observer")
)
