package guard

// Match collapses an outcome into a concrete value via one handler per
// branch.
func Match[T, U any](o Outcome[T], onSuccess func(v T) U, onFailure func(err error) U) U {
	if o.IsSuccess() {
		return onSuccess(o.Value())
	}
	return onFailure(o.Err())
}

// Tee invokes the matching observer and returns the outcome unchanged.
// Either observer may be nil.
func Tee[T any](o Outcome[T], onSuccess func(v T), onFailure func(err error)) Outcome[T] {
	if o.IsSuccess() {
		if onSuccess != nil {
			onSuccess(o.Value())
		}
	} else if onFailure != nil {
		onFailure(o.Err())
	}
	return o
}
