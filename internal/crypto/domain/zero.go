package domain

// Zero overwrites key material so derived keys do not outlive the call that used them.
func Zero(b []byte) {
	clear(b)
}
