package gallery

// Photo is one displayable image. The viewer treats photos as read-only; the caller owns the list.
type Photo struct {
	ID       string `json:"id" yaml:"id"`
	ImageURL string `json:"imageUrl" yaml:"url"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Limit returns the first n photos, or all of them when n <= 0 or the list is shorter.
func Limit(photos []Photo, n int) []Photo {
	if n <= 0 || len(photos) <= n {
		return photos
	}
	return photos[:n]
}

// Equal reports whether two photo lists hold the same photos in the same order.
func Equal(a, b []Photo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
