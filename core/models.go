package core

// Device is an opaque hint passed through to the embedding backend.
// The zero value lets the backend pick automatically.
type Device string

const (
	// DeviceAuto leaves device selection to the embedding backend.
	DeviceAuto Device = ""
	// DeviceCPU forces inference onto the CPU.
	DeviceCPU Device = "cpu"
	// DeviceCUDA requests GPU inference.
	DeviceCUDA Device = "cuda"
)

// String returns the device name, or "auto" for the zero value.
func (d Device) String() string {
	if d == DeviceAuto {
		return "auto"
	}
	return string(d)
}

// Candidate is one file under consideration.
// Path is unique within one enumeration; Name is the basename and need not be.
type Candidate struct {
	Path string
	Name string

	// Excerpt holds leading file content when content search is enabled.
	// Empty means name-only matching for this candidate.
	Excerpt string
}

// Text returns the string embedded for this candidate.
func (c Candidate) Text() string {
	if c.Excerpt == "" {
		return c.Name
	}
	return c.Name + " " + c.Excerpt
}

// ScoredResult pairs a candidate with its cosine similarity to the query.
type ScoredResult struct {
	Candidate  Candidate
	Similarity float64
}

// FilterResult is the outcome of thresholding and capping a scored list.
type FilterResult struct {
	// Kept holds the capped results ordered by similarity, highest first.
	Kept []ScoredResult

	// Total is the number of scored candidates before filtering.
	Total int

	// Matched is the number of candidates at or above the threshold, before the cap.
	Matched int
}

// FilteredOut returns how many candidates fell below the threshold.
func (r *FilterResult) FilteredOut() int {
	return r.Total - r.Matched
}

// Capped reports whether the cap hid any matching results.
func (r *FilterResult) Capped(maxResults int) bool {
	return r.Matched > maxResults
}

// SearchConfig holds the settings for one search invocation.
// It is built once at startup and treated as read-only afterwards.
type SearchConfig struct {
	SearchDir      string
	Query          string
	Threshold      float64
	Device         Device
	Content        bool
	MaxContentSize int
	MaxResults     int
	Recursive      bool
}

// Defaults for SearchConfig fields.
const (
	DefaultThreshold      = 0.3
	DefaultMaxContentSize = 1000
	DefaultMaxResults     = 25
)

// DefaultSearchConfig returns a SearchConfig with default settings for the
// given directory and query.
func DefaultSearchConfig(searchDir, query string) SearchConfig {
	return SearchConfig{
		SearchDir:      searchDir,
		Query:          query,
		Threshold:      DefaultThreshold,
		MaxContentSize: DefaultMaxContentSize,
		MaxResults:     DefaultMaxResults,
	}
}
