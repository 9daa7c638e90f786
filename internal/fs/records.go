package fs

// CollectionResponse is the envelope FS wraps list results in.
type CollectionResponse struct {
	Items []Record `json:"items"`
}

// Record is a single taught-course item. Depending on the integration mode FS
// fills either ID (structured, requested with dbId=true) or Href.
type Record struct {
	Href string      `json:"href,omitempty"`
	ID   *Identifier `json:"id,omitempty"`
}

// Identifier is the structured key of a teaching record.
type Identifier struct {
	Course   *CourseRef   `json:"emne"`
	Semester *SemesterRef `json:"semester"`
}

// CourseRef references the course ("emne").
type CourseRef struct {
	Code string `json:"kode"`
}

// SemesterRef references the semester by year ("ar") and term code ("termin").
type SemesterRef struct {
	Year int    `json:"ar"`
	Term string `json:"termin"`
}
