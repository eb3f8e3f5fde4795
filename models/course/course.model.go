package course

// AccessScope is the granularity at which payment gating is enforced for a course
type AccessScope string

const (
	ScopeCourse AccessScope = "course"
	ScopeModule AccessScope = "module"
	ScopeLesson AccessScope = "lesson"
)

// Valid reports whether the scope is one of the three known granularities
func (s AccessScope) Valid() bool {
	switch s {
	case ScopeCourse, ScopeModule, ScopeLesson:
		return true
	}
	return false
}

// Course is the public course record served by the backend API
type Course struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Price        int64       `json:"price"` // minor currency units
	Currency     string      `json:"currency,omitempty"`
	AccessScope  AccessScope `json:"accessScope"`
	IsPaid       bool        `json:"isPaid"`
	PreviewLimit int         `json:"previewLimit"` // leading lessons open without payment (course scope)
	ThumbnailURL string      `json:"thumbnailUrl,omitempty"`
	Modules      []Module    `json:"modules"`
}

// IsFree reports whether the course is marked free
func (c Course) IsFree() bool {
	return !c.IsPaid
}

// EffectiveScope returns the active access scope; unknown values fall back to course level
func (c Course) EffectiveScope() AccessScope {
	if c.AccessScope.Valid() {
		return c.AccessScope
	}
	return ScopeCourse
}

// LessonCount returns the number of lessons across all modules
func (c Course) LessonCount() int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}
