package course

// LessonRequiresPayment derives whether the lesson at (moduleIdx, lessonIdx) is gated,
// using only the course's active access scope. Out-of-range positions are gated.
func (c Course) LessonRequiresPayment(moduleIdx, lessonIdx int) bool {
	if moduleIdx < 0 || moduleIdx >= len(c.Modules) {
		return true
	}
	module := c.Modules[moduleIdx]
	if lessonIdx < 0 || lessonIdx >= len(module.Lessons) {
		return true
	}
	lesson := module.Lessons[lessonIdx]
	if lesson.IsFreePreview {
		return false
	}

	switch c.EffectiveScope() {
	case ScopeModule:
		return module.IsPaid
	case ScopeLesson:
		return lesson.IsPaid
	default:
		if c.IsFree() {
			return false
		}
		return c.positionOf(moduleIdx, lessonIdx) >= c.PreviewLimit
	}
}

// positionOf returns the zero-based course-order index of a lesson
func (c Course) positionOf(moduleIdx, lessonIdx int) int {
	pos := 0
	for i := 0; i < moduleIdx; i++ {
		pos += len(c.Modules[i].Lessons)
	}
	return pos + lessonIdx
}
