package access

import "tincadia/models/course"

type PlayerLesson struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	VideoURL      string `json:"videoUrl,omitempty"`
	IsFreePreview bool   `json:"isFreePreview"`
	Locked        bool   `json:"locked"`
}

type PlayerModule struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Lessons []PlayerLesson `json:"lessons"`
}

// PlayerView is the course as the player renders it; locked lessons carry no video URL
type PlayerView struct {
	CourseID    string             `json:"courseId"`
	Title       string             `json:"title"`
	AccessScope course.AccessScope `json:"accessScope"`
	HasAccess   bool               `json:"hasAccess"`
	Modules     []PlayerModule     `json:"modules"`
	Unlocked    int                `json:"unlockedLessons"`
	Total       int                `json:"totalLessons"`
}

// BuildPlayer applies the course's access scope to every lesson. A viewer with access sees everything.
func BuildPlayer(d *Decision) PlayerView {
	c := d.Course
	view := PlayerView{
		CourseID:    c.ID,
		Title:       c.Title,
		AccessScope: c.EffectiveScope(),
		HasAccess:   d.HasAccess,
		Modules:     make([]PlayerModule, 0, len(c.Modules)),
		Total:       c.LessonCount(),
	}

	for mi, m := range c.Modules {
		pm := PlayerModule{ID: m.ID, Title: m.Title, Lessons: make([]PlayerLesson, 0, len(m.Lessons))}
		for li, l := range m.Lessons {
			locked := !d.HasAccess && c.LessonRequiresPayment(mi, li)
			pl := PlayerLesson{ID: l.ID, Title: l.Title, IsFreePreview: l.IsFreePreview, Locked: locked}
			if !locked {
				pl.VideoURL = l.VideoURL
				view.Unlocked++
			}
			pm.Lessons = append(pm.Lessons, pl)
		}
		view.Modules = append(view.Modules, pm)
	}
	return view
}
