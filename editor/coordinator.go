package editor

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/edubright/course-builder-backend/models"
)

var (
	ErrNoCourse          = errors.New("editor: no course loaded")
	ErrEmptyTitle        = errors.New("editor: title must not be empty")
	ErrInvalidLessonType = errors.New("editor: unknown lesson type")
	ErrModuleNotFound    = errors.New("editor: module not found")
	ErrLessonNotFound    = errors.New("editor: lesson not found")
)

// Coordinator owns the module/lesson tree for one course and orchestrates
// persistence after every structural change. It mirrors a single-threaded UI
// event loop and is not safe for concurrent use.
//
// Mutations fall into two groups, matching the builder screen's behavior:
// rename and reorder are optimistic — local state changes first and a
// persistence failure is only logged, leaving local and server state
// diverged until the next LoadCourse. Add, delete and settings saves wait
// for the server and report failure to the caller.
type Coordinator struct {
	persister Persister

	course   *models.Course
	expanded map[uuid.UUID]bool
	selected *uuid.UUID
}

func NewCoordinator(p Persister) *Coordinator {
	return &Coordinator{
		persister: p,
		expanded:  make(map[uuid.UUID]bool),
	}
}

// LoadCourse fetches the course with its full tree. On success all modules
// start expanded and any previous selection is discarded. On failure the
// coordinator holds no course; there is no retry.
func (c *Coordinator) LoadCourse(ctx context.Context, id uuid.UUID) error {
	course, err := c.persister.FetchCourse(ctx, id)
	if err != nil {
		c.course = nil
		c.expanded = make(map[uuid.UUID]bool)
		c.selected = nil
		return err
	}

	c.course = course
	c.expanded = make(map[uuid.UUID]bool, len(course.Modules))
	for _, m := range course.Modules {
		c.expanded[m.ID] = true
	}
	c.selected = nil
	return nil
}

func (c *Coordinator) Course() *models.Course { return c.course }

// PanelMode reports which form the detail panel shows. Lesson editing is
// active exactly while a selected lesson exists in the tree.
func (c *Coordinator) PanelMode() PanelMode {
	if c.selected != nil {
		return PanelLessonEditing
	}
	return PanelCourseSettings
}

func (c *Coordinator) SelectedLesson() *models.Lesson {
	if c.selected == nil {
		return nil
	}
	_, lesson := c.findLesson(*c.selected)
	return lesson
}

func (c *Coordinator) SelectLesson(lessonID uuid.UUID) error {
	if _, lesson := c.findLesson(lessonID); lesson == nil {
		return ErrLessonNotFound
	}
	id := lessonID
	c.selected = &id
	return nil
}

// ClearSelection returns the panel to course-settings mode (the "back"
// action).
func (c *Coordinator) ClearSelection() { c.selected = nil }

func (c *Coordinator) IsModuleExpanded(moduleID uuid.UUID) bool {
	return c.expanded[moduleID]
}

// ToggleModuleExpanded is pure UI state; nothing is persisted.
func (c *Coordinator) ToggleModuleExpanded(moduleID uuid.UUID) {
	c.expanded[moduleID] = !c.expanded[moduleID]
}

// AddModule creates the module on the server and appends it locally once the
// server-assigned record arrives. No placeholder entry exists before that.
func (c *Coordinator) AddModule(ctx context.Context, title string) (*models.Module, error) {
	if c.course == nil {
		return nil, ErrNoCourse
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}

	module, err := c.persister.CreateModule(ctx, c.course.ID, title)
	if err != nil {
		return nil, err
	}
	if module.Lessons == nil {
		module.Lessons = []models.Lesson{}
	}

	c.course.Modules = append(c.course.Modules, *module)
	c.expanded[module.ID] = true
	return module, nil
}

// RenameModule applies the new title locally right away and persists in the
// background; a failed write is only logged.
func (c *Coordinator) RenameModule(ctx context.Context, moduleID uuid.UUID, title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	module := c.findModule(moduleID)
	if module == nil {
		return ErrModuleNotFound
	}

	module.Title = title
	if err := c.persister.RenameModule(ctx, moduleID, title); err != nil {
		log.Printf("editor: rename module %s failed: %v", moduleID, err)
	}
	return nil
}

// DeleteModule removes the module and its lessons from local state once the
// server confirms. The lesson cascade on the server side is the server's
// concern; locally the whole subtree disappears in one update.
func (c *Coordinator) DeleteModule(ctx context.Context, moduleID uuid.UUID) error {
	if c.course == nil {
		return ErrNoCourse
	}
	idx := c.moduleIndex(moduleID)
	if idx < 0 {
		return ErrModuleNotFound
	}

	if err := c.persister.DeleteModule(ctx, moduleID); err != nil {
		return err
	}

	if c.selected != nil {
		for _, l := range c.course.Modules[idx].Lessons {
			if l.ID == *c.selected {
				c.selected = nil
				break
			}
		}
	}

	c.course.Modules = append(c.course.Modules[:idx], c.course.Modules[idx+1:]...)
	for i := range c.course.Modules {
		c.course.Modules[i].SortOrder = i
	}
	delete(c.expanded, moduleID)
	return nil
}

// AddLesson appends a lesson of the chosen type to the target module after
// the server returns the created record. The type is final from here on.
func (c *Coordinator) AddLesson(ctx context.Context, moduleID uuid.UUID, title string, lessonType models.LessonType) (*models.Lesson, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !models.IsValidLessonType(lessonType) {
		return nil, ErrInvalidLessonType
	}
	module := c.findModule(moduleID)
	if module == nil {
		return nil, ErrModuleNotFound
	}

	lesson, err := c.persister.CreateLesson(ctx, moduleID, title, lessonType)
	if err != nil {
		return nil, err
	}

	module.Lessons = append(module.Lessons, *lesson)
	return lesson, nil
}

// DeleteLesson removes the lesson from whichever module contains it. If it
// was open in the detail panel, the panel reverts to course settings.
func (c *Coordinator) DeleteLesson(ctx context.Context, lessonID uuid.UUID) error {
	module, lesson := c.findLesson(lessonID)
	if lesson == nil {
		return ErrLessonNotFound
	}

	if err := c.persister.DeleteLesson(ctx, lessonID); err != nil {
		return err
	}

	for i := range module.Lessons {
		if module.Lessons[i].ID == lessonID {
			module.Lessons = append(module.Lessons[:i], module.Lessons[i+1:]...)
			break
		}
	}
	for i := range module.Lessons {
		module.Lessons[i].SortOrder = i
	}

	if c.selected != nil && *c.selected == lessonID {
		c.selected = nil
	}
	return nil
}

// MoveModule handles a drag-end at the course level: the module list is
// reordered and renumbered locally, then the full order is persisted in the
// background. A failed write is only logged.
func (c *Coordinator) MoveModule(ctx context.Context, from, to int) error {
	if c.course == nil {
		return ErrNoCourse
	}
	if from < 0 || to < 0 || from >= len(c.course.Modules) || to >= len(c.course.Modules) {
		return ErrModuleNotFound
	}

	arrayMove(c.course.Modules, from, to)
	entries := make([]ModuleOrder, len(c.course.Modules))
	for i := range c.course.Modules {
		c.course.Modules[i].SortOrder = i
		entries[i] = ModuleOrder{ID: c.course.Modules[i].ID, SortOrder: i}
	}

	if err := c.persister.ReorderModules(ctx, entries); err != nil {
		log.Printf("editor: reorder modules failed: %v", err)
	}
	return nil
}

// MoveLesson handles a drag-end inside one module. Lessons never cross
// modules; the persisted batch carries the module's full lesson order.
func (c *Coordinator) MoveLesson(ctx context.Context, moduleID uuid.UUID, from, to int) error {
	module := c.findModule(moduleID)
	if module == nil {
		return ErrModuleNotFound
	}
	if from < 0 || to < 0 || from >= len(module.Lessons) || to >= len(module.Lessons) {
		return ErrLessonNotFound
	}

	arrayMove(module.Lessons, from, to)
	entries := make([]LessonOrder, len(module.Lessons))
	for i := range module.Lessons {
		module.Lessons[i].SortOrder = i
		entries[i] = LessonOrder{ID: module.Lessons[i].ID, ModuleID: moduleID, SortOrder: i}
	}

	if err := c.persister.ReorderLessons(ctx, entries); err != nil {
		log.Printf("editor: reorder lessons in module %s failed: %v", moduleID, err)
	}
	return nil
}

// UpdateCourseSettings saves the panel's course form. The server response is
// authoritative: its fields replace the local copy, while the module tree is
// kept as is.
func (c *Coordinator) UpdateCourseSettings(ctx context.Context, fields CourseSettings) error {
	if c.course == nil {
		return ErrNoCourse
	}

	updated, err := c.persister.UpdateCourse(ctx, c.course.ID, fields)
	if err != nil {
		return err
	}

	modules := c.course.Modules
	*c.course = *updated
	c.course.Modules = modules
	return nil
}

// TogglePublish flips the published flag through the regular settings path,
// so two toggles in a row restore the original state.
func (c *Coordinator) TogglePublish(ctx context.Context) error {
	if c.course == nil {
		return ErrNoCourse
	}
	next := !c.course.IsPublished
	return c.UpdateCourseSettings(ctx, CourseSettings{IsPublished: &next})
}

// UpdateLesson saves the panel's lesson form and swaps in the server's
// representation of the lesson.
func (c *Coordinator) UpdateLesson(ctx context.Context, fields LessonSettings) error {
	module, lesson := c.findLesson(fields.ID)
	if lesson == nil {
		return ErrLessonNotFound
	}

	updated, err := c.persister.UpdateLesson(ctx, fields)
	if err != nil {
		return err
	}

	for i := range module.Lessons {
		if module.Lessons[i].ID == fields.ID {
			module.Lessons[i] = *updated
			break
		}
	}
	return nil
}

func (c *Coordinator) moduleIndex(moduleID uuid.UUID) int {
	if c.course == nil {
		return -1
	}
	for i := range c.course.Modules {
		if c.course.Modules[i].ID == moduleID {
			return i
		}
	}
	return -1
}

func (c *Coordinator) findModule(moduleID uuid.UUID) *models.Module {
	idx := c.moduleIndex(moduleID)
	if idx < 0 {
		return nil
	}
	return &c.course.Modules[idx]
}

func (c *Coordinator) findLesson(lessonID uuid.UUID) (*models.Module, *models.Lesson) {
	if c.course == nil {
		return nil, nil
	}
	for i := range c.course.Modules {
		for j := range c.course.Modules[i].Lessons {
			if c.course.Modules[i].Lessons[j].ID == lessonID {
				return &c.course.Modules[i], &c.course.Modules[i].Lessons[j]
			}
		}
	}
	return nil, nil
}
